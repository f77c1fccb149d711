package slug

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "apostrophe and double space", input: " Men's  Shoes ", want: "men_s_shoes"},
		{name: "upper with hyphen", input: "RUNNING-GEAR", want: "running_gear"},
		{name: "two words", input: "Kitchen Tools", want: "kitchen_tools"},
		{name: "hyphen runs", input: "men--shoes", want: "men_shoes"},
		{name: "mixed separators", input: " - a _ b - ", want: "a_b"},
		{name: "already canonical", input: "kitchen_tools", want: "kitchen_tools"},
		{name: "tabs and newlines", input: "Home\t\nDecor", want: "home_decor"},
		{name: "digits kept", input: "Top 10 Picks", want: "top_10_picks"},
		{name: "accented letters kept", input: "Café Crème", want: "café_crème"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeRejectsEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "---", " _ - _ "} {
		if _, err := Normalize(input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Normalize(%q) error = %v, want ErrInvalidInput", input, err)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		" Men's  Shoes ", "RUNNING-GEAR", "a", "__x__", "Ünïcödé Títle", "ΟΔΟΣ Δρόμος",
		"İstanbul", "10% off!!", "snake_case_name", "Trailing-", "-Leading",
	}
	for _, input := range inputs {
		once, err := Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", input, err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", once, err)
		}
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{"shoes", "", "men-shoes", "  ", "SHOES", "Men Shoes"})
	want := []string{"shoes", "men_shoes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeList = %v, want %v", got, want)
	}

	if got := NormalizeList(nil); len(got) != 0 {
		t.Errorf("NormalizeList(nil) = %v, want empty", got)
	}
}

func TestSplit(t *testing.T) {
	if got := Split(""); got != nil {
		t.Errorf("Split(\"\") = %v, want nil", got)
	}
	got := Split("shoes,men-shoes")
	if !reflect.DeepEqual(got, []string{"shoes", "men-shoes"}) {
		t.Errorf("Split = %v", got)
	}
}

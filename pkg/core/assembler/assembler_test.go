package assembler

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
)

func intPtr(v int) *int { return &v }

func testGraph() *domain.Graph {
	g := domain.NewGraph()
	g.AddCategory(&domain.Category{ID: 1, Name: "Shoes", Slug: "shoes", ProductIDs: []int64{10, 11}})
	g.AddCollection(&domain.Collection{ID: 5, Name: "Summer", Slug: "summer"})
	g.AddProduct(&domain.Product{
		ID:         10,
		Name:       "Runner",
		Price:      4999,
		CategoryID: 1,
		Images: []*domain.ProductImage{
			{ImageURL: "A", Position: intPtr(2)},
			nil,
			{ImageURL: "B"},
			{ImageURL: "C", Position: intPtr(0)},
		},
		Links: []*domain.ProductCollection{
			{ProductID: 10, CollectionID: 5},
			nil,
			{ProductID: 10, CollectionID: 99}, // Not in graph
		},
	})
	g.AddProduct(&domain.Product{ID: 11, Name: "Walker", CategoryID: 1})
	return g
}

func TestImageURLs(t *testing.T) {
	tests := []struct {
		name   string
		images []*domain.ProductImage
		want   []string
	}{
		{
			name: "positions with nil element and nil position",
			images: []*domain.ProductImage{
				{ImageURL: "A", Position: intPtr(2)},
				nil,
				{ImageURL: "B"},
				{ImageURL: "C", Position: intPtr(0)},
			},
			want: []string{"C", "A", "B"},
		},
		{
			name: "ties keep input order",
			images: []*domain.ProductImage{
				{ImageURL: "x", Position: intPtr(1)},
				{ImageURL: "y", Position: intPtr(1)},
				{ImageURL: "z", Position: intPtr(0)},
			},
			want: []string{"z", "x", "y"},
		},
		{
			name: "extreme positions",
			images: []*domain.ProductImage{
				{ImageURL: "max", Position: intPtr(math.MaxInt)},
				{ImageURL: "min", Position: intPtr(math.MinInt)},
				{ImageURL: "zero", Position: intPtr(0)},
			},
			want: []string{"min", "zero", "max"},
		},
		{
			name:   "blank url dropped",
			images: []*domain.ProductImage{{ImageURL: " "}, {ImageURL: "ok"}},
			want:   []string{"ok"},
		},
		{name: "nil slice", images: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImageURLs(tt.images)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ImageURLs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProductAssembly(t *testing.T) {
	a := New()
	g := testGraph()

	resp, err := a.Product(g, g.Product(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := resp.Images, []string{"C", "A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("images = %v, want %v", got, want)
	}
	if resp.Category == nil || resp.Category.Slug != "shoes" {
		t.Errorf("category = %+v, want shoes", resp.Category)
	}
	if len(resp.Collections) != 1 || resp.Collections[0].ID != 5 {
		t.Errorf("collections = %+v, want only collection 5", resp.Collections)
	}
}

func TestProductMissingCategory(t *testing.T) {
	a := New()
	g := domain.NewGraph()
	g.AddProduct(&domain.Product{ID: 7, CategoryID: 3})

	_, err := a.Product(g, g.Product(7))
	if !errors.Is(err, domain.ErrInconsistentState) {
		t.Fatalf("error = %v, want ErrInconsistentState", err)
	}
}

func TestCategoriesWithProducts(t *testing.T) {
	a := New()
	g := testGraph()

	out, err := a.CategoriesWithProducts(g, []*domain.Category{nil, g.Category(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d categories, want 1", len(out))
	}
	if len(out[0].Products) != 2 {
		t.Fatalf("got %d products, want 2", len(out[0].Products))
	}
	if out[0].Products[1].Images == nil || out[0].Products[1].Collections == nil {
		t.Errorf("empty relations should be empty slices, got %+v", out[0].Products[1])
	}
}

func TestCollectionsWithProductsSkipsUnknownProducts(t *testing.T) {
	a := New()
	g := testGraph()
	col := g.Collection(5)
	col.ProductIDs = []int64{10, 404}

	out, err := a.CollectionsWithProducts(g, []*domain.Collection{col})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || len(out[0].Products) != 1 || out[0].Products[0].ID != 10 {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestAssemblyDoesNotMutate(t *testing.T) {
	a := New()
	g := testGraph()
	before := *g.Product(10)
	beforeImages := append([]*domain.ProductImage(nil), before.Images...)

	if _, err := a.Product(g, g.Product(10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(beforeImages, g.Product(10).Images) {
		t.Errorf("image slice was reordered")
	}
}

func TestNilInputs(t *testing.T) {
	a := New()
	if a.Category(nil) != nil || a.Collection(nil) != nil || a.Order(nil) != nil || a.OrderProduct(nil) != nil {
		t.Error("nil input should assemble to nil")
	}
	resp, err := a.Product(nil, nil)
	if resp != nil || err != nil {
		t.Errorf("Product(nil, nil) = %v, %v", resp, err)
	}
}

// Package slug derives canonical lookup keys from display names and
// caller-supplied filters. Stored slugs and query slugs go through the same
// Normalize so that lookups match.
package slug

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
)

var (
	separators  = regexp.MustCompile(`[^\p{L}\p{M}\p{N}]+`)
	underscores = regexp.MustCompile(`_+`)
)

// Normalize trims, lowercases and joins the words of text with single
// underscores. "RUNNING-GEAR" becomes "running_gear".
func Normalize(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", fmt.Errorf("%w: slug source is empty", domain.ErrInvalidInput)
	}
	// cases.Caser is stateful, so one per call
	s = cases.Lower(language.Und).String(s)
	s = separators.ReplaceAllString(s, "_")
	s = underscores.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "", fmt.Errorf("%w: %q has no slug characters", domain.ErrInvalidInput, text)
	}
	return s, nil
}

// NormalizeList normalizes caller-supplied slug filters. Blank entries and
// entries without slug characters are dropped; duplicates keep first position.
func NormalizeList(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		s, err := Normalize(r)
		if err != nil {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Split breaks a comma-separated query parameter into raw slugs.
func Split(param string) []string {
	if strings.TrimSpace(param) == "" {
		return nil
	}
	return strings.Split(param, ",")
}

package skills

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Category names used by the built-in vocabulary. Custom vocabularies may
// define their own categories; these constants only matter for consumers that
// want to treat technical and soft skills differently.
const (
	CategoryTechnical = "technical"
	CategorySoft      = "soft"
	CategoryDomain    = "domain"
)

// Vocabulary maps a category name to an ordered list of lowercase keywords.
// Matching is plain case-insensitive substring presence, so multi-word
// keywords ("machine learning") work without any tokenization.
type Vocabulary map[string][]string

// Set holds the matched keywords per category, preserving vocabulary order.
type Set map[string][]string

// Extract returns, per category, the subset of vocabulary keywords present in
// text as a case-insensitive substring. A keyword matches at most once no
// matter how many times it occurs. Empty text yields empty matches for every
// category.
func Extract(text string, vocab Vocabulary) Set {
	found := make(Set, len(vocab))
	lower := strings.ToLower(text)

	for category, keywords := range vocab {
		matched := make([]string, 0)
		for _, keyword := range keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(keyword)) {
				matched = append(matched, strings.ToLower(keyword))
			}
		}
		found[category] = matched
	}

	return found
}

// Categories returns the category names present in the set, sorted for
// deterministic iteration.
func (s Set) Categories() []string {
	categories := make([]string, 0, len(s))
	for category := range s {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Union returns the keywords of the requested categories in order, duplicates
// removed on first occurrence. With no arguments it spans all categories in
// sorted category order.
func (s Set) Union(categories ...string) []string {
	if len(categories) == 0 {
		categories = s.Categories()
	}

	seen := make(map[string]struct{})
	union := make([]string, 0)
	for _, category := range categories {
		for _, keyword := range s[category] {
			if _, ok := seen[keyword]; ok {
				continue
			}
			seen[keyword] = struct{}{}
			union = append(union, keyword)
		}
	}
	return union
}

// Count returns the total number of matched keywords across all categories.
func (s Set) Count() int {
	total := 0
	for _, keywords := range s {
		total += len(keywords)
	}
	return total
}

// FromConfig decodes a raw configuration value (as returned by viper for a
// free-form mapping section) into a Vocabulary. Keyword casing is normalized
// to lowercase so config files may use any capitalization.
func FromConfig(raw any) (Vocabulary, error) {
	if raw == nil {
		return nil, nil
	}

	var vocab Vocabulary
	cfg := &mapstructure.DecoderConfig{
		Result:  &vocab,
		TagName: "mapstructure",
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding vocabulary: %w", err)
	}

	for category, keywords := range vocab {
		for i, keyword := range keywords {
			vocab[category][i] = strings.ToLower(strings.TrimSpace(keyword))
		}
	}

	return vocab, nil
}

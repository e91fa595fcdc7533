package job

import (
	"github.com/atsfoundry/resume-optimizer/internal/skills"
)

// Requirements is the ordered set of keywords a job description asks for,
// derived purely from vocabulary lookup against the description text. The
// original description travels along for prompt construction.
type Requirements struct {
	Keywords    []string
	Description string
}

// Analyze extracts the required keywords from a job description using the
// same vocabulary matching as the resume skill extractor. Keyword order is
// technical, then domain, then soft, each in vocabulary order, duplicates
// removed on first occurrence. An empty description yields empty
// requirements; the caller decides whether that is terminal.
func Analyze(description string, vocab skills.Vocabulary) *Requirements {
	found := skills.Extract(description, vocab)

	keywords := found.Union(
		skills.CategoryTechnical,
		skills.CategoryDomain,
		skills.CategorySoft,
	)

	// Custom vocabularies may use categories outside the built-in three.
	for _, category := range found.Categories() {
		switch category {
		case skills.CategoryTechnical, skills.CategoryDomain, skills.CategorySoft:
			continue
		}
		keywords = appendMissing(keywords, found[category])
	}

	return &Requirements{Keywords: keywords, Description: description}
}

// Len returns the number of required keywords.
func (r *Requirements) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Keywords)
}

func appendMissing(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, keyword := range dst {
		seen[keyword] = struct{}{}
	}
	for _, keyword := range src {
		if _, ok := seen[keyword]; ok {
			continue
		}
		seen[keyword] = struct{}{}
		dst = append(dst, keyword)
	}
	return dst
}

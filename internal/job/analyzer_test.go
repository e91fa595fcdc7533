package job

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atsfoundry/resume-optimizer/internal/skills"
)

func TestAnalyzeOrdersCategories(t *testing.T) {
	t.Parallel()

	vocab := skills.Vocabulary{
		skills.CategoryTechnical: {"python", "docker"},
		skills.CategorySoft:      {"leadership"},
		skills.CategoryDomain:    {"agile"},
	}

	reqs := Analyze("Looking for leadership in an agile team using Docker and Python", vocab)

	assert.Equal(t, []string{"python", "docker", "agile", "leadership"}, reqs.Keywords)
}

func TestAnalyzeDeduplicatesAcrossCategories(t *testing.T) {
	t.Parallel()

	vocab := skills.Vocabulary{
		skills.CategoryTechnical: {"api"},
		skills.CategoryDomain:    {"api", "testing"},
	}

	reqs := Analyze("api testing role", vocab)

	assert.Equal(t, []string{"api", "testing"}, reqs.Keywords)
}

func TestAnalyzeEmptyDescription(t *testing.T) {
	t.Parallel()

	reqs := Analyze("", skills.Default())

	assert.Zero(t, reqs.Len())
}

func TestAnalyzeCustomCategories(t *testing.T) {
	t.Parallel()

	vocab := skills.Vocabulary{
		"languages": {"go", "rust"},
	}

	reqs := Analyze("We write Go and Rust services", vocab)

	assert.ElementsMatch(t, []string{"go", "rust"}, reqs.Keywords)
}

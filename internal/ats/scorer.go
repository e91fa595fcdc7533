package ats

import (
	"fmt"
	"strings"

	"github.com/atsfoundry/resume-optimizer/internal/resume"
)

// Resume length bounds for the format check, in words.
const (
	minResumeWords = 120
	maxResumeWords = 1200
)

// Weights controls the blend of the keyword and format sub-scores. The
// 50/50 default is a heuristic choice, kept configurable on purpose.
type Weights struct {
	Keyword float64
	Format  float64
}

// DefaultWeights returns the default 50/50 blend.
func DefaultWeights() Weights {
	return Weights{Keyword: 0.5, Format: 0.5}
}

// normalized scales the weights so they sum to 1, falling back to the default
// blend when both are zero or negative.
func (w Weights) normalized() Weights {
	if w.Keyword < 0 {
		w.Keyword = 0
	}
	if w.Format < 0 {
		w.Format = 0
	}

	total := w.Keyword + w.Format
	if total == 0 {
		return DefaultWeights()
	}

	return Weights{Keyword: w.Keyword / total, Format: w.Format / total}
}

// Result is the ATS compatibility assessment for a single resume.
type Result struct {
	Final           float64  `json:"final"`
	KeywordScore    float64  `json:"keyword_score"`
	FormatScore     float64  `json:"format_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	Recommendations []string `json:"recommendations"`
}

type formatCheck struct {
	name    string
	message string
	passed  func(record *resume.Record) bool
}

// formatChecks run in fixed order; their order defines recommendation order.
func formatChecks() []formatCheck {
	checks := []formatCheck{
		{
			name:    "contact_email",
			message: "add a contact email address",
			passed:  func(r *resume.Record) bool { return r.Contact.Email != "" },
		},
		{
			name:    "contact_phone",
			message: "add a contact phone number",
			passed:  func(r *resume.Record) bool { return r.Contact.Phone != "" },
		},
	}

	for _, section := range []string{
		resume.SectionSummary,
		resume.SectionExperience,
		resume.SectionEducation,
		resume.SectionSkills,
	} {
		section := section
		checks = append(checks, formatCheck{
			name:    "section_" + section,
			message: fmt.Sprintf("add a %s section with a standard header", section),
			passed:  func(r *resume.Record) bool { return r.HasSection(section) },
		})
	}

	checks = append(checks, formatCheck{
		name:    "length",
		message: fmt.Sprintf("keep the resume between %d and %d words", minResumeWords, maxResumeWords),
		passed: func(r *resume.Record) bool {
			words := r.WordCount()
			return words >= minResumeWords && words <= maxResumeWords
		},
	})

	return checks
}

// Score computes the ATS compatibility of a resume against the required
// keywords. matched is the set of keywords found in the resume text (already
// lowercased); required is the job's ordered keyword list.
//
// keyword score = 100 * matched required keywords / total required keywords,
// 100 when required is empty. format score = 100 * passed checks / total
// checks. The final
// score blends the two by weight and is clamped to [0,100].
func Score(record *resume.Record, matched []string, required []string, weights Weights) *Result {
	weights = weights.normalized()

	result := &Result{}

	matchedSet := make(map[string]struct{}, len(matched))
	for _, keyword := range matched {
		matchedSet[strings.ToLower(keyword)] = struct{}{}
	}

	for _, keyword := range required {
		if _, ok := matchedSet[strings.ToLower(keyword)]; ok {
			result.MatchedKeywords = append(result.MatchedKeywords, keyword)
		} else {
			result.MissingKeywords = append(result.MissingKeywords, keyword)
		}
	}

	if len(required) == 0 {
		result.KeywordScore = 100
	} else {
		result.KeywordScore = 100 * float64(len(result.MatchedKeywords)) / float64(len(required))
	}

	checks := formatChecks()
	passed := 0
	failedMessages := make([]string, 0)
	for _, check := range checks {
		if check.passed(record) {
			passed++
			continue
		}
		failedMessages = append(failedMessages, check.message)
	}
	result.FormatScore = 100 * float64(passed) / float64(len(checks))

	result.Final = clamp(weights.Keyword*result.KeywordScore+weights.Format*result.FormatScore, 0, 100)

	// Keyword recommendations first, in required order, then format
	// recommendations in check order.
	for _, keyword := range result.MissingKeywords {
		result.Recommendations = append(result.Recommendations, "include keyword "+keyword)
	}
	result.Recommendations = append(result.Recommendations, failedMessages...)

	return result
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package resume

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyInput reports that a resume or job description contained no usable
// text. It is the only terminal error of the pipeline: everything else has a
// deterministic fallback.
var ErrEmptyInput = errors.New("input text is empty")

// Section header names recognized by the parser, in canonical order.
const (
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	// Maps a lowercase header word to the canonical section name.
	sectionAliases = map[string]string{
		"summary":              SectionSummary,
		"professional summary": SectionSummary,
		"profile":              SectionSummary,
		"objective":            SectionSummary,
		"experience":           SectionExperience,
		"work experience":      SectionExperience,
		"professional experience": SectionExperience,
		"employment":           SectionExperience,
		"education":            SectionEducation,
		"skills":               SectionSkills,
		"technical skills":     SectionSkills,
		"core competencies":    SectionSkills,
	}
)

// Contact holds the extracted contact fields. Empty string means the field
// was not found in the resume text.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Section is a named chunk of resume text.
type Section struct {
	Name string
	Body string
}

// Record is the structured view of a resume produced by Parse. It is created
// fresh per invocation and never shared between runs.
type Record struct {
	RawText  string
	Contact  Contact
	Sections []Section
}

// Parse splits raw resume text into contact info and named sections using
// line-pattern heuristics. Header matching is case-insensitive and tolerates
// a trailing colon. Returns ErrEmptyInput when the text is blank.
func Parse(text string) (*Record, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	record := &Record{
		RawText: text,
		Contact: extractContact(text),
	}

	record.Sections = splitSections(text)

	return record, nil
}

// Section returns the body of the named section, or empty string with false
// when the section was not found.
func (r *Record) Section(name string) (string, bool) {
	for _, section := range r.Sections {
		if section.Name == name {
			return section.Body, true
		}
	}
	return "", false
}

// HasSection reports whether the named section was found.
func (r *Record) HasSection(name string) bool {
	_, ok := r.Section(name)
	return ok
}

// WordCount returns the number of whitespace-separated words in the raw text.
func (r *Record) WordCount() int {
	return len(strings.Fields(r.RawText))
}

func extractContact(text string) Contact {
	contact := Contact{
		Email: emailPattern.FindString(text),
		Phone: phonePattern.FindString(text),
	}

	// The name heuristic is the first non-blank line, as long as it does not
	// look like a contact line itself.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if emailPattern.MatchString(line) || phonePattern.MatchString(line) {
			break
		}
		contact.Name = line
		break
	}

	return contact
}

func splitSections(text string) []Section {
	lines := strings.Split(text, "\n")

	sections := make([]Section, 0, 4)
	current := ""
	var body []string

	flush := func() {
		if current == "" {
			return
		}
		sections = append(sections, Section{
			Name: current,
			Body: strings.TrimSpace(strings.Join(body, "\n")),
		})
	}

	for _, line := range lines {
		name, rest, ok := matchHeader(line)
		if !ok {
			if current != "" {
				body = append(body, line)
			}
			continue
		}

		flush()
		current = name
		body = body[:0]
		if rest != "" {
			body = append(body, rest)
		}
	}
	flush()

	return sections
}

// matchHeader recognizes a section header line such as "EXPERIENCE",
// "Experience:" or "experience: built things". It returns the canonical
// section name and any inline content following the colon.
func matchHeader(line string) (name, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", "", false
	}

	header := trimmed
	if idx := strings.Index(trimmed, ":"); idx != -1 {
		header = trimmed[:idx]
		rest = strings.TrimSpace(trimmed[idx+1:])
	}

	canonical, found := sectionAliases[strings.ToLower(strings.TrimSpace(header))]
	if !found {
		return "", "", false
	}

	return canonical, rest, true
}

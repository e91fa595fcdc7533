package optimizer

import (
	"strings"

	"github.com/atsfoundry/resume-optimizer/internal/job"
	"github.com/atsfoundry/resume-optimizer/internal/resume"
	"github.com/atsfoundry/resume-optimizer/internal/skills"
)

const (
	fallbackName       = "Your Name"
	fallbackExperience = `Software Developer | Company | 2022 - Present
- Developed and maintained applications using modern frameworks and technologies
- Collaborated with cross-functional teams to deliver software solutions
- Implemented automated testing and deployment processes`
	fallbackEducation = "B.S. in Computer Science | University"
)

// Compose assembles an ATS-friendly resume without any LLM involvement. The
// output is fully determined by its inputs: same record, skills and
// requirements always produce the same text. Section headers are chosen so
// the result passes the parser's own header recognition.
func Compose(record *resume.Record, found skills.Set, reqs *job.Requirements) string {
	var b strings.Builder

	name := record.Contact.Name
	if name == "" {
		name = fallbackName
	}
	b.WriteString(name)
	b.WriteString("\n")

	contact := make([]string, 0, 2)
	if record.Contact.Email != "" {
		contact = append(contact, "Email: "+record.Contact.Email)
	}
	if record.Contact.Phone != "" {
		contact = append(contact, "Phone: "+record.Contact.Phone)
	}
	if len(contact) > 0 {
		b.WriteString(strings.Join(contact, " | "))
		b.WriteString("\n")
	}

	b.WriteString("\nPROFESSIONAL SUMMARY\n")
	b.WriteString("Experienced professional with a proven track record of delivering reliable, maintainable solutions.\n")
	if aligned := alignedKeywords(found, reqs, 5); len(aligned) > 0 {
		b.WriteString("Key skills aligned with target role: " + strings.Join(aligned, ", ") + ".\n")
	} else {
		b.WriteString("Strong background in software development with focus on quality and performance.\n")
	}

	b.WriteString("\nTECHNICAL SKILLS\n")
	writeBullet(&b, "Languages & Tools", titleAll(head(found[skills.CategoryTechnical], 8)))
	writeBullet(&b, "Practices", titleAll(head(found[skills.CategoryDomain], 6)))

	b.WriteString("\nPROFESSIONAL EXPERIENCE\n")
	if body, ok := record.Section(resume.SectionExperience); ok && body != "" {
		b.WriteString(body)
	} else {
		b.WriteString(fallbackExperience)
	}
	b.WriteString("\n")

	b.WriteString("\nEDUCATION\n")
	if body, ok := record.Section(resume.SectionEducation); ok && body != "" {
		b.WriteString(body)
	} else {
		b.WriteString(fallbackEducation)
	}
	b.WriteString("\n")

	competencies := titleAll(head(append(append([]string{}, found[skills.CategorySoft]...), found[skills.CategoryDomain]...), 8))
	if len(competencies) > 0 {
		b.WriteString("\nCORE COMPETENCIES\n")
		b.WriteString(strings.Join(competencies, " - "))
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}

// alignedKeywords returns up to limit resume skills (technical and domain)
// that the job also requires, in resume skill order.
func alignedKeywords(found skills.Set, reqs *job.Requirements, limit int) []string {
	if reqs == nil || reqs.Len() == 0 {
		return nil
	}

	required := make(map[string]struct{}, len(reqs.Keywords))
	for _, keyword := range reqs.Keywords {
		required[strings.ToLower(keyword)] = struct{}{}
	}

	aligned := make([]string, 0, limit)
	for _, keyword := range found.Union(skills.CategoryTechnical, skills.CategoryDomain) {
		if _, ok := required[keyword]; !ok {
			continue
		}
		aligned = append(aligned, keyword)
		if len(aligned) == limit {
			break
		}
	}
	return aligned
}

func writeBullet(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("- " + label + ": " + strings.Join(items, ", ") + "\n")
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func titleAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = title(item)
	}
	return out
}

// title uppercases the first letter of each space-separated word. Enough for
// skill keywords; no unicode casing rules needed for the vocabulary.
func title(s string) string {
	words := strings.Split(s, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

package optimizer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/atsfoundry/resume-optimizer/internal/ai"
	"github.com/atsfoundry/resume-optimizer/internal/job"
	"github.com/atsfoundry/resume-optimizer/internal/resume"
	"github.com/atsfoundry/resume-optimizer/internal/skills"
	"github.com/atsfoundry/resume-optimizer/internal/utils"
)

//go:embed prompt.md
var promptTemplate string

const systemInstruction = "You are a resume optimization assistant. " +
	"Rewrite resumes to pass applicant tracking systems while staying truthful to the original content."

// Result sources.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

const defaultMaxLogLength = 200

// Result is the optimized resume text plus which branch produced it.
type Result struct {
	Text   string
	Source string
}

// Optimizer rewrites a resume for a target job. The primary path delegates to
// an LLM provider; when the provider is missing or fails, a deterministic
// composer takes over. The two branches are explicit: no provider error ever
// escapes Optimize.
type Optimizer struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

// New creates an Optimizer. generator may be nil, which forces the
// deterministic fallback branch.
func New(generator ai.Generator, logger *zap.Logger, maxLogLength int) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Optimizer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Optimize produces the optimized resume for the parsed record, the skills
// found in it and the job requirements.
func (o *Optimizer) Optimize(ctx context.Context, record *resume.Record, found skills.Set, reqs *job.Requirements) (*Result, error) {
	if record == nil {
		return nil, fmt.Errorf("resume record is required")
	}

	if o.generator == nil {
		o.logger.Info("no llm provider configured, composing resume deterministically")
		return &Result{Text: Compose(record, found, reqs), Source: SourceFallback}, nil
	}

	prompt := buildPrompt(record.RawText, found, reqs)

	o.logger.Debug("llm optimization request",
		zap.String("model", o.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, o.maxLogLen)),
	)

	text, err := o.generator.Generate(ctx, systemInstruction, prompt)
	if err != nil {
		o.logger.Warn("llm optimization failed, composing resume deterministically",
			zap.Error(fmt.Errorf("%w: %v", ai.ErrUnavailable, err)),
		)
		return &Result{Text: Compose(record, found, reqs), Source: SourceFallback}, nil
	}

	o.logger.Debug("llm optimization response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", utils.TruncateForLog(text, o.maxLogLen)),
	)

	return &Result{Text: strings.TrimSpace(text), Source: SourceLLM}, nil
}

func buildPrompt(resumeText string, found skills.Set, reqs *job.Requirements) string {
	if reqs == nil {
		reqs = &job.Requirements{}
	}

	var skillLines []string
	for _, category := range found.Categories() {
		if len(found[category]) == 0 {
			continue
		}
		skillLines = append(skillLines, fmt.Sprintf("%s: %s", category, strings.Join(found[category], ", ")))
	}

	jobSection := strings.TrimSpace(reqs.Description)
	if reqs.Len() > 0 {
		jobSection += "\n\nKeywords to include: " + strings.Join(reqs.Keywords, ", ")
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{RESUME}}", resumeText)
	prompt = strings.ReplaceAll(prompt, "{{SKILLS}}", strings.Join(skillLines, "\n"))
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobSection)
	return prompt
}

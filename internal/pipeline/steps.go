package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/atsfoundry/resume-optimizer/internal/ats"
	"github.com/atsfoundry/resume-optimizer/internal/job"
	"github.com/atsfoundry/resume-optimizer/internal/optimizer"
	"github.com/atsfoundry/resume-optimizer/internal/resume"
	"github.com/atsfoundry/resume-optimizer/internal/skills"
)

type parseStep struct{}

func (s *parseStep) Name() string { return "parse_resume" }

func (s *parseStep) Run(_ context.Context, deps Deps, state *State) error {
	record, err := resume.Parse(state.ResumeText)
	if err != nil {
		return err
	}

	state.Record = record

	deps.Logger.Debug("parsed resume",
		zap.String("name", record.Contact.Name),
		zap.Bool("has_email", record.Contact.Email != ""),
		zap.Bool("has_phone", record.Contact.Phone != ""),
		zap.Int("sections", len(record.Sections)),
	)

	return nil
}

type skillsStep struct{}

func (s *skillsStep) Name() string { return "extract_skills" }

func (s *skillsStep) Run(_ context.Context, deps Deps, state *State) error {
	state.Skills = skills.Extract(state.ResumeText, deps.Vocabulary)

	deps.Logger.Debug("extracted skills", zap.Int("count", state.Skills.Count()))

	return nil
}

type jobStep struct{}

func (s *jobStep) Name() string { return "analyze_job" }

func (s *jobStep) Run(_ context.Context, deps Deps, state *State) error {
	state.Requirements = job.Analyze(state.JobText, deps.Vocabulary)

	deps.Logger.Debug("analyzed job description",
		zap.Int("required_keywords", state.Requirements.Len()),
	)

	return nil
}

type optimizeStep struct{}

func (s *optimizeStep) Name() string { return "optimize_resume" }

func (s *optimizeStep) Run(ctx context.Context, deps Deps, state *State) error {
	if state.Record == nil {
		return fmt.Errorf("resume must be parsed before optimization")
	}

	result, err := optimizer.New(deps.Generator, deps.Logger, deps.MaxLogLen).
		Optimize(ctx, state.Record, state.Skills, state.Requirements)
	if err != nil {
		return err
	}

	state.Optimized = result

	deps.Logger.Info("optimized resume", zap.String("source", result.Source))

	return nil
}

type scoreStep struct{}

func (s *scoreStep) Name() string { return "score_ats" }

// Run scores the optimized resume when one exists, otherwise the original.
// Matching and format checks run against the text being scored, so an
// optimized resume is judged on its own content.
func (s *scoreStep) Run(_ context.Context, deps Deps, state *State) error {
	text := state.ResumeText
	record := state.Record
	if state.Optimized != nil {
		text = state.Optimized.Text

		scored, err := resume.Parse(text)
		if err != nil {
			return fmt.Errorf("parsing optimized resume: %w", err)
		}
		record = scored
	}

	if record == nil {
		return fmt.Errorf("resume must be parsed before scoring")
	}

	matched := skills.Extract(text, deps.Vocabulary).Union()

	var required []string
	if state.Requirements != nil {
		required = state.Requirements.Keywords
	}

	state.Score = ats.Score(record, matched, required, deps.Weights)

	deps.Logger.Info("scored resume",
		zap.Float64("final", state.Score.Final),
		zap.Float64("keyword_score", state.Score.KeywordScore),
		zap.Float64("format_score", state.Score.FormatScore),
		zap.Int("recommendations", len(state.Score.Recommendations)),
	)

	return nil
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/atsfoundry/resume-optimizer/internal/ai"
	"github.com/atsfoundry/resume-optimizer/internal/ats"
	"github.com/atsfoundry/resume-optimizer/internal/job"
	"github.com/atsfoundry/resume-optimizer/internal/optimizer"
	"github.com/atsfoundry/resume-optimizer/internal/resume"
	"github.com/atsfoundry/resume-optimizer/internal/skills"
)

// Step is a single stage of the optimization pipeline. Steps run strictly in
// order over the shared per-run State; there is no branching back and no
// concurrency.
type Step interface {
	Name() string
	Run(ctx context.Context, deps Deps, state *State) error
}

// Deps aggregates dependencies shared across all pipeline steps.
type Deps struct {
	Logger     *zap.Logger
	Generator  ai.Generator
	Vocabulary skills.Vocabulary
	Weights    ats.Weights
	MaxLogLen  int
}

// State is the pass-through record owned by a single run. It is created
// fresh per invocation and discarded after output.
type State struct {
	ResumeText string
	JobText    string

	Record       *resume.Record
	Skills       skills.Set
	Requirements *job.Requirements
	Optimized    *optimizer.Result
	Score        *ats.Result
}

// Run executes the supplied steps sequentially against the state, logging
// each step's duration.
func Run(ctx context.Context, deps Deps, state *State, steps []Step) error {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Vocabulary == nil {
		deps.Vocabulary = skills.Default()
	}

	for _, step := range steps {
		start := time.Now()

		if err := step.Run(ctx, deps, state); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("pipeline step",
			zap.String("name", step.Name()),
			zap.Duration("took", time.Since(start)),
		)
	}

	return nil
}

// Default returns the full optimization pipeline:
// parse -> extract skills -> analyze job -> optimize -> score.
func Default() []Step {
	return []Step{
		&parseStep{},
		&skillsStep{},
		&jobStep{},
		&optimizeStep{},
		&scoreStep{},
	}
}

// ScoreOnly returns the analysis-only pipeline: the resume is parsed, matched
// and scored as-is, with no LLM involvement.
func ScoreOnly() []Step {
	return []Step{
		&parseStep{},
		&skillsStep{},
		&jobStep{},
		&scoreStep{},
	}
}

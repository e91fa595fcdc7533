package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atsfoundry/resume-optimizer/internal/logger"
	"github.com/atsfoundry/resume-optimizer/internal/pipeline"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score the resume against a job description as-is, without optimization",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().Bool("report-json", false, "print the score report as json instead of plain text")
	scoreCmd.Flags().StringP("resume-file", "r", "", "resume file to score (pdf, docx or plain text)")
	scoreCmd.Flags().String("job-file", "", "job description file (pdf, docx or plain text)")
}

// score runs the analysis-only pipeline. No LLM provider is constructed, so
// the command never needs an API key.
func score(cmd *cobra.Command) {
	ctx := context.Background()

	viper.BindPFlag("resume.file", cmd.Flags().Lookup("resume-file"))
	viper.BindPFlag("job.file", cmd.Flags().Lookup("job-file"))

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		config = &Config{}
	}

	log = logger.WithRunID(log, uuid.NewString())

	resumeText, jobText, err := resolveInputs(config, log)
	if err != nil {
		log.Fatal(
			"resolving inputs",
			zap.Error(err),
			zap.String("hint", "provide the resume and job description via flags or the 'resume' and 'job' keys in the configuration file"),
		)
	}

	vocab, err := buildVocabulary(config)
	if err != nil {
		log.Fatal("building the skill vocabulary", zap.Error(err))
	}

	deps := pipeline.Deps{
		Logger:     log,
		Vocabulary: vocab,
		Weights:    atsWeights(config.ATS),
	}

	state := &pipeline.State{ResumeText: resumeText, JobText: jobText}

	if err := pipeline.Run(ctx, deps, state, pipeline.ScoreOnly()); err != nil {
		log.Fatal("pipeline failed", zap.Error(err))
	}

	if cmd.Flag("report-json").Value.String() == "true" {
		report, err := json.MarshalIndent(state.Score, "", "  ")
		if err != nil {
			log.Fatal("encoding the score report", zap.Error(err))
		}
		fmt.Println(string(report))
		return
	}

	printSkills(state.Skills)
	printScore(state.Score)
}

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/atsfoundry/resume-optimizer/internal/ai"
	"github.com/atsfoundry/resume-optimizer/internal/ai/gemini"
	"github.com/atsfoundry/resume-optimizer/internal/ai/openai"
	"github.com/atsfoundry/resume-optimizer/internal/ats"
	"github.com/atsfoundry/resume-optimizer/internal/logger"
	"github.com/atsfoundry/resume-optimizer/internal/pipeline"
	"github.com/atsfoundry/resume-optimizer/internal/secrets"
	"github.com/atsfoundry/resume-optimizer/internal/skills"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes                 = "Yes"
	PromptNo                  = "No"
	PromptShowResume          = "Show optimized resume"
	PromptShowRecommendations = "Show recommendations"
)

var errExit = errors.New("exit requested")

var savePrompt = promptui.Select{
	Label: "Save the optimized resume?",
	Items: []string{PromptYes, PromptNo, PromptShowResume, PromptShowRecommendations},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full optimization pipeline and save the result",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before saving the optimized resume")
	runCmd.Flags().StringP("resume-file", "r", "", "resume file to optimize (pdf, docx or plain text)")
	runCmd.Flags().String("job-file", "", "job description file (pdf, docx or plain text)")
	runCmd.Flags().StringP("output", "o", "", "path for the optimized resume. Default is resume_<run-id>.txt")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	// The score command shares these keys, so bind only for the command
	// actually being executed.
	viper.BindPFlag("resume.file", cmd.Flags().Lookup("resume-file"))
	viper.BindPFlag("job.file", cmd.Flags().Lookup("job-file"))
	viper.BindPFlag("output", cmd.Flags().Lookup("output"))

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

	runID := uuid.NewString()
	log = logger.WithRunID(log, runID)

	log.Info("starting the resume-optimizer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

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

	generator, maxLogLen, err := newGenerator(ctx, config.AI, log)
	if err != nil {
		log.Warn("continuing without an llm provider", zap.Error(err))
		generator = nil
	}

	deps := pipeline.Deps{
		Logger:     log,
		Generator:  generator,
		Vocabulary: vocab,
		Weights:    atsWeights(config.ATS),
		MaxLogLen:  maxLogLen,
	}

	state := &pipeline.State{ResumeText: resumeText, JobText: jobText}

	if err := pipeline.Run(ctx, deps, state, pipeline.Default()); err != nil {
		log.Fatal("pipeline failed", zap.Error(err))
	}

	printSkills(state.Skills)
	printScore(state.Score)

	output := strings.TrimSpace(viper.GetString("output"))
	if output == "" {
		output = strings.TrimSpace(config.Output)
	}
	if output == "" {
		output = fmt.Sprintf("resume_%s.txt", runID)
	}

	for {
		action := PromptYes
		if cmd.Flag("auto-approve").Value.String() == "false" {
			var err error
			_, action, err = savePrompt.Run()
			if err != nil {
				log.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(action, state, output, log); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, state *pipeline.State, output string, log *zap.Logger) error {
	switch action {
	case PromptYes:
		if err := os.WriteFile(output, []byte(state.Optimized.Text+"\n"), 0o644); err != nil {
			return fmt.Errorf("saving optimized resume: %w", err)
		}
		log.Info("saved optimized resume",
			zap.String("filename", output),
			zap.String("source", state.Optimized.Source),
		)
		return errExit
	case PromptNo:
		log.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptShowResume:
		fmt.Println(state.Optimized.Text)
		return nil
	case PromptShowRecommendations:
		printRecommendations(state.Score)
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// resolveInputs returns the resume and job description texts from the config
// sources, routing files through the matching extraction chains.
func resolveInputs(config *Config, log *zap.Logger) (string, string, error) {
	if config.Resume == nil {
		return "", "", errors.New("a resume source is required")
	}

	resumeText, err := config.Resume.Resolve(log)
	if err != nil {
		return "", "", fmt.Errorf("resolving resume: %w", err)
	}

	if config.Job == nil {
		return "", "", errors.New("a job description source is required")
	}

	jobText, err := config.Job.Resolve(log)
	if err != nil {
		return "", "", fmt.Errorf("resolving job description: %w", err)
	}

	return resumeText, jobText, nil
}

func buildVocabulary(config *Config) (skills.Vocabulary, error) {
	if len(config.Vocabulary) == 0 {
		return skills.Default(), nil
	}

	return skills.FromConfig(config.Vocabulary)
}

func atsWeights(cfg *ATSConfig) ats.Weights {
	if cfg == nil {
		return ats.DefaultWeights()
	}

	return ats.Weights{Keyword: cfg.KeywordWeight, Format: cfg.FormatWeight}
}

// newGenerator builds the LLM text generator for the configured provider. The
// second return value is the log truncation limit for prompt/response debug
// logging. An unset or "none" provider yields a nil generator, which makes
// the optimizer use its deterministic composer.
func newGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Generator, int, error) {
	if cfg == nil {
		return nil, 0, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", ai.ProviderNone:
		return nil, 0, nil
	case ai.ProviderGemini:
		gcfg := cfg.Gemini
		if gcfg == nil {
			gcfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: gcfg.APIKeyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, 0, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
		}

		genLogger := logger.WithCommonFields(log, ai.ProviderGemini, gcfg.Model)

		generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, genLogger)
		if err != nil {
			return nil, 0, err
		}

		return generator, gcfg.MaxLogLength, nil
	case ai.ProviderOpenAI:
		ocfg := cfg.OpenAI
		if ocfg == nil {
			ocfg = &OpenAIConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: ocfg.APIKeyFile,
			Env:  "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, 0, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY)", err)
		}

		genLogger := logger.WithCommonFields(log, ai.ProviderOpenAI, ocfg.Model)

		generator, err := openai.NewGenerator(apiKey, ocfg.Model, ocfg.MaxRetries, genLogger)
		if err != nil {
			return nil, 0, err
		}

		return generator, ocfg.MaxLogLength, nil
	default:
		return nil, 0, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func printSkills(found skills.Set) {
	fmt.Println("\nSKILL ANALYSIS")
	for _, category := range found.Categories() {
		fmt.Printf("  %s: %s\n", category, strings.Join(found[category], ", "))
	}
	if found.Count() == 0 {
		fmt.Println("  no known skills detected")
	}
}

func printScore(score *ats.Result) {
	fmt.Println("\nATS SCORE")
	fmt.Printf("  final:   %.1f\n", score.Final)
	fmt.Printf("  keyword: %.1f\n", score.KeywordScore)
	fmt.Printf("  format:  %.1f\n", score.FormatScore)

	if len(score.MatchedKeywords) > 0 {
		fmt.Printf("  matched keywords: %s\n", strings.Join(score.MatchedKeywords, ", "))
	}
	if len(score.MissingKeywords) > 0 {
		fmt.Printf("  missing keywords: %s\n", strings.Join(score.MissingKeywords, ", "))
	}

	printRecommendations(score)
}

func printRecommendations(score *ats.Result) {
	if len(score.Recommendations) == 0 {
		return
	}

	fmt.Println("  recommendations:")
	for _, rec := range score.Recommendations {
		fmt.Printf("    - %s\n", rec)
	}
}

func fatalf(format string, args ...any) {
	log.Fatalf(format, args...)
}

package cmd

import (
	"errors"
	"log"

	"github.com/atsfoundry/resume-optimizer/internal/input"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-optimizer"
)

type Config struct {
	Resume     *input.Source  `mapstructure:"resume"`
	Job        *input.Source  `mapstructure:"job"`
	Output     string         `mapstructure:"output"`
	Vocabulary map[string]any `mapstructure:"vocabulary"`
	AI         *AIConfig      `mapstructure:"ai"`
	ATS        *ATSConfig     `mapstructure:"ats"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
	OpenAI   *OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type OpenAIConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ATSConfig struct {
	KeywordWeight float64 `mapstructure:"keyword-weight"`
	FormatWeight  float64 `mapstructure:"format-weight"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-optimizer is a cli for tailoring a resume to a job description and scoring it against ATS checks",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A local .env is optional; when present it supplies API keys.
	_ = godotenv.Load()

	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	if err := viper.BindEnv("ai.openai.api-key-file", "OPENAI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding OPENAI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-optimizer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the run and score commands. If neither was
	// called, we can skip initialization.
	if runCmd.CalledAs() == "" && scoreCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Inputs can arrive entirely via flags, so a missing default config
		// file is fine. A config file that fails to parse is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

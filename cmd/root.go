package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/ai"
	"github.com/gdsc-alina/alina/internal/ai/gemini"
	"github.com/gdsc-alina/alina/internal/challenge"
	applog "github.com/gdsc-alina/alina/internal/logger"
	"github.com/gdsc-alina/alina/internal/secrets"
	"github.com/gdsc-alina/alina/internal/workspace"
)

const (
	app = "alina"
)

type Config struct {
	Workspace string           `mapstructure:"workspace"`
	Data      string           `mapstructure:"data"`
	Challenge *ChallengeConfig `mapstructure:"challenge"`
	AI        *AIConfig        `mapstructure:"ai"`
}

type ChallengeConfig struct {
	BaseURL       string `mapstructure:"base-url"`
	PublicBaseURL string `mapstructure:"public-base-url"`
	Region        string `mapstructure:"region"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "alina is a cli for the career guidance challenge: interview personas, analyze postings and submit suggestions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"challenge.base-url":        "AWS_BASE_URL",
		"challenge.public-base-url": "AWS_PUBLIC_BASE_URL",
		"challenge.region":          "AWS_REGION",
		"ai.gemini.api-key-file":    "GEMINI_API_KEY_FILE",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is alina.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("workspace", "workspace", "folder holding the analysis databases, interviews and submissions")
	rootCmd.PersistentFlags().String("data", "data", "folder holding the raw job and training postings")
	rootCmd.PersistentFlags().String("ai", "", "ai provider to use (gemini); unset runs the mock implementations")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
	viper.BindPFlag("ai.provider", rootCmd.PersistentFlags().Lookup("ai"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)

	// Everything has flag or environment fallbacks, so a missing default
	// config file is fine.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Challenge == nil {
		config.Challenge = &ChallengeConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	return config, nil
}

// env bundles what almost every command needs: a logger, the parsed config
// and the opened workspace.
type env struct {
	ctx    context.Context
	logger *zap.Logger
	config *Config
	ws     *workspace.Workspace
}

func newEnv() *env {
	log := mustLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	ws, err := workspace.New(config.Workspace, config.Data)
	if err != nil {
		log.Fatal("opening the workspace", zap.Error(err))
	}

	return &env{
		ctx:    context.Background(),
		logger: log,
		config: config,
		ws:     ws,
	}
}

func mustLogger() *zap.Logger {
	l, err := applog.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// generator builds the configured AI backend. An empty provider means the
// commands fall back to their mock implementations and get a nil generator.
func (e *env) generator() ai.Generator {
	gen, err := newGenerator(e.ctx, e.config.AI, e.logger)
	if err != nil {
		e.logger.Fatal("building the ai generator", zap.Error(err))
	}
	return gen
}

func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", "mock":
		return nil, nil
	case "gemini":
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := applog.WithCommonFields(logger, "gemini", cfg.Gemini.Model)
	genLogger.Debug("using gemini generator", zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries)
}

func (e *env) challengeClient() *challenge.Client {
	client, err := newChallengeClient(e.ctx, e.config.Challenge, e.logger)
	if err != nil {
		e.logger.Fatal("building the challenge client", zap.Error(err))
	}
	return client
}

func newChallengeClient(ctx context.Context, cfg *ChallengeConfig, logger *zap.Logger) (*challenge.Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("challenge base url is not configured (set challenge.base-url or AWS_BASE_URL)")
	}
	if strings.TrimSpace(cfg.Region) == "" {
		return nil, errors.New("challenge region is not configured (set challenge.region or AWS_REGION)")
	}

	return challenge.New(ctx, challenge.Config{
		BaseURL:       cfg.BaseURL,
		PublicBaseURL: cfg.PublicBaseURL,
		Region:        cfg.Region,
	}, logger)
}

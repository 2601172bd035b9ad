package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/logger"
)

const (
	app = "hr-screener"
)

type Config struct {
	Roster    RosterConfig    `mapstructure:"roster"`
	Screen    ScreenConfig    `mapstructure:"screen"`
	Shortlist ShortlistConfig `mapstructure:"shortlist"`
	AI        *AIConfig       `mapstructure:"ai"`
}

type RosterConfig struct {
	File      string `mapstructure:"file"`
	URL       string `mapstructure:"url"`
	UserAgent string `mapstructure:"user-agent"`
}

type ScreenConfig struct {
	Keywords string `mapstructure:"keywords"`
	Output   string `mapstructure:"output"`
}

type ShortlistConfig struct {
	MinimumScore int    `mapstructure:"minimum-score"`
	ExcludeFile  string `mapstructure:"exclude-file"`
	HistoryFile  string `mapstructure:"history-file"`
	JobNote      string `mapstructure:"job-note"`
}

type AIConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Provider        string        `mapstructure:"provider"`
	MinimumFitScore float64       `mapstructure:"minimum-fit-score"`
	Gemini          *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hr-screener ranks a candidate roster by how well their skills match job keywords",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("roster.file", "HR_SCREENER_ROSTER_FILE"); err != nil {
		log.Fatalf("binding HR_SCREENER_ROSTER_FILE environment variable: %v", err)
	}

	viper.SetDefault("screen.output", "table")
	viper.SetDefault("shortlist.minimum-score", 50)
	viper.SetDefault("shortlist.history-file", app+".db")
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.minimum-fit-score", 0.6)
	viper.SetDefault("ai.gemini.model", "gemini-2.5-pro")
	viper.SetDefault("ai.gemini.max-retries", 2)
	viper.SetDefault("ai.gemini.max-log-length", 200)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hr-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format: table or json")
	rootCmd.PersistentFlags().String("roster", "", "roster file (yaml or json). The demo roster is used when unset")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("screen.output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("roster.file", rootCmd.PersistentFlags().Lookup("roster"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional unless given explicitly.
	if err := viper.ReadInConfig(); err != nil {
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

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

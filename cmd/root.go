package cmd

import (
	"fmt"
	"os"

	"github.com/bimmerbailey/penmark/internal/config"
	"github.com/bimmerbailey/penmark/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "penmark",
	Short: "Anonymize sent email and profile its writing style",
	Long: `Penmark anonymizes a corpus of sent emails and derives a writing-style
profile from the anonymized text.

It strips markup, cuts quoted replies, redacts addressee names and
contact, financial and address data, then analyzes greetings, sign-offs,
tone and common phrases.

Examples:
  penmark ingest --output output/raw-emails.json ~/Mail/Sent
  penmark process --input output/raw-emails.json
  penmark stats output/cleaned-emails.json
  penmark analyze --since 30d`,
	SilenceUsage: true,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.penmark.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, table, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".penmark")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PENMARK")
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig decodes the global viper instance, applying defaults first so
// commands behave the same when run directly from tests.
func loadConfig() (*config.Config, error) {
	config.SetDefaults(viper.GetViper())
	return config.Load(viper.GetViper())
}

// newLogger returns the command logger. Logs go to stderr so stdout stays
// machine-readable.
func newLogger(cfg *config.Config) *logrus.Logger {
	return logging.New(os.Stderr, cfg.Verbose, cfg.LogFormat)
}

// Package config provides configuration types and helpers for penmark.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application-wide configuration.
type Config struct {
	Format           string          `mapstructure:"format"`
	Verbose          bool            `mapstructure:"verbose"`
	LogFormat        string          `mapstructure:"log_format"`
	RawPath          string          `mapstructure:"raw_path"`
	CleanedPath      string          `mapstructure:"cleaned_path"`
	Workers          int             `mapstructure:"workers"`
	MinContentLength int             `mapstructure:"min_content_length"`
	TimestampFormats []string        `mapstructure:"timestamp_formats"`
	Author           AuthorConfig    `mapstructure:"author"`
	Redaction        RedactionConfig `mapstructure:"redaction"`
	Style            StyleConfig     `mapstructure:"style"`
}

// AuthorConfig identifies the person whose sent mail is being processed.
// The author's names are never redacted.
type AuthorConfig struct {
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
}

// FullName returns the first and last name joined by a space.
func (a AuthorConfig) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// RedactionConfig holds configuration for entity redaction.
type RedactionConfig struct {
	// Categories restricts redaction to the listed categories. Empty means all.
	// Available: contact-email, phone, national-id, financial-account,
	// currency-amount, payment-card, postal-address
	Categories []string `mapstructure:"categories"`
}

// StyleConfig holds configuration for the style analysis.
type StyleConfig struct {
	ProfileOutput      string `mapstructure:"profile_output"`
	TrainingOutput     string `mapstructure:"training_output"`
	SamplesPerCategory int    `mapstructure:"samples_per_category"`
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	outDir := filepath.Join(".", "output")

	v.SetDefault("format", "text")
	v.SetDefault("verbose", false)
	v.SetDefault("log_format", "text")
	v.SetDefault("raw_path", filepath.Join(outDir, "raw-emails.json"))
	v.SetDefault("cleaned_path", filepath.Join(outDir, "cleaned-emails.json"))
	v.SetDefault("workers", 1)
	v.SetDefault("min_content_length", 20)
	v.SetDefault("timestamp_formats", []string{
		"2006-01-02T15:04:05Z07:00",       // RFC3339
		"2006-01-02T15:04:05.999999999Z",  // Graph API
		"2006-01-02 15:04:05",             // Common datetime
		"Mon, 02 Jan 2006 15:04:05 -0700", // RFC 5322
	})
	v.SetDefault("author.first_name", "")
	v.SetDefault("author.last_name", "")
	v.SetDefault("redaction.categories", []string{})
	v.SetDefault("style.profile_output", filepath.Join(outDir, "style-profile.json"))
	v.SetDefault("style.training_output", filepath.Join(outDir, "training-data.txt"))
	v.SetDefault("style.samples_per_category", 5)
}

// Load decodes the settings held by v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MinContentLength < 0 {
		return nil, fmt.Errorf("min_content_length must not be negative, got %d", cfg.MinContentLength)
	}
	return cfg, nil
}

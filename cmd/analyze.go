package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bimmerbailey/penmark/internal/config"
	"github.com/bimmerbailey/penmark/internal/corpus"
	"github.com/bimmerbailey/penmark/internal/output"
	"github.com/bimmerbailey/penmark/internal/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags]",
	Short: "Derive a writing-style profile from cleaned emails",
	Long: `Analyze anonymized emails for greeting and sign-off habits, tone,
sentence structure, common phrases and category-specific response
patterns. The profile is written as JSON, and a plain-text file of
representative samples per category is written for few-shot use.

Examples:
  penmark analyze
  penmark analyze --input cleaned.json --output profile.json
  penmark analyze --since 30d --samples 3
  penmark analyze --since "2025-01-01" --until "2025-06-30" --format json`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("input", "i", "", "cleaned email document (default from cleaned_path)")
	analyzeCmd.Flags().StringP("output", "o", "", "style profile file (default from style.profile_output)")
	analyzeCmd.Flags().String("training-output", "", "training samples file (default from style.training_output)")
	analyzeCmd.Flags().Int("samples", 0, "training samples per category (default from style.samples_per_category)")
	analyzeCmd.Flags().String("since", "", "only include emails sent since timestamp or duration (e.g. 30d)")
	analyzeCmd.Flags().String("until", "", "only include emails sent until timestamp or duration")
	analyzeCmd.Flags().String("first-name", "", "author first name, used to recognize sign-offs")
	analyzeCmd.Flags().String("last-name", "", "author last name, used to recognize sign-offs")
	analyzeCmd.Flags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	input, _ := flags.GetString("input")
	if input == "" {
		input = cfg.CleanedPath
	}
	profilePath, _ := flags.GetString("output")
	if profilePath == "" {
		profilePath = cfg.Style.ProfileOutput
	}
	trainingPath, _ := flags.GetString("training-output")
	if trainingPath == "" {
		trainingPath = cfg.Style.TrainingOutput
	}
	samples := cfg.Style.SamplesPerCategory
	if flags.Changed("samples") {
		samples, _ = flags.GetInt("samples")
		if samples < 1 {
			return fmt.Errorf("--samples must be at least 1, got %d", samples)
		}
	}
	if v, _ := flags.GetString("first-name"); v != "" {
		cfg.Author.FirstName = v
	}
	if v, _ := flags.GetString("last-name"); v != "" {
		cfg.Author.LastName = v
	}
	sinceStr, _ := flags.GetString("since")
	untilStr, _ := flags.GetString("until")
	noColor, _ := flags.GetBool("no-color")

	filter := style.FilterOptions{Layouts: cfg.TimestampFormats}
	if sinceStr != "" {
		filter.Since, err = config.ParseTimeRef(sinceStr)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
	}
	if untilStr != "" {
		filter.Until, err = config.ParseTimeRef(untilStr)
		if err != nil {
			return fmt.Errorf("invalid --until value: %w", err)
		}
	}
	if !filter.Since.IsZero() && !filter.Until.IsZero() && filter.Until.Before(filter.Since) {
		return fmt.Errorf("--until must not be before --since")
	}

	log := newLogger(cfg)

	doc, err := corpus.LoadOutput(input)
	if err != nil {
		return err
	}
	emails := style.Filter(doc.Emails, filter)
	log.WithField("path", input).WithField("emails", len(emails)).Info("analyzing writing style")

	analyzer := style.New(
		style.WithAuthor(cfg.Author.FirstName, cfg.Author.LastName),
		style.WithLogger(log),
	)
	profile, err := analyzer.Analyze(emails)
	if err != nil {
		return err
	}

	if err := corpus.WriteFile(profilePath, profile); err != nil {
		return err
	}
	log.WithField("path", profilePath).Info("wrote style profile")

	if err := writeTrainingFile(trainingPath, cfg.Author.FullName(), style.Categorize(emails), samples); err != nil {
		return err
	}
	log.WithField("path", trainingPath).Info("wrote training samples")

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(viper.GetString("format")))
	colorMode := output.ColorAuto
	if noColor {
		colorMode = output.ColorNever
	}
	writer.SetColorMode(colorMode)
	return writer.WriteProfile(profile)
}

func writeTrainingFile(path, author string, groups []style.Group, perCategory int) error {
	var buf bytes.Buffer
	if err := style.WriteTrainingSamples(&buf, author, groups, perCategory); err != nil {
		return fmt.Errorf("failed to render training samples: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

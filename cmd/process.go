package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bimmerbailey/penmark/internal/anonymize"
	"github.com/bimmerbailey/penmark/internal/config"
	"github.com/bimmerbailey/penmark/internal/corpus"
	"github.com/bimmerbailey/penmark/internal/output"
	"github.com/bimmerbailey/penmark/internal/watch"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var processCmd = &cobra.Command{
	Use:   "process [flags]",
	Short: "Anonymize a raw email export",
	Long: `Run every email of a raw export through the anonymization pipeline and
write the cleaned document.

Markup is stripped, quoted replies are cut, addressee names become
[Customer] and contact, financial and address data are replaced with
fixed tokens. Emails shorter than min_content_length after cleaning are
dropped.

Examples:
  penmark process
  penmark process --input raw.json --output cleaned.json
  penmark process --workers 4 --first-name Joe --last-name Newman
  penmark process --categories phone,contact-email
  penmark process --watch`,
	Args: cobra.NoArgs,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringP("input", "i", "", "raw email document (default from raw_path)")
	processCmd.Flags().StringP("output", "o", "", "cleaned email document (default from cleaned_path)")
	processCmd.Flags().Int("workers", 0, "number of emails cleaned concurrently (default from workers)")
	processCmd.Flags().Int("min-length", -1, "shortest cleaned body kept, in characters (default from min_content_length)")
	processCmd.Flags().StringSlice("categories", nil, "redaction categories to apply (default all)")
	processCmd.Flags().String("first-name", "", "author first name, never redacted")
	processCmd.Flags().String("last-name", "", "author last name, never redacted")
	processCmd.Flags().Bool("watch", false, "re-run whenever the input changes")
	processCmd.Flags().String("debounce", "250ms", "quiet period before a watched change triggers a run (e.g. 500ms, 2s)")
	processCmd.Flags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyProcessFlags(cmd, cfg); err != nil {
		return err
	}

	log := newLogger(cfg)
	watchInput, _ := cmd.Flags().GetBool("watch")
	noColor, _ := cmd.Flags().GetBool("no-color")

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(viper.GetString("format")))
	colorMode := output.ColorAuto
	if noColor {
		colorMode = output.ColorNever
	}
	writer.SetColorMode(colorMode)

	run := func(ctx context.Context) error {
		report, err := processFile(cfg, log)
		if err != nil {
			return err
		}
		return writer.WriteReport(report)
	}

	if !watchInput {
		return run(context.Background())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.WithError(err).Error("initial run failed")
	}

	debounceStr, _ := cmd.Flags().GetString("debounce")
	debounce, err := config.ParseDuration(debounceStr)
	if err != nil {
		return fmt.Errorf("invalid --debounce: %w", err)
	}

	log.WithField("path", cfg.RawPath).Info("watching for changes, press Ctrl+C to stop")
	return watch.New(watch.Options{
		FilePath: cfg.RawPath,
		Debounce: debounce,
		RunFunc:  run,
		Logger:   log,
	}).Run(ctx)
}

// applyProcessFlags overrides configuration values with flags given on the
// command line.
func applyProcessFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if v, _ := flags.GetString("input"); v != "" {
		cfg.RawPath = v
	}
	if v, _ := flags.GetString("output"); v != "" {
		cfg.CleanedPath = v
	}
	if flags.Changed("workers") {
		v, _ := flags.GetInt("workers")
		if v < 1 {
			return fmt.Errorf("--workers must be at least 1, got %d", v)
		}
		cfg.Workers = v
	}
	if flags.Changed("min-length") {
		v, _ := flags.GetInt("min-length")
		if v < 0 {
			return fmt.Errorf("--min-length must not be negative, got %d", v)
		}
		cfg.MinContentLength = v
	}
	if flags.Changed("categories") {
		v, _ := flags.GetStringSlice("categories")
		cfg.Redaction.Categories = v
	}
	if v, _ := flags.GetString("first-name"); v != "" {
		cfg.Author.FirstName = v
	}
	if v, _ := flags.GetString("last-name"); v != "" {
		cfg.Author.LastName = v
	}

	if cfg.RawPath == cfg.CleanedPath {
		return fmt.Errorf("input and output must differ: %s", cfg.RawPath)
	}
	return nil
}

// processFile runs the pipeline over cfg.RawPath and writes cfg.CleanedPath.
func processFile(cfg *config.Config, log logrus.FieldLogger) (output.Report, error) {
	doc, err := corpus.LoadInput(cfg.RawPath)
	if err != nil {
		return output.Report{}, err
	}

	runID := uuid.NewString()
	log = log.WithField("run", runID)
	log.WithFields(logrus.Fields{
		"path":   cfg.RawPath,
		"emails": len(doc.Emails),
	}).Info("processing emails")

	pipeline := anonymize.New(
		anonymize.WithAuthor(cfg.Author.FirstName, cfg.Author.LastName),
		anonymize.WithCategories(cfg.Redaction.Categories),
		anonymize.WithMinContentLength(cfg.MinContentLength),
		anonymize.WithWorkers(cfg.Workers),
		anonymize.WithLogger(log),
	)
	result := pipeline.Run(doc.Emails)

	out := corpus.NewOutputDocument(runID, doc.DateRange, result.Stats, result.Emails)
	if err := corpus.WriteFile(cfg.CleanedPath, out); err != nil {
		return output.Report{}, err
	}

	log.WithFields(logrus.Fields{
		"path":    cfg.CleanedPath,
		"kept":    len(result.Emails),
		"dropped": len(result.Dropped),
	}).Info("wrote cleaned emails")

	return output.NewReport(cfg.CleanedPath, out, anonymize.CategoryNames()), nil
}

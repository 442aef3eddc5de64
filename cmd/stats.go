package cmd

import (
	"github.com/bimmerbailey/penmark/internal/anonymize"
	"github.com/bimmerbailey/penmark/internal/corpus"
	"github.com/bimmerbailey/penmark/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] [file]",
	Short: "Show processing statistics of a cleaned document",
	Long: `Display the processing statistics recorded in a cleaned email document:
emails processed and kept, quoted text removed, emails dropped after
cleaning and redaction counts per category.

Examples:
  penmark stats
  penmark stats output/cleaned-emails.json
  penmark stats --format table --no-color cleaned.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.CleanedPath
	if len(args) == 1 {
		path = args[0]
	}
	noColor, _ := cmd.Flags().GetBool("no-color")

	doc, err := corpus.LoadOutput(path)
	if err != nil {
		return err
	}

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(viper.GetString("format")))
	colorMode := output.ColorAuto
	if noColor {
		colorMode = output.ColorNever
	}
	writer.SetColorMode(colorMode)

	return writer.WriteReport(output.NewReport(path, doc, anonymize.CategoryNames()))
}

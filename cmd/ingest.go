package cmd

import (
	"fmt"

	"github.com/bimmerbailey/penmark/internal/config"
	"github.com/bimmerbailey/penmark/internal/corpus"
	"github.com/bimmerbailey/penmark/internal/ingest"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [flags] <file|dir|glob>...",
	Short: "Build a raw email document from .eml files",
	Long: `Parse local .eml messages into the raw document read by 'penmark process'.

Directories are searched recursively for .eml files; files named
explicitly are parsed whatever their extension. The HTML part of a
message is preferred over plain text. Emails are ordered newest first.

Examples:
  penmark ingest ~/Mail/Sent
  penmark ingest --output raw.json "exports/*.eml"
  penmark ingest message-1.eml message-2.eml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringP("output", "o", "", "raw email document (default from raw_path)")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = cfg.RawPath
	}

	files, err := config.ExpandGlobs(args, ".eml")
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	log.WithField("files", len(files)).Info("ingesting messages")

	doc, err := ingest.New(ingest.WithLogger(log)).Ingest(files)
	if err != nil {
		return err
	}

	if err := corpus.WriteFile(outPath, doc); err != nil {
		return err
	}
	log.WithField("path", outPath).WithField("emails", len(doc.Emails)).Info("wrote raw emails")

	fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d of %d messages into %s\n", len(doc.Emails), len(files), outPath)
	return nil
}

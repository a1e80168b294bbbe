package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"artpack/internal/config"
	"artpack/internal/pipeline"
	"artpack/internal/runlog"
	"artpack/internal/transcode"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var noLedger bool

	cmd := &cobra.Command{
		Use:   "clean [archive]",
		Short: "Clean a source archive into a publish-ready archive and manifests",
		Long: "Extracts the given artist media archive, classifies artist folders by " +
			"country and organization, normalizes hero/gallery/bio/cv assets, and " +
			"writes a cleaned archive plus manifest and report CSVs.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			archivePath, err := resolveArchive(cfg, args)
			if err != nil {
				return err
			}

			var ledger *runlog.Store
			if !noLedger {
				ledger, err = runlog.Open(cfg)
				if err != nil {
					return fmt.Errorf("open run ledger: %w", err)
				}
				defer ledger.Close()
			}

			runner := pipeline.NewRunnerWithDependencies(cfg, logger, transcode.NewEncoder(cfg), ledger)
			result, err := runner.Run(cmd.Context(), archivePath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Summary) > 0 {
				fmt.Fprintln(out, renderSummaryTable(result))
			}
			fmt.Fprintf(out, "DONE: %s %s %s\n", result.OutputArchive, result.ManifestPath, result.ReportPath)
			if result.Failures > 0 {
				fmt.Fprintf(out, "%d artist(s) failed; see %s\n", result.Failures, result.ReportPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noLedger, "no-ledger", false, "Skip recording this run in the run ledger")
	return cmd
}

// resolveArchive picks the archive from the argument or the configured
// default.
func resolveArchive(cfg *config.Config, args []string) (string, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return config.ExpandPath(args[0])
	}
	if cfg.Source.Archive != "" {
		return cfg.Source.Archive, nil
	}
	return "", fmt.Errorf("no source archive: pass one as an argument or set source.archive in config")
}

func renderSummaryTable(result *pipeline.Result) string {
	headers := []string{"SLUG", "COUNTRY", "ORGANIZATION", "PHOTOS", "NOTES"}
	rows := make([][]string, 0, len(result.Summary))
	for _, artist := range result.Summary {
		organization := artist.Organization
		if organization == "" {
			organization = "(none)"
		}
		rows = append(rows, []string{
			artist.Slug,
			artist.Country,
			organization,
			strconv.Itoa(artist.Photos),
			strings.Join(artist.Notes, ";"),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft})
}

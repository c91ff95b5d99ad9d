package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/equicharts/race-results-tracker/constants"
	"github.com/equicharts/race-results-tracker/internal/chart"
	"github.com/equicharts/race-results-tracker/internal/common"
	"github.com/equicharts/race-results-tracker/internal/export"
	"github.com/equicharts/race-results-tracker/internal/pagetext"
)

var (
	extractFormat string
	extractOut    string
)

var extractCmd = &cobra.Command{
	Use:   "extract <chart.pdf>",
	Short: "Extract a single chart PDF to CSV or XLSX",
	Long: `Extract one result-chart PDF without the server or database.

The table is written to --out, or to stdout when no output file is given.

Examples:
  racetracker extract charts/aqueduct-jan-1.pdf
  racetracker extract charts/aqueduct-jan-1.pdf --format xlsx --out results.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		format, ok := constants.ParseFormat(extractFormat)
		if !ok {
			return fmt.Errorf("unknown format %q (want csv or xlsx)", extractFormat)
		}
		if format == constants.FormatXLSX && extractOut == "" {
			return fmt.Errorf("--out is required for xlsx output")
		}

		cfg, err := common.LoadConfig(cfgFile)
		if err != nil {
			return err
		}

		pdf, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		extractor := pagetext.NewPDFExtractor(pagetext.Config{
			PdftotextBin: cfg.Extract.PdftotextBin,
			MaxPages:     cfg.Extract.MaxPages,
		}, logger)
		pages, err := extractor.ExtractPages(cmd.Context(), pdf)
		if err != nil {
			return err
		}

		rows := chart.ExtractTable(pages)
		logger.Info("extracted table", "pages", len(pages), "rows", len(rows))

		var encoded []byte
		switch format {
		case constants.FormatXLSX:
			encoded, err = export.EncodeXLSX(rows)
			if err != nil {
				return err
			}
		default:
			encoded = chart.EncodeCSV(rows)
		}

		if extractOut == "" {
			_, err = cmd.OutOrStdout().Write(encoded)
			return err
		}
		if err := os.WriteFile(extractOut, encoded, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", extractOut, err)
		}
		logger.Info("wrote output", "path", extractOut, "bytes", len(encoded))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "csv", "output format: csv or xlsx")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "output file (default: stdout)")
}

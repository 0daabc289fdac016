package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/kosarica/supplier-import/internal/discount"
	"github.com/kosarica/supplier-import/internal/importer"
	"github.com/kosarica/supplier-import/internal/parserconfig"
	"github.com/kosarica/supplier-import/internal/parsers/charset"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const (
	shownErrors = 10
	shownRows   = 5
)

var (
	parseSupplier string
	parseMode     string
	parseOutput   string
	parseEncoding string
	parsePreview  int
	parseWorkers  int
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse and price a supplier price list",
	Long: `Parse a local supplier price list and price every row under the chosen
pricing mode. The parser configuration comes from the supplier settings when
present, otherwise it is detected from the file.

Supported encodings: auto (default), utf-8, utf-16le, windows-1250, windows-1252, iso-8859-2`,
	Example: `  supplier-import parse ./data/acme.csv --supplier acme --mode calculated
  supplier-import parse ./data/vendor.txt --supplier vendor --mode code_mapping --suppliers-file suppliers.yaml
  supplier-import parse ./data/acme.csv --supplier acme --mode net_only --preview 20 --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseSupplier, "supplier", "", "Supplier ID (required)")
	parseCmd.Flags().StringVar(&parseMode, "mode", "", "Pricing mode: net_only, calculated, percentage or code_mapping (required)")
	parseCmd.Flags().StringVar(&parseOutput, "output", "table", "Output format: table or json")
	parseCmd.Flags().StringVar(&parseEncoding, "encoding", "auto", "File encoding")
	parseCmd.Flags().IntVar(&parsePreview, "preview", 0, "Only process the first N data lines")
	parseCmd.Flags().IntVar(&parseWorkers, "workers", 0, "Concurrent row workers (default from config)")
	parseCmd.MarkFlagRequired("supplier")
	parseCmd.MarkFlagRequired("mode")
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	req, err := buildRequest(args[0], parseSupplier, parseMode, parseEncoding)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := importer.Options{Workers: parseWorkers}
	if cfg != nil {
		if opts.Workers == 0 {
			opts.Workers = cfg.Import.Workers
		}
		opts.ErrorDisplayCap = cfg.Import.ErrorDisplayCap
	}
	im := importer.New(store, parserconfig.NewResolver(nil, *logger), *logger, opts)

	var result *importer.Result
	if parsePreview > 0 {
		result, err = im.Preview(ctx, req, parsePreview)
	} else {
		result, err = im.Import(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	switch strings.ToLower(parseOutput) {
	case "json":
		return outputJSON(result)
	case "table":
		outputParseTable(result)
	default:
		return fmt.Errorf("invalid output format: %s (use 'table' or 'json')", parseOutput)
	}
	return nil
}

// buildRequest reads the file and validates the flags shared by parse and detect
func buildRequest(path, supplier, mode, encoding string) (importer.Request, error) {
	enc, err := charset.ParseEncoding(encoding)
	if err != nil {
		return importer.Request{}, err
	}

	req := importer.Request{
		SupplierID: supplier,
		FileName:   filepath.Base(path),
		Encoding:   enc,
	}
	if mode != "" {
		if req.Mode, err = discount.ParseMode(mode); err != nil {
			return importer.Request{}, err
		}
	}

	logger.Info().Str("file", path).Msg("Reading file")
	req.Content, err = os.ReadFile(path)
	if err != nil {
		return importer.Request{}, fmt.Errorf("failed to read file: %w", err)
	}
	logger.Info().Str("file", path).Msgf("Read %d bytes", len(req.Content))
	return req, nil
}

func outputParseTable(result *importer.Result) {
	fmt.Printf("\nImport Results for %s (%s)\n", result.SupplierID, result.Mode)
	fmt.Println(strings.Repeat("-", 60))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Metric\tValue\n")
	fmt.Fprintf(w, "------\t-----\n")
	fmt.Fprintf(w, "Run ID\t%s\n", result.RunID)
	fmt.Fprintf(w, "Parser Config\t%s (%s)\n", configLabel(result.ParserConfig), result.ConfigSource)
	fmt.Fprintf(w, "Encoding\t%s\n", result.Encoding)
	fmt.Fprintf(w, "Total Rows\t%d\n", result.TotalRows)
	fmt.Fprintf(w, "Priced Rows\t%d\n", result.ProcessedRows)
	fmt.Fprintf(w, "Errors\t%d\n", result.ErrorCount)
	fmt.Fprintf(w, "Warnings\t%d\n", result.WarningCount)
	w.Flush()

	printMessages("Errors", result.Errors)
	printMessages("Warnings", result.Warnings)

	if len(result.Items) > 0 {
		fmt.Printf("\nSample Rows (first %d):\n", min(len(result.Items), shownRows))
		fmt.Println(strings.Repeat("-", 60))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Row\tIdentifier\tGross\tDiscount\tNet\tDescription\n")
		for _, row := range result.Items[:min(len(result.Items), shownRows)] {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				row.RowNumber,
				row.Identifier.Primary(),
				decimalOrDash(row.GrossPrice),
				decimalOrDash(row.DiscountPercentage),
				decimalOrDash(row.NetPrice),
				row.Description)
		}
		w.Flush()
	}
}

func printMessages(title string, msgs []string) {
	if len(msgs) == 0 {
		return
	}
	fmt.Printf("\nFirst %d %s:\n", min(len(msgs), shownErrors), title)
	fmt.Println(strings.Repeat("-", 60))
	for _, msg := range msgs[:min(len(msgs), shownErrors)] {
		fmt.Println(msg)
	}
	if len(msgs) > shownErrors {
		fmt.Printf("... and %d more\n", len(msgs)-shownErrors)
	}
}

func configLabel(pc parserconfig.ParserConfig) string {
	if pc.TemplateName != "" {
		return pc.TemplateName
	}
	return string(pc.Format())
}

func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func decimalOrDash(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

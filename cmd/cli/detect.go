package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/kosarica/supplier-import/internal/importer"
	"github.com/kosarica/supplier-import/internal/parserconfig"
	"github.com/spf13/cobra"
)

var (
	detectSupplier string
	detectEncoding string
	detectOutput   string
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Show the parser configuration a file would be imported with",
	Long: `Resolve the parser configuration for a file without parsing it. The
configuration is taken from the supplier's explicit settings, then its named
template, then detected from the file contents, falling back to generic_csv.`,
	Example: `  supplier-import detect ./data/vendor.txt
  supplier-import detect ./data/acme.csv --supplier acme --suppliers-file suppliers.yaml --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringVar(&detectSupplier, "supplier", "", "Supplier ID whose settings apply")
	detectCmd.Flags().StringVar(&detectEncoding, "encoding", "auto", "File encoding")
	detectCmd.Flags().StringVar(&detectOutput, "output", "table", "Output format: table or json")
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	req, err := buildRequest(args[0], detectSupplier, "", detectEncoding)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	im := importer.New(store, parserconfig.NewResolver(nil, *logger), *logger, importer.Options{})
	res, err := im.Resolve(ctx, req)
	if err != nil {
		return fmt.Errorf("detect failed: %w", err)
	}

	switch strings.ToLower(detectOutput) {
	case "json":
		return outputJSON(res)
	case "table":
		outputDetectTable(res)
	default:
		return fmt.Errorf("invalid output format: %s (use 'table' or 'json')", detectOutput)
	}
	return nil
}

func outputDetectTable(res parserconfig.Resolution) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Source\t%s\n", res.Source)
	fmt.Fprintf(w, "Format\t%s\n", res.Config.Format())
	if res.Config.TemplateName != "" {
		fmt.Fprintf(w, "Template\t%s\n", res.Config.TemplateName)
	}
	fmt.Fprintf(w, "Skip Rows\t%d\n", res.Config.SkipRows())
	fmt.Fprintf(w, "Header\t%t\n", res.Config.HasHeader())
	w.Flush()

	mapping := res.Config.Config.Mapping()
	if len(mapping) > 0 {
		fmt.Println("\nColumn Mapping:")
		fmt.Println(strings.Repeat("-", 40))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		for _, target := range slices.Sorted(maps.Keys(mapping)) {
			fmt.Fprintf(w, "%s\t<- %s\n", target, mapping[target])
		}
		w.Flush()
	}

	for _, note := range res.Notes {
		fmt.Printf("Note: %s\n", note)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kosarica/supplier-import/internal/parserconfig"
	"github.com/spf13/cobra"
)

var templatesOutput string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in parser templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := parserconfig.DefaultRegistry()

		if strings.ToLower(templatesOutput) == "json" {
			all := make(map[string]parserconfig.ParserConfig)
			for _, name := range registry.Names() {
				all[name], _ = registry.Lookup(name)
			}
			return outputJSON(all)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "Template\tFormat\tSkip Rows\tHeader\tMapped Fields\n")
		fmt.Fprintf(w, "--------\t------\t---------\t------\t-------------\n")
		for _, name := range registry.Names() {
			pc, _ := registry.Lookup(name)
			fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%d\n", name, pc.Format(), pc.SkipRows(), pc.HasHeader(), len(pc.Config.Mapping()))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.Flags().StringVar(&templatesOutput, "output", "table", "Output format: table or json")
}

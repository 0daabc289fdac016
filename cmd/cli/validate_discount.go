package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kosarica/supplier-import/internal/discount"
	"github.com/spf13/cobra"
)

var validateDiscountCmd = &cobra.Command{
	Use:   "validate-discount [file]",
	Short: "Validate a discount structure JSON document",
	Long: `Validate a supplier discount structure. The document is read from the
given file or from stdin and must be one of:

  {"type": "code_mapping", "mappings": {"A": 10, "B": 25}}
  {"type": "percentage", "default_percentage": 15}
  {"type": "calculated"}
  {"type": "net_only"}`,
	Example: `  supplier-import validate-discount discount.json
  echo '{"type":"percentage","default_percentage":12.5}' | supplier-import validate-discount`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidateDiscount,
}

func init() {
	rootCmd.AddCommand(validateDiscountCmd)
}

func runValidateDiscount(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read discount structure: %w", err)
	}

	structure, err := discount.ParseJSON(data)
	if err != nil {
		return err
	}

	fmt.Printf("Valid %s discount structure\n", structure.Type())
	return outputJSON(structure)
}

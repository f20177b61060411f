package cmd

import (
	"github.com/huangsam/moodmixer/core"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/spf13/cobra"
)

// importCmd merges drinks from another source into a catalog file.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import drinks from JSON, a spreadsheet, TSV or an HTML menu.",
	Long: `Read drinks from a file and merge them into a catalog file.

Drinks already in the catalog (same name, case-insensitive) are skipped.
Imported drinks without a free id get the next one. Missing spirit and
difficulty are derived from the ingredients.

Examples:
  moodmixer import drinks.xlsx --into catalog.json
  moodmixer import menu.html --catalog catalog.json
  moodmixer import export.tsv --format tsv --into catalog.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		sheet, _ := cmd.Flags().GetString("sheet")
		into, _ := cmd.Flags().GetString("into")
		if err := core.ExecuteImport(rootCtx, cfg, args[0], format, sheet, into); err != nil {
			contract.LogFatal("Import failed", err)
		}
	},
}

// exportCmd writes the catalog to JSON or a spreadsheet.
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the catalog to .json or .xlsx.",
	Long: `Write the active catalog to a file. The format follows the extension.

Examples:
  moodmixer export drinks.xlsx
  moodmixer export backup.json --catalog catalog.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		sheet, _ := cmd.Flags().GetString("sheet")
		if err := core.ExecuteExport(rootCtx, cfg, args[0], sheet); err != nil {
			contract.LogFatal("Export failed", err)
		}
	},
}

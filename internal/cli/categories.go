package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/msgcat/internal/categories"
	"github.com/vvka-141/msgcat/internal/files/filesystem"
	"github.com/vvka-141/msgcat/internal/files/reader"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories <categories.csv>",
		Short: "Print the category column names inferred from a categories CSV",
		Long: `Categories reads a categories CSV and prints, one per line, the column
names the pipeline would create from the first row's encoded string.

Example:
  msgcat categories disaster_categories.csv`,
		Args:              RequireCategoriesPath,
		ValidArgsFunction: completeCSVFiles,
		RunE:              runCategories,
	}
}

func runCategories(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	config, err := resolveBaseConfig(configPath)
	if err != nil {
		return err
	}

	table, err := reader.New(filesystem.NewOSFileSystem()).ReadCSV(args[0])
	if err != nil {
		return err
	}

	schema, err := categories.SchemaFromTable(table, config.Decode)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if getVerboseFlag(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] %d categories from %d rows\n", len(schema.Names), table.Len())
	}
	for _, name := range schema.Names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catalog-cli",
	Short: "Catalog API administration tool",
	Long: `catalog-cli runs maintenance tasks against the catalog database.

Examples:
  catalog-cli migrate up
  catalog-cli migrate down --steps 1
  catalog-cli migrate status
  catalog-cli tree
  catalog-cli tree dir_01HZX...`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		envFile, _ := cmd.Flags().GetString("env-file")
		if envFile == "" {
			return
		}
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Overload(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", envFile, err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(treeCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded before reading configuration")
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"brightlaptop.GO/config"
	catalogService "brightlaptop.GO/service/catalog"
)

var (
	importFile   string
	importBatch  int
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "catalog:import",
	Short: "Import catalog products from CSV",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		res, err := catalogService.ImportProducts(db, f, catalogService.ImportOptions{
			BatchSize: importBatch,
			DryRun:    importDryRun,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}

		fmt.Printf(`
=== Import Report ===
CSV rows:   %d
Created:    %d
Updated:    %d
Skipped:    %d
Mode:       %s
Total time: %s
=====================
`, res.TotalRows, res.Created, res.Updated, res.Skipped,
			map[bool]string{true: "Dry run", false: "Upsert"}[importDryRun],
			res.TotalTime.Round(time.Millisecond))
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().IntVar(&importBatch, "batch-size", 200, "Batch size for DB operations")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and validate without writing")
	rootCmd.AddCommand(importCmd)
}

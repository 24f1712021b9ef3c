package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/orchid-commerce/medallion/internal/config"
	"github.com/orchid-commerce/medallion/internal/ingest"
	"github.com/orchid-commerce/medallion/internal/models"
	"github.com/spf13/cobra"
)

var (
	showRejects int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Land the CSV extracts into the bronze layer",
	Long: `Read the five landing CSV files and report what bronze would hold:
row counts per entity plus any lines quarantined as malformed.

This is a dry inspection of the landing directory. It does not touch
the warehouse; use 'medallion run --persist' for a full load.`,
	RunE: ingestLanding,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().IntVar(&showRejects, "show-rejects", 5, "Number of quarantined lines to print per entity")
}

func ingestLanding(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("📥 Reading landing files from %s...\n", cfg.Landing.Dir)

	adapter := ingest.NewAdapter()
	landing := func(name string) string { return filepath.Join(cfg.Landing.Dir, name) }

	type entityReport struct {
		name    string
		rows    int
		rejects []models.QuarantineRecord
	}
	var reports []entityReport

	brands, rej, err := adapter.ReadBrands(landing(cfg.Landing.Brands))
	if err != nil {
		return fmt.Errorf("failed to read brands: %w", err)
	}
	reports = append(reports, entityReport{"brands", len(brands), rej})

	categories, rej, err := adapter.ReadCategories(landing(cfg.Landing.Categories))
	if err != nil {
		return fmt.Errorf("failed to read categories: %w", err)
	}
	reports = append(reports, entityReport{"categories", len(categories), rej})

	products, rej, err := adapter.ReadProducts(landing(cfg.Landing.Products))
	if err != nil {
		return fmt.Errorf("failed to read products: %w", err)
	}
	reports = append(reports, entityReport{"products", len(products), rej})

	customers, rej, err := adapter.ReadCustomers(landing(cfg.Landing.Customers))
	if err != nil {
		return fmt.Errorf("failed to read customers: %w", err)
	}
	reports = append(reports, entityReport{"customers", len(customers), rej})

	items, rej, err := adapter.ReadOrderItems(landing(cfg.Landing.OrderItems))
	if err != nil {
		return fmt.Errorf("failed to read order items: %w", err)
	}
	reports = append(reports, entityReport{"order_items", len(items), rej})

	fmt.Println("\n📋 Landing summary:")
	for _, r := range reports {
		fmt.Printf("   %-12s %6d rows, %d quarantined\n", r.name, r.rows, len(r.rejects))

		shown := 0
		for _, q := range r.rejects {
			if shown >= showRejects {
				fmt.Printf("      ... and %d more\n", len(r.rejects)-shown)
				break
			}
			fmt.Printf("      line %d: %s\n", q.LineNumber, truncateRaw(q.Raw, 80))
			shown++
		}
	}

	return nil
}

func truncateRaw(raw string, maxLen int) string {
	raw = strings.ReplaceAll(raw, "\n", " ")
	if len(raw) <= maxLen {
		return raw
	}
	return raw[:maxLen] + "..."
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/orchid-commerce/medallion/internal/config"
	"github.com/orchid-commerce/medallion/internal/models"
	"github.com/orchid-commerce/medallion/internal/pipeline"
	"github.com/orchid-commerce/medallion/internal/refdata"
	"github.com/spf13/cobra"
)

var silverCmd = &cobra.Command{
	Use:   "silver",
	Short: "Run the pipeline through the silver layer",
	Long: `Runs the bronze and silver stages only: landing files are ingested
and conformed into typed, deduplicated silver tables. Gold and the
unified view are not built.

Useful for re-running cleansing after a landing file is corrected
without recomputing the dimensional model.`,
	RunE: runSilver,
}

func init() {
	rootCmd.AddCommand(silverCmd)
}

func runSilver(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Running bronze and silver stages...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rd, err := refdata.Load(cfg.RefData.Path)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	res, err := pipeline.New(cfg, rd).RunTo(context.Background(), logger,
		models.TableSilverBrands,
		models.TableSilverCategories,
		models.TableSilverProducts,
		models.TableSilverCustomers,
		models.TableSilverDates,
		models.TableSilverOrderItems,
	)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	fmt.Println("\n📋 Silver summary:")
	fmt.Printf("   %-12s %6d rows\n", "brands", len(res.SilverBrands))
	fmt.Printf("   %-12s %6d rows\n", "categories", len(res.SilverCategories))
	fmt.Printf("   %-12s %6d rows\n", "products", len(res.SilverProducts))
	fmt.Printf("   %-12s %6d rows\n", "customers", len(res.SilverCustomers))
	fmt.Printf("   %-12s %6d rows\n", "dates", len(res.SilverDates))
	fmt.Printf("   %-12s %6d rows\n", "order_items", len(res.SilverOrderItems))
	fmt.Printf("\n✅ Silver complete: %d quarantined\n", len(res.Quarantine))

	return nil
}

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

var goldCmd = &cobra.Command{
	Use:   "gold",
	Short: "Run the pipeline through the gold layer",
	Long: `Runs every stage up to and including the gold dimensions and fact
table. The unified view is not built.

Use this to re-run the dimensional model, for example after a
reference-data update, without serving or persisting the view.`,
	RunE: runGold,
}

func init() {
	rootCmd.AddCommand(goldCmd)
}

func runGold(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Running stages through gold...")

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
		models.TableGoldBrands,
		models.TableGoldCategories,
		models.TableGoldProducts,
		models.TableGoldCustomers,
		models.TableGoldDates,
		models.TableGoldOrderItems,
	)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	fmt.Println("\n📋 Gold summary:")
	fmt.Printf("   %-16s %6d rows\n", "dim_brands", len(res.GoldBrands))
	fmt.Printf("   %-16s %6d rows\n", "dim_categories", len(res.GoldCategories))
	fmt.Printf("   %-16s %6d rows\n", "dim_products", len(res.GoldProducts))
	fmt.Printf("   %-16s %6d rows\n", "dim_customers", len(res.GoldCustomers))
	fmt.Printf("   %-16s %6d rows\n", "dim_dates", len(res.GoldDates))
	fmt.Printf("   %-16s %6d rows\n", "fact_order_items", len(res.GoldOrderItems))
	fmt.Printf("\n✅ Gold complete: %d quarantined\n", len(res.Quarantine))

	return nil
}

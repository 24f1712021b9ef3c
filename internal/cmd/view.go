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

var (
	viewSample int
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Build the unified order-item view",
	Long: `Runs every stage the denormalized view depends on and prints a
sample of the result. Equivalent to a full 'medallion run' without
warehouse persistence.`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().IntVar(&viewSample, "sample", 5, "Number of view rows to print")
}

func runView(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Building unified view...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rd, err := refdata.Load(cfg.RefData.Path)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	res, err := pipeline.New(cfg, rd).RunTo(context.Background(), logger, models.TableUnifiedView)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	fmt.Printf("\n📋 View: %d rows (%d quarantined upstream)\n", len(res.Unified), len(res.Quarantine))
	for i, row := range res.Unified {
		if i >= viewSample {
			fmt.Printf("   ... and %d more\n", len(res.Unified)-i)
			break
		}
		region := "-"
		if row.Region != nil {
			region = *row.Region
		}
		brand := "-"
		if row.BrandName != nil {
			brand = *row.BrandName
		}
		fmt.Printf("   %s/%d  date=%d  sales_inr=%s  channel=%s  brand=%s  region=%s\n",
			row.OrderID, row.LineSeq, row.DateID, row.SalesAmountINR, row.Channel, brand, region)
	}

	return nil
}

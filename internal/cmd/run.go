package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/orchid-commerce/medallion/internal/config"
	"github.com/orchid-commerce/medallion/internal/pipeline"
	"github.com/orchid-commerce/medallion/internal/refdata"
	"github.com/orchid-commerce/medallion/internal/warehouse"
	"github.com/spf13/cobra"
)

var (
	persist bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full bronze-silver-gold pipeline",
	Long: `Run every pipeline stage in dependency order:
- Land the five CSV extracts into bronze
- Conform bronze rows into typed silver tables
- Build the gold dimensions, fact table and unified view

With --persist the resulting tables are written to the MySQL warehouse.`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&persist, "persist", false, "Write results to the warehouse after the run")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Medallion pipeline starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("📚 Loading reference data from %s...\n", cfg.RefData.Path)
	rd, err := refdata.Load(cfg.RefData.Path)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}
	fmt.Printf("   Version: %s\n", rd.Version)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	res, err := pipeline.New(cfg, rd).Run(context.Background(), logger)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	fmt.Println("\n📋 Run summary:")
	for _, run := range res.Runs {
		fmt.Printf("   %-24s in=%-6d out=%-6d quarantined=%d\n",
			run.Stage, run.RowsIn, run.RowsOut, run.Quarantined)
	}
	fmt.Printf("\n✅ Pipeline complete: %d fact rows, %d view rows, %d quarantined\n",
		len(res.GoldOrderItems), len(res.Unified), len(res.Quarantine))

	if !persist {
		return nil
	}

	fmt.Println("🔌 Connecting to warehouse...")
	wh, err := warehouse.NewConnection(&cfg.Warehouse)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer wh.Close()

	fmt.Println("💾 Writing tables...")
	if err := wh.SaveResult(context.Background(), res); err != nil {
		return fmt.Errorf("failed to persist results: %w", err)
	}

	fmt.Println("✅ Warehouse updated")
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/orchid-commerce/medallion/internal/config"
	"github.com/orchid-commerce/medallion/internal/pipeline"
	"github.com/orchid-commerce/medallion/internal/refdata"
	"github.com/orchid-commerce/medallion/internal/server"
	"github.com/orchid-commerce/medallion/internal/warehouse"
	"github.com/spf13/cobra"
)

var (
	serveNoWarehouse bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pipeline and serve the results over HTTP",
	Long: `Runs the full pipeline once, then starts a read-only HTTP API over
the results:
- GET /api/health
- GET /api/runs
- GET /api/quarantine?reason=...&entity=...
- GET /api/view?limit=...&offset=...

With --no-warehouse the server skips the MySQL health probe.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveNoWarehouse, "no-warehouse", false, "Serve without a warehouse connection")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Medallion serve starting...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rd, err := refdata.Load(cfg.RefData.Path)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fmt.Println("⚙️  Running pipeline...")
	res, err := pipeline.New(cfg, rd).Run(context.Background(), logger)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}
	fmt.Printf("   %d fact rows, %d quarantined\n", len(res.GoldOrderItems), len(res.Quarantine))

	var wh *warehouse.Warehouse
	if !serveNoWarehouse {
		fmt.Println("🔌 Connecting to warehouse...")
		wh, err = warehouse.NewConnection(&cfg.Warehouse)
		if err != nil {
			return fmt.Errorf("failed to connect to warehouse: %w", err)
		}
		defer wh.Close()
	}

	srv := server.NewServer(wh, res)

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

package cmd

import (
	"fmt"

	"github.com/orchid-commerce/medallion/internal/config"
	"github.com/orchid-commerce/medallion/internal/warehouse"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the warehouse schema",
	Long: `Creates every warehouse table: the bronze landing tables, the typed
silver tables, the gold dimensions and fact table, and the quarantine
and stage-run bookkeeping tables.

All statements use CREATE TABLE IF NOT EXISTS, so re-running against
an existing warehouse is safe.`,
	RunE: setupWarehouse,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func setupWarehouse(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 Setting up warehouse schema...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	wh, err := warehouse.NewConnection(&cfg.Warehouse)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer wh.Close()

	if err := wh.Setup(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	fmt.Println("✅ Warehouse schema ready")
	return nil
}

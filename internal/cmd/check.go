package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/orchid-commerce/medallion/internal/config"
	"github.com/orchid-commerce/medallion/internal/refdata"
	"github.com/orchid-commerce/medallion/internal/warehouse"
	"github.com/spf13/cobra"
)

var (
	checkWarehouse bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration, landing files and reference data",
	Long: `Validates everything a pipeline run needs before you run one:
- the configuration file loads and the calendar horizon parses
- every landing CSV file exists
- the reference data file loads and its currency rates are positive

With --warehouse it also pings the MySQL warehouse.`,
	RunE: checkEnvironment,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkWarehouse, "warehouse", false, "Also check the warehouse connection")
}

func checkEnvironment(cmd *cobra.Command, args []string) error {
	failed := false

	fmt.Println("🔍 Checking configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fmt.Println("   ✅ config loaded")

	start, end, err := cfg.Calendar.Horizon()
	if err != nil {
		fmt.Printf("   ❌ calendar horizon: %v\n", err)
		failed = true
	} else {
		fmt.Printf("   ✅ calendar horizon %s to %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	fmt.Println("🔍 Checking landing files...")
	files := map[string]string{
		"brands":      cfg.Landing.Brands,
		"categories":  cfg.Landing.Categories,
		"products":    cfg.Landing.Products,
		"customers":   cfg.Landing.Customers,
		"order_items": cfg.Landing.OrderItems,
	}
	for entity, name := range files {
		path := filepath.Join(cfg.Landing.Dir, name)
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("   ❌ %s: %s missing\n", entity, path)
			failed = true
		} else {
			fmt.Printf("   ✅ %s: %s\n", entity, path)
		}
	}

	fmt.Println("🔍 Checking reference data...")
	rd, err := refdata.Load(cfg.RefData.Path)
	if err != nil {
		fmt.Printf("   ❌ %v\n", err)
		failed = true
	} else if err := rd.Validate(); err != nil {
		fmt.Printf("   ❌ %v\n", err)
		failed = true
	} else {
		fmt.Printf("   ✅ version %s, %d currency rates, %d region mappings\n",
			rd.Version, len(rd.CurrencyRates), len(rd.RegionMap))
	}

	if checkWarehouse {
		fmt.Println("🔍 Checking warehouse...")
		wh, err := warehouse.NewConnection(&cfg.Warehouse)
		if err != nil {
			fmt.Printf("   ❌ connect: %v\n", err)
			failed = true
		} else {
			defer wh.Close()
			if err := wh.HealthCheck(); err != nil {
				fmt.Printf("   ❌ ping: %v\n", err)
				failed = true
			} else {
				fmt.Println("   ✅ warehouse reachable")
			}
		}
	}

	if failed {
		return fmt.Errorf("environment check failed")
	}

	fmt.Println("\n✅ Environment ready")
	return nil
}

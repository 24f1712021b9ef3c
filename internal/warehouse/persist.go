package warehouse

import (
	"context"
	"fmt"

	"github.com/orchid-commerce/medallion/internal/pipeline"
)

// SaveResult persists every table of a pipeline run. Ordered bronze to
// gold so a failure part-way leaves the upstream layers already written.
func (w *Warehouse) SaveResult(ctx context.Context, res *pipeline.Result) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"bronze_brands", func() error { return w.OverwriteBronzeBrands(ctx, res.BronzeBrands) }},
		{"bronze_categories", func() error { return w.OverwriteBronzeCategories(ctx, res.BronzeCategories) }},
		{"bronze_products", func() error { return w.OverwriteBronzeProducts(ctx, res.BronzeProducts) }},
		{"bronze_customers", func() error { return w.OverwriteBronzeCustomers(ctx, res.BronzeCustomers) }},
		{"bronze_order_items", func() error { return w.OverwriteBronzeOrderItems(ctx, res.BronzeOrderItems) }},
		{"silver_brands", func() error { return w.OverwriteSilverBrands(ctx, res.SilverBrands) }},
		{"silver_categories", func() error { return w.OverwriteSilverCategories(ctx, res.SilverCategories) }},
		{"silver_products", func() error { return w.OverwriteSilverProducts(ctx, res.SilverProducts) }},
		{"silver_customers", func() error { return w.OverwriteSilverCustomers(ctx, res.SilverCustomers) }},
		{"silver_dates", func() error { return w.OverwriteSilverDates(ctx, res.SilverDates) }},
		{"silver_order_items", func() error { return w.OverwriteSilverOrderItems(ctx, res.SilverOrderItems) }},
		{"gold_dim_categories", func() error { return w.OverwriteGoldCategories(ctx, res.GoldCategories) }},
		{"gold_dim_brands", func() error { return w.OverwriteGoldBrands(ctx, res.GoldBrands) }},
		{"gold_dim_products", func() error { return w.OverwriteGoldProducts(ctx, res.GoldProducts) }},
		{"gold_dim_customers", func() error { return w.OverwriteGoldCustomers(ctx, res.GoldCustomers) }},
		{"gold_dim_dates", func() error { return w.OverwriteGoldDates(ctx, res.GoldDates) }},
		{"gold_fact_order_items", func() error { return w.OverwriteGoldOrderItems(ctx, res.GoldOrderItems) }},
		{"etl_quarantine", func() error { return w.OverwriteQuarantine(ctx, res.Quarantine) }},
		{"etl_stage_runs", func() error { return w.AppendStageRuns(ctx, res.Runs) }},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("failed to save %s: %w", step.name, err)
		}
	}
	return nil
}

package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orchid-commerce/medallion/internal/models"
)

// insertChunk bounds the number of rows per INSERT statement.
const insertChunk = 500

// overwrite replaces the full contents of a table inside one transaction.
// Re-running a stage therefore converges on the same table state instead
// of accumulating rows, which is what makes orchestrator retries safe.
func (w *Warehouse) overwrite(ctx context.Context, table string, cols []string, rows [][]any) error {
	tx, err := w.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	if err := insertChunked(ctx, tx, table, cols, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	return nil
}

// insertStatement builds a multi-row INSERT with nRows placeholder groups.
func insertStatement(table string, cols []string, nRows int) string {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",") + ")"
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat(placeholder+",", nRows), ","))
}

func insertChunked(ctx context.Context, tx *sql.Tx, table string, cols []string, rows [][]any) error {
	for start := 0; start < len(rows); start += insertChunk {
		end := start + insertChunk
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		args := make([]any, 0, len(chunk)*len(cols))
		for _, row := range chunk {
			args = append(args, row...)
		}
		if _, err := tx.ExecContext(ctx, insertStatement(table, cols, len(chunk)), args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

func decPtr(v *decimal.Decimal) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func datePtr(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}

// OverwriteBronzeBrands publishes the bronze brand table.
func (w *Warehouse) OverwriteBronzeBrands(ctx context.Context, rows []models.BronzeBrand) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.BrandCode, r.BrandName, r.CategoryCode, r.Meta.SourceFile, r.Meta.LineNumber, r.Meta.BatchID, r.Meta.IngestedAt})
	}
	return w.overwrite(ctx, "bronze_brands",
		[]string{"brand_code", "brand_name", "category_code", "source_file", "line_number", "batch_id", "ingested_at"}, vals)
}

// OverwriteBronzeCategories publishes the bronze category table.
func (w *Warehouse) OverwriteBronzeCategories(ctx context.Context, rows []models.BronzeCategory) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.CategoryCode, r.CategoryName, r.Meta.SourceFile, r.Meta.LineNumber, r.Meta.BatchID, r.Meta.IngestedAt})
	}
	return w.overwrite(ctx, "bronze_categories",
		[]string{"category_code", "category_name", "source_file", "line_number", "batch_id", "ingested_at"}, vals)
}

// OverwriteBronzeProducts publishes the bronze product table.
func (w *Warehouse) OverwriteBronzeProducts(ctx context.Context, rows []models.BronzeProduct) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.ProductID, r.SKU, r.Color, r.Size, r.Material, r.Weight, r.Price, r.BrandCode, r.Meta.SourceFile, r.Meta.LineNumber, r.Meta.BatchID, r.Meta.IngestedAt})
	}
	return w.overwrite(ctx, "bronze_products",
		[]string{"product_id", "sku", "color", "size", "material", "weight", "price", "brand_code", "source_file", "line_number", "batch_id", "ingested_at"}, vals)
}

// OverwriteBronzeCustomers publishes the bronze customer table.
func (w *Warehouse) OverwriteBronzeCustomers(ctx context.Context, rows []models.BronzeCustomer) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.CustomerID, r.Phone, r.Country, r.State, r.Meta.SourceFile, r.Meta.LineNumber, r.Meta.BatchID, r.Meta.IngestedAt})
	}
	return w.overwrite(ctx, "bronze_customers",
		[]string{"customer_id", "phone", "country", "state", "source_file", "line_number", "batch_id", "ingested_at"}, vals)
}

// OverwriteBronzeOrderItems publishes the bronze order-item table.
func (w *Warehouse) OverwriteBronzeOrderItems(ctx context.Context, rows []models.BronzeOrderItem) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.OrderID, r.OrderDate, r.CustomerID, r.ProductID, r.Quantity, r.UnitPrice, r.DiscountPct, r.TaxAmount, r.Currency, r.CouponCode, r.Channel, r.LineSeq, r.Meta.SourceFile, r.Meta.LineNumber, r.Meta.BatchID, r.Meta.IngestedAt})
	}
	return w.overwrite(ctx, "bronze_order_items",
		[]string{"order_id", "order_date", "customer_id", "product_id", "quantity", "unit_price", "discount_percentage", "tax_amount", "currency", "coupon_code", "channel", "line_seq", "source_file", "line_number", "batch_id", "ingested_at"}, vals)
}

// OverwriteSilverBrands publishes the silver brand table.
func (w *Warehouse) OverwriteSilverBrands(ctx context.Context, rows []models.SilverBrand) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.BrandCode, r.BrandName, r.CategoryCode, r.IngestedAt})
	}
	return w.overwrite(ctx, "silver_brands",
		[]string{"brand_code", "brand_name", "category_code", "ingested_at"}, vals)
}

// OverwriteSilverCategories publishes the silver category table.
func (w *Warehouse) OverwriteSilverCategories(ctx context.Context, rows []models.SilverCategory) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.CategoryCode, r.CategoryName, r.IngestedAt})
	}
	return w.overwrite(ctx, "silver_categories",
		[]string{"category_code", "category_name", "ingested_at"}, vals)
}

// OverwriteSilverProducts publishes the silver product table.
func (w *Warehouse) OverwriteSilverProducts(ctx context.Context, rows []models.SilverProduct) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.ProductID, r.SKU, r.Color, r.Size, r.Material, floatPtr(r.Weight), decPtr(r.Price), r.BrandCode, r.IngestedAt})
	}
	return w.overwrite(ctx, "silver_products",
		[]string{"product_id", "sku", "color", "size", "material", "weight", "price", "brand_code", "ingested_at"}, vals)
}

// OverwriteSilverCustomers publishes the silver customer table.
func (w *Warehouse) OverwriteSilverCustomers(ctx context.Context, rows []models.SilverCustomer) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.CustomerID, r.Phone, r.Country, r.State, r.IngestedAt})
	}
	return w.overwrite(ctx, "silver_customers",
		[]string{"customer_id", "phone", "country", "state", "ingested_at"}, vals)
}

// OverwriteSilverDates publishes the silver calendar table.
func (w *Warehouse) OverwriteSilverDates(ctx context.Context, rows []models.SilverDate) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.Date, r.Year, r.Quarter, r.Month, r.Week, r.Day})
	}
	return w.overwrite(ctx, "silver_dates",
		[]string{"date", "year", "quarter", "month", "week", "day"}, vals)
}

// OverwriteSilverOrderItems publishes the silver order-item table.
func (w *Warehouse) OverwriteSilverOrderItems(ctx context.Context, rows []models.SilverOrderItem) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.OrderID, r.LineSeq, datePtr(r.OrderDate), intPtr(r.CustomerID), intPtr(r.ProductID), intPtr(r.Quantity), decPtr(r.UnitPrice), decPtr(r.DiscountPct), decPtr(r.TaxAmount), r.Currency, r.CouponCode, r.Channel, r.ChannelUnknown, r.Meta.SourceFile, r.Meta.LineNumber, r.Meta.BatchID, r.Meta.IngestedAt})
	}
	return w.overwrite(ctx, "silver_order_items",
		[]string{"order_id", "line_seq", "order_date", "customer_id", "product_id", "quantity", "unit_price", "discount_percentage", "tax_amount", "currency", "coupon_code", "channel", "channel_unknown", "source_file", "line_number", "batch_id", "ingested_at"}, vals)
}

// OverwriteGoldCategories publishes the gold category dimension.
func (w *Warehouse) OverwriteGoldCategories(ctx context.Context, rows []models.GoldCategory) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.CategoryCode, r.CategoryName})
	}
	return w.overwrite(ctx, "gold_dim_categories", []string{"category_code", "category_name"}, vals)
}

// OverwriteGoldBrands publishes the gold brand dimension.
func (w *Warehouse) OverwriteGoldBrands(ctx context.Context, rows []models.GoldBrand) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.BrandCode, r.BrandName, r.CategoryCode, r.CategoryName})
	}
	return w.overwrite(ctx, "gold_dim_brands",
		[]string{"brand_code", "brand_name", "category_code", "category_name"}, vals)
}

// OverwriteGoldProducts publishes the gold product dimension.
func (w *Warehouse) OverwriteGoldProducts(ctx context.Context, rows []models.GoldProduct) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.ProductID, r.SKU, r.Color, r.Size, r.Material, floatPtr(r.Weight), decPtr(r.Price), r.BrandCode, r.BrandName, r.CategoryCode, r.CategoryName})
	}
	return w.overwrite(ctx, "gold_dim_products",
		[]string{"product_id", "sku", "color", "size", "material", "weight", "price", "brand_code", "brand_name", "category_code", "category_name"}, vals)
}

// OverwriteGoldCustomers publishes the gold customer dimension.
func (w *Warehouse) OverwriteGoldCustomers(ctx context.Context, rows []models.GoldCustomer) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.CustomerID, r.Phone, r.Country, r.State, r.Region})
	}
	return w.overwrite(ctx, "gold_dim_customers",
		[]string{"customer_id", "phone", "country", "state", "region"}, vals)
}

// OverwriteGoldDates publishes the gold date dimension.
func (w *Warehouse) OverwriteGoldDates(ctx context.Context, rows []models.GoldDate) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.DateID, r.Date, r.Year, r.Quarter, r.Month, r.MonthName, r.Week, r.Day, r.IsWeekend})
	}
	return w.overwrite(ctx, "gold_dim_dates",
		[]string{"date_id", "date", "year", "quarter", "month", "month_name", "week", "day", "is_weekend"}, vals)
}

// OverwriteGoldOrderItems publishes the gold fact table.
func (w *Warehouse) OverwriteGoldOrderItems(ctx context.Context, rows []models.GoldOrderItem) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{
			r.OrderID, r.LineSeq, r.DateID, r.CustomerID, r.ProductID,
			r.Quantity, r.UnitPrice, r.DiscountPct,
			r.GrossAmount, r.DiscountAmount, r.TaxAmount, r.SalesAmount,
			r.Currency, r.FXRate,
			r.GrossAmountINR, r.DiscountAmountINR, r.TaxAmountINR, r.SalesAmountINR,
			r.HasCoupon, r.CouponCode, r.Channel,
		})
	}
	return w.overwrite(ctx, "gold_fact_order_items", []string{
		"order_id", "line_seq", "date_id", "customer_id", "product_id",
		"quantity", "unit_price", "discount_percentage",
		"gross_amount", "discount_amount", "tax_amount", "sales_amount",
		"currency", "fx_rate",
		"gross_amount_inr", "discount_amount_inr", "tax_amount_inr", "sales_amount_inr",
		"has_coupon", "coupon_code", "channel",
	}, vals)
}

// OverwriteQuarantine publishes the combined reject stream of a run.
func (w *Warehouse) OverwriteQuarantine(ctx context.Context, rows []models.QuarantineRecord) error {
	vals := make([][]any, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, []any{r.ID, r.Stage, r.Entity, r.Reason, r.Detail, r.Raw, r.SourceFile, r.LineNumber, r.QuarantinedAt})
	}
	return w.overwrite(ctx, "etl_quarantine",
		[]string{"id", "stage", "entity", "reason", "detail", "raw", "source_file", "line_number", "quarantined_at"}, vals)
}

// AppendStageRuns records the stage runs of a pipeline execution in one
// transaction. Run history accumulates, it is not overwritten.
func (w *Warehouse) AppendStageRuns(ctx context.Context, runs []models.StageRun) error {
	if len(runs) == 0 {
		return nil
	}

	tx, err := w.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows := make([][]any, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []any{r.RunID, r.Stage, r.RefDataVersion, r.RowsIn, r.RowsOut, r.Quarantined, r.StartedAt, r.Duration.Milliseconds()})
	}
	cols := []string{"run_id", "stage", "refdata_version", "rows_in", "rows_out", "quarantined", "started_at", "duration_ms"}

	if err := insertChunked(ctx, tx, "etl_stage_runs", cols, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit etl_stage_runs: %w", err)
	}
	return nil
}

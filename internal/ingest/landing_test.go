package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/orchid-commerce/medallion/internal/models"
)

func writeLanding(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write landing file: %v", err)
	}
	return path
}

func TestReadBrandsAttachesProvenance(t *testing.T) {
	path := writeLanding(t, "brands_2024_07_01.csv",
		"brand_code,brand_name,category_code\n"+
			"nk01,Nike,ap\n"+
			"ad02,Adidas,ap\n")

	a := NewAdapter()
	brands, rejects, err := a.ReadBrands(path)
	if err != nil {
		t.Fatalf("ReadBrands failed: %v", err)
	}
	if len(rejects) != 0 {
		t.Fatalf("expected no rejects, got %d", len(rejects))
	}
	if len(brands) != 2 {
		t.Fatalf("expected 2 brands, got %d", len(brands))
	}

	first := brands[0]
	if first.BrandCode != "nk01" || first.BrandName != "Nike" || first.CategoryCode != "ap" {
		t.Errorf("unexpected first brand: %+v", first)
	}
	if first.Meta.SourceFile != "brands_2024_07_01.csv" {
		t.Errorf("expected source file in provenance, got %q", first.Meta.SourceFile)
	}
	if first.Meta.LineNumber != 2 {
		t.Errorf("expected line number 2, got %d", first.Meta.LineNumber)
	}
	if first.Meta.BatchID != a.BatchID() {
		t.Errorf("expected batch ID %q, got %q", a.BatchID(), first.Meta.BatchID)
	}
	if first.Meta.IngestedAt.IsZero() {
		t.Error("expected non-zero ingestion timestamp")
	}
}

func TestReadBrandsFieldsNotReformatted(t *testing.T) {
	// Ingestion must not trim, case-fold, or otherwise touch field values.
	path := writeLanding(t, "brands.csv",
		"brand_code,brand_name,category_code\n"+
			"  nk-01 , Nike Inc ,ap\n")

	a := NewAdapter()
	brands, _, err := a.ReadBrands(path)
	if err != nil {
		t.Fatalf("ReadBrands failed: %v", err)
	}
	if brands[0].BrandCode != "  nk-01 " || brands[0].BrandName != " Nike Inc " {
		t.Errorf("fields were reformatted: %+v", brands[0])
	}
}

func TestReadBrandsQuarantinesMalformedRows(t *testing.T) {
	path := writeLanding(t, "brands.csv",
		"brand_code,brand_name,category_code\n"+
			"nk01,Nike,ap\n"+
			"broken,row\n"+
			"ad02,Adidas,ap\n")

	a := NewAdapter()
	brands, rejects, err := a.ReadBrands(path)
	if err != nil {
		t.Fatalf("ReadBrands failed: %v", err)
	}
	if len(brands) != 2 {
		t.Fatalf("expected 2 brands, got %d", len(brands))
	}
	if len(rejects) != 1 {
		t.Fatalf("expected 1 reject, got %d", len(rejects))
	}

	reject := rejects[0]
	if reject.Reason != models.ReasonMalformedRow {
		t.Errorf("expected reason %s, got %s", models.ReasonMalformedRow, reject.Reason)
	}
	if reject.Raw != "broken,row" {
		t.Errorf("expected raw text preserved verbatim, got %q", reject.Raw)
	}
	if reject.Entity != "brands" {
		t.Errorf("expected entity brands, got %q", reject.Entity)
	}
	if reject.LineNumber != 3 {
		t.Errorf("expected line 3, got %d", reject.LineNumber)
	}
}

func TestReadOrderItems(t *testing.T) {
	path := writeLanding(t, "order_items.csv",
		"order_id,order_date,customer_id,product_id,quantity,unit_price,discount_percentage,tax_amount,currency,coupon_code,channel,line_seq\n"+
			"ORD-1,2024-07-01,11,101,2,100,0.10,5,USD,SAVE10,web,1\n")

	a := NewAdapter()
	items, rejects, err := a.ReadOrderItems(path)
	if err != nil {
		t.Fatalf("ReadOrderItems failed: %v", err)
	}
	if len(rejects) != 0 {
		t.Fatalf("expected no rejects, got %d", len(rejects))
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.OrderID != "ORD-1" || item.Currency != "USD" || item.Channel != "web" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Quantity != "2" || item.UnitPrice != "100" {
		t.Errorf("numeric fields must stay raw strings in bronze: %+v", item)
	}
}

func TestReadLandingSkipsBlankLines(t *testing.T) {
	path := writeLanding(t, "categories.csv",
		"category_code,category_name\n"+
			"ap,Apparel\n"+
			"\n"+
			"ft,Footwear\n")

	a := NewAdapter()
	categories, rejects, err := a.ReadCategories(path)
	if err != nil {
		t.Fatalf("ReadCategories failed: %v", err)
	}
	if len(categories) != 2 || len(rejects) != 0 {
		t.Fatalf("expected 2 categories and no rejects, got %d and %d", len(categories), len(rejects))
	}
}

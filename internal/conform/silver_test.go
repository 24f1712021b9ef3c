package conform

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orchid-commerce/medallion/internal/models"
	"github.com/orchid-commerce/medallion/internal/refdata"
)

func testRefData(t *testing.T) *refdata.RefData {
	t.Helper()

	rd, err := refdata.FromValues("test", map[string]string{
		"polyestr": "polyester",
	}, map[string]string{
		"web": "website",
		"app": "mobile app",
	}, map[string]string{
		"KA": "South",
		"MH": "West",
	}, map[string]string{
		"INR": "1",
		"USD": "83",
	})
	if err != nil {
		t.Fatalf("failed to build test reference data: %v", err)
	}
	return rd
}

func meta(ingested time.Time) models.Provenance {
	return models.Provenance{
		SourceFile: "test.csv",
		LineNumber: 2,
		BatchID:    "batch-1",
		IngestedAt: ingested,
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  nk-01 ", "NK01"},
		{"ap", "AP"},
		{"A_B.C", "ABC"},
		{"  ", ""},
		{"--", ""},
	}

	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConformBrandsDedupKeepsLatest(t *testing.T) {
	older := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)

	bronze := []models.BronzeBrand{
		{BrandCode: "nk01", BrandName: "Nike Old", CategoryCode: "ap", Meta: meta(older)},
		{BrandCode: " NK-01 ", BrandName: "Nike", CategoryCode: "ap", Meta: meta(newer)},
		{BrandCode: "ad02", BrandName: "Adidas", CategoryCode: "ap", Meta: meta(older)},
	}

	silver, quarantine := ConformBrands(bronze)
	if len(quarantine) != 0 {
		t.Fatalf("expected no quarantine, got %d", len(quarantine))
	}
	if len(silver) != 2 {
		t.Fatalf("expected 2 brands after dedup, got %d", len(silver))
	}

	// Sorted by code, so AD02 first.
	if silver[0].BrandCode != "AD02" {
		t.Errorf("expected AD02 first, got %s", silver[0].BrandCode)
	}
	if silver[1].BrandCode != "NK01" || silver[1].BrandName != "Nike" {
		t.Errorf("expected latest NK01 row to win, got %+v", silver[1])
	}
}

func TestConformBrandsQuarantinesEmptyKey(t *testing.T) {
	bronze := []models.BronzeBrand{
		{BrandCode: " -- ", BrandName: "Mystery", CategoryCode: "ap", Meta: meta(time.Now())},
	}

	silver, quarantine := ConformBrands(bronze)
	if len(silver) != 0 {
		t.Fatalf("expected no silver rows, got %d", len(silver))
	}
	if len(quarantine) != 1 {
		t.Fatalf("expected 1 quarantine record, got %d", len(quarantine))
	}
	if quarantine[0].Reason != models.ReasonInvalidKey {
		t.Errorf("expected reason %s, got %s", models.ReasonInvalidKey, quarantine[0].Reason)
	}
	if quarantine[0].Raw == "" {
		t.Error("expected original values preserved in quarantine record")
	}
}

func TestConformProducts(t *testing.T) {
	rd := testRefData(t)
	now := time.Now().UTC()

	bronze := []models.BronzeProduct{
		{ProductID: "101", SKU: " SKU-1 ", Color: "red", Size: "M", Material: "polyestr", Weight: "0.5", Price: "499.99", BrandCode: "nk01", Meta: meta(now)},
		{ProductID: "102", SKU: "SKU-2", Color: "blue", Size: "L", Material: "cotton", Weight: "bad", Price: "n/a", BrandCode: "ad02", Meta: meta(now)},
		{ProductID: "oops", SKU: "SKU-3", Material: "silk", Meta: meta(now)},
	}

	silver, quarantine := ConformProducts(bronze, rd)
	if len(silver) != 2 {
		t.Fatalf("expected 2 silver products, got %d", len(silver))
	}
	if len(quarantine) != 1 {
		t.Fatalf("expected 1 quarantine record, got %d", len(quarantine))
	}

	first := silver[0]
	if first.Material != "polyester" {
		t.Errorf("expected corrected material polyester, got %q", first.Material)
	}
	if first.SKU != "SKU-1" {
		t.Errorf("expected trimmed SKU, got %q", first.SKU)
	}
	if first.Weight == nil || *first.Weight != 0.5 {
		t.Errorf("expected weight 0.5, got %v", first.Weight)
	}
	if first.Price == nil || !first.Price.Equal(decimal.RequireFromString("499.99")) {
		t.Errorf("expected price 499.99, got %v", first.Price)
	}
	if first.BrandCode != "NK01" {
		t.Errorf("expected normalized brand code NK01, got %q", first.BrandCode)
	}

	// Parse failures null the field, never drop the row.
	second := silver[1]
	if second.Weight != nil || second.Price != nil {
		t.Errorf("expected nulled weight and price, got %+v", second)
	}
}

func TestConformCustomers(t *testing.T) {
	now := time.Now().UTC()

	bronze := []models.BronzeCustomer{
		{CustomerID: "11", Phone: " +91 98765 ", Country: "India", State: " ka ", Meta: meta(now)},
		{CustomerID: "abc", Phone: "1", Country: "India", State: "MH", Meta: meta(now)},
	}

	silver, quarantine := ConformCustomers(bronze)
	if len(silver) != 1 || len(quarantine) != 1 {
		t.Fatalf("expected 1 silver and 1 quarantined, got %d and %d", len(silver), len(quarantine))
	}
	if silver[0].State != "KA" {
		t.Errorf("expected normalized state KA, got %q", silver[0].State)
	}
	if silver[0].Phone != "+91 98765" {
		t.Errorf("expected trimmed phone, got %q", silver[0].Phone)
	}
}

func TestParseDateRejectsImpossibleDates(t *testing.T) {
	if d := ParseDate("2024-02-30"); d != nil {
		t.Errorf("expected nil for impossible date, got %v", d)
	}
	if d := ParseDate("2024-02-29"); d == nil {
		t.Error("expected leap day to parse")
	}
	if d := ParseDate("01/07/2024"); d != nil {
		t.Errorf("expected nil for wrong layout, got %v", d)
	}
}

package facts

import (
	"testing"
	"time"

	"github.com/orchid-commerce/medallion/internal/models"
	"github.com/orchid-commerce/medallion/internal/refdata"
)

func testRefData(t *testing.T) *refdata.RefData {
	t.Helper()

	rd, err := refdata.FromValues("test", nil, map[string]string{
		"web": "website",
		"app": "mobile app",
	}, map[string]string{
		"KA": "South",
	}, map[string]string{
		"INR": "1",
		"USD": "83",
	})
	if err != nil {
		t.Fatalf("failed to build test reference data: %v", err)
	}
	return rd
}

func bronzeItem(orderID string, over func(*models.BronzeOrderItem)) models.BronzeOrderItem {
	b := models.BronzeOrderItem{
		OrderID:     orderID,
		OrderDate:   "2024-07-01",
		CustomerID:  "11",
		ProductID:   "101",
		Quantity:    "2",
		UnitPrice:   "100",
		DiscountPct: "0.10",
		TaxAmount:   "5",
		Currency:    "usd",
		CouponCode:  "",
		Channel:     "web",
		LineSeq:     "1",
		Meta: models.Provenance{
			SourceFile: "order_items.csv",
			LineNumber: 2,
			BatchID:    "batch-1",
			IngestedAt: time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		},
	}
	if over != nil {
		over(&b)
	}
	return b
}

func TestConformOrderItemsChannelMapping(t *testing.T) {
	rd := testRefData(t)

	tests := []struct {
		raw     string
		want    string
		unknown bool
	}{
		{"web", "website", false},
		{"app", "mobile app", false},
		{"retail", "retail", true},
	}

	for _, tt := range tests {
		bronze := []models.BronzeOrderItem{bronzeItem("ORD-1", func(b *models.BronzeOrderItem) {
			b.Channel = tt.raw
		})}

		silver, _ := ConformOrderItems(bronze, rd)
		if len(silver) != 1 {
			t.Fatalf("channel %q: expected 1 silver row, got %d", tt.raw, len(silver))
		}
		if silver[0].Channel != tt.want {
			t.Errorf("channel %q: expected %q, got %q", tt.raw, tt.want, silver[0].Channel)
		}
		if silver[0].ChannelUnknown != tt.unknown {
			t.Errorf("channel %q: expected unknown=%t", tt.raw, tt.unknown)
		}
	}
}

func TestConformOrderItemsTyping(t *testing.T) {
	rd := testRefData(t)

	silver, quarantine := ConformOrderItems([]models.BronzeOrderItem{
		bronzeItem("ORD-1", func(b *models.BronzeOrderItem) {
			b.OrderDate = "2024-02-30" // impossible date
			b.Quantity = "two"
			b.DiscountPct = "1.5" // out of [0,1]
		}),
	}, rd)

	if len(quarantine) != 0 {
		t.Fatalf("parse failures must not quarantine at silver, got %d records", len(quarantine))
	}
	row := silver[0]
	if row.OrderDate != nil {
		t.Errorf("expected invalid date nulled, got %v", row.OrderDate)
	}
	if row.Quantity != nil {
		t.Errorf("expected unparseable quantity nulled, got %v", row.Quantity)
	}
	if row.DiscountPct != nil {
		t.Errorf("expected out-of-range discount nulled, got %v", row.DiscountPct)
	}
	if row.Currency != "USD" {
		t.Errorf("expected standardized currency USD, got %q", row.Currency)
	}
}

func TestConformOrderItemsDedupKeepsLatest(t *testing.T) {
	rd := testRefData(t)

	older := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	silver, _ := ConformOrderItems([]models.BronzeOrderItem{
		bronzeItem("ORD-1", func(b *models.BronzeOrderItem) {
			b.Quantity = "1"
			b.Meta.IngestedAt = older
		}),
		bronzeItem("ORD-1", func(b *models.BronzeOrderItem) {
			b.Quantity = "3"
			b.Meta.IngestedAt = newer
		}),
	}, rd)

	if len(silver) != 1 {
		t.Fatalf("expected duplicate collapsed to 1 row, got %d", len(silver))
	}
	if silver[0].Quantity == nil || *silver[0].Quantity != 3 {
		t.Errorf("expected most recently ingested row to win, got %v", silver[0].Quantity)
	}
}

func TestConformOrderItemsAssignsLineSeq(t *testing.T) {
	rd := testRefData(t)

	silver, _ := ConformOrderItems([]models.BronzeOrderItem{
		bronzeItem("ORD-1", func(b *models.BronzeOrderItem) { b.LineSeq = ""; b.ProductID = "101" }),
		bronzeItem("ORD-1", func(b *models.BronzeOrderItem) { b.LineSeq = ""; b.ProductID = "102" }),
		bronzeItem("ORD-2", func(b *models.BronzeOrderItem) { b.LineSeq = ""; b.ProductID = "101" }),
	}, rd)

	if len(silver) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(silver))
	}
	if silver[0].LineSeq != 1 || silver[1].LineSeq != 2 {
		t.Errorf("expected line_seq 1,2 within ORD-1, got %d,%d", silver[0].LineSeq, silver[1].LineSeq)
	}
	if silver[2].LineSeq != 1 {
		t.Errorf("expected line_seq restart per order, got %d", silver[2].LineSeq)
	}
}

func TestConformOrderItemsQuarantinesEmptyOrderID(t *testing.T) {
	rd := testRefData(t)

	silver, quarantine := ConformOrderItems([]models.BronzeOrderItem{
		bronzeItem("  ", nil),
	}, rd)

	if len(silver) != 0 {
		t.Fatalf("expected no silver rows, got %d", len(silver))
	}
	if len(quarantine) != 1 || quarantine[0].Reason != models.ReasonInvalidKey {
		t.Fatalf("expected one INVALID_KEY record, got %+v", quarantine)
	}
}

func TestConformOrderItemsDedupCanonicalizesProductID(t *testing.T) {
	rd := testRefData(t)

	older := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	silver, _ := ConformOrderItems([]models.BronzeOrderItem{
		bronzeItem("ORD-1", func(b *models.BronzeOrderItem) {
			b.ProductID = "0101"
			b.Quantity = "1"
			b.Meta.IngestedAt = older
		}),
		bronzeItem("ORD-1", func(b *models.BronzeOrderItem) {
			b.ProductID = "101"
			b.Quantity = "5"
			b.Meta.IngestedAt = newer
		}),
	}, rd)

	if len(silver) != 1 {
		t.Fatalf("expected spellings of the same product id collapsed to 1 row, got %d", len(silver))
	}
	if silver[0].Quantity == nil || *silver[0].Quantity != 5 {
		t.Errorf("expected most recently ingested spelling to win, got %v", silver[0].Quantity)
	}
	if silver[0].ProductID == nil || *silver[0].ProductID != 101 {
		t.Errorf("expected product id 101, got %v", silver[0].ProductID)
	}
}

func TestConformOrderItemsUnparseableProductIDsStayDistinct(t *testing.T) {
	rd := testRefData(t)

	silver, _ := ConformOrderItems([]models.BronzeOrderItem{
		bronzeItem("ORD-1", func(b *models.BronzeOrderItem) { b.ProductID = "abc" }),
		bronzeItem("ORD-1", func(b *models.BronzeOrderItem) { b.LineSeq = "1"; b.ProductID = "xyz" }),
	}, rd)

	if len(silver) != 2 {
		t.Fatalf("expected unparseable product ids kept as distinct rows, got %d", len(silver))
	}
}

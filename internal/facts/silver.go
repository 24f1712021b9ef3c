package facts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orchid-commerce/medallion/internal/conform"
	"github.com/orchid-commerce/medallion/internal/models"
	"github.com/orchid-commerce/medallion/internal/refdata"
)

type lineKey struct {
	orderID   string
	productID string
	lineSeq   int
}

// productKey canonicalizes the product id for deduplication so spellings
// of the same number ("0101", "101") collapse onto one key. Unparseable
// ids stay distinct by their raw spelling; they can never collide with a
// canonical form, which is always a plain base-10 integer.
func productKey(raw string, parsed *int64) string {
	if parsed != nil {
		return strconv.FormatInt(*parsed, 10)
	}
	return strings.TrimSpace(raw)
}

// ConformOrderItems produces the silver fact table: typed fields with null
// fallback, conformed channel names, standardized currency codes, and
// duplicates removed by (order_id, product_id, line_seq) keeping the most
// recently ingested row. A missing line_seq is assigned from the row's
// 1-based position within its order in the landing batch.
func ConformOrderItems(bronze []models.BronzeOrderItem, rd *refdata.RefData) ([]models.SilverOrderItem, []models.QuarantineRecord) {
	var quarantine []models.QuarantineRecord
	latest := make(map[lineKey]models.SilverOrderItem)
	orderPos := make(map[string]int)

	for _, b := range bronze {
		orderID := strings.TrimSpace(b.OrderID)
		orderPos[orderID]++

		if orderID == "" {
			quarantine = append(quarantine, models.QuarantineRecord{
				ID:            uuid.NewString(),
				Stage:         models.TableSilverOrderItems,
				Entity:        "order_items",
				Reason:        models.ReasonInvalidKey,
				Detail:        "order_id is empty",
				Raw:           bronzeRaw(b),
				SourceFile:    b.Meta.SourceFile,
				LineNumber:    b.Meta.LineNumber,
				QuarantinedAt: time.Now().UTC(),
			})
			continue
		}

		lineSeq := orderPos[orderID]
		if parsed := conform.ParseInt64(b.LineSeq); parsed != nil {
			lineSeq = int(*parsed)
		}

		channel, known := rd.NormalizeChannel(b.Channel)

		row := models.SilverOrderItem{
			OrderID:        orderID,
			LineSeq:        lineSeq,
			OrderDate:      conform.ParseDate(b.OrderDate),
			CustomerID:     conform.ParseInt64(b.CustomerID),
			ProductID:      conform.ParseInt64(b.ProductID),
			Quantity:       conform.ParseInt64(b.Quantity),
			UnitPrice:      conform.ParseDecimal(b.UnitPrice),
			DiscountPct:    parseFraction(b.DiscountPct),
			TaxAmount:      conform.ParseDecimal(b.TaxAmount),
			Currency:       strings.ToUpper(strings.TrimSpace(b.Currency)),
			CouponCode:     strings.TrimSpace(b.CouponCode),
			Channel:        channel,
			ChannelUnknown: !known,
			Meta:           b.Meta,
		}

		key := lineKey{orderID: orderID, productID: productKey(b.ProductID, row.ProductID), lineSeq: lineSeq}
		if existing, ok := latest[key]; !ok || row.Meta.IngestedAt.After(existing.Meta.IngestedAt) {
			latest[key] = row
		}
	}

	rows := make([]models.SilverOrderItem, 0, len(latest))
	for _, row := range latest {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OrderID != rows[j].OrderID {
			return rows[i].OrderID < rows[j].OrderID
		}
		if rows[i].LineSeq != rows[j].LineSeq {
			return rows[i].LineSeq < rows[j].LineSeq
		}
		return rows[i].Meta.LineNumber < rows[j].Meta.LineNumber
	})

	return rows, quarantine
}

var one = decimal.NewFromInt(1)

// parseFraction parses a discount percentage held as a fraction in [0,1].
// Out-of-range values are nulled like any other parse failure.
func parseFraction(s string) *decimal.Decimal {
	v := conform.ParseDecimal(s)
	if v == nil {
		return nil
	}
	if v.Sign() < 0 || v.GreaterThan(one) {
		return nil
	}
	return v
}

func bronzeRaw(b models.BronzeOrderItem) string {
	return fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s",
		b.OrderID, b.OrderDate, b.CustomerID, b.ProductID, b.Quantity, b.UnitPrice,
		b.DiscountPct, b.TaxAmount, b.Currency, b.CouponCode, b.Channel, b.LineSeq)
}

package facts

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orchid-commerce/medallion/internal/conform"
	"github.com/orchid-commerce/medallion/internal/models"
	"github.com/orchid-commerce/medallion/internal/refdata"
)

// inrScale is the decimal precision of normalized amounts, matching the
// decimal(20,4) warehouse columns.
const inrScale = 4

// DimensionSnapshot is the conformed dimension state a gold run resolves
// against. It is passed in explicitly so a run is a pure function of
// (silver input, snapshot, reference data).
type DimensionSnapshot struct {
	Dates     map[int]models.GoldDate
	Products  map[int64]models.GoldProduct
	Customers map[int64]models.GoldCustomer
}

// NewDimensionSnapshot indexes gold dimension tables by their keys.
func NewDimensionSnapshot(dates []models.GoldDate, products []models.GoldProduct, customers []models.GoldCustomer) DimensionSnapshot {
	snap := DimensionSnapshot{
		Dates:     make(map[int]models.GoldDate, len(dates)),
		Products:  make(map[int64]models.GoldProduct, len(products)),
		Customers: make(map[int64]models.GoldCustomer, len(customers)),
	}
	for _, d := range dates {
		snap.Dates[d.DateID] = d
	}
	for _, p := range products {
		snap.Products[p.ProductID] = p
	}
	for _, c := range customers {
		snap.Customers[c.CustomerID] = c
	}
	return snap
}

// BuildGoldOrderItems resolves foreign keys, derives the monetary metrics,
// and normalizes amounts into INR. Rows that cannot resolve a key, lack a
// required measure, or have no conversion rate are quarantined with a
// reason code; they never reach the gold table as half-joined rows.
func BuildGoldOrderItems(silver []models.SilverOrderItem, snap DimensionSnapshot, rd *refdata.RefData) ([]models.GoldOrderItem, []models.QuarantineRecord) {
	gold := make([]models.GoldOrderItem, 0, len(silver))
	var quarantine []models.QuarantineRecord

	for _, s := range silver {
		if reason, detail := resolve(s, snap); reason != "" {
			quarantine = append(quarantine, quarantineFact(s, reason, detail))
			continue
		}

		rate, ok := rd.RateToINR(s.Currency)
		if !ok {
			quarantine = append(quarantine, quarantineFact(s, models.ReasonNoRate, fmt.Sprintf("no conversion rate for currency %q", s.Currency)))
			continue
		}

		qty := decimal.NewFromInt(*s.Quantity)
		gross := qty.Mul(*s.UnitPrice)
		discount := gross.Mul(*s.DiscountPct)
		sales := gross.Sub(discount).Add(*s.TaxAmount)

		gold = append(gold, models.GoldOrderItem{
			OrderID:    s.OrderID,
			LineSeq:    s.LineSeq,
			DateID:     conform.DateID(*s.OrderDate),
			CustomerID: *s.CustomerID,
			ProductID:  *s.ProductID,

			Quantity:    *s.Quantity,
			UnitPrice:   *s.UnitPrice,
			DiscountPct: *s.DiscountPct,

			GrossAmount:    gross,
			DiscountAmount: discount,
			TaxAmount:      *s.TaxAmount,
			SalesAmount:    sales,

			Currency: s.Currency,
			FXRate:   rate,

			GrossAmountINR:    gross.Mul(rate).Round(inrScale),
			DiscountAmountINR: discount.Mul(rate).Round(inrScale),
			TaxAmountINR:      s.TaxAmount.Mul(rate).Round(inrScale),
			SalesAmountINR:    sales.Mul(rate).Round(inrScale),

			HasCoupon:  s.CouponCode != "",
			CouponCode: s.CouponCode,
			Channel:    s.Channel,
		})
	}

	return gold, quarantine
}

// resolve checks every foreign key and required measure of a silver row.
// It returns an empty reason when the row is fully resolvable.
func resolve(s models.SilverOrderItem, snap DimensionSnapshot) (reason, detail string) {
	switch {
	case s.OrderDate == nil:
		return models.ReasonUnresolvedFK, "order_date is null, date_id cannot be resolved"
	case s.CustomerID == nil:
		return models.ReasonUnresolvedFK, "customer_id is null"
	case s.ProductID == nil:
		return models.ReasonUnresolvedFK, "product_id is null"
	}

	if _, ok := snap.Dates[conform.DateID(*s.OrderDate)]; !ok {
		return models.ReasonUnresolvedFK, fmt.Sprintf("date_id %d has no gold date row", conform.DateID(*s.OrderDate))
	}
	if _, ok := snap.Customers[*s.CustomerID]; !ok {
		return models.ReasonUnresolvedFK, fmt.Sprintf("customer_id %d has no gold customer row", *s.CustomerID)
	}
	if _, ok := snap.Products[*s.ProductID]; !ok {
		return models.ReasonUnresolvedFK, fmt.Sprintf("product_id %d has no gold product row", *s.ProductID)
	}

	switch {
	case s.Quantity == nil:
		return models.ReasonMissingField, "quantity is null"
	case s.UnitPrice == nil:
		return models.ReasonMissingField, "unit_price is null"
	case s.DiscountPct == nil:
		return models.ReasonMissingField, "discount_percentage is null or out of [0,1]"
	case s.TaxAmount == nil:
		return models.ReasonMissingField, "tax_amount is null"
	}

	return "", ""
}

func quarantineFact(s models.SilverOrderItem, reason, detail string) models.QuarantineRecord {
	return models.QuarantineRecord{
		ID:            uuid.NewString(),
		Stage:         models.TableGoldOrderItems,
		Entity:        "order_items",
		Reason:        reason,
		Detail:        detail,
		Raw:           silverRaw(s),
		SourceFile:    s.Meta.SourceFile,
		LineNumber:    s.Meta.LineNumber,
		QuarantinedAt: time.Now().UTC(),
	}
}

func silverRaw(s models.SilverOrderItem) string {
	return fmt.Sprintf("order_id=%s line_seq=%d order_date=%s customer_id=%s product_id=%s quantity=%s unit_price=%s discount_percentage=%s tax_amount=%s currency=%s channel=%s",
		s.OrderID, s.LineSeq,
		fmtDate(s.OrderDate), fmtInt(s.CustomerID), fmtInt(s.ProductID), fmtInt(s.Quantity),
		fmtDec(s.UnitPrice), fmtDec(s.DiscountPct), fmtDec(s.TaxAmount),
		s.Currency, s.Channel)
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return "null"
	}
	return t.Format(conform.DateFormat)
}

func fmtInt(v *int64) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%d", *v)
}

func fmtDec(v *decimal.Decimal) string {
	if v == nil {
		return "null"
	}
	return v.String()
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BronzeOrderItem is one raw order line exactly as landed.
type BronzeOrderItem struct {
	OrderID     string     `json:"order_id" db:"order_id"`
	OrderDate   string     `json:"order_date" db:"order_date"`
	CustomerID  string     `json:"customer_id" db:"customer_id"`
	ProductID   string     `json:"product_id" db:"product_id"`
	Quantity    string     `json:"quantity" db:"quantity"`
	UnitPrice   string     `json:"unit_price" db:"unit_price"`
	DiscountPct string     `json:"discount_percentage" db:"discount_percentage"`
	TaxAmount   string     `json:"tax_amount" db:"tax_amount"`
	Currency    string     `json:"currency" db:"currency"`
	CouponCode  string     `json:"coupon_code" db:"coupon_code"`
	Channel     string     `json:"channel" db:"channel"`
	LineSeq     string     `json:"line_seq" db:"line_seq"`
	Meta        Provenance `json:"meta"`
}

// SilverOrderItem is a typed, deduplicated order line. Fields that failed
// parsing are nil; foreign keys are not resolved until gold. Provenance is
// carried so a gold-stage quarantine can still point at the source row; it
// is a staging-only attribute and never reaches gold.
type SilverOrderItem struct {
	OrderID        string           `json:"order_id" db:"order_id"`
	LineSeq        int              `json:"line_seq" db:"line_seq"`
	OrderDate      *time.Time       `json:"order_date" db:"order_date"`
	CustomerID     *int64           `json:"customer_id" db:"customer_id"`
	ProductID      *int64           `json:"product_id" db:"product_id"`
	Quantity       *int64           `json:"quantity" db:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unit_price" db:"unit_price"`
	DiscountPct    *decimal.Decimal `json:"discount_percentage" db:"discount_percentage"`
	TaxAmount      *decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	Currency       string           `json:"currency" db:"currency"`
	CouponCode     string           `json:"coupon_code" db:"coupon_code"`
	Channel        string           `json:"channel" db:"channel"`
	ChannelUnknown bool             `json:"channel_unknown" db:"channel_unknown"`
	Meta           Provenance       `json:"meta"`
}

// GoldOrderItem is a fully conformed fact row. Amounts suffixed INR are in
// the normalized reporting currency; the unsuffixed amounts and Currency
// retain the original values for audit.
type GoldOrderItem struct {
	OrderID    string `json:"order_id" db:"order_id"`
	LineSeq    int    `json:"line_seq" db:"line_seq"`
	DateID     int    `json:"date_id" db:"date_id"`
	CustomerID int64  `json:"customer_id" db:"customer_id"`
	ProductID  int64  `json:"product_id" db:"product_id"`

	Quantity    int64           `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_percentage" db:"discount_percentage"`

	GrossAmount    decimal.Decimal `json:"gross_amount" db:"gross_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	SalesAmount    decimal.Decimal `json:"sales_amount" db:"sales_amount"`

	Currency string          `json:"currency" db:"currency"`
	FXRate   decimal.Decimal `json:"fx_rate" db:"fx_rate"`

	GrossAmountINR    decimal.Decimal `json:"gross_amount_inr" db:"gross_amount_inr"`
	DiscountAmountINR decimal.Decimal `json:"discount_amount_inr" db:"discount_amount_inr"`
	TaxAmountINR      decimal.Decimal `json:"tax_amount_inr" db:"tax_amount_inr"`
	SalesAmountINR    decimal.Decimal `json:"sales_amount_inr" db:"sales_amount_inr"`

	HasCoupon  bool   `json:"has_coupon" db:"has_coupon"`
	CouponCode string `json:"coupon_code" db:"coupon_code"`
	Channel    string `json:"channel" db:"channel"`
}

// UnifiedOrderItem is the denormalized projection served to BI. Dimension
// attributes are pointers so an unmatched dimension surfaces as null
// instead of dropping the fact row.
type UnifiedOrderItem struct {
	GoldOrderItem

	MonthName *string `json:"month_name" db:"month_name"`
	Quarter   *int    `json:"quarter" db:"quarter"`
	IsWeekend *bool   `json:"is_weekend" db:"is_weekend"`

	CategoryName *string `json:"category_name" db:"category_name"`
	BrandName    *string `json:"brand_name" db:"brand_name"`
	Material     *string `json:"material" db:"material"`

	Region *string `json:"region" db:"region"`
}

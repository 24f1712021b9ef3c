package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bronze dimension rows keep every field exactly as it appeared in the
// landing file. Nothing is trimmed, typed, or validated here.

type BronzeBrand struct {
	BrandCode    string     `json:"brand_code" db:"brand_code"`
	BrandName    string     `json:"brand_name" db:"brand_name"`
	CategoryCode string     `json:"category_code" db:"category_code"`
	Meta         Provenance `json:"meta"`
}

type BronzeCategory struct {
	CategoryCode string     `json:"category_code" db:"category_code"`
	CategoryName string     `json:"category_name" db:"category_name"`
	Meta         Provenance `json:"meta"`
}

type BronzeProduct struct {
	ProductID string     `json:"product_id" db:"product_id"`
	SKU       string     `json:"sku" db:"sku"`
	Color     string     `json:"color" db:"color"`
	Size      string     `json:"size" db:"size"`
	Material  string     `json:"material" db:"material"`
	Weight    string     `json:"weight" db:"weight"`
	Price     string     `json:"price" db:"price"`
	BrandCode string     `json:"brand_code" db:"brand_code"`
	Meta      Provenance `json:"meta"`
}

type BronzeCustomer struct {
	CustomerID string     `json:"customer_id" db:"customer_id"`
	Phone      string     `json:"phone" db:"phone"`
	Country    string     `json:"country" db:"country"`
	State      string     `json:"state" db:"state"`
	Meta       Provenance `json:"meta"`
}

// Silver dimension rows are cleaned and typed. Fields that failed type
// conversion are nil rather than the whole row being rejected; only an
// unusable natural key sends a row to quarantine.

type SilverBrand struct {
	BrandCode    string    `json:"brand_code" db:"brand_code"`
	BrandName    string    `json:"brand_name" db:"brand_name"`
	CategoryCode string    `json:"category_code" db:"category_code"`
	IngestedAt   time.Time `json:"ingested_at" db:"ingested_at"`
}

type SilverCategory struct {
	CategoryCode string    `json:"category_code" db:"category_code"`
	CategoryName string    `json:"category_name" db:"category_name"`
	IngestedAt   time.Time `json:"ingested_at" db:"ingested_at"`
}

type SilverProduct struct {
	ProductID  int64            `json:"product_id" db:"product_id"`
	SKU        string           `json:"sku" db:"sku"`
	Color      string           `json:"color" db:"color"`
	Size       string           `json:"size" db:"size"`
	Material   string           `json:"material" db:"material"`
	Weight     *float64         `json:"weight" db:"weight"`
	Price      *decimal.Decimal `json:"price" db:"price"`
	BrandCode  string           `json:"brand_code" db:"brand_code"`
	IngestedAt time.Time        `json:"ingested_at" db:"ingested_at"`
}

type SilverCustomer struct {
	CustomerID int64     `json:"customer_id" db:"customer_id"`
	Phone      string    `json:"phone" db:"phone"`
	Country    string    `json:"country" db:"country"`
	State      string    `json:"state" db:"state"`
	IngestedAt time.Time `json:"ingested_at" db:"ingested_at"`
}

// SilverDate is one calendar day of the reporting horizon.
type SilverDate struct {
	Date    time.Time `json:"date" db:"date"`
	Year    int       `json:"year" db:"year"`
	Quarter int       `json:"quarter" db:"quarter"`
	Month   int       `json:"month" db:"month"`
	Week    int       `json:"week" db:"week"`
	Day     int       `json:"day" db:"day"`
}

// Gold dimension rows are business-ready: parent names denormalized in,
// derived attributes computed, staging-only fields dropped.

type GoldCategory struct {
	CategoryCode string `json:"category_code" db:"category_code"`
	CategoryName string `json:"category_name" db:"category_name"`
}

type GoldBrand struct {
	BrandCode    string `json:"brand_code" db:"brand_code"`
	BrandName    string `json:"brand_name" db:"brand_name"`
	CategoryCode string `json:"category_code" db:"category_code"`
	CategoryName string `json:"category_name" db:"category_name"`
}

type GoldProduct struct {
	ProductID    int64            `json:"product_id" db:"product_id"`
	SKU          string           `json:"sku" db:"sku"`
	Color        string           `json:"color" db:"color"`
	Size         string           `json:"size" db:"size"`
	Material     string           `json:"material" db:"material"`
	Weight       *float64         `json:"weight" db:"weight"`
	Price        *decimal.Decimal `json:"price" db:"price"`
	BrandCode    string           `json:"brand_code" db:"brand_code"`
	BrandName    string           `json:"brand_name" db:"brand_name"`
	CategoryCode string           `json:"category_code" db:"category_code"`
	CategoryName string           `json:"category_name" db:"category_name"`
}

type GoldCustomer struct {
	CustomerID int64  `json:"customer_id" db:"customer_id"`
	Phone      string `json:"phone" db:"phone"`
	Country    string `json:"country" db:"country"`
	State      string `json:"state" db:"state"`
	Region     string `json:"region" db:"region"`
}

// GoldDate carries the surrogate date_id, a deterministic yyyymmdd
// encoding of the calendar date, so repeated runs assign identical keys.
type GoldDate struct {
	DateID    int       `json:"date_id" db:"date_id"`
	Date      time.Time `json:"date" db:"date"`
	Year      int       `json:"year" db:"year"`
	Quarter   int       `json:"quarter" db:"quarter"`
	Month     int       `json:"month" db:"month"`
	MonthName string    `json:"month_name" db:"month_name"`
	Week      int       `json:"week" db:"week"`
	Day       int       `json:"day" db:"day"`
	IsWeekend bool      `json:"is_weekend" db:"is_weekend"`
}

package models

import (
	"time"
)

// Provenance identifies where a bronze row came from. It is attached at
// ingestion and carried through every later stage untouched.
type Provenance struct {
	SourceFile string    `json:"source_file" db:"source_file"`
	LineNumber int       `json:"line_number" db:"line_number"`
	BatchID    string    `json:"batch_id" db:"batch_id"`
	IngestedAt time.Time `json:"ingested_at" db:"ingested_at"`
}

// Quarantine reason codes
const (
	ReasonMalformedRow = "MALFORMED_ROW"
	ReasonInvalidKey   = "INVALID_KEY"
	ReasonUnresolvedFK = "UNRESOLVED_FK"
	ReasonNoRate       = "NO_RATE"
	ReasonMissingField = "MISSING_FIELD"
)

// QuarantineRecord is a row excluded from a stage's primary output. The
// original values are preserved so the data-quality monitor can inspect
// exactly what was rejected and why.
type QuarantineRecord struct {
	ID            string    `json:"id" db:"id"`
	Stage         string    `json:"stage" db:"stage"`
	Entity        string    `json:"entity" db:"entity"`
	Reason        string    `json:"reason" db:"reason"`
	Detail        string    `json:"detail" db:"detail"`
	Raw           string    `json:"raw" db:"raw"`
	SourceFile    string    `json:"source_file" db:"source_file"`
	LineNumber    int       `json:"line_number" db:"line_number"`
	QuarantinedAt time.Time `json:"quarantined_at" db:"quarantined_at"`
}

// StageRun records one execution of a pipeline stage.
type StageRun struct {
	RunID          string        `json:"run_id" db:"run_id"`
	Stage          string        `json:"stage" db:"stage"`
	RefDataVersion string        `json:"refdata_version" db:"refdata_version"`
	RowsIn         int           `json:"rows_in" db:"rows_in"`
	RowsOut        int           `json:"rows_out" db:"rows_out"`
	Quarantined    int           `json:"quarantined" db:"quarantined"`
	StartedAt      time.Time     `json:"started_at" db:"started_at"`
	Duration       time.Duration `json:"duration" db:"duration"`
}

// Warehouse table names. Stage inputs and outputs are declared against
// these so the orchestration graph can be validated before anything runs.
const (
	TableBronzeBrands     = "bronze.brands"
	TableBronzeCategories = "bronze.categories"
	TableBronzeProducts   = "bronze.products"
	TableBronzeCustomers  = "bronze.customers"
	TableBronzeOrderItems = "bronze.order_items"

	TableSilverBrands     = "silver.brands"
	TableSilverCategories = "silver.categories"
	TableSilverProducts   = "silver.products"
	TableSilverCustomers  = "silver.customers"
	TableSilverDates      = "silver.dates"
	TableSilverOrderItems = "silver.order_items"

	TableGoldBrands     = "gold.dim_brands"
	TableGoldCategories = "gold.dim_categories"
	TableGoldProducts   = "gold.dim_products"
	TableGoldCustomers  = "gold.dim_customers"
	TableGoldDates      = "gold.dim_dates"
	TableGoldOrderItems = "gold.fact_order_items"

	TableUnifiedView = "gold.view_order_items"
)

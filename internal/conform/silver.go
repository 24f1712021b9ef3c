package conform

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orchid-commerce/medallion/internal/models"
	"github.com/orchid-commerce/medallion/internal/refdata"
)

// DateFormat is the only accepted calendar-date layout in landing files.
const DateFormat = "2006-01-02"

// NormalizeCode conforms a natural-key code: trims whitespace, strips
// non-alphanumeric characters, upper-cases the rest.
func NormalizeCode(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// ParseInt64 converts a raw field, nil on failure.
func ParseInt64(s string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseFloat converts a raw field, nil on failure.
func ParseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseDecimal converts a raw monetary field, nil on failure.
func ParseDecimal(s string) *decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

// ParseDate converts a raw calendar date, nil on failure. The layout is
// strict: "2024-02-30" does not parse.
func ParseDate(s string) *time.Time {
	v, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

func quarantineDim(stage, entity, detail, raw string, meta models.Provenance) models.QuarantineRecord {
	return models.QuarantineRecord{
		ID:            uuid.NewString(),
		Stage:         stage,
		Entity:        entity,
		Reason:        models.ReasonInvalidKey,
		Detail:        detail,
		Raw:           raw,
		SourceFile:    meta.SourceFile,
		LineNumber:    meta.LineNumber,
		QuarantinedAt: time.Now().UTC(),
	}
}

// ConformBrands produces the silver brand table: codes normalized, names
// trimmed, exact duplicates collapsed to the most recently ingested row.
func ConformBrands(bronze []models.BronzeBrand) ([]models.SilverBrand, []models.QuarantineRecord) {
	var quarantine []models.QuarantineRecord
	latest := make(map[string]models.SilverBrand)

	for _, b := range bronze {
		code := NormalizeCode(b.BrandCode)
		if code == "" {
			raw := strings.Join([]string{b.BrandCode, b.BrandName, b.CategoryCode}, ",")
			quarantine = append(quarantine, quarantineDim(models.TableSilverBrands, "brands", "brand_code is empty after normalization", raw, b.Meta))
			continue
		}

		row := models.SilverBrand{
			BrandCode:    code,
			BrandName:    strings.TrimSpace(b.BrandName),
			CategoryCode: NormalizeCode(b.CategoryCode),
			IngestedAt:   b.Meta.IngestedAt,
		}
		if existing, ok := latest[code]; !ok || row.IngestedAt.After(existing.IngestedAt) {
			latest[code] = row
		}
	}

	rows := make([]models.SilverBrand, 0, len(latest))
	for _, row := range latest {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].BrandCode < rows[j].BrandCode })

	return rows, quarantine
}

// ConformCategories produces the silver category table.
func ConformCategories(bronze []models.BronzeCategory) ([]models.SilverCategory, []models.QuarantineRecord) {
	var quarantine []models.QuarantineRecord
	latest := make(map[string]models.SilverCategory)

	for _, c := range bronze {
		code := NormalizeCode(c.CategoryCode)
		if code == "" {
			raw := strings.Join([]string{c.CategoryCode, c.CategoryName}, ",")
			quarantine = append(quarantine, quarantineDim(models.TableSilverCategories, "categories", "category_code is empty after normalization", raw, c.Meta))
			continue
		}

		row := models.SilverCategory{
			CategoryCode: code,
			CategoryName: strings.TrimSpace(c.CategoryName),
			IngestedAt:   c.Meta.IngestedAt,
		}
		if existing, ok := latest[code]; !ok || row.IngestedAt.After(existing.IngestedAt) {
			latest[code] = row
		}
	}

	rows := make([]models.SilverCategory, 0, len(latest))
	for _, row := range latest {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CategoryCode < rows[j].CategoryCode })

	return rows, quarantine
}

// ConformProducts produces the silver product table. Material names go
// through the corrections lookup; weight and price fall back to null on
// parse failure rather than failing the batch.
func ConformProducts(bronze []models.BronzeProduct, rd *refdata.RefData) ([]models.SilverProduct, []models.QuarantineRecord) {
	var quarantine []models.QuarantineRecord
	latest := make(map[int64]models.SilverProduct)

	for _, p := range bronze {
		raw := strings.Join([]string{p.ProductID, p.SKU, p.Color, p.Size, p.Material, p.Weight, p.Price, p.BrandCode}, ",")

		id := ParseInt64(p.ProductID)
		if id == nil {
			quarantine = append(quarantine, quarantineDim(models.TableSilverProducts, "products", "product_id is not a valid integer", raw, p.Meta))
			continue
		}

		row := models.SilverProduct{
			ProductID:  *id,
			SKU:        strings.TrimSpace(p.SKU),
			Color:      strings.TrimSpace(p.Color),
			Size:       strings.TrimSpace(p.Size),
			Material:   rd.CorrectMaterial(strings.TrimSpace(p.Material)),
			Weight:     ParseFloat(p.Weight),
			Price:      ParseDecimal(p.Price),
			BrandCode:  NormalizeCode(p.BrandCode),
			IngestedAt: p.Meta.IngestedAt,
		}
		if existing, ok := latest[row.ProductID]; !ok || row.IngestedAt.After(existing.IngestedAt) {
			latest[row.ProductID] = row
		}
	}

	rows := make([]models.SilverProduct, 0, len(latest))
	for _, row := range latest {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProductID < rows[j].ProductID })

	return rows, quarantine
}

// ConformCustomers produces the silver customer table.
func ConformCustomers(bronze []models.BronzeCustomer) ([]models.SilverCustomer, []models.QuarantineRecord) {
	var quarantine []models.QuarantineRecord
	latest := make(map[int64]models.SilverCustomer)

	for _, c := range bronze {
		raw := strings.Join([]string{c.CustomerID, c.Phone, c.Country, c.State}, ",")

		id := ParseInt64(c.CustomerID)
		if id == nil {
			quarantine = append(quarantine, quarantineDim(models.TableSilverCustomers, "customers", "customer_id is not a valid integer", raw, c.Meta))
			continue
		}

		row := models.SilverCustomer{
			CustomerID: *id,
			Phone:      strings.TrimSpace(c.Phone),
			Country:    strings.TrimSpace(c.Country),
			State:      NormalizeCode(c.State),
			IngestedAt: c.Meta.IngestedAt,
		}
		if existing, ok := latest[row.CustomerID]; !ok || row.IngestedAt.After(existing.IngestedAt) {
			latest[row.CustomerID] = row
		}
	}

	rows := make([]models.SilverCustomer, 0, len(latest))
	for _, row := range latest {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CustomerID < rows[j].CustomerID })

	return rows, quarantine
}

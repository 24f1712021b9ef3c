package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orchid-commerce/medallion/internal/models"
)

// Expected column counts per landing file. Ingestion checks nothing else:
// fields land in bronze exactly as they appear, typed and validated later.
const (
	brandCols     = 3
	categoryCols  = 2
	productCols   = 8
	customerCols  = 4
	orderItemCols = 12
)

// Adapter reads delimited landing files and produces bronze rows tagged
// with provenance. One Adapter covers one landing batch: every row it
// emits shares a batch ID and ingestion timestamp.
type Adapter struct {
	batchID    string
	ingestedAt time.Time
}

func NewAdapter() *Adapter {
	return &Adapter{
		batchID:    uuid.NewString(),
		ingestedAt: time.Now().UTC(),
	}
}

// BatchID returns the identifier shared by all rows of this batch.
func (a *Adapter) BatchID() string {
	return a.batchID
}

type rawRow struct {
	fields []string
	line   int
	raw    string
}

// readLanding reads one landing file, splitting rows into well-formed rows
// and MALFORMED_ROW rejects that preserve the original text verbatim.
// The first line is a header and is skipped. Landing extracts are one
// record per line; embedded newlines inside quoted fields are not
// supported at this boundary.
func (a *Adapter) readLanding(path string, wantCols int) ([]rawRow, []models.QuarantineRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open landing file: %w", err)
	}
	defer f.Close()

	source := filepath.Base(path)

	var rows []rawRow
	var rejects []models.QuarantineRecord

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if line == 1 || strings.TrimSpace(text) == "" {
			continue
		}

		fields, err := parseLine(text)
		if err != nil || len(fields) != wantCols {
			detail := fmt.Sprintf("expected %d columns", wantCols)
			if err != nil {
				detail = err.Error()
			} else {
				detail = fmt.Sprintf("%s, got %d", detail, len(fields))
			}
			rejects = append(rejects, models.QuarantineRecord{
				ID:            uuid.NewString(),
				Stage:         "ingest",
				Reason:        models.ReasonMalformedRow,
				Detail:        detail,
				Raw:           text,
				SourceFile:    source,
				LineNumber:    line,
				QuarantinedAt: a.ingestedAt,
			})
			continue
		}

		rows = append(rows, rawRow{fields: fields, line: line, raw: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read landing file: %w", err)
	}

	return rows, rejects, nil
}

func parseLine(text string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	return r.Read()
}

func (a *Adapter) provenance(path string, line int) models.Provenance {
	return models.Provenance{
		SourceFile: filepath.Base(path),
		LineNumber: line,
		BatchID:    a.batchID,
		IngestedAt: a.ingestedAt,
	}
}

// ReadBrands ingests a brand landing file into bronze rows.
func (a *Adapter) ReadBrands(path string) ([]models.BronzeBrand, []models.QuarantineRecord, error) {
	rows, rejects, err := a.readLanding(path, brandCols)
	if err != nil {
		return nil, nil, err
	}

	brands := make([]models.BronzeBrand, 0, len(rows))
	for _, r := range rows {
		brands = append(brands, models.BronzeBrand{
			BrandCode:    r.fields[0],
			BrandName:    r.fields[1],
			CategoryCode: r.fields[2],
			Meta:         a.provenance(path, r.line),
		})
	}
	return brands, tagEntity(rejects, "brands"), nil
}

// ReadCategories ingests a category landing file into bronze rows.
func (a *Adapter) ReadCategories(path string) ([]models.BronzeCategory, []models.QuarantineRecord, error) {
	rows, rejects, err := a.readLanding(path, categoryCols)
	if err != nil {
		return nil, nil, err
	}

	categories := make([]models.BronzeCategory, 0, len(rows))
	for _, r := range rows {
		categories = append(categories, models.BronzeCategory{
			CategoryCode: r.fields[0],
			CategoryName: r.fields[1],
			Meta:         a.provenance(path, r.line),
		})
	}
	return categories, tagEntity(rejects, "categories"), nil
}

// ReadProducts ingests a product landing file into bronze rows.
func (a *Adapter) ReadProducts(path string) ([]models.BronzeProduct, []models.QuarantineRecord, error) {
	rows, rejects, err := a.readLanding(path, productCols)
	if err != nil {
		return nil, nil, err
	}

	products := make([]models.BronzeProduct, 0, len(rows))
	for _, r := range rows {
		products = append(products, models.BronzeProduct{
			ProductID: r.fields[0],
			SKU:       r.fields[1],
			Color:     r.fields[2],
			Size:      r.fields[3],
			Material:  r.fields[4],
			Weight:    r.fields[5],
			Price:     r.fields[6],
			BrandCode: r.fields[7],
			Meta:      a.provenance(path, r.line),
		})
	}
	return products, tagEntity(rejects, "products"), nil
}

// ReadCustomers ingests a customer landing file into bronze rows.
func (a *Adapter) ReadCustomers(path string) ([]models.BronzeCustomer, []models.QuarantineRecord, error) {
	rows, rejects, err := a.readLanding(path, customerCols)
	if err != nil {
		return nil, nil, err
	}

	customers := make([]models.BronzeCustomer, 0, len(rows))
	for _, r := range rows {
		customers = append(customers, models.BronzeCustomer{
			CustomerID: r.fields[0],
			Phone:      r.fields[1],
			Country:    r.fields[2],
			State:      r.fields[3],
			Meta:       a.provenance(path, r.line),
		})
	}
	return customers, tagEntity(rejects, "customers"), nil
}

// ReadOrderItems ingests an order-item landing file into bronze rows.
func (a *Adapter) ReadOrderItems(path string) ([]models.BronzeOrderItem, []models.QuarantineRecord, error) {
	rows, rejects, err := a.readLanding(path, orderItemCols)
	if err != nil {
		return nil, nil, err
	}

	items := make([]models.BronzeOrderItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, models.BronzeOrderItem{
			OrderID:     r.fields[0],
			OrderDate:   r.fields[1],
			CustomerID:  r.fields[2],
			ProductID:   r.fields[3],
			Quantity:    r.fields[4],
			UnitPrice:   r.fields[5],
			DiscountPct: r.fields[6],
			TaxAmount:   r.fields[7],
			Currency:    r.fields[8],
			CouponCode:  r.fields[9],
			Channel:     r.fields[10],
			LineSeq:     r.fields[11],
			Meta:        a.provenance(path, r.line),
		})
	}
	return items, tagEntity(rejects, "order_items"), nil
}

func tagEntity(rejects []models.QuarantineRecord, entity string) []models.QuarantineRecord {
	for i := range rejects {
		rejects[i].Entity = entity
	}
	return rejects
}

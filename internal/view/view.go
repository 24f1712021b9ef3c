package view

import (
	"github.com/orchid-commerce/medallion/internal/facts"
	"github.com/orchid-commerce/medallion/internal/models"
)

// Build produces the denormalized order-item projection: every fact column
// plus the date, product, and customer attributes BI dashboards group by.
// Each dimension is a left outer join, so a fact row survives even when a
// dimension row is missing and the attributes surface as null. That is
// defense in depth on top of the gold quarantine step, not a path that
// should see traffic.
func Build(factRows []models.GoldOrderItem, snap facts.DimensionSnapshot) []models.UnifiedOrderItem {
	unified := make([]models.UnifiedOrderItem, 0, len(factRows))

	for _, f := range factRows {
		row := models.UnifiedOrderItem{GoldOrderItem: f}

		if d, ok := snap.Dates[f.DateID]; ok {
			row.MonthName = &d.MonthName
			row.Quarter = &d.Quarter
			row.IsWeekend = &d.IsWeekend
		}
		if p, ok := snap.Products[f.ProductID]; ok {
			row.CategoryName = &p.CategoryName
			row.BrandName = &p.BrandName
			row.Material = &p.Material
		}
		if c, ok := snap.Customers[f.CustomerID]; ok {
			row.Region = &c.Region
		}

		unified = append(unified, row)
	}

	return unified
}

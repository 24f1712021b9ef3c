package view

import (
	"testing"
	"time"

	"github.com/orchid-commerce/medallion/internal/conform"
	"github.com/orchid-commerce/medallion/internal/facts"
	"github.com/orchid-commerce/medallion/internal/models"
)

func TestBuildEnrichesFromAllDimensions(t *testing.T) {
	dates := conform.BuildGoldDates(conform.BuildCalendar(
		time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC),
	))
	snap := facts.NewDimensionSnapshot(dates,
		[]models.GoldProduct{{ProductID: 101, BrandName: "Nike", CategoryName: "Apparel", Material: "polyester"}},
		[]models.GoldCustomer{{CustomerID: 11, Region: "South"}},
	)

	unified := Build([]models.GoldOrderItem{
		{OrderID: "ORD-1", DateID: 20240706, ProductID: 101, CustomerID: 11},
	}, snap)

	if len(unified) != 1 {
		t.Fatalf("expected 1 row, got %d", len(unified))
	}

	row := unified[0]
	if row.MonthName == nil || *row.MonthName != "July" {
		t.Errorf("expected month name July, got %v", row.MonthName)
	}
	if row.IsWeekend == nil || !*row.IsWeekend {
		t.Error("expected 2024-07-06 flagged as weekend")
	}
	if row.Quarter == nil || *row.Quarter != 3 {
		t.Errorf("expected quarter 3, got %v", row.Quarter)
	}
	if row.BrandName == nil || *row.BrandName != "Nike" {
		t.Errorf("expected brand Nike, got %v", row.BrandName)
	}
	if row.CategoryName == nil || *row.CategoryName != "Apparel" {
		t.Errorf("expected category Apparel, got %v", row.CategoryName)
	}
	if row.Material == nil || *row.Material != "polyester" {
		t.Errorf("expected material polyester, got %v", row.Material)
	}
	if row.Region == nil || *row.Region != "South" {
		t.Errorf("expected region South, got %v", row.Region)
	}
}

func TestBuildNeverDropsFactRows(t *testing.T) {
	// Empty snapshot: every join misses, yet all fact rows survive with
	// null dimension attributes.
	snap := facts.NewDimensionSnapshot(nil, nil, nil)

	unified := Build([]models.GoldOrderItem{
		{OrderID: "ORD-1", DateID: 20240706, ProductID: 9999, CustomerID: 9999},
		{OrderID: "ORD-2", DateID: 20240707, ProductID: 101, CustomerID: 11},
	}, snap)

	if len(unified) != 2 {
		t.Fatalf("expected both fact rows kept, got %d", len(unified))
	}

	row := unified[0]
	if row.MonthName != nil || row.BrandName != nil || row.Region != nil {
		t.Errorf("expected null attributes for unmatched dimensions, got %+v", row)
	}
	if row.OrderID != "ORD-1" {
		t.Errorf("expected fact columns preserved, got %q", row.OrderID)
	}
}

package conform

import (
	"github.com/orchid-commerce/medallion/internal/models"
	"github.com/orchid-commerce/medallion/internal/refdata"
)

// BuildGoldCategories drops the staging-only ingestion timestamp.
func BuildGoldCategories(silver []models.SilverCategory) []models.GoldCategory {
	gold := make([]models.GoldCategory, 0, len(silver))
	for _, c := range silver {
		gold = append(gold, models.GoldCategory{
			CategoryCode: c.CategoryCode,
			CategoryName: c.CategoryName,
		})
	}
	return gold
}

// BuildGoldBrands denormalizes the parent category name onto each brand.
// A brand whose category is missing keeps an empty name; the row itself
// survives, only the lookup attribute is absent.
func BuildGoldBrands(silver []models.SilverBrand, categories []models.GoldCategory) []models.GoldBrand {
	byCode := make(map[string]models.GoldCategory, len(categories))
	for _, c := range categories {
		byCode[c.CategoryCode] = c
	}

	gold := make([]models.GoldBrand, 0, len(silver))
	for _, b := range silver {
		row := models.GoldBrand{
			BrandCode:    b.BrandCode,
			BrandName:    b.BrandName,
			CategoryCode: b.CategoryCode,
		}
		if c, ok := byCode[b.CategoryCode]; ok {
			row.CategoryName = c.CategoryName
		}
		gold = append(gold, row)
	}
	return gold
}

// BuildGoldProducts enriches products through Brand into Category, so each
// product carries brand_name, category_code, and category_name.
func BuildGoldProducts(silver []models.SilverProduct, brands []models.GoldBrand) []models.GoldProduct {
	byCode := make(map[string]models.GoldBrand, len(brands))
	for _, b := range brands {
		byCode[b.BrandCode] = b
	}

	gold := make([]models.GoldProduct, 0, len(silver))
	for _, p := range silver {
		row := models.GoldProduct{
			ProductID: p.ProductID,
			SKU:       p.SKU,
			Color:     p.Color,
			Size:      p.Size,
			Material:  p.Material,
			Weight:    p.Weight,
			Price:     p.Price,
			BrandCode: p.BrandCode,
		}
		if b, ok := byCode[p.BrandCode]; ok {
			row.BrandName = b.BrandName
			row.CategoryCode = b.CategoryCode
			row.CategoryName = b.CategoryName
		}
		gold = append(gold, row)
	}
	return gold
}

// BuildGoldCustomers derives the sales region from the state code. An
// unmapped state leaves the region empty rather than excluding the row.
func BuildGoldCustomers(silver []models.SilverCustomer, rd *refdata.RefData) []models.GoldCustomer {
	gold := make([]models.GoldCustomer, 0, len(silver))
	for _, c := range silver {
		row := models.GoldCustomer{
			CustomerID: c.CustomerID,
			Phone:      c.Phone,
			Country:    c.Country,
			State:      c.State,
		}
		if region, ok := rd.RegionFor(c.State); ok {
			row.Region = region
		}
		gold = append(gold, row)
	}
	return gold
}

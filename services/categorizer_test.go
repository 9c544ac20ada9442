package services

import (
	"testing"

	"marketscope/config"
	"marketscope/models"
)

func TestCategorizeFirstMatchWins(t *testing.T) {
	c := NewCategorizer(config.MarketMalaysia)

	// Matches both "earphone" (electronics) and "charger" (electronics) but
	// also nothing in later categories; the first declared category wins.
	products := []*models.Product{
		{Name: "Wireless Earphone Charger Case"},
	}
	buckets := c.Categorize(products)
	if len(buckets) != 1 {
		t.Fatalf("buckets: got %d, want 1", len(buckets))
	}
	if buckets[0].Name != "electronics" {
		t.Errorf("bucket: got %q, want electronics", buckets[0].Name)
	}
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	c := NewCategorizer(config.MarketIndonesia)
	buckets := c.Categorize([]*models.Product{{Name: "LAPTOP Gaming Murah"}})
	if len(buckets) != 1 || buckets[0].Name != "elektronik" {
		t.Errorf("got %+v, want one elektronik bucket", buckets)
	}
}

func TestCategorizeFallback(t *testing.T) {
	c := NewCategorizer(config.MarketIndonesia)
	buckets := c.Categorize([]*models.Product{
		{Name: "Paket Bibit Tanaman Hias"},
		{Name: "Sepatu Lari"},
	})
	// fashion first (declaration order), fallback last.
	if len(buckets) != 2 {
		t.Fatalf("buckets: got %d, want 2", len(buckets))
	}
	if buckets[0].Name != "fashion" {
		t.Errorf("buckets[0]: got %q, want fashion", buckets[0].Name)
	}
	if buckets[1].Name != "lainnya" {
		t.Errorf("buckets[1]: got %q, want lainnya", buckets[1].Name)
	}
}

func TestCategorizePartitionComplete(t *testing.T) {
	c := NewCategorizer(config.MarketIndonesia)
	products := sampleProducts()
	buckets := c.Categorize(products)

	total := 0
	for _, b := range buckets {
		total += len(b.Products)
	}
	if total != len(products) {
		t.Errorf("partition: %d products in buckets, want %d", total, len(products))
	}
}

func TestCategoryAnalyzeTopBySold(t *testing.T) {
	c := NewCategorizer(config.MarketIndonesia)
	agg := NewAggregator(config.MarketIndonesia)

	products := []*models.Product{
		{Name: "Laptop Gaming", Price: 8000000, Sold: 10},
		{Name: "Laptop Kantor", Price: 5000000, Sold: 20},
		{Name: "Baju Kaos A", Price: 50000, Sold: 500},
		{Name: "Baju Kaos B", Price: 60000, Sold: 400},
		{Name: "Baju Kaos C", Price: 70000, Sold: 300},
	}
	analysis := c.Analyze(products, agg)

	// fashion moves 1200 units vs elektronik's 30.
	if analysis.TopCategory != "fashion" {
		t.Errorf("TopCategory: got %q, want fashion", analysis.TopCategory)
	}
	if analysis.MostCommonCategory != "fashion" {
		t.Errorf("MostCommonCategory: got %q, want fashion", analysis.MostCommonCategory)
	}

	for _, cs := range analysis.CategoryStats {
		if cs.Category != "fashion" {
			continue
		}
		if cs.ProductCount != 3 {
			t.Errorf("fashion ProductCount: got %d, want 3", cs.ProductCount)
		}
		if cs.TotalSold != 1200 {
			t.Errorf("fashion TotalSold: got %d, want 1200", cs.TotalSold)
		}
		if cs.BestSeller == nil || cs.BestSeller.Name != "Baju Kaos A" {
			t.Errorf("fashion BestSeller: got %+v", cs.BestSeller)
		}
	}
}

package services

import (
	"math"
	"testing"

	"marketscope/config"
	"marketscope/models"
	"marketscope/utils"
)

func sampleProducts() []*models.Product {
	return []*models.Product{
		{Platform: "shopee", Name: "Laptop Gaming ROG", Price: 10, Rating: 4.5, Sold: 120, ShopID: "shop-a", ShopLocation: "Jakarta"},
		{Platform: "shopee", Name: "Baju Kaos Polos", Price: 20, Rating: 2.0, Sold: 40, ShopID: "shop-a", ShopLocation: "Jakarta"},
		{Platform: "lazada", Name: "Sepatu Lari Pria", Price: 0, Rating: 4.2, Sold: 300, ShopID: "shop-b", ShopLocation: "Bandung"},
		{Platform: "lazada", Name: "Skincare Serum Wajah", Price: 35, Rating: 0, Sold: 15, ShopID: "shop-c", ShopLocation: "Surabaya"},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := NewAnalyzer(config.MarketIndonesia, utils.NewLogger())
	r := a.AnalyzeProducts(nil)
	if r.Error != "no products provided for analysis" {
		t.Errorf("Error: got %q, want %q", r.Error, "no products provided for analysis")
	}
	if r.TotalProducts != 0 {
		t.Errorf("TotalProducts: got %d, want 0", r.TotalProducts)
	}
	if r.PriceAnalysis != nil {
		t.Error("PriceAnalysis should be nil for empty input")
	}
}

func TestAnalyzePrices(t *testing.T) {
	a := NewAnalyzer(config.MarketIndonesia, utils.NewLogger())
	r := a.AnalyzeProducts(sampleProducts())

	if r.TotalProducts != 4 {
		t.Errorf("TotalProducts: got %d, want 4", r.TotalProducts)
	}

	pa := r.PriceAnalysis
	if pa == nil || pa.Error != "" {
		t.Fatalf("PriceAnalysis unexpected: %+v", pa)
	}
	// Zero-priced products are excluded: 10, 20, 35.
	if pa.TotalProductsWithPrice != 3 {
		t.Errorf("TotalProductsWithPrice: got %d, want 3", pa.TotalProductsWithPrice)
	}
	wantAvg := (10.0 + 20.0 + 35.0) / 3.0
	if !almostEqual(pa.AveragePrice, wantAvg) {
		t.Errorf("AveragePrice: got %.4f, want %.4f", pa.AveragePrice, wantAvg)
	}
	if pa.MedianPrice != 20 {
		t.Errorf("MedianPrice: got %.2f, want 20", pa.MedianPrice)
	}
	if pa.MinPrice != 10 || pa.MaxPrice != 35 {
		t.Errorf("Min/Max: got %.2f/%.2f, want 10/35", pa.MinPrice, pa.MaxPrice)
	}
	if pa.PriceRange != 25 {
		t.Errorf("PriceRange: got %.2f, want 25", pa.PriceRange)
	}
}

func TestAnalyzeRatings(t *testing.T) {
	a := NewAnalyzer(config.MarketIndonesia, utils.NewLogger())
	r := a.AnalyzeProducts(sampleProducts())

	ra := r.RatingAnalysis
	if ra == nil || ra.Error != "" {
		t.Fatalf("RatingAnalysis unexpected: %+v", ra)
	}
	// Ratings considered: 4.5, 2.0, 4.2.
	if ra.TotalProductsWithRating != 3 {
		t.Errorf("TotalProductsWithRating: got %d, want 3", ra.TotalProductsWithRating)
	}
	if ra.HighRatedCount != 2 {
		t.Errorf("HighRatedCount: got %d, want 2", ra.HighRatedCount)
	}
	if ra.LowRatedCount != 1 {
		t.Errorf("LowRatedCount: got %d, want 1", ra.LowRatedCount)
	}
	wantPct := 2.0 / 3.0 * 100
	if !almostEqual(ra.HighRatedPercentage, wantPct) {
		t.Errorf("HighRatedPercentage: got %.4f, want %.4f", ra.HighRatedPercentage, wantPct)
	}
	if len(ra.HighRatedProducts) != 2 {
		t.Errorf("HighRatedProducts len: got %d, want 2", len(ra.HighRatedProducts))
	}
}

func TestAnalyzeAllZeroPrices(t *testing.T) {
	products := []*models.Product{
		{Platform: "shopee", Name: "Item A", Price: 0, Rating: 4.0, Sold: 10},
		{Platform: "shopee", Name: "Item B", Price: 0, Rating: 3.5, Sold: 5},
	}
	a := NewAnalyzer(config.MarketIndonesia, utils.NewLogger())
	r := a.AnalyzeProducts(products)

	if r.PriceAnalysis.Error != "no valid price data found" {
		t.Errorf("PriceAnalysis.Error: got %q", r.PriceAnalysis.Error)
	}
	// Rating metrics still compute even when every price is invalid.
	if r.RatingAnalysis.Error != "" {
		t.Errorf("RatingAnalysis should compute, got error %q", r.RatingAnalysis.Error)
	}
	if r.RatingAnalysis.TotalProductsWithRating != 2 {
		t.Errorf("TotalProductsWithRating: got %d, want 2", r.RatingAnalysis.TotalProductsWithRating)
	}
}

func TestAnalyzeMerchants(t *testing.T) {
	a := NewAnalyzer(config.MarketIndonesia, utils.NewLogger())
	r := a.AnalyzeProducts(sampleProducts())

	ma := r.MerchantAnalysis
	if ma.TotalMerchants != 3 {
		t.Errorf("TotalMerchants: got %d, want 3", ma.TotalMerchants)
	}
	if ma.MerchantStats["shop-a"].ProductCount != 2 {
		t.Errorf("shop-a count: got %d, want 2", ma.MerchantStats["shop-a"].ProductCount)
	}
	if !almostEqual(ma.AvgProductsPerMerchant, 4.0/3.0) {
		t.Errorf("AvgProductsPerMerchant: got %.4f", ma.AvgProductsPerMerchant)
	}
	// shop-b carries the single highest average rating (4.2 vs shop-a 3.25).
	if ma.TopMerchants[0].ShopID != "shop-b" {
		t.Errorf("TopMerchants[0]: got %q, want shop-b", ma.TopMerchants[0].ShopID)
	}
}

func TestAnalyzePlatformBreakdown(t *testing.T) {
	a := NewAnalyzer(config.MarketIndonesia, utils.NewLogger())
	r := a.AnalyzeProducts(sampleProducts())

	pb := r.PlatformBreakdown
	if pb.TotalPlatforms != 2 {
		t.Errorf("TotalPlatforms: got %d, want 2", pb.TotalPlatforms)
	}
	if pb.PlatformDistribution["shopee"] != 2 || pb.PlatformDistribution["lazada"] != 2 {
		t.Errorf("PlatformDistribution: got %+v", pb.PlatformDistribution)
	}
	// Tie on count keeps the first-seen platform.
	if pb.DominantPlatform != "shopee" {
		t.Errorf("DominantPlatform: got %q, want shopee", pb.DominantPlatform)
	}
}

func TestComparePlatforms(t *testing.T) {
	a := NewAnalyzer(config.MarketIndonesia, utils.NewLogger())
	r := a.ComparePlatforms(sampleProducts())

	if r.Error != "" {
		t.Fatalf("unexpected error: %q", r.Error)
	}
	if len(r.PlatformMetrics) != 2 {
		t.Errorf("PlatformMetrics len: got %d, want 2", len(r.PlatformMetrics))
	}
	if r.Summary == nil || r.Summary.BestPlatform == "" {
		t.Error("Summary.BestPlatform should be set")
	}
	for platform, m := range r.PlatformMetrics {
		if m.Score < 0 || m.Score > 100 {
			t.Errorf("%s score out of range: %.2f", platform, m.Score)
		}
	}
}

func TestComparePlatformsEmpty(t *testing.T) {
	a := NewAnalyzer(config.MarketIndonesia, utils.NewLogger())
	r := a.ComparePlatforms(nil)
	if r.Error != "no products provided for comparison" {
		t.Errorf("Error: got %q", r.Error)
	}
}

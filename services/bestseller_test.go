package services

import (
	"reflect"
	"testing"

	"marketscope/config"
	"marketscope/models"
	"marketscope/utils"
)

func bestsellerInput() []*models.Product {
	return []*models.Product{
		{Platform: "shopee", Name: "Charger 20W", Price: 150000, Rating: 4.8, Sold: 900, ShopID: "s1"},
		{Platform: "lazada", Name: "Baju Kaos", Price: 45000, Rating: 4.2, Sold: 1500, ShopID: "s2"},
		{Platform: "shopee", Name: "Laptop Gaming", Price: 12000000, Rating: 4.9, Sold: 30, ShopID: "s3"},
		{Platform: "lazada", Name: "Sepatu Lari", Price: 0, Rating: 4.5, Sold: 2000, ShopID: "s4"},
		{Platform: "shopee", Name: "Tas Selempang", Price: 80000, Rating: 3.9, Sold: 900, ShopID: "s5"},
	}
}

func TestBestsellerEmptyInput(t *testing.T) {
	f := NewBestsellerFinder(config.MarketIndonesia, utils.NewLogger())
	r := f.Find(nil, BestsellerParams{})
	if r.Error != "no products provided" {
		t.Errorf("Error: got %q", r.Error)
	}
}

func TestBestsellerCeilingFiltersAll(t *testing.T) {
	f := NewBestsellerFinder(config.MarketIndonesia, utils.NewLogger())
	r := f.Find(bestsellerInput(), BestsellerParams{MaxPrice: 1000})

	want := "no products found under price ceiling Rp 1000.00"
	if r.Error != want {
		t.Errorf("Error: got %q, want %q", r.Error, want)
	}
	// No partial aggregates on an empty filter result.
	if r.Summary != nil || r.PriceMetrics != nil || r.TopProducts != nil {
		t.Error("report should carry only the error")
	}
}

func TestBestsellerFilterAndRank(t *testing.T) {
	f := NewBestsellerFinder(config.MarketIndonesia, utils.NewLogger())
	r := f.Find(bestsellerInput(), BestsellerParams{MaxPrice: 200000})

	if r.Error != "" {
		t.Fatalf("unexpected error: %q", r.Error)
	}
	// Zero-priced and above-ceiling products are excluded: 3 remain.
	if r.Summary.TotalMatched != 3 {
		t.Errorf("TotalMatched: got %d, want 3", r.Summary.TotalMatched)
	}
	if len(r.TopProducts) != 3 {
		t.Fatalf("TopProducts: got %d, want 3", len(r.TopProducts))
	}

	// Sold descending; the two 900-sold products keep their input order.
	if r.TopProducts[0].Name != "Baju Kaos" {
		t.Errorf("rank 1: got %q, want Baju Kaos", r.TopProducts[0].Name)
	}
	if r.TopProducts[1].Name != "Charger 20W" || r.TopProducts[2].Name != "Tas Selempang" {
		t.Errorf("tie order: got %q, %q", r.TopProducts[1].Name, r.TopProducts[2].Name)
	}
	if r.TopProducts[0].Rank != 1 || r.TopProducts[2].Rank != 3 {
		t.Errorf("ranks: got %d, %d", r.TopProducts[0].Rank, r.TopProducts[2].Rank)
	}

	wantRatio := 45000.0 / 1500.0
	if r.TopProducts[0].PricePerSale != wantRatio {
		t.Errorf("PricePerSale: got %.4f, want %.4f", r.TopProducts[0].PricePerSale, wantRatio)
	}
}

func TestBestsellerMinPrice(t *testing.T) {
	f := NewBestsellerFinder(config.MarketIndonesia, utils.NewLogger())
	r := f.Find(bestsellerInput(), BestsellerParams{MinPrice: 100000})

	if r.Summary.TotalMatched != 2 {
		t.Errorf("TotalMatched: got %d, want 2", r.Summary.TotalMatched)
	}
	for _, rp := range r.TopProducts {
		if rp.Price < 100000 {
			t.Errorf("product %q priced %.2f below floor", rp.Name, rp.Price)
		}
	}
}

func TestBestsellerTopNTruncation(t *testing.T) {
	f := NewBestsellerFinder(config.MarketIndonesia, utils.NewLogger())
	r := f.Find(bestsellerInput(), BestsellerParams{TopN: 2})

	if r.Summary.TotalMatched != 4 {
		t.Errorf("TotalMatched: got %d, want 4", r.Summary.TotalMatched)
	}
	if r.Summary.Analyzed != 2 {
		t.Errorf("Analyzed: got %d, want 2", r.Summary.Analyzed)
	}
	if len(r.TopProducts) != 2 {
		t.Errorf("TopProducts: got %d, want 2", len(r.TopProducts))
	}
}

func TestBestsellerSalesMetrics(t *testing.T) {
	f := NewBestsellerFinder(config.MarketIndonesia, utils.NewLogger())
	r := f.Find(bestsellerInput(), BestsellerParams{MaxPrice: 200000})

	sm := r.SalesMetrics
	if sm.TotalSold != 3300 {
		t.Errorf("TotalSold: got %d, want 3300", sm.TotalSold)
	}
	if sm.MaxSold != 1500 {
		t.Errorf("MaxSold: got %d, want 1500", sm.MaxSold)
	}
	if sm.MedianSold != 900 {
		t.Errorf("MedianSold: got %.0f, want 900", sm.MedianSold)
	}
	if sm.BestsellerThreshold != sm.MedianSold {
		t.Errorf("BestsellerThreshold should equal MedianSold")
	}
}

func TestBestsellerInputNotReordered(t *testing.T) {
	f := NewBestsellerFinder(config.MarketIndonesia, utils.NewLogger())
	products := bestsellerInput()
	var names []string
	for _, p := range products {
		names = append(names, p.Name)
	}

	f.Find(products, BestsellerParams{})

	var after []string
	for _, p := range products {
		after = append(after, p.Name)
	}
	if !reflect.DeepEqual(names, after) {
		t.Errorf("input slice reordered: %v", after)
	}
}

func TestBestsellerIdempotent(t *testing.T) {
	f := NewBestsellerFinder(config.MarketIndonesia, utils.NewLogger())
	params := BestsellerParams{MaxPrice: 200000, TopN: 10}

	first := f.Find(bestsellerInput(), params)
	second := f.Find(bestsellerInput(), params)

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same input produced different reports")
	}
}

package services

import (
	"testing"

	"marketscope/config"
	"marketscope/models"
)

func TestAggregateDeterministicOrder(t *testing.T) {
	agg := NewAggregator(config.MarketIndonesia)
	groups := agg.Aggregate(sampleProducts(), ByPlatform)

	if len(groups) != 2 {
		t.Fatalf("groups: got %d, want 2", len(groups))
	}
	// First occurrence order: shopee before lazada.
	if groups[0].Key != "shopee" || groups[1].Key != "lazada" {
		t.Errorf("order: got %q, %q", groups[0].Key, groups[1].Key)
	}
}

func TestAggregatePartitionComplete(t *testing.T) {
	agg := NewAggregator(config.MarketIndonesia)
	products := sampleProducts()
	groups := agg.Aggregate(products, ByShop)

	total := 0
	for _, g := range groups {
		total += g.Count
	}
	if total != len(products) {
		t.Errorf("partition: %d products across groups, want %d", total, len(products))
	}
}

func TestAggregateEmptyKeyBucket(t *testing.T) {
	agg := NewAggregator(config.MarketIndonesia)
	products := []*models.Product{
		{Platform: "", Name: "A", Price: 100},
		{Platform: "shopee", Name: "B", Price: 200},
	}
	groups := agg.Aggregate(products, ByPlatform)

	if groups[0].Key != "unknown" {
		t.Errorf("empty key: got %q, want unknown", groups[0].Key)
	}
}

func TestSummarizeNoPriceData(t *testing.T) {
	agg := NewAggregator(config.MarketIndonesia)
	g := agg.Summarize("x", []*models.Product{
		{Name: "A", Rating: 4.0, Sold: 10},
		{Name: "B", Rating: 2.5, Sold: 20},
	})

	if g.Price != nil {
		t.Error("Price summary should be nil without valid prices")
	}
	if g.Rating == nil {
		t.Fatal("Rating summary should be present")
	}
	if g.Rating.Count != 2 {
		t.Errorf("Rating.Count: got %d, want 2", g.Rating.Count)
	}
	if g.TotalSold != 30 {
		t.Errorf("TotalSold: got %d, want 30", g.TotalSold)
	}
	if g.AvgSold != 15 {
		t.Errorf("AvgSold: got %.2f, want 15", g.AvgSold)
	}
}

func TestSummarizeStats(t *testing.T) {
	agg := NewAggregator(config.MarketIndonesia)
	g := agg.Summarize("x", []*models.Product{
		{Price: 10, Rating: 4.5},
		{Price: 20, Rating: 2.0},
		{Price: 30, Rating: 4.0},
	})

	if g.Price.Average != 20 || g.Price.Median != 20 {
		t.Errorf("Price avg/median: got %.2f/%.2f, want 20/20", g.Price.Average, g.Price.Median)
	}
	if g.Price.Min != 10 || g.Price.Max != 30 || g.Price.Range != 20 {
		t.Errorf("Price min/max/range: got %.2f/%.2f/%.2f", g.Price.Min, g.Price.Max, g.Price.Range)
	}
	// Sample stddev of {10, 20, 30} is 10.
	if g.Price.StdDev != 10 {
		t.Errorf("Price.StdDev: got %.4f, want 10", g.Price.StdDev)
	}
	if g.HighRated != 2 || g.LowRated != 1 {
		t.Errorf("high/low rated: got %d/%d, want 2/1", g.HighRated, g.LowRated)
	}
}

func TestStddevSingleValue(t *testing.T) {
	agg := NewAggregator(config.MarketIndonesia)
	g := agg.Summarize("x", []*models.Product{{Price: 42}})
	if g.Price.StdDev != 0 {
		t.Errorf("single-value stddev: got %.4f, want 0", g.Price.StdDev)
	}
}

func TestMedianEvenCount(t *testing.T) {
	agg := NewAggregator(config.MarketIndonesia)
	g := agg.Summarize("x", []*models.Product{
		{Price: 10}, {Price: 20}, {Price: 30}, {Price: 40},
	})
	if g.Price.Median != 25 {
		t.Errorf("median of even count: got %.2f, want 25", g.Price.Median)
	}
}

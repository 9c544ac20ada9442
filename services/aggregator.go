package services

import (
	"marketscope/config"
	"marketscope/models"
)

// KeyFunc extracts a grouping key from a product (platform, shop, category).
type KeyFunc func(*models.Product) string

// ByPlatform groups products by their source platform.
func ByPlatform(p *models.Product) string { return p.Platform }

// ByShop groups products by their shop id.
func ByShop(p *models.Product) string { return p.ShopID }

// PriceSummary holds the price statistics of one group, computed only over
// products with a positive price.
type PriceSummary struct {
	Average float64
	Median  float64
	Min     float64
	Max     float64
	Range   float64
	StdDev  float64
	Count   int
}

// RatingSummary holds the rating statistics of one group, computed only over
// products with a positive rating.
type RatingSummary struct {
	Average float64
	Median  float64
	Min     float64
	Max     float64
	Count   int
}

// GroupStats is the per-group reduction produced by the Aggregator. It is
// ephemeral: built fresh on every analysis call and never persisted.
//
// Price is nil when no product in the group carries a valid price, and
// Rating likewise — an explicit "no data" marker instead of silent zeros.
// Sold counts cover every product in the group; zero is a legitimate value.
type GroupStats struct {
	Key      string
	Products []*models.Product
	Count    int

	Price  *PriceSummary
	Rating *RatingSummary

	HighRated           int
	LowRated            int
	HighRatedPercentage float64

	TotalSold int
	AvgSold   float64

	// Score is filled in by the Scorer when a composite ranking is wanted.
	Score float64
}

// Aggregator partitions product collections and reduces each partition to
// descriptive statistics. It is a pure transformation: no I/O, no mutation
// of the input records.
type Aggregator struct {
	market config.Market
}

// NewAggregator creates an Aggregator calibrated for the given market.
func NewAggregator(market config.Market) *Aggregator {
	return &Aggregator{market: market}
}

// Aggregate groups products by keyFn and summarizes each group. The result
// is ordered by first occurrence of each key, so iteration is deterministic.
// Products whose key is empty land in an explicit "unknown" group.
func (a *Aggregator) Aggregate(products []*models.Product, keyFn KeyFunc) []*GroupStats {
	var order []string
	buckets := make(map[string][]*models.Product)

	for _, p := range products {
		key := keyFn(p)
		if key == "" {
			key = "unknown"
		}
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], p)
	}

	groups := make([]*GroupStats, 0, len(order))
	for _, key := range order {
		groups = append(groups, a.Summarize(key, buckets[key]))
	}
	return groups
}

// Summarize reduces one group of products to its statistics.
func (a *Aggregator) Summarize(key string, products []*models.Product) *GroupStats {
	g := &GroupStats{
		Key:      key,
		Products: products,
		Count:    len(products),
	}

	var prices, ratings []float64
	for _, p := range products {
		if p.Price > 0 {
			prices = append(prices, p.Price)
		}
		if p.Rating > 0 {
			ratings = append(ratings, p.Rating)
			if p.Rating >= a.market.HighRatedThreshold {
				g.HighRated++
			}
			if p.Rating < a.market.LowRatedThreshold {
				g.LowRated++
			}
		}
		g.TotalSold += p.Sold
	}

	if len(prices) > 0 {
		min, max := minMax(prices)
		g.Price = &PriceSummary{
			Average: mean(prices),
			Median:  median(prices),
			Min:     min,
			Max:     max,
			Range:   max - min,
			StdDev:  stddevSample(prices),
			Count:   len(prices),
		}
	}

	if len(ratings) > 0 {
		min, max := minMax(ratings)
		g.Rating = &RatingSummary{
			Average: mean(ratings),
			Median:  median(ratings),
			Min:     min,
			Max:     max,
			Count:   len(ratings),
		}
		g.HighRatedPercentage = float64(g.HighRated) / float64(len(ratings)) * 100
	}

	if g.Count > 0 {
		g.AvgSold = float64(g.TotalSold) / float64(g.Count)
	}

	return g
}

package services

import (
	"fmt"
	"sort"

	"marketscope/config"
	"marketscope/models"
	"marketscope/utils"
)

// Budget-observation thresholds for the recommendation text: the note fires
// when at least budgetShareThreshold of the analyzed set is priced below
// budgetPriceFactor of the average.
const (
	budgetPriceFactor    = 0.70
	budgetShareThreshold = 0.30
)

// DefaultTopN is the bestseller truncation used when the caller passes no
// explicit limit.
const DefaultTopN = 50

// BestsellerParams control the bestseller pipeline's filter and truncation.
// MaxPrice zero means "no ceiling"; products priced at zero are always
// excluded as invalid, never treated as free.
type BestsellerParams struct {
	MinPrice float64
	MaxPrice float64
	TopN     int
}

// BestsellerFinder runs the linear bestseller pipeline:
// filter by price → stable rank by sold → truncate → aggregate and report.
type BestsellerFinder struct {
	market      config.Market
	logger      *utils.Logger
	agg         *Aggregator
	categorizer *Categorizer
}

// NewBestsellerFinder creates a BestsellerFinder for the given market.
func NewBestsellerFinder(market config.Market, logger *utils.Logger) *BestsellerFinder {
	return &BestsellerFinder{
		market:      market,
		logger:      logger,
		agg:         NewAggregator(market),
		categorizer: NewCategorizer(market),
	}
}

// Find runs the pipeline over the collection. The input slice is not
// reordered: ranking happens on the filtered copy, and ties on the sold
// count preserve the input's relative order.
func (f *BestsellerFinder) Find(products []*models.Product, params BestsellerParams) *models.BestsellerReport {
	if len(products) == 0 {
		return &models.BestsellerReport{Error: "no products provided"}
	}
	if params.TopN <= 0 {
		params.TopN = DefaultTopN
	}

	filtered := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if p.Price <= 0 {
			continue
		}
		if p.Price < params.MinPrice {
			continue
		}
		if params.MaxPrice > 0 && p.Price > params.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}

	if len(filtered) == 0 {
		if params.MaxPrice > 0 {
			return &models.BestsellerReport{
				Error: fmt.Sprintf("no products found under price ceiling %s %.2f",
					f.market.CurrencySymbol, params.MaxPrice),
			}
		}
		return &models.BestsellerReport{
			Error: fmt.Sprintf("no products found above minimum price %s %.2f",
				f.market.CurrencySymbol, params.MinPrice),
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Sold > filtered[j].Sold
	})

	top := filtered
	if len(top) > params.TopN {
		top = top[:params.TopN]
	}

	f.logger.Info("[bestseller] %d matched filter, analyzing top %d", len(filtered), len(top))

	report := &models.BestsellerReport{
		Summary: &models.BestsellerSummary{
			TotalMatched: len(filtered),
			Analyzed:     len(top),
			MinPrice:     params.MinPrice,
			MaxPrice:     params.MaxPrice,
			TopN:         params.TopN,
		},
	}

	f.fillMetrics(report, top)
	report.PlatformDistribution = f.platformDistribution(top)
	report.CategoryInsights = f.categorizer.Analyze(top, f.agg)
	report.TopProducts = rankProducts(top)
	report.Recommendations = f.recommendations(report, top)

	return report
}

func (f *BestsellerFinder) fillMetrics(report *models.BestsellerReport, top []*models.Product) {
	prices := make([]float64, 0, len(top))
	soldCounts := make([]float64, 0, len(top))
	var ratings []float64
	totalSold, maxSold, highRated := 0, 0, 0

	for _, p := range top {
		prices = append(prices, p.Price)
		soldCounts = append(soldCounts, float64(p.Sold))
		totalSold += p.Sold
		if p.Sold > maxSold {
			maxSold = p.Sold
		}
		if p.Rating > 0 {
			ratings = append(ratings, p.Rating)
			if p.Rating >= f.market.HighRatedThreshold {
				highRated++
			}
		}
	}

	minPrice, maxPrice := minMax(prices)
	report.PriceMetrics = &models.PriceMetrics{
		AveragePrice: mean(prices),
		MedianPrice:  median(prices),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
	}

	medianSold := median(soldCounts)
	report.SalesMetrics = &models.SalesMetrics{
		TotalSold:           totalSold,
		AverageSold:         float64(totalSold) / float64(len(top)),
		MedianSold:          medianSold,
		MaxSold:             maxSold,
		BestsellerThreshold: medianSold,
	}

	if len(ratings) == 0 {
		report.RatingMetrics = &models.RatingMetrics{Error: "no valid rating data found"}
	} else {
		report.RatingMetrics = &models.RatingMetrics{
			AverageRating:           mean(ratings),
			HighRatedCount:          highRated,
			TotalProductsWithRating: len(ratings),
		}
	}
}

func (f *BestsellerFinder) platformDistribution(top []*models.Product) map[string]int {
	distribution := make(map[string]int)
	for _, g := range f.agg.Aggregate(top, ByPlatform) {
		distribution[g.Key] = g.Count
	}
	return distribution
}

// rankProducts attaches rank and the price-to-sold ratio. Products with no
// sales stay in the list but carry no ratio.
func rankProducts(top []*models.Product) []*models.RankedProduct {
	ranked := make([]*models.RankedProduct, 0, len(top))
	for i, p := range top {
		rp := &models.RankedProduct{Product: p, Rank: i + 1}
		if p.Sold > 0 && p.Price > 0 {
			rp.PricePerSale = p.Price / float64(p.Sold)
		}
		ranked = append(ranked, rp)
	}
	return ranked
}

// recommendations derives the advisory strings: the numeric observations are
// fixed, the phrasing is presentation.
func (f *BestsellerFinder) recommendations(report *models.BestsellerReport, top []*models.Product) []string {
	sym := f.market.CurrencySymbol
	avgPrice := report.PriceMetrics.AveragePrice

	recs := []string{
		fmt.Sprintf("Average price of top sellers: %s %.2f", sym, round2(avgPrice)),
	}

	budgetCeiling := avgPrice * budgetPriceFactor
	budgetCount := 0
	for _, p := range top {
		if p.Price < budgetCeiling {
			budgetCount++
		}
	}
	if share := float64(budgetCount) / float64(len(top)); share >= budgetShareThreshold {
		recs = append(recs, fmt.Sprintf(
			"%d of %d top sellers (%.0f%%) are priced below %s %.2f — the budget segment drives this market",
			budgetCount, len(top), share*100, sym, round2(budgetCeiling)))
	}

	recs = append(recs, fmt.Sprintf(
		"Sales benchmark: a bestseller in this set moves at least %.0f units (median)",
		report.SalesMetrics.BestsellerThreshold))

	if platform, count := dominantEntry(report.PlatformDistribution, top); platform != "" {
		recs = append(recs, fmt.Sprintf(
			"Most represented platform: %s (%d of %d top sellers)", platform, count, len(top)))
	}

	return recs
}

// dominantEntry picks the platform with the highest count, breaking ties by
// first occurrence in the product order.
func dominantEntry(distribution map[string]int, top []*models.Product) (string, int) {
	best, bestCount := "", 0
	seen := make(map[string]bool)
	for _, p := range top {
		platform := p.Platform
		if platform == "" {
			platform = "unknown"
		}
		if seen[platform] {
			continue
		}
		seen[platform] = true
		if c := distribution[platform]; c > bestCount {
			best, bestCount = platform, c
		}
	}
	return best, bestCount
}

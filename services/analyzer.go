package services

import (
	"sort"

	"marketscope/config"
	"marketscope/models"
	"marketscope/utils"
)

const topMerchantCount = 5
const highRatedProductLimit = 10

// Analyzer produces the full descriptive analysis of a mixed-platform
// product collection. It owns its input only for the duration of one call:
// records are read and grouped, never mutated, and no derived statistics are
// cached between calls.
type Analyzer struct {
	market      config.Market
	logger      *utils.Logger
	agg         *Aggregator
	scorer      *Scorer
	categorizer *Categorizer
}

// NewAnalyzer creates an Analyzer for the given market.
func NewAnalyzer(market config.Market, logger *utils.Logger) *Analyzer {
	return &Analyzer{
		market:      market,
		logger:      logger,
		agg:         NewAggregator(market),
		scorer:      NewScorer(market),
		categorizer: NewCategorizer(market),
	}
}

// Aggregator exposes the analyzer's aggregator for callers that need raw
// group statistics.
func (a *Analyzer) Aggregator() *Aggregator { return a.agg }

// Scorer exposes the analyzer's scorer.
func (a *Analyzer) Scorer() *Scorer { return a.scorer }

// Categorizer exposes the analyzer's categorizer.
func (a *Analyzer) Categorizer() *Categorizer { return a.categorizer }

// AnalyzeProducts runs every sub-analysis over the collection. Failures are
// partial: a metric without valid data carries its own error while sibling
// metrics still compute.
func (a *Analyzer) AnalyzeProducts(products []*models.Product) *models.Analysis {
	if len(products) == 0 {
		return &models.Analysis{Error: "no products provided for analysis"}
	}

	a.logger.Info("[analyzer] Analyzing %d products (market: %s)", len(products), a.market.Code)

	return &models.Analysis{
		TotalProducts:     len(products),
		PriceAnalysis:     a.analyzePrices(products),
		RatingAnalysis:    a.analyzeRatings(products),
		MerchantAnalysis:  a.analyzeMerchants(products),
		CategoryAnalysis:  a.categorizer.Analyze(products, a.agg),
		PlatformBreakdown: a.analyzePlatformBreakdown(products),
	}
}

func (a *Analyzer) analyzePrices(products []*models.Product) *models.PriceAnalysis {
	var prices []float64
	for _, p := range products {
		if p.Price > 0 {
			prices = append(prices, p.Price)
		}
	}
	if len(prices) == 0 {
		return &models.PriceAnalysis{Error: "no valid price data found"}
	}

	min, max := minMax(prices)
	return &models.PriceAnalysis{
		AveragePrice:           mean(prices),
		MedianPrice:            median(prices),
		MinPrice:               min,
		MaxPrice:               max,
		PriceRange:             max - min,
		PriceStd:               stddevSample(prices),
		TotalProductsWithPrice: len(prices),
	}
}

func (a *Analyzer) analyzeRatings(products []*models.Product) *models.RatingAnalysis {
	var ratings []float64
	var highRatedProducts []*models.Product
	highCount, lowCount := 0, 0

	for _, p := range products {
		if p.Rating <= 0 {
			continue
		}
		ratings = append(ratings, p.Rating)
		if p.Rating >= a.market.HighRatedThreshold {
			highCount++
			if len(highRatedProducts) < highRatedProductLimit {
				highRatedProducts = append(highRatedProducts, p)
			}
		}
		if p.Rating < a.market.LowRatedThreshold {
			lowCount++
		}
	}
	if len(ratings) == 0 {
		return &models.RatingAnalysis{Error: "no valid rating data found"}
	}

	min, max := minMax(ratings)
	return &models.RatingAnalysis{
		AverageRating:           mean(ratings),
		MedianRating:            median(ratings),
		MinRating:               min,
		MaxRating:               max,
		HighRatedCount:          highCount,
		LowRatedCount:           lowCount,
		HighRatedPercentage:     float64(highCount) / float64(len(ratings)) * 100,
		TotalProductsWithRating: len(ratings),
		HighRatedProducts:       highRatedProducts,
	}
}

func (a *Analyzer) analyzeMerchants(products []*models.Product) *models.MerchantAnalysis {
	groups := a.agg.Aggregate(products, ByShop)

	stats := make(map[string]*models.MerchantStats, len(groups))
	ordered := make([]*models.MerchantStats, 0, len(groups))
	var totalProducts int

	for _, g := range groups {
		ms := &models.MerchantStats{
			ShopID:       g.Key,
			ProductCount: g.Count,
		}
		if g.Price != nil {
			ms.AvgPrice = g.Price.Average
		}
		if g.Rating != nil {
			ms.AvgRating = g.Rating.Average
		}
		if len(g.Products) > 0 {
			ms.Location = g.Products[0].ShopLocation
			ms.Platform = g.Products[0].Platform
		}
		stats[g.Key] = ms
		ordered = append(ordered, ms)
		totalProducts += g.Count
	}

	top := make([]*models.MerchantStats, len(ordered))
	copy(top, ordered)
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].AvgRating != top[j].AvgRating {
			return top[i].AvgRating > top[j].AvgRating
		}
		return top[i].ProductCount > top[j].ProductCount
	})
	if len(top) > topMerchantCount {
		top = top[:topMerchantCount]
	}

	avgPerMerchant := 0.0
	if len(groups) > 0 {
		avgPerMerchant = float64(totalProducts) / float64(len(groups))
	}

	return &models.MerchantAnalysis{
		TotalMerchants:         len(groups),
		MerchantStats:          stats,
		TopMerchants:           top,
		AvgProductsPerMerchant: avgPerMerchant,
	}
}

func (a *Analyzer) analyzePlatformBreakdown(products []*models.Product) *models.PlatformBreakdown {
	groups := a.agg.Aggregate(products, ByPlatform)

	distribution := make(map[string]int, len(groups))
	dominant := ""
	dominantCount := 0
	for _, g := range groups {
		distribution[g.Key] = g.Count
		if g.Count > dominantCount {
			dominant = g.Key
			dominantCount = g.Count
		}
	}

	return &models.PlatformBreakdown{
		PlatformDistribution: distribution,
		TotalPlatforms:       len(groups),
		DominantPlatform:     dominant,
	}
}

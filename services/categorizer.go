package services

import (
	"strings"

	"marketscope/config"
	"marketscope/models"
)

// CategoryBucket is one category's share of a product collection.
type CategoryBucket struct {
	Name     string
	Products []*models.Product
}

// Categorizer assigns products to categories by ordered keyword matching
// over the product name. The keyword table is market configuration, not
// logic: different markets inject different vocabularies.
type Categorizer struct {
	market config.Market
}

// NewCategorizer creates a Categorizer using the market's keyword table.
func NewCategorizer(market config.Market) *Categorizer {
	return &Categorizer{market: market}
}

// Categorize buckets products by category. A product goes to the FIRST
// category whose keyword list has a case-insensitive substring match against
// its name; unmatched products land in the market's fallback bucket. The
// returned buckets follow the keyword table's declaration order (fallback
// last) and empty buckets are omitted.
func (c *Categorizer) Categorize(products []*models.Product) []*CategoryBucket {
	buckets := make(map[string][]*models.Product)

	for _, p := range products {
		name := strings.ToLower(p.Name)
		category := c.match(name)
		buckets[category] = append(buckets[category], p)
	}

	var result []*CategoryBucket
	for _, rule := range c.market.Categories {
		if prods, ok := buckets[rule.Name]; ok {
			result = append(result, &CategoryBucket{Name: rule.Name, Products: prods})
		}
	}
	if prods, ok := buckets[c.market.FallbackCategory]; ok {
		result = append(result, &CategoryBucket{Name: c.market.FallbackCategory, Products: prods})
	}
	return result
}

func (c *Categorizer) match(loweredName string) string {
	for _, rule := range c.market.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(loweredName, kw) {
				return rule.Name
			}
		}
	}
	return c.market.FallbackCategory
}

// Analyze buckets the products and reduces each bucket to category
// statistics via the aggregator. TopCategory is the bucket with the highest
// total sold count; MostCommonCategory the one with the most products. Both
// break ties by bucket order, which is the table's declaration order.
func (c *Categorizer) Analyze(products []*models.Product, agg *Aggregator) *models.CategoryAnalysis {
	buckets := c.Categorize(products)
	analysis := &models.CategoryAnalysis{}

	var topSold, mostCommon *models.CategoryStats
	for _, b := range buckets {
		g := agg.Summarize(b.Name, b.Products)

		cs := &models.CategoryStats{
			Category:     b.Name,
			ProductCount: g.Count,
			TotalSold:    g.TotalSold,
			BestSeller:   bestSellingProduct(b.Products),
		}
		if g.Price != nil {
			cs.AvgPrice = g.Price.Average
			cs.MinPrice = g.Price.Min
			cs.MaxPrice = g.Price.Max
		}
		analysis.CategoryStats = append(analysis.CategoryStats, cs)

		if topSold == nil || cs.TotalSold > topSold.TotalSold {
			topSold = cs
		}
		if mostCommon == nil || cs.ProductCount > mostCommon.ProductCount {
			mostCommon = cs
		}
	}

	if topSold != nil {
		analysis.TopCategory = topSold.Category
	}
	if mostCommon != nil {
		analysis.MostCommonCategory = mostCommon.Category
	}
	return analysis
}

// bestSellingProduct picks the product with the highest sold count; ties
// keep the earliest product.
func bestSellingProduct(products []*models.Product) *models.Product {
	var best *models.Product
	for _, p := range products {
		if best == nil || p.Sold > best.Sold {
			best = p
		}
	}
	return best
}

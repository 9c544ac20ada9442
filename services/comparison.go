package services

import "marketscope/models"

// ComparePlatforms groups the collection by platform, scores each group and
// names the winner. Ties keep the platform encountered first in the input,
// so the result is deterministic for a given record order.
func (a *Analyzer) ComparePlatforms(products []*models.Product) *models.PlatformComparison {
	if len(products) == 0 {
		return &models.PlatformComparison{Error: "no products provided for comparison"}
	}

	groups := a.agg.Aggregate(products, ByPlatform)

	metrics := make(map[string]*models.PlatformMetrics, len(groups))
	scores := make(map[string]float64, len(groups))
	best := ""
	bestScore := -1.0

	for _, g := range groups {
		m := a.scorer.Metrics(g)
		metrics[g.Key] = m
		scores[g.Key] = m.Score
		if m.Score > bestScore {
			best = g.Key
			bestScore = m.Score
		}
	}

	a.logger.Info("[analyzer] Platform comparison: %d platforms, best=%s (%.2f)",
		len(groups), best, bestScore)

	return &models.PlatformComparison{
		PlatformMetrics: metrics,
		Summary: &models.ComparisonSummary{
			TotalPlatforms: len(groups),
			BestPlatform:   best,
			PlatformScores: scores,
		},
	}
}

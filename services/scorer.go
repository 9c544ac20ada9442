package services

import (
	"marketscope/config"
	"marketscope/models"
)

// Scorer converts a group's statistics into a composite ranking score in
// [0, 100]. The score is a weighted heuristic, not a statistical model: the
// sub-score caps and the price reference come from the market configuration
// so they can be recalibrated per currency without touching this code.
type Scorer struct {
	market config.Market
}

// NewScorer creates a Scorer calibrated for the given market.
func NewScorer(market config.Market) *Scorer {
	return &Scorer{market: market}
}

// Score returns the composite score for a group. An empty group scores 0.
func (s *Scorer) Score(g *GroupStats) float64 {
	if g == nil || g.Count == 0 {
		return 0
	}
	return s.priceScore(g) + s.ratingScore(g) + s.availabilityScore(g)
}

// Metrics returns the full score breakdown for a group, used by the
// platform comparison report.
func (s *Scorer) Metrics(g *GroupStats) *models.PlatformMetrics {
	if g == nil || g.Count == 0 {
		return &models.PlatformMetrics{}
	}

	m := &models.PlatformMetrics{
		ProductCount:      g.Count,
		TotalSold:         g.TotalSold,
		PriceScore:        s.priceScore(g),
		RatingScore:       s.ratingScore(g),
		AvailabilityScore: s.availabilityScore(g),
	}
	if g.Price != nil {
		m.AvgPrice = g.Price.Average
	}
	if g.Rating != nil {
		m.AvgRating = g.Rating.Average
	}
	m.Score = m.PriceScore + m.RatingScore + m.AvailabilityScore
	return m
}

// priceScore rewards cheaper averages, saturating at the cap. A group with
// no valid price data gets the full cap: missing data is neutral, not a
// penalty.
func (s *Scorer) priceScore(g *GroupStats) float64 {
	if g.Price == nil || g.Price.Average <= 0 {
		return s.market.PriceScoreCap
	}
	score := (s.market.PriceReference / g.Price.Average) * 10
	if score > s.market.PriceScoreCap {
		return s.market.PriceScoreCap
	}
	return score
}

func (s *Scorer) ratingScore(g *GroupStats) float64 {
	if g.Rating == nil {
		return 0
	}
	return (g.Rating.Average / 5.0) * s.market.RatingScoreCap
}

// availabilityScore rewards catalog breadth, one point per product up to the
// cap.
func (s *Scorer) availabilityScore(g *GroupStats) float64 {
	if float64(g.Count) > s.market.AvailabilityScoreCap {
		return s.market.AvailabilityScoreCap
	}
	return float64(g.Count)
}

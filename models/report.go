package models

// Report structures returned by the analysis engine. Key names are part of
// the API contract consumed by the HTTP layer, exporters and the CLI.
//
// Every report carries its failure as data: callers check Error before
// reading the other fields. A missing metric never zeroes a sibling metric.

// Analysis is the full product-analysis report.
type Analysis struct {
	Error             string             `json:"error,omitempty"`
	TotalProducts     int                `json:"total_products,omitempty"`
	PriceAnalysis     *PriceAnalysis     `json:"price_analysis,omitempty"`
	RatingAnalysis    *RatingAnalysis    `json:"rating_analysis,omitempty"`
	MerchantAnalysis  *MerchantAnalysis  `json:"merchant_analysis,omitempty"`
	CategoryAnalysis  *CategoryAnalysis  `json:"category_analysis,omitempty"`
	PlatformBreakdown *PlatformBreakdown `json:"platform_breakdown,omitempty"`
}

// PriceAnalysis summarizes valid (price > 0) products.
type PriceAnalysis struct {
	Error                  string  `json:"error,omitempty"`
	AveragePrice           float64 `json:"average_price"`
	MedianPrice            float64 `json:"median_price"`
	MinPrice               float64 `json:"min_price"`
	MaxPrice               float64 `json:"max_price"`
	PriceRange             float64 `json:"price_range"`
	PriceStd               float64 `json:"price_std"`
	TotalProductsWithPrice int     `json:"total_products_with_price"`
}

// RatingAnalysis summarizes valid (rating > 0) products.
type RatingAnalysis struct {
	Error                   string     `json:"error,omitempty"`
	AverageRating           float64    `json:"average_rating"`
	MedianRating            float64    `json:"median_rating"`
	MinRating               float64    `json:"min_rating"`
	MaxRating               float64    `json:"max_rating"`
	HighRatedCount          int        `json:"high_rated_count"`
	LowRatedCount           int        `json:"low_rated_count"`
	HighRatedPercentage     float64    `json:"high_rated_percentage"`
	TotalProductsWithRating int        `json:"total_products_with_rating"`
	HighRatedProducts       []*Product `json:"high_rated_products,omitempty"`
}

// MerchantStats describes one shop's slice of the result set.
type MerchantStats struct {
	ShopID       string  `json:"shop_id"`
	ProductCount int     `json:"product_count"`
	AvgPrice     float64 `json:"avg_price"`
	AvgRating    float64 `json:"avg_rating"`
	Location     string  `json:"location"`
	Platform     string  `json:"platform"`
}

// MerchantAnalysis groups products by shop_id. Products without a shop id
// land in an explicit "unknown" bucket, never dropped.
type MerchantAnalysis struct {
	TotalMerchants         int                       `json:"total_merchants"`
	MerchantStats          map[string]*MerchantStats `json:"merchant_stats"`
	TopMerchants           []*MerchantStats          `json:"top_merchants"`
	AvgProductsPerMerchant float64                   `json:"avg_products_per_merchant"`
}

// CategoryStats describes one keyword-table category bucket.
type CategoryStats struct {
	Category     string   `json:"category"`
	ProductCount int      `json:"product_count"`
	AvgPrice     float64  `json:"avg_price"`
	MinPrice     float64  `json:"min_price"`
	MaxPrice     float64  `json:"max_price"`
	TotalSold    int      `json:"total_sold"`
	BestSeller   *Product `json:"best_seller,omitempty"`
}

// CategoryAnalysis holds the keyword-based categorization result.
// CategoryStats is a slice so iteration order follows the keyword table's
// declaration order.
type CategoryAnalysis struct {
	CategoryStats      []*CategoryStats `json:"category_stats"`
	MostCommonCategory string           `json:"most_common_category,omitempty"`
	TopCategory        string           `json:"top_category,omitempty"`
}

// PlatformBreakdown counts products per source platform.
type PlatformBreakdown struct {
	PlatformDistribution map[string]int `json:"platform_distribution"`
	TotalPlatforms       int            `json:"total_platforms"`
	DominantPlatform     string         `json:"dominant_platform,omitempty"`
}

// PlatformMetrics is the Scorer's breakdown for a single platform.
type PlatformMetrics struct {
	ProductCount      int     `json:"product_count"`
	AvgPrice          float64 `json:"avg_price"`
	AvgRating         float64 `json:"avg_rating"`
	TotalSold         int     `json:"total_sold"`
	PriceScore        float64 `json:"price_score"`
	RatingScore       float64 `json:"rating_score"`
	AvailabilityScore float64 `json:"availability_score"`
	Score             float64 `json:"score"`
}

// ComparisonSummary names the winning platform.
type ComparisonSummary struct {
	TotalPlatforms int                `json:"total_platforms"`
	BestPlatform   string             `json:"best_platform"`
	PlatformScores map[string]float64 `json:"platform_scores"`
}

// PlatformComparison is the cross-platform scoring report.
type PlatformComparison struct {
	Error           string                      `json:"error,omitempty"`
	PlatformMetrics map[string]*PlatformMetrics `json:"platform_metrics,omitempty"`
	Summary         *ComparisonSummary          `json:"summary,omitempty"`
}

// RankedProduct is a bestseller entry. PricePerSale is the price-to-sold
// ratio, present only when the product has at least one sale.
type RankedProduct struct {
	*Product
	Rank         int     `json:"rank"`
	PricePerSale float64 `json:"price_per_sale,omitempty"`
}

// BestsellerSummary records the pipeline parameters and counts.
type BestsellerSummary struct {
	TotalMatched int     `json:"total_matched"`
	Analyzed     int     `json:"analyzed"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	TopN         int     `json:"top_n"`
}

// PriceMetrics are the bestseller set's price figures.
type PriceMetrics struct {
	AveragePrice float64 `json:"average_price"`
	MedianPrice  float64 `json:"median_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}

// SalesMetrics are the bestseller set's sales figures. BestsellerThreshold
// is the median sold count of the analyzed set.
type SalesMetrics struct {
	TotalSold           int     `json:"total_sold"`
	AverageSold         float64 `json:"average_sold"`
	MedianSold          float64 `json:"median_sold"`
	MaxSold             int     `json:"max_sold"`
	BestsellerThreshold float64 `json:"bestseller_threshold"`
}

// RatingMetrics are the bestseller set's rating figures.
type RatingMetrics struct {
	Error                   string  `json:"error,omitempty"`
	AverageRating           float64 `json:"average_rating"`
	HighRatedCount          int     `json:"high_rated_count"`
	TotalProductsWithRating int     `json:"total_products_with_rating"`
}

// BestsellerReport is the bestseller pipeline's output.
type BestsellerReport struct {
	Error                string            `json:"error,omitempty"`
	Summary              *BestsellerSummary `json:"summary,omitempty"`
	PriceMetrics         *PriceMetrics     `json:"price_metrics,omitempty"`
	SalesMetrics         *SalesMetrics     `json:"sales_metrics,omitempty"`
	RatingMetrics        *RatingMetrics    `json:"rating_metrics,omitempty"`
	PlatformDistribution map[string]int    `json:"platform_distribution,omitempty"`
	CategoryInsights     *CategoryAnalysis `json:"category_insights,omitempty"`
	TopProducts          []*RankedProduct  `json:"top_products,omitempty"`
	Recommendations      []string          `json:"recommendations,omitempty"`
}

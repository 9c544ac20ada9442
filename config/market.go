package config

// CategoryRule maps a category name to the keywords that place a product in
// it. Rules are evaluated in declaration order: the first category with a
// matching keyword wins.
type CategoryRule struct {
	Name     string
	Keywords []string
}

// Market carries the per-market calibration the analysis engine needs:
// currency labels, the scoring weights, the price reference used by the
// inverse price score, and the category keyword vocabulary. The engine never
// hardcodes any of these, so one implementation serves every market.
type Market struct {
	Code           string
	Currency       string
	CurrencySymbol string

	// PriceReference calibrates the inverse price score. It should sit
	// roughly two orders of magnitude above a "cheap" average basket in the
	// market's currency unit: an average price of PriceReference/5 maxes the
	// price score out.
	PriceReference float64

	// Sub-score caps. The composite score is their sum, so they double as
	// the weighting between price, rating and catalog breadth.
	PriceScoreCap        float64
	RatingScoreCap       float64
	AvailabilityScoreCap float64

	// Rating thresholds for the high/low rated counts.
	HighRatedThreshold float64
	LowRatedThreshold  float64

	Categories       []CategoryRule
	FallbackCategory string
}

// MarketIndonesia targets IDR-priced platforms (shopee.co.id, tokopedia,
// lazada.co.id). Keyword vocabulary is Indonesian.
var MarketIndonesia = Market{
	Code:           "id",
	Currency:       "IDR",
	CurrencySymbol: "Rp",
	PriceReference: 1000000,

	PriceScoreCap:        50,
	RatingScoreCap:       30,
	AvailabilityScoreCap: 20,
	HighRatedThreshold:   4.0,
	LowRatedThreshold:    3.0,

	Categories: []CategoryRule{
		{Name: "elektronik", Keywords: []string{"laptop", "hp", "smartphone", "tablet", "komputer", "gadget", "earphone", "charger"}},
		{Name: "fashion", Keywords: []string{"baju", "celana", "sepatu", "tas", "jaket", "dress"}},
		{Name: "rumah_tangga", Keywords: []string{"furniture", "perabot", "dapur", "kamar", "ruang"}},
		{Name: "olahraga", Keywords: []string{"bola", "fitness", "gym", "sport"}},
		{Name: "kecantikan", Keywords: []string{"kosmetik", "skincare", "makeup", "parfum", "lotion"}},
	},
	FallbackCategory: "lainnya",
}

// MarketMalaysia targets MYR-priced platforms (shopee.com.my, lazada.com.my,
// mudah.my). Keyword vocabulary mixes Malay and English.
var MarketMalaysia = Market{
	Code:           "my",
	Currency:       "MYR",
	CurrencySymbol: "RM",
	PriceReference: 100,

	PriceScoreCap:        50,
	RatingScoreCap:       30,
	AvailabilityScoreCap: 20,
	HighRatedThreshold:   4.0,
	LowRatedThreshold:    3.0,

	Categories: []CategoryRule{
		{Name: "electronics", Keywords: []string{"laptop", "phone", "smartphone", "tablet", "computer", "gadget", "earphone", "charger"}},
		{Name: "fashion", Keywords: []string{"shirt", "baju", "shoes", "kasut", "bag", "beg", "jacket", "dress"}},
		{Name: "home_living", Keywords: []string{"furniture", "perabot", "kitchen", "dapur", "bedroom", "sofa"}},
		{Name: "sports", Keywords: []string{"ball", "fitness", "gym", "sport", "bicycle"}},
		{Name: "beauty", Keywords: []string{"cosmetic", "skincare", "makeup", "perfume", "lotion"}},
	},
	FallbackCategory: "others",
}

// MarketFor returns the market preset for a country code, defaulting to
// Indonesia for unknown codes.
func MarketFor(code string) Market {
	switch code {
	case "my":
		return MarketMalaysia
	default:
		return MarketIndonesia
	}
}

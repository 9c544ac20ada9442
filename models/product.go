package models

import "time"

// Product is one normalized marketplace listing. Scrapers produce these;
// the analysis pipeline only reads and groups them.
type Product struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Rating        float64 `json:"rating"`
	RatingCount   int     `json:"rating_count,omitempty"`
	Sold          int     `json:"sold"`
	Platform      string  `json:"platform"`
	ShopID        string  `json:"shop_id"`
	ShopLocation  string  `json:"shop_location"`
	Merchant      string  `json:"merchant"`
	Currency      string  `json:"currency,omitempty"`
	URL           string  `json:"url"`
	ImageURL      string  `json:"image_url,omitempty"`

	ScrapedAt time.Time `json:"scraped_at,omitempty"`
}

// Validate normalizes a product at the ingestion boundary so the analysis
// core can assume well-formed values: price and sold are never negative,
// rating stays in [0,5] and platform is never empty. A zero price or rating
// means "unknown", not free/unrated.
func (p *Product) Validate() {
	if p.Price < 0 {
		p.Price = 0
	}
	if p.Sold < 0 {
		p.Sold = 0
	}
	if p.Rating < 0 || p.Rating > 5 {
		p.Rating = 0
	}
	if p.Platform == "" {
		p.Platform = "unknown"
	}
}

// Shop holds seller-level information returned by a platform client.
type Shop struct {
	ShopID        string  `json:"shop_id"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	FollowerCount int     `json:"follower_count"`
	ResponseRate  float64 `json:"response_rate"`
	ItemCount     int     `json:"item_count"`
	Rating        float64 `json:"rating"`
	IsOfficial    bool    `json:"is_official"`
	URL           string  `json:"url"`
	Platform      string  `json:"platform"`
}

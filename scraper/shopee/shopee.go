package shopee

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"marketscope/config"
	"marketscope/models"
	"marketscope/scraper"
	"marketscope/utils"
)

const platform = "shopee"

// Shopee's search API returns prices as fixed-point integers scaled by 1e5.
const priceDivisor = 100000

const maxSearchPages = 10

// Scraper is the Shopee platform client: a thin JSON API consumer with a
// deterministic sample-data fallback for offline runs.
type Scraper struct {
	cfg     *config.Config
	market  config.Market
	client  *scraper.Client
	logger  *utils.Logger
	baseURL string
}

// New creates a Shopee client for the market's regional domain.
func New(cfg *config.Config, market config.Market, logger *utils.Logger) *Scraper {
	base := "https://shopee.co.id"
	if market.Code == "my" {
		base = "https://shopee.com.my"
	}

	client := scraper.NewClient(cfg, logger)
	client.SetHeader("Accept", "application/json, text/plain, */*")
	client.SetHeader("Referer", base)
	client.SetHeader("X-Requested-With", "XMLHttpRequest")
	client.SetHeader("X-API-SOURCE", "pc")

	return &Scraper{
		cfg:     cfg,
		market:  market,
		client:  client,
		logger:  logger,
		baseURL: base,
	}
}

// Platform returns the platform identifier stamped on every product.
func (s *Scraper) Platform() string { return platform }

type searchResponse struct {
	Items []struct {
		ItemBasic itemBasic `json:"item_basic"`
	} `json:"items"`
}

type itemBasic struct {
	Name                string `json:"name"`
	Price               int64  `json:"price"`
	PriceBeforeDiscount int64  `json:"price_before_discount"`
	Sold                int    `json:"sold"`
	ShopID              int64  `json:"shopid"`
	ItemID              int64  `json:"itemid"`
	ShopLocation        string `json:"shop_location"`
	Image               string `json:"image"`
	ItemRating          struct {
		RatingStar  float64 `json:"rating_star"`
		RatingCount []int   `json:"rating_count"`
	} `json:"item_rating"`
}

// Search queries the search API page by page until limit products are
// collected. When the API is unreachable it falls back to sample data so
// the analysis pipeline stays exercisable.
func (s *Scraper) Search(keyword string, limit int) ([]*models.Product, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, nil
	}

	var products []*models.Product
	for page := 0; len(products) < limit && page < maxSearchPages; page++ {
		params := url.Values{}
		params.Set("by", "relevancy")
		params.Set("keyword", keyword)
		params.Set("limit", strconv.Itoa(min(60, limit-len(products))))
		params.Set("newest", strconv.Itoa(page*60))
		params.Set("order", "desc")
		params.Set("page_type", "search")
		params.Set("version", "2")

		body, err := s.client.Get(s.baseURL+"/api/v4/search/search_items", params)
		if err != nil {
			if len(products) == 0 && s.cfg.SampleDataOK {
				s.logger.Warn("[shopee] Search API unreachable, using sample data: %v", err)
				return s.sampleProducts(keyword, limit), nil
			}
			return products, fmt.Errorf("shopee search: %w", err)
		}

		var resp searchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return products, fmt.Errorf("shopee search: decode: %w", err)
		}
		if len(resp.Items) == 0 {
			break
		}

		for _, item := range resp.Items {
			if len(products) >= limit {
				break
			}
			products = append(products, s.toProduct(item.ItemBasic))
		}
	}

	return products, nil
}

func (s *Scraper) toProduct(b itemBasic) *models.Product {
	ratingCount := 0
	if len(b.ItemRating.RatingCount) > 0 {
		ratingCount = b.ItemRating.RatingCount[0]
	}

	shopID := strconv.FormatInt(b.ShopID, 10)
	p := &models.Product{
		Name:          scraper.CleanText(b.Name),
		Price:         float64(b.Price) / priceDivisor,
		OriginalPrice: float64(b.PriceBeforeDiscount) / priceDivisor,
		Rating:        b.ItemRating.RatingStar,
		RatingCount:   ratingCount,
		Sold:          b.Sold,
		Platform:      platform,
		ShopID:        shopID,
		ShopLocation:  scraper.CleanText(b.ShopLocation),
		Currency:      s.market.Currency,
		URL:           fmt.Sprintf("%s/product/%d/%d", s.baseURL, b.ShopID, b.ItemID),
		ScrapedAt:     time.Now(),
	}
	if b.Image != "" {
		p.ImageURL = "https://cf.shopee.co.id/file/" + b.Image
	}
	p.Validate()
	return p
}

type shopDetailResponse struct {
	Data struct {
		Name          string  `json:"name"`
		FollowerCount int     `json:"follower_count"`
		ResponseRate  float64 `json:"response_rate"`
		ItemCount     int     `json:"item_count"`
		RatingStar    float64 `json:"rating_star"`
		ShopLocation  string  `json:"shop_location"`
		IsOfficial    bool    `json:"is_official_shop"`
	} `json:"data"`
}

// ShopInfo fetches seller-level details for a shop id.
func (s *Scraper) ShopInfo(shopID string) (*models.Shop, error) {
	params := url.Values{}
	params.Set("shopid", shopID)

	body, err := s.client.Get(s.baseURL+"/api/v4/shop/get_shop_detail", params)
	if err != nil {
		return nil, fmt.Errorf("shopee shop info: %w", err)
	}

	var resp shopDetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("shopee shop info: decode: %w", err)
	}

	return &models.Shop{
		ShopID:        shopID,
		Name:          scraper.CleanText(resp.Data.Name),
		Location:      scraper.CleanText(resp.Data.ShopLocation),
		FollowerCount: resp.Data.FollowerCount,
		ResponseRate:  resp.Data.ResponseRate,
		ItemCount:     resp.Data.ItemCount,
		Rating:        resp.Data.RatingStar,
		IsOfficial:    resp.Data.IsOfficial,
		URL:           s.baseURL + "/shop/" + shopID,
		Platform:      platform,
	}, nil
}

// ShopProducts lists a shop's catalog, newest first.
func (s *Scraper) ShopProducts(shopID string, limit int) ([]*models.Product, error) {
	var products []*models.Product
	for page := 0; len(products) < limit && page < maxSearchPages; page++ {
		params := url.Values{}
		params.Set("shopid", shopID)
		params.Set("limit", strconv.Itoa(min(30, limit-len(products))))
		params.Set("offset", strconv.Itoa(page*30))
		params.Set("sort_by", "ctime")

		body, err := s.client.Get(s.baseURL+"/api/v4/shop/search_items", params)
		if err != nil {
			return products, fmt.Errorf("shopee shop products: %w", err)
		}

		var resp searchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return products, fmt.Errorf("shopee shop products: decode: %w", err)
		}
		if len(resp.Items) == 0 {
			break
		}
		for _, item := range resp.Items {
			if len(products) >= limit {
				break
			}
			products = append(products, s.toProduct(item.ItemBasic))
		}
	}
	return products, nil
}

// sampleProducts builds a deterministic offline result set so downstream
// analysis can run without network access. Prices scale with the market's
// currency unit.
func (s *Scraper) sampleProducts(keyword string, limit int) []*models.Product {
	base := s.market.PriceReference / 20

	variants := []struct {
		suffix string
		price  float64
		rating float64
		sold   int
	}{
		{"Original", 1.0, 4.8, 1200},
		{"Pro", 2.4, 4.6, 850},
		{"Mini", 0.6, 4.3, 2100},
		{"Premium Bundle", 3.2, 4.9, 430},
		{"2024 Edition", 1.8, 4.1, 660},
		{"Murah", 0.4, 3.8, 3400},
		{"Plus", 2.0, 4.5, 540},
		{"Lite", 0.8, 3.2, 920},
	}

	count := min(limit, len(variants))
	products := make([]*models.Product, 0, count)
	for i := 0; i < count; i++ {
		v := variants[i]
		p := &models.Product{
			Name:         fmt.Sprintf("%s %s", scraper.CleanText(keyword), v.suffix),
			Price:        base * v.price,
			Rating:       v.rating,
			RatingCount:  v.sold / 3,
			Sold:         v.sold,
			Platform:     platform,
			ShopID:       fmt.Sprintf("sample-%d", i+1),
			ShopLocation: "Jakarta",
			Currency:     s.market.Currency,
			URL:          fmt.Sprintf("%s/product/sample/%d", s.baseURL, i+1),
			ScrapedAt:    time.Now(),
		}
		p.Validate()
		products = append(products, p)
	}
	return products
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

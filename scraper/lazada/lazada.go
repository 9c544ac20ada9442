package lazada

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"marketscope/config"
	"marketscope/models"
	"marketscope/scraper"
	"marketscope/utils"
)

const platform = "lazada"

// Scraper is the Lazada platform client. Lazada renders search results into
// static HTML, so this client fetches the catalog page and parses it with
// goquery. Like the other clients it degrades to deterministic sample data
// when the site is unreachable.
type Scraper struct {
	cfg     *config.Config
	market  config.Market
	client  *scraper.Client
	logger  *utils.Logger
	baseURL string
}

// New creates a Lazada client for the market's regional domain.
func New(cfg *config.Config, market config.Market, logger *utils.Logger) *Scraper {
	base := "https://www.lazada.co.id"
	if market.Code == "my" {
		base = "https://www.lazada.com.my"
	}

	client := scraper.NewClient(cfg, logger)
	client.SetHeader("Referer", base)

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

// Search fetches the catalog page for the keyword and scrapes the product
// cards out of the HTML.
func (s *Scraper) Search(keyword string, limit int) ([]*models.Product, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", keyword)

	body, err := s.client.Get(s.baseURL+"/catalog/", params)
	if err != nil {
		if s.cfg.SampleDataOK {
			s.logger.Warn("[lazada] Catalog page unreachable, using sample data: %v", err)
			return s.sampleProducts(keyword, limit), nil
		}
		return nil, fmt.Errorf("lazada search: %w", err)
	}

	products, err := s.parseCatalog(body, limit)
	if err != nil {
		return nil, fmt.Errorf("lazada search: %w", err)
	}
	if len(products) == 0 && s.cfg.SampleDataOK {
		s.logger.Warn("[lazada] No product cards found in catalog page, using sample data")
		return s.sampleProducts(keyword, limit), nil
	}
	return products, nil
}

// parseCatalog extracts product cards from a catalog HTML page.
func (s *Scraper) parseCatalog(html []byte, limit int) ([]*models.Product, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var products []*models.Product
	doc.Find(`[data-qa-locator="product-item"]`).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(products) >= limit {
			return false
		}

		link := card.Find("a[title]").First()
		name := scraper.CleanText(link.AttrOr("title", ""))
		if name == "" {
			name = scraper.CleanText(card.Find(".title").First().Text())
		}

		href := link.AttrOr("href", "")
		if strings.HasPrefix(href, "//") {
			href = "https:" + href
		} else if strings.HasPrefix(href, "/") {
			href = s.baseURL + href
		}
		if name == "" || href == "" {
			return true
		}

		p := &models.Product{
			Name:         name,
			Price:        scraper.ParsePrice(card.Find(".price, [class*=price]").First().Text()),
			Rating:       scraper.ParseRating(card.AttrOr("data-rating", "")),
			Sold:         scraper.ParseSoldCount(card.Find("[class*=sold]").First().Text()),
			Platform:     platform,
			ShopLocation: scraper.CleanText(card.Find("[class*=location]").First().Text()),
			Currency:     s.market.Currency,
			URL:          href,
			ScrapedAt:    time.Now(),
		}
		p.Validate()
		products = append(products, p)
		return true
	})

	return products, nil
}

// ShopInfo scrapes the seller page header for basic shop details.
func (s *Scraper) ShopInfo(shopID string) (*models.Shop, error) {
	body, err := s.client.Get(s.baseURL+"/shop/"+shopID, nil)
	if err != nil {
		return nil, fmt.Errorf("lazada shop info: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("lazada shop info: parse html: %w", err)
	}

	name := scraper.CleanText(doc.Find(`[class*=seller-name]`).First().Text())
	if name == "" {
		name = scraper.CleanText(doc.Find("title").First().Text())
	}

	return &models.Shop{
		ShopID:   shopID,
		Name:     name,
		Rating:   scraper.ParseRating(doc.Find(`[class*=seller-rating]`).First().Text()),
		URL:      s.baseURL + "/shop/" + shopID,
		Platform: platform,
	}, nil
}

// ShopProducts scrapes the seller page's product grid.
func (s *Scraper) ShopProducts(shopID string, limit int) ([]*models.Product, error) {
	body, err := s.client.Get(s.baseURL+"/shop/"+shopID, nil)
	if err != nil {
		return nil, fmt.Errorf("lazada shop products: %w", err)
	}

	products, err := s.parseCatalog(body, limit)
	if err != nil {
		return nil, fmt.Errorf("lazada shop products: %w", err)
	}
	for _, p := range products {
		p.ShopID = shopID
	}
	return products, nil
}

// sampleProducts is the deterministic offline fallback set.
func (s *Scraper) sampleProducts(keyword string, limit int) []*models.Product {
	base := s.market.PriceReference / 25

	variants := []struct {
		suffix string
		price  float64
		rating float64
		sold   int
	}{
		{"Official Store", 1.5, 4.7, 760},
		{"Value Pack", 0.9, 4.2, 1500},
		{"Max", 2.8, 4.8, 310},
		{"Classic", 0.7, 3.9, 1900},
		{"Special Edition", 2.2, 4.4, 420},
		{"Basic", 0.5, 3.5, 2600},
	}

	count := len(variants)
	if limit < count {
		count = limit
	}
	products := make([]*models.Product, 0, count)
	for i := 0; i < count; i++ {
		v := variants[i]
		p := &models.Product{
			Name:         fmt.Sprintf("%s %s", scraper.CleanText(keyword), v.suffix),
			Price:        base * v.price,
			Rating:       v.rating,
			Sold:         v.sold,
			Platform:     platform,
			ShopID:       fmt.Sprintf("lz-sample-%d", i+1),
			ShopLocation: "Bandung",
			Currency:     s.market.Currency,
			URL:          fmt.Sprintf("%s/products/sample-%d.html", s.baseURL, i+1),
			ScrapedAt:    time.Now(),
		}
		p.Validate()
		products = append(products, p)
	}
	return products
}

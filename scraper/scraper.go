package scraper

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"marketscope/config"
	"marketscope/models"
	"marketscope/utils"
)

// Scraper is the capability interface every platform client implements.
// The analysis core depends only on this interface, never on a concrete
// platform type.
type Scraper interface {
	Platform() string
	Search(keyword string, limit int) ([]*models.Product, error)
	ShopInfo(shopID string) (*models.Shop, error)
	ShopProducts(shopID string, limit int) ([]*models.Product, error)
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Client is the shared HTTP fetcher used by the platform clients: a plain
// net/http client with a rotating user agent and retry with back-off. There
// is deliberately no anti-bot machinery here.
type Client struct {
	http    *http.Client
	retry   *utils.RetryConfig
	logger  *utils.Logger
	headers map[string]string
}

// NewClient builds a Client from the application config.
func NewClient(cfg *config.Config, logger *utils.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
		},
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   time.Duration(cfg.DelayBetweenMs) * time.Millisecond,
			MaxDelay:    10 * time.Second,
			Logger:      logger,
		},
		logger:  logger,
		headers: map[string]string{},
	}
}

// SetHeader adds a header sent with every request, e.g. a platform-specific
// Referer.
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// Get fetches rawURL with the given query parameters and returns the
// response body. Non-200 responses are errors so the retry wrapper kicks in.
func (c *Client) Get(rawURL string, params url.Values) ([]byte, error) {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	var body []byte
	err := c.retry.Do("GET "+rawURL, func() error {
		req, err := http.NewRequest(http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
		req.Header.Set("Accept-Language", "id-ID,id;q=0.9,en-US;q=0.8,en;q=0.7")
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		c.logger.Debug("[http] GET %s -> %d (%.2fs)", rawURL, resp.StatusCode, time.Since(start).Seconds())

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	})
	return body, err
}

package scraper

import (
	"strings"
	"sync"
	"time"

	"marketscope/config"
	"marketscope/models"
	"marketscope/utils"
)

// MultiPlatform fans a search out to every registered platform client in
// parallel and merges the results into one platform-stamped collection.
type MultiPlatform struct {
	cfg      *config.Config
	logger   *utils.Logger
	pool     *utils.WorkerPool
	scrapers []Scraper
}

// NewMultiPlatform creates the orchestrator. The scraper order determines
// the merge order of combined results, keeping output deterministic.
func NewMultiPlatform(cfg *config.Config, logger *utils.Logger, scrapers ...Scraper) *MultiPlatform {
	return &MultiPlatform{
		cfg:      cfg,
		logger:   logger,
		pool:     utils.NewWorkerPool(cfg.MaxConcurrency, cfg.DelayBetweenMs),
		scrapers: scrapers,
	}
}

// Platforms returns the registered platform names in registration order.
func (m *MultiPlatform) Platforms() []string {
	names := make([]string, 0, len(m.scrapers))
	for _, s := range m.scrapers {
		names = append(names, s.Platform())
	}
	return names
}

// SearchAll searches every platform in parallel and returns the results
// keyed by platform. A failing platform contributes an empty slice rather
// than aborting the whole search.
func (m *MultiPlatform) SearchAll(keyword string, limit int) map[string][]*models.Product {
	results := make(map[string][]*models.Product, len(m.scrapers))
	if strings.TrimSpace(keyword) == "" {
		m.logger.Warn("[multi] Empty search keyword provided")
		return results
	}
	if limit <= 0 {
		limit = m.cfg.MaxResultsPerPlatform
	}

	var mu sync.Mutex
	for _, s := range m.scrapers {
		s := s
		m.pool.Submit(func() {
			start := time.Now()
			products, err := s.Search(keyword, limit)
			if err != nil {
				m.logger.Error("[multi] %s search failed: %v", s.Platform(), err)
			}
			m.logger.Info("[multi] %s: %d products for %q (%.2fs)",
				s.Platform(), len(products), keyword, time.Since(start).Seconds())

			mu.Lock()
			results[s.Platform()] = products
			mu.Unlock()
		})
	}
	m.pool.Wait()

	return results
}

// Combined searches all platforms and flattens the results into a single
// collection in platform registration order. Every product is stamped with
// its source platform, validated at the ingestion boundary, and deduplicated
// by URL across platforms.
func (m *MultiPlatform) Combined(keyword string, limit int) []*models.Product {
	byPlatform := m.SearchAll(keyword, limit)

	seen := utils.NewSeenSet()
	var combined []*models.Product
	for _, s := range m.scrapers {
		for _, p := range byPlatform[s.Platform()] {
			p.Platform = s.Platform()
			p.Validate()
			if p.URL != "" && !seen.Add(p.URL) {
				m.logger.Debug("[multi] Duplicate URL skipped: %s", p.URL)
				continue
			}
			combined = append(combined, p)
		}
	}

	m.logger.Info("[multi] Combined %d products across %d platforms", len(combined), len(m.scrapers))
	return combined
}

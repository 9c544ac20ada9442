package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketscope/config"
	"marketscope/models"
	"marketscope/scraper"
	"marketscope/services"
	"marketscope/storage"
	"marketscope/utils"
)

// Handlers wires the analysis engine, the multi-platform scraper and the
// store into the HTTP layer. This layer is deliberately thin: it marshals
// requests, dispatches background fetches and hands stored records to the
// engine.
type Handlers struct {
	cfg        *config.Config
	market     config.Market
	logger     *utils.Logger
	store      storage.Store
	multi      *scraper.MultiPlatform
	analyzer   *services.Analyzer
	bestseller *services.BestsellerFinder
	tasks      *utils.WorkerPool
}

// NewHandlers creates the handler set.
func NewHandlers(cfg *config.Config, market config.Market, logger *utils.Logger,
	store storage.Store, multi *scraper.MultiPlatform) *Handlers {
	return &Handlers{
		cfg:        cfg,
		market:     market,
		logger:     logger,
		store:      store,
		multi:      multi,
		analyzer:   services.NewAnalyzer(market, logger),
		bestseller: services.NewBestsellerFinder(market, logger),
		tasks:      utils.NewWorkerPool(cfg.MaxConcurrency, 0),
	}
}

type searchRequest struct {
	Keyword string `json:"keyword" binding:"required,min=1,max=200"`
	Limit   int    `json:"limit"`
}

// CreateSearch starts a background multi-platform search and returns the
// pending search id. Clients poll GetSearch for completion.
func (h *Handlers) CreateSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Limit <= 0 || req.Limit > 200 {
		req.Limit = h.cfg.MaxResultsPerPlatform
	}

	searchID, err := h.store.CreateSearch(req.Keyword, h.multi.Platforms(), req.Limit)
	if err != nil {
		h.logger.Error("[api] create search: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create search"})
		return
	}

	h.tasks.Submit(func() {
		h.runSearch(searchID, req.Keyword, req.Limit)
	})

	c.JSON(http.StatusAccepted, gin.H{
		"search_id": searchID,
		"keyword":   req.Keyword,
		"platforms": h.multi.Platforms(),
		"status":    storage.StatusPending,
		"message":   "search started",
	})
}

func (h *Handlers) runSearch(searchID int64, keyword string, limit int) {
	products := h.multi.Combined(keyword, limit)

	if err := h.store.SaveProducts(searchID, products); err != nil {
		h.logger.Error("[api] search %d: save products: %v", searchID, err)
		_ = h.store.MarkFailed(searchID, err.Error())
		return
	}
	if err := h.store.MarkCompleted(searchID, len(products)); err != nil {
		h.logger.Error("[api] search %d: mark completed: %v", searchID, err)
	}
}

// GetSearch returns the search status and its stored records.
func (h *Handlers) GetSearch(c *gin.Context) {
	searchID, record, ok := h.lookupSearch(c)
	if !ok {
		return
	}

	var products []*models.Product
	if record.Status == storage.StatusCompleted {
		var err error
		products, err = h.store.LoadProducts(searchID)
		if err != nil {
			h.logger.Error("[api] search %d: load products: %v", searchID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load results"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"search_id":   record.ID,
		"keyword":     record.Keyword,
		"platforms":   record.Platforms,
		"status":      record.Status,
		"total_count": record.ResultCount,
		"timestamp":   record.Timestamp,
		"results":     products,
	})
}

// GetAnalysis runs the full analysis over a search's stored records.
func (h *Handlers) GetAnalysis(c *gin.Context) {
	products, ok := h.loadCompleted(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.analyzer.AnalyzeProducts(products))
}

// GetComparison runs the platform comparison over a search's stored records.
func (h *Handlers) GetComparison(c *gin.Context) {
	products, ok := h.loadCompleted(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.analyzer.ComparePlatforms(products))
}

// GetBestsellers runs the bestseller pipeline over a search's stored
// records. max_price, min_price and top_n come from query parameters.
func (h *Handlers) GetBestsellers(c *gin.Context) {
	products, ok := h.loadCompleted(c)
	if !ok {
		return
	}

	params := services.BestsellerParams{
		MinPrice: queryFloat(c, "min_price", 0),
		MaxPrice: queryFloat(c, "max_price", 0),
		TopN:     queryInt(c, "top_n", services.DefaultTopN),
	}

	c.JSON(http.StatusOK, h.bestseller.Find(products, params))
}

type compareRequest struct {
	Products []*models.Product `json:"products" binding:"required,min=1"`
}

// Compare runs the platform comparison over a caller-supplied product list,
// bypassing the store. Records are validated at the boundary like scraped
// ones.
func (h *Handlers) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	for _, p := range req.Products {
		p.Validate()
	}
	c.JSON(http.StatusOK, h.analyzer.ComparePlatforms(req.Products))
}

// GetHistory lists recent searches.
func (h *Handlers) GetHistory(c *gin.Context) {
	records, err := h.store.History(queryInt(c, "limit", 50))
	if err != nil {
		h.logger.Error("[api] history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}

// GetPlatforms lists the registered platforms.
func (h *Handlers) GetPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"platforms": h.multi.Platforms(),
		"market":    h.market.Code,
		"currency":  h.market.Currency,
	})
}

// GetStatus reports service health.
func (h *Handlers) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"market":              h.market.Code,
		"platforms_available": len(h.multi.Platforms()),
	})
}

func (h *Handlers) lookupSearch(c *gin.Context) (int64, *storage.SearchRecord, bool) {
	searchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search id"})
		return 0, nil, false
	}

	record, err := h.store.GetSearch(searchID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "search not found"})
		return 0, nil, false
	}
	return searchID, record, true
}

// loadCompleted fetches the stored records of a finished search, writing the
// error response itself when the search is missing or still pending.
func (h *Handlers) loadCompleted(c *gin.Context) ([]*models.Product, bool) {
	searchID, record, ok := h.lookupSearch(c)
	if !ok {
		return nil, false
	}
	if record.Status != storage.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "search is not completed",
			"status": record.Status,
		})
		return nil, false
	}

	products, err := h.store.LoadProducts(searchID)
	if err != nil {
		h.logger.Error("[api] search %d: load products: %v", searchID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load results"})
		return nil, false
	}
	return products, true
}

func queryFloat(c *gin.Context, key string, fallback float64) float64 {
	if val := c.Query(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

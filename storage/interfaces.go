package storage

import (
	"time"

	"marketscope/models"
)

// SearchRecord is one row of the search history.
type SearchRecord struct {
	ID               int64     `json:"id"`
	Keyword          string    `json:"keyword"`
	Platforms        []string  `json:"platforms"`
	LimitPerPlatform int       `json:"limit_per_platform"`
	Timestamp        time.Time `json:"timestamp"`
	ResultCount      int       `json:"result_count"`
	Status           string    `json:"status"`
	ErrorMessage     string    `json:"error_message,omitempty"`
}

// Search lifecycle states.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Store persists raw product records keyed by search id. Derived statistics
// are never stored; the analysis engine recomputes them on demand.
type Store interface {
	CreateSearch(keyword string, platforms []string, limitPerPlatform int) (int64, error)
	SaveProducts(searchID int64, products []*models.Product) error
	LoadProducts(searchID int64) ([]*models.Product, error)
	GetSearch(searchID int64) (*SearchRecord, error)
	MarkCompleted(searchID int64, resultCount int) error
	MarkFailed(searchID int64, errMsg string) error
	History(limit int) ([]*SearchRecord, error)
	Close() error
}

// ProductWriter is the interface any export backend must satisfy.
type ProductWriter interface {
	WriteProducts(products []*models.Product) error
	Close() error
}

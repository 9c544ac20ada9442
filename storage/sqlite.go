package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"marketscope/models"
)

// SQLiteStore is the default on-disk search store, a single-file database
// holding search history and raw product rows.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and runs the
// schema migration. Intermediate directories are created automatically.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, ":memory:") {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS search_history (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			keyword            TEXT NOT NULL,
			platforms          TEXT NOT NULL,
			limit_per_platform INTEGER DEFAULT 50,
			timestamp          DATETIME DEFAULT CURRENT_TIMESTAMP,
			result_count       INTEGER DEFAULT 0,
			status             TEXT DEFAULT 'pending',
			error_message      TEXT
		);

		CREATE TABLE IF NOT EXISTS search_results (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			search_id     INTEGER NOT NULL,
			platform      TEXT NOT NULL,
			name          TEXT,
			price         REAL,
			rating        REAL,
			sold          INTEGER DEFAULT 0,
			shop_id       TEXT,
			shop_location TEXT,
			merchant      TEXT,
			url           TEXT,
			FOREIGN KEY (search_id) REFERENCES search_history (id)
		);

		CREATE INDEX IF NOT EXISTS idx_results_search ON search_results(search_id);
	`)
	return err
}

// CreateSearch inserts a pending search record and returns its id.
func (s *SQLiteStore) CreateSearch(keyword string, platforms []string, limitPerPlatform int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO search_history (keyword, platforms, limit_per_platform)
		VALUES (?, ?, ?)
	`, keyword, strings.Join(platforms, ","), limitPerPlatform)
	if err != nil {
		return 0, fmt.Errorf("sqlite: create search: %w", err)
	}
	return res.LastInsertId()
}

// SaveProducts stores the raw records for a search in one transaction.
func (s *SQLiteStore) SaveProducts(searchID int64, products []*models.Product) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO search_results
			(search_id, platform, name, price, rating, sold, shop_id, shop_location, merchant, url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.Exec(searchID, p.Platform, p.Name, p.Price, p.Rating,
			p.Sold, p.ShopID, p.ShopLocation, p.Merchant, p.URL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite: insert product: %w", err)
		}
	}
	return tx.Commit()
}

// LoadProducts retrieves the raw records of a search in insertion order.
func (s *SQLiteStore) LoadProducts(searchID int64) ([]*models.Product, error) {
	rows, err := s.db.Query(`
		SELECT platform, name, price, rating, sold, shop_id, shop_location, merchant, url
		FROM search_results
		WHERE search_id = ?
		ORDER BY id
	`, searchID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.Platform, &p.Name, &p.Price, &p.Rating,
			&p.Sold, &p.ShopID, &p.ShopLocation, &p.Merchant, &p.URL); err != nil {
			return nil, fmt.Errorf("sqlite: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetSearch returns one search history row.
func (s *SQLiteStore) GetSearch(searchID int64) (*SearchRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, keyword, platforms, limit_per_platform, timestamp, result_count, status,
		       COALESCE(error_message, '')
		FROM search_history WHERE id = ?
	`, searchID)
	return scanSearchRecord(row)
}

// MarkCompleted finalizes a search with its result count.
func (s *SQLiteStore) MarkCompleted(searchID int64, resultCount int) error {
	_, err := s.db.Exec(`
		UPDATE search_history SET status = ?, result_count = ? WHERE id = ?
	`, StatusCompleted, resultCount, searchID)
	if err != nil {
		return fmt.Errorf("sqlite: mark completed: %w", err)
	}
	return nil
}

// MarkFailed records a search failure.
func (s *SQLiteStore) MarkFailed(searchID int64, errMsg string) error {
	_, err := s.db.Exec(`
		UPDATE search_history SET status = ?, error_message = ? WHERE id = ?
	`, StatusFailed, errMsg, searchID)
	if err != nil {
		return fmt.Errorf("sqlite: mark failed: %w", err)
	}
	return nil
}

// History lists the most recent searches.
func (s *SQLiteStore) History(limit int) ([]*SearchRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, keyword, platforms, limit_per_platform, timestamp, result_count, status,
		       COALESCE(error_message, '')
		FROM search_history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history: %w", err)
	}
	defer rows.Close()

	var records []*SearchRecord
	for rows.Next() {
		r, err := scanSearchRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSearchRecord(row rowScanner) (*SearchRecord, error) {
	r := &SearchRecord{}
	var platforms string
	if err := row.Scan(&r.ID, &r.Keyword, &platforms, &r.LimitPerPlatform,
		&r.Timestamp, &r.ResultCount, &r.Status, &r.ErrorMessage); err != nil {
		return nil, fmt.Errorf("scan search record: %w", err)
	}
	if platforms != "" {
		r.Platforms = strings.Split(platforms, ",")
	}
	return r, nil
}

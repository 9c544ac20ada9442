package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"marketscope/models"
)

// PostgresStore is the server-deployment variant of the search store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS search_history (
			id                 SERIAL PRIMARY KEY,
			keyword            TEXT NOT NULL,
			platforms          TEXT NOT NULL,
			limit_per_platform INTEGER NOT NULL DEFAULT 50,
			timestamp          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			result_count       INTEGER NOT NULL DEFAULT 0,
			status             VARCHAR(20) NOT NULL DEFAULT 'pending',
			error_message      TEXT
		);

		CREATE TABLE IF NOT EXISTS search_results (
			id            SERIAL PRIMARY KEY,
			search_id     INTEGER NOT NULL REFERENCES search_history(id),
			platform      VARCHAR(50) NOT NULL,
			name          TEXT NOT NULL DEFAULT '',
			price         NUMERIC(14,2) NOT NULL DEFAULT 0,
			rating        NUMERIC(4,2) NOT NULL DEFAULT 0,
			sold          INTEGER NOT NULL DEFAULT 0,
			shop_id       TEXT NOT NULL DEFAULT '',
			shop_location TEXT NOT NULL DEFAULT '',
			merchant      TEXT NOT NULL DEFAULT '',
			url           TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_results_search   ON search_results(search_id);
		CREATE INDEX IF NOT EXISTS idx_results_platform ON search_results(platform);
	`)
	return err
}

// CreateSearch inserts a pending search record and returns its id.
func (s *PostgresStore) CreateSearch(keyword string, platforms []string, limitPerPlatform int) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO search_history (keyword, platforms, limit_per_platform)
		VALUES ($1, $2, $3)
		RETURNING id
	`, keyword, strings.Join(platforms, ","), limitPerPlatform).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("postgres: create search: %w", err)
	}
	return id, nil
}

// SaveProducts batch-inserts the raw records for a search.
func (s *PostgresStore) SaveProducts(searchID int64, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(products); i += batchSize {
		end := i + batchSize
		if end > len(products) {
			end = len(products)
		}
		if err := s.insertBatch(searchID, products[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) insertBatch(searchID int64, batch []*models.Product) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*10)

	for idx, p := range batch {
		base := idx * 10
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10))
		valueArgs = append(valueArgs,
			searchID, p.Platform, p.Name, p.Price, p.Rating, p.Sold,
			p.ShopID, p.ShopLocation, p.Merchant, p.URL)
	}

	query := fmt.Sprintf(`
		INSERT INTO search_results
			(search_id, platform, name, price, rating, sold, shop_id, shop_location, merchant, url)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := s.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// LoadProducts retrieves the raw records of a search in insertion order.
func (s *PostgresStore) LoadProducts(searchID int64) ([]*models.Product, error) {
	rows, err := s.db.Query(`
		SELECT platform, name, price, rating, sold, shop_id, shop_location, merchant, url
		FROM search_results
		WHERE search_id = $1
		ORDER BY id
	`, searchID)
	if err != nil {
		return nil, fmt.Errorf("postgres: load products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.Platform, &p.Name, &p.Price, &p.Rating,
			&p.Sold, &p.ShopID, &p.ShopLocation, &p.Merchant, &p.URL); err != nil {
			return nil, fmt.Errorf("postgres: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetSearch returns one search history row.
func (s *PostgresStore) GetSearch(searchID int64) (*SearchRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, keyword, platforms, limit_per_platform, timestamp, result_count, status,
		       COALESCE(error_message, '')
		FROM search_history WHERE id = $1
	`, searchID)
	return scanSearchRecord(row)
}

// MarkCompleted finalizes a search with its result count.
func (s *PostgresStore) MarkCompleted(searchID int64, resultCount int) error {
	_, err := s.db.Exec(`
		UPDATE search_history SET status = $1, result_count = $2 WHERE id = $3
	`, StatusCompleted, resultCount, searchID)
	if err != nil {
		return fmt.Errorf("postgres: mark completed: %w", err)
	}
	return nil
}

// MarkFailed records a search failure.
func (s *PostgresStore) MarkFailed(searchID int64, errMsg string) error {
	_, err := s.db.Exec(`
		UPDATE search_history SET status = $1, error_message = $2 WHERE id = $3
	`, StatusFailed, errMsg, searchID)
	if err != nil {
		return fmt.Errorf("postgres: mark failed: %w", err)
	}
	return nil
}

// History lists the most recent searches.
func (s *PostgresStore) History(limit int) ([]*SearchRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, keyword, platforms, limit_per_platform, timestamp, result_count, status,
		       COALESCE(error_message, '')
		FROM search_history
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: history: %w", err)
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
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

package storage

import (
	"testing"

	"marketscope/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteSearchLifecycle(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateSearch("laptop", []string{"shopee", "lazada"}, 50)
	if err != nil {
		t.Fatalf("CreateSearch: %v", err)
	}

	record, err := s.GetSearch(id)
	if err != nil {
		t.Fatalf("GetSearch: %v", err)
	}
	if record.Keyword != "laptop" {
		t.Errorf("Keyword: got %q, want laptop", record.Keyword)
	}
	if record.Status != StatusPending {
		t.Errorf("Status: got %q, want pending", record.Status)
	}
	if len(record.Platforms) != 2 || record.Platforms[0] != "shopee" {
		t.Errorf("Platforms: got %v", record.Platforms)
	}

	if err := s.MarkCompleted(id, 7); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	record, _ = s.GetSearch(id)
	if record.Status != StatusCompleted || record.ResultCount != 7 {
		t.Errorf("after completion: status %q, count %d", record.Status, record.ResultCount)
	}
}

func TestSQLiteMarkFailed(t *testing.T) {
	s := newTestStore(t)

	id, _ := s.CreateSearch("phone", []string{"shopee"}, 10)
	if err := s.MarkFailed(id, "timeout"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	record, _ := s.GetSearch(id)
	if record.Status != StatusFailed {
		t.Errorf("Status: got %q, want failed", record.Status)
	}
	if record.ErrorMessage != "timeout" {
		t.Errorf("ErrorMessage: got %q, want timeout", record.ErrorMessage)
	}
}

func TestSQLiteSaveAndLoadProducts(t *testing.T) {
	s := newTestStore(t)

	id, _ := s.CreateSearch("charger", []string{"shopee"}, 10)
	in := []*models.Product{
		{Platform: "shopee", Name: "Charger 20W", Price: 150000, Rating: 4.8, Sold: 900, ShopID: "s1", URL: "https://shopee.co.id/p/1"},
		{Platform: "lazada", Name: "Charger 65W", Price: 250000, Rating: 4.5, Sold: 300, ShopID: "s2", URL: "https://lazada.co.id/p/2"},
	}
	if err := s.SaveProducts(id, in); err != nil {
		t.Fatalf("SaveProducts: %v", err)
	}

	out, err := s.LoadProducts(id)
	if err != nil {
		t.Fatalf("LoadProducts: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded: got %d, want 2", len(out))
	}
	// Insertion order is preserved.
	if out[0].Name != "Charger 20W" || out[1].Name != "Charger 65W" {
		t.Errorf("order: got %q, %q", out[0].Name, out[1].Name)
	}
	if out[0].Price != 150000 || out[0].Sold != 900 {
		t.Errorf("row roundtrip: %+v", out[0])
	}
}

func TestSQLiteHistory(t *testing.T) {
	s := newTestStore(t)

	for _, kw := range []string{"a", "b", "c"} {
		if _, err := s.CreateSearch(kw, []string{"shopee"}, 5); err != nil {
			t.Fatalf("CreateSearch %q: %v", kw, err)
		}
	}

	records, err := s.History(2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("History len: got %d, want 2", len(records))
	}
	// Newest first.
	if records[0].Keyword != "c" || records[1].Keyword != "b" {
		t.Errorf("order: got %q, %q", records[0].Keyword, records[1].Keyword)
	}
}

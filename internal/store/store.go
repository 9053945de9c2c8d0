// Package store is the local SQLite cache behind the companion: league
// metadata, divination card price snapshots, and filter-derived rarities.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"divistash/internal/filter"
)

// Store wraps the SQLite database. Safe for concurrent use.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// League is one cached game league.
type League struct {
	ID        string
	Realm     string
	StartAt   time.Time
	EndAt     time.Time
	FetchedAt time.Time
}

// CardPrice is one card's market price inside a league snapshot.
type CardPrice struct {
	League       string
	Card         string
	ChaosValue   float64
	ListingCount int
	FetchedAt    time.Time
}

// New opens (or creates) the database at path and initializes the schema.
// Pass ":memory:" for an ephemeral database in tests.
func New(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory:
	// databases from splitting across pool connections.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	leagueTable := `
	CREATE TABLE IF NOT EXISTS leagues (
		id TEXT PRIMARY KEY,
		realm TEXT NOT NULL DEFAULT '',
		start_at INTEGER NOT NULL DEFAULT 0,
		end_at INTEGER NOT NULL DEFAULT 0,
		fetched_at INTEGER NOT NULL
	);
	`

	priceTable := `
	CREATE TABLE IF NOT EXISTS card_prices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		league TEXT NOT NULL,
		card TEXT NOT NULL,
		chaos_value REAL NOT NULL,
		listing_count INTEGER NOT NULL DEFAULT 0,
		fetched_at INTEGER NOT NULL,
		UNIQUE(league, card)
	);
	CREATE INDEX IF NOT EXISTS idx_card_prices_league ON card_prices(league);
	`

	rarityTable := `
	CREATE TABLE IF NOT EXISTS filter_rarities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filter_id TEXT NOT NULL,
		card TEXT NOT NULL,
		rarity INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE(filter_id, card)
	);
	CREATE INDEX IF NOT EXISTS idx_filter_rarities_filter ON filter_rarities(filter_id);
	`

	for _, table := range []string{leagueTable, priceTable, rarityTable} {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertLeagues inserts or refreshes the given leagues in one transaction.
func (s *Store) UpsertLeagues(leagues []League) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO leagues (id, realm, start_at, end_at, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			realm = excluded.realm,
			start_at = excluded.start_at,
			end_at = excluded.end_at,
			fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, l := range leagues {
		if _, err := stmt.Exec(l.ID, l.Realm, l.StartAt.Unix(), l.EndAt.Unix(), l.FetchedAt.Unix()); err != nil {
			return fmt.Errorf("failed to upsert league %s: %w", l.ID, err)
		}
	}
	return tx.Commit()
}

// Leagues returns all cached leagues ordered by id.
func (s *Store) Leagues() ([]League, error) {
	return s.leaguesWhere("", nil)
}

// LeaguesFetchedAfter returns cached leagues whose snapshot is newer than t.
func (s *Store) LeaguesFetchedAfter(t time.Time) ([]League, error) {
	return s.leaguesWhere("WHERE fetched_at > ?", []interface{}{t.Unix()})
}

func (s *Store) leaguesWhere(where string, args []interface{}) ([]League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, realm, start_at, end_at, fetched_at FROM leagues " + where + " ORDER BY id"
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leagues: %w", err)
	}
	defer rows.Close()

	var leagues []League
	for rows.Next() {
		var l League
		var startAt, endAt, fetchedAt int64
		if err := rows.Scan(&l.ID, &l.Realm, &startAt, &endAt, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan league: %w", err)
		}
		l.StartAt = time.Unix(startAt, 0).UTC()
		l.EndAt = time.Unix(endAt, 0).UTC()
		l.FetchedAt = time.Unix(fetchedAt, 0).UTC()
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}

// UpsertCardPrices merges a price snapshot into the cache. Existing
// (league, card) rows are overwritten with the newer values.
func (s *Store) UpsertCardPrices(prices []CardPrice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO card_prices (league, card, chaos_value, listing_count, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(league, card) DO UPDATE SET
			chaos_value = excluded.chaos_value,
			listing_count = excluded.listing_count,
			fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range prices {
		if _, err := stmt.Exec(p.League, p.Card, p.ChaosValue, p.ListingCount, p.FetchedAt.Unix()); err != nil {
			return fmt.Errorf("failed to upsert price for %s: %w", p.Card, err)
		}
	}
	return tx.Commit()
}

// CardPrices returns the cached snapshot for a league ordered by card name.
func (s *Store) CardPrices(league string) ([]CardPrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT league, card, chaos_value, listing_count, fetched_at
		FROM card_prices WHERE league = ? ORDER BY card
	`, league)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	var prices []CardPrice
	for rows.Next() {
		var p CardPrice
		var fetchedAt int64
		if err := rows.Scan(&p.League, &p.Card, &p.ChaosValue, &p.ListingCount, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		p.FetchedAt = time.Unix(fetchedAt, 0).UTC()
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// SaveFilterRarities replaces the stored rarity map for filterID with the
// given one, atomically.
func (s *Store) SaveFilterRarities(filterID string, rarities map[string]filter.Rarity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM filter_rarities WHERE filter_id = ?", filterID); err != nil {
		return fmt.Errorf("failed to clear filter rarities: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO filter_rarities (filter_id, card, rarity, updated_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for card, rarity := range rarities {
		if _, err := stmt.Exec(filterID, card, int(rarity), now); err != nil {
			return fmt.Errorf("failed to insert rarity for %s: %w", card, err)
		}
	}
	return tx.Commit()
}

// FilterRarities returns the stored rarity map for filterID. The map is
// empty, never nil, when nothing is stored.
func (s *Store) FilterRarities(filterID string) (map[string]filter.Rarity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT card, rarity FROM filter_rarities WHERE filter_id = ?", filterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query filter rarities: %w", err)
	}
	defer rows.Close()

	rarities := make(map[string]filter.Rarity)
	for rows.Next() {
		var card string
		var rarity int
		if err := rows.Scan(&card, &rarity); err != nil {
			return nil, fmt.Errorf("failed to scan rarity: %w", err)
		}
		rarities[card] = filter.Rarity(rarity)
	}
	return rarities, rows.Err()
}

// Stats returns row counts per table, mainly for diagnostics and tests.
func (s *Store) Stats() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]int)
	for _, table := range []string{"leagues", "card_prices", "filter_rarities"} {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		stats[table] = count
	}
	return stats, nil
}

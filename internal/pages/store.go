// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pages keeps converted documents in a local SQLite page store, keyed
// by page id, in the same shape the docs page API serves them.
package pages

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nb2docs/pkg/types"
)

// DefaultDBPath is used when PagesConfig.DBPath is empty.
const DefaultDBPath = "data/docs-pages.db"

// timeLayout is fixed-width so updated_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrPageNotFound is returned by Get for an unknown id.
var ErrPageNotFound = errors.New("page not found")

// Page is a stored document with its id and last update time.
type Page struct {
	ID             string `json:"id" yaml:"id"`
	types.Document `yaml:",inline"`
	UpdatedAt      time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Store manages the page database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the page database at cfg.DBPath and creates the
// schema if it does not exist.
func NewStore(cfg types.PagesConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		breadcrumb TEXT NOT NULL,
		blocks TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Upsert stores doc under id, replacing any existing page. The title and
// breadcrumb entries are trimmed and updated_at is stamped with the current
// time. Blocks are stored as given.
func (s *Store) Upsert(ctx context.Context, id string, doc *types.Document) (*Page, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("page id is required")
	}

	page := &Page{
		ID: id,
		Document: types.Document{
			Title:      strings.TrimSpace(doc.Title),
			Breadcrumb: make([]string, len(doc.Breadcrumb)),
			Blocks:     doc.Blocks,
		},
		UpdatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	for i, b := range doc.Breadcrumb {
		page.Breadcrumb[i] = strings.TrimSpace(b)
	}
	if page.Blocks == nil {
		page.Blocks = []types.Block{}
	}

	breadcrumbJSON, err := json.Marshal(page.Breadcrumb)
	if err != nil {
		return nil, fmt.Errorf("marshaling breadcrumb: %w", err)
	}
	blocksJSON, err := json.Marshal(page.Blocks)
	if err != nil {
		return nil, fmt.Errorf("marshaling blocks: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO pages (id, title, breadcrumb, blocks, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, breadcrumb=excluded.breadcrumb,
			blocks=excluded.blocks, updated_at=excluded.updated_at`,
		page.ID, page.Title, string(breadcrumbJSON), string(blocksJSON),
		page.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("upserting page %s: %w", id, err)
	}
	return page, nil
}

// Get returns the page stored under id, or ErrPageNotFound. The id is
// trimmed the same way Upsert trims it.
func (s *Store) Get(ctx context.Context, id string) (*Page, error) {
	id = strings.TrimSpace(id)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, breadcrumb, blocks, updated_at FROM pages WHERE id = ?`, id)
	page, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading page %s: %w", id, err)
	}
	return page, nil
}

// List returns all pages, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Page, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, breadcrumb, blocks, updated_at FROM pages
		 ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		pages = append(pages, *page)
	}
	return pages, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(sc scanner) (*Page, error) {
	var (
		page                              Page
		breadcrumbJSON, blocksJSON, stamp string
	)
	if err := sc.Scan(&page.ID, &page.Title, &breadcrumbJSON, &blocksJSON, &stamp); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(breadcrumbJSON), &page.Breadcrumb); err != nil {
		return nil, fmt.Errorf("decoding breadcrumb of %s: %w", page.ID, err)
	}
	if err := json.Unmarshal([]byte(blocksJSON), &page.Blocks); err != nil {
		return nil, fmt.Errorf("decoding blocks of %s: %w", page.ID, err)
	}
	t, err := time.Parse(timeLayout, stamp)
	if err != nil {
		return nil, fmt.Errorf("decoding updated_at of %s: %w", page.ID, err)
	}
	page.UpdatedAt = t
	return &page, nil
}

// ExportJSON writes every page as one JSON object keyed by page id.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	byID, err := s.exportPages(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(byID); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// ExportYAML writes every page as one YAML mapping keyed by page id.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	byID, err := s.exportPages(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(byID)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (s *Store) exportPages(ctx context.Context) (map[string]Page, error) {
	pages, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	byID := make(map[string]Page, len(pages))
	for _, p := range pages {
		byID[p.ID] = p
	}
	return byID, nil
}

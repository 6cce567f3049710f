// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nb2docs/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.PagesConfig{DBPath: filepath.Join(t.TempDir(), "data", "pages.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// setClock makes the store stamp pages with consecutive seconds from base.
func setClock(s *Store, base time.Time) {
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func sampleDoc(title string) *types.Document {
	return &types.Document{
		Title:      title,
		Breadcrumb: []string{"Documentation", "Notebook"},
		Blocks: []types.Block{
			types.Heading("Intro"),
			types.Code(types.LanguagePython, "print(1)"),
		},
	}
}

func TestUpsertAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	setClock(store, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	doc := &types.Document{
		Title:      "  Padded title ",
		Breadcrumb: []string{" Documentation", "Templates  "},
		Blocks:     []types.Block{types.List([]string{"a", "b"})},
	}
	stored, err := store.Upsert(ctx, "template-02", doc)
	require.NoError(t, err)
	assert.Equal(t, "Padded title", stored.Title)
	assert.Equal(t, []string{"Documentation", "Templates"}, stored.Breadcrumb)

	got, err := store.Get(ctx, "template-02")
	require.NoError(t, err)
	assert.Equal(t, "template-02", got.ID)
	assert.Equal(t, stored.Document, got.Document)
	assert.True(t, stored.UpdatedAt.Equal(got.UpdatedAt))

	// Input document is left untouched.
	assert.Equal(t, "  Padded title ", doc.Title)
}

func TestUpsert_Replaces(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	setClock(store, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := store.Upsert(ctx, "p", sampleDoc("first"))
	require.NoError(t, err)
	_, err = store.Upsert(ctx, "p", &types.Document{Title: "second", Breadcrumb: []string{"X"}})
	require.NoError(t, err)

	got, err := store.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)
	assert.Equal(t, []string{"X"}, got.Breadcrumb)
	assert.Equal(t, []types.Block{}, got.Blocks)

	pages, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, pages, 1)
}

func TestUpsert_RequiresID(t *testing.T) {
	store := testStore(t)
	_, err := store.Upsert(context.Background(), "  ", sampleDoc("x"))
	assert.Error(t, err)
}

func TestGet_NotFound(t *testing.T) {
	store := testStore(t)
	_, err := store.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPageNotFound))
	assert.Contains(t, err.Error(), "nope")
}

func TestGet_TrimsID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		storeID string
		getID   string
	}{
		{"padded on both", " x ", " x "},
		{"padded on store only", "  y", "y"},
		{"padded on get only", "z", "z\t\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Upsert(ctx, tt.storeID, sampleDoc("Page "+tt.name))
			require.NoError(t, err)

			page, err := store.Get(ctx, tt.getID)
			require.NoError(t, err)
			assert.Equal(t, "Page "+tt.name, page.Title)
		})
	}
}

func TestList_NewestFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	setClock(store, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	for _, id := range []string{"a", "b", "c"} {
		_, err := store.Upsert(ctx, id, sampleDoc(id))
		require.NoError(t, err)
	}
	// Touch a again so it becomes the newest.
	_, err := store.Upsert(ctx, "a", sampleDoc("a2"))
	require.NoError(t, err)

	pages, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, []string{"a", "c", "b"}, []string{pages[0].ID, pages[1].ID, pages[2].ID})
}

func TestExportJSON(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	setClock(store, time.Date(2026, 5, 5, 5, 5, 5, 0, time.UTC))

	_, err := store.Upsert(ctx, "getting-started", sampleDoc("Getting Started"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(ctx, &buf))

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	page := got["getting-started"]
	require.NotNil(t, page)
	assert.Equal(t, "getting-started", page["id"])
	assert.Equal(t, "Getting Started", page["title"])
	assert.Equal(t, "2026-05-05T05:05:06Z", page["updatedAt"])
	assert.Len(t, page["blocks"], 2)
}

func TestExportYAML(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "one", sampleDoc("One"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.ExportYAML(ctx, &buf))

	var got map[string]Page
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Contains(t, got, "one")
	assert.Equal(t, "One", got["one"].Title)
	assert.Equal(t, sampleDoc("One").Blocks, got["one"].Blocks)
}

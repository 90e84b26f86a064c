package writer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"top10/internal/config"
	"top10/internal/models"
)

var testSite = config.SiteConfig{
	Title:       "Top 10 Pet Deals",
	Slug:        "top-10-pet-deals",
	Niche:       "pets",
	AffiliateID: "pets-20",
}

func TestBuildDocument(t *testing.T) {
	now := time.Date(2026, 3, 1, 7, 30, 0, 123000000, time.FixedZone("PST", -8*3600))

	doc := BuildDocument(testSite, nil, models.SourcePlaceholder, now)

	assert.Equal(t, "Top 10 Pet Deals", doc.Title)
	assert.Equal(t, "top-10-pet-deals", doc.Slug)
	assert.Equal(t, "pets", doc.Niche)
	assert.Equal(t, "pets-20", doc.AffiliateID)
	assert.Equal(t, "2026-03-01T15:30:00.123Z", doc.GeneratedAt)
	assert.Equal(t, models.SourcePlaceholder, doc.Source)
	assert.NotNil(t, doc.Products)

	_, err := uuid.Parse(doc.RunID)
	assert.NoError(t, err)
}

func TestBuildDocument_UniqueRunIDs(t *testing.T) {
	now := time.Now()
	a := BuildDocument(testSite, nil, models.SourceAPI, now)
	b := BuildDocument(testSite, nil, models.SourceAPI, now)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestWrite_CreatesDirsAndFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "_data", "filled.json")

	doc := BuildDocument(testSite, []models.Product{{
		Rank: 1, Title: "Cat Tree", Price: "$59.99", Currency: "USD", Features: []string{},
	}}, models.SourceAPI, time.Now())

	require.NoError(t, Write(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasSuffix(text, "}\n"))
	assert.Contains(t, text, "\n  \"products\": [\n    {\n      \"rank\": 1,")
	assert.Contains(t, text, `"features": []`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{"title", "slug", "niche", "generated_at", "affiliate_id", "products"} {
		assert.Contains(t, decoded, key)
	}

	product := decoded["products"].([]any)[0].(map[string]any)
	for _, key := range []string{"rank", "title", "asin", "price", "currency", "rating", "review_count", "image", "url", "features", "description"} {
		assert.Contains(t, product, key)
	}
}

func TestWrite_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filled.json")

	first := BuildDocument(testSite, nil, models.SourceAPI, time.Now())
	second := BuildDocument(testSite, nil, models.SourcePlaceholder, time.Now().Add(time.Second))

	require.NoError(t, Write(path, first))
	require.NoError(t, Write(path, second))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, second.RunID, got.RunID)
	assert.Equal(t, models.SourcePlaceholder, got.Source)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWrite_GeneratedAtIncreases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filled.json")
	base := time.Now()

	var last string

	for i := range 3 {
		doc := BuildDocument(testSite, nil, models.SourceAPI, base.Add(time.Duration(i)*time.Millisecond))
		require.NoError(t, Write(path, doc))

		got, err := Read(path)
		require.NoError(t, err)

		ts, err := time.Parse(time.RFC3339Nano, got.GeneratedAt)
		require.NoError(t, err)

		if last != "" {
			prev, _ := time.Parse(time.RFC3339Nano, last)
			assert.True(t, ts.After(prev), "%s should be after %s", got.GeneratedAt, last)
		}

		last = got.GeneratedAt
	}
}

func TestWrite_EmptyPath(t *testing.T) {
	assert.ErrorIs(t, Write("", &models.Document{}), ErrEmptyPath)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))

	_, err = Read(bad)
	assert.Error(t, err)
}

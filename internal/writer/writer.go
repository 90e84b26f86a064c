// Package writer builds the output document and persists it atomically.
package writer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"top10/internal/config"
	"top10/internal/models"
)

// ErrEmptyPath is returned when Write is called without a destination.
var ErrEmptyPath = errors.New("output path is empty")

// BuildDocument wraps products in the output envelope. generated_at is now in
// UTC with nanosecond precision; a nil products slice is written as [].
func BuildDocument(site config.SiteConfig, products []models.Product, source string, now time.Time) *models.Document {
	if products == nil {
		products = []models.Product{}
	}

	return &models.Document{
		Title:       site.Title,
		Slug:        site.Slug,
		Niche:       site.Niche,
		GeneratedAt: now.UTC().Format(time.RFC3339Nano),
		AffiliateID: site.AffiliateID,
		RunID:       uuid.NewString(),
		Source:      source,
		Products:    products,
	}
}

// Marshal encodes doc with two-space indentation and a trailing newline.
func Marshal(doc *models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	return append(data, '\n'), nil
}

// Write replaces the file at path with doc. Parent directories are created as
// needed and the file is written to a temporary sibling first, then renamed.
func Write(path string, doc *models.Document) error {
	if path == "" {
		return ErrEmptyPath
	}

	data, err := Marshal(doc)
	if err != nil {
		return err
	}

	return WriteFile(path, data)
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()

	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

// Read loads a previously written document.
func Read(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}

	return &doc, nil
}

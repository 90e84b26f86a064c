// Package pipeline runs one generation: resolve category, fetch, normalize,
// write, and optionally preview and publish.
package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"top10/internal/category"
	"top10/internal/config"
	"top10/internal/fetcher"
	"top10/internal/formatter"
	"top10/internal/logger"
	"top10/internal/models"
	"top10/internal/normalizer"
	"top10/internal/publish"
	"top10/internal/writer"
)

// Options tune a run. The zero value fetches live data and does not publish.
type Options struct {
	// Mock skips the network and writes placeholder products.
	Mock bool
	// Publisher receives the written document when non-nil.
	Publisher  publish.Publisher
	HTTPClient *http.Client
	Rand       *rand.Rand
	Now        func() time.Time
}

// Result summarizes a completed run.
type Result struct {
	Document     *models.Document
	OutputPath   string
	PreviewPath  string
	PublishedURL string
	NodeID       string
	Source       string
	Count        int
	// Fallback is why placeholders were used, nil for live data and --mock.
	Fallback error
	// PublishErr is set when publishing failed; the run still succeeds.
	PublishErr error
	Duration   time.Duration
}

// Run executes the pipeline. Configuration errors, including a missing API
// key, are returned before any network or file activity. Fetch failures are
// not errors: they produce placeholder data.
func Run(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Options) (*Result, error) {
	if log == nil {
		log = logger.Nop()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	start := now()

	if cfg.Site.AffiliateID == "" {
		log.Warn("⚠️  AMAZON_AFFILIATE_ID is not set, product links will not earn commission")
	}

	nodeID := category.Resolve(cfg.Site.Niche, cfg.Site.SearchContext, cfg.Site.CategoryID)
	log.Info("🔍 resolved category", "niche", cfg.Site.Niche, "node_id", nodeID)

	client := fetcher.NewClient(cfg.API, log.With("component", "fetcher"))
	if opts.HTTPClient != nil {
		client.WithHTTPClient(opts.HTTPClient)
	}

	if opts.Rand != nil {
		client.WithRand(opts.Rand)
	}

	var fetched fetcher.Result
	if opts.Mock {
		log.Info("🧪 mock mode, skipping product request")

		fetched = client.PlaceholderResult(cfg.Site.Niche)
	} else {
		var err error

		fetched, err = client.FetchOrPlaceholder(ctx, fetcher.NewQuery(cfg, nodeID), cfg.Site.Niche)
		if err != nil {
			return nil, err
		}
	}

	products, warnings := normalizer.NormalizeAll(fetched.Records, cfg.Site.AffiliateID)
	if warnings != nil {
		log.Warn("⚠️  some products are incomplete", "details", warnings)
	}

	doc := writer.BuildDocument(cfg.Site, products, fetched.Source, now())

	if err := writer.Write(cfg.Output.Path, doc); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	log.Info("💾 wrote products", "path", cfg.Output.Path, "count", len(products), "source", doc.Source)

	result := &Result{
		Document:   doc,
		OutputPath: cfg.Output.Path,
		NodeID:     nodeID,
		Source:     doc.Source,
		Count:      len(products),
		Fallback:   fetched.Fallback,
	}

	if cfg.Output.PreviewPath != "" {
		if err := writer.WriteFile(cfg.Output.PreviewPath, []byte(formatter.Preview(doc))); err != nil {
			return nil, fmt.Errorf("write preview: %w", err)
		}

		result.PreviewPath = cfg.Output.PreviewPath
		log.Info("📝 wrote preview", "path", cfg.Output.PreviewPath)
	}

	if opts.Publisher != nil {
		url, err := publishDocument(ctx, opts.Publisher, cfg.Site.Slug, doc)
		if err != nil {
			log.Error("❌ publish failed, local output is unaffected", "error", err)

			result.PublishErr = err
		} else {
			log.Info("☁️  published", "url", url)

			result.PublishedURL = url
		}
	}

	result.Duration = now().Sub(start)

	return result, nil
}

func publishDocument(ctx context.Context, p publish.Publisher, slug string, doc *models.Document) (string, error) {
	data, err := writer.Marshal(doc)
	if err != nil {
		return "", err
	}

	return p.Publish(ctx, publish.Key(slug), data)
}

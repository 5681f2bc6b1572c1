// Package clipper orchestrates one extraction run: fetch, fast parse,
// validate, AI fallback when needed, image rehosting, persistence.
package clipper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"recipeclip/internal/extract"
	"recipeclip/internal/media"
	"recipeclip/internal/metrics"
	"recipeclip/internal/recipe"
)

// fetchTimeout bounds the source page fetch. The fetch fails with the same
// error taxonomy on timeout as on an outright network error.
const fetchTimeout = 15 * time.Second

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	httpClient   *http.Client
	ai           *extract.AIExtractor
	mediaClient  media.Client       // nil disables image rehosting
	repo         *recipe.Repository // nil disables persistence
	metricsStore *metrics.Store     // nil disables metrics
}

// NewClipper creates a new Clipper instance. The media client, repository
// and metrics store are optional collaborators.
func NewClipper(ai *extract.AIExtractor, mediaClient media.Client, repo *recipe.Repository, metricsStore *metrics.Store) *Clipper {
	return &Clipper{
		httpClient:   &http.Client{Timeout: fetchTimeout},
		ai:           ai,
		mediaClient:  mediaClient,
		repo:         repo,
		metricsStore: metricsStore,
	}
}

// ClipURL runs the whole pipeline for one URL and returns the normalized
// extraction payload. It fails with *extract.FetchError when the page is
// unreachable, *extract.ExtractionError when the model response is
// irrecoverable, and extract.ErrNoData when nothing usable was found.
func (c *Clipper) ClipURL(ctx context.Context, pageURL string) (*recipe.ExtractionResult, error) {
	start := time.Now()

	html, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	result, source := extract.FastParse(html, pageURL)
	if !extract.Usable(result) {
		result, err = c.fallback(ctx, html, pageURL)
		if err != nil {
			return nil, err
		}
		source = extract.SourceAI
	}

	if result.Recipe.Title == "" {
		result.Recipe.Title = "Untitled Recipe"
	}

	result.Recipe.Image = c.resolveImage(ctx, result.Recipe.Image)

	if c.repo != nil {
		if _, err := c.repo.Save(ctx, pageURL, result); err != nil {
			return nil, fmt.Errorf("failed to save recipe: %w", err)
		}
	}

	c.recordMetric(ctx, pageURL, source, time.Since(start))

	return result, nil
}

// fallback invokes the AI extractor. Model-call failures and unusable
// results collapse into ErrNoData; an irrecoverable response keeps its own
// identity so callers can tell the two apart.
func (c *Clipper) fallback(ctx context.Context, html, pageURL string) (*recipe.ExtractionResult, error) {
	log.Printf("clipper: fast parse unusable for %s, invoking AI fallback", pageURL)

	result, err := c.ai.Extract(ctx, html, pageURL)
	if err != nil {
		var extractionErr *extract.ExtractionError
		if errors.As(err, &extractionErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", extract.ErrNoData, err)
	}

	if !extract.Usable(result) {
		return nil, extract.ErrNoData
	}
	return result, nil
}

// resolveImage rehosts the recipe image on the media library. On any
// failure the original remote URL is kept.
func (c *Clipper) resolveImage(ctx context.Context, imageURL string) string {
	if imageURL == "" || c.mediaClient == nil {
		return imageURL
	}

	hosted, err := c.mediaClient.UploadImage(ctx, imageURL)
	if err != nil {
		log.Printf("clipper: failed to rehost image %s, keeping original: %v", imageURL, err)
		return imageURL
	}
	return hosted
}

func (c *Clipper) recordMetric(ctx context.Context, pageURL string, source extract.Source, latency time.Duration) {
	if c.metricsStore == nil {
		return
	}

	host := pageURL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		host = u.Host
	}

	err := c.metricsStore.Record(ctx, metrics.ExtractionMetric{
		Host:      host,
		Source:    string(source),
		LatencyMS: latency.Milliseconds(),
	})
	if err != nil {
		log.Printf("clipper: failed to record metric for %s: %v", host, err)
	}
}

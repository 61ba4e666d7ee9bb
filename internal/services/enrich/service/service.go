// Package service implements the enrichment fetcher: given a ranked
// candidate that is still missing a DOD, service dates or an image, it
// fetches the source page and back-fills those fields from the page body.
// Every per-page failure is absorbed and logged at debug; enrichment is
// best-effort and purely additive.
package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"obitwatch/internal/core/extract"
	"obitwatch/internal/platform/logger"
	"obitwatch/internal/services/search/domain"
)

// maxBodyBytes caps how much of a page is read; obituary pages are small
// and anything past this is not going to carry the dates we want.
const maxBodyBytes = 2 << 20

// Fetcher implements domain.Enricher over a shared HTTP client. The
// per-page timeout is the caller's job (the pipeline wraps each Enrich in
// a context.WithTimeout); Fetcher only honors the context it is handed.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

// New constructs a Fetcher sharing the given HTTP client.
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{Client: client}
}

// Enrich fetches c's page and back-fills DOD, visitation/funeral dates and
// the image URL. Only nil-to-value transitions happen; a field the
// candidate already carries is never overwritten.
func (f *Fetcher) Enrich(ctx context.Context, c *domain.Candidate) {
	if c == nil || c.URL == "" {
		return
	}
	log := logger.Named("enrich")

	rawHTML, ok := f.fetch(ctx, c.URL, log)
	if !ok {
		return
	}

	text := Flatten(rawHTML)
	now := time.Now().UTC()

	if c.DOD == "" {
		if dod, found := extract.ExtractDOD(text, now); found {
			c.DOD = dod
		}
	}

	sd := extract.ExtractServiceDates(text, c.DOD)
	if c.Visitation == "" {
		c.Visitation = sd.Visitation
	}
	if c.Funeral == "" {
		c.Funeral = sd.Funeral
	}

	if c.ImageURL == "" {
		c.ImageURL = ExtractImageURL(rawHTML, c.URL)
	}
}

// fetch GETs the page and returns its HTML, or ok=false on any failure:
// network error, non-200, non-HTML content type. All are logged at debug
// and treated as "no enrichment".
func (f *Fetcher) fetch(ctx context.Context, pageURL string, log *logger.Logger) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		log.Debug().Err(err).Str("url", pageURL).Msg("bad enrichment url")
		return "", false
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	domain.MetricsFrom(ctx).AddEnrichFetch()
	resp, err := f.Client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("url", pageURL).Msg("enrichment fetch failed")
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("url", pageURL).Msg("enrichment non-200")
		return "", false
	}
	ctype := resp.Header.Get("Content-Type")
	if ctype != "" && !strings.Contains(strings.ToLower(ctype), "html") {
		log.Debug().Str("content_type", ctype).Str("url", pageURL).Msg("enrichment non-html")
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Debug().Err(err).Str("url", pageURL).Msg("enrichment read failed")
		return "", false
	}
	return string(body), true
}

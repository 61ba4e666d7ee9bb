// Package serper is the primary search backend: google.serper.dev's JSON
// API behind the domain.Provider contract.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"obitwatch/internal/core/normalize"
	"obitwatch/internal/platform/logger"
	"obitwatch/internal/services/search/domain"
	"obitwatch/internal/services/search/provider"
)

const endpoint = "https://google.serper.dev/search"

// Provider calls the Serper API.
type Provider struct {
	apiKey string
	client *http.Client
	norm   *normalize.Normalizer
}

// New constructs a Serper provider sharing the given HTTP client.
func New(apiKey string, client *http.Client, norm *normalize.Normalizer) domain.Provider {
	if client == nil {
		client = http.DefaultClient
	}
	if norm == nil {
		norm = normalize.New()
	}
	return &Provider{apiKey: apiKey, client: client, norm: norm}
}

// Name satisfies domain.Provider
func (p *Provider) Name() domain.ProviderType { return domain.ProviderSerper }

type request struct {
	Q   string `json:"q"`
	Num int    `json:"num,omitempty"`
}

type response struct {
	Organic []organic `json:"organic"`
}

type organic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// Search builds the query text, calls the API, and parses each organic hit
// into a candidate. Failures are logged and yield an empty slice, never an
// error that would fail the surrounding search.
func (p *Provider) Search(ctx context.Context, q domain.Query) ([]domain.Candidate, error) {
	log := logger.Named("serper")
	text := provider.BuildQuery(q, p.norm)

	body, err := json.Marshal(request{Q: text, Num: 10})
	if err != nil {
		log.Warn().Err(err).Msg("marshal request failed")
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		log.Warn().Err(err).Msg("build request failed")
		return nil, nil
	}
	req.Header.Set("X-API-KEY", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	domain.MetricsFrom(ctx).AddProviderCall()
	resp, err := p.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("q", text).Msg("serper call failed")
		return nil, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("q", text).Msg("serper non-200")
		return nil, nil
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Warn().Err(err).Msg("decode serper response failed")
		return nil, nil
	}

	now := time.Now().UTC()
	cands := make([]domain.Candidate, 0, len(out.Organic))
	for _, o := range out.Organic {
		if o.Link == "" {
			continue
		}
		h := provider.Hit{Title: o.Title, URL: o.Link, Snippet: o.Snippet, Source: o.Source}
		cands = append(cands, provider.Candidate(q, p.norm, h, domain.ProviderSerper, now))
	}
	log.Debug().Str("q", text).Int("hits", len(cands)).Msg("serper search done")
	return cands, nil
}

// Package serpapi is the SerpApi search backend behind the
// domain.Provider contract.
package serpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"obitwatch/internal/core/normalize"
	"obitwatch/internal/platform/logger"
	"obitwatch/internal/services/search/domain"
	"obitwatch/internal/services/search/provider"
)

const endpoint = "https://serpapi.com/search.json"

// Provider calls SerpApi's google engine.
type Provider struct {
	apiKey string
	client *http.Client
	norm   *normalize.Normalizer
}

// New constructs a SerpApi provider sharing the given HTTP client.
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
func (p *Provider) Name() domain.ProviderType { return domain.ProviderSerpAPI }

type response struct {
	OrganicResults []organic `json:"organic_results"`
}

type organic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// Search calls SerpApi and parses organic_results. Failures are logged and
// yield an empty slice.
func (p *Provider) Search(ctx context.Context, q domain.Query) ([]domain.Candidate, error) {
	log := logger.Named("serpapi")
	text := provider.BuildQuery(q, p.norm)

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", text)
	params.Set("num", "10")
	params.Set("api_key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("build request failed")
		return nil, nil
	}

	domain.MetricsFrom(ctx).AddProviderCall()
	resp, err := p.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("q", text).Msg("serpapi call failed")
		return nil, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("q", text).Msg("serpapi non-200")
		return nil, nil
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Warn().Err(err).Msg("decode serpapi response failed")
		return nil, nil
	}

	now := time.Now().UTC()
	cands := make([]domain.Candidate, 0, len(out.OrganicResults))
	for _, o := range out.OrganicResults {
		if o.Link == "" {
			continue
		}
		h := provider.Hit{Title: o.Title, URL: o.Link, Snippet: o.Snippet, Source: o.Source}
		cands = append(cands, provider.Candidate(q, p.norm, h, domain.ProviderSerpAPI, now))
	}
	log.Debug().Str("q", text).Int("hits", len(cands)).Msg("serpapi search done")
	return cands, nil
}

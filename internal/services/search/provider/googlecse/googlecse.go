// Package googlecse is the Google Custom Search Engine backend behind the
// domain.Provider contract.
package googlecse

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

const endpoint = "https://www.googleapis.com/customsearch/v1"

// Provider calls the Google CSE JSON API.
type Provider struct {
	apiKey string
	cseID  string
	client *http.Client
	norm   *normalize.Normalizer
}

// New constructs a Google CSE provider sharing the given HTTP client.
func New(apiKey, cseID string, client *http.Client, norm *normalize.Normalizer) domain.Provider {
	if client == nil {
		client = http.DefaultClient
	}
	if norm == nil {
		norm = normalize.New()
	}
	return &Provider{apiKey: apiKey, cseID: cseID, client: client, norm: norm}
}

// Name satisfies domain.Provider
func (p *Provider) Name() domain.ProviderType { return domain.ProviderGoogleCSE }

type response struct {
	Items []item `json:"items"`
}

type item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
}

// Search calls the CSE API and parses items. Failures are logged and yield
// an empty slice.
func (p *Provider) Search(ctx context.Context, q domain.Query) ([]domain.Candidate, error) {
	log := logger.Named("googlecse")
	text := provider.BuildQuery(q, p.norm)

	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("cx", p.cseID)
	params.Set("q", text)
	params.Set("num", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("build request failed")
		return nil, nil
	}

	domain.MetricsFrom(ctx).AddProviderCall()
	resp, err := p.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("q", text).Msg("cse call failed")
		return nil, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("q", text).Msg("cse non-200")
		return nil, nil
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Warn().Err(err).Msg("decode cse response failed")
		return nil, nil
	}

	now := time.Now().UTC()
	cands := make([]domain.Candidate, 0, len(out.Items))
	for _, it := range out.Items {
		if it.Link == "" {
			continue
		}
		h := provider.Hit{Title: it.Title, URL: it.Link, Snippet: it.Snippet, Source: it.DisplayLink}
		cands = append(cands, provider.Candidate(q, p.norm, h, domain.ProviderGoogleCSE, now))
	}
	log.Debug().Str("q", text).Int("hits", len(cands)).Msg("cse search done")
	return cands, nil
}

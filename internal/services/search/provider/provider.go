// Package provider holds what the three search backends share: the query
// string builder, the hit-to-candidate parser, and config-time selection
// of the active implementation. The backends themselves live in the
// serper, serpapi and googlecse subpackages behind the domain.Provider
// contract.
package provider

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"obitwatch/internal/core/extract"
	"obitwatch/internal/core/fingerprint"
	"obitwatch/internal/core/normalize"
	perr "obitwatch/internal/platform/errors"
	"obitwatch/internal/services/search/domain"

	"obitwatch/internal/platform/config"
)

// Hit is the provider-neutral shape of one search engine result.
type Hit struct {
	Title   string
	URL     string
	Snippet string
	Source  string
}

// BuildQuery assembles the textual query sent to the engine: the first
// name's nickname variants disjoined with OR, the last name, the literal
// word obituary, then city and state. Keywords are deliberately left out —
// they are scored post hoc, never injected into the query.
func BuildQuery(q domain.Query, norm *normalize.Normalizer) string {
	var parts []string

	variants := norm.NicknameVariants(q.FirstName)
	if q.Nickname != "" && q.Nickname != q.FirstName {
		for _, v := range norm.NicknameVariants(q.Nickname) {
			if !contains(variants, v) {
				variants = append(variants, v)
			}
		}
	}
	switch len(variants) {
	case 0:
	case 1:
		parts = append(parts, variants[0])
	default:
		parts = append(parts, "("+strings.Join(variants, " OR ")+")")
	}

	if q.LastName != "" {
		parts = append(parts, q.LastName)
	}
	parts = append(parts, "obituary")
	if q.City != "" {
		city := q.City
		if strings.Contains(city, " ") {
			city = `"` + city + `"`
		}
		parts = append(parts, city)
	}
	if q.State != "" {
		parts = append(parts, q.State)
	}
	return strings.Join(parts, " ")
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// Candidate converts one raw hit into a structured candidate: names from
// the title/snippet/slug pipeline, DOD and service dates from the combined
// text, location and age from the snippet, fingerprint from the normalized
// parts. A hit whose name cannot be extracted at all still becomes a
// candidate carrying the query's last name, so downstream scoring decides
// its fate rather than the parser.
func Candidate(q domain.Query, norm *normalize.Normalizer, h Hit, ptype domain.ProviderType, now time.Time) domain.Candidate {
	text := h.Title + " " + h.Snippet

	var slugPath string
	if u, err := url.Parse(h.URL); err == nil {
		slugPath = u.Path
	}

	name, _ := extract.ExtractName(h.Title, h.Snippet, slugPath, q.LastName)
	if name.NameLast == "" {
		name.NameLast = q.LastName
	}

	c := domain.Candidate{
		ID:        uuid.NewString(),
		NameFull:  name.NameFull,
		NameFirst: name.NameFirst,
		NameLast:  name.NameLast,

		SourceLabel: sourceLabel(h),
		URL:         h.URL,
		Snippet:     h.Snippet,
		Provider:    ptype,
	}

	if dod, ok := extract.ExtractDOD(text, now); ok {
		c.DOD = dod
	}
	if loc, ok := extract.ExtractLocation(text); ok {
		c.City = loc.City
		c.State = loc.State
	}
	if age, ok := extract.ExtractAge(text); ok {
		c.Age = &age
	}
	sd := extract.ExtractServiceDates(text, c.DOD)
	c.Visitation = sd.Visitation
	c.Funeral = sd.Funeral

	c.Fingerprint = fingerprint.Fingerprint(
		norm.Name(c.NameLast),
		norm.Name(c.NameFirst),
		norm.City(c.City),
		norm.State(c.State),
		c.DOD,
	)
	return c
}

// sourceLabel prefers the engine-reported source name, else the hostname.
func sourceLabel(h Hit) string {
	if h.Source != "" {
		return h.Source
	}
	if u, err := url.Parse(h.URL); err == nil && u.Host != "" {
		return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	}
	return h.Title
}

// Factory builds the active provider from process configuration. The
// constructor set is injected by the caller to avoid an import cycle
// between this package and the backends.
type Factory struct {
	Serper    func(apiKey string, client *http.Client, norm *normalize.Normalizer) domain.Provider
	SerpAPI   func(apiKey string, client *http.Client, norm *normalize.Normalizer) domain.Provider
	GoogleCSE func(apiKey, cseID string, client *http.Client, norm *normalize.Normalizer) domain.Provider
}

// FromConfig selects the adapter named by SEARCH_PROVIDER (default serper)
// and wires its credentials. Missing credentials for the selected provider
// are a startup-fatal validation error.
func (f Factory) FromConfig(cfg config.Conf, client *http.Client, norm *normalize.Normalizer) (domain.Provider, error) {
	name := strings.ToLower(cfg.MayString("SEARCH_PROVIDER", "serper"))
	switch name {
	case "serper":
		key := cfg.MayString("SERPER_API_KEY", "")
		if key == "" {
			return nil, perr.InvalidArgf("SERPER_API_KEY required for provider serper")
		}
		return f.Serper(key, client, norm), nil
	case "serpapi":
		key := cfg.MayString("SERPAPI_KEY", "")
		if key == "" {
			return nil, perr.InvalidArgf("SERPAPI_KEY required for provider serpapi")
		}
		return f.SerpAPI(key, client, norm), nil
	case "google":
		key := cfg.MayString("GOOGLE_CSE_API_KEY", "")
		id := cfg.MayString("GOOGLE_CSE_ID", "")
		if key == "" || id == "" {
			return nil, perr.InvalidArgf("GOOGLE_CSE_API_KEY and GOOGLE_CSE_ID required for provider google")
		}
		return f.GoogleCSE(key, id, client, norm), nil
	default:
		return nil, perr.InvalidArgf("unknown SEARCH_PROVIDER %q", name)
	}
}

// Package http provides http transport for one-shot searches
package http

import (
	"context"
	stdhttp "net/http"
	"strconv"
	"strings"
	"time"

	"obitwatch/internal/modkit/httpkit"
	perr "obitwatch/internal/platform/errors"
	searchdom "obitwatch/internal/services/search/domain"
)

// Engine is the slice of the search service this surface drives
type Engine interface {
	Search(ctx context.Context, q searchdom.Query) ([]searchdom.Candidate, error)
	NormalizeQuery(raw searchdom.Query, now time.Time) (searchdom.Query, error)
}

// Register mounts the search endpoint on the given router
func Register(r httpkit.Router, e Engine) {
	h := &handlers{engine: e}
	httpkit.Get(r, "/search", h.search)
}

type handlers struct{ engine Engine }

// SearchResponse is the one-shot search payload
// swagger:model
type SearchResponse struct {
	Results   []searchdom.Candidate `json:"results"`
	KeySearch string                `json:"keySearch"`
}

// swagger:route GET /search Search search
// @Summary One-shot obituary search
// @Tags Search
// @Produce json
// @Param firstName query string false "First name"
// @Param lastName query string true "Last name"
// @Param middleName query string false "Middle name"
// @Param nickname query string false "Nickname"
// @Param city query string false "City"
// @Param state query string false "State (2-letter or full name)"
// @Param age query int false "Approximate age"
// @Param keyWords query string false "Comma-separated keywords"
// @Success 200 {object} SearchResponse "ok"
// @Failure 400 {object} httpkit.Envelope "validation error"
// @Router /search [get]
func (h *handlers) search(r *stdhttp.Request) (any, error) {
	q, err := queryFromParams(r)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	nq, err := h.engine.NormalizeQuery(q, now)
	if err != nil {
		return nil, err
	}

	results, err := h.engine.Search(r.Context(), q)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []searchdom.Candidate{}
	}
	return SearchResponse{Results: results, KeySearch: nq.SearchKey}, nil
}

// queryFromParams validates the identity minimum: last name plus at least
// one of first name or nickname.
func queryFromParams(r *stdhttp.Request) (searchdom.Query, error) {
	get := func(k string) string { return strings.TrimSpace(r.URL.Query().Get(k)) }

	q := searchdom.Query{
		FirstName:  get("firstName"),
		LastName:   get("lastName"),
		MiddleName: get("middleName"),
		Nickname:   get("nickname"),
		City:       get("city"),
		State:      get("state"),
	}

	if q.LastName == "" {
		return searchdom.Query{}, perr.InvalidArgf("lastName required")
	}
	if q.FirstName == "" && q.Nickname == "" {
		return searchdom.Query{}, perr.InvalidArgf("firstName or nickname required")
	}

	if raw := get("age"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil || age < 0 || age > 120 {
			return searchdom.Query{}, perr.InvalidArgf("age must be an integer between 0 and 120")
		}
		q.Age = &age
	}

	if raw := get("keyWords"); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				q.Keywords = append(q.Keywords, k)
			}
		}
	}

	if raw := get("inputDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return searchdom.Query{}, perr.InvalidArgf("inputDate must be YYYY-MM-DD")
		}
		q.InputDate = t
	}
	return q, nil
}

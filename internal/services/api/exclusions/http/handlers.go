// Package http provides http transport for exclusions
package http

import (
	stdhttp "net/http"
	"strings"

	"obitwatch/internal/modkit/httpkit"
	perr "obitwatch/internal/platform/errors"

	excldom "obitwatch/internal/services/exclusions/domain"
	exclsvc "obitwatch/internal/services/exclusions/service"
)

// Register mounts the exclusion endpoints on the given router
func Register(r httpkit.Router, s exclsvc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[excldom.AddInput](r, "/exclude", h.create)
	httpkit.Get(r, "/exclusions", h.list)
	httpkit.Get(r, "/exclusions/stats", h.stats)
	httpkit.Delete(r, "/exclude/{id}", h.remove)
}

type handlers struct{ svc exclsvc.Service }

// ExclusionResponse wraps one created exclusion
// swagger:model
type ExclusionResponse struct {
	Exclusion excldom.Exclusion `json:"exclusion"`
	IsNew     bool              `json:"isNew"`
}

// ExclusionsResponse lists exclusions for a search key
// swagger:model
type ExclusionsResponse struct {
	Exclusions []excldom.Exclusion `json:"exclusions"`
}

// SuccessResponse reports a boolean outcome
// swagger:model
type SuccessResponse struct {
	Success bool `json:"success"`
}

// swagger:route POST /exclude Exclusions excludeCreate
// @Summary Create an exclusion rule
// @Tags Exclusions
// @Accept json
// @Produce json
// @Param payload body excldom.AddInput true "Exclusion"
// @Success 200 {object} ExclusionResponse "ok"
// @Failure 400 {object} httpkit.Envelope "validation error"
// @Router /exclude [post]
func (h *handlers) create(r *stdhttp.Request, in excldom.AddInput) (any, error) {
	x, isNew, err := h.svc.Add(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return ExclusionResponse{Exclusion: x, IsNew: isNew}, nil
}

// swagger:route GET /exclusions Exclusions exclusionsList
// @Summary List exclusions for a search key, or globally
// @Tags Exclusions
// @Produce json
// @Param searchKey query string false "16-hex search key; omit with global=true for global rules, omit both for all"
// @Param global query bool false "List global-scope rules"
// @Success 200 {object} ExclusionsResponse "ok"
// @Router /exclusions [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	key := strings.TrimSpace(r.URL.Query().Get("searchKey"))

	var (
		xs  []excldom.Exclusion
		err error
	)
	switch {
	case key != "":
		xs, err = h.svc.GetByKeySearch(r.Context(), key)
	case r.URL.Query().Get("global") == "true":
		xs, err = h.svc.GetGlobalExclusions(r.Context())
	default:
		xs, err = h.svc.GetAll(r.Context())
	}
	if err != nil {
		return nil, err
	}
	if xs == nil {
		xs = []excldom.Exclusion{}
	}
	return ExclusionsResponse{Exclusions: xs}, nil
}

// swagger:route GET /exclusions/stats Exclusions exclusionStats
// @Summary Exclusion store counters
// @Tags Exclusions
// @Produce json
// @Success 200 {object} excldom.Stats "ok"
// @Router /exclusions/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.GetStats(r.Context())
}

// swagger:route DELETE /exclude/{id} Exclusions excludeRemove
// @Summary Remove an exclusion rule
// @Tags Exclusions
// @Produce json
// @Param id path string true "Exclusion id"
// @Success 200 {object} SuccessResponse "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /exclude/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id := httpkit.Param(r, "id")
	ok, err := h.svc.Remove(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.NotFoundf("exclusion %s not found", id)
	}
	return SuccessResponse{Success: true}, nil
}

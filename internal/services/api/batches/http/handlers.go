// Package http provides http transport for batch inspection
package http

import (
	stdhttp "net/http"
	"strconv"

	"obitwatch/internal/modkit/httpkit"

	batchdom "obitwatch/internal/services/batch/domain"
)

// Register mounts the batch inspection endpoints on the given router
func Register(r httpkit.Router, s batchdom.InspectPort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/batches", h.list)
	httpkit.Get(r, "/batches/latest", h.latest)
	httpkit.Get(r, "/batches/{id}", h.byID)
}

type handlers struct{ svc batchdom.InspectPort }

// BatchesResponse lists recent batches
// swagger:model
type BatchesResponse struct {
	Batches []batchdom.Batch `json:"batches"`
}

// swagger:route GET /batches Batches batchesList
// @Summary Recent batch sweeps, newest first
// @Tags Batches
// @Produce json
// @Param limit query int false "Max rows (default 50)"
// @Success 200 {object} BatchesResponse "ok"
// @Router /batches [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	xs, err := h.svc.List(r.Context(), limit)
	if err != nil {
		return nil, err
	}
	if xs == nil {
		xs = []batchdom.Batch{}
	}
	return BatchesResponse{Batches: xs}, nil
}

// swagger:route GET /batches/latest Batches batchesLatest
// @Summary Most recent batch sweep
// @Tags Batches
// @Produce json
// @Success 200 {object} batchdom.Batch "ok"
// @Failure 404 {object} httpkit.Envelope "no batches yet"
// @Router /batches/latest [get]
func (h *handlers) latest(r *stdhttp.Request) (any, error) {
	return h.svc.Latest(r.Context())
}

// swagger:route GET /batches/{id} Batches batchByID
// @Summary One batch sweep by id
// @Tags Batches
// @Produce json
// @Param id path string true "Batch id"
// @Success 200 {object} batchdom.Batch "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /batches/{id} [get]
func (h *handlers) byID(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "id"))
}

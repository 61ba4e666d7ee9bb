// Package http provides http transport for saved-search CRUD
package http

import (
	stdhttp "net/http"

	"obitwatch/internal/modkit/httpkit"

	ssdom "obitwatch/internal/services/savedsearch/domain"
)

// Register mounts the saved-search endpoints on the given router
func Register(r httpkit.Router, s ssdom.SearchesPort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/searches", h.list)
	httpkit.PostJSON[ssdom.CreateInput](r, "/searches", h.create)
	httpkit.Get(r, "/searches/{id}", h.get)
	httpkit.PutJSON[ssdom.UpdateInput](r, "/searches/{id}", h.update)
	httpkit.Delete(r, "/searches/{id}", h.remove)
}

type handlers struct{ svc ssdom.SearchesPort }

// SuccessResponse reports a boolean outcome
// swagger:model
type SuccessResponse struct {
	Success bool `json:"success"`
}

// swagger:route GET /searches Searches searchesList
// @Summary The caller's saved searches
// @Tags Searches
// @Produce json
// @Success 200 {array} ssdom.SavedSearch "ok"
// @Router /searches [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), uid)
}

// swagger:route POST /searches Searches searchesCreate
// @Summary Create a saved search
// @Tags Searches
// @Accept json
// @Produce json
// @Param payload body ssdom.CreateInput true "Person query"
// @Success 200 {object} ssdom.SavedSearch "ok"
// @Failure 400 {object} httpkit.Envelope "validation error"
// @Router /searches [post]
func (h *handlers) create(r *stdhttp.Request, in ssdom.CreateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	in.LoginID = uid
	return h.svc.Create(r.Context(), in)
}

// swagger:route GET /searches/{id} Searches searchesGet
// @Summary One saved search
// @Tags Searches
// @Produce json
// @Param id path string true "Saved search id"
// @Success 200 {object} ssdom.SavedSearch "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /searches/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), uid, httpkit.Param(r, "id"))
}

// swagger:route PUT /searches/{id} Searches searchesUpdate
// @Summary Replace a saved search's person fields
// @Tags Searches
// @Accept json
// @Produce json
// @Param id path string true "Saved search id"
// @Param payload body ssdom.UpdateInput true "Person query"
// @Success 200 {object} ssdom.SavedSearch "ok"
// @Failure 400 {object} httpkit.Envelope "confirmed search is read-only"
// @Router /searches/{id} [put]
func (h *handlers) update(r *stdhttp.Request, in ssdom.UpdateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), uid, httpkit.Param(r, "id"), in)
}

// swagger:route DELETE /searches/{id} Searches searchesDelete
// @Summary Soft-delete (disable) a saved search
// @Tags Searches
// @Produce json
// @Param id path string true "Saved search id"
// @Success 200 {object} SuccessResponse "ok"
// @Router /searches/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), uid, httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return SuccessResponse{Success: true}, nil
}

// Package http provides http transport for the match lifecycle: the
// app-facing surface a user drives when reviewing, confirming and
// rejecting results. Bearer-token validation happens in middleware;
// handlers only read the resolved user id.
package http

import (
	stdhttp "net/http"

	"obitwatch/internal/modkit/httpkit"

	ssdom "obitwatch/internal/services/savedsearch/domain"
)

// Register mounts the match endpoints on the given router
func Register(r httpkit.Router, s ssdom.LifecyclePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/matches", h.summaries)
	httpkit.Get(r, "/matches/{searchId}", h.results)
	httpkit.Get(r, "/matches/{searchId}/{resultId}", h.detail)
	httpkit.Post(r, "/matches/{searchId}/mark-read", h.markRead)
	httpkit.Post(r, "/matches/{searchId}/{resultId}/confirm", h.confirm)
	httpkit.PostJSON[RejectInput](r, "/matches/{searchId}/{resultId}/reject", h.reject)
	httpkit.Post(r, "/matches/{searchId}/{resultId}/restore", h.restore)
}

type handlers struct{ svc ssdom.LifecyclePort }

// RejectInput carries the optional rejection reason
// swagger:model
type RejectInput struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// MarkReadResponse reports how many results were flipped
// swagger:model
type MarkReadResponse struct {
	Marked int `json:"marked"`
}

// SuccessResponse reports a boolean outcome
// swagger:model
type SuccessResponse struct {
	Success bool `json:"success"`
}

// swagger:route GET /matches Matches matchSummaries
// @Summary Per-search match overview for the caller
// @Tags Matches
// @Produce json
// @Success 200 {array} ssdom.SearchSummary "ok"
// @Router /matches [get]
func (h *handlers) summaries(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Summaries(r.Context(), uid)
}

// swagger:route GET /matches/{searchId} Matches matchResults
// @Summary Results for one saved search
// @Tags Matches
// @Produce json
// @Param searchId path string true "Saved search id"
// @Success 200 {array} ssdom.Result "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /matches/{searchId} [get]
func (h *handlers) results(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Results(r.Context(), uid, httpkit.Param(r, "searchId"))
}

// swagger:route GET /matches/{searchId}/{resultId} Matches matchDetail
// @Summary One result detail
// @Tags Matches
// @Produce json
// @Param searchId path string true "Saved search id"
// @Param resultId path string true "Result id"
// @Success 200 {object} ssdom.Result "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /matches/{searchId}/{resultId} [get]
func (h *handlers) detail(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Result(r.Context(), uid, httpkit.Param(r, "searchId"), httpkit.Param(r, "resultId"))
}

// swagger:route POST /matches/{searchId}/mark-read Matches matchMarkRead
// @Summary Mark every pending unread result of a search as read
// @Tags Matches
// @Produce json
// @Param searchId path string true "Saved search id"
// @Success 200 {object} MarkReadResponse "ok"
// @Router /matches/{searchId}/mark-read [post]
func (h *handlers) markRead(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	n, err := h.svc.MarkRead(r.Context(), uid, httpkit.Param(r, "searchId"))
	if err != nil {
		return nil, err
	}
	return MarkReadResponse{Marked: n}, nil
}

// swagger:route POST /matches/{searchId}/{resultId}/confirm Matches matchConfirm
// @Summary Confirm a result; freezes the owning saved search
// @Tags Matches
// @Produce json
// @Param searchId path string true "Saved search id"
// @Param resultId path string true "Result id"
// @Success 200 {object} SuccessResponse "ok"
// @Router /matches/{searchId}/{resultId}/confirm [post]
func (h *handlers) confirm(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Confirm(r.Context(), uid, httpkit.Param(r, "searchId"), httpkit.Param(r, "resultId")); err != nil {
		return nil, err
	}
	return SuccessResponse{Success: true}, nil
}

// swagger:route POST /matches/{searchId}/{resultId}/reject Matches matchReject
// @Summary Reject a result; routes an exclusion for future runs
// @Tags Matches
// @Accept json
// @Produce json
// @Param searchId path string true "Saved search id"
// @Param resultId path string true "Result id"
// @Param payload body RejectInput false "Reason"
// @Success 200 {object} SuccessResponse "ok"
// @Router /matches/{searchId}/{resultId}/reject [post]
func (h *handlers) reject(r *stdhttp.Request, in RejectInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Reject(r.Context(), uid, httpkit.Param(r, "searchId"), httpkit.Param(r, "resultId"), in.Reason); err != nil {
		return nil, err
	}
	return SuccessResponse{Success: true}, nil
}

// swagger:route POST /matches/{searchId}/{resultId}/restore Matches matchRestore
// @Summary Restore a rejected result to pending
// @Tags Matches
// @Produce json
// @Param searchId path string true "Saved search id"
// @Param resultId path string true "Result id"
// @Success 200 {object} SuccessResponse "ok"
// @Router /matches/{searchId}/{resultId}/restore [post]
func (h *handlers) restore(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Restore(r.Context(), uid, httpkit.Param(r, "searchId"), httpkit.Param(r, "resultId")); err != nil {
		return nil, err
	}
	return SuccessResponse{Success: true}, nil
}

package handlers

import (
	"encoding/json"
	"net/http"
)

// InvalidateCacheRequest asks for every cached page under a prefix to be
// dropped. The prefix is constrained to the leaderboard namespace so the
// endpoint cannot flush unrelated keys.
type InvalidateCacheRequest struct {
	Prefix string `json:"prefix" validate:"required,startswith=leaderboard"`
}

// InvalidateCache drops cached leaderboard pages by key prefix. Used by
// operational workflows after backfills or score corrections.
// @Summary Invalidate cached leaderboard pages
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Deleted key count"
// @Failure 400 {object} map[string]string "Invalid prefix"
// @Router /admin/cache/invalidate [post]
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req InvalidateCacheRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Prefix must be within the leaderboard namespace")
		return
	}

	deleted, err := h.cache.InvalidatePrefix(r.Context(), req.Prefix)
	if err != nil {
		h.logger.Errorw("Failed to invalidate cache prefix", "prefix", req.Prefix, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Invalidation failed")
		return
	}

	h.logger.Infow("Cache prefix invalidated", "prefix", req.Prefix, "deleted", deleted)
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"prefix":  req.Prefix,
		"deleted": deleted,
	})
}

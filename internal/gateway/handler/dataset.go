package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"metabridge/internal/gateway/entity"
	"metabridge/internal/gateway/middleware"
	"metabridge/internal/gateway/repository/legacy"
	"metabridge/internal/gateway/service/contributor"
)

// Resolver is the part of contributor.Service the REST routes need.
type Resolver interface {
	ResolveContributors(ctx context.Context, id entity.DatasetID) ([]entity.Contributor, error)
	ResolveAuthors(ctx context.Context, id entity.DatasetID) ([]entity.Author, error)
}

type DatasetHandler struct {
	svc    Resolver
	logger *zap.Logger
}

func NewDatasetHandler(svc Resolver, logger *zap.Logger) *DatasetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetHandler{svc: svc, logger: logger}
}

// HandleContributors serves GET /api/v1/datasets/{id}/contributors.
func (h *DatasetHandler) HandleContributors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, err := entity.ParseDatasetID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	contributors, err := h.svc.ResolveContributors(r.Context(), id)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"datasetId":    id.Int64(),
		"contributors": contributors,
	})
}

// HandleAuthors serves GET /api/v1/datasets/{id}/authors.
func (h *DatasetHandler) HandleAuthors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, err := entity.ParseDatasetID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	authors, err := h.svc.ResolveAuthors(r.Context(), id)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"datasetId": id.Int64(),
		"authors":   authors,
	})
}

func (h *DatasetHandler) fail(w http.ResponseWriter, r *http.Request, id entity.DatasetID, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("resolve dataset failed",
			zap.String("request_id", middleware.RequestID(r.Context())),
			zap.Int64("dataset_id", id.Int64()),
			zap.Error(err))
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, contributor.ErrInvalidDatasetID):
		return http.StatusBadRequest
	case errors.Is(err, legacy.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, legacy.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

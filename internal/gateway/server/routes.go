package server

import (
	"net/http"

	"go.uber.org/zap"

	"metabridge/internal/gateway/handler"
	"metabridge/internal/gateway/handler/rpc"
	"metabridge/internal/gateway/middleware"
)

func NewMux(
	datasetRPC *rpc.DatasetHandler,
	datasetHandler *handler.DatasetHandler,
	healthHandler *handler.HealthHandler,
	logger *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// RPC Handlers
	mux.Handle(rpc.NewDatasetServiceHandler(datasetRPC))

	// REST Handlers
	mux.HandleFunc("GET /api/v1/datasets/{id}/contributors", datasetHandler.HandleContributors)
	mux.HandleFunc("GET /api/v1/datasets/{id}/authors", datasetHandler.HandleAuthors)
	mux.HandleFunc("GET /healthz", healthHandler.HandleHealth)

	// Middleware
	return middleware.RequestLogger(logger)(middleware.CORS(mux))
}

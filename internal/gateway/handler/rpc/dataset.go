package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"

	"metabridge/internal/gateway/entity"
	"metabridge/internal/gateway/repository/legacy"
	"metabridge/internal/gateway/service/contributor"
)

const (
	DatasetServiceName = "metabridge.v1.DatasetService"

	ListContributorsProcedure = "/" + DatasetServiceName + "/ListContributors"
	ListAuthorsProcedure      = "/" + DatasetServiceName + "/ListAuthors"
)

type ListContributorsRequest struct {
	DatasetID int64 `json:"datasetId"`
}

type ListContributorsResponse struct {
	DatasetID    int64                `json:"datasetId"`
	Contributors []entity.Contributor `json:"contributors"`
}

type ListAuthorsRequest struct {
	DatasetID int64 `json:"datasetId"`
}

type ListAuthorsResponse struct {
	DatasetID int64           `json:"datasetId"`
	Authors   []entity.Author `json:"authors"`
}

// Resolver is the part of contributor.Service the handler needs.
type Resolver interface {
	ResolveContributors(ctx context.Context, id entity.DatasetID) ([]entity.Contributor, error)
	ResolveAuthors(ctx context.Context, id entity.DatasetID) ([]entity.Author, error)
}

type DatasetHandler struct {
	svc Resolver
}

func NewDatasetHandler(svc Resolver) *DatasetHandler {
	return &DatasetHandler{svc: svc}
}

func (h *DatasetHandler) ListContributors(ctx context.Context, req *connect.Request[ListContributorsRequest]) (*connect.Response[ListContributorsResponse], error) {
	id := entity.DatasetID(req.Msg.DatasetID)
	if !id.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("dataset_id must be a positive integer"))
	}

	contributors, err := h.svc.ResolveContributors(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListContributorsResponse{
		DatasetID:    id.Int64(),
		Contributors: contributors,
	}), nil
}

func (h *DatasetHandler) ListAuthors(ctx context.Context, req *connect.Request[ListAuthorsRequest]) (*connect.Response[ListAuthorsResponse], error) {
	id := entity.DatasetID(req.Msg.DatasetID)
	if !id.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("dataset_id must be a positive integer"))
	}

	authors, err := h.svc.ResolveAuthors(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListAuthorsResponse{
		DatasetID: id.Int64(),
		Authors:   authors,
	}), nil
}

// NewDatasetServiceHandler mounts both procedures under the service path,
// ready for http.ServeMux.Handle.
func NewDatasetServiceHandler(h *DatasetHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	listContributors := connect.NewUnaryHandler(ListContributorsProcedure, h.ListContributors, opts...)
	listAuthors := connect.NewUnaryHandler(ListAuthorsProcedure, h.ListAuthors, opts...)
	return "/" + DatasetServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ListContributorsProcedure:
			listContributors.ServeHTTP(w, r)
		case ListAuthorsProcedure:
			listAuthors.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, contributor.ErrInvalidDatasetID):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, legacy.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, legacy.ErrUnavailable):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

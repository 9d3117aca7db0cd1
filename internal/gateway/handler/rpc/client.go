package rpc

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// DatasetClient calls a remote gateway over the Connect protocol.
type DatasetClient struct {
	listContributors *connect.Client[ListContributorsRequest, ListContributorsResponse]
	listAuthors      *connect.Client[ListAuthorsRequest, ListAuthorsResponse]
}

func NewDatasetClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *DatasetClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &DatasetClient{
		listContributors: connect.NewClient[ListContributorsRequest, ListContributorsResponse](httpClient, baseURL+ListContributorsProcedure, opts...),
		listAuthors:      connect.NewClient[ListAuthorsRequest, ListAuthorsResponse](httpClient, baseURL+ListAuthorsProcedure, opts...),
	}
}

func (c *DatasetClient) ListContributors(ctx context.Context, datasetID int64) (*ListContributorsResponse, error) {
	res, err := c.listContributors.CallUnary(ctx, connect.NewRequest(&ListContributorsRequest{DatasetID: datasetID}))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func (c *DatasetClient) ListAuthors(ctx context.Context, datasetID int64) (*ListAuthorsResponse, error) {
	res, err := c.listAuthors.CallUnary(ctx, connect.NewRequest(&ListAuthorsRequest{DatasetID: datasetID}))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metabridge/internal/gateway/entity"
	"metabridge/internal/gateway/repository/legacy"
)

type fakeResolver struct {
	contributors []entity.Contributor
	err          error
	calls        int
	lastID       entity.DatasetID
}

func (f *fakeResolver) ResolveContributors(_ context.Context, id entity.DatasetID) ([]entity.Contributor, error) {
	f.calls++
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.contributors, nil
}

func (f *fakeResolver) ResolveAuthors(_ context.Context, id entity.DatasetID) ([]entity.Author, error) {
	f.calls++
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	out := []entity.Author{}
	for _, c := range f.contributors {
		if c.HasRole("creator") {
			out = append(out, c.AsAuthor())
		}
	}
	return out, nil
}

func newTestServer(t *testing.T, svc Resolver) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(NewDatasetServiceHandler(NewDatasetHandler(svc)))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func sampleContributors() []entity.Contributor {
	given, family := "Natalya", "Mikhailova"
	return []entity.Contributor{
		{
			Type:         entity.ContributorPerson,
			GivenName:    &given,
			FamilyName:   &family,
			Name:         "Mikhailova, Natalya",
			Affiliations: []entity.Affiliation{{Value: "Institute of Geophysical Research"}},
			Roles:        []string{"creator", "contact-person"},
			IsContact:    true,
		},
		{
			Type:         entity.ContributorPerson,
			Name:         "Editor, Only",
			Affiliations: []entity.Affiliation{},
			Roles:        []string{"editor"},
		},
	}
}

func TestListContributorsOverConnect(t *testing.T) {
	fake := &fakeResolver{contributors: sampleContributors()}
	srv := newTestServer(t, fake)
	client := NewDatasetClient(srv.Client(), srv.URL)

	res, err := client.ListContributors(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, entity.DatasetID(42), fake.lastID)
	assert.Equal(t, int64(42), res.DatasetID)
	require.Len(t, res.Contributors, 2)
	assert.Equal(t, "Mikhailova, Natalya", res.Contributors[0].Name)
	assert.Equal(t, "Natalya", *res.Contributors[0].GivenName)
	assert.True(t, res.Contributors[0].IsContact)
}

func TestListAuthorsOverConnect(t *testing.T) {
	srv := newTestServer(t, &fakeResolver{contributors: sampleContributors()})
	client := NewDatasetClient(srv.Client(), srv.URL)

	res, err := client.ListAuthors(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, res.Authors, 1)
	assert.Equal(t, "Mikhailova, Natalya", res.Authors[0].Name)
}

func TestListContributorsPlainJSONPost(t *testing.T) {
	srv := newTestServer(t, &fakeResolver{contributors: sampleContributors()})

	resp, err := srv.Client().Post(srv.URL+ListContributorsProcedure, "application/json", bytes.NewBufferString(`{"datasetId":3}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(3), body["datasetId"])
	contributors, ok := body["contributors"].([]any)
	require.True(t, ok)
	first := contributors[0].(map[string]any)
	assert.Equal(t, "Person", first["type"])
	assert.Equal(t, true, first["isContact"])
}

func TestConnectErrorCodes(t *testing.T) {
	cases := []struct {
		name string
		id   int64
		err  error
		want connect.Code
	}{
		{name: "invalid id", id: 0, want: connect.CodeInvalidArgument},
		{name: "not found", id: 9, err: fmt.Errorf("dataset 9: %w", legacy.ErrNotFound), want: connect.CodeNotFound},
		{name: "unavailable", id: 9, err: &legacy.QueryError{Op: "agents", DatasetID: 9, Err: errors.New("refused")}, want: connect.CodeUnavailable},
		{name: "internal", id: 9, err: errors.New("boom"), want: connect.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeResolver{err: tc.err}
			srv := newTestServer(t, fake)
			client := NewDatasetClient(srv.Client(), srv.URL)

			_, err := client.ListContributors(context.Background(), tc.id)
			require.Error(t, err)
			assert.Equal(t, tc.want, connect.CodeOf(err))
			if tc.id == 0 {
				assert.Equal(t, 0, fake.calls)
			}
		})
	}
}

func TestUnknownProcedure(t *testing.T) {
	srv := newTestServer(t, &fakeResolver{})

	resp, err := srv.Client().Post(srv.URL+"/"+DatasetServiceName+"/DeleteDataset", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

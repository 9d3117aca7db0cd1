package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metabridge/internal/gateway/entity"
	"metabridge/internal/gateway/handler"
	"metabridge/internal/gateway/handler/rpc"
	"metabridge/internal/gateway/repository/legacy"
	"metabridge/internal/gateway/server"
	"metabridge/internal/gateway/service/contributor"
)

const fixture = `
datasets:
  - id: 4
    agents:
      - { order: 1, name: "Uhlemann, Steffi" }
      - { order: 2, name: "GFZ Data Services" }
    roles:
      - { agentOrder: 1, role: Creator }
      - { agentOrder: 2, role: Distributor }
`

func setupEnv(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "legacy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	t.Setenv("APP_ENV", "test")
	t.Setenv("LEGACY_DB_DSN", "")
	t.Setenv("LEGACY_FIXTURE_FILE", path)
	t.Setenv("LEGACY_CACHE_SIZE", "0")
	t.Setenv("ROLE_TAXONOMY_FILE", "")
	t.Setenv("LOG_FORMAT", "json")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveContributorsLocal(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "resolve", "contributors", "4")
	require.NoError(t, err)

	var got []entity.Contributor
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Uhlemann, Steffi", got[0].Name)
	assert.Equal(t, entity.ContributorInstitution, got[1].Type)
}

func TestResolveAuthorsLocal(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "resolve", "authors", "4")
	require.NoError(t, err)

	var got []entity.Author
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, []string{"creator"}, got[0].Roles)
}

func TestResolveErrors(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "resolve", "authors", "nope")
	assert.Error(t, err)

	_, err = run(t, "resolve", "authors", "99")
	assert.ErrorIs(t, err, legacy.ErrNotFound)
}

func TestResolveRemote(t *testing.T) {
	store := legacy.NewMemoryStore()
	store.AddDataset(8)
	store.AddAgent(entity.LegacyAgent{ResourceID: 8, Order: 1, Name: "Poleshko, N.N."})
	store.AddRole(entity.LegacyRole{ResourceID: 8, AgentOrder: 1, Role: "Creator"})
	svc := contributor.New(legacy.NewLoader(store), nil, nil)
	srv := httptest.NewServer(server.NewMux(rpc.NewDatasetHandler(svc), handler.NewDatasetHandler(svc, nil), handler.NewHealthHandler(nil), nil))
	defer srv.Close()

	out, err := run(t, "--remote", srv.URL, "resolve", "authors", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Poleshko, N.N.")
}

func TestRolesTable(t *testing.T) {
	t.Setenv("ROLE_TAXONOMY_FILE", "")

	out, err := run(t, "roles")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "LEGACY"))
	assert.Contains(t, out, "HostingInstitution")
	assert.Contains(t, out, "hosting-institution")
}

func TestRolesWithExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles:\n  - legacy: Curator\n    slug: curator\n"), 0o600))

	out, err := run(t, "roles", "--json", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"curator"`)
}

func TestLogLevelPrecedence(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, "warn", logLevel(&rootOptions{}, "warn"))

	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, "debug", logLevel(&rootOptions{}, "warn"))
	assert.Equal(t, "error", logLevel(&rootOptions{logLevel: "error"}, "warn"))
}

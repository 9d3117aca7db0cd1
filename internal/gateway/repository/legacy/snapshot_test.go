package legacy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metabridge/internal/gateway/entity"
)

func TestNewSnapshotKeepsTieOrderAndFiltersDataset(t *testing.T) {
	snap := NewSnapshot(1,
		[]entity.LegacyAgent{
			{ResourceID: 1, Order: 2, Name: "B"},
			{ResourceID: 1, Order: 1, Name: "A1"},
			{ResourceID: 2, Order: 1, Name: "foreign"},
			{ResourceID: 1, Order: 1, Name: "A2"},
		},
		[]entity.LegacyRole{
			{ResourceID: 1, AgentOrder: 1, Role: "Creator"},
			{ResourceID: 2, AgentOrder: 1, Role: "Editor"},
			{ResourceID: 1, AgentOrder: 1, Role: "ContactPerson"},
		},
		[]entity.LegacyAffiliation{
			{ResourceID: 1, AgentOrder: 1, SubOrder: 3, Name: "third"},
			{ResourceID: 1, AgentOrder: 1, SubOrder: 1, Name: "first"},
		},
		[]entity.LegacyContactInfo{
			{ResourceID: 1, AgentOrder: 3, Email: "late@example.org"},
			{ResourceID: 1, AgentOrder: 1, Email: "first@example.org"},
			{ResourceID: 1, AgentOrder: 1, Email: "second@example.org"},
		},
	)

	var names []string
	for _, a := range snap.Agents() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"A1", "A2", "B"}, names)

	roles := snap.RolesFor(1)
	require.Len(t, roles, 2)
	assert.Equal(t, "Creator", roles[0].Role)
	assert.Equal(t, "ContactPerson", roles[1].Role)
	assert.Empty(t, snap.RolesFor(2))

	affs := snap.AffiliationsFor(1)
	require.Len(t, affs, 2)
	assert.Equal(t, "first", affs[0].Name)

	c, ok := snap.ContactInfoFor(1)
	require.True(t, ok)
	assert.Equal(t, "first@example.org", c.Email)
	_, ok = snap.ContactInfoFor(2)
	assert.False(t, ok)

	all := snap.AllContactInfo()
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[0].AgentOrder)
	assert.Equal(t, 3, all[2].AgentOrder)

	a, ok := snap.AgentAt(1)
	require.True(t, ok)
	assert.Equal(t, "A1", a.Name)
}

func TestSnapshotAccessorsReturnCopies(t *testing.T) {
	snap := NewSnapshot(1,
		[]entity.LegacyAgent{{ResourceID: 1, Order: 1, Name: "A"}},
		[]entity.LegacyRole{{ResourceID: 1, AgentOrder: 1, Role: "Creator"}},
		nil, nil,
	)
	agents := snap.Agents()
	agents[0].Name = "mutated"
	roles := snap.RolesFor(1)
	roles[0].Role = "mutated"

	assert.Equal(t, "A", snap.Agents()[0].Name)
	assert.Equal(t, "Creator", snap.RolesFor(1)[0].Role)
}

func TestMemoryStoreWithLoader(t *testing.T) {
	store := NewMemoryStore()
	store.AddAgent(entity.LegacyAgent{ResourceID: 5, Order: 2, Name: "Second"})
	store.AddAgent(entity.LegacyAgent{ResourceID: 5, Order: 1, Name: "First"})
	store.AddRole(entity.LegacyRole{ResourceID: 5, AgentOrder: 1, Role: "Creator"})
	store.AddDataset(6)

	snap, err := NewLoader(store).Load(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, entity.DatasetID(5), snap.DatasetID())
	require.Len(t, snap.Agents(), 2)
	assert.Equal(t, "First", snap.Agents()[0].Name)

	empty, err := NewLoader(store).Load(context.Background(), 6)
	require.NoError(t, err)
	assert.Empty(t, empty.Agents())

	_, err = NewLoader(store).Load(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseFixture(t *testing.T) {
	store, err := ParseFixture([]byte(`
datasets:
  - id: 10
    agents:
      - {order: 1, name: "Uhlemann, Steffi"}
    roles:
      - {agentOrder: 1, role: Creator}
    affiliations:
      - {agentOrder: 1, subOrder: 1, name: GFZ, identifier: "https://ror.org/04z8jg394", identifierType: ROR}
    contactInfo:
      - {agentOrder: 4, email: steffi@example.org, name: "Uhlemann Steffi"}
`))
	require.NoError(t, err)

	snap, err := NewLoader(store).Load(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, snap.Agents(), 1)
	assert.Equal(t, "ROR", snap.AffiliationsFor(1)[0].IdentifierType)
	assert.Equal(t, "Uhlemann Steffi", snap.AllContactInfo()[0].Name)

	_, err = ParseFixture([]byte("datasets:\n  - id: 0\n"))
	assert.ErrorContains(t, err, "id must be positive")
}

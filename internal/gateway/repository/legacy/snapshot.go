package legacy

import (
	"sort"

	"metabridge/internal/gateway/entity"
)

// Snapshot is the complete, immutable set of legacy rows for one dataset,
// indexed by agent order. Accessors return copies.
type Snapshot struct {
	datasetID    entity.DatasetID
	agents       []entity.LegacyAgent
	roles        map[int][]entity.LegacyRole
	affiliations map[int][]entity.LegacyAffiliation
	contactByKey map[int]entity.LegacyContactInfo
	contacts     []entity.LegacyContactInfo
}

// NewSnapshot indexes the given rows. Agents are stable-sorted by order and
// affiliations by sub-order, so ties keep the order the rows were supplied
// in. Rows belonging to other datasets are ignored. The first contact row
// wins for a repeated agent order.
func NewSnapshot(
	id entity.DatasetID,
	agents []entity.LegacyAgent,
	roles []entity.LegacyRole,
	affiliations []entity.LegacyAffiliation,
	contacts []entity.LegacyContactInfo,
) *Snapshot {
	s := &Snapshot{
		datasetID:    id,
		agents:       make([]entity.LegacyAgent, 0, len(agents)),
		roles:        make(map[int][]entity.LegacyRole),
		affiliations: make(map[int][]entity.LegacyAffiliation),
		contactByKey: make(map[int]entity.LegacyContactInfo),
		contacts:     make([]entity.LegacyContactInfo, 0, len(contacts)),
	}
	for _, a := range agents {
		if a.ResourceID == id {
			s.agents = append(s.agents, a)
		}
	}
	sort.SliceStable(s.agents, func(i, j int) bool { return s.agents[i].Order < s.agents[j].Order })

	for _, r := range roles {
		if r.ResourceID == id {
			s.roles[r.AgentOrder] = append(s.roles[r.AgentOrder], r)
		}
	}
	for _, a := range affiliations {
		if a.ResourceID == id {
			s.affiliations[a.AgentOrder] = append(s.affiliations[a.AgentOrder], a)
		}
	}
	for order := range s.affiliations {
		rows := s.affiliations[order]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].SubOrder < rows[j].SubOrder })
	}
	for _, c := range contacts {
		if c.ResourceID != id {
			continue
		}
		s.contacts = append(s.contacts, c)
		if _, ok := s.contactByKey[c.AgentOrder]; !ok {
			s.contactByKey[c.AgentOrder] = c
		}
	}
	sort.SliceStable(s.contacts, func(i, j int) bool { return s.contacts[i].AgentOrder < s.contacts[j].AgentOrder })
	return s
}

func (s *Snapshot) DatasetID() entity.DatasetID { return s.datasetID }

// Agents returns all agent rows in ascending order.
func (s *Snapshot) Agents() []entity.LegacyAgent {
	return append([]entity.LegacyAgent(nil), s.agents...)
}

// AgentAt returns the first agent row with the given order.
func (s *Snapshot) AgentAt(order int) (entity.LegacyAgent, bool) {
	for _, a := range s.agents {
		if a.Order == order {
			return a, true
		}
	}
	return entity.LegacyAgent{}, false
}

// RolesFor returns the role rows of one agent slot in row order.
func (s *Snapshot) RolesFor(agentOrder int) []entity.LegacyRole {
	return append([]entity.LegacyRole(nil), s.roles[agentOrder]...)
}

// AffiliationsFor returns the affiliation rows of one agent slot by sub-order.
func (s *Snapshot) AffiliationsFor(agentOrder int) []entity.LegacyAffiliation {
	return append([]entity.LegacyAffiliation(nil), s.affiliations[agentOrder]...)
}

// ContactInfoFor is the direct (dataset, agent order) key join.
func (s *Snapshot) ContactInfoFor(agentOrder int) (entity.LegacyContactInfo, bool) {
	c, ok := s.contactByKey[agentOrder]
	return c, ok
}

// AllContactInfo returns every contact row of the dataset by agent order.
func (s *Snapshot) AllContactInfo() []entity.LegacyContactInfo {
	return append([]entity.LegacyContactInfo(nil), s.contacts...)
}

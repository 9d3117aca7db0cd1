package contributor

import (
	"strings"

	"go.uber.org/zap"

	"metabridge/internal/gateway/entity"
	"metabridge/internal/gateway/repository/legacy"
	"metabridge/internal/namematch"
	"metabridge/internal/taxonomy"
)

const (
	identifierTypeROR   = "ROR"
	identifierTypeORCID = "ORCID"
)

// Stats summarizes one consolidation pass.
type Stats struct {
	Agents       int
	Emitted      int
	Dropped      int
	DirectMatch  int
	FuzzyMatch   int
	UnknownRoles int
}

// Consolidator turns a dataset snapshot into the ordered contributor list.
// It is stateless apart from its immutable role table.
type Consolidator struct {
	roles  *taxonomy.Mapper
	logger *zap.Logger
}

func NewConsolidator(roles *taxonomy.Mapper, logger *zap.Logger) *Consolidator {
	if roles == nil {
		roles = taxonomy.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consolidator{roles: roles, logger: logger}
}

// Consolidate emits one contributor per agent row that has at least one
// role, in ascending agent order. Agent rows are never merged, even when
// two of them describe the same person.
func (c *Consolidator) Consolidate(snap *legacy.Snapshot) ([]entity.Contributor, Stats) {
	agents := snap.Agents()
	stats := Stats{Agents: len(agents)}
	out := make([]entity.Contributor, 0, len(agents))
	for _, agent := range agents {
		contributor, ok := c.build(snap, agent, &stats)
		if !ok {
			stats.Dropped++
			continue
		}
		out = append(out, contributor)
	}
	stats.Emitted = len(out)
	return out, stats
}

func (c *Consolidator) build(snap *legacy.Snapshot, agent entity.LegacyAgent, stats *Stats) (entity.Contributor, bool) {
	roles, institutional := c.canonicalRoles(snap.DatasetID(), agent, snap.RolesFor(agent.Order), stats)
	if len(roles) == 0 {
		return entity.Contributor{}, false
	}

	out := entity.Contributor{
		Type:         entity.ContributorPerson,
		Name:         displayName(agent),
		Affiliations: affiliations(snap.AffiliationsFor(agent.Order)),
		Roles:        roles,
	}
	if institutional {
		out.Type = entity.ContributorInstitution
		out.InstitutionName = optional(out.Name)
	} else {
		out.GivenName = optional(agent.FirstName)
		out.FamilyName = optional(agent.LastName)
	}
	if strings.EqualFold(strings.TrimSpace(agent.IdentifierType), identifierTypeORCID) {
		if orcid := optional(agent.Identifier); orcid != nil {
			out.Orcid = orcid
			out.OrcidType = optional(identifierTypeORCID)
		}
	}

	info, found, fuzzy := resolveContact(snap, agent)
	if found {
		out.Email = optional(info.Email)
		out.Website = optional(info.Website)
		if fuzzy {
			stats.FuzzyMatch++
		} else {
			stats.DirectMatch++
		}
	}
	out.IsContact = found || hasSlug(roles, taxonomy.SlugContactPerson)
	return out, true
}

// canonicalRoles maps the agent's role rows to slugs, keeping first
// occurrence order and dropping duplicates and blank rows.
func (c *Consolidator) canonicalRoles(id entity.DatasetID, agent entity.LegacyAgent, rows []entity.LegacyRole, stats *Stats) ([]string, bool) {
	slugs := make([]string, 0, len(rows))
	institutional := false
	for _, row := range rows {
		legacyRole := strings.TrimSpace(row.Role)
		if legacyRole == "" {
			continue
		}
		role, known := c.roles.Lookup(legacyRole)
		if !known {
			role = c.roles.Canonicalize(legacyRole)
			stats.UnknownRoles++
			c.logger.Warn("unknown legacy role",
				zap.Int64("dataset_id", id.Int64()),
				zap.Int("agent_order", agent.Order),
				zap.String("role", legacyRole),
				zap.String("slug", role.Slug))
		}
		if role.Slug == "" {
			continue
		}
		institutional = institutional || role.Institutional
		if !hasSlug(slugs, role.Slug) {
			slugs = append(slugs, role.Slug)
		}
	}
	return slugs, institutional
}

// resolveContact tries the direct (dataset, agent order) join first and only
// then scans every contact row of the dataset for a name match.
func resolveContact(snap *legacy.Snapshot, agent entity.LegacyAgent) (entity.LegacyContactInfo, bool, bool) {
	if info, ok := snap.ContactInfoFor(agent.Order); ok {
		return info, true, false
	}
	for _, info := range snap.AllContactInfo() {
		if info.AgentOrder == agent.Order {
			continue
		}
		owner := contactOwnerName(snap, info)
		if namematch.IsContactMatch(agent.Name, agent.FirstName, agent.LastName, owner) {
			return info, true, true
		}
	}
	return entity.LegacyContactInfo{}, false, false
}

// contactOwnerName prefers the name stored on the contact row and falls back
// to the agent the row is keyed to.
func contactOwnerName(snap *legacy.Snapshot, info entity.LegacyContactInfo) string {
	if name := strings.TrimSpace(info.Name); name != "" {
		return name
	}
	owner, ok := snap.AgentAt(info.AgentOrder)
	if !ok {
		return ""
	}
	return displayName(owner)
}

func affiliations(rows []entity.LegacyAffiliation) []entity.Affiliation {
	out := make([]entity.Affiliation, 0, len(rows))
	for _, row := range rows {
		value := strings.TrimSpace(row.Name)
		if value == "" {
			continue
		}
		aff := entity.Affiliation{Value: value}
		if strings.EqualFold(strings.TrimSpace(row.IdentifierType), identifierTypeROR) {
			aff.RorID = optional(row.Identifier)
		}
		out = append(out, aff)
	}
	return out
}

func displayName(agent entity.LegacyAgent) string {
	if name := strings.TrimSpace(agent.Name); name != "" {
		return name
	}
	return namematch.StructuredName(agent.FirstName, agent.LastName)
}

func hasSlug(slugs []string, slug string) bool {
	for _, s := range slugs {
		if s == slug {
			return true
		}
	}
	return false
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

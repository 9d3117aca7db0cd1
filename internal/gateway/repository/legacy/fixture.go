package legacy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"metabridge/internal/gateway/entity"
)

type fixtureAgent struct {
	Order          int    `yaml:"order"`
	Name           string `yaml:"name"`
	FirstName      string `yaml:"firstname"`
	LastName       string `yaml:"lastname"`
	Identifier     string `yaml:"identifier"`
	IdentifierType string `yaml:"identifierType"`
}

type fixtureRole struct {
	AgentOrder int    `yaml:"agentOrder"`
	Role       string `yaml:"role"`
}

type fixtureAffiliation struct {
	AgentOrder     int    `yaml:"agentOrder"`
	SubOrder       int    `yaml:"subOrder"`
	Name           string `yaml:"name"`
	Identifier     string `yaml:"identifier"`
	IdentifierType string `yaml:"identifierType"`
}

type fixtureContact struct {
	AgentOrder int    `yaml:"agentOrder"`
	Email      string `yaml:"email"`
	Website    string `yaml:"website"`
	Name       string `yaml:"name"`
}

type fixtureDataset struct {
	ID           int64                `yaml:"id"`
	Agents       []fixtureAgent       `yaml:"agents"`
	Roles        []fixtureRole        `yaml:"roles"`
	Affiliations []fixtureAffiliation `yaml:"affiliations"`
	ContactInfo  []fixtureContact     `yaml:"contactInfo"`
}

type fixtureDoc struct {
	Datasets []fixtureDataset `yaml:"datasets"`
}

// LoadFixture builds a MemoryStore from a YAML file listing datasets and
// their legacy rows.
func LoadFixture(path string) (*MemoryStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	return ParseFixture(raw)
}

func ParseFixture(raw []byte) (*MemoryStore, error) {
	var doc fixtureDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	s := NewMemoryStore()
	for i, d := range doc.Datasets {
		id := entity.DatasetID(d.ID)
		if !id.Valid() {
			return nil, fmt.Errorf("datasets[%d]: id must be positive", i)
		}
		s.AddDataset(id)
		for _, a := range d.Agents {
			s.AddAgent(entity.LegacyAgent{
				ResourceID:     id,
				Order:          a.Order,
				Name:           a.Name,
				FirstName:      a.FirstName,
				LastName:       a.LastName,
				Identifier:     a.Identifier,
				IdentifierType: a.IdentifierType,
			})
		}
		for _, r := range d.Roles {
			s.AddRole(entity.LegacyRole{ResourceID: id, AgentOrder: r.AgentOrder, Role: r.Role})
		}
		for _, a := range d.Affiliations {
			s.AddAffiliation(entity.LegacyAffiliation{
				ResourceID:     id,
				AgentOrder:     a.AgentOrder,
				SubOrder:       a.SubOrder,
				Name:           a.Name,
				Identifier:     a.Identifier,
				IdentifierType: a.IdentifierType,
			})
		}
		for _, c := range d.ContactInfo {
			s.AddContactInfo(entity.LegacyContactInfo{
				ResourceID: id,
				AgentOrder: c.AgentOrder,
				Email:      c.Email,
				Website:    c.Website,
				Name:       c.Name,
			})
		}
	}
	return s, nil
}

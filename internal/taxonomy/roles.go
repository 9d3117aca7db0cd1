// Package taxonomy maps legacy free-text role strings onto the canonical
// contributor role vocabulary.
package taxonomy

import (
	"strings"
	"unicode"
)

const (
	SlugCreator       = "creator"
	SlugContactPerson = "contact-person"
)

// Role is the canonical form of a legacy role string.
type Role struct {
	Slug          string `yaml:"slug" json:"slug"`
	Institutional bool   `yaml:"institutional" json:"institutional"`
}

// Entry pairs a legacy role spelling with its canonical form.
type Entry struct {
	Legacy string `json:"legacy"`
	Role   Role   `json:"role"`
}

var builtin = []Entry{
	{"Creator", Role{Slug: SlugCreator}},
	{"ContactPerson", Role{Slug: SlugContactPerson}},
	{"pointOfContact", Role{Slug: SlugContactPerson}},
	{"DataCollector", Role{Slug: "data-collector"}},
	{"DataCurator", Role{Slug: "data-curator"}},
	{"DataManager", Role{Slug: "data-manager"}},
	{"Distributor", Role{Slug: "distributor", Institutional: true}},
	{"Editor", Role{Slug: "editor"}},
	{"HostingInstitution", Role{Slug: "hosting-institution", Institutional: true}},
	{"Producer", Role{Slug: "producer"}},
	{"ProjectLeader", Role{Slug: "project-leader"}},
	{"ProjectManager", Role{Slug: "project-manager"}},
	{"ProjectMember", Role{Slug: "project-member"}},
	{"RegistrationAgency", Role{Slug: "registration-agency", Institutional: true}},
	{"RegistrationAuthority", Role{Slug: "registration-authority", Institutional: true}},
	{"RelatedPerson", Role{Slug: "related-person"}},
	{"Researcher", Role{Slug: "researcher"}},
	{"ResearchGroup", Role{Slug: "research-group", Institutional: true}},
	{"RightsHolder", Role{Slug: "rights-holder"}},
	{"Sponsor", Role{Slug: "sponsor", Institutional: true}},
	{"Supervisor", Role{Slug: "supervisor"}},
	{"WorkPackageLeader", Role{Slug: "work-package-leader"}},
	{"Other", Role{Slug: "other"}},
}

// Mapper is an immutable lookup table from legacy role strings to canonical
// roles. Lookups ignore case, whitespace, hyphens and underscores, so
// "Hosting Institution" and "hosting_institution" hit the HostingInstitution
// entry.
type Mapper struct {
	byKey   map[string]Role
	entries []Entry
}

// Default returns a Mapper over the built-in table.
func Default() *Mapper {
	return New(nil)
}

// New returns a Mapper over the built-in table with extra entries layered on
// top. Later entries win over earlier ones for the same key.
func New(extra []Entry) *Mapper {
	m := &Mapper{byKey: make(map[string]Role, len(builtin)+len(extra))}
	for _, e := range builtin {
		m.add(e)
	}
	for _, e := range extra {
		m.add(e)
	}
	return m
}

func (m *Mapper) add(e Entry) {
	key := lookupKey(e.Legacy)
	if key == "" || strings.TrimSpace(e.Role.Slug) == "" {
		return
	}
	if _, exists := m.byKey[key]; !exists {
		m.entries = append(m.entries, e)
	} else {
		for i := range m.entries {
			if lookupKey(m.entries[i].Legacy) == key {
				m.entries[i] = e
			}
		}
	}
	m.byKey[key] = e.Role
}

// Lookup returns the canonical role for a known legacy string.
func (m *Mapper) Lookup(legacy string) (Role, bool) {
	if m == nil {
		return Role{}, false
	}
	r, ok := m.byKey[lookupKey(legacy)]
	return r, ok
}

// Canonicalize is total: unknown legacy roles map to a person role whose slug
// is the lowercase-hyphenated legacy string. A role with no letters or digits
// keeps its trimmed, lowercased spelling. Only a blank role yields "".
func (m *Mapper) Canonicalize(legacy string) Role {
	if r, ok := m.Lookup(legacy); ok {
		return r
	}
	if slug := Slugify(legacy); slug != "" {
		return Role{Slug: slug}
	}
	return Role{Slug: strings.ToLower(strings.TrimSpace(legacy))}
}

// Entries lists the table in definition order.
func (m *Mapper) Entries() []Entry {
	if m == nil {
		return nil
	}
	return append([]Entry(nil), m.entries...)
}

func lookupKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Slugify lowercases s and inserts hyphens at camel-case boundaries and in
// place of any run of non-alphanumeric characters: "DataCurator" becomes
// "data-curator", "Work Package_Leader" becomes "work-package-leader".
func Slugify(s string) string {
	runes := []rune(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(runes) + 4)
	pendingHyphen := false
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingHyphen = b.Len() > 0
			continue
		}
		if unicode.IsUpper(r) && i > 0 && b.Len() > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				pendingHyphen = true
			}
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

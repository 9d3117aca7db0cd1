package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileEntry struct {
	Legacy        string `yaml:"legacy"`
	Slug          string `yaml:"slug"`
	Institutional bool   `yaml:"institutional"`
}

type fileDoc struct {
	Roles []fileEntry `yaml:"roles"`
}

// LoadFile returns a Mapper over the built-in table extended with the roles
// listed in a YAML file:
//
//	roles:
//	  - legacy: Funder
//	    slug: funder
//	    institutional: true
//
// An empty path yields the built-in table.
func LoadFile(path string) (*Mapper, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read %s: %w", path, err)
	}
	extra, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: %s: %w", path, err)
	}
	return New(extra), nil
}

// Parse decodes YAML role entries.
func Parse(raw []byte) ([]Entry, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	out := make([]Entry, 0, len(doc.Roles))
	for i, fe := range doc.Roles {
		legacy := strings.TrimSpace(fe.Legacy)
		if legacy == "" {
			return nil, fmt.Errorf("roles[%d]: legacy is required", i)
		}
		slug := strings.TrimSpace(fe.Slug)
		if slug == "" {
			slug = Slugify(legacy)
		}
		out = append(out, Entry{Legacy: legacy, Role: Role{Slug: slug, Institutional: fe.Institutional}})
	}
	return out, nil
}

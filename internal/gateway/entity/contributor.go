package entity

type ContributorType string

const (
	ContributorPerson      ContributorType = "Person"
	ContributorInstitution ContributorType = "Institution"
)

// Affiliation of a resolved contributor. RorID is set only for ROR identifiers.
type Affiliation struct {
	Value string  `json:"value"`
	RorID *string `json:"rorId"`
}

// Contributor is the resolved, typed record for one legacy agent slot.
type Contributor struct {
	Type            ContributorType `json:"type"`
	GivenName       *string         `json:"givenName"`
	FamilyName      *string         `json:"familyName"`
	Name            string          `json:"name"`
	InstitutionName *string         `json:"institutionName"`
	Affiliations    []Affiliation   `json:"affiliations"`
	Roles           []string        `json:"roles"`
	Orcid           *string         `json:"orcid"`
	OrcidType       *string         `json:"orcidType"`
	IsContact       bool            `json:"isContact"`
	Email           *string         `json:"email"`
	Website         *string         `json:"website"`
}

// Author is the author-view shape. Legacy creators are always persons, so it
// carries no type or institution name.
type Author struct {
	GivenName    *string       `json:"givenName"`
	FamilyName   *string       `json:"familyName"`
	Name         string        `json:"name"`
	Affiliations []Affiliation `json:"affiliations"`
	Roles        []string      `json:"roles"`
	Orcid        *string       `json:"orcid"`
	OrcidType    *string       `json:"orcidType"`
	IsContact    bool          `json:"isContact"`
	Email        *string       `json:"email"`
	Website      *string       `json:"website"`
}

// HasRole reports whether slug is among the contributor's roles.
func (c Contributor) HasRole(slug string) bool {
	for _, r := range c.Roles {
		if r == slug {
			return true
		}
	}
	return false
}

// AsAuthor reshapes c into the author view.
func (c Contributor) AsAuthor() Author {
	return Author{
		GivenName:    c.GivenName,
		FamilyName:   c.FamilyName,
		Name:         c.Name,
		Affiliations: append([]Affiliation{}, c.Affiliations...),
		Roles:        append([]string{}, c.Roles...),
		Orcid:        c.Orcid,
		OrcidType:    c.OrcidType,
		IsContact:    c.IsContact,
		Email:        c.Email,
		Website:      c.Website,
	}
}

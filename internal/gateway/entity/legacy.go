package entity

// Legacy rows mirror the denormalized agent tables one-to-one. Optional text
// columns are carried as empty strings when NULL.

// LegacyAgent is one contributor slot on a dataset. Order may repeat.
type LegacyAgent struct {
	ResourceID     DatasetID
	Order          int
	Name           string
	FirstName      string
	LastName       string
	Identifier     string
	IdentifierType string
}

// LegacyRole is a free-text role attached to an agent slot.
type LegacyRole struct {
	ResourceID DatasetID
	AgentOrder int
	Role       string
}

// LegacyAffiliation is an affiliation of an agent slot, ordered by SubOrder.
type LegacyAffiliation struct {
	ResourceID     DatasetID
	AgentOrder     int
	SubOrder       int
	Name           string
	Identifier     string
	IdentifierType string
}

// LegacyContactInfo holds contact details keyed by agent order. The key is
// not reliable in historical data; Name, when present, is the denormalized
// name of the person the row was entered for.
type LegacyContactInfo struct {
	ResourceID DatasetID
	AgentOrder int
	Email      string
	Website    string
	Name       string
}

package legacy

import (
	"context"
	"errors"
	"fmt"

	"metabridge/internal/gateway/entity"
)

// Store exposes the read-only legacy agent relations of one dataset. Every
// method returns rows in ascending agent order; Affiliations additionally
// orders by sub-order within an agent.
type Store interface {
	DatasetExists(ctx context.Context, id entity.DatasetID) (bool, error)
	Agents(ctx context.Context, id entity.DatasetID) ([]entity.LegacyAgent, error)
	Roles(ctx context.Context, id entity.DatasetID) ([]entity.LegacyRole, error)
	Affiliations(ctx context.Context, id entity.DatasetID) ([]entity.LegacyAffiliation, error)
	ContactInfo(ctx context.Context, id entity.DatasetID) ([]entity.LegacyContactInfo, error)
}

// Loader produces the immutable per-dataset snapshot the resolver works on.
type Loader interface {
	Load(ctx context.Context, id entity.DatasetID) (*Snapshot, error)
}

var (
	ErrNotFound    = errors.New("dataset not found")
	ErrUnavailable = errors.New("legacy store unavailable")
)

// QueryError wraps a failed store operation. It matches ErrUnavailable with
// errors.Is as well as the underlying cause.
type QueryError struct {
	Op        string
	DatasetID entity.DatasetID
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("legacy %s for dataset %d: %v", e.Op, e.DatasetID, e.Err)
}

func (e *QueryError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

func queryErr(op string, id entity.DatasetID, err error) error {
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	return &QueryError{Op: op, DatasetID: id, Err: err}
}

// StoreLoader loads snapshots straight from a Store, fetching all four row
// sets before returning.
type StoreLoader struct {
	store Store
}

func NewLoader(store Store) *StoreLoader {
	return &StoreLoader{store: store}
}

func (l *StoreLoader) Load(ctx context.Context, id entity.DatasetID) (*Snapshot, error) {
	if l == nil || l.store == nil {
		return nil, fmt.Errorf("legacy loader is not configured")
	}
	exists, err := l.store.DatasetExists(ctx, id)
	if err != nil {
		return nil, queryErr("dataset lookup", id, err)
	}
	if !exists {
		return nil, fmt.Errorf("dataset %d: %w", id, ErrNotFound)
	}
	agents, err := l.store.Agents(ctx, id)
	if err != nil {
		return nil, queryErr("agents", id, err)
	}
	roles, err := l.store.Roles(ctx, id)
	if err != nil {
		return nil, queryErr("roles", id, err)
	}
	affiliations, err := l.store.Affiliations(ctx, id)
	if err != nil {
		return nil, queryErr("affiliations", id, err)
	}
	contacts, err := l.store.ContactInfo(ctx, id)
	if err != nil {
		return nil, queryErr("contact info", id, err)
	}
	return NewSnapshot(id, agents, roles, affiliations, contacts), nil
}

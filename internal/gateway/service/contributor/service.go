// Package contributor resolves legacy agent records into ordered
// contributor and author lists.
package contributor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"metabridge/internal/gateway/entity"
	"metabridge/internal/gateway/repository/legacy"
	"metabridge/internal/taxonomy"
)

var ErrInvalidDatasetID = errors.New("dataset id must be a positive integer")

// Service is the entry point used by the transport layer. Each call loads one
// snapshot and consolidates it synchronously; nothing is shared between
// calls except the loader.
type Service struct {
	loader       legacy.Loader
	consolidator *Consolidator
	logger       *zap.Logger
}

func New(loader legacy.Loader, roles *taxonomy.Mapper, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		loader:       loader,
		consolidator: NewConsolidator(roles, logger),
		logger:       logger,
	}
}

// Resolve returns the consolidated contributor list of a dataset. A dataset
// without agents yields an empty list; a missing dataset yields an error
// matching legacy.ErrNotFound; store failures match legacy.ErrUnavailable.
func (s *Service) Resolve(ctx context.Context, id entity.DatasetID) ([]entity.Contributor, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDatasetID, id)
	}
	snap, err := s.loader.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve dataset %d: %w", id, err)
	}
	contributors, stats := s.consolidator.Consolidate(snap)
	s.logger.Debug("resolved contributors",
		zap.Int64("dataset_id", id.Int64()),
		zap.Int("agents", stats.Agents),
		zap.Int("emitted", stats.Emitted),
		zap.Int("dropped", stats.Dropped),
		zap.Int("direct_contacts", stats.DirectMatch),
		zap.Int("fuzzy_contacts", stats.FuzzyMatch),
		zap.Int("unknown_roles", stats.UnknownRoles))
	return contributors, nil
}

func (s *Service) ResolveContributors(ctx context.Context, id entity.DatasetID) ([]entity.Contributor, error) {
	contributors, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	return ContributorsOf(contributors), nil
}

func (s *Service) ResolveAuthors(ctx context.Context, id entity.DatasetID) ([]entity.Author, error) {
	contributors, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	return AuthorsOf(contributors), nil
}

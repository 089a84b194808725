package availability

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	catalogRepo "clinicbook/database/repository/catalog"
	"clinicbook/metrics"
	"clinicbook/models"
)

// Service resolves availability with a named strategy, reading through the
// cache when one is configured. It holds no mutable state and is safe for
// concurrent use.
type Service struct {
	catalog    catalogRepo.CatalogRepository
	strategies map[string]Strategy
	cache      *Cache
	logger     *zap.Logger
}

// NewService registers strategies by name. cache may be nil.
func NewService(logger *zap.Logger, catalog catalogRepo.CatalogRepository, cache *Cache, strategies ...Strategy) *Service {
	byName := make(map[string]Strategy, len(strategies))
	for _, s := range strategies {
		byName[s.Name()] = s
	}
	return &Service{
		catalog:    catalog,
		strategies: byName,
		cache:      cache,
		logger:     logger,
	}
}

// Resolve returns every treatment with the slots still free on date. The
// date is an opaque match key; an unknown date yields full availability.
func (s *Service) Resolve(ctx context.Context, strategy, date string) ([]models.Availability, error) {
	st, ok := s.strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("unknown availability strategy %q", strategy)
	}

	if s.cache == nil {
		return s.compute(ctx, st, date)
	}

	gen, err := s.cache.Generation(ctx, date)
	if err != nil {
		s.logger.Warn("availability cache unavailable", zap.Error(err))
		return s.compute(ctx, st, date)
	}

	cached, hit, err := s.cache.Get(ctx, strategy, date, gen)
	if err != nil {
		s.logger.Warn("availability cache unavailable", zap.Error(err))
	} else if hit {
		metrics.IncAvailability(strategy, "hit")
		return cached, nil
	}

	result, err := s.compute(ctx, st, date)
	if err != nil {
		return nil, err
	}

	// A booking accepted while we computed bumps the generation; the stale
	// result is then dropped instead of cached.
	stored, err := s.cache.Set(ctx, strategy, date, gen, result)
	if err != nil {
		s.logger.Warn("availability cache write failed", zap.Error(err))
	} else if !stored {
		s.logger.Debug("availability changed while resolving; result not cached",
			zap.String("strategy", strategy), zap.String("date", date))
	}
	return result, nil
}

func (s *Service) compute(ctx context.Context, st Strategy, date string) ([]models.Availability, error) {
	result, err := st.Remaining(ctx, date)
	if err != nil {
		return nil, err
	}
	metrics.IncAvailability(st.Name(), "miss")
	return result, nil
}

// TreatmentNames lists the catalog's treatment names.
func (s *Service) TreatmentNames(ctx context.Context) ([]models.TreatmentName, error) {
	return s.catalog.ListTreatmentNames(ctx)
}

package catalog

import (
	"context"

	"github.com/reclaimip/backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Provider supplies candidate patent records for a query. Every record is
// returned with a relevance score freshly computed against the current
// query, whatever the data source.
type Provider interface {
	Search(ctx context.Context, description string, concepts []string, max int) ([]models.Patent, error)
}

// FallbackProvider tries the primary provider once and degrades to the
// fallback when the primary errors or returns nothing. It never fails as
// long as the fallback succeeds, so live-backend outages only cost data
// freshness.
type FallbackProvider struct {
	primary  Provider
	fallback Provider
	logger   *logrus.Logger
}

func NewFallbackProvider(primary, fallback Provider, logger *logrus.Logger) *FallbackProvider {
	return &FallbackProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (p *FallbackProvider) Search(ctx context.Context, description string, concepts []string, max int) ([]models.Patent, error) {
	patents, err := p.primary.Search(ctx, description, concepts, max)
	if err != nil {
		p.logger.WithError(err).Warn("Live patent search failed, using curated catalog")
		return p.fallback.Search(ctx, description, concepts, max)
	}
	if len(patents) == 0 {
		p.logger.Debug("Live patent search returned no hits, using curated catalog")
		return p.fallback.Search(ctx, description, concepts, max)
	}
	return patents, nil
}

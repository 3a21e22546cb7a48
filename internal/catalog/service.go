package catalog

import (
	"context"
	"net/url"
	"time"

	"github.com/simplefs/catalog-backend/internal/options"
	pkgerrors "github.com/simplefs/catalog-backend/pkg/errors"
	"github.com/simplefs/catalog-backend/pkg/logger"
	"github.com/simplefs/catalog-backend/pkg/metrics"
	"github.com/simplefs/catalog-backend/pkg/pagination"
)

// Service runs the full filter pipeline: parse, compile, execute, aggregate
// and summarize.
type Service struct {
	opts         *options.Service
	repo         *Repository
	metrics      *metrics.SearchMetrics
	candidateCap int
	logg         *logger.Logger
}

// NewService builds the catalog search service. candidateCap bounds the
// candidate set of every search.
func NewService(opts *options.Service, repo *Repository, m *metrics.SearchMetrics, candidateCap int, logg *logger.Logger) *Service {
	return &Service{
		opts:         opts,
		repo:         repo,
		metrics:      m,
		candidateCap: candidateCap,
		logg:         logg,
	}
}

// Search evaluates raw filter parameters against the catalog. Malformed
// criteria are dropped, never fatal; the only error surfaced is the store
// being unreachable. An empty filter returns the unfiltered, capped
// candidate set.
func (s *Service) Search(ctx context.Context, params url.Values) (*SearchResult, error) {
	start := time.Now()
	result, dropped, err := s.search(ctx, params)
	if err != nil {
		s.metrics.ObserveSearch("error", time.Since(start), 0)
		return nil, err
	}
	s.metrics.ObserveSearch("ok", time.Since(start), result.Total)
	s.metrics.AddDroppedCriteria(dropped)
	return result, nil
}

func (s *Service) search(ctx context.Context, params url.Values) (*SearchResult, int, error) {
	catalog, err := s.opts.Load(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter := ParseFilter(params, catalog)
	pred := Compile(filter, catalog)
	dropped := filter.Dropped + pred.Dropped
	if dropped > 0 {
		s.debug(ctx, "dropped malformed filter criteria", dropped)
	}

	ids, err := s.repo.FindCandidates(ctx, pred, s.candidateCap)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving candidates")
	}

	products, err := s.repo.FindProducts(ctx, ids)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading candidate products")
	}
	stats, err := s.repo.AggregateStats(ctx, ids)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregating product stats")
	}
	attrs, err := s.repo.AttributeRows(ctx, ids)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading attribute rows")
	}

	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		st := stats[p.ID]
		rows = append(rows, ProductRow{
			ID:             p.ID,
			Name:           p.Name,
			Article:        p.Article,
			SkuCount:       st.SkuCount,
			TotalStock:     st.TotalStock,
			OptionsSummary: FormatSummary(attrs[p.ID], catalog),
		})
	}
	return &SearchResult{Products: rows, Total: len(rows)}, dropped, nil
}

// ListItems returns one page of the admin product listing.
func (s *Service) ListItems(ctx context.Context, page pagination.Page) (*ItemsPage, error) {
	products, total, err := s.repo.ListProducts(ctx, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	data := make([]ItemRow, 0, len(products))
	for _, p := range products {
		data = append(data, ItemRow{ID: p.ID, Name: p.Name})
	}
	return &ItemsPage{Data: data, Meta: pagination.MetaFor(page, total)}, nil
}

// ListOptions returns the option catalog for clients building filter UIs.
func (s *Service) ListOptions(ctx context.Context) ([]options.Option, error) {
	catalog, err := s.opts.Load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Options, nil
}

func (s *Service) debug(ctx context.Context, msg string, dropped int) {
	if s.logg == nil {
		return
	}
	s.logg.Debug(s.logg.WithField(ctx, "dropped", dropped), msg)
}

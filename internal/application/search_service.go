package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	animalDomain "github.com/adotefacil/service-adoption/internal/domain/animal"
	"github.com/adotefacil/service-adoption/pkg/domain"
)

// creationDateLayouts are tried in order when parsing a textual search date.
var creationDateLayouts = []string{"2006/01/02", "02/01/2006"}

// SearchService merges store listings with the external breed catalogs. For
// every query variant the result is the ordered concatenation of store
// matches followed by each source's matches in registration order, with no
// de-duplication: a listing indexed both in the store and in a catalog
// appears twice. Any failing source fails the whole query.
type SearchService struct {
	repo    animalDomain.Repository
	sources []animalDomain.Source
	logger  *zap.Logger
}

// NewSearchService creates a SearchService over the store and the given
// external sources. Source order determines result order.
func NewSearchService(repo animalDomain.Repository, logger *zap.Logger, sources ...animalDomain.Source) *SearchService {
	return &SearchService{repo: repo, sources: sources, logger: logger}
}

// FindAll returns every listing from the store and all sources.
func (s *SearchService) FindAll(ctx context.Context) ([]AnimalDTO, error) {
	return s.aggregate(ctx,
		func(ctx context.Context) ([]*animalDomain.Animal, error) {
			return s.repo.FindAll(ctx)
		},
		func(ctx context.Context, src animalDomain.Source) ([]*animalDomain.Animal, error) {
			return src.FetchAll(ctx)
		},
	)
}

// FindByTerm returns listings whose name or description contains the term
// (case-sensitive) across the store and all sources.
func (s *SearchService) FindByTerm(ctx context.Context, term string) ([]AnimalDTO, error) {
	if term == "" {
		return nil, domain.NewValidationError("search term is required")
	}
	return s.aggregate(ctx,
		func(ctx context.Context) ([]*animalDomain.Animal, error) {
			return s.repo.FindByTerm(ctx, term)
		},
		func(ctx context.Context, src animalDomain.Source) ([]*animalDomain.Animal, error) {
			return src.FindByTerm(ctx, term)
		},
	)
}

// FindByCategory returns listings with the exact category across the store
// and all sources.
func (s *SearchService) FindByCategory(ctx context.Context, category string) ([]AnimalDTO, error) {
	if category == "" {
		return nil, domain.NewValidationError("category is required")
	}
	return s.aggregate(ctx,
		func(ctx context.Context) ([]*animalDomain.Animal, error) {
			return s.repo.FindByCategory(ctx, category)
		},
		func(ctx context.Context, src animalDomain.Source) ([]*animalDomain.Animal, error) {
			return src.FindByCategory(ctx, category)
		},
	)
}

// FindByStatus returns listings with the given status across the store and
// all sources.
func (s *SearchService) FindByStatus(ctx context.Context, status string) ([]AnimalDTO, error) {
	parsed, err := animalDomain.ParseStatus(status)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	return s.aggregate(ctx,
		func(ctx context.Context) ([]*animalDomain.Animal, error) {
			return s.repo.FindByStatus(ctx, parsed)
		},
		func(ctx context.Context, src animalDomain.Source) ([]*animalDomain.Animal, error) {
			return src.FindByStatus(ctx, parsed)
		},
	)
}

// FindByCreationDate returns listings created on the given date. The input
// is tried as yyyy/MM/dd and then dd/MM/yyyy; the first layout that parses
// wins. The store query covers the whole local calendar day while the
// external sources match the parsed instant exactly. The asymmetry comes
// from the upstream contract and is kept for behavioral parity.
func (s *SearchService) FindByCreationDate(ctx context.Context, input string) ([]AnimalDTO, error) {
	at, err := ParseCreationDate(input)
	if err != nil {
		return nil, err
	}

	from := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	to := from.Add(24*time.Hour - time.Nanosecond)

	return s.aggregate(ctx,
		func(ctx context.Context) ([]*animalDomain.Animal, error) {
			return s.repo.FindByCreationDateRange(ctx, from, to)
		},
		func(ctx context.Context, src animalDomain.Source) ([]*animalDomain.Animal, error) {
			return src.FindByCreationDate(ctx, at)
		},
	)
}

// ParseCreationDate parses a textual search date, trying yyyy/MM/dd and then
// dd/MM/yyyy. Both failing yields a validation error.
func ParseCreationDate(input string) (time.Time, error) {
	for _, layout := range creationDateLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError("unparsable creation date: " + input)
}

// aggregate runs the store query and then each source query in order,
// concatenating the results. The first source error aborts the whole query;
// a degraded partial result is never returned.
func (s *SearchService) aggregate(
	ctx context.Context,
	storeQuery func(context.Context) ([]*animalDomain.Animal, error),
	sourceQuery func(context.Context, animalDomain.Source) ([]*animalDomain.Animal, error),
) ([]AnimalDTO, error) {
	stored, err := storeQuery(ctx)
	if err != nil {
		return nil, err
	}

	merged := make([]*animalDomain.Animal, 0, len(stored))
	merged = append(merged, stored...)

	for _, src := range s.sources {
		found, err := sourceQuery(ctx, src)
		if err != nil {
			s.logger.Error("external source query failed",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			return nil, err
		}
		merged = append(merged, found...)
	}

	return toAnimalDTOs(merged), nil
}

package breedapi

import (
	"context"
	"time"

	"github.com/adotefacil/service-adoption/internal/domain/animal"
)

// FindByTerm returns catalog entries whose name or description contains the
// term (case-sensitive).
func (c *Client) FindByTerm(ctx context.Context, term string) ([]*animal.Animal, error) {
	return c.filter(ctx, func(a *animal.Animal) bool {
		return a.MatchesTerm(term)
	})
}

// FindByCategory returns catalog entries with the exact category.
func (c *Client) FindByCategory(ctx context.Context, category string) ([]*animal.Animal, error) {
	return c.filter(ctx, func(a *animal.Animal) bool {
		return a.Category() == category
	})
}

// FindByStatus returns catalog entries with the exact status.
func (c *Client) FindByStatus(ctx context.Context, status animal.Status) ([]*animal.Animal, error) {
	return c.filter(ctx, func(a *animal.Animal) bool {
		return a.Status() == status
	})
}

// FindByCreationDate returns catalog entries whose creation date equals the
// given instant at millisecond granularity.
func (c *Client) FindByCreationDate(ctx context.Context, at time.Time) ([]*animal.Animal, error) {
	want := at.UnixMilli()
	return c.filter(ctx, func(a *animal.Animal) bool {
		return !a.CreationDate().IsZero() && a.CreationDate().UnixMilli() == want
	})
}

func (c *Client) filter(ctx context.Context, keep func(*animal.Animal) bool) ([]*animal.Animal, error) {
	all, err := c.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*animal.Animal, 0, len(all))
	for _, a := range all {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	animalDomain "github.com/adotefacil/service-adoption/internal/domain/animal"
	"github.com/adotefacil/service-adoption/pkg/domain"
)

// stubSource is an in-memory animal source for aggregation tests.
type stubSource struct {
	name    string
	animals []*animalDomain.Animal
	err     error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchAll(_ context.Context) ([]*animalDomain.Animal, error) {
	return s.animals, s.err
}

func (s *stubSource) FindByTerm(_ context.Context, term string) ([]*animalDomain.Animal, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*animalDomain.Animal
	for _, a := range s.animals {
		if a.MatchesTerm(term) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubSource) FindByCategory(_ context.Context, category string) ([]*animalDomain.Animal, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*animalDomain.Animal
	for _, a := range s.animals {
		if a.Category() == category {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubSource) FindByStatus(_ context.Context, status animalDomain.Status) ([]*animalDomain.Animal, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*animalDomain.Animal
	for _, a := range s.animals {
		if a.Status() == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubSource) FindByCreationDate(_ context.Context, at time.Time) ([]*animalDomain.Animal, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*animalDomain.Animal
	for _, a := range s.animals {
		if a.CreationDate().UnixMilli() == at.UnixMilli() {
			out = append(out, a)
		}
	}
	return out, nil
}

// stubStore implements the store side of the repository for search tests.
type stubStore struct {
	animals        []*animalDomain.Animal
	err            error
	lastRangeFrom  time.Time
	lastRangeTo    time.Time
	rangeWasCalled bool
}

func (s *stubStore) FindAll(_ context.Context) ([]*animalDomain.Animal, error) {
	return s.animals, s.err
}

func (s *stubStore) FindByTerm(_ context.Context, term string) ([]*animalDomain.Animal, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*animalDomain.Animal
	for _, a := range s.animals {
		if a.MatchesTerm(term) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubStore) FindByCategory(_ context.Context, category string) ([]*animalDomain.Animal, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*animalDomain.Animal
	for _, a := range s.animals {
		if a.Category() == category {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubStore) FindByStatus(_ context.Context, status animalDomain.Status) ([]*animalDomain.Animal, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*animalDomain.Animal
	for _, a := range s.animals {
		if a.Status() == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubStore) FindByCreationDateRange(_ context.Context, from, to time.Time) ([]*animalDomain.Animal, error) {
	s.rangeWasCalled = true
	s.lastRangeFrom = from
	s.lastRangeTo = to
	if s.err != nil {
		return nil, s.err
	}
	var out []*animalDomain.Animal
	for _, a := range s.animals {
		cd := a.CreationDate()
		if !cd.Before(from) && !cd.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

// The mutation side of the repository is not exercised by the search service.

func (s *stubStore) CreateOwned(context.Context, *animalDomain.Animal, uuid.UUID) error {
	panic("not used in search tests")
}
func (s *stubStore) FindByID(context.Context, string) (*animalDomain.Animal, error) {
	panic("not used in search tests")
}
func (s *stubStore) FindByOwner(context.Context, uuid.UUID) ([]*animalDomain.Animal, error) {
	panic("not used in search tests")
}
func (s *stubStore) Update(context.Context, uuid.UUID, *animalDomain.Animal) error {
	panic("not used in search tests")
}
func (s *stubStore) Delete(context.Context, uuid.UUID, string) error {
	panic("not used in search tests")
}
func (s *stubStore) SetStatus(context.Context, uuid.UUID, string, animalDomain.Status, animalDomain.Status) (*animalDomain.Animal, error) {
	panic("not used in search tests")
}
func (s *stubStore) OwnershipExists(context.Context, uuid.UUID, string) (bool, error) {
	panic("not used in search tests")
}
func (s *stubStore) ListAll(context.Context, int, int) ([]*animalDomain.Animal, int64, error) {
	panic("not used in search tests")
}
func (s *stubStore) CountByStatus(context.Context) (map[string]int64, error) {
	panic("not used in search tests")
}
func (s *stubStore) RemoveAllOwnedBy(context.Context, uuid.UUID) (int64, error) {
	panic("not used in search tests")
}

func listing(id, name, description, category string, created time.Time, status animalDomain.Status) *animalDomain.Animal {
	return animalDomain.Reconstruct(id, name, description, "img", category, created, status, 1)
}

func TestFindAll_ConcatenatesStoreThenSourcesInOrder(t *testing.T) {
	now := time.Now()
	store := &stubStore{animals: []*animalDomain.Animal{
		listing("s1", "Rex", "store dog", "dog", now, animalDomain.StatusAvailable),
	}}
	dogs := &stubSource{name: "dogs", animals: []*animalDomain.Animal{
		listing("d1", "Beagle", "hound", "dog", now, animalDomain.StatusAvailable),
	}}
	cats := &stubSource{name: "cats", animals: []*animalDomain.Animal{
		listing("c1", "Siamese", "vocal", "cat", now, animalDomain.StatusAvailable),
	}}

	svc := NewSearchService(store, zap.NewNop(), dogs, cats)

	result, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "s1", result[0].ID)
	assert.Equal(t, "d1", result[1].ID)
	assert.Equal(t, "c1", result[2].ID)
}

func TestFindByTerm_NoDeduplication(t *testing.T) {
	now := time.Now()
	store := &stubStore{animals: []*animalDomain.Animal{
		listing("dup", "Rex", "store copy", "dog", now, animalDomain.StatusAvailable),
	}}
	dogs := &stubSource{name: "dogs", animals: []*animalDomain.Animal{
		listing("dup", "Rex", "catalog copy", "dog", now, animalDomain.StatusAvailable),
	}}

	svc := NewSearchService(store, zap.NewNop(), dogs)

	result, err := svc.FindByTerm(context.Background(), "Rex")
	require.NoError(t, err)
	require.Len(t, result, 2, "a listing known to both the store and a catalog appears twice")
	assert.Equal(t, result[0].ID, result[1].ID)
}

func TestFindByTerm_CaseSensitive(t *testing.T) {
	store := &stubStore{animals: []*animalDomain.Animal{
		listing("s1", "Rex", "store dog", "dog", time.Now(), animalDomain.StatusAvailable),
	}}
	svc := NewSearchService(store, zap.NewNop())

	result, err := svc.FindByTerm(context.Background(), "rex")
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestFindByTerm_EmptyTerm(t *testing.T) {
	svc := NewSearchService(&stubStore{}, zap.NewNop())

	_, err := svc.FindByTerm(context.Background(), "")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestFindByStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewSearchService(&stubStore{}, zap.NewNop())

	_, err := svc.FindByStatus(context.Background(), "PENDING")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestAggregate_SourceErrorFailsWholeQuery(t *testing.T) {
	store := &stubStore{animals: []*animalDomain.Animal{
		listing("s1", "Rex", "store dog", "dog", time.Now(), animalDomain.StatusAvailable),
	}}
	broken := &stubSource{name: "dogs", err: errors.New("upstream 500")}

	svc := NewSearchService(store, zap.NewNop(), broken)

	result, err := svc.FindAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, result, "no partial result on source failure")
}

func TestAggregate_StoreErrorFailsWholeQuery(t *testing.T) {
	store := &stubStore{err: domain.NewPersistenceError("db down", errors.New("conn refused"))}
	dogs := &stubSource{name: "dogs"}

	svc := NewSearchService(store, zap.NewNop(), dogs)

	_, err := svc.FindAll(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindPersistence))
}

func TestParseCreationDate(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)

	got, err := ParseCreationDate("2024/03/05")
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	got, err = ParseCreationDate("05/03/2024")
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	_, err = ParseCreationDate("not-a-date")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = ParseCreationDate("2024-03-05")
	assert.Error(t, err)
}

func TestFindByCreationDate_StoreDayRangeSourceExactInstant(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)

	inStoreMorning := listing("s1", "Rex", "d", "dog", day.Add(9*time.Hour), animalDomain.StatusAvailable)
	inStoreNight := listing("s2", "Max", "d", "dog", day.Add(23*time.Hour+59*time.Minute), animalDomain.StatusAvailable)
	store := &stubStore{animals: []*animalDomain.Animal{inStoreMorning, inStoreNight}}

	atMidnight := listing("d1", "Beagle", "d", "dog", day, animalDomain.StatusAvailable)
	atNoon := listing("d2", "Husky", "d", "dog", day.Add(12*time.Hour), animalDomain.StatusAvailable)
	dogs := &stubSource{name: "dogs", animals: []*animalDomain.Animal{atMidnight, atNoon}}

	svc := NewSearchService(store, zap.NewNop(), dogs)

	result, err := svc.FindByCreationDate(context.Background(), "2024/03/05")
	require.NoError(t, err)

	// The store matches anywhere in the day; the source only matches the
	// parsed midnight instant.
	require.Len(t, result, 3)
	assert.Equal(t, "s1", result[0].ID)
	assert.Equal(t, "s2", result[1].ID)
	assert.Equal(t, "d1", result[2].ID)

	assert.True(t, store.rangeWasCalled)
	assert.True(t, store.lastRangeFrom.Equal(day))
	assert.True(t, store.lastRangeTo.Equal(day.Add(24*time.Hour-time.Nanosecond)))
}

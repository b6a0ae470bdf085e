//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	domoffer "offer-service/internal/domain/offer"
	"offer-service/internal/infra"
	"offer-service/internal/pkg/clock"
	"offer-service/internal/usecase/queries"
	"offer-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReadStore struct {
	byID       *queries.OfferView
	byIDErr    error
	all        []*queries.OfferView
	allErr     error
	searched   []*queries.OfferView
	searchErr  error
	searchText string
	searchHits int
}

func (s *fakeReadStore) FindByID(_ context.Context, _ uuid.UUID) (*queries.OfferView, error) {
	return s.byID, s.byIDErr
}

func (s *fakeReadStore) FindAll(_ context.Context) ([]*queries.OfferView, error) {
	return s.all, s.allErr
}

func (s *fakeReadStore) SearchByDescription(_ context.Context, text string) ([]*queries.OfferView, error) {
	s.searchHits++
	s.searchText = text
	return s.searched, s.searchErr
}

func TestGetByID(t *testing.T) {
	now := time.Now()

	t.Run("active offer is returned unchanged", func(t *testing.T) {
		store := &fakeReadStore{byID: builder.NewOfferBuilder().
			WithExpiryDate(now.Add(time.Hour)).BuildView()}
		q := queries.NewOfferQueries(store, clock.NewMockClock(now))

		view, err := q.GetByID(context.Background(), store.byID.ID)
		require.NoError(t, err)
		assert.Equal(t, domoffer.StatusActive, view.Status)
	})

	t.Run("elapsed expiry is corrected on read", func(t *testing.T) {
		store := &fakeReadStore{byID: builder.NewOfferBuilder().
			WithExpiryDate(now.Add(-time.Hour)).BuildView()}
		q := queries.NewOfferQueries(store, clock.NewMockClock(now))

		view, err := q.GetByID(context.Background(), store.byID.ID)
		require.NoError(t, err)
		assert.Equal(t, domoffer.StatusExpired, view.Status)
	})

	t.Run("cancelled status wins over correction", func(t *testing.T) {
		store := &fakeReadStore{byID: builder.NewOfferBuilder().
			WithStatus(domoffer.StatusCancelled).
			WithExpiryDate(now.Add(-time.Hour)).BuildView()}
		q := queries.NewOfferQueries(store, clock.NewMockClock(now))

		view, err := q.GetByID(context.Background(), store.byID.ID)
		require.NoError(t, err)
		assert.Equal(t, domoffer.StatusCancelled, view.Status)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		store := &fakeReadStore{byIDErr: infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)}
		q := queries.NewOfferQueries(store, clock.NewMockClock(now))

		_, err := q.GetByID(context.Background(), uuid.New())
		require.ErrorIs(t, err, queries.ErrOfferNotFound)
	})
}

func TestListAll(t *testing.T) {
	now := time.Now()

	t.Run("correction applies per row", func(t *testing.T) {
		store := &fakeReadStore{all: []*queries.OfferView{
			builder.NewOfferBuilder().WithExpiryDate(now.Add(time.Hour)).BuildView(),
			builder.NewOfferBuilder().WithExpiryDate(now.Add(-time.Hour)).BuildView(),
			builder.NewOfferBuilder().WithStatus(domoffer.StatusCancelled).
				WithExpiryDate(now.Add(-time.Hour)).BuildView(),
		}}
		q := queries.NewOfferQueries(store, clock.NewMockClock(now))

		views, err := q.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, domoffer.StatusActive, views[0].Status)
		assert.Equal(t, domoffer.StatusExpired, views[1].Status)
		assert.Equal(t, domoffer.StatusCancelled, views[2].Status)
	})

	t.Run("empty store yields empty list", func(t *testing.T) {
		q := queries.NewOfferQueries(&fakeReadStore{}, clock.NewMockClock(now))

		views, err := q.ListAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}

func TestListByDescription(t *testing.T) {
	now := time.Now()

	t.Run("blank search never touches the store", func(t *testing.T) {
		store := &fakeReadStore{}
		q := queries.NewOfferQueries(store, clock.NewMockClock(now))

		for _, text := range []string{"", "   ", "\t"} {
			views, err := q.ListByDescription(context.Background(), text)
			require.NoError(t, err)
			assert.NotNil(t, views)
			assert.Empty(t, views)
		}
		assert.Zero(t, store.searchHits)
	})

	t.Run("search results are corrected", func(t *testing.T) {
		store := &fakeReadStore{searched: []*queries.OfferView{
			builder.NewOfferBuilder().WithExpiryDate(now.Add(-time.Hour)).BuildView(),
		}}
		q := queries.NewOfferQueries(store, clock.NewMockClock(now))

		views, err := q.ListByDescription(context.Background(), "garden")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, domoffer.StatusExpired, views[0].Status)
		assert.Equal(t, "garden", store.searchText)
	})
}

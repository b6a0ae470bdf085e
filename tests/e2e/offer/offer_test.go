//go:build e2e

package offer_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	domoffer "offer-service/internal/domain/offer"
	"offer-service/internal/handler/dto/response"
	"offer-service/internal/infra/uow"
	"offer-service/internal/pkg/clock"
	"offer-service/internal/usecase/commands"
	"offer-service/tests/common/builder"
	"offer-service/tests/common/dbtest"
	"offer-service/tests/common/httptest"
	"offer-service/tests/common/testutil"
	"offer-service/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	offersURL      = "/api/offers"
	cancelOfferURL = "/api/offers/cancel/"
)

type OfferSuite struct {
	e2e.SharedSuite
}

func (s *OfferSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestOfferSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OfferSuite))
}

type offerListBody struct {
	Offers []*response.OfferResponse `json:"offers"`
}

// =============================================================================
// TestCreateOffer - Offer creation API tests
// =============================================================================

func (s *OfferSuite) TestCreateOffer() {
	s.Run("Normal case: Offer is created as active with Location header", func() {
		t := s.T()

		reqBody := builder.NewOfferBuilder().
			WithName("Spring Sale").
			WithDescription("20 percent off all garden furniture").
			WithPrice(decimal.NewFromFloat(19.99)).
			WithCurrency("GBP").
			WithExpiryDate(time.Now().Add(48 * time.Hour)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, offersURL, reqBody)
		require.Equal(t, http.StatusCreated, w.Code, "Should create offer successfully")

		var created response.OfferResponse
		err := httptest.DecodeResponseBody(t, w.Body, &created)
		require.NoError(t, err)
		require.NotEmpty(t, created.ID, "Offer ID should not be empty")

		httptest.AssertHeaders(t, w, map[string]string{
			"Location": offersURL + "/" + created.ID,
		})

		expected := &response.OfferResponse{
			Name:        "Spring Sale",
			Description: "20 percent off all garden furniture",
			Price:       "19.99",
			Currency:    "GBP",
			Status:      string(domoffer.StatusActive),
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.OfferResponse{}, "ID", "ExpiryDate", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &created, opts...); diff != "" {
			t.Errorf("Offer response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: Missing fields are reported with exact messages", func() {
		t := s.T()

		base := builder.NewOfferBuilder().BuildCreateRequestDTO()

		cases := []struct {
			name    string
			mutate  func(map[string]any)
			message string
		}{
			{"missing currency", testutil.Field("currency", nil), "Currency value can not be empty"},
			{"missing description", testutil.Field("description", nil), "Offer description can not be empty"},
			{"missing name", testutil.Field("name", nil), "Offer name can not be empty"},
			{"missing price", testutil.Field("price", nil), "Offer price can not be empty"},
			{"missing expiry date", testutil.Field("expiry_date", nil), "Expiry date is not valid"},
		}

		for _, tc := range cases {
			body := testutil.DtoMap(t, base, tc.mutate)
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, offersURL, body)
			httptest.AssertErrorResponse(t, w, http.StatusBadRequest, tc.message)
		}
	})

	s.Run("Error case: Past expiry date is rejected", func() {
		t := s.T()

		reqBody := builder.NewOfferBuilder().
			WithExpiryDate(time.Now().Add(-1 * time.Hour)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, offersURL, reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Expiry date is not valid")
	})
}

// =============================================================================
// TestGetOffer - Offer query API tests
// =============================================================================

func (s *OfferSuite) TestGetOffer() {
	s.Run("Normal case: Created offer can be fetched by id", func() {
		t := s.T()

		id := dbtest.InsertOffer(t, s.DB, builder.NewOfferBuilder().BuildFixture())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, offersURL+"/"+id.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got response.OfferResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))
		require.Equal(t, id.String(), got.ID)
		require.Equal(t, string(domoffer.StatusActive), got.Status)
	})

	s.Run("Normal case: Elapsed expiry is reported as expired without a write", func() {
		t := s.T()

		fixture := builder.NewOfferBuilder().
			WithExpiryDate(time.Now().Add(-1 * time.Hour)).
			BuildFixture()
		id := dbtest.InsertOffer(t, s.DB, fixture)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, offersURL+"/"+id.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got response.OfferResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))
		require.Equal(t, string(domoffer.StatusExpired), got.Status)

		// 読み取り補正は永続化しない
		require.Equal(t, string(domoffer.StatusActive), dbtest.OfferStatus(t, s.DB, id))
	})

	s.Run("Error case: Unknown offer id returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			offersURL+"/b5c1f7a0-0000-0000-0000-000000000000", nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "not found")
	})
}

// =============================================================================
// TestListOffers - Offer listing and search API tests
// =============================================================================

func (s *OfferSuite) TestListOffers() {
	s.Run("Normal case: All offers are listed", func() {
		t := s.T()

		dbtest.InsertOffer(t, s.DB, builder.NewOfferBuilder().WithName("Offer A").BuildFixture())
		dbtest.InsertOffer(t, s.DB, builder.NewOfferBuilder().WithName("Offer B").BuildFixture())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, offersURL, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body offerListBody
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Len(t, body.Offers, 2)
	})

	s.Run("Normal case: Search matches description case-insensitively", func() {
		t := s.T()

		dbtest.InsertOffer(t, s.DB, builder.NewOfferBuilder().
			WithDescription("Half price garden furniture").BuildFixture())
		dbtest.InsertOffer(t, s.DB, builder.NewOfferBuilder().
			WithDescription("Free delivery on electronics").BuildFixture())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, offersURL+"?description=GARDEN", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body offerListBody
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Len(t, body.Offers, 1)
		require.Contains(t, body.Offers[0].Description, "garden")
	})

	s.Run("Normal case: Blank search yields an empty list", func() {
		t := s.T()

		dbtest.InsertOffer(t, s.DB, builder.NewOfferBuilder().BuildFixture())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, offersURL+"?description=", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body offerListBody
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Empty(t, body.Offers)
	})
}

// =============================================================================
// TestCancelOffer - Offer cancellation API tests
// =============================================================================

func (s *OfferSuite) TestCancelOffer() {
	s.Run("Normal case: Active offer can be cancelled", func() {
		t := s.T()

		id := dbtest.InsertOffer(t, s.DB, builder.NewOfferBuilder().BuildFixture())

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, cancelOfferURL+id.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got response.OfferResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))
		require.Equal(t, string(domoffer.StatusCancelled), got.Status)

		require.Equal(t, string(domoffer.StatusCancelled), dbtest.OfferStatus(t, s.DB, id))
	})

	s.Run("Error case: Expired offer can not be cancelled", func() {
		t := s.T()

		fixture := builder.NewOfferBuilder().
			WithExpiryDate(time.Now().Add(-1 * time.Hour)).
			BuildFixture()
		id := dbtest.InsertOffer(t, s.DB, fixture)

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, cancelOfferURL+id.String(), nil)
		httptest.AssertErrorResponse(t, w, http.StatusConflict,
			"Offer could not be cancelled because it has expired")
	})

	s.Run("Error case: Cancelling twice is rejected", func() {
		t := s.T()

		id := dbtest.InsertOffer(t, s.DB, builder.NewOfferBuilder().BuildFixture())

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, cancelOfferURL+id.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, cancelOfferURL+id.String(), nil)
		httptest.AssertErrorResponse(t, w, http.StatusConflict,
			"Offer could not be cancelled because it has already been cancelled")
	})

	s.Run("Error case: Cancelling an unknown offer returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPut,
			cancelOfferURL+"b5c1f7a0-0000-0000-0000-000000000000", nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "not found")
	})
}

// =============================================================================
// TestReconcileExpired - Persisted expiry sweep against a real database
// =============================================================================

func (s *OfferSuite) TestReconcileExpired() {
	s.Run("Normal case: Sweep persists expiry once and leaves terminal rows alone", func() {
		t := s.T()

		expiredID := dbtest.InsertOffer(t, s.DB, builder.NewOfferBuilder().
			WithExpiryDate(time.Now().Add(-1*time.Hour)).BuildFixture())
		activeID := dbtest.InsertOffer(t, s.DB, builder.NewOfferBuilder().
			WithExpiryDate(time.Now().Add(1*time.Hour)).BuildFixture())
		cancelledID := dbtest.InsertOffer(t, s.DB, builder.NewOfferBuilder().
			WithStatus(domoffer.StatusCancelled).
			WithExpiryDate(time.Now().Add(-1*time.Hour)).BuildFixture())

		uc := commands.NewOfferUseCase(uow.NewPostgresUoW(s.DB), clock.NewRealClock())

		n, err := uc.ReconcileExpired(context.Background())
		require.NoError(t, err)
		require.Equal(t, int64(1), n, "only the elapsed active offer should transition")

		require.Equal(t, string(domoffer.StatusExpired), dbtest.OfferStatus(t, s.DB, expiredID))
		require.Equal(t, string(domoffer.StatusActive), dbtest.OfferStatus(t, s.DB, activeID))
		require.Equal(t, string(domoffer.StatusCancelled), dbtest.OfferStatus(t, s.DB, cancelledID))

		// 再実行しても何も更新されない
		n, err = uc.ReconcileExpired(context.Background())
		require.NoError(t, err)
		require.Zero(t, n, "a second sweep must find nothing to transition")
		require.Equal(t, string(domoffer.StatusExpired), dbtest.OfferStatus(t, s.DB, expiredID))
	})
}

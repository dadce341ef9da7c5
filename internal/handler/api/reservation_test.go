//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentbook/internal/domain/booking"
	"rentbook/internal/handler"
	"rentbook/internal/handler/api"
	"rentbook/internal/handler/middleware"
	resdto "rentbook/internal/handler/dto/response"
	"rentbook/internal/infra/holdstore"
	"rentbook/internal/infra/ledger"
	"rentbook/internal/infra/lock"
	"rentbook/internal/infra/repository"
	"rentbook/internal/pkg/clock"
	"rentbook/internal/pkg/config"
	"rentbook/internal/pkg/jwt"
	"rentbook/internal/usecase/commands"
	"rentbook/internal/usecase/queries"
	"rentbook/tests/common/authtest"
	"rentbook/tests/common/builder"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var frozenNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	cfg    config.Config
	clock  *clock.MockClock
	items  *repository.MemoryItemRepository
	jwt    *authtest.JWTHelper
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.cfg = config.NewTestConfig()
	s.clock = clock.NewMockClock(frozenNow)
	s.items = repository.NewMemoryItemRepository()

	bookingLedger := ledger.NewMemoryLedger()
	holds := holdstore.NewMemoryHoldStore()
	locks := lock.NewKeyedMutex()
	engine := booking.NewEngine(s.clock, booking.PolicyOpen)

	reservationUC := commands.NewReservationUseCase(s.items, bookingLedger, holds, locks, engine, s.clock, s.cfg.Booking)
	itemUC := commands.NewItemUseCase(s.items)
	availabilityQ := queries.NewAvailabilityQueries(s.items, bookingLedger, engine)
	itemQ := queries.NewItemQueries(s.items, bookingLedger)

	authMw := middleware.NewAuthMiddleware(jwt.NewService(s.cfg.JWT.Secret, s.cfg.JWT.Duration))
	s.jwt = authtest.NewJWTHelper(s.cfg.JWT)

	s.router = gin.New()
	handler.NewRouter(
		s.router,
		s.cfg,
		api.NewItemHandler(itemUC, itemQ),
		api.NewAvailabilityHandler(availabilityQ),
		api.NewReservationHandler(reservationUC),
		authMw,
	)
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) perform(method, url string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ReservationHandlerTestSuite) createItem(listed bool) uuid.UUID {
	it := builder.NewItemBuilder().With(func(b *builder.ItemBuilder) {
		b.Listed = listed
	}).BuildDomain()
	s.Require().NoError(s.items.Create(context.Background(), it))
	return it.ID()
}

func (s *ReservationHandlerTestSuite) TestCreateItem() {
	token := s.jwt.GenerateToken(s.T(), uuid.New())

	s.Run("success: 201 with the stored item", func() {
		rec := s.perform(http.MethodPost, "/api/items", builder.NewItemBuilder().BuildCreateRequestDTO(), token)
		s.Equal(http.StatusCreated, rec.Code)

		var resp resdto.ItemResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.NotEqual(uuid.Nil, resp.ID)
		s.True(resp.Listed)
	})

	s.Run("error: 401 without a token", func() {
		rec := s.perform(http.MethodPost, "/api/items", builder.NewItemBuilder().BuildCreateRequestDTO(), "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 401 with an expired token", func() {
		expired := s.jwt.CreateExpiredToken(s.T(), uuid.New())
		rec := s.perform(http.MethodPost, "/api/items", builder.NewItemBuilder().BuildCreateRequestDTO(), expired)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 400 on malformed dates", func() {
		req := builder.NewItemBuilder().BuildCreateRequestDTO()
		req.AllowedDates = []string{"10/09/2026"}
		rec := s.perform(http.MethodPost, "/api/items", req, token)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestGetItem() {
	s.Run("error: 404 for an unknown item", func() {
		rec := s.perform(http.MethodGet, "/api/items/"+uuid.NewString(), nil, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := s.perform(http.MethodGet, "/api/items/not-a-uuid", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestCheckAvailability() {
	itemID := s.createItem(true)

	s.Run("success: free range", func() {
		body := map[string]any{"itemId": itemID, "startDate": "2026-09-10", "endDate": "2026-09-12"}
		rec := s.perform(http.MethodPost, "/api/availability/check", body, "")
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.RangeCheckResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.True(resp.Available)
	})

	s.Run("error: 400 for an inverted window", func() {
		body := map[string]any{"itemId": itemID, "startDate": "2026-09-12", "endDate": "2026-09-10"}
		rec := s.perform(http.MethodPost, "/api/availability/check", body, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	itemID := s.createItem(true)

	reserveBody := func() map[string]any {
		return map[string]any{
			"itemId":    itemID,
			"orderId":   uuid.New(),
			"startDate": "2026-09-10",
			"endDate":   "2026-09-12",
		}
	}

	s.Run("success: guests reserve without a token", func() {
		rec := s.perform(http.MethodPost, "/api/reservations", reserveBody(), "")
		s.Equal(http.StatusCreated, rec.Code)

		var resp resdto.IntervalResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("2026-09-10", resp.StartDate)
		s.Nil(resp.OwnerID)
	})

	s.Run("error: 409 on an overlapping window", func() {
		rec := s.perform(http.MethodPost, "/api/reservations", reserveBody(), "")
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error: 400 on a past start", func() {
		body := reserveBody()
		body["startDate"] = "2026-08-01"
		body["endDate"] = "2026-08-03"
		rec := s.perform(http.MethodPost, "/api/reservations", body, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 404 for an unknown item", func() {
		body := reserveBody()
		body["itemId"] = uuid.New()
		rec := s.perform(http.MethodPost, "/api/reservations", body, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestHoldFlow() {
	itemID := s.createItem(true)
	owner := uuid.New()
	token := s.jwt.GenerateToken(s.T(), owner)

	holdBody := map[string]any{"itemId": itemID, "startDate": "2026-09-10", "endDate": "2026-09-12"}

	s.Run("error: 401 without a token", func() {
		rec := s.perform(http.MethodPost, "/api/holds", holdBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	var holdID uuid.UUID
	s.Run("success: create hold", func() {
		rec := s.perform(http.MethodPost, "/api/holds", holdBody, token)
		s.Require().Equal(http.StatusCreated, rec.Code)

		var resp resdto.HoldResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(itemID, resp.ItemID)
		holdID = resp.ID
	})

	s.Run("error: 409 for a second overlapping hold", func() {
		otherToken := s.jwt.GenerateToken(s.T(), uuid.New())
		rec := s.perform(http.MethodPost, "/api/holds", holdBody, otherToken)
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("success: confirm turns the hold into a booking", func() {
		body := map[string]any{"orderId": uuid.New()}
		rec := s.perform(http.MethodPost, "/api/holds/"+holdID.String()+"/confirm", body, token)
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("error: 404 confirming the consumed hold", func() {
		body := map[string]any{"orderId": uuid.New()}
		rec := s.perform(http.MethodPost, "/api/holds/"+holdID.String()+"/confirm", body, token)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestExpiredHold() {
	itemID := s.createItem(true)
	owner := uuid.New()
	token := s.jwt.GenerateToken(s.T(), owner)

	holdBody := map[string]any{"itemId": itemID, "startDate": "2026-09-10", "endDate": "2026-09-12"}
	rec := s.perform(http.MethodPost, "/api/holds", holdBody, token)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var hold resdto.HoldResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &hold))

	s.clock.Add(s.cfg.Booking.HoldTTL + time.Second)

	body := map[string]any{"orderId": uuid.New()}
	rec = s.perform(http.MethodPost, "/api/holds/"+hold.ID.String()+"/confirm", body, token)
	s.Equal(http.StatusGone, rec.Code)
}

func (s *ReservationHandlerTestSuite) TestReleaseOrder() {
	itemID := s.createItem(true)
	token := s.jwt.GenerateToken(s.T(), uuid.New())
	orderID := uuid.New()

	body := map[string]any{
		"itemId":    itemID,
		"orderId":   orderID,
		"startDate": "2026-09-10",
		"endDate":   "2026-09-12",
	}
	rec := s.perform(http.MethodPost, "/api/reservations", body, "")
	s.Require().Equal(http.StatusCreated, rec.Code)

	s.Run("success: release reports the removed count", func() {
		rec := s.perform(http.MethodPost, "/api/orders/"+orderID.String()+"/release", nil, token)
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.ReleaseResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(int64(1), resp.Removed)
	})

	s.Run("success: releasing again removes nothing", func() {
		rec := s.perform(http.MethodPost, "/api/orders/"+orderID.String()+"/release", nil, token)
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.ReleaseResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(int64(0), resp.Removed)
	})
}

package get_facility_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

type serviceFunc func(ctx context.Context, actor *domain.Actor, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error)

func (f serviceFunc) GetFacilityBookings(ctx context.Context, actor *domain.Actor, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error) {
	return f(ctx, actor, req)
}

var loc = domain.LocalZone(domain.DefaultTimezoneOffsetHours)

func serve(t *testing.T, h *Handler, target string, actor *domain.Actor) *httptest.ResponseRecorder {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc("/facilities/{facilityId}/bookings", h.Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	staff := &domain.Actor{UserID: 2, Role: domain.RoleStaff}

	t.Run("defaults to today", func(t *testing.T) {
		var got *models.GetFacilityBookingsRequest
		h := NewHandler(serviceFunc(func(_ context.Context, _ *domain.Actor, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error) {
			got = req
			return &models.BookingListResponse{}, nil
		}), loc, logger.Nop())
		// 23:30 UTC уже следующий день в +8
		h.now = func() time.Time { return time.Date(2025, 6, 10, 23, 30, 0, 0, time.UTC) }

		rec := serve(t, h, "/facilities/7/bookings", staff)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, int64(7), got.FacilityID)
		assert.True(t, time.Date(2025, 6, 11, 0, 0, 0, 0, loc).Equal(got.Date))
		assert.Nil(t, got.Status)
	})

	t.Run("explicit date and status", func(t *testing.T) {
		var got *models.GetFacilityBookingsRequest
		h := NewHandler(serviceFunc(func(_ context.Context, _ *domain.Actor, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error) {
			got = req
			return &models.BookingListResponse{}, nil
		}), loc, logger.Nop())

		rec := serve(t, h, "/facilities/7/bookings?date=2025-06-12&status=cancelled", staff)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2025-06-12", got.Date.Format(domain.DateFormat))
		require.NotNil(t, got.Status)
		assert.Equal(t, "cancelled", *got.Status)
	})

	errorCases := []struct {
		name   string
		target string
		actor  *domain.Actor
		err    error
		code   int
	}{
		{"bad facility id", "/facilities/abc/bookings", staff, nil, http.StatusBadRequest},
		{"no actor", "/facilities/7/bookings", nil, nil, http.StatusUnauthorized},
		{"bad date", "/facilities/7/bookings?date=12.06.2025", staff, nil, http.StatusBadRequest},
		{"access denied", "/facilities/7/bookings", staff, bookings.ErrAccessDenied, http.StatusForbidden},
		{"bad status", "/facilities/7/bookings", staff, bookings.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/facilities/7/bookings", staff, bookings.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(serviceFunc(func(context.Context, *domain.Actor, *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error) {
				return nil, tt.err
			}), loc, logger.Nop())

			rec := serve(t, h, tt.target, tt.actor)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

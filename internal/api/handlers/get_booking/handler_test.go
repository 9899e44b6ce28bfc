package get_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SE-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SE-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SE-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SE-RoomBookingService/pkg/logger"
)

type fakeService struct {
	calls    int
	gotAdmin bool
	err      error
}

func (f *fakeService) GetByID(_ context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	f.calls++
	f.gotAdmin = isAdmin
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{
		ID: id, UserID: 7, RoomKey: "locker", BookingDate: "2026-10-19", TimeSlot: "Locker 1", IsLocker: true,
	}, nil
}

func serve(svc *fakeService, target string, withUser, isAdmin bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.Nop()).Handle)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withUser {
		req = req.WithContext(middleware.WithUser(req.Context(), 3, isAdmin))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "/bookings/9", true, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.gotAdmin)
	assert.Contains(t, w.Body.String(), `"is_locker":true`)
	assert.Contains(t, w.Body.String(), `"time_slot":"Locker 1"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		withUser bool
		err      error
		want     int
	}{
		{name: "no user", target: "/bookings/9", want: http.StatusUnauthorized},
		{name: "not a number", target: "/bookings/abc", withUser: true, want: http.StatusBadRequest},
		{name: "zero id", target: "/bookings/0", withUser: true, want: http.StatusBadRequest},
		{name: "negative id", target: "/bookings/-4", withUser: true, want: http.StatusBadRequest},
		{name: "not found", target: "/bookings/9", withUser: true, err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "foreign booking", target: "/bookings/9", withUser: true, err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{name: "internal", target: "/bookings/9", withUser: true, err: errors.New("db"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			w := serve(svc, tt.target, tt.withUser, false)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized || tt.want == http.StatusBadRequest {
				assert.Zero(t, svc.calls)
			}
		})
	}
}

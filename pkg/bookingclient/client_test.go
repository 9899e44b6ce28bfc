package bookingclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_HeadersAndDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12", r.Header.Get("X-User-ID"))
		assert.Equal(t, "admin", r.Header.Get("X-User-Role"))

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/rooms/meeting/booked-slots":
			assert.Equal(t, "2026-10-20", r.URL.Query().Get("date"))
			_, _ = w.Write([]byte(`{"room_key":"meeting","date":"2026-10-20","booked_slots":["9-10am"]}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/admin/rooms/meeting/bookings":
			_, _ = w.Write([]byte(`[{"id":1,"room_key":"meeting","time_slot":"9-10am"}]`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/bookings/4":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/v1", 12, WithRole("admin"))
	ctx := context.Background()

	booked, err := c.BookedSlots(ctx, "meeting", "2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, []string{"9-10am"}, booked)

	list, err := c.RoomBookings(ctx, "meeting", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "9-10am", list[0].TimeSlot)

	assert.NoError(t, c.CancelBooking(ctx, 4))
}

func TestClient_CreateBooking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreateBookingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Booking{ID: 7, RoomKey: req.RoomKey, BookingDate: req.BookingDate, TimeSlot: req.TimeSlot})
	}))
	defer srv.Close()

	b, err := New(srv.URL, 1).CreateBooking(context.Background(), CreateBookingRequest{
		RoomKey: "locker", BookingDate: "2026-10-20", TimeSlot: "Locker 2",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, "Locker 2", b.TimeSlot)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"выбранный слот уже забронирован"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 1).CreateBooking(context.Background(), CreateBookingRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "выбранный слот уже забронирован", apiErr.Message)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL, 1).Rooms(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}

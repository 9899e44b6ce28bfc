package emailservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/notification"
)

func TestClient_Send(t *testing.T) {
	var got SendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(Config{
		URL:        srv.URL,
		ServiceID:  "service_1",
		TemplateID: "template_1",
		PublicKey:  "pub",
		AdminEmail: "admin@uni.edu",
	}, time.Second)

	event := notification.Event{
		Kind: notification.KindNewBooking,
		Booking: domain.Booking{
			ID:          7,
			RoomName:    "Meeting Room",
			BookingDate: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
			TimeSlot:    "10-11am",
			StudentName: "Ada",
			StudentID:   "S-100",
		},
	}
	require.NoError(t, client.Send(context.Background(), event))

	assert.Equal(t, "service_1", got.ServiceID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, TemplateParams{
		ToEmail:        "admin@uni.edu",
		FromName:       "SE Booking System",
		BookingType:    "NEW BOOKING",
		RoomName:       "Meeting Room",
		StudentName:    "Ada",
		StudentID:      "S-100",
		BookingDate:    "Tuesday, October 20, 2026",
		TimeSlot:       "10-11am",
		BookingDetails: "A new booking has been created.",
	}, got.TemplateParams)
}

func TestClient_SendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The user ID is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL}, time.Second)
	err := client.Send(context.Background(), notification.Event{Kind: notification.KindCancelledBooking})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

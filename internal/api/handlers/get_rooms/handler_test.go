package get_rooms

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	"github.com/m04kA/SE-RoomBookingService/internal/service/rooms"
	"github.com/m04kA/SE-RoomBookingService/internal/service/rooms/models"
	"github.com/m04kA/SE-RoomBookingService/internal/service/slots"
	"github.com/m04kA/SE-RoomBookingService/pkg/logger"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	catalog, err := domain.NewRoomCatalog(domain.DefaultRooms())
	require.NoError(t, err)
	slotSvc := slots.NewService(catalog, slots.DefaultConfig(),
		&slots.FixedTimeProvider{T: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)})

	settings := models.ClientSettings{PollIntervalSeconds: 5, HistoryRefresh: "timer", HistoryIntervalSeconds: 30}
	h := NewHandler(rooms.NewService(catalog, slotSvc, settings, logger.Nop()), logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/rooms", h.Handle)
	r.HandleFunc("/rooms/{roomKey}", h.HandleByKey)
	return r
}

func TestHandle(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.RoomListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Rooms, 3)
	assert.Equal(t, "2026-10-26", resp.BookingWindow.LastDate)
	assert.Equal(t, "timer", resp.ClientSettings.HistoryRefresh)
	assert.Equal(t, 30, resp.ClientSettings.HistoryIntervalSeconds)
}

func TestHandleByKey(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/locker", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"locker_count":3`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/gym", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

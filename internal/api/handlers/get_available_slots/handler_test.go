package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SE-RoomBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SE-RoomBookingService/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/rooms/{roomKey}/slots", NewHandler(uc, logger.Nop()).Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Room: domain.DefaultRooms()[0],
		Date: "2026-10-20",
		Slots: []domain.AvailableSlot{
			{Slot: domain.Slot{ID: domain.TimedSlot(9)}, Selectable: true},
			{Slot: domain.Slot{ID: domain.TimedSlot(10)}, Booked: true},
		},
	}}

	w := serve(uc, "/rooms/meeting/slots?date=2026-10-20")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "meeting", uc.got.RoomKey)
	assert.Equal(t, "2026-10-20", uc.got.Date)

	var resp AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Meeting Room", resp.RoomName)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, AvailableSlot{ID: "9-10am", Selectable: true}, resp.Slots[0])
	assert.Equal(t, AvailableSlot{ID: "10-11am", Booked: true}, resp.Slots[1])
	assert.False(t, resp.BookedSlotsUnavailable)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
	}{
		{name: "missing date", target: "/rooms/meeting/slots", wantCode: http.StatusBadRequest},
		{name: "unknown room", target: "/rooms/gym/slots?date=2026-10-20",
			err: getAvailableSlots.ErrRoomNotFound, wantCode: http.StatusNotFound},
		{name: "bad date", target: "/rooms/meeting/slots?date=20-10-2026",
			err: fmt.Errorf("%w: bad", getAvailableSlots.ErrInvalidDate), wantCode: http.StatusBadRequest},
		{name: "out of window", target: "/rooms/meeting/slots?date=2027-01-01",
			err: getAvailableSlots.ErrDateOutOfWindow, wantCode: http.StatusBadRequest},
		{name: "internal", target: "/rooms/meeting/slots?date=2026-10-20",
			err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client HTTP клиент сервиса бронирования комнат
type Client struct {
	baseURL    string
	httpClient *http.Client
	userID     int64
	role       string
}

type Option func(*Client)

// WithHTTPClient подменяет http.Client (таймауты, транспорт)
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithRole передаёт роль пользователя (например "admin")
func WithRole(role string) Option {
	return func(cl *Client) {
		cl.role = role
	}
}

// New создаёт клиент от имени пользователя userID.
// baseURL включает префикс API, например http://localhost:8080/api/v1
func New(baseURL string, userID int64, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userID:     userID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rooms GET /rooms
func (c *Client) Rooms(ctx context.Context) (*RoomList, error) {
	var out RoomList
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Slots GET /rooms/{roomKey}/slots?date=
func (c *Client) Slots(ctx context.Context, roomKey, date string) (*SlotList, error) {
	var out SlotList
	path := "/rooms/" + url.PathEscape(roomKey) + "/slots?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookedSlots GET /rooms/{roomKey}/booked-slots?date=
func (c *Client) BookedSlots(ctx context.Context, roomKey, date string) ([]string, error) {
	var out bookedSlotsResponse
	path := "/rooms/" + url.PathEscape(roomKey) + "/booked-slots?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.BookedSlots == nil {
		return []string{}, nil
	}
	return out.BookedSlots, nil
}

// CreateBooking POST /bookings. Отказ сервера возвращается как есть, без повторов.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyBookings GET /bookings
func (c *Client) MyBookings(ctx context.Context) (*UserBookings, error) {
	var out UserBookings
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBooking GET /bookings/{id}
func (c *Client) GetBooking(ctx context.Context, id int64) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelBooking DELETE /bookings/{id}
func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+strconv.FormatInt(id, 10), nil, nil)
}

// RoomBookings GET /admin/rooms/{roomKey}/bookings, date необязательна
func (c *Client) RoomBookings(ctx context.Context, roomKey, date string) ([]Booking, error) {
	path := "/admin/rooms/" + url.PathEscape(roomKey) + "/bookings"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var out []Booking
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrTransport, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-User-ID", strconv.FormatInt(c.userID, 10))
	if c.role != "" {
		req.Header.Set("X-User-Role", c.role)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var e errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			apiErr.Message = e.Error
			apiErr.Details = e.Details
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrTransport, err)
	}
	return nil
}

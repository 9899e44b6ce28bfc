package emailservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SE-RoomBookingService/internal/integrations/notification"
)

const (
	fromName          = "SE Booking System"
	bookingDateLayout = "Monday, January 2, 2006"
)

// Client клиент email API, отправляет письмо администратору о каждом бронировании
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient создает новый экземпляр клиента email API
func NewClient(cfg Config, timeout time.Duration) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send отправляет письмо о создании или отмене бронирования
func (c *Client) Send(ctx context.Context, event notification.Event) error {
	body, err := json.Marshal(c.buildRequest(event))
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

func (c *Client) buildRequest(event notification.Event) SendRequest {
	b := event.Booking
	return SendRequest{
		ServiceID:   c.cfg.ServiceID,
		TemplateID:  c.cfg.TemplateID,
		UserID:      c.cfg.PublicKey,
		AccessToken: c.cfg.PrivateKey,
		TemplateParams: TemplateParams{
			ToEmail:        c.cfg.AdminEmail,
			FromName:       fromName,
			BookingType:    string(event.Kind),
			RoomName:       b.RoomName,
			StudentName:    b.StudentName,
			StudentID:      b.StudentID,
			BookingDate:    b.BookingDate.Format(bookingDateLayout),
			TimeSlot:       b.TimeSlot,
			BookingDetails: event.Details(),
		},
	}
}

package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SE-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/notification"
	"github.com/m04kA/SE-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SE-RoomBookingService/pkg/metrics"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	cache       BookedSlotsCache
	slotService SlotService
	notifier    Notifier
	logger      Logger
	metrics     *metrics.Metrics
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	cache BookedSlotsCache,
	slotService SlotService,
	notifier Notifier,
	logger Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		cache:       cache,
		slotService: slotService,
		notifier:    notifier,
		logger:      logger,
		metrics:     m,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID && !isAdmin {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя,
// разделённую на предстоящие и прошедшие относительно текущего момента
func (s *Service) GetUserBookings(ctx context.Context, userID int64) (*models.UserBookingsResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", userID)

	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	classified := s.slotService.Classify(bookings)

	s.logger.Info("GetUserBookings: user=%d has %d upcoming and %d past bookings",
		userID, len(classified.Upcoming), len(classified.Past))

	return &models.UserBookingsResponse{
		Upcoming: models.FromDomainBookings(classified.Upcoming),
		Past:     models.FromDomainBookings(classified.Past),
	}, nil
}

// GetBookedSlots возвращает идентификаторы занятых слотов комнаты на дату.
// Сначала читает кеш, при промахе - БД с последующим заполнением кеша.
// Ошибки кеша не прерывают запрос.
func (s *Service) GetBookedSlots(ctx context.Context, roomKey, date string) ([]string, error) {
	if _, err := s.slotService.Room(roomKey); err != nil {
		s.logger.Warn("GetBookedSlots: room %q not found", roomKey)
		return nil, ErrRoomNotFound
	}

	bookingDate, err := s.slotService.ParseDate(date)
	if err != nil {
		s.logger.Warn("GetBookedSlots: invalid date %q", date)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cached, found, err := s.cache.Get(ctx, roomKey, date)
	switch {
	case err != nil:
		s.logger.Warn("GetBookedSlots: cache lookup failed for room=%s, date=%s: %v", roomKey, date, err)
		s.observeCache("error")
	case found:
		s.observeCache("hit")
		return cached, nil
	default:
		s.observeCache("miss")
	}

	booked, err := s.bookingRepo.GetBookedSlots(ctx, roomKey, bookingDate)
	if err != nil {
		s.logger.Error("GetBookedSlots: repository error for room=%s, date=%s: %v", roomKey, date, err)
		return nil, fmt.Errorf("%w: GetBookedSlots - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.Set(ctx, roomKey, date, booked); err != nil {
		s.logger.Warn("GetBookedSlots: failed to cache booked slots for room=%s, date=%s: %v", roomKey, date, err)
	}

	return booked, nil
}

// GetBookedSlotsResponse занятые слоты в виде ответа API
func (s *Service) GetBookedSlotsResponse(ctx context.Context, roomKey, date string) (*models.BookedSlotsResponse, error) {
	booked, err := s.GetBookedSlots(ctx, roomKey, date)
	if err != nil {
		return nil, err
	}
	return &models.BookedSlotsResponse{
		RoomKey:     roomKey,
		Date:        date,
		BookedSlots: booked,
	}, nil
}

// GetRoomBookings получает бронирования комнаты, опционально на дату.
// Доступно только администраторам
func (s *Service) GetRoomBookings(ctx context.Context, req *models.GetRoomBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetRoomBookings: fetching bookings for room=%s by user=%d", req.RoomKey, req.UserID)

	if !req.IsAdmin {
		s.logger.Warn("GetRoomBookings: user=%d is not an administrator", req.UserID)
		return nil, ErrAccessDenied
	}

	if _, err := s.slotService.Room(req.RoomKey); err != nil {
		s.logger.Warn("GetRoomBookings: room %q not found", req.RoomKey)
		return nil, ErrRoomNotFound
	}

	filter := domain.RoomBookingsFilter{RoomKey: req.RoomKey}
	if req.Date != nil {
		date, err := s.slotService.ParseDate(*req.Date)
		if err != nil {
			s.logger.Warn("GetRoomBookings: invalid date %q", *req.Date)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Date = &date
	}

	bookings, err := s.bookingRepo.GetByRoomWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetRoomBookings: repository error for room=%s: %v", req.RoomKey, err)
		return nil, fmt.Errorf("%w: GetRoomBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRoomBookings: successfully fetched %d bookings for room=%s", len(bookings), req.RoomKey)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет (удаляет) бронирование.
// Отменить можно только своё бронирование: чужое неотличимо от несуществующего.
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("Cancel: booking id=%d does not belong to user=%d", bookingID, userID)
		return ErrBookingNotFound
	}

	if err := s.bookingRepo.Delete(ctx, bookingID, userID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during deletion", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	if s.metrics != nil {
		s.metrics.BookingsCancelled.WithLabelValues(booking.RoomKey).Inc()
	}

	if err := s.cache.Invalidate(ctx, booking.RoomKey, booking.DateString()); err != nil {
		s.logger.Warn("Cancel: failed to invalidate booked slots cache: %v", err)
	}

	if err := s.notifier.Notify(notification.Event{
		Kind:       notification.KindCancelledBooking,
		Booking:    *booking,
		OccurredAt: s.slotService.Now(),
	}); err != nil {
		s.logger.Warn("Cancel: notification for booking id=%d not queued: %v", bookingID, err)
	}

	return nil
}

func (s *Service) observeCache(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.CacheLookupsTotal.WithLabelValues(result).Inc()
}

package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SE-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/notification"
	userClient "github.com/m04kA/SE-RoomBookingService/internal/integrations/userservice"
	"github.com/m04kA/SE-RoomBookingService/internal/service/slots"
	"github.com/m04kA/SE-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SE-RoomBookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	slotService SlotService
	userClient  UserServiceClient
	cache       BookedSlotsCache
	notifier    Notifier
	txManager   TransactionManager
	cfg         Config
	logger      Logger
	metrics     *metrics.Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotService SlotService,
	userClient UserServiceClient,
	cache BookedSlotsCache,
	notifier Notifier,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		slotService: slotService,
		userClient:  userClient,
		cache:       cache,
		notifier:    notifier,
		txManager:   txManager,
		cfg:         cfg,
		logger:      logger,
		metrics:     m,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости слота и лимита выполняется в сериализуемой транзакции.
// Повторных попыток нет: отказ возвращается вызывающему как есть.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, room=%s, date=%s, slot=%s",
		req.UserID, req.RoomKey, req.Date, req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Комната и окно бронирования
	room, err := uc.slotService.Room(req.RoomKey)
	if err != nil {
		uc.logger.Warn("CreateBooking: room %q not found", req.RoomKey)
		return nil, uc.reject("unknown", "room_not_found", ErrRoomNotFound)
	}

	if err := uc.slotService.CheckBookingWindow(req.Date); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		if errors.Is(err, slots.ErrInvalidDate) {
			return nil, uc.reject(room.Key, "invalid_date", fmt.Errorf("%w: %v", ErrInvalidDate, err))
		}
		return nil, uc.reject(room.Key, "out_of_window", fmt.Errorf("%w: %v", ErrDateOutOfWindow, err))
	}

	bookingDate, err := uc.slotService.ParseDate(req.Date)
	if err != nil {
		return nil, uc.reject(room.Key, "invalid_date", fmt.Errorf("%w: %v", ErrInvalidDate, err))
	}

	// 3. Слот: канонический идентификатор комнаты, ещё не начался, есть в списке на эту дату
	if !room.AcceptsLabel(req.TimeSlot) {
		uc.logger.Warn("CreateBooking: slot %q is not a slot of room %s", req.TimeSlot, room.Key)
		return nil, uc.reject(room.Key, "invalid_slot", ErrInvalidTimeSlot)
	}

	if !uc.slotService.IsTemporallyValid(req.TimeSlot, req.Date) {
		uc.logger.Warn("CreateBooking: slot %s on %s has already started", req.TimeSlot, req.Date)
		return nil, uc.reject(room.Key, "too_late", ErrTooLateToBook)
	}

	generated, err := uc.slotService.IsGeneratedSlot(room.Key, req.Date, req.TimeSlot)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	if !generated {
		uc.logger.Warn("CreateBooking: slot %s is not offered on %s", req.TimeSlot, req.Date)
		return nil, uc.reject(room.Key, "invalid_slot", ErrInvalidTimeSlot)
	}

	// 4. Профиль студента
	student, err := uc.userClient.GetStudentWithGracefulDegradation(ctx, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, userClient.ErrStudentNotFound):
			uc.logger.Warn("CreateBooking: user id=%d has no student profile", req.UserID)
			return nil, uc.reject(room.Key, "student_not_found", ErrStudentNotFound)
		case errors.Is(err, userClient.ErrServiceDegraded):
			uc.logger.Warn("CreateBooking: creating booking without student profile for user id=%d", req.UserID)
			student = &userClient.Student{UserID: req.UserID}
		default:
			uc.logger.Error("CreateBooking: failed to get student for user id=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
		}
	}

	var result *domain.Booking

	// 5. Проверки занятости и лимита с созданием в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Занятые слоты комнаты на дату (FOR UPDATE)
		booked, err := uc.bookingRepo.GetBookedSlots(txCtx, room.Key, bookingDate)
		if errors.Is(err, bookingRepo.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: slot %s on %s is being booked concurrently", req.TimeSlot, req.Date)
			return ErrSlotNotAvailable
		}
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get booked slots: %v", err)
			return fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
		}

		if slots.NewBookedSet(booked...).Contains(req.TimeSlot) {
			uc.logger.Warn("CreateBooking: slot %s on %s already booked", req.TimeSlot, req.Date)
			return ErrSlotNotAvailable
		}

		// 5.2. Лимит бронирований студента в этой комнате
		if uc.cfg.MaxBookingsPerRoom > 0 {
			count, err := uc.bookingRepo.CountByUserAndRoom(txCtx, req.UserID, room.Key)
			if errors.Is(err, bookingRepo.ErrSerializationFailure) {
				uc.logger.Warn("CreateBooking: concurrent booking by user id=%d in room %s", req.UserID, room.Key)
				return ErrSlotNotAvailable
			}
			if err != nil {
				uc.logger.Error("CreateBooking: failed to count bookings: %v", err)
				return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
			}

			if count >= uc.cfg.MaxBookingsPerRoom {
				uc.logger.Warn("CreateBooking: user id=%d already has %d/%d bookings in room %s",
					req.UserID, count, uc.cfg.MaxBookingsPerRoom, room.Key)
				return ErrBookingLimitReached
			}
		}

		// 5.3. Создаем бронирование с денормализацией данных
		booking := &domain.Booking{
			UserID:       req.UserID,
			RoomKey:      room.Key,
			RoomName:     room.DisplayName,
			BookingDate:  bookingDate,
			TimeSlot:     req.TimeSlot,
			StudentName:  student.Name,
			StudentID:    student.StudentID,
			StudentEmail: student.Email,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s on %s taken concurrently", req.TimeSlot, req.Date)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			return nil, uc.reject(room.Key, "slot_taken", err)
		case errors.Is(err, ErrBookingLimitReached):
			return nil, uc.reject(room.Key, "limit_reached", err)
		case errors.Is(err, txmanager.ErrSerialization):
			// конкурентная транзакция зафиксировалась первой, без повтора
			uc.logger.Warn("CreateBooking: slot %s on %s taken concurrently at commit: %v", req.TimeSlot, req.Date, err)
			return nil, uc.reject(room.Key, "slot_taken", ErrSlotNotAvailable)
		case errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	if uc.metrics != nil {
		uc.metrics.BookingsCreatedTotal.WithLabelValues(room.Key).Inc()
	}

	// 6. Побочные эффекты не влияют на результат
	if err := uc.cache.Invalidate(ctx, room.Key, req.Date); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate booked slots cache: %v", err)
	}

	if err := uc.notifier.Notify(notification.Event{
		Kind:       notification.KindNewBooking,
		Booking:    *result,
		OccurredAt: uc.slotService.Now(),
	}); err != nil {
		uc.logger.Warn("CreateBooking: notification for booking id=%d not queued: %v", result.ID, err)
	}

	return &Response{
		ID:           result.ID,
		UserID:       result.UserID,
		RoomKey:      result.RoomKey,
		RoomName:     result.RoomName,
		BookingDate:  result.BookingDate,
		TimeSlot:     result.TimeSlot,
		StudentName:  result.StudentName,
		StudentID:    result.StudentID,
		StudentEmail: result.StudentEmail,
		CreatedAt:    result.CreatedAt,
	}, nil
}

// reject учитывает отказ в метриках и возвращает ошибку без изменений
func (uc *UseCase) reject(roomKey, reason string, err error) error {
	if uc.metrics != nil {
		uc.metrics.BookingsRejectedTotal.WithLabelValues(roomKey, reason).Inc()
	}
	return err
}

package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SE-RoomBookingService/internal/service/slots"
	"github.com/m04kA/SE-RoomBookingService/pkg/metrics"
)

// UseCase use case для получения слотов комнаты на дату с отметкой доступности
type UseCase struct {
	slotService SlotService
	bookedSlots BookedSlotsProvider
	logger      Logger
	metrics     *metrics.Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotService SlotService,
	bookedSlots BookedSlotsProvider,
	logger Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		slotService: slotService,
		bookedSlots: bookedSlots,
		logger:      logger,
		metrics:     m,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, room=%s, date=%s", req.UserID, req.RoomKey, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Комната из каталога
	room, err := uc.slotService.Room(req.RoomKey)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: room %q not found", req.RoomKey)
		return nil, ErrRoomNotFound
	}

	// 3. Окно бронирования: сегодня .. сегодня+N
	if err := uc.slotService.CheckBookingWindow(req.Date); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, mapSlotError(err)
	}

	if uc.metrics != nil {
		uc.metrics.SlotQueriesTotal.WithLabelValues(room.Key).Inc()
	}

	// 4. Генерация слотов
	generated, err := uc.slotService.GenerateSlots(room.Key, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, mapSlotError(err)
	}

	// 5. Занятые слоты. Ошибка источника не прерывает запрос:
	// доступность считается по пустому множеству, а ответ помечается
	response := &Response{
		Room: room,
		Date: req.Date,
	}

	booked := slots.NewBookedSet()
	bookedIDs, err := uc.bookedSlots.GetBookedSlots(ctx, room.Key, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked slots for room=%s, date=%s: %v",
			room.Key, req.Date, err)
		response.BookedSlotsUnavailable = true
	} else {
		booked = slots.NewBookedSet(bookedIDs...)
	}

	// 6. Фильтрация
	response.Slots = uc.slotService.FilterSlots(generated, req.Date, booked)

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d booked) for room=%s, date=%s",
		len(response.Slots), len(booked), room.Key, req.Date)

	return response, nil
}

// mapSlotError переводит ошибки сервиса слотов в ошибки use case
func mapSlotError(err error) error {
	switch {
	case errors.Is(err, slots.ErrUnknownRoom):
		return ErrRoomNotFound
	case errors.Is(err, slots.ErrInvalidDate):
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	case errors.Is(err, slots.ErrDateOutOfWindow):
		return fmt.Errorf("%w: %v", ErrDateOutOfWindow, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

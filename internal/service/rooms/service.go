package rooms

import (
	"context"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	"github.com/m04kA/SE-RoomBookingService/internal/service/rooms/models"
)

// Service сервис каталога комнат
type Service struct {
	catalog     RoomCatalog
	slotService SlotService
	settings    models.ClientSettings
	logger      Logger
}

// NewService создает новый экземпляр сервиса комнат
func NewService(catalog RoomCatalog, slotService SlotService, settings models.ClientSettings, logger Logger) *Service {
	return &Service{
		catalog:     catalog,
		slotService: slotService,
		settings:    settings,
		logger:      logger,
	}
}

// List возвращает все комнаты в порядке каталога и текущее окно бронирования
func (s *Service) List(_ context.Context) *models.RoomListResponse {
	all := s.catalog.All()
	rooms := make([]models.RoomResponse, 0, len(all))
	for _, r := range all {
		rooms = append(rooms, models.FromDomainRoom(r))
	}

	first, last := s.slotService.BookingWindow()
	s.logger.Info("List: %d rooms, booking window %s..%s",
		len(rooms), first.Format(domain.DateFormat), last.Format(domain.DateFormat))

	return &models.RoomListResponse{
		Rooms:          rooms,
		BookingWindow:  models.NewBookingWindow(first, last),
		ClientSettings: s.settings,
	}
}

// Get возвращает комнату по ключу
func (s *Service) Get(_ context.Context, key string) (*models.RoomResponse, error) {
	room, ok := s.catalog.Get(key)
	if !ok {
		s.logger.Warn("Get: room %q not found", key)
		return nil, ErrRoomNotFound
	}
	resp := models.FromDomainRoom(room)
	return &resp, nil
}

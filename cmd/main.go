package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	cancelBookingHandler "github.com/m04kA/SE-RoomBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SE-RoomBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SE-RoomBookingService/internal/api/handlers/get_available_slots"
	getBookedSlotsHandler "github.com/m04kA/SE-RoomBookingService/internal/api/handlers/get_booked_slots"
	getBookingHandler "github.com/m04kA/SE-RoomBookingService/internal/api/handlers/get_booking"
	getRoomBookingsHandler "github.com/m04kA/SE-RoomBookingService/internal/api/handlers/get_room_bookings"
	getRoomsHandler "github.com/m04kA/SE-RoomBookingService/internal/api/handlers/get_rooms"
	getUserBookingsHandler "github.com/m04kA/SE-RoomBookingService/internal/api/handlers/get_user_bookings"
	"github.com/m04kA/SE-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SE-RoomBookingService/internal/config"
	"github.com/m04kA/SE-RoomBookingService/internal/infra/cache/bookedslots"
	bookingRepo "github.com/m04kA/SE-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/emailservice"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/eventbus"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/notification"
	userServiceClient "github.com/m04kA/SE-RoomBookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SE-RoomBookingService/internal/service/bookings"
	roomsService "github.com/m04kA/SE-RoomBookingService/internal/service/rooms"
	roomsModels "github.com/m04kA/SE-RoomBookingService/internal/service/rooms/models"
	slotsService "github.com/m04kA/SE-RoomBookingService/internal/service/slots"
	createBookingUC "github.com/m04kA/SE-RoomBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SE-RoomBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SE-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SE-RoomBookingService/pkg/logger"
	"github.com/m04kA/SE-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SE-RoomBookingService/pkg/redisdb"
	"github.com/m04kA/SE-RoomBookingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SE-RoomBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Каталог комнат и часовой пояс кампуса
	catalog, err := cfg.RoomCatalog()
	if err != nil {
		log.Fatal("Invalid room catalog: %v", err)
	}
	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}
	log.Info("Room catalog loaded: %d rooms, timezone=%s", len(catalog.All()), location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis (опционально): кеш занятых слотов
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	redisClient, err := redisdb.New(startupCtx, cfg.Redis.URL)
	cancelStartup()
	if err != nil {
		log.Warn("Redis unavailable, booked slots cache disabled: %v", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("Booked slots cache enabled (ttl=%ds)", cfg.Redis.BookedSlotsTTL)
	}
	slotsCache := bookedslots.New(redisClient, time.Duration(cfg.Redis.BookedSlotsTTL)*time.Second)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Уведомления администратору отправляются в фоне
	sender, closeSender, err := newNotificationSender(cfg.Notifications)
	if err != nil {
		log.Fatal("Failed to initialize notifications: %v", err)
	}
	dispatcher := notification.NewDispatcher(sender, notification.Config{
		QueueSize:   cfg.Notifications.QueueSize,
		SendTimeout: time.Duration(cfg.Notifications.Timeout) * time.Second,
	}, log, metricsCollector)
	log.Info("Notifications transport: %s", cfg.Notifications.Transport)

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(catalog, slotsService.Config{
		FirstHour:     cfg.Booking.FirstHour,
		LastStartHour: cfg.Booking.LastStartHour,
		WindowDays:    cfg.Booking.WindowDays,
	}, &slotsService.RealTimeProvider{Location: location})

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotsCache,
		slotSvc,
		dispatcher,
		log,
		metricsCollector,
	)
	roomSvc := roomsService.NewService(catalog, slotSvc, roomsModels.ClientSettings{
		PollIntervalSeconds:    cfg.Booking.PollInterval,
		HistoryRefresh:         cfg.Booking.HistoryRefresh,
		HistoryIntervalSeconds: cfg.Booking.HistoryInterval,
	}, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotSvc,
		userClient,
		slotsCache,
		dispatcher,
		txMgr,
		createBookingUC.Config{MaxBookingsPerRoom: cfg.Booking.MaxBookingsPerRoom},
		log,
		metricsCollector,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotSvc,
		bookingSvc,
		log,
		metricsCollector,
	)

	// Инициализируем handlers
	getRooms := getRoomsHandler.NewHandler(roomSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBookedSlots := getBookedSlotsHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getRoomBookings := getRoomBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог комнат и окно бронирования
	api.HandleFunc("/rooms", getRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomKey}", getRooms.HandleByKey).Methods(http.MethodGet)

	// Слоты комнаты на дату с признаками booked/selectable
	api.HandleFunc("/rooms/{roomKey}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Занятые слоты (для периодического опроса клиентами)
	api.HandleFunc("/rooms/{roomKey}/booked-slots", getBookedSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (с ограничением частоты, если задано)
	var createHandler http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.Server.BookingRateLimit > 0 {
		createHandler = middleware.NewRateLimiter(cfg.Server.BookingRateLimit).Limit(createHandler)
		log.Info("Booking rate limit: %d requests/min per user", cfg.Server.BookingRateLimit)
	}
	protected.Handle("/bookings", createHandler).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена (удаление) бронирования
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// История бронирований текущего пользователя
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// История бронирований по userId (чужая - только администратору)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	// Список бронирований комнаты
	protected.HandleFunc("/admin/rooms/{roomKey}/bookings", getRoomBookings.Handle).Methods(http.MethodGet)

	// CORS для веб-клиента
	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderUserID, middleware.HeaderUserRole, middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
		MaxAge:         300,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уже поставленных в очередь уведомлений
	dispatcher.Close()
	if err := closeSender(); err != nil {
		log.Error("Failed to close notification sender: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// newNotificationSender выбирает транспорт уведомлений по конфигурации
func newNotificationSender(cfg config.NotificationsConfig) (notification.Sender, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Transport) {
	case config.TransportHTTP:
		client := emailservice.NewClient(emailservice.Config{
			URL:        cfg.EmailAPIURL,
			ServiceID:  cfg.ServiceID,
			TemplateID: cfg.TemplateID,
			PublicKey:  cfg.PublicKey,
			PrivateKey: cfg.PrivateKey,
			AdminEmail: cfg.AdminEmail,
		}, time.Duration(cfg.Timeout)*time.Second)
		return client, noop, nil

	case config.TransportKafka:
		publisher, err := eventbus.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, nil, err
		}
		return publisher, publisher.Close, nil

	default:
		return notification.NopSender{}, noop, nil
	}
}

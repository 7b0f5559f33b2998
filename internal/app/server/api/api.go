//регистрация и аутентификация пользователей;
//создание игровых событий и просмотр их деталей;
//запись участников на событие с контролем вместимости;
//отмена записи владельцем.

//POST /api/users/register              # Регистрация (публичный)
//POST /api/users/login                 # Логин (публичный)
//GET  /api/events                      # Список событий (публичный)
//POST /api/events                      # Создать событие (auth)
//GET  /api/events/{id}                 # Получить событие (публичный)
//GET  /api/events/{id}/participants    # Участники события (публичный)
//POST /api/events/{id}/join            # Записаться (auth)
//DELETE /api/events/{id}/participants/{userID} # Отменить запись (auth)

package api

import (
	eventAPI "teamfinder/internal/app/server/api/http/event"
	healthAPI "teamfinder/internal/app/server/api/http/health"
	"teamfinder/internal/app/server/api/http/middleware"
	"teamfinder/internal/app/server/api/http/middleware/auth"
	"teamfinder/internal/app/server/api/http/middleware/logger"
	userAPI "teamfinder/internal/app/server/api/http/user"
	"teamfinder/internal/domain/event"
	"teamfinder/internal/domain/session"
	"teamfinder/internal/domain/user"
	"teamfinder/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Event  *eventAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Teamfinder API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Event.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage, log)
	userService := user.NewService(userRepo, user.NewValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	eventRepo := postgres.NewEventRepository(storage, log)
	participantRepo := postgres.NewParticipantRepository(storage, log)
	eventService := event.NewService(eventRepo, participantRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	eventHandler := eventAPI.NewHandler(eventService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Event:  eventHandler,
	}
}

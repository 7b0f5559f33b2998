package client

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"teamfinder/internal/app/client/config"
	"teamfinder/internal/domain/event"
	"teamfinder/internal/domain/user"
)

// App — композиция клиентских сервисов: HTTP-клиент, локальное хранилище,
// кэш снимков, очередь действий, монитор сети и координатор события.
type App struct {
	config      *config.Config
	log         *slog.Logger
	httpClient  *httpClient
	store       Store
	cache       *Cache
	queue       *Queue
	monitor     *Monitor
	syncService *SyncService
	coordinator *Coordinator
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl := NewHTTPClient(cfg, log)

	// Инициализируем локальное хранилище (используем SQLite)
	var store Store
	sqliteStore, err := NewSQLiteStore(cfg.DataPath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		store = NewMemoryStore()
	} else {
		store = sqliteStore
	}

	cache := NewCache(store, log)
	queue := NewQueue(store, log)

	// Стартовое состояние сети: явный офлайн из конфига либо проба сервера
	offline := cfg.StartOffline
	if !offline {
		probeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := httpCl.HealthCheck(probeCtx); err != nil {
			log.Info("сервер недоступен при старте, офлайн-режим", "error", err)
			offline = true
		}
		cancel()
	}
	monitor := NewMonitor(offline, log)

	coordinator := NewCoordinator(httpCl, cache, queue, monitor, log)
	syncService := NewSyncService(queue, httpCl, log)
	syncService.SetReconciler(coordinator.Reconcile)

	// Восстановление сети запускает drain очереди, не блокируя подписчиков
	monitor.Subscribe(func(online bool) {
		if online {
			go syncService.Drain(context.Background())
		}
	})

	app := &App{
		config:      cfg,
		log:         log,
		httpClient:  httpCl,
		store:       store,
		cache:       cache,
		queue:       queue,
		monitor:     monitor,
		syncService: syncService,
		coordinator: coordinator,
	}

	// Загружаем токен если он есть
	if token, ok := cache.Token(); ok {
		httpCl.SetToken(token)
		log.Debug("Токен загружен из хранилища")
	}

	return app, nil
}

func (a *App) Coordinator() *Coordinator {
	return a.coordinator
}

func (a *App) Monitor() *Monitor {
	return a.monitor
}

// IsAuthenticated проверяет наличие сохраненного токена
func (a *App) IsAuthenticated() bool {
	_, ok := a.cache.Token()
	return ok
}

// CheckConnection проверяет соединение с сервером и обновляет монитор
func (a *App) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpClient.HealthCheck(ctx); err != nil {
		a.monitor.SetOffline()
		return err
	}

	a.monitor.SetOnline()
	return nil
}

// Register регистрирует нового пользователя
func (a *App) Register(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	u, err := a.httpClient.Register(ctx, req)
	if err != nil {
		return user.User{}, err
	}

	a.log.Info("Пользователь успешно зарегистрирован", "username", u.Username)
	return u, nil
}

// Login выполняет вход пользователя и сохраняет токен
func (a *App) Login(ctx context.Context, username, password string) (user.User, error) {
	u, token, err := a.httpClient.Login(ctx, username, password)
	if err != nil {
		return user.User{}, err
	}

	if err := a.cache.SaveToken(token); err != nil {
		return user.User{}, fmt.Errorf("ошибка сохранения токена: %w", err)
	}
	if err := a.cache.SaveUser(u); err != nil {
		a.log.Warn("не удалось сохранить профиль пользователя", "error", err)
	}

	a.log.Info("Вход выполнен успешно", "username", u.Username)
	return u, nil
}

// CurrentUser возвращает профиль вошедшего пользователя
func (a *App) CurrentUser() (user.User, bool) {
	return a.cache.CurrentUser()
}

// Logout удаляет сохраненный токен и профиль
func (a *App) Logout() error {
	a.httpClient.SetToken("")
	if err := a.cache.ClearUser(); err != nil {
		return err
	}
	return a.cache.ClearToken()
}

// CreateEvent создает событие на сервере. Создание не откладывается в
// очередь: без серверного id с событием нечего делать офлайн.
func (a *App) CreateEvent(ctx context.Context, req event.CreateRequest) (event.Event, error) {
	if a.monitor.IsOffline() {
		return event.Event{}, fmt.Errorf("создание события недоступно в офлайн-режиме")
	}
	return a.httpClient.CreateEvent(ctx, req)
}

// ListEvents возвращает список событий с сервера
func (a *App) ListEvents(ctx context.Context) ([]event.Event, error) {
	return a.httpClient.ListEvents(ctx)
}

// Sync вручную запускает воспроизведение очереди
func (a *App) Sync(ctx context.Context) error {
	if err := a.CheckConnection(); err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}

	// CheckConnection мог уже запустить drain через подписку монитора;
	// повторный вызов безопасен благодаря guard внутри Drain
	a.syncService.Drain(ctx)
	return nil
}

// PendingActions возвращает текущую очередь для отображения
func (a *App) PendingActions() ([]PendingAction, error) {
	return a.queue.Load()
}

func (a *App) Close() error {
	return a.store.Close()
}

package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"teamfinder/internal/domain/event"
)

// eventAPI — часть API сервера, нужная координатору.
type eventAPI interface {
	GetEvent(ctx context.Context, eventID int64) (event.Event, error)
	GetParticipants(ctx context.Context, eventID int64) ([]event.Participant, error)
	JoinEvent(ctx context.Context, eventID int64, nick, role string) (event.Participant, error)
	LeaveEvent(ctx context.Context, eventID, userID int64) error
}

// Coordinator держит активное событие и управляет загрузкой и мутациями.
// В онлайне работает напрямую с сервером и пишет снимки в кэш; в офлайне
// читает кэш и применяет мутации оптимистично через очередь.
type Coordinator struct {
	api     eventAPI
	cache   *Cache
	queue   *Queue
	monitor *Monitor
	log     *slog.Logger

	mu           sync.RWMutex
	event        *event.Event
	participants []Participant
	loading      bool
	errMsg       string
}

func NewCoordinator(api eventAPI, cache *Cache, queue *Queue, monitor *Monitor, log *slog.Logger) *Coordinator {
	return &Coordinator{
		api:     api,
		cache:   cache,
		queue:   queue,
		monitor: monitor,
		log:     log.With("component", "coordinator"),
	}
}

// Load загружает событие: в онлайне с сервера с записью снимка в кэш,
// при сбое или в офлайне — из кэша. Активное событие заменяется целиком.
func (c *Coordinator) Load(ctx context.Context, eventID int64) error {
	c.setLoading(true)
	defer c.setLoading(false)

	if c.monitor.IsOffline() {
		return c.loadFromCache(eventID)
	}

	e, err := c.api.GetEvent(ctx, eventID)
	if err == nil {
		var participants []event.Participant
		participants, err = c.api.GetParticipants(ctx, eventID)
		if err == nil {
			c.applyFetched(e, participants)
			return nil
		}
	}

	if IsPermanent(err) {
		// 404 и прочие окончательные отказы кэшем не маскируем
		c.setError(err.Error())
		return err
	}

	// Временный сбой: переходим в офлайн и показываем последний снимок
	c.log.Warn("загрузка с сервера не удалась, используем кэш",
		"event_id", eventID,
		"error", err,
	)
	c.monitor.SetOffline()
	return c.loadFromCache(eventID)
}

// Join записывает пользователя на активное событие. Возвращает queued=true,
// когда действие отложено в очередь вместо прямого вызова сервера.
func (c *Coordinator) Join(ctx context.Context, userID int64, nick, role string) (queued bool, err error) {
	c.mu.RLock()
	active := c.event
	c.mu.RUnlock()
	if active == nil {
		return false, fmt.Errorf("нет активного события")
	}
	eventID := active.ID

	// Свежая проверка прямо перед сетевым вызовом: флаг мог устареть
	if c.monitor.IsOffline() {
		c.enqueueJoin(eventID, userID, nick, role)
		return true, nil
	}

	if _, err := c.api.JoinEvent(ctx, eventID, nick, role); err != nil {
		if IsPermanent(err) {
			c.setError(err.Error())
			return false, err
		}
		// Временный сбой: офлайн-путь вместо ошибки пользователю
		c.monitor.SetOffline()
		c.enqueueJoin(eventID, userID, nick, role)
		return true, nil
	}

	// Перезагружаем событие ради авторитетного списка и счетчика
	return false, c.Load(ctx, eventID)
}

// Leave снимает запись пользователя с активного события, зеркально Join.
func (c *Coordinator) Leave(ctx context.Context, userID int64) (queued bool, err error) {
	c.mu.RLock()
	active := c.event
	c.mu.RUnlock()
	if active == nil {
		return false, fmt.Errorf("нет активного события")
	}
	eventID := active.ID

	if c.monitor.IsOffline() {
		c.enqueueLeave(eventID, userID)
		return true, nil
	}

	if err := c.api.LeaveEvent(ctx, eventID, userID); err != nil {
		if IsPermanent(err) {
			c.setError(err.Error())
			return false, err
		}
		c.monitor.SetOffline()
		c.enqueueLeave(eventID, userID)
		return true, nil
	}

	return false, c.Load(ctx, eventID)
}

// Reconcile перечитывает активное событие после успешного drain. Если
// активного события нет (офлайн-старт), берется последнее просмотренное.
func (c *Coordinator) Reconcile(ctx context.Context) {
	c.mu.RLock()
	active := c.event
	c.mu.RUnlock()

	var eventID int64
	if active != nil {
		eventID = active.ID
	} else {
		id, ok := c.cache.LastViewedEventID()
		if !ok {
			return
		}
		eventID = id
	}

	if err := c.Load(ctx, eventID); err != nil {
		c.log.Warn("reconciliation не удалась", "event_id", eventID, "error", err)
	}
}

// Снимки состояния для UI-слоя.

func (c *Coordinator) Event() *event.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.event == nil {
		return nil
	}
	e := *c.event
	return &e
}

func (c *Coordinator) Participants() []Participant {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Participant, len(c.participants))
	copy(out, c.participants)
	return out
}

func (c *Coordinator) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Coordinator) ErrorMessage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

func (c *Coordinator) Offline() bool {
	return c.monitor.IsOffline()
}

func (c *Coordinator) applyFetched(e event.Event, participants []event.Participant) {
	converted := confirmedParticipants(participants)

	c.mu.Lock()
	c.event = &e
	c.participants = converted
	c.errMsg = ""
	c.mu.Unlock()

	if err := c.cache.SaveBundle(e.ID, CacheEntry{Event: e, Participants: converted}); err != nil {
		c.log.Warn("не удалось сохранить снимок", "event_id", e.ID, "error", err)
	}
	if err := c.cache.SetLastViewedEventID(e.ID); err != nil {
		c.log.Warn("не удалось сохранить last_viewed_event_id", "error", err)
	}
}

// loadFromCache читает снимок события. Промах кэша — не ошибка: UI покажет
// пустое состояние с офлайн-баннером.
func (c *Coordinator) loadFromCache(eventID int64) error {
	entry, ok, err := c.cache.LoadBundle(eventID)
	if err != nil {
		c.log.Error("ошибка чтения кэша", "event_id", eventID, "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !ok {
		c.event = nil
		c.participants = nil
		c.log.Info("снимка в кэше нет", "event_id", eventID)
		return nil
	}

	e := entry.Event
	c.event = &e
	c.participants = entry.Participants
	c.errMsg = ""
	c.log.Info("событие загружено из кэша", "event_id", eventID)
	return nil
}

func (c *Coordinator) enqueueJoin(eventID, userID int64, nick, role string) {
	action := PendingAction{
		Kind:    ActionJoin,
		EventID: eventID,
		UserID:  userID,
		Nick:    nick,
		Role:    role,
	}
	if err := c.queue.Enqueue(action); err != nil {
		c.log.Error("не удалось отложить join", "error", err)
		return
	}

	optimistic := Participant{
		ID:           OptimisticID(),
		EventID:      eventID,
		UserID:       userID,
		Nick:         nick,
		Role:         role,
		RegisteredAt: time.Now(),
	}

	c.mu.Lock()
	c.participants = append(c.participants, optimistic)
	if c.event != nil {
		c.event.ParticipantCount++
	}
	c.mu.Unlock()

	c.log.Info("join отложен до восстановления сети", "event_id", eventID, "user_id", userID)
}

func (c *Coordinator) enqueueLeave(eventID, userID int64) {
	action := PendingAction{
		Kind:    ActionLeave,
		EventID: eventID,
		UserID:  userID,
	}
	if err := c.queue.Enqueue(action); err != nil {
		c.log.Error("не удалось отложить leave", "error", err)
		return
	}

	c.mu.Lock()
	filtered := c.participants[:0]
	removed := false
	for _, p := range c.participants {
		if !removed && p.UserID == userID {
			removed = true
			continue
		}
		filtered = append(filtered, p)
	}
	c.participants = filtered
	if removed && c.event != nil && c.event.ParticipantCount > 0 {
		c.event.ParticipantCount--
	}
	c.mu.Unlock()

	c.log.Info("leave отложен до восстановления сети", "event_id", eventID, "user_id", userID)
}

func (c *Coordinator) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Coordinator) setError(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

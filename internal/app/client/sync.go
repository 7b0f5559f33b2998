package client

import (
	"context"
	"sync"

	"golang.org/x/exp/slog"

	"teamfinder/internal/domain/event"
)

// actionSender — часть API сервера, нужная для воспроизведения очереди.
type actionSender interface {
	JoinEvent(ctx context.Context, eventID int64, nick, role string) (event.Participant, error)
	LeaveEvent(ctx context.Context, eventID, userID int64) error
}

// SyncService воспроизводит очередь отложенных действий при восстановлении
// сети. Каждый исход классифицируется: успех и окончательный отказ убирают
// действие из очереди, временный сбой оставляет его до следующей попытки.
type SyncService struct {
	queue     *Queue
	api       actionSender
	log       *slog.Logger
	reconcile func(ctx context.Context)

	mu        sync.Mutex
	isSyncing bool
}

func NewSyncService(queue *Queue, api actionSender, log *slog.Logger) *SyncService {
	return &SyncService{
		queue: queue,
		api:   api,
		log:   log.With("component", "sync"),
	}
}

// SetReconciler задает обработчик повторной загрузки активного события
// после успешного воспроизведения хотя бы одного действия.
func (s *SyncService) SetReconciler(fn func(ctx context.Context)) {
	s.reconcile = fn
}

// Drain воспроизводит очередь строго в порядке добавления, последовательно:
// leave после join для того же пользователя корректен только если join
// прошел на сервере раньше. Ошибки не поднимаются наверх — сбой
// синхронизации никогда не фатален для вызывающего.
func (s *SyncService) Drain(ctx context.Context) {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		s.log.Debug("синхронизация уже выполняется")
		return
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	actions, err := s.queue.Load()
	if err != nil {
		s.log.Error("ошибка чтения очереди", "error", err)
		return
	}
	if len(actions) == 0 {
		return
	}

	s.log.Info("воспроизведение очереди", "count", len(actions))

	var retained []PendingAction
	succeeded := 0

	for _, action := range actions {
		err := s.replay(ctx, action)
		switch {
		case err == nil:
			succeeded++
			s.log.Debug("действие подтверждено сервером",
				"kind", action.Kind,
				"event_id", action.EventID,
			)
		case IsPermanent(err):
			// Действие никогда не пройдет: убираем без повтора
			s.log.Warn("действие отклонено сервером окончательно",
				"kind", action.Kind,
				"event_id", action.EventID,
				"error", err,
			)
		default:
			retained = append(retained, action)
			s.log.Debug("временный сбой, действие оставлено в очереди",
				"kind", action.Kind,
				"event_id", action.EventID,
				"error", err,
			)
		}
	}

	if err := s.queue.Replace(retained); err != nil {
		s.log.Error("ошибка сохранения очереди после drain", "error", err)
	}

	s.log.Info("воспроизведение завершено",
		"succeeded", succeeded,
		"retained", len(retained),
	)

	if succeeded > 0 && s.reconcile != nil {
		s.reconcile(ctx)
	}
}

func (s *SyncService) replay(ctx context.Context, action PendingAction) error {
	switch action.Kind {
	case ActionJoin:
		_, err := s.api.JoinEvent(ctx, action.EventID, action.Nick, action.Role)
		return err
	case ActionLeave:
		return s.api.LeaveEvent(ctx, action.EventID, action.UserID)
	default:
		// Неизвестный вид действия воспроизвести нельзя
		return &APIError{StatusCode: 400, Message: "неизвестный вид действия: " + string(action.Kind)}
	}
}

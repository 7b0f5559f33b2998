package client

import (
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"
)

const keyPendingActions = "pendingActions"

// Queue — упорядоченная очередь отложенных мутаций. Последовательность
// сериализуется целиком при каждом изменении: частичных записей нет,
// после перезапуска очередь восстанавливается без потерь.
type Queue struct {
	store Store
	log   *slog.Logger
	mu    sync.Mutex
}

func NewQueue(store Store, log *slog.Logger) *Queue {
	return &Queue{
		store: store,
		log:   log.With("component", "queue"),
	}
}

// Enqueue добавляет действие в конец очереди и сохраняет ее целиком.
func (q *Queue) Enqueue(action PendingAction) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	actions, err := q.load()
	if err != nil {
		return err
	}

	actions = append(actions, action)
	if err := q.persist(actions); err != nil {
		return err
	}

	q.log.Debug("действие добавлено в очередь",
		"kind", action.Kind,
		"event_id", action.EventID,
		"queue_len", len(actions),
	)
	return nil
}

// Load возвращает очередь в порядке добавления.
func (q *Queue) Load() ([]PendingAction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load()
}

// Replace перезаписывает очередь оставшимися после drain действиями.
func (q *Queue) Replace(actions []PendingAction) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.persist(actions)
}

func (q *Queue) load() ([]PendingAction, error) {
	raw, ok, err := q.store.Get(keyPendingActions)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения очереди: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var actions []PendingAction
	if err := json.Unmarshal([]byte(raw), &actions); err != nil {
		return nil, fmt.Errorf("ошибка разбора очереди: %w", err)
	}
	return actions, nil
}

func (q *Queue) persist(actions []PendingAction) error {
	if actions == nil {
		actions = []PendingAction{}
	}

	data, err := json.Marshal(actions)
	if err != nil {
		return fmt.Errorf("ошибка сериализации очереди: %w", err)
	}

	if err := q.store.Set(keyPendingActions, string(data)); err != nil {
		return fmt.Errorf("ошибка сохранения очереди: %w", err)
	}
	return nil
}

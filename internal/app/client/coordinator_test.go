package client

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"teamfinder/internal/domain/event"
)

// fakeEventAPI — управляемая замена сервера для координатора.
type fakeEventAPI struct {
	fakeSender
	event           event.Event
	participants    []event.Participant
	getEventErr     error
	getEventCalls   int
	participantsErr error
}

func (f *fakeEventAPI) GetEvent(_ context.Context, eventID int64) (event.Event, error) {
	f.getEventCalls++
	if f.getEventErr != nil {
		return event.Event{}, f.getEventErr
	}
	if f.event.ID != eventID {
		return event.Event{}, &APIError{StatusCode: 404, Message: "event not found"}
	}
	return f.event, nil
}

func (f *fakeEventAPI) GetParticipants(_ context.Context, eventID int64) ([]event.Participant, error) {
	if f.participantsErr != nil {
		return nil, f.participantsErr
	}
	return f.participants, nil
}

func testEvent() event.Event {
	return event.Event{
		ID:               42,
		Title:            "LAN party",
		MaxParticipants:  10,
		ParticipantCount: 1,
		StartsAt:         time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC),
	}
}

func newTestCoordinator(t *testing.T, offline bool) (*Coordinator, *fakeEventAPI, *Queue, *Cache, *Monitor) {
	t.Helper()

	api := &fakeEventAPI{
		fakeSender:   *newFakeSender(),
		event:        testEvent(),
		participants: []event.Participant{{ID: 1, EventID: 42, UserID: 9, Nick: "Host", Role: "IGL", Confirmed: true}},
	}

	store := NewMemoryStore()
	cache := NewCache(store, slog.Default())
	queue := NewQueue(store, slog.Default())
	monitor := NewMonitor(offline, slog.Default())
	c := NewCoordinator(api, cache, queue, monitor, slog.Default())

	return c, api, queue, cache, monitor
}

func TestCoordinator_LoadOnlineCachesSnapshot(t *testing.T) {
	c, _, _, cache, _ := newTestCoordinator(t, false)

	require.NoError(t, c.Load(context.Background(), 42))

	e := c.Event()
	require.NotNil(t, e)
	assert.Equal(t, "LAN party", e.Title)
	require.Len(t, c.Participants(), 1)
	assert.False(t, c.Participants()[0].ID.IsOptimistic())

	entry, ok, err := cache.LoadBundle(42)
	require.NoError(t, err)
	require.True(t, ok, "успешная загрузка пишет снимок в кэш")
	assert.Equal(t, "LAN party", entry.Event.Title)

	id, ok := cache.LastViewedEventID()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestCoordinator_LoadOfflineFromCache(t *testing.T) {
	c, api, _, cache, _ := newTestCoordinator(t, true)

	entry := CacheEntry{
		Event:        testEvent(),
		Participants: []Participant{{ID: ConfirmedID(1), EventID: 42, UserID: 9, Nick: "Host"}},
	}
	require.NoError(t, cache.SaveBundle(42, entry))

	require.NoError(t, c.Load(context.Background(), 42))

	assert.Zero(t, api.getEventCalls, "в офлайне сетевых вызовов нет")
	require.NotNil(t, c.Event())
	assert.Equal(t, "LAN party", c.Event().Title)
	assert.Equal(t, entry.Participants, c.Participants())
	assert.True(t, c.Offline())
}

func TestCoordinator_LoadOfflineCacheMiss(t *testing.T) {
	c, _, _, _, _ := newTestCoordinator(t, true)

	require.NoError(t, c.Load(context.Background(), 42), "промах кэша в офлайне — не ошибка")
	assert.Nil(t, c.Event())
	assert.Empty(t, c.Participants())
	assert.True(t, c.Offline())
}

func TestCoordinator_LoadFetchFailureFallsBackToCache(t *testing.T) {
	c, api, _, cache, monitor := newTestCoordinator(t, false)

	require.NoError(t, cache.SaveBundle(42, CacheEntry{Event: testEvent()}))
	api.getEventErr = fmt.Errorf("ошибка выполнения запроса: timeout")

	require.NoError(t, c.Load(context.Background(), 42))

	assert.True(t, monitor.IsOffline(), "временный сбой загрузки переводит в офлайн")
	require.NotNil(t, c.Event())
	assert.Equal(t, "LAN party", c.Event().Title)
}

func TestCoordinator_LoadNotFoundIsSurfaced(t *testing.T) {
	c, _, _, _, monitor := newTestCoordinator(t, false)

	err := c.Load(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, IsPermanent(err))
	assert.False(t, monitor.IsOffline(), "404 не переводит клиента в офлайн")
	assert.NotEmpty(t, c.ErrorMessage())
}

func TestCoordinator_JoinOffline(t *testing.T) {
	c, api, queue, cache, _ := newTestCoordinator(t, true)

	require.NoError(t, cache.SaveBundle(42, CacheEntry{Event: testEvent()}))
	require.NoError(t, c.Load(context.Background(), 42))

	queued, err := c.Join(context.Background(), 7, "Nick1", "Tank")
	require.NoError(t, err)
	assert.True(t, queued)

	actions, err := queue.Load()
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, PendingAction{Kind: ActionJoin, EventID: 42, UserID: 7, Nick: "Nick1", Role: "Tank"}, actions[0])

	participants := c.Participants()
	require.Len(t, participants, 1)
	assert.True(t, participants[0].ID.IsOptimistic())
	assert.Equal(t, int64(7), participants[0].UserID)
	assert.False(t, participants[0].Confirmed)

	assert.Equal(t, 2, c.Event().ParticipantCount, "оптимистичный join увеличивает счетчик")
	assert.Empty(t, api.calls, "оптимистичная мутация не ходит на сервер")
	assert.Zero(t, api.getEventCalls)
}

func TestCoordinator_JoinOnlineReloads(t *testing.T) {
	c, api, queue, _, _ := newTestCoordinator(t, false)

	require.NoError(t, c.Load(context.Background(), 42))
	before := api.getEventCalls

	queued, err := c.Join(context.Background(), 7, "Nick1", "Tank")
	require.NoError(t, err)
	assert.False(t, queued)

	assert.Equal(t, []string{"join:42:Nick1"}, api.calls)
	assert.Greater(t, api.getEventCalls, before, "успешный join перечитывает событие")

	actions, err := queue.Load()
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestCoordinator_JoinPermanentRejectionSurfaced(t *testing.T) {
	c, api, queue, _, _ := newTestCoordinator(t, false)

	require.NoError(t, c.Load(context.Background(), 42))
	api.joinErr["Nick1"] = &APIError{StatusCode: 409, Message: "user already registered for this event"}

	queued, err := c.Join(context.Background(), 7, "Nick1", "Tank")
	require.Error(t, err)
	assert.False(t, queued)
	assert.NotEmpty(t, c.ErrorMessage())

	actions, qerr := queue.Load()
	require.NoError(t, qerr)
	assert.Empty(t, actions, "окончательный отказ не откладывается в очередь")
}

func TestCoordinator_LeaveTransientFallsBackToQueue(t *testing.T) {
	c, api, queue, _, monitor := newTestCoordinator(t, false)

	api.participants = append(api.participants, event.Participant{ID: 2, EventID: 42, UserID: 7, Nick: "Nick1", Confirmed: true})
	require.NoError(t, c.Load(context.Background(), 42))

	api.leaveErr[7] = fmt.Errorf("ошибка выполнения запроса: timeout")

	queued, err := c.Leave(context.Background(), 7)
	require.NoError(t, err, "временный сбой не поднимается как ошибка")
	assert.True(t, queued)
	assert.True(t, monitor.IsOffline())

	actions, qerr := queue.Load()
	require.NoError(t, qerr)
	require.Len(t, actions, 1)
	assert.Equal(t, PendingAction{Kind: ActionLeave, EventID: 42, UserID: 7}, actions[0])

	for _, p := range c.Participants() {
		assert.NotEqual(t, int64(7), p.UserID, "оптимистичное удаление убирает запись пользователя")
	}
}

func TestCoordinator_ReconcileAfterDrain(t *testing.T) {
	c, api, queue, cache, monitor := newTestCoordinator(t, true)

	require.NoError(t, cache.SaveBundle(42, CacheEntry{Event: testEvent()}))
	require.NoError(t, c.Load(context.Background(), 42))

	_, err := c.Join(context.Background(), 7, "Nick1", "Tank")
	require.NoError(t, err)
	_, err = c.Leave(context.Background(), 7)
	require.NoError(t, err)

	s := NewSyncService(queue, api, slog.Default())
	s.SetReconciler(c.Reconcile)

	monitor.SetOnline()
	s.Drain(context.Background())

	assert.Equal(t, []string{"join:42:Nick1", "leave:42:7"}, api.calls)

	remaining, err := queue.Load()
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Состояние заменено авторитетным ответом, оптимистичных записей нет
	for _, p := range c.Participants() {
		assert.False(t, p.ID.IsOptimistic())
	}
	assert.Positive(t, api.getEventCalls, "после успешного drain событие перечитано")
}

func TestCoordinator_JoinWithoutActiveEvent(t *testing.T) {
	c, _, _, _, _ := newTestCoordinator(t, false)

	_, err := c.Join(context.Background(), 7, "Nick1", "Tank")
	assert.Error(t, err)
}

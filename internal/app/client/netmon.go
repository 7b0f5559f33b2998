package client

import (
	"sync"

	"golang.org/x/exp/slog"
)

// Monitor отслеживает состояние сети. Флаг обновляется только явными
// переходами; подписчики уведомляются синхронно, но не должны блокировать
// вызывающего — долгая работа (drain очереди) запускается в горутине.
type Monitor struct {
	log     *slog.Logger
	mu      sync.RWMutex
	offline bool
	subs    []func(online bool)
}

func NewMonitor(offline bool, log *slog.Logger) *Monitor {
	return &Monitor{
		log:     log.With("component", "netmon"),
		offline: offline,
	}
}

func (m *Monitor) IsOffline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.offline
}

// Subscribe регистрирует обработчик переходов. Обработчик получает true
// при восстановлении сети и false при потере.
func (m *Monitor) Subscribe(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// SetOnline фиксирует восстановление сети. Повторный вызов в онлайне —
// no-op: подписчики уведомляются только о переходах.
func (m *Monitor) SetOnline() {
	m.mu.Lock()
	if !m.offline {
		m.mu.Unlock()
		return
	}
	m.offline = false
	subs := make([]func(bool), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	m.log.Info("сеть восстановлена")
	for _, fn := range subs {
		fn(true)
	}
}

// SetOffline фиксирует потерю сети. Никаких сетевых вызовов: офлайн —
// нормальное, восстановимое состояние.
func (m *Monitor) SetOffline() {
	m.mu.Lock()
	if m.offline {
		m.mu.Unlock()
		return
	}
	m.offline = true
	subs := make([]func(bool), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	m.log.Info("сеть потеряна, переход в офлайн-режим")
	for _, fn := range subs {
		fn(false)
	}
}

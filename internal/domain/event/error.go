package event

import "errors"

var (
	ErrNotFound          = errors.New("event not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("user already registered for this event")
	ErrNotRegistered     = errors.New("user is not registered for this event")
)

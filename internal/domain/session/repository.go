package session

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	Validate(ctx context.Context, tokenHash string) (int64, error)
}

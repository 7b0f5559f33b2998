package user

import "context"

type Repository interface {
	Create(ctx context.Context, u User) (int64, error)
	FindByUsername(ctx context.Context, username string) (User, error)
}

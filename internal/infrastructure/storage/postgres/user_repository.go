package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"teamfinder/internal/domain/user"
)

type UserRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewUserRepository(db *Storage, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
	}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (int64, error) {
	var userID int64
	err := r.db.Pool().QueryRow(ctx,
		`INSERT INTO users (username, password_hash, email, country, age, avatar_url, play_style)
         VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		u.Username, u.Password, u.Email, u.Country, u.Age, u.AvatarURL, u.PlayStyle).Scan(&userID)
	return userID, err
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (user.User, error) {
	var u user.User
	err := r.db.Pool().QueryRow(ctx,
		`SELECT id, username, password_hash, email, country, age, avatar_url, play_style, created_at
         FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.Country, &u.Age, &u.AvatarURL, &u.PlayStyle, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return u, user.ErrNotFound
		}
		return u, err
	}

	return u, nil
}

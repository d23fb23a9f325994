package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/aaron7/pomodoro/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo implements domain.UserRepository backed by PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetByName(ctx context.Context, name string) (*domain.User, error) {
	var user domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, "user", pass FROM users WHERE "user" = $1`,
		name,
	).Scan(&user.ID, &user.Name, &user.Pass)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}
	return &user, nil
}

// Create inserts a new user. There is no signup endpoint; this exists for
// provisioning and tests.
func (r *UserRepo) Create(ctx context.Context, name, pass string) (*domain.User, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users ("user", pass) VALUES ($1, $2) RETURNING id`,
		name, pass,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &domain.User{ID: id, Name: name, Pass: pass}, nil
}

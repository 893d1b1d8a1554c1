package repository

import (
	"context"

	"bilemo-api/internal/domain"
)

// UserRepository defines persistence operations for User entities.
// FindByID and Delete wrap domain.ErrNotFound when the id does not exist.
type UserRepository interface {
	Init(ctx context.Context) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindFiltered(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	CountFiltered(ctx context.Context, filter domain.UserFilter) (int64, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

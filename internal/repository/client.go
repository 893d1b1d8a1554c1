package repository

import (
	"context"

	"bilemo-api/internal/domain"
)

// ClientRepository stores the API clients that own users.
type ClientRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, client *domain.Client) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

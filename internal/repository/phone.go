package repository

import (
	"context"

	"bilemo-api/internal/domain"
)

// PhoneRepository exposes the mobile phone catalog.
type PhoneRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, phone *domain.MobilePhone) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.MobilePhone, error)
	List(ctx context.Context, limit, offset int) ([]domain.MobilePhone, error)
	Count(ctx context.Context) (int64, error)
}

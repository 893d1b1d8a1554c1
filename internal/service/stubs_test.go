package service_test

import (
	"context"

	"bilemo-api/internal/domain"
	"bilemo-api/internal/repository"
)

type stubUsers struct {
	findErr error
}

var _ repository.UserRepository = stubUsers{}

func (stubUsers) Init(context.Context) error { return nil }

func (s stubUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return nil, domain.NotFound("user", id)
}

func (stubUsers) FindFiltered(context.Context, domain.UserFilter) ([]domain.User, error) {
	return nil, nil
}

func (stubUsers) CountFiltered(context.Context, domain.UserFilter) (int64, error) { return 0, nil }

func (stubUsers) Save(context.Context, *domain.User) error { return nil }

func (stubUsers) Delete(_ context.Context, id int64) error { return domain.NotFound("user", id) }

package service

import (
	"context"

	"bilemo-api/internal/domain"
	"bilemo-api/internal/repository"
)

// UserQueryService lists the users of one client.
type UserQueryService interface {
	ListUsers(ctx context.Context, clientID int64, query domain.UserQuery) (*domain.UserPage, error)
}

type userQueryService struct {
	users  repository.UserRepository
	paging Paging
}

func NewUserQueryService(users repository.UserRepository, paging Paging) UserQueryService {
	return &userQueryService{users: users, paging: paging.withDefaults()}
}

func (s *userQueryService) ListUsers(ctx context.Context, clientID int64, query domain.UserQuery) (*domain.UserPage, error) {
	if clientID <= 0 {
		return nil, domain.ErrMissingScope
	}

	if query.Order != domain.SortDesc {
		query.Order = domain.SortAsc
	}
	query.Limit, query.Offset = s.paging.normalize(query.Limit, query.Offset)

	filter := domain.UserFilter{ClientID: clientID, UserQuery: query}
	users, err := s.users.FindFiltered(ctx, filter)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list users", Err: err}
	}
	total, err := s.users.CountFiltered(ctx, filter)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "count users", Err: err}
	}

	return &domain.UserPage{
		Users:  users,
		Total:  total,
		Limit:  query.Limit,
		Offset: query.Offset,
	}, nil
}

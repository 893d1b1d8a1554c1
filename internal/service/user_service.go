package service

import (
	"context"
	"errors"
	"strings"

	"bilemo-api/internal/domain"
	"bilemo-api/internal/repository"
)

// Validator checks an entity and returns every failed constraint.
type Validator interface {
	Validate(value any) ([]domain.Violation, error)
}

// UserInput is the payload of a user creation.
type UserInput struct {
	FirstName     string
	LastName      string
	PhoneNumber   string
	Address       string
	PhoneChoiceID int64
}

// UserService creates, reads and deletes users on behalf of their owning client.
type UserService interface {
	CreateUser(ctx context.Context, input UserInput, ownerClientID int64) (*domain.User, error)
	GetUser(ctx context.Context, userID, requestingClientID int64) (*domain.User, error)
	DeleteUser(ctx context.Context, userID, requestingClientID int64) error
}

type userService struct {
	users     repository.UserRepository
	phones    repository.PhoneRepository
	validator Validator
}

func NewUserService(users repository.UserRepository, phones repository.PhoneRepository, validator Validator) UserService {
	return &userService{
		users:     users,
		phones:    phones,
		validator: validator,
	}
}

func (s *userService) CreateUser(ctx context.Context, input UserInput, ownerClientID int64) (*domain.User, error) {
	if ownerClientID <= 0 {
		return nil, domain.ErrMissingScope
	}

	user := &domain.User{
		ClientID:    ownerClientID,
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Address:     strings.TrimSpace(input.Address),
	}

	if input.PhoneChoiceID != 0 {
		phone, err := s.phones.FindByID(ctx, input.PhoneChoiceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			return nil, &domain.PersistenceError{Op: "load mobile phone", Err: err}
		}
		user.PhoneChoices = []domain.MobilePhone{*phone}
	}

	violations, err := s.validator.Validate(user)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, &domain.PersistenceError{Op: "save user", Err: err}
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID, requestingClientID int64) (*domain.User, error) {
	return s.loadOwned(ctx, userID, requestingClientID)
}

func (s *userService) DeleteUser(ctx context.Context, userID, requestingClientID int64) error {
	user, err := s.loadOwned(ctx, userID, requestingClientID)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return &domain.PersistenceError{Op: "delete user", Err: err}
	}
	return nil
}

// loadOwned is the single ownership check shared by reads and deletes.
// A user owned by someone else is reported as ErrForbidden and nothing else.
func (s *userService) loadOwned(ctx context.Context, userID, requestingClientID int64) (*domain.User, error) {
	if requestingClientID <= 0 {
		return nil, domain.ErrMissingScope
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, &domain.PersistenceError{Op: "load user", Err: err}
	}
	if !user.OwnedBy(requestingClientID) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

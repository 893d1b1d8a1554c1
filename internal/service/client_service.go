package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"bilemo-api/internal/domain"
	"bilemo-api/internal/repository"
)

// ClientService registers and authenticates API clients.
type ClientService interface {
	Register(ctx context.Context, name, email, password, providedSecret string) (*domain.Client, error)
	CreateClient(ctx context.Context, name, email, password string) (*domain.Client, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

type clientService struct {
	clients        repository.ClientRepository
	registerSecret string
}

// NewClientService builds a ClientService. Without a registerSecret, Register
// is closed and clients can only be created through CreateClient.
func NewClientService(clients repository.ClientRepository, registerSecret string) ClientService {
	return &clientService{
		clients:        clients,
		registerSecret: strings.TrimSpace(registerSecret),
	}
}

func (s *clientService) Register(ctx context.Context, name, email, password, providedSecret string) (*domain.Client, error) {
	if s.registerSecret == "" {
		return nil, domain.ErrRegistrationClosed
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(providedSecret)), []byte(s.registerSecret)) != 1 {
		return nil, domain.ErrInvalidRegistrationSecret
	}
	return s.CreateClient(ctx, name, email, password)
}

// CreateClient stores a new client without the registration secret check.
func (s *clientService) CreateClient(ctx context.Context, name, email, password string) (*domain.Client, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	var violations []domain.Violation
	if name == "" {
		violations = append(violations, domain.Violation{Field: "name", Message: "must not be blank"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		violations = append(violations, domain.Violation{Field: "email", Message: "must be a valid email address"})
	}
	if len(password) < 8 {
		violations = append(violations, domain.Violation{Field: "password", Message: "must be at least 8 characters long"})
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	client := &domain.Client{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if _, err := s.clients.Create(ctx, client); err != nil {
		if errors.Is(err, domain.ErrClientAlreadyExists) {
			return nil, domain.ErrClientAlreadyExists
		}
		return nil, &domain.PersistenceError{Op: "create client", Err: err}
	}

	return sanitizeClient(client), nil
}

func (s *clientService) Authenticate(ctx context.Context, email, password string) (*domain.Client, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	client, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, &domain.PersistenceError{Op: "load client", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return sanitizeClient(client), nil
}

func (s *clientService) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, &domain.PersistenceError{Op: "load client", Err: err}
	}
	return sanitizeClient(client), nil
}

func sanitizeClient(client *domain.Client) *domain.Client {
	if client == nil {
		return nil
	}
	return &domain.Client{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

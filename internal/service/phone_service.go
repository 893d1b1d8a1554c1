package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bilemo-api/internal/domain"
	"bilemo-api/internal/repository"
)

// PhoneService reads and feeds the mobile phone catalog.
type PhoneService interface {
	AddPhone(ctx context.Context, phone domain.MobilePhone) (*domain.MobilePhone, error)
	GetPhone(ctx context.Context, id int64) (*domain.MobilePhone, error)
	ListPhones(ctx context.Context, limit, offset int) (*domain.PhonePage, error)
}

type phoneService struct {
	phones repository.PhoneRepository
	paging Paging
}

func NewPhoneService(phones repository.PhoneRepository, paging Paging) PhoneService {
	return &phoneService{phones: phones, paging: paging.withDefaults()}
}

func (s *phoneService) AddPhone(ctx context.Context, phone domain.MobilePhone) (*domain.MobilePhone, error) {
	phone.Brand = strings.TrimSpace(phone.Brand)
	phone.Model = strings.TrimSpace(phone.Model)
	phone.Reference = strings.TrimSpace(phone.Reference)
	if phone.Brand == "" || phone.Model == "" || phone.Reference == "" {
		return nil, errors.New("brand, model and reference are required")
	}
	if phone.PriceCents < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}

	if _, err := s.phones.Create(ctx, &phone); err != nil {
		return nil, &domain.PersistenceError{Op: "create mobile phone", Err: err}
	}
	return &phone, nil
}

func (s *phoneService) GetPhone(ctx context.Context, id int64) (*domain.MobilePhone, error) {
	phone, err := s.phones.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, &domain.PersistenceError{Op: "load mobile phone", Err: err}
	}
	return phone, nil
}

func (s *phoneService) ListPhones(ctx context.Context, limit, offset int) (*domain.PhonePage, error) {
	limit, offset = s.paging.normalize(limit, offset)

	phones, err := s.phones.List(ctx, limit, offset)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list mobile phones", Err: err}
	}
	total, err := s.phones.Count(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "count mobile phones", Err: err}
	}
	return &domain.PhonePage{Phones: phones, Total: total, Limit: limit, Offset: offset}, nil
}

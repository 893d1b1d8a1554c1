package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bilemo-api/internal/domain"
	"bilemo-api/internal/service"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client, err := f.clients.Register(ctx, "Shop", " Shop@Example.com ", "password123", "letmein")
	require.NoError(t, err)
	require.Equal(t, "shop@example.com", client.Email)
	require.Empty(t, client.PasswordHash)

	authed, err := f.clients.Authenticate(ctx, "shop@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, client.ID, authed.ID)

	_, err = f.clients.Authenticate(ctx, "shop@example.com", "wrong-password")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.clients.Authenticate(ctx, "nobody@example.com", "password123")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterRejectsBadSecret(t *testing.T) {
	f := newFixture(t)
	_, err := f.clients.Register(context.Background(), "Shop", "shop@example.com", "password123", "nope")
	require.ErrorIs(t, err, domain.ErrInvalidRegistrationSecret)
}

func TestRegisterValidatesInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.clients.Register(context.Background(), "", "not-an-email", "short", "letmein")

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 3)
}

func TestRegisterDuplicate(t *testing.T) {
	f := newFixture(t)
	f.client(t, "shop@example.com")
	_, err := f.clients.Register(context.Background(), "Shop", "shop@example.com", "password123", "letmein")
	require.ErrorIs(t, err, domain.ErrClientAlreadyExists)
}

func TestGetClientByID(t *testing.T) {
	f := newFixture(t)
	client := f.client(t, "shop@example.com")

	got, err := f.clients.GetByID(context.Background(), client.ID)
	require.NoError(t, err)
	require.Equal(t, "Shop", got.Name)

	_, err = f.clients.GetByID(context.Background(), client.ID+1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterClosedWithoutSecret(t *testing.T) {
	f := newFixture(t)
	closed := service.NewClientService(f.repos.Clients, "")

	_, err := closed.Register(context.Background(), "Shop", "shop@example.com", "password123", "")
	require.ErrorIs(t, err, domain.ErrRegistrationClosed)

	client, err := closed.CreateClient(context.Background(), "Shop", "shop@example.com", "password123")
	require.NoError(t, err)
	require.NotZero(t, client.ID)
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bilemo-api/internal/domain"
	"bilemo-api/internal/repository/sqlite"
	"bilemo-api/internal/service"
	"bilemo-api/internal/validation"
)

type fixture struct {
	repos   *sqlite.Repositories
	clients service.ClientService
	users   service.UserService
	query   service.UserQueryService
	phones  service.PhoneService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos, err := sqlite.NewRepositories(context.Background(), db)
	require.NoError(t, err)

	return &fixture{
		repos:   repos,
		clients: service.NewClientService(repos.Clients, "letmein"),
		users:   service.NewUserService(repos.Users, repos.Phones, validation.New()),
		query:   service.NewUserQueryService(repos.Users, service.Paging{DefaultLimit: 10, MaxLimit: 50}),
		phones:  service.NewPhoneService(repos.Phones, service.Paging{DefaultLimit: 10, MaxLimit: 50}),
	}
}

func (f *fixture) client(t *testing.T, email string) *domain.Client {
	t.Helper()
	c, err := f.clients.Register(context.Background(), "Shop", email, "password123", "letmein")
	require.NoError(t, err)
	return c
}

func validInput() service.UserInput {
	return service.UserInput{
		FirstName:   "Grace",
		LastName:    "Hopper",
		PhoneNumber: "0612345678",
		Address:     "1 Navy Yard",
	}
}

package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"bilemo-api/internal/domain"
	"bilemo-api/internal/repository/sqlite"
)

func newRepos(t *testing.T) *sqlite.Repositories {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos, err := sqlite.NewRepositories(context.Background(), db)
	require.NoError(t, err)
	return repos
}

func createClient(t *testing.T, repos *sqlite.Repositories, email string) *domain.Client {
	t.Helper()
	client := &domain.Client{Name: email, Email: email, PasswordHash: "x"}
	_, err := repos.Clients.Create(context.Background(), client)
	require.NoError(t, err)
	return client
}

func createPhone(t *testing.T, repos *sqlite.Repositories, brand, reference string) *domain.MobilePhone {
	t.Helper()
	phone := &domain.MobilePhone{Brand: brand, Model: brand + " " + reference, Reference: reference, PriceCents: 49900}
	_, err := repos.Phones.Create(context.Background(), phone)
	require.NoError(t, err)
	return phone
}

func createUser(t *testing.T, repos *sqlite.Repositories, clientID int64, lastName string, phones ...domain.MobilePhone) *domain.User {
	t.Helper()
	user := &domain.User{
		ClientID:     clientID,
		FirstName:    "John",
		LastName:     lastName,
		PhoneNumber:  "0612345678",
		Address:      fmt.Sprintf("%s street", lastName),
		PhoneChoices: phones,
	}
	require.NoError(t, repos.Users.Save(context.Background(), user))
	return user
}

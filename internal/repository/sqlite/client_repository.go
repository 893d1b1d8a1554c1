package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bilemo-api/internal/domain"
	"bilemo-api/internal/repository"
)

const createClientsTable = `
CREATE TABLE IF NOT EXISTS clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

var _ repository.ClientRepository = (*ClientRepository)(nil)

func (r *ClientRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createClientsTable); err != nil {
		return fmt.Errorf("create clients table: %w", err)
	}
	return nil
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (int64, error) {
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO clients (name, email, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		client.Name,
		client.Email,
		client.PasswordHash,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("client %s: %w", client.Email, domain.ErrClientAlreadyExists)
		}
		return 0, fmt.Errorf("insert client: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("client last insert id: %w", err)
	}
	client.ID = id
	return id, nil
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, password_hash, created_at, updated_at
FROM clients
WHERE email = ?`,
		email,
	)
	client, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %q: %w", email, domain.ErrNotFound)
	}
	return client, err
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, password_hash, created_at, updated_at
FROM clients
WHERE id = ?`,
		id,
	)
	client, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("client", id)
	}
	return client, err
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var client domain.Client
	if err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.PasswordHash,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan client: %w", err)
	}
	return &client, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

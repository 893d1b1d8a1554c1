package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
func Open(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// a single connection serialises writers and keeps :memory: databases alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return db, nil
}

type initializer interface {
	Init(ctx context.Context) error
}

// Migrate creates the tables of every repository in order. Users reference
// clients and phones, so their repository has to come last.
func Migrate(ctx context.Context, repos ...initializer) error {
	for _, r := range repos {
		if err := r.Init(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Repositories bundles the repositories backed by one database handle.
type Repositories struct {
	Clients *ClientRepository
	Phones  *PhoneRepository
	Users   *UserRepository
}

// NewRepositories builds every repository on db and creates their tables.
func NewRepositories(ctx context.Context, db *sql.DB) (*Repositories, error) {
	repos := &Repositories{
		Clients: &ClientRepository{db: db},
		Phones:  &PhoneRepository{db: db},
		Users:   &UserRepository{db: db},
	}
	if err := Migrate(ctx, repos.Clients, repos.Phones, repos.Users); err != nil {
		return nil, err
	}
	return repos, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bilemo-api/internal/domain"
	"bilemo-api/internal/repository"
)

const createPhonesTable = `
CREATE TABLE IF NOT EXISTS mobile_phones (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	brand TEXT NOT NULL,
	model TEXT NOT NULL,
	reference TEXT NOT NULL UNIQUE,
	price_cents INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const phoneColumns = `p.id, p.brand, p.model, p.reference, p.price_cents, p.description, p.created_at, p.updated_at`

type PhoneRepository struct {
	db *sql.DB
}

func NewPhoneRepository(db *sql.DB) *PhoneRepository {
	return &PhoneRepository{db: db}
}

var _ repository.PhoneRepository = (*PhoneRepository)(nil)

func (r *PhoneRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPhonesTable); err != nil {
		return fmt.Errorf("create mobile_phones table: %w", err)
	}
	return nil
}

func (r *PhoneRepository) Create(ctx context.Context, phone *domain.MobilePhone) (int64, error) {
	now := time.Now().UTC()
	phone.CreatedAt = now
	phone.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO mobile_phones (brand, model, reference, price_cents, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		phone.Brand,
		phone.Model,
		phone.Reference,
		phone.PriceCents,
		phone.Description,
		phone.CreatedAt,
		phone.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert phone: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("phone last insert id: %w", err)
	}
	phone.ID = id
	return id, nil
}

func (r *PhoneRepository) FindByID(ctx context.Context, id int64) (*domain.MobilePhone, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+phoneColumns+` FROM mobile_phones p WHERE p.id = ?`, id)
	phone, err := scanPhone(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("mobile phone", id)
		}
		return nil, err
	}
	return phone, nil
}

func (r *PhoneRepository) List(ctx context.Context, limit, offset int) ([]domain.MobilePhone, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+phoneColumns+`
FROM mobile_phones p
ORDER BY p.brand ASC, p.model ASC, p.id ASC
LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query phones: %w", err)
	}
	defer rows.Close()

	phones := []domain.MobilePhone{}
	for rows.Next() {
		phone, err := scanPhone(rows)
		if err != nil {
			return nil, err
		}
		phones = append(phones, *phone)
	}
	return phones, rows.Err()
}

func (r *PhoneRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mobile_phones`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count phones: %w", err)
	}
	return total, nil
}

func scanPhone(row rowScanner) (*domain.MobilePhone, error) {
	var phone domain.MobilePhone
	if err := row.Scan(
		&phone.ID,
		&phone.Brand,
		&phone.Model,
		&phone.Reference,
		&phone.PriceCents,
		&phone.Description,
		&phone.CreatedAt,
		&phone.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan phone: %w", err)
	}
	return &phone, nil
}

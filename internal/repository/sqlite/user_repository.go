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

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id INTEGER NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	phone_number TEXT NOT NULL,
	address TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(client_id) REFERENCES clients(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_users_client_id ON users(client_id, last_name, id);
CREATE TABLE IF NOT EXISTS user_phone_choices (
	user_id INTEGER NOT NULL,
	phone_id INTEGER NOT NULL,
	PRIMARY KEY (user_id, phone_id),
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY(phone_id) REFERENCES mobile_phones(id) ON DELETE CASCADE
);
`

const userColumns = `u.id, u.client_id, u.first_name, u.last_name, u.phone_number, u.address, u.created_at, u.updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("user", id)
		}
		return nil, err
	}

	choices, err := r.phoneChoices(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PhoneChoices = choices
	return user, nil
}

func (r *UserRepository) phoneChoices(ctx context.Context, userID int64) ([]domain.MobilePhone, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+phoneColumns+`
FROM mobile_phones p
JOIN user_phone_choices c ON c.phone_id = p.id
WHERE c.user_id = ?
ORDER BY p.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query phone choices: %w", err)
	}
	defer rows.Close()

	var phones []domain.MobilePhone
	for rows.Next() {
		phone, err := scanPhone(rows)
		if err != nil {
			return nil, err
		}
		phones = append(phones, *phone)
	}
	return phones, rows.Err()
}

// FindFiltered returns one page of the client's users ordered by last name,
// ties broken by id in the same direction.
func (r *UserRepository) FindFiltered(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	if filter.ClientID <= 0 {
		return nil, domain.ErrMissingScope
	}

	where, args := filterClause(filter)
	dir := "ASC"
	if filter.Order == domain.SortDesc {
		dir = "DESC"
	}

	query := fmt.Sprintf(`
SELECT %s
FROM users u
WHERE %s
ORDER BY u.last_name %s, u.id %s
LIMIT ? OFFSET ?`, userColumns, where, dir, dir)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) CountFiltered(ctx context.Context, filter domain.UserFilter) (int64, error) {
	if filter.ClientID <= 0 {
		return 0, domain.ErrMissingScope
	}

	where, args := filterClause(filter)
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users u WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

func filterClause(filter domain.UserFilter) (string, []any) {
	conds := []string{"u.client_id = ?"}
	args := []any{filter.ClientID}

	if product := strings.TrimSpace(filter.Product); product != "" {
		conds = append(conds, `EXISTS (
	SELECT 1 FROM user_phone_choices c
	JOIN mobile_phones p ON p.id = c.phone_id
	WHERE c.user_id = u.id AND (LOWER(p.reference) = LOWER(?) OR LOWER(p.brand) = LOWER(?))
)`)
		args = append(args, product, product)
	}
	return strings.Join(conds, " AND "), args
}

// Save inserts a new user and its phone choices in a single transaction.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	if user.ID != 0 {
		return fmt.Errorf("user %d already persisted", user.ID)
	}

	now := time.Now().UTC()
	createdAt, updatedAt := user.CreatedAt, user.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	res, err := tx.ExecContext(ctx, `
INSERT INTO users (client_id, first_name, last_name, phone_number, address, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ClientID,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.Address,
		createdAt,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user last insert id: %w", err)
	}

	for _, phone := range user.PhoneChoices {
		if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO user_phone_choices (user_id, phone_id) VALUES (?, ?)`, id, phone.ID); err != nil {
			return fmt.Errorf("insert phone choice: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	return nil
}

// Delete removes the user; phone choices go with it through the cascade.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NotFound("user", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.ClientID,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Address,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

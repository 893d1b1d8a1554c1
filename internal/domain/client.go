package domain

import "time"

// Client is the authenticated tenant that owns users.
type Client struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package domain

import "time"

// MobilePhone is a catalog item users may pick.
type MobilePhone struct {
	ID          int64
	Brand       string
	Model       string
	Reference   string
	PriceCents  int64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PhonePage is one page of the catalog.
type PhonePage struct {
	Phones []MobilePhone
	Total  int64
	Limit  int
	Offset int
}

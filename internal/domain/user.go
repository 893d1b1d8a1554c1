package domain

import "time"

// User is a person managed by a Client. A user is only ever visible to its owner.
type User struct {
	ID           int64
	ClientID     int64
	FirstName    string `validate:"required,max=50" field:"first_name"`
	LastName     string `validate:"required,max=50" field:"last_name"`
	PhoneNumber  string `validate:"required,phone" field:"phone_number"`
	Address      string `validate:"required,max=255" field:"address"`
	PhoneChoices []MobilePhone
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnedBy reports whether the user belongs to the given client.
func (u *User) OwnedBy(clientID int64) bool {
	return u != nil && clientID > 0 && u.ClientID == clientID
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts "asc" or "desc"; an empty value yields SortAsc.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case "", SortAsc:
		return SortAsc, true
	case SortDesc:
		return SortDesc, true
	}
	return "", false
}

// UserQuery carries the optional listing parameters.
type UserQuery struct {
	Product string
	Order   SortOrder
	Limit   int
	Offset  int
}

// UserFilter is a UserQuery bound to the client scope it runs under.
type UserFilter struct {
	ClientID int64
	UserQuery
}

// UserPage is one page of a client's users.
type UserPage struct {
	Users  []User
	Total  int64
	Limit  int
	Offset int
}

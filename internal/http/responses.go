package http

import (
	"fmt"
	"time"

	"bilemo-api/internal/domain"
)

type Links struct {
	Self string `json:"self"`
}

// UserListItem is the "list" view of a user.
type UserListItem struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Links     Links  `json:"_links"`
}

// UserDetail is the "detail" view of a user.
type UserDetail struct {
	ID           int64           `json:"id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	PhoneNumber  string          `json:"phone_number"`
	Address      string          `json:"address"`
	PhoneChoices []PhoneResponse `json:"phone_choices"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
	Links        Links           `json:"_links"`
}

type PageMeta struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Count  int   `json:"count"`
	Total  int64 `json:"total"`
}

type UserListResponse struct {
	Users []UserListItem `json:"users"`
	Meta  PageMeta       `json:"meta"`
}

type PhoneResponse struct {
	ID          int64  `json:"id"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Reference   string `json:"reference"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
	Links       Links  `json:"_links"`
}

type PhoneListResponse struct {
	Phones []PhoneResponse `json:"phones"`
	Meta   PageMeta        `json:"meta"`
}

type ClientResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func userPath(id int64) string  { return fmt.Sprintf("/api/users/%d", id) }
func phonePath(id int64) string { return fmt.Sprintf("/api/phones/%d", id) }

func userPageToResponse(page *domain.UserPage) UserListResponse {
	resp := UserListResponse{
		Users: make([]UserListItem, len(page.Users)),
		Meta: PageMeta{
			Limit:  page.Limit,
			Offset: page.Offset,
			Count:  len(page.Users),
			Total:  page.Total,
		},
	}
	for i, u := range page.Users {
		resp.Users[i] = UserListItem{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Links:     Links{Self: userPath(u.ID)},
		}
	}
	return resp
}

func userToDetail(user domain.User) UserDetail {
	resp := UserDetail{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PhoneNumber:  user.PhoneNumber,
		Address:      user.Address,
		PhoneChoices: make([]PhoneResponse, len(user.PhoneChoices)),
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
		Links:        Links{Self: userPath(user.ID)},
	}
	for i := range user.PhoneChoices {
		resp.PhoneChoices[i] = phoneToResponse(user.PhoneChoices[i])
	}
	return resp
}

func phoneToResponse(phone domain.MobilePhone) PhoneResponse {
	return PhoneResponse{
		ID:          phone.ID,
		Brand:       phone.Brand,
		Model:       phone.Model,
		Reference:   phone.Reference,
		Price:       fmt.Sprintf("%d.%02d", phone.PriceCents/100, phone.PriceCents%100),
		Description: phone.Description,
		Links:       Links{Self: phonePath(phone.ID)},
	}
}

func clientToResponse(client domain.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		CreatedAt: client.CreatedAt.Format(time.RFC3339),
	}
}

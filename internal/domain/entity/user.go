package entity

import (
	"strings"
	"time"
)

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Provider string `json:"provider,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot copies the fields a conversation keeps about its participants.
func (u *User) Snapshot() Participant {
	return Participant{
		ID:       u.ID,
		Name:     u.Name,
		Avatar:   u.Avatar,
		Email:    u.Email,
		Phone:    u.Phone,
		Location: u.Location,
	}
}

// SellerInfo copies the contact fields a product listing shows.
func (u *User) SellerInfo() Seller {
	return Seller{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Location: u.Location,
	}
}

// Account is the persisted user record including credentials. It never
// leaves the repository layer through the API.
type Account struct {
	User
	PasswordHash string `json:"passwordHash,omitempty"`
}

// AvatarFromName derives the two-letter avatar glyph for new accounts.
func AvatarFromName(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

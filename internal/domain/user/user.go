package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoleAdmin grants access to every transaction regardless of ownership
const RoleAdmin = "ADMIN"

// User represents a registered platform user
type User struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	FullName            string     `json:"full_name"`
	CompanyName         string     `json:"company_name"`
	Roles               []string   `json:"roles"`
	ResetToken          *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NormalizeEmail trims and lowercases an email address. Both storage and
// lookup must go through this so case differences never split an account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser creates a user with a normalized email and no roles
func NewUser(email, passwordHash, fullName, companyName string) *User {
	return &User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		FullName:     fullName,
		CompanyName:  companyName,
		Roles:        []string{},
	}
}

// HasRole reports whether the user holds the given role label
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

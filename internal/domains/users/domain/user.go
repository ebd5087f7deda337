package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyID       = errors.New("user id is required")
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
)

// MinPasswordLength is the weakest password the identity provider accepts.
const MinPasswordLength = 6

// Role separates shoppers from staff.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a raw value onto a known role. Empty input selects RoleUser.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// User is the profile aggregate. Credentials live with the identity
// provider, never on the profile.
type User struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// NewUser builds a user ensuring required invariants.
func NewUser(id, name, email string) (*User, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	user := &User{ID: id, Role: RoleUser}
	if err := user.SetName(name); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	return user, nil
}

// SetName trims and validates the display name.
func (u *User) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// SetEmail trims and validates the email address.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// Promote grants the admin role.
func (u *User) Promote() {
	u.Role = RoleAdmin
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyID
	}
	if err := u.SetName(u.Name); err != nil {
		return err
	}
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}
	return nil
}

// ValidatePassword enforces minimal credential strength before handing the
// secret to the identity provider.
func ValidatePassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

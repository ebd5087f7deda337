package mapper

import "github.com/happypaws/happypaws-api/internal/domains/users/domain"

// User is the HTTP representation of an account profile. Credentials never
// appear in responses.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// FromDomainUser maps a domain profile to the transport representation.
func FromDomainUser(u *domain.User) User {
	return User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

// FromDomainUsers maps a slice of domain profiles.
func FromDomainUsers(users []*domain.User) []User {
	result := make([]User, 0, len(users))
	for _, u := range users {
		result = append(result, FromDomainUser(u))
	}
	return result
}

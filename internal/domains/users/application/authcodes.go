package application

import (
	"errors"

	"github.com/happypaws/happypaws-api/internal/domains/users/domain"
	"github.com/happypaws/happypaws-api/internal/domains/users/ports"
)

// Stable auth error codes surfaced to clients alongside the human message.
const (
	CodeInvalidEmail      = "auth/invalid-email"
	CodeUserNotFound      = "auth/user-not-found"
	CodeWrongPassword     = "auth/wrong-password"
	CodeEmailAlreadyInUse = "auth/email-already-in-use"
	CodeWeakPassword      = "auth/weak-password"
	CodeInvalidCredential = "auth/invalid-credential"
	CodeUnknown           = "auth/unknown"
)

var authMessages = map[string]string{
	CodeInvalidEmail:      "Invalid email address",
	CodeUserNotFound:      "No account found with this email",
	CodeWrongPassword:     "Incorrect password",
	CodeEmailAlreadyInUse: "Email already in use",
	CodeWeakPassword:      "Password should be at least 6 characters",
	CodeInvalidCredential: "Invalid credentials",
}

// AuthCode maps an error to its stable auth code. Unknown errors collapse
// to CodeUnknown so internals never leak to clients.
func AuthCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		return CodeInvalidEmail
	case errors.Is(err, domain.ErrEmptyPassword), errors.Is(err, domain.ErrWeakPassword):
		return CodeWeakPassword
	case errors.Is(err, ports.ErrEmailInUse):
		return CodeEmailAlreadyInUse
	case errors.Is(err, ports.ErrIdentityNotFound), errors.Is(err, ports.ErrNotFound):
		return CodeUserNotFound
	case errors.Is(err, ports.ErrInvalidCredentials):
		return CodeInvalidCredential
	default:
		return CodeUnknown
	}
}

// AuthMessage returns the client-facing message for an auth code.
func AuthMessage(code string) string {
	if msg, ok := authMessages[code]; ok {
		return msg
	}
	return "An error occurred. Please try again"
}

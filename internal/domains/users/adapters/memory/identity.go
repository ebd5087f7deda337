package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/happypaws/happypaws-api/internal/domains/users/ports"
)

var _ ports.IdentityProvider = (*IdentityProvider)(nil)

// IdentityProvider keeps credentials in memory. It stands in for a hosted
// auth provider in demos/tests; passwords are stored as given, so it must
// never back a real deployment.
type IdentityProvider struct {
	mu      sync.RWMutex
	byEmail map[string]credential
}

type credential struct {
	id       string
	password string
}

// NewIdentityProvider constructs an empty credential store.
func NewIdentityProvider() *IdentityProvider {
	return &IdentityProvider{byEmail: map[string]credential{}}
}

// Register creates a credential record and returns the identity id.
func (p *IdentityProvider) Register(_ context.Context, email, password string) (string, error) {
	key := emailKey(email)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byEmail[key]; ok {
		return "", ports.ErrEmailInUse
	}
	id := uuid.NewString()
	p.byEmail[key] = credential{id: id, password: strings.TrimSpace(password)}
	return id, nil
}

// Authenticate verifies credentials and returns the identity id.
func (p *IdentityProvider) Authenticate(_ context.Context, email, password string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cred, ok := p.byEmail[emailKey(email)]
	if !ok {
		return "", ports.ErrIdentityNotFound
	}
	if cred.password != strings.TrimSpace(password) {
		return "", ports.ErrInvalidCredentials
	}
	return cred.id, nil
}

// Delete removes a credential record by identity id.
func (p *IdentityProvider) Delete(_ context.Context, identityID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, cred := range p.byEmail {
		if cred.id == identityID {
			delete(p.byEmail, key)
			return nil
		}
	}
	return ports.ErrIdentityNotFound
}

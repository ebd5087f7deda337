package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usermemory "github.com/happypaws/happypaws-api/internal/domains/users/adapters/memory"
	"github.com/happypaws/happypaws-api/internal/domains/users/domain"
	"github.com/happypaws/happypaws-api/internal/domains/users/ports"
)

type failingRepository struct {
	ports.Repository
	failSave bool
}

func (r *failingRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if r.failSave {
		return nil, errors.New("profile store unavailable")
	}
	return r.Repository.Save(ctx, user)
}

func newService(t *testing.T) (*Service, *usermemory.Repository, *usermemory.IdentityProvider) {
	t.Helper()
	repo := usermemory.NewRepository()
	identity := usermemory.NewIdentityProvider()
	return NewService(repo, identity, usermemory.NewSessionStore()), repo, identity
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Thu Trang",
		Email:    "trang@example.com",
		Password: "secret1",
	}
}

func TestRegister_Success(t *testing.T) {
	svc, _, _ := newService(t)

	user, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Thu Trang", user.Name)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestRegister_ValidatesInput(t *testing.T) {
	svc, _, _ := newService(t)

	input := registerInput()
	input.Password = "short"
	_, err := svc.Register(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrWeakPassword)

	input = registerInput()
	input.Email = "not-an-email"
	_, err = svc.Register(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput())
	require.ErrorIs(t, err, ports.ErrEmailInUse)
}

func TestRegister_RollsBackIdentityOnProfileFailure(t *testing.T) {
	repo := &failingRepository{Repository: usermemory.NewRepository(), failSave: true}
	identity := usermemory.NewIdentityProvider()
	svc := NewService(repo, identity, usermemory.NewSessionStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.Error(t, err)

	// The compensating delete must free the email for a retry.
	repo.failSave = false
	user, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestLogin_OpensSession(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	session, err := svc.Login(ctx, "trang@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, registered.ID, session.User.ID)

	resolved, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resolved.ID)
}

func TestLogin_Failures(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "trang@example.com", "wrong-pass")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, ports.ErrIdentityNotFound)

	_, err = svc.Login(ctx, "", "")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	session, err := svc.Login(ctx, "trang@example.com", "secret1")
	require.NoError(t, err)

	svc.Logout(ctx, session.User.ID)

	_, err = svc.Authenticate(ctx, session.Token)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestAuthCode_Table(t *testing.T) {
	cases := map[error]string{
		domain.ErrInvalidEmail:      CodeInvalidEmail,
		domain.ErrWeakPassword:      CodeWeakPassword,
		ports.ErrEmailInUse:         CodeEmailAlreadyInUse,
		ports.ErrIdentityNotFound:   CodeUserNotFound,
		ports.ErrInvalidCredentials: CodeInvalidCredential,
		errors.New("unexpected"):    CodeUnknown,
	}
	for err, code := range cases {
		assert.Equal(t, code, AuthCode(err))
	}
	assert.Equal(t, "Email already in use", AuthMessage(CodeEmailAlreadyInUse))
	assert.Equal(t, "An error occurred. Please try again", AuthMessage("auth/other"))
}

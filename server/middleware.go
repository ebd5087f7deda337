package storefrontserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	usersdomain "github.com/happypaws/happypaws-api/internal/domains/users/domain"
	usersports "github.com/happypaws/happypaws-api/internal/domains/users/ports"
	apierrors "github.com/happypaws/happypaws-api/internal/shared/errors"
)

const contextUserKey = "authenticatedUser"

// LoginPath is the route clients are pointed at when authentication is required.
const LoginPath = "/v1/users/login"

// AuthMiddleware resolves bearer tokens to account profiles.
type AuthMiddleware struct {
	users usersports.Service
}

// NewAuthMiddleware wires the user service into request authentication.
func NewAuthMiddleware(users usersports.Service) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// Authenticate resolves the Authorization header when present and stores the
// profile on the request context. Requests without a valid token continue
// anonymously; route guards decide whether that is acceptable.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" || m == nil || m.users == nil {
			c.Next()
			return
		}
		user, err := m.users.Authenticate(c.Request.Context(), token)
		if err == nil && user != nil {
			c.Set(contextUserKey, user)
		}
		c.Next()
	}
}

// RequireUser aborts anonymous requests with an auth-required problem.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			apierrors.Respond(c, apierrors.NewAuthRequiredProblem(LoginPath))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts requests whose user lacks the admin role.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			apierrors.Respond(c, apierrors.NewAuthRequiredProblem(LoginPath))
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			apierrors.Respond(c, apierrors.ErrForbidden.WithDetail("admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (*usersdomain.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*usersdomain.User)
	return user, ok && user != nil
}

func currentUserID(c *gin.Context) string {
	if user, ok := currentUser(c); ok {
		return user.ID
	}
	return ""
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func respondAuthRequired(c *gin.Context) {
	apierrors.Respond(c, apierrors.NewAuthRequiredProblem(LoginPath))
}

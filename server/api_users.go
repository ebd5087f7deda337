package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/happypaws/happypaws-api/internal/domains/users/adapters/http/mapper"
	userapp "github.com/happypaws/happypaws-api/internal/domains/users/application"
	usersports "github.com/happypaws/happypaws-api/internal/domains/users/ports"
	apierrors "github.com/happypaws/happypaws-api/internal/shared/errors"
)

// UserAPI wires HTTP transport with the users service.
type UserAPI struct {
	service usersports.Service
}

// NewUserAPI creates a UserAPI backed by the provided service.
func NewUserAPI(service usersports.Service) UserAPI {
	return UserAPI{service: service}
}

type registerPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Post /v1/users/register
// Create an account
func (api *UserAPI) RegisterUser(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), usersports.RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respondAuthServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usermapper.FromDomainUser(user))
}

// Post /v1/users/login
// Exchange credentials for a bearer token
func (api *UserAPI) LoginUser(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondAuthServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": session.Token,
		"user":  usermapper.FromDomainUser(session.User),
	})
}

// Post /v1/users/logout
// Invalidate the current user's sessions
func (api *UserAPI) LogoutUser(c *gin.Context) {
	api.service.Logout(c.Request.Context(), currentUserID(c))
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

// Get /v1/users/me
// Fetch the authenticated profile
func (api *UserAPI) GetCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondAuthRequired(c)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}

// Get /v1/users
// List accounts; admin operation
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		respondAuthServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUsers(users))
}

// Delete /v1/users/:userId
// Remove an account; owners and admins only
func (api *UserAPI) DeleteUser(c *gin.Context) {
	id := c.Param("userId")
	user, ok := currentUser(c)
	if !ok {
		respondAuthRequired(c)
		return
	}
	if user.ID != id && !user.IsAdmin() {
		apierrors.Respond(c, apierrors.ErrForbidden.WithDetail("cannot remove another account"))
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondAuthServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// respondAuthServiceError maps user service failures onto stable auth codes
// so clients can render localized messages.
func respondAuthServiceError(c *gin.Context, err error) {
	code := userapp.AuthCode(err)
	var problem apierrors.ProblemDetail
	switch code {
	case userapp.CodeEmailAlreadyInUse:
		problem = apierrors.ErrConflict
	case userapp.CodeInvalidEmail, userapp.CodeWeakPassword:
		problem = apierrors.ErrValidation
	case userapp.CodeUserNotFound:
		problem = apierrors.ErrNotFound
	case userapp.CodeWrongPassword, userapp.CodeInvalidCredential:
		problem = apierrors.ErrAuthRequired
	default:
		problem = apierrors.ErrInternal
	}
	apierrors.Respond(c, problem.
		WithDetail(userapp.AuthMessage(code)).
		WithExtension("code", code))
}

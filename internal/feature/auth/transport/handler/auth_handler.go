// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/transport/http/dto"
	"task_backend/internal/feature/auth/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/validation"
)

// Response messages.
const (
	MsgRegistered      = "User created successfully"
	MsgLoggedIn        = "Success."
	MsgInvalidLogin    = "Login credentials are invalid."
	MsgTokenNotCreated = "Could not create token."
	MsgLoggedOut       = "User has been logged out"
	MsgLogoutFailed    = "Sorry, user cannot be logged out"
	MsgEmailTaken      = "The email has already been taken."
	MsgInternalError   = "Internal server error"
	msgTokenRequired   = "The token field is required."
	uniqueEmailRule    = "unique_email"
	uniqueEmailRuleFmt = "The %s has already been taken."
)

// AuthUsecase defines the use cases for authentication operations.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth     AuthUsecase
	validate *validation.Validator
}

// NewAuthHandler creates a new AuthHandler with the unique_email rule
// backed by auth.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	h := &AuthHandler{auth: auth, validate: validation.New()}
	if err := h.validate.RegisterRule(uniqueEmailRule, h.uniqueEmail, uniqueEmailRuleFmt); err != nil {
		panic(err)
	}
	return h
}

// uniqueEmail passes when the email is not registered yet. Lookup failures
// pass too; the unique index still rejects the insert.
func (h *AuthHandler) uniqueEmail(ctx context.Context, fl validator.FieldLevel) bool {
	taken, err := h.auth.EmailTaken(ctx, fl.Field().String())
	if err != nil {
		slog.Error("email lookup failed", "error", err)
		return true
	}
	return !taken
}

// Register handles POST /register.
// - Validation failure returns 400 with the first error message
// - A duplicate email found by the store returns the same 400 message as the validator
// - Success returns 200 with the created user (without password hash)
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if !api.BindAndValidate(c, h.validate, &req) {
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name.String(), req.Email.String(), string(req.Password))
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			api.Write(c, api.Failure(http.StatusBadRequest, MsgEmailTaken))
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		api.Write(c, api.Failure(http.StatusInternalServerError, MsgInternalError))
		return
	}

	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	api.Write(c, api.Success(MsgRegistered, dto.NewUserRes(user)))
}

// Login handles POST /login.
// - Unknown email or wrong password returns 400 without telling which
// - Failure to issue the token returns 500
// - Success returns 200 with the token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if !api.BindAndValidate(c, h.validate, &req) {
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email.String(), string(req.Password))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email.String(), "remote_addr", c.ClientIP())
			api.Write(c, api.Failure(http.StatusBadRequest, MsgInvalidLogin))
			return
		}
		slog.Error("token issue failed", "error", err, "remote_addr", c.ClientIP())
		api.Write(c, api.Failure(http.StatusInternalServerError, MsgTokenNotCreated))
		return
	}

	api.Write(c, api.Success(MsgLoggedIn, nil).WithToken(token))
}

// Logout handles GET /logout by revoking the request token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := jwtmw.CurrentToken(c)
	if token == "" {
		token = jwtmw.TokenFromRequest(c)
	}
	if token == "" {
		c.JSON(http.StatusOK, dto.FieldErrorsRes{
			Error: map[string][]string{"token": {msgTokenRequired}},
		})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.LogoutRes{Success: false, Message: MsgLogoutFailed})
		return
	}
	c.JSON(http.StatusOK, dto.LogoutRes{Success: true, Message: MsgLoggedOut})
}

// GetUser handles GET /get_user and returns the user resolved by the Auth Gate.
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, ok := jwtmw.CurrentUser[*entity.User](c)
	if !ok || user == nil {
		api.Write(c, api.Failure(http.StatusBadRequest, jwtmw.MsgTokenMissing))
		return
	}
	c.JSON(http.StatusOK, dto.CurrentUserRes{User: dto.NewUserRes(user)})
}

package jwtmw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
)

// Context keys set by AuthRequired.
const (
	ContextUser  = "authUser"
	ContextToken = "authToken"
)

// Messages returned by the Auth Gate.
const (
	MsgTokenMissing = "Authorization Token not found"
	MsgTokenInvalid = "Token is Invalid"
	MsgTokenExpired = "Token is Expired"
)

// Authenticator resolves a raw bearer token to the user it was issued to.
// It must fail with ErrTokenMissing, ErrTokenInvalid or ErrTokenExpired for
// token problems.
type Authenticator[U any] interface {
	Authenticate(ctx context.Context, token string) (U, error)
}

// AuthRequired returns a Gin middleware that validates the request token and
// restricts access to authenticated users only. On success the resolved user
// and the raw token are stored in the context.
func AuthRequired[U any](auth Authenticator[U]) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenMissing):
				api.Abort(c, api.Failure(http.StatusBadRequest, MsgTokenMissing))
			case errors.Is(err, ErrTokenExpired):
				api.Abort(c, api.Failure(http.StatusBadRequest, MsgTokenExpired))
			case errors.Is(err, ErrTokenInvalid):
				api.Abort(c, api.Failure(http.StatusBadRequest, MsgTokenInvalid))
			default:
				slog.Error("token authentication failed", "error", err, "path", c.FullPath())
				api.Abort(c, api.Failure(http.StatusInternalServerError, "Internal server error"))
			}
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// TokenFromRequest extracts the bearer token from, in order, the
// Authorization header, the "token" query parameter, the "token" form field
// and the "token" key of a JSON body. A consumed JSON body is restored so
// handlers can bind it again.
func TokenFromRequest(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")); token != "" {
			return token
		}
	}
	if token := c.Query("token"); token != "" {
		return token
	}
	if c.Request.Body == nil || c.Request.Method == http.MethodGet {
		return ""
	}

	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return c.PostForm("token")
	case gin.MIMEJSON:
		return tokenFromJSONBody(c)
	}
	return ""
}

func tokenFromJSONBody(c *gin.Context) string {
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}

	var payload struct {
		Token api.Scalar `json:"token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Token.String()
}

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser[U any](c *gin.Context) (U, bool) {
	var zero U
	v, ok := c.Get(ContextUser)
	if !ok {
		return zero, false
	}
	u, ok := v.(U)
	return u, ok
}

// CurrentToken returns the raw token stored by AuthRequired.
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextToken)
}

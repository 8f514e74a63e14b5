package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/platform/validation"
)

// Bind fills obj from the query string and, for requests with a body, from the
// form or JSON payload. Body values override query values of the same name.
// Struct fields are matched through their `form` and `json` tags; validation is
// left to the caller.
func Bind(c *gin.Context, obj any) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		return err
	}
	if c.Request.Method == http.MethodGet || c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBind(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// BindAndValidate binds obj and validates it with v. On failure it writes a
// 400 envelope carrying the first error message and returns false.
func BindAndValidate(c *gin.Context, v *validation.Validator, obj any) bool {
	if err := Bind(c, obj); err != nil {
		Write(c, Failure(http.StatusBadRequest, v.FromBindError(err).Message))
		return false
	}
	if verr := v.Validate(c.Request.Context(), obj); verr != nil {
		Write(c, Failure(http.StatusBadRequest, verr.Message))
		return false
	}
	return true
}

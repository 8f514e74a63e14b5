// Package api defines the JSON envelope shared by every endpoint and the
// request binding helpers used by the transport handlers.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope is the uniform response wrapper.
// ResponseCode always equals the HTTP status code of the response.
type Envelope struct {
	Status       string `json:"status"`
	Error        bool   `json:"error"`
	ResponseCode int    `json:"response_code"`
	Message      string `json:"message,omitempty"`
	Data         any    `json:"data,omitempty"`
	Token        string `json:"token,omitempty"`
}

// Success builds a 200 envelope.
func Success(message string, data any) Envelope {
	return Envelope{
		Status:       statusSuccess,
		ResponseCode: http.StatusOK,
		Message:      message,
		Data:         data,
	}
}

// Failure builds an error envelope with the given status code.
func Failure(code int, message string) Envelope {
	return Envelope{
		Status:       statusError,
		Error:        true,
		ResponseCode: code,
		Message:      message,
	}
}

// WithToken returns a copy of e carrying a bearer token.
func (e Envelope) WithToken(token string) Envelope {
	e.Token = token
	return e
}

// Write sends e using its ResponseCode as the HTTP status.
func Write(c *gin.Context, e Envelope) {
	c.JSON(e.ResponseCode, e)
}

// Abort sends e and stops the handler chain.
func Abort(c *gin.Context, e Envelope) {
	c.AbortWithStatusJSON(e.ResponseCode, e)
}

// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "task_backend/internal/api"

// RegisterReq represents the request for /register.
// Fields are validated in declaration order and only the first failure is reported.
type RegisterReq struct {
	Name     api.Scalar `json:"name" form:"name" validate:"required,notblank"`
	Email    api.Scalar `json:"email" form:"email" validate:"required,notblank,email,unique_email"`
	Password api.Scalar `json:"password" form:"password" validate:"required,min=6,max=50"`
}

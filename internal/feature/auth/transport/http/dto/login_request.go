package dto

import "task_backend/internal/api"

// LoginReq represents the request for /login.
type LoginReq struct {
	Email    api.Scalar `json:"email" form:"email" validate:"required,notblank,email"`
	Password api.Scalar `json:"password" form:"password" validate:"required,min=6,max=50"`
}

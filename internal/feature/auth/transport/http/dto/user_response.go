package dto

import (
	"time"

	"task_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public view of a user. The password hash is never included.
type UserRes struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserRes converts a user entity to its response form.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CurrentUserRes is the body of /get_user.
type CurrentUserRes struct {
	User UserRes `json:"user"`
}

// LogoutRes is the body of /logout.
type LogoutRes struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FieldErrorsRes reports per-field messages, keyed by field name.
type FieldErrorsRes struct {
	Error map[string][]string `json:"error"`
}

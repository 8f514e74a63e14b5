package usecase

import (
	"context"
	"errors"
	"fmt"

	"task_backend/internal/feature/auth/domain/entity"
	jwtmw "task_backend/internal/platform/jwt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the email is unknown so that login
// timing does not reveal which emails are registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// passwordBytes returns the part of password that bcrypt hashes. Longer
// passwords are truncated to the first maxPasswordBytes bytes on both register
// and login, so multibyte passwords within the length rule still work.
func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists if the
	// email is already registered.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound if no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound if no user has the ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// ExistsByEmail reports whether the email is already registered.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// TokenService issues, validates and revokes bearer tokens.
type TokenService interface {
	Issue(userID uint) (string, error)
	Validate(ctx context.Context, token string) (*jwtmw.Claims, error)
	Invalidate(ctx context.Context, token string) error
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users    UserRepository
	tokens   TokenService
	hashCost int
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, tokens TokenService) *authUsecase {
	return &authUsecase{
		users:    users,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register hashes the password and stores a new user.
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword(passwordBytes(password), u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and issues a token.
// The bcrypt comparison runs even for unknown emails to blunt timing attacks.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), passwordBytes(password))

	if user == nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenIssue, err)
	}
	return token, nil
}

// Logout revokes token.
func (u *authUsecase) Logout(ctx context.Context, token string) error {
	return u.tokens.Invalidate(ctx, token)
}

// Authenticate resolves token to its user. A valid token whose user no longer
// exists is reported as jwtmw.ErrTokenInvalid.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := u.tokens.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := u.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, jwtmw.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// EmailTaken reports whether email is already registered.
func (u *authUsecase) EmailTaken(ctx context.Context, email string) (bool, error) {
	return u.users.ExistsByEmail(ctx, email)
}

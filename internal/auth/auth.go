// Package auth provides password hashing, the user factory and the
// register/login flows on top of the store. There is no token or session
// protocol; "logging in" stores a user snapshot in the session slot.
package auth

import (
	"context"
	"time"

	"agora/internal/models"
	"agora/internal/store"
	"agora/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAvatar is the glyph assigned to new accounts.
const DefaultAvatar = "👤"

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewUser builds a user record with a fresh id and default fields. The
// password is hashed; validation is the caller's job (Register does it).
func NewUser(username, password, email, role string) (models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	if role == "" {
		role = models.RoleUser
	}
	return models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		Avatar:       DefaultAvatar,
		Karma:        0,
		Role:         role,
		CreatedAt:    time.Now().UnixMilli(),
		PasswordHash: hash,
	}, nil
}

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// Register validates the input, creates the account and logs it in. The
// username uniqueness check is case-insensitive and enforced again by the
// store on write.
func Register(ctx context.Context, s *store.Store, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}

	user, err := NewUser(in.Username, in.Password, in.Email, models.RoleUser)
	if err != nil {
		return nil, err
	}
	if err := s.AddUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.SetCurrentUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and stores the session snapshot. Banned
// accounts cannot log in.
func Login(ctx context.Context, s *store.Store, username, password string) (*models.User, error) {
	user, err := s.UserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		return nil, models.NewValidationError("Invalid username or password")
	}
	if user.IsBanned {
		return nil, models.NewUnauthorizedError("This account is banned")
	}
	if err := s.SetCurrentUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// IsAdmin reports whether the user holds the admin role.
func IsAdmin(u *models.User) bool {
	return u != nil && u.Role == models.RoleAdmin
}

// IsModerator reports whether the user moderates (moderator or admin).
func IsModerator(u *models.User) bool {
	return u != nil && (u.Role == models.RoleModerator || u.Role == models.RoleAdmin)
}

// CanEditPost reports whether the user may edit the given author's post.
func CanEditPost(u *models.User, authorID string) bool {
	if u == nil {
		return false
	}
	return u.ID == authorID || IsAdmin(u)
}

// CanDeletePost reports whether the user may delete the given author's
// post.
func CanDeletePost(u *models.User, authorID string) bool {
	return CanEditPost(u, authorID)
}

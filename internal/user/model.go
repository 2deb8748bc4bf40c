package user

import (
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(apperror.KindNotFound, http.StatusNotFound, "There is no user with such ID")
	ErrEmailAlreadyUsed   = apperror.New(apperror.KindConflict, http.StatusConflict, "User with such email already exists")
	ErrInvalidCredentials = apperror.New(apperror.KindForbidden, http.StatusUnauthorized, "invalid email or password")
)

// User represents a marketplace account. The same account can act as a
// booker, an item owner, or a requester.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

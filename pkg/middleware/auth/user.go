package middleware

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

var ErrUnauthorized = errors.New("unauthorized")

// UserID returns the authenticated user id placed in the context by
// RequireAuth or by the API gateway.
func UserID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(CtxUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, ErrUnauthorized
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

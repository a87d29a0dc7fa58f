package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Caller is the authenticated identity attached to a request. Report
// visibility scoping branches on IsAdmin; everything else only needs UserID.
type Caller struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool
}

// FromContext extracts the caller from JWT claims placed in context by the
// auth middleware.
func FromContext(c *fiber.Ctx) (Caller, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Caller{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Caller{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Caller{}, errors.New("missing sub claim")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return Caller{}, err
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return Caller{
		UserID:   userID,
		Username: username,
		IsAdmin:  role == "admin",
	}, nil
}

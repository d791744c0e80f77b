package access

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the authenticated caller, as carried by the access token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// FromContext extracts the caller identity from JWT claims in the Fiber
// context. The jwt middleware stores the parsed token under "user".
func FromContext(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return Identity{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, errors.New("missing sub claim")
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, err
	}

	email, _ := claims["email"].(string)
	return Identity{UserID: id, Email: email}, nil
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rashidkhan4067/Rescue-Project/internal/config"
	"github.com/rashidkhan4067/Rescue-Project/internal/dto"

	jwtware "github.com/gofiber/contrib/jwt"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

package serverutils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the uniform error envelope for every failed request.
func ErrorResponse(message string) fiber.Map {
	return fiber.Map{"error": message}
}

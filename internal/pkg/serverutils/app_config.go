package serverutils

import "github.com/gofiber/fiber/v2"

// NewAppConfig is the fiber configuration shared by the server and handler
// tests. Immutable is required: sessions keep the cookie value and form
// fields after the request buffers are reused.
func NewAppConfig() fiber.Config {
	return fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB
		Immutable: true,
	}
}

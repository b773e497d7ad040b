// Package rayid tags every request with a unique ray ID.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderName is the request and response header carrying the ray ID.
	HeaderName = "X-Ray-ID"
	// LocalsKey is the Fiber locals key the ray ID is stored under.
	LocalsKey = "ray_id"
)

// New returns a handler that stores a ray ID in the request locals and echoes
// it in the response headers. An incoming X-Ray-ID header is reused.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}

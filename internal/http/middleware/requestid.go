package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the Fiber locals key holding the request ID.
	RequestIDLocalKey = "request_id"

	maxRequestIDLen = 128
)

// RequestID reuses a well-formed incoming X-Request-ID or generates a UUID,
// stores it in locals and echoes it on the response.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// RequestIDFrom returns the ID stored by RequestID, or "".
func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDLocalKey).(string)
	return id
}

// validRequestID accepts short tokens of letters, digits, '-', '_' and '.'.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		ch := id[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-' || ch == '_' || ch == '.':
		default:
			return false
		}
	}
	return true
}

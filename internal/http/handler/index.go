package handler

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed static/index.html
var indexHTML []byte

// Index serves the upload page.
func Index() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(indexHTML)
	}
}

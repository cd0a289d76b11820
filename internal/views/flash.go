package views

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	flashSuccess = "flash_success"
	flashError   = "flash_error"

	flashPath   = "/food-products"
	flashMaxAge = 60
)

func setFlash(c *fiber.Ctx, kind string, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     kind,
		Value:    url.QueryEscape(message),
		Path:     flashPath,
		MaxAge:   flashMaxAge,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlash reads a flash message and expires its cookie.
func popFlash(c *fiber.Ctx, kind string) string {
	raw := c.Cookies(kind)
	if raw == "" {
		return ""
	}

	c.Cookie(&fiber.Cookie{
		Name:     kind,
		Value:    "",
		Path:     flashPath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}

func withFlash(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	data["Success"] = popFlash(c, flashSuccess)
	data["Error"] = popFlash(c, flashError)
	return data
}

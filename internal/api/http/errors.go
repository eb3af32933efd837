package httpapi

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the app-wide fiber error handler. Dashboard pages get a short
// HTML page pointing back to a fresh search; everything else gets JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	if !isPage(c.Path()) {
		return c.Status(code).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	}

	message := "Something went wrong."
	if fe != nil && code < fiber.StatusInternalServerError {
		message = fe.Message
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(code).SendString(fmt.Sprintf(errorPage, html.EscapeString(message)))
}

const errorPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Weather Search</title><link rel="stylesheet" href="/static/style.css"></head>
<body>
  <div id="err-message">%s</div>
  <p><a href="/weather">Start a new search</a></p>
</body>
</html>
`

// isPage reports whether path is a browser-facing dashboard route.
func isPage(path string) bool {
	if path == "/weather" {
		return true
	}
	return strings.HasPrefix(path, "/weather/s/") && !strings.HasSuffix(path, "/state")
}

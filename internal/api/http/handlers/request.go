package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-shop-service/internal/api/http/body"
	apperrors "github.com/spec-kit/coffee-shop-service/pkg/util/errorutil"
)

const (
	msgInvalidJSON   = "Invalid JSON payload"
	msgMissingFields = "Missing required fields"
	msgInvalidUserID = "Invalid user ID"
	paramMenuID      = "id"
	paramUserID      = "userId"
	querySearch      = "search"
	queryCategory    = "category"
)

// decodeJSON parses the collected body into out.
func decodeJSON(c *fiber.Ctx, out interface{}) error {
	raw, ok := c.Locals(body.LocalKey).([]byte)
	if !ok {
		raw = c.Body()
	}
	if err := c.App().Config().JSONDecoder(raw, out); err != nil {
		return apperrors.NewValidationError(msgInvalidJSON)
	}
	return nil
}

// pathParam returns a segment captured by the dispatcher.
func pathParam(c *fiber.Ctx, name string) string {
	value, _ := c.Locals(name).(string)
	return value
}

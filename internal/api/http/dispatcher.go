package http

import (
	"bytes"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/coffee-shop-service/internal/api/http/body"
	"github.com/spec-kit/coffee-shop-service/internal/observability"
	apperrors "github.com/spec-kit/coffee-shop-service/pkg/util/errorutil"
)

const preflightRoute = "preflight"

// Route is one entry of the dispatch table. A pattern segment starting with
// ':' captures the path segment at that position; captured values are stored
// in fiber locals under the parameter name.
type Route struct {
	Method  string
	Pattern string
	Name    string
	// Body routes have their payload collected before the handler runs.
	Body bool
	// MissingParam is returned as a 400 when the captured segment is blank.
	MissingParam string
	Handler      fiber.Handler
}

// Dispatcher maps requests onto an ordered route table. The first matching
// route wins.
type Dispatcher struct {
	routes    []Route
	collector body.Collector
	logger    *zap.Logger
}

// NewDispatcher builds a dispatcher over routes.
func NewDispatcher(routes []Route, collector body.Collector, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{routes: routes, collector: collector, logger: logger}
}

// Routes returns a copy of the table in match order.
func (d *Dispatcher) Routes() []Route {
	return append([]Route(nil), d.routes...)
}

// Handle is the terminal fiber handler.
func (d *Dispatcher) Handle(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodOptions {
		c.Locals(observability.RouteLocalKey, preflightRoute)
		c.Status(fiber.StatusOK)
		return nil
	}

	route, params, ok := Match(d.routes, c.Method(), c.Path())
	if !ok {
		return apperrors.NewRouteNotFound()
	}
	c.Locals(observability.RouteLocalKey, route.Name)

	for name, value := range params {
		if route.MissingParam != "" && strings.TrimSpace(value) == "" {
			return apperrors.NewValidationError(route.MissingParam)
		}
		c.Locals(name, value)
	}

	if route.Body {
		payload, err := d.collect(c)
		if err != nil {
			return err
		}
		c.Locals(body.LocalKey, payload)
	}

	return route.Handler(c)
}

func (d *Dispatcher) collect(c *fiber.Ctx) ([]byte, error) {
	var src io.Reader = c.Context().RequestBodyStream()
	if src == nil {
		src = bytes.NewReader(c.Body())
	}

	payload, err := d.collector.Collect(c.UserContext(), src, func() {
		c.Context().SetConnectionClose()
	})
	switch {
	case errors.Is(err, body.ErrPayloadTooLarge):
		d.logger.Warn("request body over limit", zap.String("path", c.Path()))
		return nil, apperrors.NewPayloadTooLarge(err)
	case err != nil:
		return nil, apperrors.NewInternalError(err)
	}
	return payload, nil
}

// Match finds the first route for method and path and returns its captured
// parameters.
func Match(routes []Route, method, path string) (Route, map[string]string, bool) {
	segments := strings.Split(path, "/")
	for _, route := range routes {
		if route.Method != method {
			continue
		}
		if params, ok := matchPattern(route.Pattern, segments); ok {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

func matchPattern(pattern string, segments []string) (map[string]string, bool) {
	parts := strings.Split(pattern, "/")
	dynamic := strings.Contains(pattern, "/:")

	if !dynamic {
		return nil, len(parts) == len(segments) && equalSegments(parts, segments)
	}
	if len(segments) < len(parts) {
		return nil, false
	}

	params := map[string]string{}
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			value, err := url.PathUnescape(segments[i])
			if err != nil {
				value = segments[i]
			}
			params[part[1:]] = value
			continue
		}
		if part != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func equalSegments(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

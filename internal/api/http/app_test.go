package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/coffee-shop-service/internal/api/http/handlers"
	"github.com/spec-kit/coffee-shop-service/internal/config"
	"github.com/spec-kit/coffee-shop-service/internal/domain"
	"github.com/spec-kit/coffee-shop-service/internal/observability"
	"github.com/spec-kit/coffee-shop-service/internal/repository/memory"
	"github.com/spec-kit/coffee-shop-service/internal/service"
)

type fakes struct {
	menu       *memory.MenuRepo
	categories *memory.CategoryRepo
	orders     *memory.OrderRepo
	users      *memory.UserRepo
	metrics    *observability.Metrics
}

func newTestApp(t *testing.T) (*fiber.App, *fakes) {
	t.Helper()
	coffee := int64(1)
	f := &fakes{
		menu: &memory.MenuRepo{Items: []domain.MenuItem{
			{ID: 7, Name: "Caramel Latte", Price: 45000, CategoryID: &coffee},
			{ID: 8, Name: "Butter Croissant", Price: 25000},
		}},
		categories: &memory.CategoryRepo{Categories: []domain.Category{{ID: 1, Name: "Coffee"}}},
		orders:     &memory.OrderRepo{},
		users:      &memory.UserRepo{},
		metrics:    observability.NewMetrics(),
	}

	catalog := service.NewCatalogService(service.CatalogDependencies{MenuRepo: f.menu, CategoryRepo: f.categories, Metrics: f.metrics})
	orders := service.NewOrderService(service.OrderDependencies{OrderRepo: f.orders})
	auth := service.NewAuthService(config.AuthConfig{BcryptCost: bcrypt.MinCost}, service.AuthDependencies{UserRepo: f.users})

	app, _ := NewApp(AppConfig{
		Name: "test",
		Routes: RouteConfig{
			Health: handlers.NewHealthHandler("test", "dev"),
			Menu:   handlers.NewMenuHandler(catalog),
			Orders: handlers.NewOrdersHandler(orders),
			Users:  handlers.NewUsersHandler(auth),
		},
		Metrics: f.metrics,
	})
	return app, f
}

func do(t *testing.T, app *fiber.App, method, target, payload string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if payload != "" {
		reader = strings.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func messageFrom(t *testing.T, raw []byte) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body.Message
}

func TestMenuLookupScenarios(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantMsg    string
	}{
		{name: "derived slug", target: "/menu/caramel-latte", wantStatus: http.StatusOK},
		{name: "primary id", target: "/menu/7", wantStatus: http.StatusOK},
		{name: "unknown id", target: "/menu/999", wantStatus: http.StatusNotFound, wantMsg: "Menu item not found"},
		{name: "whitespace id", target: "/menu/%20", wantStatus: http.StatusBadRequest, wantMsg: "Menu ID required"},
		{name: "empty segment", target: "/menu/", wantStatus: http.StatusBadRequest, wantMsg: "Menu ID required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := do(t, app, fiber.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, messageFrom(t, raw))
				return
			}
			var item map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &item))
			assert.EqualValues(t, 7, item["id"])
			assert.Equal(t, "Caramel Latte", item["name"])
		})
	}
}

func TestMenuLookupEmptyCatalog(t *testing.T) {
	app, f := newTestApp(t)
	f.menu.Items = nil

	resp, raw := do(t, app, fiber.MethodGet, "/menu/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Menu item not found", messageFrom(t, raw))
}

func TestMenuListAndSearch(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodGet, "/menu", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &all))
	assert.Len(t, all, 2)

	resp, raw = do(t, app, fiber.MethodGet, "/menu/search?search=LATTE&category=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var found []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &found))
	require.Len(t, found, 1)
	assert.EqualValues(t, 7, found[0]["id"])

	resp, raw = do(t, app, fiber.MethodGet, "/menu/search?search=tea", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestCategories(t *testing.T) {
	app, f := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":1,"name":"Coffee"}]`, string(raw))

	f.categories.Err = errors.New("connection refused")
	resp, raw = do(t, app, fiber.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Database error", messageFrom(t, raw))
	assert.NotContains(t, string(raw), "connection refused")
}

func TestCreateOrder(t *testing.T) {
	app, f := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodPost, "/order", `{"user_id":1,"order_type":"dine-in","total_price":45000}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Order created","order_id":1}`, string(raw))
	require.Len(t, f.orders.Orders, 1)
	assert.Equal(t, "pending", f.orders.Orders[0].Status)

	resp, _ = do(t, app, fiber.MethodPost, "/order", `{"user_id":"2","order_type":"takeaway","total_price":"12000","status":"paid"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "paid", f.orders.Orders[1].Status)
}

func TestCreateOrderRejectsBeforeStore(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{name: "missing user", payload: `{"order_type":"dine-in","total_price":45000}`, wantMsg: "Missing required fields"},
		{name: "zero total", payload: `{"user_id":1,"order_type":"dine-in","total_price":0}`, wantMsg: "Missing required fields"},
		{name: "empty type", payload: `{"user_id":1,"order_type":"","total_price":10}`, wantMsg: "Missing required fields"},
		{name: "empty object", payload: `{}`, wantMsg: "Missing required fields"},
		{name: "malformed", payload: `{"user_id":1,`, wantMsg: "Invalid JSON payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, f := newTestApp(t)
			resp, raw := do(t, app, fiber.MethodPost, "/order", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.wantMsg, messageFrom(t, raw))
			assert.Zero(t, f.orders.Calls)
		})
	}
}

func TestOrdersByUser(t *testing.T) {
	app, _ := newTestApp(t)

	for _, payload := range []string{
		`{"user_id":5,"order_type":"dine-in","total_price":10}`,
		`{"user_id":5,"order_type":"takeaway","total_price":20}`,
	} {
		resp, _ := do(t, app, fiber.MethodPost, "/order", payload)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, raw := do(t, app, fiber.MethodGet, "/orders/5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &orders))
	require.Len(t, orders, 2)
	assert.EqualValues(t, 2, orders[0]["order_id"])
	assert.Equal(t, "takeaway", orders[0]["order_type"])
	assert.Contains(t, orders[0], "created_at")

	resp, raw = do(t, app, fiber.MethodGet, "/orders/77", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestOrdersByUserValidation(t *testing.T) {
	app, f := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodGet, "/orders/", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User ID required", messageFrom(t, raw))

	resp, raw = do(t, app, fiber.MethodGet, "/orders/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid user ID", messageFrom(t, raw))
	assert.Zero(t, f.orders.Calls)
}

func TestRegisterAndLogin(t *testing.T) {
	app, f := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodPost, "/register", `{"name":"Sari","email":"sari@example.com","password":"kopi123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"message":"User registered successfully","user_id":1}`, string(raw))

	resp, raw = do(t, app, fiber.MethodPost, "/register", `{"name":"Sari","email":"sari@example.com","password":"other"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", messageFrom(t, raw))
	assert.Equal(t, 1, f.users.CreateCalls)

	resp, raw = do(t, app, fiber.MethodPost, "/login", `{"email":"sari@example.com","password":"kopi123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Login successful","user_id":1,"name":"Sari"}`, string(raw))
	assert.NotContains(t, string(raw), "password")

	resp, raw = do(t, app, fiber.MethodPost, "/login", `{"email":"sari@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid password", messageFrom(t, raw))

	resp, raw = do(t, app, fiber.MethodPost, "/login", `{"email":"ghost@example.com","password":"kopi123"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "User not found", messageFrom(t, raw))
}

func TestAuthMissingFields(t *testing.T) {
	app, f := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodPost, "/register", `{"email":"a@b.c","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", messageFrom(t, raw))

	resp, raw = do(t, app, fiber.MethodPost, "/login", `{"email":"a@b.c"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", messageFrom(t, raw))

	assert.Zero(t, f.users.Lookups)
	assert.Zero(t, f.users.CreateCalls)
}

func TestOversizedBodyRejected(t *testing.T) {
	app, f := newTestApp(t)
	payload := `{"name":"` + strings.Repeat("a", 1_000_000) + `"}`

	resp, raw := do(t, app, fiber.MethodPost, "/register", payload)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "Payload too large", messageFrom(t, raw))
	assert.Zero(t, f.users.Lookups)
}

func TestPreflightAndHeaders(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodOptions, "/anything/at/all", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, raw)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))

	resp, _ = do(t, app, fiber.MethodGet, "/menu", "")
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get(observability.RequestIDHeader))
}

func TestUnmatchedRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	for _, tc := range []struct{ method, target string }{
		{fiber.MethodGet, "/nope"},
		{fiber.MethodPost, "/menu"},
		{fiber.MethodGet, "/register"},
		{fiber.MethodGet, "/categories/extra"},
	} {
		resp, raw := do(t, app, tc.method, tc.target, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, tc.target)
		assert.Equal(t, "Route not found", messageFrom(t, raw), tc.target)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"), tc.target)
	}
}

func TestPanicBecomesInternalError(t *testing.T) {
	app, _ := NewApp(AppConfig{Routes: RouteConfig{Menu: handlers.NewMenuHandler(nil)}})

	resp, raw := do(t, app, fiber.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", messageFrom(t, raw))

	resp, _ = do(t, app, fiber.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "server keeps serving")
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthRoutes(t *testing.T) {
	healthy := handlers.NewHealthHandler("svc", "1.0", handlers.Dependency{Name: "postgres", Pinger: pingFunc(func(context.Context) error { return nil })})
	app, _ := NewApp(AppConfig{Routes: RouteConfig{Health: healthy}})

	resp, _ := do(t, app, fiber.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, fiber.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	down := handlers.NewHealthHandler("svc", "1.0", handlers.Dependency{Name: "redis", Pinger: pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") })})
	app, _ = NewApp(AppConfig{Routes: RouteConfig{Health: down}})
	resp, raw := do(t, app, fiber.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(raw), "dial tcp: refused")
}

func TestRequestsAreMeasured(t *testing.T) {
	app, f := newTestApp(t)

	do(t, app, fiber.MethodGet, "/menu/caramel-latte", "")
	do(t, app, fiber.MethodGet, "/nope", "")

	for _, name := range []string{
		"coffee_shop_http_requests_total",
		"coffee_shop_http_errors_total",
		"coffee_shop_resolver_resolutions_total",
	} {
		count, err := testutil.GatherAndCount(f.metrics.Registry(), name)
		require.NoError(t, err)
		assert.Positive(t, count, name)
	}
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-hq/taskboard-backend/internal/config"
	"github.com/taskboard-hq/taskboard-backend/internal/handlers"
	"github.com/taskboard-hq/taskboard-backend/internal/routes"
	"github.com/taskboard-hq/taskboard-backend/internal/services"
	"github.com/taskboard-hq/taskboard-backend/internal/store"
)

const testAdminSecret = "handler-test-admin-secret"

// testEnv wires the full router against in-memory stores so handler tests
// exercise real middleware, real tokens and real services.
type testEnv struct {
	app   *fiber.App
	users *store.InMemoryUserStore
	tasks *store.InMemoryTaskStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:   "handler-test-secret",
		JWTExpiry:   time.Hour,
		AdminSecret: testAdminSecret,
	}

	users := store.NewInMemoryUserStore()
	tasks := store.NewInMemoryTaskStore(users)

	authService := services.NewAuthService(users, cfg)
	taskService := services.NewTaskService(tasks, users)

	app := fiber.New()
	routes.Setup(app, cfg, users,
		handlers.NewAuthHandler(authService),
		handlers.NewTaskHandler(taskService),
		handlers.NewHealthHandler(),
	)

	return &testEnv{app: app, users: users, tasks: tasks}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// register creates a user through the API and returns a login token.
func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()

	resp := e.request(t, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	return e.login(t, email, password)
}

// registerAdmin creates an admin through the create-admin endpoint and
// returns a login token.
func (e *testEnv) registerAdmin(t *testing.T, name, email, password string) string {
	t.Helper()

	resp := e.request(t, fiber.MethodPost, "/api/v1/auth/create-admin", "", fiber.Map{
		"name": name, "email": email, "password": password, "adminSecret": testAdminSecret,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	return e.login(t, email, password)
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	resp := e.request(t, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": email, "password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestAuthRoutes_Register(t *testing.T) {
	env := newTestEnv(t)

	t.Run("success", func(t *testing.T) {
		resp := env.request(t, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
			"name": "Alice", "email": "alice@example.com", "password": "hunter22",
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "User registered successfully", body["message"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp := env.request(t, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
			"name": "Alice Again", "email": "alice@example.com", "password": "other",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "user already exists", body["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := env.request(t, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
			"email": "short@example.com",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestAuthRoutes_Login(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@example.com", "hunter22")

	t.Run("success returns token and role", func(t *testing.T) {
		resp := env.request(t, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
			"email": "alice@example.com", "password": "hunter22",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body["token"])
		assert.Equal(t, "user", body["role"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		resp := env.request(t, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
			"email": "alice@example.com", "password": "wrong",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "invalid email or password", body["message"])
	})
}

func TestAuthRoutes_CreateAdmin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("wrong secret", func(t *testing.T) {
		resp := env.request(t, fiber.MethodPost, "/api/v1/auth/create-admin", "", fiber.Map{
			"name": "Root", "email": "root@example.com", "password": "p", "adminSecret": "nope",
		})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "invalid admin secret", body["message"])
	})

	t.Run("correct secret yields an admin login", func(t *testing.T) {
		resp := env.request(t, fiber.MethodPost, "/api/v1/auth/create-admin", "", fiber.Map{
			"name": "Root", "email": "root@example.com", "password": "p", "adminSecret": testAdminSecret,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "Admin account created successfully", body["message"])

		resp = env.request(t, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
			"email": "root@example.com", "password": "p",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var login map[string]any
		decodeBody(t, resp, &login)
		assert.Equal(t, "admin", login["role"])
	})
}

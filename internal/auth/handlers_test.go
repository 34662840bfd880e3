package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"binder-backend/internal/middleware"
	"binder-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthApp(t *testing.T) (*fiber.App, *miniredis.Miniredis) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	mr := miniredis.RunT(t)
	cfg := middleware.SessionConfig{Secret: "test", RedisURL: "redis://" + mr.Addr()}
	sessionMw, rdb, err := middleware.Session(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	h := &Handlers{DB: db, UserFinder: &GormUserFinder{DB: db}, Rdb: rdb, Config: cfg}

	app := fiber.New()
	app.Use(sessionMw)
	app.Post("/api/v1/auth/register", h.Register)
	app.Post("/api/v1/auth/login", h.Login)
	app.Get("/api/v1/auth/me", h.Me)
	app.Delete("/api/v1/auth/logout", h.Logout)
	return app, mr
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegisterLoginMeLogout(t *testing.T) {
	app, mr := setupAuthApp(t)

	// Register starts a session.
	body, _ := json.Marshal(map[string]string{
		"username": "ash_k",
		"email":    "ash@example.com",
		"password": "pikachu1!",
	})
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NotNil(t, sessionCookie(resp))

	// Login issues a fresh session cookie backed by Redis.
	body, _ = json.Marshal(map[string]string{"email": "ash@example.com", "password": "pikachu1!"})
	req = httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	require.True(t, mr.Exists("session:"+cookie.Value))

	// The cookie authenticates /me.
	req = httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	data, _ := out["data"].(map[string]interface{})
	user, _ := data["user"].(map[string]interface{})
	assert.Equal(t, "ash_k", user["username"])

	// Logout deletes the Redis session and expires the cookie.
	req = httptest.NewRequest("DELETE", "/api/v1/auth/logout", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, mr.Exists("session:"+cookie.Value))
}

func TestMe_NoSession(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := setupAuthApp(t)

	body, _ := json.Marshal(map[string]string{
		"username": "ash_k",
		"email":    "ash@example.com",
		"password": "pikachu1!",
	})
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	body, _ = json.Marshal(map[string]string{"email": "ash@example.com", "password": "wrong"})
	req = httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	app, _ := setupAuthApp(t)

	body, _ := json.Marshal(map[string]string{
		"username": "ash_k",
		"email":    "ash@example.com",
		"password": "pikachu1!",
	})
	for i, want := range []int{fiber.StatusCreated, fiber.StatusConflict} {
		req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err, "attempt %d", i)
		assert.Equal(t, want, resp.StatusCode)
	}
}

package collection

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"binder-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHandlersTest(t *testing.T, userID uuid.UUID) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Card{}, &models.CollectionEntry{}))

	h := &Handlers{Service: &Service{DB: db}}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != uuid.Nil {
			c.Locals("user", map[string]interface{}{"user_id": userID.String()})
		}
		return c.Next()
	})
	app.Post("/api/v1/collection/add-variant", h.AddVariant)
	app.Post("/api/v1/collection/remove-variant", h.RemoveVariant)
	app.Get("/api/v1/collection/view-collection", h.ViewCollection)
	return app
}

func TestAddVariant_InvalidCardID(t *testing.T) {
	app := setupHandlersTest(t, uuid.New())

	body, _ := json.Marshal(map[string]string{"card_id": "not-a-uuid", "variant": "holo"})
	req := httptest.NewRequest("POST", "/api/v1/collection/add-variant", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAddVariant_MissingCardID(t *testing.T) {
	app := setupHandlersTest(t, uuid.New())

	req := httptest.NewRequest("POST", "/api/v1/collection/add-variant", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAddVariant_UnknownCard(t *testing.T) {
	app := setupHandlersTest(t, uuid.New())

	body, _ := json.Marshal(map[string]string{"card_id": uuid.New().String(), "variant": "normal"})
	req := httptest.NewRequest("POST", "/api/v1/collection/add-variant", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestViewCollection_NoSession(t *testing.T) {
	app := setupHandlersTest(t, uuid.Nil)

	req := httptest.NewRequest("GET", "/api/v1/collection/view-collection", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Remove on an absent row responds success ("Nothing to remove"), not an error.
func TestRemoveVariant_AbsentRespondsOK(t *testing.T) {
	app := setupHandlersTest(t, uuid.New())

	body, _ := json.Marshal(map[string]string{"card_id": uuid.New().String(), "variant": "holo"})
	req := httptest.NewRequest("POST", "/api/v1/collection/remove-variant", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Nothing to remove", out["message"])
}

package trade

import (
	"bytes"
	"context"
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

func setupHandlersTest(t *testing.T, userID uuid.UUID) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Card{}, &models.CollectionEntry{},
		&models.Trade{}, &models.TradeItem{},
	))

	h := &Handlers{Service: &Service{DB: db}}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != uuid.Nil {
			c.Locals("user", map[string]interface{}{"user_id": userID.String()})
		}
		return c.Next()
	})
	app.Post("/api/v1/trades/submit-trade", h.SubmitTrade)
	app.Get("/api/v1/trades/get-trades", h.GetTrades)
	app.Get("/api/v1/trades/view-trade/:trade_id", h.ViewTrade)
	app.Post("/api/v1/trades/respond-trade", h.RespondToTrade)
	return app, db
}

func TestSubmitTrade_NoSession(t *testing.T) {
	app, _ := setupHandlersTest(t, uuid.Nil)

	req := httptest.NewRequest("POST", "/api/v1/trades/submit-trade", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubmitTrade_MissingRecipient(t *testing.T) {
	app, _ := setupHandlersTest(t, uuid.New())

	req := httptest.NewRequest("POST", "/api/v1/trades/submit-trade", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmitTrade_InvalidRecipientID(t *testing.T) {
	app, _ := setupHandlersTest(t, uuid.New())

	body, _ := json.Marshal(map[string]interface{}{"recipient_id": "not-a-uuid"})
	req := httptest.NewRequest("POST", "/api/v1/trades/submit-trade", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	errObj, _ := out["error"].(map[string]interface{})
	assert.Equal(t, "Invalid UUID format for recipient_id", errObj["message"])
}

func TestSubmitTrade_UnknownRecipient(t *testing.T) {
	app, _ := setupHandlersTest(t, uuid.New())

	body, _ := json.Marshal(map[string]interface{}{
		"recipient_id": uuid.New().String(),
		"my_offer":     map[string]interface{}{"money": 5.0},
		"their_offer":  map[string]interface{}{},
	})
	req := httptest.NewRequest("POST", "/api/v1/trades/submit-trade", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmitTrade_Created(t *testing.T) {
	userID := uuid.New()
	app, db := setupHandlersTest(t, userID)

	recipient := models.User{Username: "misty", Email: "misty@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&recipient).Error)

	body, _ := json.Marshal(map[string]interface{}{
		"recipient_id": recipient.UserID.String(),
		"my_offer":     map[string]interface{}{"money": 5.0},
		"their_offer":  map[string]interface{}{},
		"message":      "cash for nothing",
	})
	req := httptest.NewRequest("POST", "/api/v1/trades/submit-trade", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Trade submitted successfully", out["message"])

	var count int64
	require.NoError(t, db.Model(&models.Trade{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestViewTrade_InvalidID(t *testing.T) {
	app, _ := setupHandlersTest(t, uuid.New())

	req := httptest.NewRequest("GET", "/api/v1/trades/view-trade/nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestViewTrade_NotFound(t *testing.T) {
	app, _ := setupHandlersTest(t, uuid.New())

	req := httptest.NewRequest("GET", "/api/v1/trades/view-trade/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRespondToTrade_InvalidAction(t *testing.T) {
	userID := uuid.New()
	app, db := setupHandlersTest(t, userID)

	recipient := models.User{Username: "misty", Email: "misty@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&recipient).Error)

	svc := &Service{DB: db}
	mine := NewOffer(SideMine)
	mine.SetMoney(1)
	created, err := svc.SubmitTrade(context.Background(), SubmitInput{
		InitiatorID: userID,
		RecipientID: recipient.UserID,
		MyOffer:     mine,
		TheirOffer:  NewOffer(SideTheirs),
	})
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]string{"trade_id": created.TradeID.String(), "action": "shred"})
	req := httptest.NewRequest("POST", "/api/v1/trades/respond-trade", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetTrades_Empty(t *testing.T) {
	app, _ := setupHandlersTest(t, uuid.New())

	req := httptest.NewRequest("GET", "/api/v1/trades/get-trades", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	meta, _ := out["metadata"].(map[string]interface{})
	assert.Equal(t, float64(0), meta["count"])
}

package wishlist

import (
	"context"
	"testing"

	"binder-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWishlistTest(t *testing.T) (*Service, uuid.UUID, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.CardSet{}, &models.Card{}, &models.WishlistItem{},
	))

	user := models.User{Username: "ash", Email: "ash@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	set := models.CardSet{Code: "base1", Name: "Base Set"}
	require.NoError(t, db.Create(&set).Error)
	card := models.Card{SetID: set.SetID, Number: "4", Name: "Charizard", MarketPrice: 200}
	require.NoError(t, db.Create(&card).Error)

	return &Service{DB: db}, user.UserID, card.CardID
}

func TestAdd(t *testing.T) {
	svc, userID, cardID := setupWishlistTest(t)
	ctx := context.Background()

	item, err := svc.Add(ctx, userID, cardID)
	require.NoError(t, err)
	assert.Equal(t, cardID, item.CardID)

	_, err = svc.Add(ctx, userID, cardID)
	require.Error(t, err)
	assert.Equal(t, "Card already in wishlist", err.Error())

	_, err = svc.Add(ctx, userID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, "Card not found", err.Error())
}

func TestRemoveIfPresent(t *testing.T) {
	svc, userID, cardID := setupWishlistTest(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, cardID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveIfPresent(ctx, userID, cardID))

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Absent row is not an error.
	require.NoError(t, svc.RemoveIfPresent(ctx, userID, cardID))
	require.NoError(t, svc.RemoveIfPresent(ctx, userID, uuid.New()))
}

func TestList(t *testing.T) {
	svc, userID, cardID := setupWishlistTest(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, cardID)
	require.NoError(t, err)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	card, ok := list[0]["card"].(models.Card)
	require.True(t, ok)
	assert.Equal(t, "Charizard", card.Name)

	other, err := svc.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

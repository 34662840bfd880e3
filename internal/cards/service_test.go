package cards

import (
	"context"
	"testing"
	"time"

	"binder-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCardsTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CardSet{}, &models.Card{}))

	old := time.Date(1999, 1, 9, 0, 0, 0, 0, time.UTC)
	recent := time.Date(1999, 6, 16, 0, 0, 0, 0, time.UTC)
	base := models.CardSet{Code: "base1", Name: "Base Set", ReleaseDate: &old, TotalCards: 102}
	jungle := models.CardSet{Code: "jungle", Name: "Jungle", ReleaseDate: &recent, TotalCards: 64}
	require.NoError(t, db.Create(&base).Error)
	require.NoError(t, db.Create(&jungle).Error)

	cards := []models.Card{
		{SetID: base.SetID, Number: "4", Name: "Charizard", MarketPrice: 200},
		{SetID: base.SetID, Number: "58", Name: "Pikachu", MarketPrice: 5},
		{SetID: jungle.SetID, Number: "60", Name: "Pikachu", MarketPrice: 3},
	}
	require.NoError(t, db.Create(&cards).Error)

	return &Service{DB: db}
}

func TestListSets(t *testing.T) {
	svc := setupCardsTest(t)

	sets, err := svc.ListSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "jungle", sets[0].Code)
	assert.Equal(t, "base1", sets[1].Code)
}

func TestListSetCards(t *testing.T) {
	svc := setupCardsTest(t)

	cards, err := svc.ListSetCards(context.Background(), "base1")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "4", cards[0].Number)

	_, err = svc.ListSetCards(context.Background(), "fossil")
	require.Error(t, err)
	assert.Equal(t, "Set not found", err.Error())
}

func TestGetCard(t *testing.T) {
	svc := setupCardsTest(t)

	found, err := svc.Search(context.Background(), "charizard")
	require.NoError(t, err)
	require.Len(t, found, 1)

	card, err := svc.GetCard(context.Background(), found[0].CardID)
	require.NoError(t, err)
	assert.Equal(t, "Charizard", card.Name)

	_, err = svc.GetCard(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, "Card not found", err.Error())
}

func TestSearch(t *testing.T) {
	svc := setupCardsTest(t)

	// Case-insensitive substring match across sets.
	found, err := svc.Search(context.Background(), "PIKA")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = svc.Search(context.Background(), "mewtwo")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = svc.Search(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, "Search query is required", err.Error())
}

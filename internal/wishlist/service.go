package wishlist

import (
	"context"
	"errors"

	"binder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Add puts a card on the user's wishlist.
func (s *Service) Add(ctx context.Context, userID, cardID uuid.UUID) (*models.WishlistItem, error) {
	var card models.Card
	if err := s.DB.WithContext(ctx).Where("card_id = ?", cardID).First(&card).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Card not found")
		}
		return nil, err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("Card already in wishlist")
	}

	item := models.WishlistItem{UserID: userID, CardID: cardID}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveIfPresent deletes the wishlist row if it exists. A missing row is not
// an error; this is the post-commit hook the collection toggles call after a
// successful add.
func (s *Service) RemoveIfPresent(ctx context.Context, userID, cardID uuid.UUID) error {
	return s.DB.WithContext(ctx).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		Delete(&models.WishlistItem{}).Error
}

// List returns the user's wishlist with card details, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]map[string]interface{}, error) {
	var items []models.WishlistItem
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	cardIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		cardIDs = append(cardIDs, item.CardID)
	}
	cards := make(map[uuid.UUID]models.Card, len(cardIDs))
	if len(cardIDs) > 0 {
		var rows []models.Card
		if err := s.DB.WithContext(ctx).Where("card_id IN ?", cardIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, card := range rows {
			cards[card.CardID] = card
		}
	}

	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		card := cards[item.CardID]
		out = append(out, map[string]interface{}{
			"wishlist_id": item.WishlistID,
			"card":        card,
			"added_at":    item.CreatedAt,
		})
	}
	return out, nil
}

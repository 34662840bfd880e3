package cards

import (
	"context"
	"errors"
	"strings"

	"binder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const searchLimit = 50

type Service struct {
	DB *gorm.DB
}

// ListSets returns all sets, newest release first.
func (s *Service) ListSets(ctx context.Context) ([]models.CardSet, error) {
	var sets []models.CardSet
	if err := s.DB.WithContext(ctx).Order("release_date DESC").Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

// ListSetCards returns a set's cards in collector-number order.
func (s *Service) ListSetCards(ctx context.Context, setCode string) ([]models.Card, error) {
	var set models.CardSet
	if err := s.DB.WithContext(ctx).Where("code = ?", setCode).First(&set).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Set not found")
		}
		return nil, err
	}
	var cards []models.Card
	if err := s.DB.WithContext(ctx).Where("set_id = ?", set.SetID).Order("number ASC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// GetCard returns one card by id.
func (s *Service) GetCard(ctx context.Context, cardID uuid.UUID) (*models.Card, error) {
	var card models.Card
	if err := s.DB.WithContext(ctx).Where("card_id = ?", cardID).First(&card).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Card not found")
		}
		return nil, err
	}
	return &card, nil
}

// Search finds cards by name substring, case-insensitive, capped at 50.
func (s *Service) Search(ctx context.Context, query string) ([]models.Card, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("Search query is required")
	}
	var cards []models.Card
	if err := s.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Order("name ASC").
		Limit(searchLimit).
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

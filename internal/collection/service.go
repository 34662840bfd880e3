package collection

import (
	"context"
	"errors"
	"time"

	"binder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Toggles add/remove a single unit at the fixed grading used by the quick
// collection buttons.
const toggleCondition = string(models.ConditionNearMint)

// WishlistRemover removes a card from a user's wishlist, treating "not
// present" as success.
type WishlistRemover interface {
	RemoveIfPresent(ctx context.Context, userID, cardID uuid.UUID) error
}

// AchievementEvaluator re-checks a user's achievements after a collection
// change and reports what was newly unlocked or revoked.
type AchievementEvaluator interface {
	Evaluate(ctx context.Context, userID uuid.UUID) (unlocked, revoked []string, err error)
}

// PostCommitEffect is a best-effort side effect the caller runs after the
// primary mutation has committed. Failures must never fail the primary
// operation; the caller decides logging and ordering.
type PostCommitEffect struct {
	Name string
	Run  func(ctx context.Context) error
}

// MutationResult is what a variant toggle reports back: the refreshed rollup
// for the touched card (nil when its total reached zero) and the side effects
// to run after commit.
type MutationResult struct {
	Aggregate *AggregateItem     `json:"aggregate"`
	NoOp      bool               `json:"-"`
	Effects   []PostCommitEffect `json:"-"`
	Unlocked  []string           `json:"unlocked,omitempty"`
	Revoked   []string           `json:"revoked,omitempty"`
}

type Service struct {
	DB           *gorm.DB
	Wishlist     WishlistRemover
	Achievements AchievementEvaluator
}

// AddVariant increments the user's count of one card variant by exactly one
// unit. The increment is an atomic upsert-with-delta so two racing adds both
// land; the row is created at quantity 1 when absent. Returns the committed
// rollup plus wishlist-removal and achievement-check effects.
func (s *Service) AddVariant(ctx context.Context, userID, cardID uuid.UUID, variant models.Variant) (*MutationResult, error) {
	result := &MutationResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card models.Card
		if err := tx.Where("card_id = ?", cardID).First(&card).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New("Card not found")
			}
			return err
		}

		entry := models.CollectionEntry{
			UserID:    userID,
			CardID:    cardID,
			Variant:   string(variant),
			Condition: toggleCondition,
			Quantity:  1,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "card_id"}, {Name: "variant"}, {Name: "condition"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + 1"),
				"updated_at": time.Now(),
			}),
		}).Create(&entry).Error; err != nil {
			return err
		}

		agg, err := aggregateCard(tx, userID, cardID)
		if err != nil {
			return err
		}
		result.Aggregate = agg
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Effects = []PostCommitEffect{
		s.wishlistEffect(userID, cardID),
		s.achievementEffect(userID, result),
	}
	return result, nil
}

// RemoveVariant decrements the user's count of one card variant by one unit,
// deleting the row when the count leaves 1. A missing row is a benign no-op.
// The decrement is conditional (quantity > 1) so racing removals cannot drive
// a row below zero.
func (s *Service) RemoveVariant(ctx context.Context, userID, cardID uuid.UUID, variant models.Variant) (*MutationResult, error) {
	result := &MutationResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		const key = "user_id = ? AND card_id = ? AND variant = ? AND condition = ?"

		dec := tx.Model(&models.CollectionEntry{}).
			Where(key, userID, cardID, string(variant), toggleCondition).
			Where("quantity > 1").
			UpdateColumns(map[string]interface{}{
				"quantity":   gorm.Expr("quantity - 1"),
				"updated_at": time.Now(),
			})
		if dec.Error != nil {
			return dec.Error
		}
		if dec.RowsAffected == 0 {
			del := tx.Where(key, userID, cardID, string(variant), toggleCondition).
				Where("quantity = 1").
				Delete(&models.CollectionEntry{})
			if del.Error != nil {
				return del.Error
			}
			if del.RowsAffected == 0 {
				// Nothing to remove.
				result.NoOp = true
				return nil
			}
		}

		agg, err := aggregateCard(tx, userID, cardID)
		if err != nil {
			return err
		}
		result.Aggregate = agg
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.NoOp {
		result.Effects = []PostCommitEffect{s.achievementEffect(userID, result)}
	}
	return result, nil
}

// ViewCollection returns the user's full aggregated collection.
func (s *Service) ViewCollection(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*AggregateItem, error) {
	var rows []models.CollectionEntry
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return Aggregate(rows), nil
}

// ViewCard returns the rollup for one card, or "Card not in collection".
func (s *Service) ViewCard(ctx context.Context, userID, cardID uuid.UUID) (*AggregateItem, error) {
	var rows []models.CollectionEntry
	if err := s.DB.WithContext(ctx).Where("user_id = ? AND card_id = ?", userID, cardID).Find(&rows).Error; err != nil {
		return nil, err
	}
	agg := Aggregate(rows)[cardID]
	if agg == nil {
		return nil, errors.New("Card not in collection")
	}
	return agg, nil
}

func aggregateCard(tx *gorm.DB, userID, cardID uuid.UUID) (*AggregateItem, error) {
	var rows []models.CollectionEntry
	if err := tx.Where("user_id = ? AND card_id = ?", userID, cardID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return Aggregate(rows)[cardID], nil
}

func (s *Service) wishlistEffect(userID, cardID uuid.UUID) PostCommitEffect {
	return PostCommitEffect{
		Name: "wishlist_remove",
		Run: func(ctx context.Context) error {
			if s.Wishlist == nil {
				return nil
			}
			return s.Wishlist.RemoveIfPresent(ctx, userID, cardID)
		},
	}
}

func (s *Service) achievementEffect(userID uuid.UUID, result *MutationResult) PostCommitEffect {
	return PostCommitEffect{
		Name: "achievement_check",
		Run: func(ctx context.Context) error {
			if s.Achievements == nil {
				return nil
			}
			unlocked, revoked, err := s.Achievements.Evaluate(ctx, userID)
			if err != nil {
				return err
			}
			result.Unlocked = unlocked
			result.Revoked = revoked
			return nil
		},
	}
}

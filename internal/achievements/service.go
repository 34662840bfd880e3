package achievements

import (
	"context"
	"encoding/json"
	"time"

	"binder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Evaluate recomputes the user's qualifying achievements, persists the
// difference (insert newly unlocked, delete revoked) and returns both lists.
// Called as a best-effort post-commit hook after collection mutations.
func (s *Service) Evaluate(ctx context.Context, userID uuid.UUID) (unlocked, revoked []string, err error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	qualifying := make(map[string]bool, len(Definitions))
	for _, def := range Definitions {
		if def.Qualifies(snap) {
			qualifying[def.Key] = true
		}
	}

	var existing []models.UserAchievement
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		return nil, nil, err
	}
	held := make(map[string]bool, len(existing))
	for _, a := range existing {
		held[a.AchievementKey] = true
	}

	progress, _ := json.Marshal(snap)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key := range qualifying {
			if held[key] {
				continue
			}
			row := models.UserAchievement{
				UserID:         userID,
				AchievementKey: key,
				Progress:       datatypes.JSON(progress),
				UnlockedAt:     time.Now(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			unlocked = append(unlocked, key)
		}
		for key := range held {
			if qualifying[key] {
				continue
			}
			if err := tx.Where("user_id = ? AND achievement_key = ?", userID, key).
				Delete(&models.UserAchievement{}).Error; err != nil {
				return err
			}
			revoked = append(revoked, key)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return unlocked, revoked, nil
}

// List returns the user's unlocked achievements joined with their definitions.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]map[string]interface{}, error) {
	var rows []models.UserAchievement
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	byKey := make(map[string]Definition, len(Definitions))
	for _, def := range Definitions {
		byKey[def.Key] = def
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		def := byKey[row.AchievementKey]
		out = append(out, map[string]interface{}{
			"key":         row.AchievementKey,
			"name":        def.Name,
			"description": def.Description,
			"unlocked_at": row.UnlockedAt,
			"progress":    row.Progress,
		})
	}
	return out, nil
}

func (s *Service) snapshot(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	var snap Snapshot
	db := s.DB.WithContext(ctx)

	var rows []models.CollectionEntry
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return snap, err
	}
	owned := make(map[uuid.UUID]bool)
	for _, row := range rows {
		snap.TotalCards += row.Quantity
		owned[row.CardID] = true
		if models.ParseVariant(row.Variant) == models.VariantHolo {
			snap.HoloCards += row.Quantity
		}
	}
	snap.UniqueCards = len(owned)

	completed, err := s.completedSets(db, owned)
	if err != nil {
		return snap, err
	}
	snap.CompletedSets = completed

	var accepted int64
	if err := db.Model(&models.Trade{}).
		Where("(initiator_id = ? OR recipient_id = ?) AND status = ?", userID, userID, models.TradeAccepted).
		Count(&accepted).Error; err != nil {
		return snap, err
	}
	snap.AcceptedTrades = int(accepted)

	return snap, nil
}

// completedSets counts sets where the user owns every card in any variant.
func (s *Service) completedSets(db *gorm.DB, owned map[uuid.UUID]bool) (int, error) {
	if len(owned) == 0 {
		return 0, nil
	}
	ownedIDs := make([]uuid.UUID, 0, len(owned))
	for id := range owned {
		ownedIDs = append(ownedIDs, id)
	}

	var cards []models.Card
	if err := db.Where("card_id IN ?", ownedIDs).Find(&cards).Error; err != nil {
		return 0, err
	}
	ownedPerSet := make(map[uuid.UUID]int)
	for _, card := range cards {
		ownedPerSet[card.SetID]++
	}

	completed := 0
	for setID, count := range ownedPerSet {
		var set models.CardSet
		if err := db.Where("set_id = ?", setID).First(&set).Error; err != nil {
			return 0, err
		}
		if set.TotalCards > 0 && count >= set.TotalCards {
			completed++
		}
	}
	return completed, nil
}

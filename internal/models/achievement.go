package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserAchievement is one unlocked achievement. Rows are inserted when the
// user first qualifies and deleted if a later re-evaluation revokes it
// (e.g. cards traded away drop the collection below a threshold).
type UserAchievement struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_achievement_key" json:"user_id"`
	AchievementKey string         `gorm:"column:achievement_key;not null;uniqueIndex:idx_achievement_key" json:"achievement_key"`
	Progress       datatypes.JSON `gorm:"column:progress" json:"progress"`
	UnlockedAt     time.Time      `gorm:"column:unlocked_at;not null" json:"unlocked_at"`
}

func (UserAchievement) TableName() string {
	return "UserAchievements"
}

func (a *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

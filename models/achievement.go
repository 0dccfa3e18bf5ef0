// models/achievement.go
package models

import "time"

// Achievement is the persisted mirror of a catalog definition. Rows are
// created lazily by code ("get or create") the first time the catalog
// is referenced; the definition itself stays immutable in the binary.
// IsActive can be toggled by admins to retire an entry without deleting
// its unlock history.
type Achievement struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Code        string  `gorm:"not null;uniqueIndex" json:"code"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"not null" json:"description"`
	Category    string  `gorm:"not null;index" json:"category"` // reading, streak, flashcards, assessments, social, milestones
	Tier        string  `gorm:"not null" json:"tier"`           // bronze, silver, gold, platinum
	Threshold   float64 `gorm:"not null" json:"threshold"`
	XPReward    int     `gorm:"default:0" json:"xp_reward"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
	SortOrder   int     `gorm:"default:0" json:"sort_order"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserAchievement is one unlock record. The composite unique index on
// (user, achievement) is the safety net that makes concurrent award
// attempts collapse into a single unlock.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`

	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

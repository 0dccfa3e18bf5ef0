// services/progression.go - Authoritative achievement awarding and leveling
package services

import (
	"errors"
	"fmt"
	"time"

	"readquest/gamification"
	"readquest/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressionService is the server-authoritative side of the
// achievement engine. It evaluates the injected catalog against fresh
// persisted statistics and owns the only writable copy of unlock
// records and XP/level.
type ProgressionService struct {
	db      *gorm.DB
	catalog gamification.Catalog
	stats   StatsProvider
}

func NewProgressionService(db *gorm.DB, catalog gamification.Catalog, stats StatsProvider) *ProgressionService {
	return &ProgressionService{db: db, catalog: catalog, stats: stats}
}

// UnlockedAchievement pairs an achievement row with its unlock time.
type UnlockedAchievement struct {
	models.Achievement
	UnlockedAt time.Time `json:"unlocked_at"`
}

// AwardResult describes one CheckAndAward run.
type AwardResult struct {
	NewlyUnlocked []UnlockedAchievement `json:"newly_unlocked"`
	XPAwarded     int                   `json:"xp_awarded"`
	PreviousXP    int                   `json:"previous_xp"`
	NewXP         int                   `json:"new_xp"`
	PreviousLevel int                   `json:"previous_level"`
	NewLevel      int                   `json:"new_level"`
	NewTitle      string                `json:"new_title"`
	LeveledUp     bool                  `json:"leveled_up"`
}

// AchievementStatus is one catalog entry merged with the user's unlock
// state.
type AchievementStatus struct {
	models.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// CategoryCount aggregates unlock progress within one category.
type CategoryCount struct {
	Total    int `json:"total"`
	Unlocked int `json:"unlocked"`
}

// StatusList is the full ListWithStatus response.
type StatusList struct {
	Achievements []AchievementStatus      `json:"achievements"`
	Total        int                      `json:"total"`
	Unlocked     int                      `json:"unlocked"`
	ByCategory   map[string]CategoryCount `json:"by_category"`
}

// ensureCatalog materializes every catalog definition as a database row
// ("get or create by code"). Two concurrent first-time callers may race
// on the insert; the loser hits the unique index on code and falls back
// to re-reading the winner's row.
func (s *ProgressionService) ensureCatalog() (map[string]models.Achievement, error) {
	rows := make(map[string]models.Achievement, len(s.catalog))
	for _, def := range s.catalog {
		var row models.Achievement
		err := s.db.Where("code = ?", def.Code).First(&row).Error
		if err == nil {
			rows[def.Code] = row
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("load achievement %s: %w", def.Code, err)
		}

		row = models.Achievement{
			Code:        def.Code,
			Name:        def.Name,
			Description: def.Description,
			Category:    string(def.Category),
			Tier:        string(def.Tier),
			Threshold:   def.Threshold,
			XPReward:    def.XPReward,
			Icon:        def.Icon,
			Color:       def.Color,
			SortOrder:   def.SortOrder,
			IsActive:    def.IsActive,
		}
		if err := s.db.Create(&row).Error; err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("create achievement %s: %w", def.Code, err)
			}
			// Lost the creation race; the row exists now.
			if err := s.db.Where("code = ?", def.Code).First(&row).Error; err != nil {
				return nil, fmt.Errorf("reload achievement %s: %w", def.Code, err)
			}
		}
		rows[def.Code] = row
	}
	return rows, nil
}

// CheckAndAward evaluates every active, not-yet-unlocked achievement
// against a fresh authoritative snapshot, persists new unlock records,
// and applies the summed XP and recomputed level as one atomic step.
// Calling it again with no new qualifying activity is a no-op.
func (s *ProgressionService) CheckAndAward(userID uint) (*AwardResult, error) {
	rows, err := s.ensureCatalog()
	if err != nil {
		return nil, err
	}

	unlockedIDs, err := s.unlockedAchievementIDs(userID)
	if err != nil {
		return nil, err
	}

	snap, err := s.stats.BuildSnapshot(userID)
	if err != nil {
		return nil, fmt.Errorf("build stats snapshot: %w", err)
	}

	result := &AwardResult{NewlyUnlocked: []UnlockedAchievement{}}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, def := range s.catalog {
			row, ok := rows[def.Code]
			if !ok || !row.IsActive {
				// Inactive achievements never unlock and never pay XP.
				continue
			}
			if unlockedIDs[row.ID] {
				continue
			}
			if !gamification.Meets(def, snap) {
				continue
			}

			ua := models.UserAchievement{
				UserID:        userID,
				AchievementID: row.ID,
				UnlockedAt:    time.Now().UTC(),
			}
			// ON CONFLICT DO NOTHING rather than catching the unique
			// violation: on Postgres a constraint error aborts the open
			// transaction (25P02), killing every later statement in it.
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ua)
			if res.Error != nil {
				return fmt.Errorf("create unlock record %s: %w", def.Code, res.Error)
			}
			if res.RowsAffected == 0 {
				// A concurrent request (duplicate retry) already
				// awarded this one. Not ours to count.
				continue
			}
			result.XPAwarded += row.XPReward
			result.NewlyUnlocked = append(result.NewlyUnlocked, UnlockedAchievement{
				Achievement: row,
				UnlockedAt:  ua.UnlockedAt,
			})
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return fmt.Errorf("load user %d: %w", userID, err)
		}
		if user.Level < 1 {
			user.Level = 1
		}
		result.PreviousXP = user.TotalXP
		result.PreviousLevel = user.Level
		result.NewXP = user.TotalXP
		result.NewLevel = user.Level
		result.NewTitle = gamification.LevelOf(user.TotalXP).Title

		if result.XPAwarded > 0 {
			user.TotalXP += result.XPAwarded
			info := gamification.LevelOf(user.TotalXP)
			user.Level = info.Level
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
				Updates(map[string]interface{}{
					"total_xp": user.TotalXP,
					"level":    user.Level,
				}).Error; err != nil {
				return fmt.Errorf("update user progression: %w", err)
			}
			result.NewXP = user.TotalXP
			result.NewLevel = user.Level
			result.NewTitle = info.Title
		}
		result.LeveledUp = result.NewLevel > result.PreviousLevel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListWithStatus merges the catalog with the user's unlock map and
// per-category aggregates. Pure read, safe to cache briefly.
func (s *ProgressionService) ListWithStatus(userID uint) (*StatusList, error) {
	rows, err := s.ensureCatalog()
	if err != nil {
		return nil, err
	}

	var unlocks []models.UserAchievement
	if err := s.db.Where("user_id = ?", userID).Find(&unlocks).Error; err != nil {
		return nil, fmt.Errorf("load unlocks: %w", err)
	}
	unlockedAt := make(map[uint]time.Time, len(unlocks))
	for _, ua := range unlocks {
		unlockedAt[ua.AchievementID] = ua.UnlockedAt
	}

	list := &StatusList{
		Achievements: make([]AchievementStatus, 0, len(s.catalog)),
		ByCategory:   make(map[string]CategoryCount),
	}
	for _, def := range s.catalog {
		row, ok := rows[def.Code]
		if !ok {
			continue
		}
		status := AchievementStatus{Achievement: row}
		if ts, ok := unlockedAt[row.ID]; ok {
			status.Unlocked = true
			t := ts
			status.UnlockedAt = &t
		}
		list.Achievements = append(list.Achievements, status)

		count := list.ByCategory[row.Category]
		count.Total++
		if status.Unlocked {
			count.Unlocked++
			list.Unlocked++
		}
		list.ByCategory[row.Category] = count
	}
	list.Total = len(list.Achievements)
	return list, nil
}

// unlockedAchievementIDs returns the set of achievement IDs the user
// has already unlocked.
func (s *ProgressionService) unlockedAchievementIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	if err := s.db.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("load unlocked achievements: %w", err)
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// handlers/reading.go
package handlers

import (
	"time"

	"readquest/database"
	"readquest/middleware"
	"readquest/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RecordSessionRequest struct {
	BookID    uint `json:"book_id"`
	PagesRead int  `json:"pages_read"`
	Minutes   int  `json:"minutes"`
	WordsRead int  `json:"words_read"`
	Finished  bool `json:"finished"`
}

// RecordReadingSession stores one reading sitting, updates the user's
// streak and completion counters, then runs an award pass. The award
// decision uses freshly persisted counts, not the request payload.
func RecordReadingSession(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req RecordSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.PagesRead < 0 || req.Minutes < 0 || req.WordsRead < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Counts cannot be negative"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	session := models.ReadingSession{
		UserID:    userID,
		BookID:    req.BookID,
		PagesRead: req.PagesRead,
		Minutes:   req.Minutes,
		WordsRead: req.WordsRead,
	}
	if err := db.Create(&session).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record session"})
	}

	if req.BookID != 0 {
		if err := upsertBookProgress(db, userID, req); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update book progress"})
		}
	}

	if err := applyDailyActivity(db, &user, time.Now().UTC()); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update streak"})
	}

	result, err := progression.CheckAndAward(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check achievements"})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"session_id":       session.ID,
		"current_streak":   user.CurrentStreak,
		"longest_streak":   user.LongestStreak,
		"new_achievements": result.NewlyUnlocked,
		"xp_awarded":       result.XPAwarded,
		"new_xp":           result.NewXP,
		"new_level":        result.NewLevel,
		"leveled_up":       result.LeveledUp,
	})
}

func upsertBookProgress(db *gorm.DB, userID uint, req RecordSessionRequest) error {
	var userBook models.UserBook
	if err := db.Where("user_id = ? AND book_id = ?", userID, req.BookID).
		FirstOrCreate(&userBook, models.UserBook{UserID: userID, BookID: req.BookID}).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{
		"current_page": userBook.CurrentPage + req.PagesRead,
	}
	if req.Finished && userBook.CompletedAt == nil {
		updates["completed_at"] = time.Now().UTC()
	}
	return db.Model(&userBook).Updates(updates).Error
}

// applyDailyActivity rolls the daily streak forward and persists the
// result. Same-day repeats leave everything alone.
func applyDailyActivity(db *gorm.DB, user *models.User, now time.Time) error {
	streak, newDay := nextStreak(user.LastReadingDay, now, user.CurrentStreak)
	if !newDay {
		return nil
	}

	today := now.Truncate(24 * time.Hour)
	user.CurrentStreak = streak
	if streak > user.LongestStreak {
		user.LongestStreak = streak
	}
	user.DaysActive++
	user.LastReadingDay = &today

	return db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"current_streak":   user.CurrentStreak,
			"longest_streak":   user.LongestStreak,
			"days_active":      user.DaysActive,
			"last_reading_day": user.LastReadingDay,
		}).Error
}

// nextStreak computes the streak after activity at now. newDay is false
// when the last recorded reading day is already today.
func nextStreak(last *time.Time, now time.Time, current int) (streak int, newDay bool) {
	today := now.Truncate(24 * time.Hour)
	if last == nil {
		return 1, true
	}
	lastDay := last.Truncate(24 * time.Hour)
	switch today.Sub(lastDay) {
	case 0:
		return current, false
	case 24 * time.Hour:
		return current + 1, true
	default:
		return 1, true
	}
}

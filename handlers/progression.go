// handlers/progression.go
package handlers

import (
	"readquest/database"
	"readquest/gamification"
	"readquest/middleware"
	"readquest/models"

	"github.com/gofiber/fiber/v2"
)

// GetProgression returns the user's XP, level, title and progress
// toward the next level. The level shown is always recomputed from
// total XP, never read blindly from storage.
func GetProgression(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	info := gamification.LevelOf(user.TotalXP)
	currentFloor := gamification.XPForLevel(info.Level)
	nextThreshold := gamification.XPForLevel(info.Level + 1)

	progress := 0.0
	if nextThreshold > currentFloor {
		progress = float64(user.TotalXP-currentFloor) / float64(nextThreshold-currentFloor) * 100
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"level":            info.Level,
		"title":            info.Title,
		"total_xp":         user.TotalXP,
		"xp_into_level":    user.TotalXP - currentFloor,
		"xp_to_next_level": nextThreshold - user.TotalXP,
		"progress_percent": progress,
		"current_streak":   user.CurrentStreak,
		"longest_streak":   user.LongestStreak,
		"days_active":      user.DaysActive,
	})
}

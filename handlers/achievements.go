// handlers/achievements.go
package handlers

import (
	"readquest/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetCatalog returns the built-in achievement definitions. Public: the
// catalog carries no user state.
func GetCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": catalog,
		"total":        len(catalog),
	})
}

// GetAchievements returns the full catalog merged with the user's
// unlock status plus per-category counts.
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	list, err := progression.ListWithStatus(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": list.Achievements,
		"total":        list.Total,
		"unlocked":     list.Unlocked,
		"by_category":  list.ByCategory,
	})
}

// CheckAchievements runs an authoritative award pass for the user and
// returns anything newly unlocked. Safe to call repeatedly: with no new
// qualifying activity the second call is a no-op.
func CheckAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := progression.CheckAndAward(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check achievements"})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"new_achievements": result.NewlyUnlocked,
		"xp_awarded":       result.XPAwarded,
		"previous_xp":      result.PreviousXP,
		"new_xp":           result.NewXP,
		"previous_level":   result.PreviousLevel,
		"new_level":        result.NewLevel,
		"new_title":        result.NewTitle,
		"leveled_up":       result.LeveledUp,
	})
}

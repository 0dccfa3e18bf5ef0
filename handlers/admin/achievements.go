// handlers/admin/achievements.go
package admin

import (
	"readquest/database"
	"readquest/models"

	"github.com/gofiber/fiber/v2"
)

// GetAchievements returns every persisted achievement row, including
// inactive ones.
func GetAchievements(c *fiber.Ctx) error {
	db := database.GetDB()

	var achievements []models.Achievement
	if err := db.Order("sort_order ASC").Find(&achievements).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
	})
}

// SetAchievementActive toggles an achievement row's active flag.
// Definitions stay immutable; deactivated rows are skipped by award
// passes but keep their unlock history.
func SetAchievementActive(c *fiber.Ctx) error {
	code := c.Params("code")

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()
	var achievement models.Achievement
	if err := db.Where("code = ?", code).First(&achievement).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Achievement not found"})
	}

	if err := db.Model(&achievement).Update("is_active", req.IsActive).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update achievement"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"achievement": achievement,
	})
}

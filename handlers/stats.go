// handlers/stats.go
package handlers

import (
	"time"

	"readquest/database"
	"readquest/models"

	"github.com/gofiber/fiber/v2"
)

// GetOnlineReadersCount returns how many users were active in the last
// five minutes.
func GetOnlineReadersCount(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Database not available",
		})
	}

	// Bump the caller's own activity when authenticated
	userID := c.Locals("userId")
	if userID != nil {
		now := time.Now()
		db.Model(&models.User{}).Where("id = ?", userID).Update("last_activity", now)
	}

	cutoffTime := time.Now().Add(-5 * time.Minute)

	var count int64
	err := db.Model(&models.User{}).Where("last_activity > ?", cutoffTime).Count(&count).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to get online readers count",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   count,
	})
}

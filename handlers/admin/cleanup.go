// handlers/admin/cleanup.go
package admin

import (
	"readquest/services"

	"github.com/gofiber/fiber/v2"
)

// ManualCleanup runs the stale-guest cleanup immediately
func ManualCleanup(c *fiber.Ctx) error {
	svc := services.GetCleanupService()
	if svc == nil {
		return c.Status(500).JSON(fiber.Map{"error": "Cleanup service not initialized"})
	}

	if err := svc.CleanupStaleGuests(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Cleanup failed"})
	}

	return c.JSON(fiber.Map{"success": true})
}

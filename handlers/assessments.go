// handlers/assessments.go
package handlers

import (
	"readquest/database"
	"readquest/middleware"
	"readquest/models"

	"github.com/gofiber/fiber/v2"
)

// passingScore is the minimum assessment score that counts as a pass.
const passingScore = 80

type SubmitAssessmentRequest struct {
	BookID uint `json:"book_id"`
	Score  int  `json:"score"`
}

// SubmitAssessment records a finished comprehension assessment and
// runs an award pass.
func SubmitAssessment(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req SubmitAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Score < 0 || req.Score > 100 {
		return c.Status(400).JSON(fiber.Map{"error": "Score must be between 0 and 100"})
	}

	result := models.AssessmentResult{
		UserID: userID,
		BookID: req.BookID,
		Score:  req.Score,
		Passed: req.Score >= passingScore,
	}

	db := database.GetDB()
	if err := db.Create(&result).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record assessment"})
	}

	award, err := progression.CheckAndAward(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check achievements"})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"score":            result.Score,
		"passed":           result.Passed,
		"new_achievements": award.NewlyUnlocked,
		"xp_awarded":       award.XPAwarded,
		"new_level":        award.NewLevel,
		"leveled_up":       award.LeveledUp,
	})
}

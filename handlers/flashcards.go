// handlers/flashcards.go
package handlers

import (
	"time"

	"readquest/database"
	"readquest/middleware"
	"readquest/models"

	"github.com/gofiber/fiber/v2"
)

// masteryStreak is the number of consecutive correct reviews that
// promotes a card to mastered.
const masteryStreak = 5

type CreateFlashcardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type ReviewFlashcardRequest struct {
	FlashcardID uint `json:"flashcard_id"`
	Correct     bool `json:"correct"`
}

// CreateFlashcard adds a card to the user's deck
func CreateFlashcard(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreateFlashcardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Front == "" || req.Back == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Front and back are required"})
	}

	card := models.Flashcard{
		UserID: userID,
		Front:  req.Front,
		Back:   req.Back,
	}

	db := database.GetDB()
	if err := db.Create(&card).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create flashcard"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":   true,
		"flashcard": card,
	})
}

// ReviewFlashcard grades one answer, promotes the card to mastered at
// the streak threshold, and runs an award pass.
func ReviewFlashcard(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req ReviewFlashcardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()
	var card models.Flashcard
	if err := db.Where("id = ? AND user_id = ?", req.FlashcardID, userID).First(&card).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Flashcard not found"})
	}

	review := models.FlashcardReview{
		UserID:      userID,
		FlashcardID: card.ID,
		Correct:     req.Correct,
	}
	if err := db.Create(&review).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record review"})
	}

	if req.Correct {
		card.CorrectStreak++
		if card.CorrectStreak >= masteryStreak && card.MasteredAt == nil {
			now := time.Now().UTC()
			card.MasteredAt = &now
		}
	} else {
		card.CorrectStreak = 0
	}
	if err := db.Save(&card).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update flashcard"})
	}

	result, err := progression.CheckAndAward(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check achievements"})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"correct_streak":   card.CorrectStreak,
		"mastered":         card.MasteredAt != nil,
		"new_achievements": result.NewlyUnlocked,
		"xp_awarded":       result.XPAwarded,
		"new_level":        result.NewLevel,
		"leveled_up":       result.LeveledUp,
	})
}

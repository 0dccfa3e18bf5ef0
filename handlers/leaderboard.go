// handlers/leaderboard.go
package handlers

import (
	"log"
	"time"

	"readquest/database"
	"readquest/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// LeaderboardEntry is one public row of the XP ranking.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Level       int    `json:"level"`
	TotalXP     int    `json:"total_xp"`
}

func fetchLeaderboard(limit, offset int) ([]LeaderboardEntry, int64, error) {
	db := database.GetDB()

	var users []models.User
	if err := db.Where("is_guest = ?", false).
		Order("total_xp DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = LeaderboardEntry{
			Rank:        offset + i + 1,
			UserID:      u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Level:       u.Level,
			TotalXP:     u.TotalXP,
		}
	}

	var total int64
	if err := db.Model(&models.User{}).Where("is_guest = ?", false).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// GetLeaderboard returns the global XP ranking
// GET /api/leaderboard?limit=100&offset=0
func GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	entries, total, err := fetchLeaderboard(limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"entries": entries,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetUserRank returns one user's position in the XP ranking
func GetUserRank(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var ahead int64
	if err := db.Model(&models.User{}).
		Where("is_guest = ? AND total_xp > ?", false, user.TotalXP).
		Count(&ahead).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute rank"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"user_id":  user.ID,
		"username": user.Username,
		"rank":     ahead + 1,
		"level":    user.Level,
		"total_xp": user.TotalXP,
	})
}

// LeaderboardLive streams periodic leaderboard snapshots over a
// websocket. This is a public ticker, not a state-sync channel.
func LeaderboardLive() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		send := func() bool {
			entries, total, err := fetchLeaderboard(10, 0)
			if err != nil {
				log.Printf("leaderboard live: fetch failed: %v", err)
				return false
			}
			payload := fiber.Map{
				"entries": entries,
				"total":   total,
				"at":      time.Now().UTC(),
			}
			if err := conn.WriteJSON(payload); err != nil {
				return false
			}
			return true
		}

		if !send() {
			return
		}

		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if !send() {
				return
			}
		}
	})
}

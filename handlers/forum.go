// handlers/forum.go
package handlers

import (
	"readquest/database"
	"readquest/middleware"
	"readquest/models"

	"github.com/gofiber/fiber/v2"
)

type CreatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type CreateReplyRequest struct {
	Body string `json:"body"`
}

// CreatePost starts a new discussion thread
func CreatePost(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" || req.Body == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title and body are required"})
	}

	post := models.ForumPost{
		UserID: userID,
		Title:  req.Title,
		Body:   req.Body,
	}

	db := database.GetDB()
	if err := db.Create(&post).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create post"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// CreateReply answers a post
func CreateReply(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid post id"})
	}

	var req CreateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Body == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Body is required"})
	}

	db := database.GetDB()
	var post models.ForumPost
	if err := db.First(&post, postID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Post not found"})
	}

	reply := models.ForumReply{
		PostID: post.ID,
		UserID: userID,
		Body:   req.Body,
	}
	if err := db.Create(&reply).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create reply"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"reply":   reply,
	})
}

// MarkBestAnswer lets the post author accept a reply. The reply
// author's best-answer count feeds the social achievement category, so
// an award pass runs for them, not for the caller.
func MarkBestAnswer(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid post id"})
	}
	replyID, err := c.ParamsInt("replyId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid reply id"})
	}

	db := database.GetDB()
	var post models.ForumPost
	if err := db.First(&post, postID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Post not found"})
	}
	if post.UserID != userID {
		return c.Status(403).JSON(fiber.Map{"error": "Only the post author can accept an answer"})
	}
	if post.BestReplyID != nil {
		return c.Status(409).JSON(fiber.Map{"error": "Post already has a best answer"})
	}

	var reply models.ForumReply
	if err := db.Where("id = ? AND post_id = ?", replyID, post.ID).First(&reply).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Reply not found"})
	}

	if err := db.Model(&reply).Update("is_best_answer", true).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to mark best answer"})
	}
	if err := db.Model(&post).Update("best_reply_id", reply.ID).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update post"})
	}

	award, err := progression.CheckAndAward(reply.UserID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check achievements"})
	}

	return c.JSON(fiber.Map{
		"success":              true,
		"reply_id":             reply.ID,
		"answerer_new_unlocks": award.NewlyUnlocked,
		"answerer_xp_awarded":  award.XPAwarded,
		"answerer_leveled_up":  award.LeveledUp,
	})
}

// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"readquest/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.UserBook{},
		&models.ReadingSession{},
		&models.Flashcard{},
		&models.FlashcardReview{},
		&models.AssessmentResult{},
		&models.ForumPost{},
		&models.ForumReply{},
		&models.Achievement{},
		&models.UserAchievement{},
	); err != nil {
		log.Fatalf("❌ Failed to run core migrations: %v", err)
	}

	log.Println("✅ Core migrations completed")

	createCoreIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createCoreIndexes creates indexes for core tables
func createCoreIndexes() {
	db := GetDB()
	log.Println("Creating core indexes...")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_total_xp ON users(total_xp DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Reading indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_books_completed ON user_books(user_id, completed_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_reading_sessions_user ON reading_sessions(user_id, created_at DESC)")

	// Flashcard indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_flashcards_mastered ON flashcards(user_id, mastered_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_flashcard_reviews_user ON flashcard_reviews(user_id)")

	// Assessment indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_assessment_results_user ON assessment_results(user_id, created_at DESC)")

	// Forum indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_forum_replies_best ON forum_replies(user_id, is_best_answer)")

	// Achievement indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_category ON achievements(category)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id)")

	log.Println("✅ Core indexes created successfully")
}

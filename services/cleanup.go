package services

import (
	"log"
	"time"

	"readquest/database"
	"readquest/models"
)

// CleanupService handles background cleanup tasks
type CleanupService struct {
	stop chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton cleanup service.
func InitCleanupService() {
	cleanupService = &CleanupService{stop: make(chan struct{})}
	go cleanupService.run()
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

func (s *CleanupService) run() {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.CleanupStaleGuests(); err != nil {
				log.Printf("Guest cleanup failed: %v", err)
			}
		case <-s.stop:
			return
		}
	}
}

// Stop stops the background cleanup worker.
func (s *CleanupService) Stop() {
	close(s.stop)
}

// CleanupStaleGuests removes guest accounts with no activity for 30
// days, along with their unlock records and sessions.
func (s *CleanupService) CleanupStaleGuests() error {
	db := database.GetDB()
	if db == nil {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -30)

	var stale []models.User
	if err := db.Where("is_guest = ? AND (last_activity IS NULL OR last_activity < ?) AND created_at < ?",
		true, cutoff, cutoff).Find(&stale).Error; err != nil {
		log.Printf("Error finding stale guests: %v", err)
		return err
	}

	if len(stale) == 0 {
		return nil
	}

	ids := make([]uint, len(stale))
	for i, u := range stale {
		ids[i] = u.ID
	}

	db.Where("user_id IN ?", ids).Delete(&models.UserAchievement{})
	db.Where("user_id IN ?", ids).Delete(&models.ReadingSession{})
	db.Where("user_id IN ?", ids).Delete(&models.UserBook{})
	if err := db.Delete(&stale).Error; err != nil {
		log.Printf("Error deleting stale guests: %v", err)
		return err
	}

	log.Printf("✅ Cleaned up %d stale guest accounts", len(stale))
	return nil
}

// services/stats.go - Authoritative user statistics snapshots
package services

import (
	"errors"

	"readquest/gamification"
	"readquest/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// StatsProvider builds the authoritative statistics snapshot a
// progression check is evaluated against. Award decisions never trust
// client-submitted counts; they always go through this.
type StatsProvider interface {
	BuildSnapshot(userID uint) (gamification.StatsSnapshot, error)
}

// StatsService builds snapshots from persisted records.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// BuildSnapshot fans out the independent count queries concurrently;
// each goroutine writes a distinct snapshot field. Evaluation happens
// after all reads complete.
func (s *StatsService) BuildSnapshot(userID uint) (gamification.StatsSnapshot, error) {
	var snap gamification.StatsSnapshot
	var g errgroup.Group

	g.Go(func() error {
		var n int64
		err := s.db.Model(&models.UserBook{}).
			Where("user_id = ? AND completed_at IS NOT NULL", userID).
			Count(&n).Error
		snap.BooksCompleted = int(n)
		return err
	})

	g.Go(func() error {
		var user models.User
		if err := s.db.Select("current_streak", "longest_streak", "days_active").
			First(&user, userID).Error; err != nil {
			return err
		}
		snap.CurrentStreak = user.CurrentStreak
		snap.LongestStreak = user.LongestStreak
		snap.DaysActive = user.DaysActive
		return nil
	})

	g.Go(func() error {
		var n int64
		err := s.db.Model(&models.Flashcard{}).
			Where("user_id = ? AND mastered_at IS NOT NULL", userID).
			Count(&n).Error
		snap.CardsMastered = int(n)
		return err
	})

	g.Go(func() error {
		var total, correct int64
		if err := s.db.Model(&models.FlashcardReview{}).
			Where("user_id = ?", userID).Count(&total).Error; err != nil {
			return err
		}
		if err := s.db.Model(&models.FlashcardReview{}).
			Where("user_id = ? AND correct = ?", userID, true).Count(&correct).Error; err != nil {
			return err
		}
		snap.CardsReviewed = int(total)
		if total > 0 {
			retention := float64(correct) / float64(total)
			snap.Retention = &retention
		}
		return nil
	})

	g.Go(func() error {
		var n int64
		err := s.db.Model(&models.ForumPost{}).
			Where("user_id = ?", userID).Count(&n).Error
		snap.PostsCreated = int(n)
		return err
	})

	g.Go(func() error {
		var n int64
		err := s.db.Model(&models.ForumReply{}).
			Where("user_id = ? AND is_best_answer = ?", userID, true).
			Count(&n).Error
		snap.BestAnswers = int(n)
		return err
	})

	g.Go(func() error {
		var n int64
		if err := s.db.Model(&models.AssessmentResult{}).
			Where("user_id = ? AND passed = ?", userID, true).
			Count(&n).Error; err != nil {
			return err
		}
		snap.AssessmentsPassed = int(n)

		var latest models.AssessmentResult
		err := s.db.Where("user_id = ?", userID).
			Order("created_at DESC").First(&latest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		snap.LatestAssessmentScore = latest.Score
		return nil
	})

	g.Go(func() error {
		var sums struct {
			Words   int64
			Minutes int64
		}
		err := s.db.Model(&models.ReadingSession{}).
			Where("user_id = ? AND minutes > 0", userID).
			Select("COALESCE(SUM(words_read),0) AS words, COALESCE(SUM(minutes),0) AS minutes").
			Scan(&sums).Error
		if err != nil {
			return err
		}
		if sums.Minutes > 0 {
			speed := float64(sums.Words) / float64(sums.Minutes)
			snap.AvgReadingSpeed = &speed
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return gamification.StatsSnapshot{}, err
	}
	return snap, nil
}

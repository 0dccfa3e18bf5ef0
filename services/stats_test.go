package services

import (
	"math"
	"testing"
	"time"

	"readquest/models"
)

func TestBuildSnapshot_EmptyUser(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewStatsService(db)

	snap, err := svc.BuildSnapshot(user.ID)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	if snap.BooksCompleted != 0 || snap.CardsMastered != 0 || snap.AssessmentsPassed != 0 {
		t.Errorf("fresh user has non-zero counts: %+v", snap)
	}
	if snap.Retention != nil {
		t.Errorf("retention should be absent with no reviews, got %v", *snap.Retention)
	}
	if snap.AvgReadingSpeed != nil {
		t.Errorf("reading speed should be absent with no sessions, got %v", *snap.AvgReadingSpeed)
	}
}

func TestBuildSnapshot_CountsSeededRows(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)

	db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"current_streak": 4,
		"longest_streak": 12,
		"days_active":    40,
	})

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		book := models.Book{Title: "Book", PageCount: 100}
		if err := db.Create(&book).Error; err != nil {
			t.Fatal(err)
		}
		ub := models.UserBook{UserID: user.ID, BookID: book.ID}
		if i < 2 {
			ub.CompletedAt = &now // only 2 of 3 finished
		}
		if err := db.Create(&ub).Error; err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 5; i++ {
		card := models.Flashcard{UserID: user.ID, Front: "q", Back: "a"}
		if i < 3 {
			card.MasteredAt = &now
		}
		if err := db.Create(&card).Error; err != nil {
			t.Fatal(err)
		}
	}

	// 3 correct out of 4 reviews.
	for i := 0; i < 4; i++ {
		review := models.FlashcardReview{UserID: user.ID, FlashcardID: 1, Correct: i < 3}
		if err := db.Create(&review).Error; err != nil {
			t.Fatal(err)
		}
	}

	for _, score := range []int{95, 85, 60} {
		result := models.AssessmentResult{UserID: user.ID, Score: score, Passed: score >= 80}
		if err := db.Create(&result).Error; err != nil {
			t.Fatal(err)
		}
	}

	post := models.ForumPost{UserID: user.ID, Title: "t", Body: "b"}
	if err := db.Create(&post).Error; err != nil {
		t.Fatal(err)
	}
	reply := models.ForumReply{PostID: post.ID, UserID: user.ID, Body: "b", IsBestAnswer: true}
	if err := db.Create(&reply).Error; err != nil {
		t.Fatal(err)
	}

	// 1200 words over 10 minutes -> 120 wpm.
	session := models.ReadingSession{UserID: user.ID, WordsRead: 1200, Minutes: 10, PagesRead: 8}
	if err := db.Create(&session).Error; err != nil {
		t.Fatal(err)
	}

	snap, err := NewStatsService(db).BuildSnapshot(user.ID)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	if snap.BooksCompleted != 2 {
		t.Errorf("BooksCompleted = %d, want 2", snap.BooksCompleted)
	}
	if snap.CurrentStreak != 4 || snap.LongestStreak != 12 || snap.DaysActive != 40 {
		t.Errorf("streak fields = %d/%d/%d", snap.CurrentStreak, snap.LongestStreak, snap.DaysActive)
	}
	if snap.CardsMastered != 3 {
		t.Errorf("CardsMastered = %d, want 3", snap.CardsMastered)
	}
	if snap.CardsReviewed != 4 {
		t.Errorf("CardsReviewed = %d, want 4", snap.CardsReviewed)
	}
	if snap.Retention == nil || math.Abs(*snap.Retention-0.75) > 1e-9 {
		t.Errorf("Retention = %v, want 0.75", snap.Retention)
	}
	if snap.AssessmentsPassed != 2 {
		t.Errorf("AssessmentsPassed = %d, want 2 (only scores >= 80)", snap.AssessmentsPassed)
	}
	if snap.PostsCreated != 1 {
		t.Errorf("PostsCreated = %d, want 1", snap.PostsCreated)
	}
	if snap.BestAnswers != 1 {
		t.Errorf("BestAnswers = %d, want 1", snap.BestAnswers)
	}
	if snap.AvgReadingSpeed == nil || math.Abs(*snap.AvgReadingSpeed-120) > 1e-9 {
		t.Errorf("AvgReadingSpeed = %v, want 120", snap.AvgReadingSpeed)
	}
}

func TestBuildSnapshot_ScopedToUser(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	other := models.User{Username: "other", Level: 1}
	if err := db.Create(&other).Error; err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	book := models.Book{Title: "Book"}
	if err := db.Create(&book).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.UserBook{UserID: other.ID, BookID: book.ID, CompletedAt: &now}).Error; err != nil {
		t.Fatal(err)
	}

	snap, err := NewStatsService(db).BuildSnapshot(user.ID)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	if snap.BooksCompleted != 0 {
		t.Errorf("counted another user's books: %d", snap.BooksCompleted)
	}
}

// models/models.go - Core reading/learning models
package models

import (
	"time"
)

// Book is a title in the shared library.
type Book struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Author      string    `json:"author" gorm:"size:200"`
	Description string    `json:"description" gorm:"type:text"`
	CoverURL    string    `json:"cover_url" gorm:"size:500"`
	PageCount   int       `json:"page_count" gorm:"default:0"`
	Language    string    `json:"language" gorm:"size:10;default:'en'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserBook tracks one user's relationship with one book.
type UserBook struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_book"`
	BookID      uint       `json:"book_id" gorm:"not null;uniqueIndex:idx_user_book"`
	User        *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Book        *Book      `json:"book,omitempty" gorm:"foreignKey:BookID"`
	CurrentPage int        `json:"current_page" gorm:"default:0"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ReadingSession is one sitting with a book.
type ReadingSession struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BookID    uint      `json:"book_id" gorm:"index"`
	Book      *Book     `json:"book,omitempty" gorm:"foreignKey:BookID"`
	PagesRead int       `json:"pages_read" gorm:"default:0"`
	Minutes   int       `json:"minutes" gorm:"default:0"`
	WordsRead int       `json:"words_read" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

// Flashcard belongs to a user's personal deck.
type Flashcard struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	UserID        uint       `json:"user_id" gorm:"not null;index"`
	User          *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Front         string     `json:"front" gorm:"not null;type:text"`
	Back          string     `json:"back" gorm:"not null;type:text"`
	CorrectStreak int        `json:"correct_streak" gorm:"default:0"`
	MasteredAt    *time.Time `json:"mastered_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FlashcardReview is one graded answer on a flashcard.
type FlashcardReview struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	FlashcardID uint       `json:"flashcard_id" gorm:"not null;index"`
	Flashcard   *Flashcard `json:"flashcard,omitempty" gorm:"foreignKey:FlashcardID"`
	Correct     bool       `json:"correct" gorm:"default:false"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AssessmentResult is one finished comprehension assessment. A score of
// 80 or better counts as a pass.
type AssessmentResult struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BookID    uint      `json:"book_id" gorm:"index"`
	Score     int       `json:"score" gorm:"default:0"` // 0-100
	Passed    bool      `json:"passed" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// ForumPost is a top-level discussion post.
type ForumPost struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	UserID       uint         `json:"user_id" gorm:"not null;index"`
	User         *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Title        string       `json:"title" gorm:"not null;size:200"`
	Body         string       `json:"body" gorm:"not null;type:text"`
	BestReplyID  *uint        `json:"best_reply_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Replies      []ForumReply `json:"replies,omitempty" gorm:"foreignKey:PostID"`
}

// ForumReply is an answer on a post. IsBestAnswer is set when the post
// author accepts it; the reply author's best-answer count feeds the
// social achievement category.
type ForumReply struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	PostID       uint       `json:"post_id" gorm:"not null;index"`
	Post         *ForumPost `json:"post,omitempty" gorm:"foreignKey:PostID"`
	UserID       uint       `json:"user_id" gorm:"not null;index"`
	User         *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Body         string     `json:"body" gorm:"not null;type:text"`
	IsBestAnswer bool       `json:"is_best_answer" gorm:"default:false"`
	CreatedAt    time.Time  `json:"created_at"`
}

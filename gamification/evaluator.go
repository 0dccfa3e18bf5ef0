// gamification/evaluator.go - Achievement criteria evaluation
package gamification

// StatsSnapshot is a point-in-time view of a user's counters. It is
// rebuilt for every evaluation and never persisted. Optional rates are
// pointers; a nil rate means the statistic was never measured.
type StatsSnapshot struct {
	BooksCompleted int `json:"books_completed"`
	CurrentStreak  int `json:"current_streak"`
	LongestStreak  int `json:"longest_streak"`
	CardsMastered  int `json:"cards_mastered"`
	CardsReviewed  int `json:"cards_reviewed"`
	PostsCreated   int `json:"posts_created"`
	BestAnswers    int `json:"best_answers"`
	// AssessmentsPassed counts assessments scored at 80% or better, so
	// it carries both the count and the rate requirement.
	AssessmentsPassed     int `json:"assessments_passed"`
	LatestAssessmentScore int `json:"latest_assessment_score"`
	DaysActive            int `json:"days_active"`

	AvgReadingSpeed *float64 `json:"avg_reading_speed,omitempty"`
	Retention       *float64 `json:"retention,omitempty"`
}

// statForCategory maps each category to the single statistic it is
// judged against. The bool result reports whether the statistic is
// present in the snapshot; absent statistics fail closed.
var statForCategory = map[Category]func(StatsSnapshot) (float64, bool){
	CategoryReading:     func(s StatsSnapshot) (float64, bool) { return float64(s.BooksCompleted), true },
	CategoryStreak:      func(s StatsSnapshot) (float64, bool) { return float64(s.CurrentStreak), true },
	CategoryFlashcards:  func(s StatsSnapshot) (float64, bool) { return float64(s.CardsMastered), true },
	CategoryAssessments: func(s StatsSnapshot) (float64, bool) { return float64(s.AssessmentsPassed), true },
	CategorySocial:      func(s StatsSnapshot) (float64, bool) { return float64(s.BestAnswers), true },
	CategoryMilestones:  func(s StatsSnapshot) (float64, bool) { return float64(s.DaysActive), true },
}

// Meets reports whether the snapshot satisfies the definition's
// criteria. Unknown categories and absent statistics never pass.
// The check is side-effect-free and independent of catalog order.
func Meets(def AchievementDefinition, stats StatsSnapshot) bool {
	stat, ok := statForCategory[def.Category]
	if !ok {
		return false
	}
	value, present := stat(stats)
	if !present {
		return false
	}
	return value >= def.Threshold
}

// StatValue returns the snapshot value an achievement is measured
// against, for progress bars. Absent statistics read as zero.
func StatValue(def AchievementDefinition, stats StatsSnapshot) float64 {
	stat, ok := statForCategory[def.Category]
	if !ok {
		return 0
	}
	value, present := stat(stats)
	if !present {
		return 0
	}
	return value
}

// gamification/catalog.go - Achievement catalog definitions
package gamification

import "fmt"

// Category groups achievements and determines which user statistic
// an achievement is measured against.
type Category string

const (
	CategoryReading     Category = "reading"
	CategoryStreak      Category = "streak"
	CategoryFlashcards  Category = "flashcards"
	CategoryAssessments Category = "assessments"
	CategorySocial      Category = "social"
	CategoryMilestones  Category = "milestones"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryReading,
		CategoryStreak,
		CategoryFlashcards,
		CategoryAssessments,
		CategorySocial,
		CategoryMilestones,
	}
}

// Tier is an achievement's difficulty band. The tier alone determines
// the XP reward.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// TierXP is the fixed tier → XP reward table.
var TierXP = map[Tier]int{
	TierBronze:   50,
	TierSilver:   100,
	TierGold:     250,
	TierPlatinum: 500,
}

// AchievementDefinition is one immutable catalog entry. Definitions are
// built into the binary and lazily materialized into database rows by
// code on first use.
type AchievementDefinition struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Tier        Tier     `json:"tier"`
	Threshold   float64  `json:"threshold"`
	XPReward    int      `json:"xp_reward"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	SortOrder   int      `json:"sort_order"`
	IsActive    bool     `json:"is_active"`
}

// Catalog is an ordered, immutable set of achievement definitions.
// It is passed in where needed rather than read from a package global,
// so tests can substitute a smaller one.
type Catalog []AchievementDefinition

// ByCode returns the definition with the given code.
func (c Catalog) ByCode(code string) (AchievementDefinition, bool) {
	for _, def := range c {
		if def.Code == code {
			return def, true
		}
	}
	return AchievementDefinition{}, false
}

// Validate checks the catalog invariants: unique non-empty codes, known
// categories and tiers, positive thresholds, and XP rewards that match
// the tier table.
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c))
	for i, def := range c {
		if def.Code == "" {
			return fmt.Errorf("achievement %d: empty code", i)
		}
		if seen[def.Code] {
			return fmt.Errorf("achievement %q: duplicate code", def.Code)
		}
		seen[def.Code] = true

		if _, ok := statForCategory[def.Category]; !ok {
			return fmt.Errorf("achievement %q: unknown category %q", def.Code, def.Category)
		}
		reward, ok := TierXP[def.Tier]
		if !ok {
			return fmt.Errorf("achievement %q: unknown tier %q", def.Code, def.Tier)
		}
		if def.XPReward != reward {
			return fmt.Errorf("achievement %q: xp reward %d does not match tier %s (%d)",
				def.Code, def.XPReward, def.Tier, reward)
		}
		if def.Threshold <= 0 {
			return fmt.Errorf("achievement %q: threshold must be positive, got %v", def.Code, def.Threshold)
		}
	}
	return nil
}

func def(code, name, desc string, cat Category, tier Tier, threshold float64, icon, color string, sort int) AchievementDefinition {
	return AchievementDefinition{
		Code:        code,
		Name:        name,
		Description: desc,
		Category:    cat,
		Tier:        tier,
		Threshold:   threshold,
		XPReward:    TierXP[tier],
		Icon:        icon,
		Color:       color,
		SortOrder:   sort,
		IsActive:    true,
	}
}

// DefaultCatalog returns the full production achievement set.
func DefaultCatalog() Catalog {
	return Catalog{
		// Reading
		def("first_book", "First Book", "Finish your first book", CategoryReading, TierBronze, 1, "📖", "#cd7f32", 10),
		def("bookworm", "Bookworm", "Finish 10 books", CategoryReading, TierSilver, 10, "🐛", "#c0c0c0", 20),
		def("library_regular", "Library Regular", "Finish 25 books", CategoryReading, TierGold, 25, "🏛️", "#ffd700", 30),
		def("literary_legend", "Literary Legend", "Finish 100 books", CategoryReading, TierPlatinum, 100, "👑", "#e5e4e2", 40),

		// Streaks
		def("streak_starter", "Streak Starter", "Read 3 days in a row", CategoryStreak, TierBronze, 3, "🔥", "#cd7f32", 50),
		def("week_streak", "Week Streak", "Read 7 days in a row", CategoryStreak, TierSilver, 7, "📅", "#c0c0c0", 60),
		def("monthly_habit", "Monthly Habit", "Read 30 days in a row", CategoryStreak, TierGold, 30, "🗓️", "#ffd700", 70),
		def("streak_centurion", "Centurion", "Read 100 days in a row", CategoryStreak, TierPlatinum, 100, "💯", "#e5e4e2", 80),

		// Flashcards
		def("card_novice", "Card Novice", "Master 25 flashcards", CategoryFlashcards, TierBronze, 25, "🃏", "#cd7f32", 90),
		def("card_master", "Card Master", "Master 100 flashcards", CategoryFlashcards, TierSilver, 100, "🎴", "#c0c0c0", 100),
		def("memory_bank", "Memory Bank", "Master 500 flashcards", CategoryFlashcards, TierGold, 500, "🧠", "#ffd700", 110),
		def("total_recall", "Total Recall", "Master 2000 flashcards", CategoryFlashcards, TierPlatinum, 2000, "💾", "#e5e4e2", 120),

		// Assessments (a pass is a score of 80% or better)
		def("first_pass", "First Pass", "Pass your first assessment", CategoryAssessments, TierBronze, 1, "✅", "#cd7f32", 130),
		def("quiz_whiz", "Quiz Whiz", "Pass 5 assessments", CategoryAssessments, TierSilver, 5, "🎓", "#c0c0c0", 140),
		def("high_achiever", "High Achiever", "Pass 20 assessments", CategoryAssessments, TierGold, 20, "🏅", "#ffd700", 150),
		def("perfect_scholar", "Perfect Scholar", "Pass 50 assessments", CategoryAssessments, TierPlatinum, 50, "🏆", "#e5e4e2", 160),

		// Social
		def("helpful_hand", "Helpful Hand", "Have a reply marked as best answer", CategorySocial, TierBronze, 1, "🤝", "#cd7f32", 170),
		def("community_pillar", "Community Pillar", "Earn 10 best answers", CategorySocial, TierSilver, 10, "🏗️", "#c0c0c0", 180),
		def("forum_sage", "Forum Sage", "Earn 50 best answers", CategorySocial, TierGold, 50, "🦉", "#ffd700", 190),

		// Milestones
		def("one_week_in", "One Week In", "Be active for 7 days", CategoryMilestones, TierBronze, 7, "🌱", "#cd7f32", 200),
		def("regular", "Regular", "Be active for 30 days", CategoryMilestones, TierSilver, 30, "🌿", "#c0c0c0", 210),
		def("dedicated", "Dedicated", "Be active for 180 days", CategoryMilestones, TierGold, 180, "🌳", "#ffd700", 220),
		def("veteran_reader", "Veteran", "Be active for 365 days", CategoryMilestones, TierPlatinum, 365, "🌟", "#e5e4e2", 230),
	}
}

package gamification

import "testing"

// testCatalog is a small catalog used across the package tests.
func testCatalog() Catalog {
	return Catalog{
		def("first_book", "First Book", "Finish your first book", CategoryReading, TierBronze, 1, "📖", "#cd7f32", 1),
		def("bookworm", "Bookworm", "Finish 10 books", CategoryReading, TierSilver, 10, "🐛", "#c0c0c0", 2),
		def("week_streak", "Week Streak", "Read 7 days in a row", CategoryStreak, TierSilver, 7, "📅", "#c0c0c0", 3),
		def("card_novice", "Card Novice", "Master 25 flashcards", CategoryFlashcards, TierBronze, 25, "🃏", "#cd7f32", 4),
		retired(def("retired_badge", "Retired", "No longer awarded", CategoryMilestones, TierGold, 5, "🗿", "#ffd700", 5)),
	}
}

func retired(d AchievementDefinition) AchievementDefinition {
	d.IsActive = false
	return d
}

func TestDefaultCatalog_Valid(t *testing.T) {
	if err := DefaultCatalog().Validate(); err != nil {
		t.Fatalf("DefaultCatalog invalid: %v", err)
	}
}

func TestDefaultCatalog_UniqueCodes(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range DefaultCatalog() {
		if seen[d.Code] {
			t.Errorf("duplicate code: %s", d.Code)
		}
		seen[d.Code] = true
	}
}

func TestDefaultCatalog_AllCategoriesCovered(t *testing.T) {
	covered := make(map[Category]bool)
	for _, d := range DefaultCatalog() {
		covered[d.Category] = true
	}
	for _, cat := range Categories() {
		if !covered[cat] {
			t.Errorf("category %q has no achievements", cat)
		}
	}
}

func TestDefaultCatalog_RewardsMatchTier(t *testing.T) {
	for _, d := range DefaultCatalog() {
		if d.XPReward != TierXP[d.Tier] {
			t.Errorf("%s: xp reward %d, tier %s pays %d", d.Code, d.XPReward, d.Tier, TierXP[d.Tier])
		}
		if d.Threshold <= 0 {
			t.Errorf("%s: non-positive threshold %v", d.Code, d.Threshold)
		}
	}
}

func TestCatalog_ByCode(t *testing.T) {
	c := testCatalog()
	d, ok := c.ByCode("bookworm")
	if !ok {
		t.Fatal("bookworm not found")
	}
	if d.Threshold != 10 || d.Tier != TierSilver {
		t.Errorf("bookworm = %+v", d)
	}
	if _, ok := c.ByCode("nope"); ok {
		t.Error("unknown code reported as found")
	}
}

func TestCatalog_ValidateRejectsBadEntries(t *testing.T) {
	base := func() AchievementDefinition {
		return def("ok", "OK", "fine", CategoryReading, TierBronze, 1, "", "", 1)
	}

	cases := []struct {
		name  string
		mutate func(*AchievementDefinition)
	}{
		{"empty code", func(d *AchievementDefinition) { d.Code = "" }},
		{"unknown category", func(d *AchievementDefinition) { d.Category = "karaoke" }},
		{"unknown tier", func(d *AchievementDefinition) { d.Tier = "wood" }},
		{"wrong reward", func(d *AchievementDefinition) { d.XPReward = 999 }},
		{"zero threshold", func(d *AchievementDefinition) { d.Threshold = 0 }},
		{"negative threshold", func(d *AchievementDefinition) { d.Threshold = -3 }},
	}
	for _, tc := range cases {
		d := base()
		tc.mutate(&d)
		if err := (Catalog{d}).Validate(); err == nil {
			t.Errorf("%s: Validate accepted invalid entry", tc.name)
		}
	}

	dup := Catalog{base(), base()}
	if err := dup.Validate(); err == nil {
		t.Error("duplicate codes accepted")
	}
}

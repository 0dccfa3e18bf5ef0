package gamification

import "testing"

func TestLevelOf_ClampsNegative(t *testing.T) {
	info := LevelOf(-5)
	if info.Level != 1 {
		t.Errorf("LevelOf(-5).Level = %d, want 1", info.Level)
	}
	if info.Title != "Novice" {
		t.Errorf("LevelOf(-5).Title = %q, want Novice", info.Title)
	}
}

func TestLevelOf_ThresholdTable(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{600, 4},
		{999, 4},
		{1000, 5},
		{1500, 6},
		{2500, 7},
		{4000, 8},
		{5999, 8},
		{6000, 9},
		{9999, 9},
		{10000, 10},
		{14999, 10},
		{15000, 11},
		{20000, 12},
	}
	for _, tc := range cases {
		if got := LevelOf(tc.xp).Level; got != tc.level {
			t.Errorf("LevelOf(%d).Level = %d, want %d", tc.xp, got, tc.level)
		}
	}
}

func TestLevelOf_LinearExtension(t *testing.T) {
	for k := 0; k <= 50; k++ {
		xp := 10000 + 5000*k
		want := 10 + k
		if got := LevelOf(xp).Level; got != want {
			t.Errorf("LevelOf(%d).Level = %d, want %d", xp, got, want)
		}
		// One XP short of the next boundary stays on this level.
		if got := LevelOf(xp + 4999).Level; got != want {
			t.Errorf("LevelOf(%d).Level = %d, want %d", xp+4999, got, want)
		}
	}
}

func TestLevelOf_Monotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 120000; xp += 7 {
		level := LevelOf(xp).Level
		if level < prev {
			t.Fatalf("level regressed at xp=%d: %d -> %d", xp, prev, level)
		}
		prev = level
	}
}

func TestLevelOf_Titles(t *testing.T) {
	if got := LevelOf(0).Title; got != "Novice" {
		t.Errorf("level 1 title = %q", got)
	}
	if got := LevelOf(10000).Title; got != "Grand Librarian" {
		t.Errorf("level 10 title = %q", got)
	}
	if got := LevelOf(15000).Title; got != "Enlightened" {
		t.Errorf("level 11 title = %q", got)
	}
	if got := LevelOf(1_000_000).Title; got != "Enlightened" {
		t.Errorf("deep level title = %q", got)
	}
}

func TestLevelOf_Idempotent(t *testing.T) {
	for _, xp := range []int{0, 42, 100, 9999, 10000, 55000} {
		a := LevelOf(xp)
		b := LevelOf(xp)
		if a != b {
			t.Errorf("LevelOf(%d) not stable: %+v vs %+v", xp, a, b)
		}
	}
}

func TestXPForLevel_RoundTrip(t *testing.T) {
	for level := 1; level <= 25; level++ {
		xp := XPForLevel(level)
		if got := LevelOf(xp).Level; got != level {
			t.Errorf("LevelOf(XPForLevel(%d)=%d).Level = %d", level, xp, got)
		}
		if level > 1 {
			if got := LevelOf(xp - 1).Level; got != level-1 {
				t.Errorf("LevelOf(%d).Level = %d, want %d", xp-1, got, level-1)
			}
		}
	}
}

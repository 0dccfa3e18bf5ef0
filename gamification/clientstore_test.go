package gamification

import (
	"testing"
	"time"
)

func contains(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func TestUpdateProgress_AccumulatesAndUnlocks(t *testing.T) {
	s := NewProgressStore(testCatalog())

	s.UpdateProgress("bookworm", 4)
	s.UpdateProgress("bookworm", 5)
	p, _ := s.Get("bookworm")
	if p.CurrentValue != 9 || p.IsUnlocked {
		t.Fatalf("after 9 books: %+v", p)
	}

	s.UpdateProgress("bookworm", 1)
	p, _ = s.Get("bookworm")
	if !p.IsUnlocked {
		t.Fatal("threshold crossing should unlock")
	}
	if p.UnlockedAt == nil {
		t.Fatal("unlock timestamp missing")
	}
	if !contains(s.NewlyUnlocked(), "bookworm") {
		t.Error("unlock not queued for notification")
	}
}

func TestUpdateProgress_ClampsAtZero(t *testing.T) {
	s := NewProgressStore(testCatalog())

	s.UpdateProgress("bookworm", 3)
	s.UpdateProgress("bookworm", -10)
	p, _ := s.Get("bookworm")
	if p.CurrentValue != 0 {
		t.Errorf("value = %v, want 0", p.CurrentValue)
	}
}

func TestUpdateProgress_FrozenOnceUnlocked(t *testing.T) {
	s := NewProgressStore(testCatalog())
	s.UpdateProgress("first_book", 1)

	p, _ := s.Get("first_book")
	if !p.IsUnlocked {
		t.Fatal("expected unlock")
	}
	value, unlockedAt := p.CurrentValue, *p.UnlockedAt

	s.UpdateProgress("first_book", 50)
	s.UpdateProgress("first_book", -50)

	p, _ = s.Get("first_book")
	if p.CurrentValue != value {
		t.Errorf("value changed after unlock: %v -> %v", value, p.CurrentValue)
	}
	if !p.UnlockedAt.Equal(unlockedAt) {
		t.Errorf("unlock time changed: %v -> %v", unlockedAt, p.UnlockedAt)
	}
}

func TestUpdateProgress_UnknownCodeNoOp(t *testing.T) {
	s := NewProgressStore(testCatalog())
	s.UpdateProgress("nope", 5)
	if _, ok := s.Get("nope"); ok {
		t.Error("unknown code should not create progress")
	}
}

func TestUpdateProgress_InactiveNeverUnlocks(t *testing.T) {
	s := NewProgressStore(testCatalog())
	s.UpdateProgress("retired_badge", 100)
	p, _ := s.Get("retired_badge")
	if p.IsUnlocked {
		t.Error("inactive achievement unlocked")
	}
	if p.CurrentValue != 100 {
		t.Errorf("progress should still track: %v", p.CurrentValue)
	}
}

func TestUnlockAchievement_Idempotent(t *testing.T) {
	s := NewProgressStore(testCatalog())

	s.UnlockAchievement("week_streak")
	s.UnlockAchievement("week_streak")
	s.UnlockAchievement("week_streak")

	if n := s.UnlockCount(); n != 1 {
		t.Errorf("unlock count = %d, want 1", n)
	}
	if queue := s.NewlyUnlocked(); len(queue) != 1 {
		t.Errorf("notification queue = %v, want one entry", queue)
	}

	p, _ := s.Get("week_streak")
	if p.CurrentValue != 7 {
		t.Errorf("force unlock should raise value to threshold, got %v", p.CurrentValue)
	}
}

func TestCheckFromStats_UnlocksAndIsIdempotent(t *testing.T) {
	s := NewProgressStore(testCatalog())

	unlocked := s.CheckFromStats(StatsSnapshot{BooksCompleted: 1})
	if !contains(unlocked, "first_book") {
		t.Fatalf("first_book missing from %v", unlocked)
	}
	if contains(unlocked, "bookworm") {
		t.Error("bookworm should need 10 books")
	}

	again := s.CheckFromStats(StatsSnapshot{BooksCompleted: 1})
	if len(again) != 0 {
		t.Errorf("second identical check returned %v, want none", again)
	}
}

func TestCheckFromStats_SkipsInactive(t *testing.T) {
	s := NewProgressStore(testCatalog())
	unlocked := s.CheckFromStats(StatsSnapshot{DaysActive: 1000})
	if contains(unlocked, "retired_badge") {
		t.Error("inactive achievement unlocked by stats check")
	}
}

func TestCheckFromStats_TracksProgress(t *testing.T) {
	s := NewProgressStore(testCatalog())
	s.CheckFromStats(StatsSnapshot{BooksCompleted: 4})
	p, _ := s.Get("bookworm")
	if p.CurrentValue != 4 {
		t.Errorf("bookworm progress = %v, want 4", p.CurrentValue)
	}
}

func TestClearNewlyUnlocked(t *testing.T) {
	s := NewProgressStore(testCatalog())
	s.UpdateProgress("first_book", 1)

	s.ClearNewlyUnlocked()
	if queue := s.NewlyUnlocked(); len(queue) != 0 {
		t.Errorf("queue not drained: %v", queue)
	}
	p, _ := s.Get("first_book")
	if !p.IsUnlocked {
		t.Error("draining the queue must not relock achievements")
	}
}

func TestLocalXP_SumsUnlockedRewards(t *testing.T) {
	s := NewProgressStore(testCatalog())
	s.UpdateProgress("first_book", 1) // bronze, 50 XP
	s.CheckFromStats(StatsSnapshot{BooksCompleted: 10}) // bookworm, silver, 100 XP

	if got := s.LocalXP(); got != 150 {
		t.Errorf("LocalXP = %d, want 150", got)
	}
}

func TestLockedUnlockedLists(t *testing.T) {
	s := NewProgressStore(testCatalog())
	s.UnlockAchievement("first_book")

	unlocked := s.Unlocked()
	if len(unlocked) != 1 || unlocked[0] != "first_book" {
		t.Errorf("Unlocked = %v", unlocked)
	}
	locked := s.Locked()
	if contains(locked, "first_book") {
		t.Error("first_book still listed as locked")
	}
	if len(locked)+len(unlocked) != len(testCatalog()) {
		t.Errorf("lists do not partition the catalog: %d + %d", len(locked), len(unlocked))
	}
}

func TestReset_RestoresInitialState(t *testing.T) {
	s := NewProgressStore(testCatalog())
	s.UpdateProgress("first_book", 1)
	s.UpdateProgress("bookworm", 3)

	s.Reset()

	if n := s.UnlockCount(); n != 0 {
		t.Errorf("unlock count after reset = %d", n)
	}
	if xp := s.LocalXP(); xp != 0 {
		t.Errorf("local XP after reset = %d", xp)
	}
	if queue := s.NewlyUnlocked(); len(queue) != 0 {
		t.Errorf("queue after reset = %v", queue)
	}

	fresh := NewProgressStore(testCatalog())
	got, want := s.Export(), fresh.Export()
	if len(got) != len(want) {
		t.Fatalf("export lengths differ: %d vs %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("entry %d differs after reset: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestReconcile_ServerConfirmsMissedUnlock(t *testing.T) {
	s := NewProgressStore(testCatalog())

	serverTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Reconcile([]ServerStatus{
		{Code: "week_streak", Unlocked: true, UnlockedAt: &serverTime},
	})

	p, _ := s.Get("week_streak")
	if !p.IsUnlocked {
		t.Fatal("server-confirmed unlock not applied")
	}
	if p.UnlockedAt == nil || !p.UnlockedAt.Equal(serverTime) {
		t.Errorf("unlock time = %v, want server time %v", p.UnlockedAt, serverTime)
	}
}

func TestReconcile_ServerWinsOverLocalGuess(t *testing.T) {
	s := NewProgressStore(testCatalog())

	// Optimistic local unlock the server never confirms.
	s.UpdateProgress("first_book", 1)

	s.Reconcile([]ServerStatus{
		{Code: "first_book", Unlocked: false},
	})

	p, _ := s.Get("first_book")
	if p.IsUnlocked {
		t.Fatal("local unlock should be reverted when server disagrees")
	}
	if contains(s.NewlyUnlocked(), "first_book") {
		t.Error("reverted unlock still queued for notification")
	}
}

func TestReconcile_LocalTimestampReplacedByServer(t *testing.T) {
	s := NewProgressStore(testCatalog())
	s.UpdateProgress("first_book", 1)

	serverTime := time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC)
	s.Reconcile([]ServerStatus{
		{Code: "first_book", Unlocked: true, UnlockedAt: &serverTime},
	})

	p, _ := s.Get("first_book")
	if !p.UnlockedAt.Equal(serverTime) {
		t.Errorf("server timestamp should win: %v", p.UnlockedAt)
	}
}

func TestReconcile_UnknownCodeIgnored(t *testing.T) {
	s := NewProgressStore(testCatalog())
	s.Reconcile([]ServerStatus{{Code: "ghost", Unlocked: true}})
	if n := s.UnlockCount(); n != 0 {
		t.Errorf("unknown code affected store: %d unlocks", n)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	s := NewProgressStore(testCatalog())
	s.UpdateProgress("first_book", 1)
	s.UpdateProgress("bookworm", 6)

	saved := s.Export()

	restored := NewProgressStore(testCatalog())
	restored.Import(saved)

	p, _ := restored.Get("bookworm")
	if p.CurrentValue != 6 {
		t.Errorf("restored bookworm progress = %v", p.CurrentValue)
	}
	p, _ = restored.Get("first_book")
	if !p.IsUnlocked {
		t.Error("restored first_book should be unlocked")
	}
	if queue := restored.NewlyUnlocked(); len(queue) != 0 {
		t.Errorf("import must not replay notifications: %v", queue)
	}
}

// gamification/clientstore.go - Optimistic client-side progression mirror
package gamification

import (
	"sort"
	"sync"
	"time"
)

// Progress is one achievement's client-side state.
type Progress struct {
	Code         string     `json:"code"`
	CurrentValue float64    `json:"current_value"`
	IsUnlocked   bool       `json:"is_unlocked"`
	UnlockedAt   *time.Time `json:"unlocked_at,omitempty"`
}

// ServerStatus is the authoritative per-achievement state returned by
// the server, used to reconcile the local mirror.
type ServerStatus struct {
	Code       string
	Unlocked   bool
	UnlockedAt *time.Time
}

// ProgressStore is the client's optimistic mirror of achievement state.
// It unlocks locally the moment a threshold is crossed so the UI can
// react without a round-trip, but it is advisory only: the server's
// answer always wins on reconcile, and the whole store can be thrown
// away and rebuilt from server data at any time.
type ProgressStore struct {
	mu            sync.Mutex
	catalog       Catalog
	progress      map[string]*Progress
	newlyUnlocked []string
}

// NewProgressStore returns an all-locked, zero-progress store for the
// given catalog.
func NewProgressStore(catalog Catalog) *ProgressStore {
	s := &ProgressStore{catalog: catalog}
	s.init()
	return s
}

func (s *ProgressStore) init() {
	s.progress = make(map[string]*Progress, len(s.catalog))
	for _, def := range s.catalog {
		s.progress[def.Code] = &Progress{Code: def.Code}
	}
	s.newlyUnlocked = nil
}

// UpdateProgress adds delta to an achievement's tracked value, clamping
// at zero. Unlocked achievements are frozen and ignore updates. If the
// new value crosses the threshold the achievement unlocks locally and
// is queued for notification. Unknown codes are no-ops.
func (s *ProgressStore) UpdateProgress(code string, delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.progress[code]
	if !ok || p.IsUnlocked {
		return
	}
	p.CurrentValue += delta
	if p.CurrentValue < 0 {
		p.CurrentValue = 0
	}

	def, ok := s.catalog.ByCode(code)
	if ok && def.IsActive && p.CurrentValue >= def.Threshold {
		s.unlockLocked(p)
	}
}

// UnlockAchievement force-unlocks an achievement, used when the server
// confirms an award the client had not detected. Re-unlocking is a
// no-op and never queues a duplicate notification.
func (s *ProgressStore) UnlockAchievement(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.progress[code]
	if !ok || p.IsUnlocked {
		return
	}
	if def, ok := s.catalog.ByCode(code); ok && p.CurrentValue < def.Threshold {
		p.CurrentValue = def.Threshold
	}
	s.unlockLocked(p)
}

// unlockLocked transitions p to unlocked. Caller holds s.mu.
func (s *ProgressStore) unlockLocked(p *Progress) {
	now := time.Now().UTC()
	p.IsUnlocked = true
	p.UnlockedAt = &now
	s.newlyUnlocked = append(s.newlyUnlocked, p.Code)
}

// CheckFromStats runs the full criteria check against a locally-known
// snapshot and returns the codes newly unlocked by this call. It
// applies the same category mapping and thresholds the server does,
// and never returns an already-unlocked code.
func (s *ProgressStore) CheckFromStats(stats StatsSnapshot) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var unlocked []string
	for _, def := range s.catalog {
		if !def.IsActive {
			continue
		}
		p, ok := s.progress[def.Code]
		if !ok || p.IsUnlocked {
			continue
		}
		if value := StatValue(def, stats); value > p.CurrentValue {
			p.CurrentValue = value
		}
		if Meets(def, stats) {
			s.unlockLocked(p)
			unlocked = append(unlocked, def.Code)
		}
	}
	return unlocked
}

// NewlyUnlocked returns the pending notification queue in unlock order.
func (s *ProgressStore) NewlyUnlocked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.newlyUnlocked))
	copy(out, s.newlyUnlocked)
	return out
}

// ClearNewlyUnlocked drains the notification queue without touching
// unlock state.
func (s *ProgressStore) ClearNewlyUnlocked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newlyUnlocked = nil
}

// Reconcile overwrites local state with the server's authoritative
// answer. Server-confirmed unlocks (and their timestamps) replace local
// guesses; locally-unlocked entries the server does not confirm are
// reverted to locked. Codes the catalog does not know are ignored.
func (s *ProgressStore) Reconcile(statuses []ServerStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range statuses {
		p, ok := s.progress[st.Code]
		if !ok {
			continue
		}
		if st.Unlocked {
			p.IsUnlocked = true
			p.UnlockedAt = st.UnlockedAt
			if def, ok := s.catalog.ByCode(st.Code); ok && p.CurrentValue < def.Threshold {
				p.CurrentValue = def.Threshold
			}
		} else if p.IsUnlocked {
			p.IsUnlocked = false
			p.UnlockedAt = nil
			s.dropPending(st.Code)
		}
	}
}

// dropPending removes code from the notification queue. Caller holds s.mu.
func (s *ProgressStore) dropPending(code string) {
	kept := s.newlyUnlocked[:0]
	for _, c := range s.newlyUnlocked {
		if c != code {
			kept = append(kept, c)
		}
	}
	s.newlyUnlocked = kept
}

// Reset restores the initial all-locked, zero-progress state.
func (s *ProgressStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
}

// Get returns a copy of one achievement's progress.
func (s *ProgressStore) Get(code string) (Progress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.progress[code]
	if !ok {
		return Progress{}, false
	}
	return *p, true
}

// Unlocked returns the unlocked codes in catalog order.
func (s *ProgressStore) Unlocked() []string {
	return s.filter(true)
}

// Locked returns the still-locked codes in catalog order.
func (s *ProgressStore) Locked() []string {
	return s.filter(false)
}

func (s *ProgressStore) filter(unlocked bool) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, def := range s.catalog {
		if p, ok := s.progress[def.Code]; ok && p.IsUnlocked == unlocked {
			out = append(out, def.Code)
		}
	}
	return out
}

// UnlockCount returns how many achievements are unlocked locally.
func (s *ProgressStore) UnlockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.progress {
		if p.IsUnlocked {
			n++
		}
	}
	return n
}

// LocalXP sums the XP rewards of locally-unlocked achievements. It is
// a projection for display only; the server's XP total is the truth.
func (s *ProgressStore) LocalXP() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, def := range s.catalog {
		if p, ok := s.progress[def.Code]; ok && p.IsUnlocked {
			total += def.XPReward
		}
	}
	return total
}

// Export returns the full progress list sorted by catalog order, for
// local persistence between app launches.
func (s *ProgressStore) Export() []Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Progress, 0, len(s.progress))
	order := make(map[string]int, len(s.catalog))
	for i, def := range s.catalog {
		order[def.Code] = i
	}
	for _, p := range s.progress {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i].Code] < order[out[j].Code] })
	return out
}

// Import restores previously exported progress. Unknown codes are
// skipped. The notification queue is not restored.
func (s *ProgressStore) Import(saved []Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	for _, p := range saved {
		if cur, ok := s.progress[p.Code]; ok {
			*cur = p
		}
	}
	s.newlyUnlocked = nil
}

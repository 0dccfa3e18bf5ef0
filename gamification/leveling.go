// gamification/leveling.go - XP to level mapping
package gamification

// levelThresholds[i] is the cumulative XP required for level i+1.
// Hand-tuned for levels 1-10; beyond that the curve is linear.
var levelThresholds = []int{0, 100, 300, 600, 1000, 1500, 2500, 4000, 6000, 10000}

// xpPerLevelBeyondMax is the XP needed for each level past 10.
const xpPerLevelBeyondMax = 5000

var levelTitles = []string{
	"Novice",
	"Apprentice Reader",
	"Page Turner",
	"Avid Reader",
	"Story Seeker",
	"Scholar",
	"Bibliophile",
	"Sage",
	"Master Reader",
	"Grand Librarian",
}

// maxTierTitle is used for every level past the title table.
const maxTierTitle = "Enlightened"

// LevelInfo is the result of resolving total XP to a level.
type LevelInfo struct {
	Level int    `json:"level"`
	Title string `json:"title"`
}

// LevelOf maps cumulative XP to a level and display title. Negative XP
// is clamped to zero. The function is pure and monotonic: more XP never
// yields a lower level.
func LevelOf(totalXP int) LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}

	top := levelThresholds[len(levelThresholds)-1]
	if totalXP >= top {
		level := len(levelThresholds) + (totalXP-top)/xpPerLevelBeyondMax
		title := maxTierTitle
		if level <= len(levelTitles) {
			title = levelTitles[level-1]
		}
		return LevelInfo{Level: level, Title: title}
	}

	level := 1
	for i, threshold := range levelThresholds {
		if totalXP >= threshold {
			level = i + 1
		}
	}
	return LevelInfo{Level: level, Title: levelTitles[level-1]}
}

// XPForLevel returns the cumulative XP threshold at which the given
// level is reached. Levels at or below 1 need no XP.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if level <= len(levelThresholds) {
		return levelThresholds[level-1]
	}
	top := levelThresholds[len(levelThresholds)-1]
	return top + (level-len(levelThresholds))*xpPerLevelBeyondMax
}

// cmd/catalog-lint - validates the built-in achievement catalog
package main

import (
	"fmt"
	"os"

	"readquest/gamification"
)

func main() {
	catalog := gamification.DefaultCatalog()

	if err := catalog.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "catalog invalid: %v\n", err)
		os.Exit(1)
	}

	byCategory := make(map[gamification.Category]int)
	byTier := make(map[gamification.Tier]int)
	totalXP := 0
	for _, def := range catalog {
		byCategory[def.Category]++
		byTier[def.Tier]++
		totalXP += def.XPReward
	}

	fmt.Printf("catalog OK: %d achievements, %d XP total\n", len(catalog), totalXP)
	for _, cat := range gamification.Categories() {
		fmt.Printf("  %-12s %d\n", cat, byCategory[cat])
	}
	for _, tier := range []gamification.Tier{
		gamification.TierBronze,
		gamification.TierSilver,
		gamification.TierGold,
		gamification.TierPlatinum,
	} {
		fmt.Printf("  %-12s %d (%d XP each)\n", tier, byTier[tier], gamification.TierXP[tier])
	}

	for _, cat := range gamification.Categories() {
		if byCategory[cat] == 0 {
			fmt.Fprintf(os.Stderr, "warning: category %s has no achievements\n", cat)
		}
	}
}

// handlers/init.go - Shared service wiring for the handlers package
package handlers

import (
	"readquest/database"
	"readquest/gamification"
	"readquest/services"
)

var (
	catalog     gamification.Catalog
	progression *services.ProgressionService
)

// InitProgressionHandlers wires the progression service with the
// injected achievement catalog. Called from main after InitDB.
func InitProgressionHandlers(cat gamification.Catalog) {
	catalog = cat
	db := database.GetDB()
	progression = services.NewProgressionService(db, cat, services.NewStatsService(db))
}

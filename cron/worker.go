package cron

import (
	"bookline/services/session"
	"bookline/utils"

	"github.com/robfig/cron/v3"
)

// InitSessionSweeper schedules periodic eviction of expired in-memory
// sessions. Abandoned dialogues otherwise stay in the map forever. The
// redis backend expires keys natively and doesn't need this.
func InitSessionSweeper(store *session.MemoryStore) *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("@every 5m", func() {
		if n := store.EvictExpired(); n > 0 {
			utils.GetLogger().Sugar().Infof("session sweeper: evicted %d expired sessions, %d live", n, store.Len())
		}
	}); err != nil {
		utils.GetLogger().Sugar().Fatalf("failed to schedule session sweeper: %v", err)
	}
	c.Start()
	return c
}

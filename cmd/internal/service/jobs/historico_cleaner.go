package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"

	"solartrack/cmd/internal/utils"
)

const (
	// RetentionMillis keeps audit rows for 180 days.
	RetentionMillis = 180 * 24 * 60 * 60 * 1000

	CleanInterval = 12 * time.Hour
)

type HistoricoRepository interface {
	DeleteOlderThan(cutoff int64) (int64, error)
}

// HistoricoCleaner prunes audit rows past the retention window so the
// history table does not grow without bound.
type HistoricoCleaner struct {
	historicoRepo HistoricoRepository
}

func NewHistoricoCleaner(repo HistoricoRepository) *HistoricoCleaner {
	return &HistoricoCleaner{historicoRepo: repo}
}

func (c *HistoricoCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(CleanInterval)
	defer ticker.Stop()

	log.Info("Histórico cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping histórico cleaner...")
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *HistoricoCleaner) cleanup() {
	cutoff := utils.NowUTC() - RetentionMillis

	removed, err := c.historicoRepo.DeleteOlderThan(cutoff)
	if err != nil {
		log.Errorf("Cleaner: failed to prune audit rows: %v", err)
		return
	}

	if removed > 0 {
		log.Infof("Cleaner: pruned %d audit rows older than %d", removed, cutoff)
	}
}

package ledger

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// RefillWorker tops free-tier users back up to the credit floor once a
// day, so inactive accounts don't drift to zero permanently.
type RefillWorker struct {
	db    *pgxpool.Pool
	cron  *cron.Cron
	floor float64
}

// NewRefillWorker creates the daily refill worker
func NewRefillWorker(db *pgxpool.Pool, floor float64) *RefillWorker {
	return &RefillWorker{
		db:    db,
		cron:  cron.New(),
		floor: floor,
	}
}

// Start schedules the daily refill at midnight UTC
func (w *RefillWorker) Start() {
	_, err := w.cron.AddFunc("0 0 * * *", func() {
		if err := w.refill(context.Background()); err != nil {
			log.Printf("[RefillWorker] Refill failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("[RefillWorker] Failed to schedule refill: %v", err)
		return
	}
	w.cron.Start()
	log.Printf("[RefillWorker] Started (floor: %.0f credits)", w.floor)
}

// Stop stops the cron scheduler
func (w *RefillWorker) Stop() {
	w.cron.Stop()
	log.Printf("[RefillWorker] Stopped")
}

func (w *RefillWorker) refill(ctx context.Context) error {
	tag, err := w.db.Exec(ctx,
		`UPDATE users SET credits = $1 WHERE plan = 'FREE' AND credits < $1`, w.floor)
	if err != nil {
		return err
	}
	log.Printf("[RefillWorker] Topped up %d users to %.0f credits", tag.RowsAffected(), w.floor)
	return nil
}

package ledger

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLedger implements Ledger on the users.credits column
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger creates a ledger backed by the given pool
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Balance returns the user's current credit balance
func (l *PostgresLedger) Balance(ctx context.Context, userID string) (float64, error) {
	var credits float64
	err := l.db.QueryRow(ctx, `SELECT credits FROM users WHERE id = $1`, userID).Scan(&credits)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("user %s not found", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return credits, nil
}

// TryDebit decrements the balance only when it covers amount. The floor
// check and the decrement happen in a single UPDATE, so concurrent debits
// serialize on the row instead of racing a read-then-write.
func (l *PostgresLedger) TryDebit(ctx context.Context, userID string, amount float64) (bool, error) {
	tag, err := l.db.Exec(ctx,
		`UPDATE users SET credits = credits - $2 WHERE id = $1 AND credits >= $2`,
		userID, amount)
	if err != nil {
		return false, fmt.Errorf("failed to debit credits: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Printf("[Ledger.TryDebit] Insufficient credits for user %s (need %.1f)", userID, amount)
		return false, nil
	}
	return true, nil
}

// Credit adds credits to the user's balance
func (l *PostgresLedger) Credit(ctx context.Context, userID string, amount float64) error {
	tag, err := l.db.Exec(ctx,
		`UPDATE users SET credits = credits + $2 WHERE id = $1`, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to credit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", userID)
	}
	return nil
}

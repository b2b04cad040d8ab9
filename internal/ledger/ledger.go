package ledger

import (
	"context"
	"errors"
)

// ErrInsufficientCredits means the balance check failed; the calling
// pipeline must short-circuit before issuing any external call.
var ErrInsufficientCredits = errors.New("not enough credits")

// Ledger is the per-user credit balance every generation action debits.
// TryDebit is the only mutation path generation code may use: it performs
// the sufficiency check and the decrement in one atomic step, so two
// concurrent requests can never both pass a stale balance check.
type Ledger interface {
	Balance(ctx context.Context, userID string) (float64, error)
	// TryDebit atomically decrements the balance if it covers amount.
	// Returns false (and no error) when the balance is insufficient.
	TryDebit(ctx context.Context, userID string, amount float64) (bool, error)
	Credit(ctx context.Context, userID string, amount float64) error
}

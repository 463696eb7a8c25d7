package repositories

import "context"

// TxFn runs inside a transaction; the transaction travels in the
// context so repositories join it automatically.
type TxFn func(ctx context.Context) error

// TransactionManager wraps a function in a single database transaction.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}

package database

import (
	"context"
	"errors"
)

// ErrTransactionAborted wraps every failure that caused a unit of work to roll back.
var ErrTransactionAborted = errors.New("transaction aborted")

// Transactor runs fn as a single unit of work. The context passed to fn carries
// the transaction; repositories resolve their querier from it. fn's error is
// returned wrapped with ErrTransactionAborted after rollback.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

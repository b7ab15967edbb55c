package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic multi-statement operations.
// Repositories called inside fn observe the same transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

package repositories

import (
	"context"
)

// UnitOfWork runs multi-statement writes atomically. Repositories called with
// the context handed to fn share its transaction; readers never observe a
// partially applied write.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

package database

import "context"

// Transactor runs fn as one unit of work. Repository calls made with txCtx
// join it; fn returning an error rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}

package ports

import "context"

// Transactor runs fn inside a single store transaction. The transaction
// travels in the context handed to fn; repositories called with that context
// take part in it. Any error returned by fn, or a cancelled context, rolls
// everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

package transaction

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	serializationFailure = "40001"
	maxAttempts          = 3
)

type TransactionContextKey struct{}

type commitHooksKey struct{}

// commitHooks collects the callbacks registered during one transaction attempt.
type commitHooks struct {
	mu  sync.Mutex
	fns []func(ctx context.Context)
}

func (h *commitHooks) add(fn func(ctx context.Context)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fn)
}

func (h *commitHooks) run(ctx context.Context) {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()
	for _, fn := range fns {
		fn(ctx)
	}
}

func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, TransactionContextKey{}, tx)
}

// Database hands out the transaction carried by a context, or the root handle.
type Database struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// NewDatabase wraps db. Transactions are serializable on postgres and use the
// driver default elsewhere.
func NewDatabase(db *gorm.DB) *Database {
	d := &Database{db: db}
	if db.Dialector.Name() == "postgres" {
		d.opts = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return d
}

// GetTx returns the transaction in ctx, or the root handle, bound to ctx.
func (d *Database) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TransactionContextKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

// WithinTransaction runs fn in a transaction. A call nested inside another
// transaction joins it. Serialization failures are retried.
func (d *Database) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(TransactionContextKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		hooks := &commitHooks{}
		err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(context.WithValue(WithTx(ctx, tx), commitHooksKey{}, hooks))
		}, d.opts)
		if err == nil {
			hooks.run(ctx)
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

// AfterCommit runs fn once the transaction carried by ctx has committed. It is
// dropped when that transaction rolls back. Outside a transaction fn runs at once.
func (d *Database) AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if hooks, ok := ctx.Value(commitHooksKey{}).(*commitHooks); ok {
		hooks.add(fn)
		return
	}
	fn(ctx)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == serializationFailure
}

// Package tx defines the transaction boundary contract used by domain
// services. The PostgreSQL implementation lives in
// infrastructure/storage/postgres; services only ever see this
// interface.
package tx

import "context"

// Manager runs a function inside a database transaction.
type Manager interface {
	// RunInTransaction commits when fn returns nil and rolls back
	// otherwise. A nested call joins the transaction already carried
	// by ctx instead of opening a second one.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager additionally offers read-only transactions for
// query paths that must not take row locks.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a transaction where writes fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pointercrate-rs/corengine/internal/platform/dberr"
)

// querier is satisfied by both [*pgxpool.Pool] and [pgx.Tx], letting
// every repository method run unmodified whether or not it's inside a
// [Service]-orchestrated transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// conn returns the transaction stashed in ctx by [PostgresUnitOfWork],
// or pool itself if none is active.
func conn(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// PostgresUnitOfWork implements [UnitOfWork] over a pgx connection pool.
type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewPostgresUnitOfWork constructs a [PostgresUnitOfWork] over pool.
func NewPostgresUnitOfWork(pool *pgxpool.Pool) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{pool: pool}
}

// WithinTx begins a transaction, stashes it in the context passed to
// fn, and commits it if fn returns nil or rolls it back otherwise.
func (u *PostgresUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, dberr.Generic(err))
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	commitErr := tx.Commit(ctx)
	return dberr.Wrap(commitErr, dberr.Generic(commitErr))
}

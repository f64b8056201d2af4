// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr bridges low-level Postgres/pgx errors to [apperr.AppError].
package dberr

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
)

// NotFound builds the not-found [apperr.AppError] to use when a lookup
// returns [pgx.ErrNoRows]. Callers pass the entity-specific constructor
// so the message names the right resource.
type NotFound func() *apperr.AppError

// Wrap inspects a database error and maps it to a meaningful
// [apperr.AppError], hiding internal database details from the client.
//
// Unique-violations (SQLSTATE 23505) map to [apperr.Conflict] and are
// never logged as internal errors — this is the expected resolution of
// a commit-time race on a uniqueness constraint (e.g. two concurrent
// player creations with the same name), not a bug to diagnose.
func Wrap(err error, notFound NotFound) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return notFound()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.QueryTimeout()
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(conflictMessage(pgErr))
		case pgerrcode.CheckViolation:
			return apperr.GenericBadRequest(pgErr.Message)
		}
	}

	return apperr.DatabaseError(err)
}

// Generic returns a [NotFound] for call sites that don't expect
// [pgx.ErrNoRows] at all (inserts, updates, deletes, multi-row scans) —
// if it somehow occurs, it's reported as an internal error rather than
// panicking on a nil NotFound.
func Generic(err error) NotFound {
	return func() *apperr.AppError { return apperr.DatabaseError(err) }
}

func conflictMessage(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return "conflicts with existing data (" + pgErr.ConstraintName + ")"
	}
	return "conflicts with existing data"
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/database/schema"
	"github.com/pointercrate-rs/corengine/internal/platform/dberr"
)

// PostgresSubmitterRepository implements [SubmitterRepository] using pgx.
type PostgresSubmitterRepository struct {
	db *pgxpool.Pool
}

// NewPostgresSubmitterRepository constructs a PostgreSQL-backed
// submitter store.
func NewPostgresSubmitterRepository(db *pgxpool.Pool) *PostgresSubmitterRepository {
	return &PostgresSubmitterRepository{db: db}
}

func (repository *PostgresSubmitterRepository) q(ctx context.Context) querier {
	return conn(ctx, repository.db)
}

// FindOrCreateByIPHash retrieves the submitter identified by ipHash,
// creating one on first submission. Relies on a unique index on ip_hash
// to resolve the create/lookup race atomically.
func (repository *PostgresSubmitterRepository) FindOrCreateByIPHash(context context.Context, ipHash string) (*Submitter, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, FALSE)
		ON CONFLICT (%s) DO UPDATE SET %s = %s.%s
		RETURNING %s, %s, %s
	`, schema.RefSubmitter.Table, schema.RefSubmitter.IP, schema.RefSubmitter.Banned,
		schema.RefSubmitter.IP, schema.RefSubmitter.IP, schema.RefSubmitter.Table, schema.RefSubmitter.IP,
		schema.RefSubmitter.ID, schema.RefSubmitter.IP, schema.RefSubmitter.Banned)

	submitter := &Submitter{}
	err := repository.q(context).QueryRow(context, query, ipHash).Scan(&submitter.ID, &submitter.IPHash, &submitter.Banned)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	return submitter, nil
}

// FindByID retrieves a submitter by primary key.
func (repository *PostgresSubmitterRepository) FindByID(context context.Context, id int64) (*Submitter, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.RefSubmitter.ID, schema.RefSubmitter.IP, schema.RefSubmitter.Banned, schema.RefSubmitter.Table, schema.RefSubmitter.ID)

	submitter := &Submitter{}
	err := repository.q(context).QueryRow(context, query, id).Scan(&submitter.ID, &submitter.IPHash, &submitter.Banned)
	if err != nil {
		return nil, dberr.Wrap(err, func() *apperr.AppError { return apperr.SubmitterNotFound(id) })
	}
	return submitter, nil
}

// SetBanned flips submitterID's banned flag.
func (repository *PostgresSubmitterRepository) SetBanned(context context.Context, submitterID int64, banned bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, schema.RefSubmitter.Table, schema.RefSubmitter.Banned, schema.RefSubmitter.ID)
	_, err := repository.q(context).Exec(context, query, banned, submitterID)
	return dberr.Wrap(err, dberr.Generic(err))
}

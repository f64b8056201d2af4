// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pointercrate-rs/corengine/internal/platform/database/schema"
	"github.com/pointercrate-rs/corengine/internal/platform/dberr"
)

// PostgresAuditRepository implements [AuditRepository] using pgx.
//
// Demon additions are appended to the bare demon_additions table, which
// carries no field/before/after columns. Record additions go into
// record_modifications as a status change from "" to "submitted", since
// there is no record additions table. Modifications and deletions are
// appended to the "modifications" tables alongside the field they touched.
type PostgresAuditRepository struct {
	db *pgxpool.Pool
}

// NewPostgresAuditRepository constructs a PostgreSQL-backed audit store.
func NewPostgresAuditRepository(db *pgxpool.Pool) *PostgresAuditRepository {
	return &PostgresAuditRepository{db: db}
}

func (repository *PostgresAuditRepository) q(ctx context.Context) querier {
	return conn(ctx, repository.db)
}

// AppendDemonEntry appends entry to the demon audit log.
func (repository *PostgresAuditRepository) AppendDemonEntry(context context.Context, entry *AuditLogEntry) error {
	if entry.Type == AuditAddition {
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, NOW(), $2)`,
			schema.RefDemonAddition.Table, schema.RefDemonAddition.Demon, schema.RefDemonAddition.Time, schema.RefDemonAddition.User)
		_, err := repository.q(context).Exec(context, query, entry.TargetID, entry.UserID)
		return dberr.Wrap(err, dberr.Generic(err))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, NOW(), $2, $3, $4, $5)
	`, schema.RefDemonModification.Table,
		schema.RefDemonModification.Demon, schema.RefDemonModification.Time, schema.RefDemonModification.User,
		schema.RefDemonModification.Field, schema.RefDemonModification.Before, schema.RefDemonModification.After)
	_, err := repository.q(context).Exec(context, query, entry.TargetID, entry.UserID, entry.Field, entry.Before, entry.After)
	return dberr.Wrap(err, dberr.Generic(err))
}

// AppendRecordEntry appends entry to the record audit log.
func (repository *PostgresAuditRepository) AppendRecordEntry(context context.Context, entry *AuditLogEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, NOW(), $2, $3, $4, $5)
	`, schema.RefRecordModification.Table,
		schema.RefRecordModification.Record, schema.RefRecordModification.Time, schema.RefRecordModification.User,
		schema.RefRecordModification.Field, schema.RefRecordModification.Before, schema.RefRecordModification.After)

	field, before, after := entry.Field, entry.Before, entry.After
	if entry.Type == AuditAddition {
		field, before, after = "status", "", string(StatusSubmitted)
	}

	_, err := repository.q(context).Exec(context, query, entry.TargetID, entry.UserID, field, before, after)
	return dberr.Wrap(err, dberr.Generic(err))
}

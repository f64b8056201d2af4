// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/database/schema"
	"github.com/pointercrate-rs/corengine/internal/platform/dberr"
	"github.com/pointercrate-rs/corengine/pkg/pagination"
)

// PostgresRecordRepository implements [RecordRepository] using pgx.
type PostgresRecordRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRecordRepository constructs a PostgreSQL-backed record store.
func NewPostgresRecordRepository(db *pgxpool.Pool) *PostgresRecordRepository {
	return &PostgresRecordRepository{db: db}
}

func (repository *PostgresRecordRepository) q(ctx context.Context) querier {
	return conn(ctx, repository.db)
}

var recordColumns = fmt.Sprintf("r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s",
	schema.RefRecord.ID, schema.RefRecord.Progress, schema.RefRecord.Video, schema.RefRecord.RawFootage,
	schema.RefRecord.Status, schema.RefRecord.Player, schema.RefRecord.Demon, schema.RefRecord.Submitter)

func scanRecord(row interface {
	Scan(dest ...any) error
}) (*Record, error) {
	record := &Record{}
	var status string
	if err := row.Scan(&record.ID, &record.Progress, &record.Video, &record.RawFootage,
		&status, &record.PlayerID, &record.DemonID, &record.SubmitterID); err != nil {
		return nil, err
	}
	record.Status = Status(status)
	return record, nil
}

/*
List returns records matching filter, keyset-paginated by id.

Parameters:
  - context: context.Context
  - filter: RecordFilter
  - query: pagination.Query

Returns:
  - []*Record: Matching records (player/demon left unhydrated; callers
    that need them resolve via [PlayerRepository]/[DemonRepository])
  - error: Database retrieval failures
*/
func (repository *PostgresRecordRepository) List(context context.Context, filter RecordFilter, query pagination.Query) ([]*Record, error) {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(`SELECT %s FROM %s r`, recordColumns, schema.RefRecord.Table))
	if filter.DemonPosGte != nil || filter.DemonPosLte != nil {
		builder.WriteString(fmt.Sprintf(` JOIN %s d ON d.%s = r.%s`, schema.RefDemon.Table, schema.RefDemon.ID, schema.RefRecord.Demon))
	}
	if filter.ClaimedBy != nil {
		builder.WriteString(fmt.Sprintf(` JOIN %s c ON c.%s = r.%s`, schema.RefPlayerClaim.Table, schema.RefPlayerClaim.PlayerID, schema.RefRecord.Player))
	}
	builder.WriteString(" WHERE 1=1")

	args := []any{}
	argID := 1
	add := func(clause string, value any) {
		builder.WriteString(fmt.Sprintf(clause, argID))
		args = append(args, value)
		argID++
	}

	if filter.PlayerID != nil {
		add(fmt.Sprintf(" AND r.%s = $%%d", schema.RefRecord.Player), *filter.PlayerID)
	}
	if filter.DemonID != nil {
		add(fmt.Sprintf(" AND r.%s = $%%d", schema.RefRecord.Demon), *filter.DemonID)
	}
	if filter.DemonPosGte != nil {
		add(fmt.Sprintf(" AND d.%s >= $%%d", schema.RefDemon.Position), *filter.DemonPosGte)
	}
	if filter.DemonPosLte != nil {
		add(fmt.Sprintf(" AND d.%s <= $%%d", schema.RefDemon.Position), *filter.DemonPosLte)
	}
	if filter.Status != nil {
		add(fmt.Sprintf(" AND r.%s = $%%d", schema.RefRecord.Status), string(*filter.Status))
	}
	if filter.Progress != nil {
		add(fmt.Sprintf(" AND r.%s = $%%d", schema.RefRecord.Progress), *filter.Progress)
	}
	if filter.ProgressGte != nil {
		add(fmt.Sprintf(" AND r.%s >= $%%d", schema.RefRecord.Progress), *filter.ProgressGte)
	}
	if filter.ProgressLte != nil {
		add(fmt.Sprintf(" AND r.%s <= $%%d", schema.RefRecord.Progress), *filter.ProgressLte)
	}
	if filter.SubmitterID != nil {
		add(fmt.Sprintf(" AND r.%s = $%%d", schema.RefRecord.Submitter), *filter.SubmitterID)
	}
	if filter.ClaimedBy != nil {
		add(fmt.Sprintf(" AND c.%s = $%%d", schema.RefPlayerClaim.UserID), *filter.ClaimedBy)
	}
	if query.After != nil {
		add(fmt.Sprintf(" AND r.%s > $%%d", schema.RefRecord.ID), *query.After)
	}
	if query.Before != nil {
		add(fmt.Sprintf(" AND r.%s < $%%d", schema.RefRecord.ID), *query.Before)
	}

	order := "ASC"
	if query.Direction() == pagination.Descending {
		order = "DESC"
	}
	builder.WriteString(fmt.Sprintf(" ORDER BY r.%s %s LIMIT $%d", schema.RefRecord.ID, order, argID))
	args = append(args, query.Limit)

	rows, err := repository.q(context).Query(context, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, dberr.Wrap(err, dberr.Generic(err))
		}
		records = append(records, record)
	}
	return records, nil
}

// FindByID retrieves a record by primary key.
func (repository *PostgresRecordRepository) FindByID(context context.Context, id int64) (*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1`, recordColumns, schema.RefRecord.Table, schema.RefRecord.ID)
	record, err := scanRecord(repository.q(context).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, func() *apperr.AppError { return apperr.RecordNotFound(id) })
	}
	return record, nil
}

// FindByVideo retrieves the record currently holding video, or (nil,
// nil) if none does.
func (repository *PostgresRecordRepository) FindByVideo(context context.Context, video string) (*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1`, recordColumns, schema.RefRecord.Table, schema.RefRecord.Video)
	record, err := scanRecord(repository.q(context).QueryRow(context, query, video))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	return record, nil
}

// FindByPlayerAndDemon returns every record for the (playerID, demonID)
// pair.
func (repository *PostgresRecordRepository) FindByPlayerAndDemon(context context.Context, playerID, demonID int64) ([]*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1 AND r.%s = $2`,
		recordColumns, schema.RefRecord.Table, schema.RefRecord.Player, schema.RefRecord.Demon)
	return repository.scanMany(context, query, playerID, demonID)
}

// AllByPlayer returns every record playerID holds, unpaginated.
func (repository *PostgresRecordRepository) AllByPlayer(context context.Context, playerID int64) ([]*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1`, recordColumns, schema.RefRecord.Table, schema.RefRecord.Player)
	return repository.scanMany(context, query, playerID)
}

func (repository *PostgresRecordRepository) scanMany(context context.Context, query string, args ...any) ([]*Record, error) {
	rows, err := repository.q(context).Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, dberr.Wrap(err, dberr.Generic(err))
		}
		records = append(records, record)
	}
	return records, nil
}

// Create inserts record and assigns record.ID.
func (repository *PostgresRecordRepository) Create(context context.Context, record *Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s
	`, schema.RefRecord.Table,
		schema.RefRecord.Progress, schema.RefRecord.Video, schema.RefRecord.RawFootage, schema.RefRecord.Status,
		schema.RefRecord.Player, schema.RefRecord.Demon, schema.RefRecord.Submitter, schema.RefRecord.CreatedAt, schema.RefRecord.UpdatedAt,
		schema.RefRecord.ID)

	err := repository.q(context).QueryRow(context, query,
		record.Progress, record.Video, record.RawFootage, string(record.Status),
		record.PlayerID, record.DemonID, record.SubmitterID,
	).Scan(&record.ID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// Update persists record's mutable fields.
func (repository *PostgresRecordRepository) Update(context context.Context, record *Record) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $7
	`, schema.RefRecord.Table,
		schema.RefRecord.Progress, schema.RefRecord.Video, schema.RefRecord.RawFootage, schema.RefRecord.Status,
		schema.RefRecord.Player, schema.RefRecord.Demon, schema.RefRecord.UpdatedAt,
		schema.RefRecord.ID)

	_, err := repository.q(context).Exec(context, query,
		record.Progress, record.Video, record.RawFootage, string(record.Status),
		record.PlayerID, record.DemonID, record.ID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// Delete permanently removes recordID, cascading its notes.
func (repository *PostgresRecordRepository) Delete(context context.Context, recordID int64) error {
	noteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefRecordNote.Table, schema.RefRecordNote.RecordID)
	if _, err := repository.q(context).Exec(context, noteQuery, recordID); err != nil {
		return dberr.Wrap(err, dberr.Generic(err))
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefRecord.Table, schema.RefRecord.ID)
	_, err := repository.q(context).Exec(context, query, recordID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// DeleteMany permanently removes every record in recordIDs.
func (repository *PostgresRecordRepository) DeleteMany(context context.Context, recordIDs []int64) error {
	for _, id := range recordIDs {
		if err := repository.Delete(context, id); err != nil {
			return err
		}
	}
	return nil
}

// TransferNotes reassigns every note on fromRecordID to toRecordID.
func (repository *PostgresRecordRepository) TransferNotes(context context.Context, fromRecordID, toRecordID int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, schema.RefRecordNote.Table, schema.RefRecordNote.RecordID, schema.RefRecordNote.RecordID)
	_, err := repository.q(context).Exec(context, query, toRecordID, fromRecordID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// AddNote appends note to a record, assigning note.ID.
func (repository *PostgresRecordRepository) AddNote(context context.Context, note *RecordNote) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s
	`, schema.RefRecordNote.Table, schema.RefRecordNote.RecordID, schema.RefRecordNote.Content, schema.RefRecordNote.Author, schema.RefRecordNote.CreatedAt,
		schema.RefRecordNote.ID)

	err := repository.q(context).QueryRow(context, query, note.RecordID, note.Content, note.Author).Scan(&note.ID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// DeleteNote removes a single note by id.
func (repository *PostgresRecordRepository) DeleteNote(context context.Context, noteID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefRecordNote.Table, schema.RefRecordNote.ID)
	_, err := repository.q(context).Exec(context, query, noteID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// ListNotes returns every note on recordID, oldest first.
func (repository *PostgresRecordRepository) ListNotes(context context.Context, recordID int64) ([]*RecordNote, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC
	`, schema.RefRecordNote.ID, schema.RefRecordNote.RecordID, schema.RefRecordNote.Content, schema.RefRecordNote.Author, schema.RefRecordNote.CreatedAt,
		schema.RefRecordNote.Table, schema.RefRecordNote.RecordID, schema.RefRecordNote.CreatedAt)

	rows, err := repository.q(context).Query(context, query, recordID)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	defer rows.Close()

	var notes []*RecordNote
	for rows.Next() {
		note := &RecordNote{}
		if err := rows.Scan(&note.ID, &note.RecordID, &note.Content, &note.Author, &note.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, dberr.Generic(err))
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// ApprovedAndVerified returns, for playerID, every Approved record plus
// every demon where playerID is the verifier — the two contributions
// spec.md §4.6 sums into the demon component of a player's score.
func (repository *PostgresRecordRepository) ApprovedAndVerified(context context.Context, playerID int64) ([]*Record, []*Demon, error) {
	recordQuery := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1 AND r.%s = $2`,
		recordColumns, schema.RefRecord.Table, schema.RefRecord.Player, schema.RefRecord.Status)
	records, err := repository.scanMany(context, recordQuery, playerID, string(StatusApproved))
	if err != nil {
		return nil, nil, err
	}

	demonQuery := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
	`, schema.RefDemon.ID, schema.RefDemon.Position, schema.RefDemon.Requirement, schema.RefDemon.Table, schema.RefDemon.Verifier)
	rows, err := repository.q(context).Query(context, demonQuery, playerID)
	if err != nil {
		return nil, nil, dberr.Wrap(err, dberr.Generic(err))
	}
	defer rows.Close()

	var verified []*Demon
	for rows.Next() {
		demon := &Demon{}
		if err := rows.Scan(&demon.ID, &demon.Position, &demon.Requirement); err != nil {
			return nil, nil, dberr.Wrap(err, dberr.Generic(err))
		}
		verified = append(verified, demon)
	}

	return records, verified, nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/database/schema"
	"github.com/pointercrate-rs/corengine/internal/platform/dberr"
	"github.com/pointercrate-rs/corengine/pkg/pagination"
)

// PostgresPlayerRepository implements [PlayerRepository] using pgx.
type PostgresPlayerRepository struct {
	db *pgxpool.Pool
}

// NewPostgresPlayerRepository constructs a PostgreSQL-backed player store.
func NewPostgresPlayerRepository(db *pgxpool.Pool) *PostgresPlayerRepository {
	return &PostgresPlayerRepository{db: db}
}

func (repository *PostgresPlayerRepository) q(ctx context.Context) querier {
	return conn(ctx, repository.db)
}

const playerSelectColumns = `p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
	n.%s, n.%s, n.%s,
	s.%s, s.%s, s.%s`

func (repository *PostgresPlayerRepository) selectJoin() string {
	return fmt.Sprintf(`
		SELECT `+playerSelectColumns+`
		FROM %s p
		LEFT JOIN %s n ON n.%s = p.%s
		LEFT JOIN %s s ON s.%s = p.%s AND s.%s = p.%s
	`,
		schema.RefPlayer.ID, schema.RefPlayer.Name, schema.RefPlayer.Banned, schema.RefPlayer.Nationality, schema.RefPlayer.Subdivision, schema.RefPlayer.Score,
		schema.RefNationality.CountryCode, schema.RefNationality.Name, schema.RefNationality.Score,
		schema.RefSubdivision.SubdivisionCode, schema.RefSubdivision.Name, schema.RefSubdivision.Score,
		schema.RefPlayer.Table,
		schema.RefNationality.Table, schema.RefNationality.CountryCode, schema.RefPlayer.Nationality,
		schema.RefSubdivision.Table, schema.RefSubdivision.CountryCode, schema.RefPlayer.Nationality, schema.RefSubdivision.SubdivisionCode, schema.RefPlayer.Subdivision,
	)
}

func scanPlayer(row interface {
	Scan(dest ...any) error
}) (*Player, error) {
	player := &Player{}
	var nationCode, nationName, subCode, subName *string
	var nationScore, subScore *float64
	if err := row.Scan(&player.ID, &player.Name, &player.Banned, new(*string), new(*string), &player.Score,
		&nationCode, &nationName, &nationScore,
		&subCode, &subName, &subScore); err != nil {
		return nil, err
	}
	if nationCode != nil {
		player.Nationality = &Nationality{CountryCode: *nationCode, Name: *nationName, Score: *nationScore}
	} else {
		player.Nationality = nil
	}
	if subCode != nil {
		player.Subdivision = &Subdivision{CountryCode: *nationCode, SubdivisionCode: *subCode, Name: *subName, Score: *subScore}
	} else {
		player.Subdivision = nil
	}
	return player, nil
}

/*
List returns players matching filter, keyset-paginated by id.

Parameters:
  - context: context.Context
  - filter: PlayerFilter
  - query: pagination.Query

Returns:
  - []*Player: Matching players
  - error: Database retrieval failures
*/
func (repository *PostgresPlayerRepository) List(context context.Context, filter PlayerFilter, query pagination.Query) ([]*Player, error) {
	var builder strings.Builder
	builder.WriteString(repository.selectJoin())
	builder.WriteString(" WHERE 1=1")

	args := []any{}
	argID := 1

	if filter.Query != "" {
		builder.WriteString(fmt.Sprintf(" AND p.%s ILIKE $%d", schema.RefPlayer.Name, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}
	if filter.Banned != nil {
		builder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.RefPlayer.Banned, argID))
		args = append(args, *filter.Banned)
		argID++
	}
	if filter.NationCode != "" {
		builder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.RefPlayer.Nationality, argID))
		args = append(args, filter.NationCode)
		argID++
	}
	if filter.ClaimedBy != nil {
		builder.WriteString(fmt.Sprintf(` AND EXISTS (SELECT 1 FROM %s c WHERE c.%s = p.%s AND c.%s = $%d)`,
			schema.RefPlayerClaim.Table, schema.RefPlayerClaim.PlayerID, schema.RefPlayer.ID, schema.RefPlayerClaim.UserID, argID))
		args = append(args, *filter.ClaimedBy)
		argID++
	}
	if query.After != nil {
		builder.WriteString(fmt.Sprintf(" AND p.%s > $%d", schema.RefPlayer.ID, argID))
		args = append(args, *query.After)
		argID++
	}
	if query.Before != nil {
		builder.WriteString(fmt.Sprintf(" AND p.%s < $%d", schema.RefPlayer.ID, argID))
		args = append(args, *query.Before)
		argID++
	}

	order := "ASC"
	if query.Direction() == pagination.Descending {
		order = "DESC"
	}
	builder.WriteString(fmt.Sprintf(" ORDER BY p.%s %s LIMIT $%d", schema.RefPlayer.ID, order, argID))
	args = append(args, query.Limit)

	rows, err := repository.q(context).Query(context, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	defer rows.Close()

	var players []*Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, dberr.Wrap(err, dberr.Generic(err))
		}
		players = append(players, player)
	}
	return players, nil
}

// FindByID retrieves a single player by primary key.
func (repository *PostgresPlayerRepository) FindByID(context context.Context, id int64) (*Player, error) {
	query := repository.selectJoin() + fmt.Sprintf(" WHERE p.%s = $1", schema.RefPlayer.ID)
	player, err := scanPlayer(repository.q(context).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, func() *apperr.AppError { return apperr.PlayerNotFound(fmt.Sprintf("%d", id)) })
	}
	return player, nil
}

// FindByName retrieves a player by case-insensitive exact name.
func (repository *PostgresPlayerRepository) FindByName(context context.Context, name string) (*Player, error) {
	query := repository.selectJoin() + fmt.Sprintf(" WHERE p.%s ILIKE $1", schema.RefPlayer.Name)
	player, err := scanPlayer(repository.q(context).QueryRow(context, query, name))
	if err != nil {
		return nil, dberr.Wrap(err, func() *apperr.AppError { return apperr.PlayerNotFound(name) })
	}
	return player, nil
}

// FindOrCreateByName returns the player named name, creating it with
// default fields if it doesn't exist yet. Relies on the players table's
// CITEXT name column to resolve the create/lookup race atomically.
func (repository *PostgresPlayerRepository) FindOrCreateByName(context context.Context, name string) (*Player, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, FALSE, NOW())
		ON CONFLICT (%s) DO UPDATE SET %s = %s.%s
		RETURNING %s
	`, schema.RefPlayer.Table, schema.RefPlayer.Name, schema.RefPlayer.Banned, schema.RefPlayer.CreatedAt,
		schema.RefPlayer.Name, schema.RefPlayer.Name, schema.RefPlayer.Table, schema.RefPlayer.Name,
		schema.RefPlayer.ID)

	var id int64
	if err := repository.q(context).QueryRow(context, query, name).Scan(&id); err != nil {
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	return repository.FindByID(context, id)
}

// Create inserts player and assigns player.ID.
func (repository *PostgresPlayerRepository) Create(context context.Context, player *Player) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s
	`, schema.RefPlayer.Table, schema.RefPlayer.Name, schema.RefPlayer.Banned, schema.RefPlayer.Nationality, schema.RefPlayer.CreatedAt,
		schema.RefPlayer.ID)

	err := repository.q(context).QueryRow(context, query, player.Name, player.Banned, natCode(player.Nationality)).Scan(&player.ID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// Update persists player's name, ban state, and geography.
func (repository *PostgresPlayerRepository) Update(context context.Context, player *Player) error {
	var nationCode, subCode *string
	if player.Nationality != nil {
		nationCode = &player.Nationality.CountryCode
	}
	if player.Subdivision != nil {
		subCode = &player.Subdivision.SubdivisionCode
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4 WHERE %s = $5`,
		schema.RefPlayer.Table, schema.RefPlayer.Name, schema.RefPlayer.Banned, schema.RefPlayer.Nationality, schema.RefPlayer.Subdivision, schema.RefPlayer.ID)
	_, err := repository.q(context).Exec(context, query, player.Name, player.Banned, nationCode, subCode, player.ID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// UpdateScore persists a recomputed total score for playerID.
func (repository *PostgresPlayerRepository) UpdateScore(context context.Context, playerID int64, score float64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, schema.RefPlayer.Table, schema.RefPlayer.Score, schema.RefPlayer.ID)
	_, err := repository.q(context).Exec(context, query, score, playerID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// Delete permanently removes playerID. Only ever called by
// [Service.MergePlayers] once every reference has been reassigned away.
func (repository *PostgresPlayerRepository) Delete(context context.Context, playerID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefPlayer.Table, schema.RefPlayer.ID)
	_, err := repository.q(context).Exec(context, query, playerID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// ReassignRecords moves every record held by fromPlayerID onto toPlayerID.
func (repository *PostgresPlayerRepository) ReassignRecords(context context.Context, fromPlayerID, toPlayerID int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, schema.RefRecord.Table, schema.RefRecord.Player, schema.RefRecord.Player)
	_, err := repository.q(context).Exec(context, query, toPlayerID, fromPlayerID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// ReassignCredits moves every verifier/publisher/creator attribution
// from fromPlayerID onto toPlayerID.
func (repository *PostgresPlayerRepository) ReassignCredits(context context.Context, fromPlayerID, toPlayerID int64) error {
	queries := []string{
		fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, schema.RefDemon.Table, schema.RefDemon.Verifier, schema.RefDemon.Verifier),
		fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, schema.RefDemon.Table, schema.RefDemon.Publisher, schema.RefDemon.Publisher),
		fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, schema.RefCreator.Table, schema.RefCreator.Creator, schema.RefCreator.Creator),
	}
	for _, query := range queries {
		if _, err := repository.q(context).Exec(context, query, toPlayerID, fromPlayerID); err != nil {
			return dberr.Wrap(err, dberr.Generic(err))
		}
	}
	return nil
}

// AllIDs returns every player id in the table, used for background
// score-recompute sweeps.
func (repository *PostgresPlayerRepository) AllIDs(context context.Context) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, schema.RefPlayer.ID, schema.RefPlayer.Table)
	rows, err := repository.q(context).Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, dberr.Generic(err))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DemonsCreatedBy returns the ids of demons playerID is credited as a
// creator of, used by [Service.MergePlayers] to dedup credits before
// reassigning them.
func (repository *PostgresPlayerRepository) DemonsCreatedBy(context context.Context, playerID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schema.RefCreator.Demon, schema.RefCreator.Table, schema.RefCreator.Creator)
	rows, err := repository.q(context).Query(context, query, playerID)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, dberr.Generic(err))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

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

// PostgresDemonRepository implements [DemonRepository] using pgx.
type PostgresDemonRepository struct {
	db *pgxpool.Pool
}

// NewPostgresDemonRepository constructs a PostgreSQL-backed demon store.
func NewPostgresDemonRepository(db *pgxpool.Pool) *PostgresDemonRepository {
	return &PostgresDemonRepository{db: db}
}

func (repository *PostgresDemonRepository) q(ctx context.Context) querier {
	return conn(ctx, repository.db)
}

/*
List returns demons matching filter, keyset-paginated by position.

Parameters:
  - context: context.Context
  - filter: DemonFilter
  - query: pagination.Query (bounds are demon positions)

Returns:
  - []*Demon: Matching demons, hydrated with verifier/publisher
  - error: Database retrieval failures
*/
func (repository *PostgresDemonRepository) List(context context.Context, filter DemonFilter, query pagination.Query) ([]*Demon, error) {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(`
		SELECT d.%s, d.%s, d.%s, d.%s, d.%s, d.%s,
		       v.%s, v.%s, p.%s, p.%s
		FROM %s d
		LEFT JOIN %s v ON v.%s = d.%s
		LEFT JOIN %s p ON p.%s = d.%s
		WHERE 1=1
	`,
		schema.RefDemon.ID, schema.RefDemon.Name, schema.RefDemon.Position, schema.RefDemon.Requirement, schema.RefDemon.Video, schema.RefDemon.LevelID,
		schema.RefPlayer.ID, schema.RefPlayer.Name, schema.RefPlayer.ID, schema.RefPlayer.Name,
		schema.RefDemon.Table,
		schema.RefPlayer.Table, schema.RefPlayer.ID, schema.RefDemon.Verifier,
		schema.RefPlayer.Table, schema.RefPlayer.ID, schema.RefDemon.Publisher,
	))

	args := []any{}
	argID := 1

	if filter.NameContains != "" {
		builder.WriteString(fmt.Sprintf(" AND d.%s ILIKE $%d", schema.RefDemon.Name, argID))
		args = append(args, "%"+filter.NameContains+"%")
		argID++
	}
	if filter.RequirementGte != nil {
		builder.WriteString(fmt.Sprintf(" AND d.%s >= $%d", schema.RefDemon.Requirement, argID))
		args = append(args, *filter.RequirementGte)
		argID++
	}
	if filter.RequirementLte != nil {
		builder.WriteString(fmt.Sprintf(" AND d.%s <= $%d", schema.RefDemon.Requirement, argID))
		args = append(args, *filter.RequirementLte)
		argID++
	}
	if query.After != nil {
		builder.WriteString(fmt.Sprintf(" AND d.%s > $%d", schema.RefDemon.Position, argID))
		args = append(args, *query.After)
		argID++
	}
	if query.Before != nil {
		builder.WriteString(fmt.Sprintf(" AND d.%s < $%d", schema.RefDemon.Position, argID))
		args = append(args, *query.Before)
		argID++
	}

	order := "ASC"
	if query.Direction() == pagination.Descending {
		order = "DESC"
	}
	builder.WriteString(fmt.Sprintf(" ORDER BY d.%s %s LIMIT $%d", schema.RefDemon.Position, order, argID))
	args = append(args, query.Limit)

	rows, err := repository.q(context).Query(context, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	defer rows.Close()

	var demons []*Demon
	for rows.Next() {
		demon := &Demon{Verifier: &Player{}, Publisher: &Player{}}
		var verifierID, publisherID *int64
		var verifierName, publisherName *string
		if err := rows.Scan(&demon.ID, &demon.Name, &demon.Position, &demon.Requirement, &demon.Video, &demon.LevelID,
			&verifierID, &verifierName, &publisherID, &publisherName); err != nil {
			return nil, dberr.Wrap(err, dberr.Generic(err))
		}
		if verifierID != nil {
			demon.Verifier = &Player{ID: *verifierID, Name: *verifierName}
		} else {
			demon.Verifier = nil
		}
		if publisherID != nil {
			demon.Publisher = &Player{ID: *publisherID, Name: *publisherName}
		} else {
			demon.Publisher = nil
		}
		demons = append(demons, demon)
	}

	return demons, nil
}

// FindByID retrieves a single demon by primary key, hydrated with its
// creators.
func (repository *PostgresDemonRepository) FindByID(context context.Context, id int64) (*Demon, error) {
	query := fmt.Sprintf(`
		SELECT d.%s, d.%s, d.%s, d.%s, d.%s, d.%s,
		       v.%s, v.%s, p.%s, p.%s
		FROM %s d
		LEFT JOIN %s v ON v.%s = d.%s
		LEFT JOIN %s p ON p.%s = d.%s
		WHERE d.%s = $1
	`,
		schema.RefDemon.ID, schema.RefDemon.Name, schema.RefDemon.Position, schema.RefDemon.Requirement, schema.RefDemon.Video, schema.RefDemon.LevelID,
		schema.RefPlayer.ID, schema.RefPlayer.Name, schema.RefPlayer.ID, schema.RefPlayer.Name,
		schema.RefDemon.Table,
		schema.RefPlayer.Table, schema.RefPlayer.ID, schema.RefDemon.Verifier,
		schema.RefPlayer.Table, schema.RefPlayer.ID, schema.RefDemon.Publisher,
		schema.RefDemon.ID,
	)

	demon := &Demon{}
	var verifierID, publisherID *int64
	var verifierName, publisherName *string
	err := repository.q(context).QueryRow(context, query, id).Scan(
		&demon.ID, &demon.Name, &demon.Position, &demon.Requirement, &demon.Video, &demon.LevelID,
		&verifierID, &verifierName, &publisherID, &publisherName,
	)
	if err != nil {
		return nil, dberr.Wrap(err, func() *apperr.AppError { return apperr.DemonNotFound(id) })
	}
	if verifierID != nil {
		demon.Verifier = &Player{ID: *verifierID, Name: *verifierName}
	}
	if publisherID != nil {
		demon.Publisher = &Player{ID: *publisherID, Name: *publisherName}
	}

	creators, err := repository.ListCreators(context, id)
	if err != nil {
		return nil, err
	}
	demon.Creators = creators

	return demon, nil
}

// FindByPosition retrieves the demon currently holding position.
func (repository *PostgresDemonRepository) FindByPosition(context context.Context, position int) (*Demon, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schema.RefDemon.ID, schema.RefDemon.Table, schema.RefDemon.Position)

	var id int64
	err := repository.q(context).QueryRow(context, query, position).Scan(&id)
	if err != nil {
		return nil, dberr.Wrap(err, func() *apperr.AppError { return apperr.DemonNotFound(int64(position)) })
	}
	return repository.FindByID(context, id)
}

// FindByName retrieves a demon by case-insensitive exact name match,
// preferring the lowest position when more than one shares the name.
func (repository *PostgresDemonRepository) FindByName(context context.Context, name string) (*Demon, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ILIKE $1 ORDER BY %s ASC LIMIT 1`,
		schema.RefDemon.ID, schema.RefDemon.Table, schema.RefDemon.Name, schema.RefDemon.Position)

	var id int64
	err := repository.q(context).QueryRow(context, query, name).Scan(&id)
	if err != nil {
		return nil, dberr.Wrap(err, func() *apperr.AppError { return apperr.DemonNotFound(0) })
	}
	return repository.FindByID(context, id)
}

// MaxPosition returns the highest assigned position, or 0 if empty.
func (repository *PostgresDemonRepository) MaxPosition(context context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) FROM %s`, schema.RefDemon.Position, schema.RefDemon.Table)

	var max int
	if err := repository.q(context).QueryRow(context, query).Scan(&max); err != nil {
		return 0, dberr.Wrap(err, dberr.Generic(err))
	}
	return max, nil
}

// Create inserts demon and assigns demon.ID.
func (repository *PostgresDemonRepository) Create(context context.Context, demon *Demon) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s
	`, schema.RefDemon.Table,
		schema.RefDemon.Name, schema.RefDemon.Position, schema.RefDemon.Requirement, schema.RefDemon.Video, schema.RefDemon.LevelID, schema.RefDemon.Verifier, schema.RefDemon.CreatedAt,
		schema.RefDemon.ID)

	var verifierID, publisherID *int64
	if demon.Verifier != nil {
		verifierID = &demon.Verifier.ID
	}
	if demon.Publisher != nil {
		publisherID = &demon.Publisher.ID
	}

	err := repository.q(context).QueryRow(context, query, demon.Name, demon.Position, demon.Requirement, demon.Video, demon.LevelID, verifierID).Scan(&demon.ID)
	if err != nil {
		return dberr.Wrap(err, dberr.Generic(err))
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, schema.RefDemon.Table, schema.RefDemon.Publisher, schema.RefDemon.ID)
	if _, err := repository.q(context).Exec(context, updateQuery, publisherID, demon.ID); err != nil {
		return dberr.Wrap(err, dberr.Generic(err))
	}

	return nil
}

// Update persists demon's mutable, non-position fields.
func (repository *PostgresDemonRepository) Update(context context.Context, demon *Demon) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $7
	`, schema.RefDemon.Table,
		schema.RefDemon.Name, schema.RefDemon.Requirement, schema.RefDemon.Video, schema.RefDemon.LevelID, schema.RefDemon.Verifier, schema.RefDemon.Publisher, schema.RefDemon.UpdatedAt,
		schema.RefDemon.ID)

	var verifierID, publisherID *int64
	if demon.Verifier != nil {
		verifierID = &demon.Verifier.ID
	}
	if demon.Publisher != nil {
		publisherID = &demon.Publisher.ID
	}

	_, err := repository.q(context).Exec(context, query, demon.Name, demon.Requirement, demon.Video, demon.LevelID, verifierID, publisherID, demon.ID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// ShiftPositions adds delta to every demon's position in
// [fromPosition, toPosition].
func (repository *PostgresDemonRepository) ShiftPositions(context context.Context, fromPosition, toPosition, delta int) error {
	if fromPosition > toPosition {
		return nil
	}
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + $1 WHERE %s BETWEEN $2 AND $3`,
		schema.RefDemon.Table, schema.RefDemon.Position, schema.RefDemon.Position, schema.RefDemon.Position)
	_, err := repository.q(context).Exec(context, query, delta, fromPosition, toPosition)
	return dberr.Wrap(err, dberr.Generic(err))
}

// SetPosition moves a single demon to position directly.
func (repository *PostgresDemonRepository) SetPosition(context context.Context, demonID int64, position int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, schema.RefDemon.Table, schema.RefDemon.Position, schema.RefDemon.ID)
	_, err := repository.q(context).Exec(context, query, position, demonID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// AddCreator links player as a creator of demon.
func (repository *PostgresDemonRepository) AddCreator(context context.Context, demonID, playerID int64) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, schema.RefCreator.Table, schema.RefCreator.Demon, schema.RefCreator.Creator)
	_, err := repository.q(context).Exec(context, query, demonID, playerID)
	if err != nil {
		return dberr.Wrap(err, func() *apperr.AppError { return apperr.CreatorExists() })
	}
	return nil
}

// RemoveCreator unlinks player from demon's creator list.
func (repository *PostgresDemonRepository) RemoveCreator(context context.Context, demonID, playerID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, schema.RefCreator.Table, schema.RefCreator.Demon, schema.RefCreator.Creator)
	_, err := repository.q(context).Exec(context, query, demonID, playerID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// ListCreators returns the players credited as creators of demon.
func (repository *PostgresDemonRepository) ListCreators(context context.Context, demonID int64) ([]*Player, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s
		FROM %s c
		JOIN %s p ON p.%s = c.%s
		WHERE c.%s = $1
		ORDER BY p.%s ASC
	`, schema.RefPlayer.ID, schema.RefPlayer.Name,
		schema.RefCreator.Table,
		schema.RefPlayer.Table, schema.RefPlayer.ID, schema.RefCreator.Creator,
		schema.RefCreator.Demon,
		schema.RefPlayer.Name)

	rows, err := repository.q(context).Query(context, query, demonID)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	defer rows.Close()

	var creators []*Player
	for rows.Next() {
		player := &Player{}
		if err := rows.Scan(&player.ID, &player.Name); err != nil {
			return nil, dberr.Wrap(err, dberr.Generic(err))
		}
		creators = append(creators, player)
	}
	return creators, nil
}

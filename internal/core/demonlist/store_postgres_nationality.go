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

// PostgresNationalityRepository implements [NationalityRepository]
// using pgx.
type PostgresNationalityRepository struct {
	db *pgxpool.Pool
}

// NewPostgresNationalityRepository constructs a PostgreSQL-backed
// nationality store.
func NewPostgresNationalityRepository(db *pgxpool.Pool) *PostgresNationalityRepository {
	return &PostgresNationalityRepository{db: db}
}

func (repository *PostgresNationalityRepository) q(ctx context.Context) querier {
	return conn(ctx, repository.db)
}

// FindByCode retrieves a nationality by ISO-3166-1 code.
func (repository *PostgresNationalityRepository) FindByCode(context context.Context, countryCode string) (*Nationality, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.RefNationality.CountryCode, schema.RefNationality.Name, schema.RefNationality.Score,
		schema.RefNationality.Table, schema.RefNationality.CountryCode)

	nationality := &Nationality{}
	err := repository.q(context).QueryRow(context, query, countryCode).Scan(&nationality.CountryCode, &nationality.Name, &nationality.Score)
	if err != nil {
		return nil, dberr.Wrap(err, func() *apperr.AppError { return apperr.NationalityNotFound(countryCode) })
	}
	return nationality, nil
}

// FindSubdivision retrieves a subdivision by its ISO-3166-2 code within
// countryCode.
func (repository *PostgresNationalityRepository) FindSubdivision(context context.Context, countryCode, subdivisionCode string) (*Subdivision, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.RefSubdivision.CountryCode, schema.RefSubdivision.SubdivisionCode, schema.RefSubdivision.Name, schema.RefSubdivision.Score,
		schema.RefSubdivision.Table, schema.RefSubdivision.CountryCode, schema.RefSubdivision.SubdivisionCode)

	subdivision := &Subdivision{}
	err := repository.q(context).QueryRow(context, query, countryCode, subdivisionCode).Scan(
		&subdivision.CountryCode, &subdivision.SubdivisionCode, &subdivision.Name, &subdivision.Score)
	if err != nil {
		return nil, dberr.Wrap(err, func() *apperr.AppError { return apperr.SubdivisionNotFound(subdivisionCode) })
	}
	return subdivision, nil
}

// List returns every known nationality, ordered by name.
func (repository *PostgresNationalityRepository) List(context context.Context) ([]*Nationality, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.RefNationality.CountryCode, schema.RefNationality.Name, schema.RefNationality.Score,
		schema.RefNationality.Table, schema.RefNationality.Name)

	rows, err := repository.q(context).Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	defer rows.Close()

	var nationalities []*Nationality
	for rows.Next() {
		nationality := &Nationality{}
		if err := rows.Scan(&nationality.CountryCode, &nationality.Name, &nationality.Score); err != nil {
			return nil, dberr.Wrap(err, dberr.Generic(err))
		}
		nationalities = append(nationalities, nationality)
	}
	return nationalities, nil
}

// UpdateScore persists a freshly recomputed score for countryCode.
func (repository *PostgresNationalityRepository) UpdateScore(context context.Context, countryCode string, score float64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.RefNationality.Table, schema.RefNationality.Score, schema.RefNationality.CountryCode)
	_, err := repository.q(context).Exec(context, query, score, countryCode)
	return dberr.Wrap(err, dberr.Generic(err))
}

// UpdateSubdivisionScore persists a freshly recomputed score for the
// given subdivision.
func (repository *PostgresNationalityRepository) UpdateSubdivisionScore(context context.Context, countryCode, subdivisionCode string, score float64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2 AND %s = $3`,
		schema.RefSubdivision.Table, schema.RefSubdivision.Score, schema.RefSubdivision.CountryCode, schema.RefSubdivision.SubdivisionCode)
	_, err := repository.q(context).Exec(context, query, score, countryCode, subdivisionCode)
	return dberr.Wrap(err, dberr.Generic(err))
}

// SumMemberScores returns the sum of every non-banned player's score for
// countryCode, and, if subdivisionCode is non-empty, the same sum
// restricted to that subdivision — computed in the database so it isn't
// capped by the page size of the public player listing (spec.md §4.6).
func (repository *PostgresNationalityRepository) SumMemberScores(context context.Context, countryCode, subdivisionCode string) (float64, float64, error) {
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(%s) FILTER (WHERE %s = $1), 0),
			COALESCE(SUM(%s) FILTER (WHERE %s = $1 AND %s = $2), 0)
		FROM %s
		WHERE %s = FALSE
	`, schema.RefPlayer.Score, schema.RefPlayer.Nationality,
		schema.RefPlayer.Score, schema.RefPlayer.Nationality, schema.RefPlayer.Subdivision,
		schema.RefPlayer.Table,
		schema.RefPlayer.Banned)

	var nationTotal, subdivisionTotal float64
	err := repository.q(context).QueryRow(context, query, countryCode, subdivisionCode).Scan(&nationTotal, &subdivisionTotal)
	if err != nil {
		return 0, 0, dberr.Wrap(err, dberr.Generic(err))
	}
	return nationTotal, subdivisionTotal, nil
}

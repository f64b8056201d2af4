// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pointercrate-rs/corengine/internal/platform/database/schema"
	"github.com/pointercrate-rs/corengine/internal/platform/dberr"
)

// PostgresClaimRepository implements [ClaimRepository] using pgx.
type PostgresClaimRepository struct {
	db *pgxpool.Pool
}

// NewPostgresClaimRepository constructs a PostgreSQL-backed claim store.
func NewPostgresClaimRepository(db *pgxpool.Pool) *PostgresClaimRepository {
	return &PostgresClaimRepository{db: db}
}

func (repository *PostgresClaimRepository) q(ctx context.Context) querier {
	return conn(ctx, repository.db)
}

func (repository *PostgresClaimRepository) find(context context.Context, clause string, arg any) (*Claim, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s`,
		schema.RefPlayerClaim.UserID, schema.RefPlayerClaim.PlayerID, schema.RefPlayerClaim.Verified, schema.RefPlayerClaim.LockSubmissions,
		schema.RefPlayerClaim.Table, clause)

	claim := &Claim{}
	err := repository.q(context).QueryRow(context, query, arg).Scan(&claim.UserID, &claim.PlayerID, &claim.Verified, &claim.LockSubmissions)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, dberr.Generic(err))
	}
	return claim, nil
}

// FindByUser retrieves userID's claim, or (nil, nil) if they have none.
func (repository *PostgresClaimRepository) FindByUser(context context.Context, userID int64) (*Claim, error) {
	return repository.find(context, fmt.Sprintf("%s = $1", schema.RefPlayerClaim.UserID), userID)
}

// FindVerifiedByPlayer retrieves playerID's verified claim, or (nil,
// nil) if it has none.
func (repository *PostgresClaimRepository) FindVerifiedByPlayer(context context.Context, playerID int64) (*Claim, error) {
	clause := fmt.Sprintf("%s = $1 AND %s = TRUE", schema.RefPlayerClaim.PlayerID, schema.RefPlayerClaim.Verified)
	return repository.find(context, clause, playerID)
}

// Create inserts a new, unverified claim.
func (repository *PostgresClaimRepository) Create(context context.Context, claim *Claim) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, FALSE, FALSE)`,
		schema.RefPlayerClaim.Table, schema.RefPlayerClaim.UserID, schema.RefPlayerClaim.PlayerID, schema.RefPlayerClaim.Verified, schema.RefPlayerClaim.LockSubmissions)
	_, err := repository.q(context).Exec(context, query, claim.UserID, claim.PlayerID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// Update persists claim's verified and lock_submissions flags.
func (repository *PostgresClaimRepository) Update(context context.Context, claim *Claim) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.RefPlayerClaim.Table, schema.RefPlayerClaim.Verified, schema.RefPlayerClaim.LockSubmissions, schema.RefPlayerClaim.UserID)
	_, err := repository.q(context).Exec(context, query, claim.Verified, claim.LockSubmissions, claim.UserID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// Delete removes userID's claim.
func (repository *PostgresClaimRepository) Delete(context context.Context, userID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefPlayerClaim.Table, schema.RefPlayerClaim.UserID)
	_, err := repository.q(context).Exec(context, query, userID)
	return dberr.Wrap(err, dberr.Generic(err))
}

// ReassignPlayer repoints every claim held against fromPlayerID onto
// toPlayerID.
func (repository *PostgresClaimRepository) ReassignPlayer(context context.Context, fromPlayerID, toPlayerID int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.RefPlayerClaim.Table, schema.RefPlayerClaim.PlayerID, schema.RefPlayerClaim.PlayerID)
	_, err := repository.q(context).Exec(context, query, toPlayerID, fromPlayerID)
	return dberr.Wrap(err, dberr.Generic(err))
}

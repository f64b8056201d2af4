// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"

	"github.com/pointercrate-rs/corengine/pkg/pagination"
)

// # Unit of Work

// UnitOfWork runs fn inside a single database transaction, stashing the
// active transaction in the context it passes to fn so that any
// repository call made from within fn joins it automatically. Several
// service operations (submission intake, merge, ban, retargeting) touch
// demons, players, records, notes and the audit log together and must
// commit or roll back as one.
type UnitOfWork interface {
	WithinTx(context context.Context, fn func(context context.Context) error) error
}

// # Demon Data Access

// DemonRepository defines the data access contract for demons and their
// creator credits.
type DemonRepository interface {

	/*
		List returns demons matching filter, keyset-paginated by position.

		Parameters:
		  - context: context.Context
		  - filter: DemonFilter
		  - query: pagination.Query (bounds are demon positions)

		Returns:
		  - []*Demon: Matching demons, hydrated with verifier/publisher only
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter DemonFilter, query pagination.Query) ([]*Demon, error)

	/*
		FindByID retrieves a single demon by primary key, hydrated with its
		creators.

		Returns:
		  - *Demon
		  - error: [apperr.DemonNotFound] if missing
	*/
	FindByID(context context.Context, id int64) (*Demon, error)

	// FindByPosition retrieves the demon currently holding position, or
	// [apperr.DemonNotFound] if the position is unoccupied or out of range.
	FindByPosition(context context.Context, position int) (*Demon, error)

	// FindByName retrieves a demon by case-insensitive exact name match.
	// Names are not unique (spec.md §3.2.2 only enforces uniqueness on
	// players); when more than one demon shares name, the one with the
	// lowest position wins.
	FindByName(context context.Context, name string) (*Demon, error)

	// MaxPosition returns the highest assigned position, or 0 if the list
	// is empty.
	MaxPosition(context context.Context) (int, error)

	// Create inserts demon and assigns it demon.ID.
	Create(context context.Context, demon *Demon) error

	// Update persists demon's mutable fields (name, requirement, video,
	// level id, verifier, publisher). Position changes go through
	// ShiftPositions instead, since they affect other rows.
	Update(context context.Context, demon *Demon) error

	// ShiftPositions adds delta to the position of every demon whose
	// current position lies in [fromPosition, toPosition] inclusive, used
	// to open or close a gap when adding, moving, or removing a demon.
	ShiftPositions(context context.Context, fromPosition, toPosition, delta int) error

	// SetPosition moves a single demon to a new position directly,
	// without shifting others; callers are responsible for the
	// surrounding shift that keeps positions contiguous.
	SetPosition(context context.Context, demonID int64, position int) error

	// AddCreator links player as a creator of demon. Returns
	// [apperr.CreatorExists] if the pair already exists.
	AddCreator(context context.Context, demonID, playerID int64) error

	// RemoveCreator unlinks player from demon's creator list.
	RemoveCreator(context context.Context, demonID, playerID int64) error

	// ListCreators returns the players credited as creators of demon.
	ListCreators(context context.Context, demonID int64) ([]*Player, error)
}

// # Player Data Access

// PlayerRepository defines the data access contract for players.
type PlayerRepository interface {

	// List returns players matching filter, keyset-paginated by id.
	List(context context.Context, filter PlayerFilter, query pagination.Query) ([]*Player, error)

	// FindByID retrieves a player by primary key.
	FindByID(context context.Context, id int64) (*Player, error)

	// FindByName retrieves a player by case-insensitive exact name match.
	FindByName(context context.Context, name string) (*Player, error)

	// FindOrCreateByName retrieves the player named name, creating one
	// with default fields if none exists yet (spec.md §3.1: players are
	// created on demand).
	FindOrCreateByName(context context.Context, name string) (*Player, error)

	// Create inserts player and assigns player.ID.
	Create(context context.Context, player *Player) error

	// Update persists player's mutable fields (name, banned, nationality,
	// subdivision). Score updates go through UpdateScore.
	Update(context context.Context, player *Player) error

	// UpdateScore persists a freshly recomputed score for playerID.
	UpdateScore(context context.Context, playerID int64, score float64) error

	// Delete permanently removes playerID, used only as the final step of
	// [Service.MergePlayers].
	Delete(context context.Context, playerID int64) error

	// ReassignRecords repoints every record held by fromPlayerID onto
	// toPlayerID in one statement, without retargeting.
	// [Service.MergePlayers] does not call it; it moves records one at a
	// time through the record-player setter.
	ReassignRecords(context context.Context, fromPlayerID, toPlayerID int64) error

	// ReassignCredits repoints every demon-creator, verifier, and
	// publisher reference from fromPlayerID onto toPlayerID.
	ReassignCredits(context context.Context, fromPlayerID, toPlayerID int64) error

	// AllIDs returns every player id, used to drive bulk score
	// recomputation sweeps.
	AllIDs(context context.Context) ([]int64, error)

	// DemonsCreatedBy returns the ids of every demon playerID is
	// credited as a creator of, used by [Service.MergePlayers] to dedupe
	// creator credits before reassigning them.
	DemonsCreatedBy(context context.Context, playerID int64) ([]int64, error)
}

// # Record Data Access

// RecordRepository defines the data access contract for records and
// their notes.
type RecordRepository interface {

	// List returns records matching filter, keyset-paginated by id.
	List(context context.Context, filter RecordFilter, query pagination.Query) ([]*Record, error)

	// FindByID retrieves a record by primary key.
	FindByID(context context.Context, id int64) (*Record, error)

	// FindByVideo retrieves the record currently holding video, if any.
	FindByVideo(context context.Context, video string) (*Record, error)

	// FindByPlayerAndDemon returns every record for the (playerID,
	// demonID) pair, used by retargeting and submission-intake dedup
	// checks.
	FindByPlayerAndDemon(context context.Context, playerID, demonID int64) ([]*Record, error)

	// AllByPlayer returns every record playerID holds across all demons,
	// unpaginated. Used only by internal operations that must see a
	// player's complete record set in one pass (ban, merge) rather than
	// the public, paginated List.
	AllByPlayer(context context.Context, playerID int64) ([]*Record, error)

	// Create inserts record and assigns record.ID.
	Create(context context.Context, record *Record) error

	// Update persists record's mutable fields.
	Update(context context.Context, record *Record) error

	// Delete permanently removes recordID, cascading its notes.
	Delete(context context.Context, recordID int64) error

	// DeleteMany permanently removes every record in recordIDs.
	DeleteMany(context context.Context, recordIDs []int64) error

	// TransferNotes reassigns every note on fromRecordID to toRecordID,
	// used when a record is absorbed by another via retargeting.
	TransferNotes(context context.Context, fromRecordID, toRecordID int64) error

	// AddNote appends note to a record, assigning note.ID.
	AddNote(context context.Context, note *RecordNote) error

	// DeleteNote removes a single note by id.
	DeleteNote(context context.Context, noteID int64) error

	// ListNotes returns every note on recordID, oldest first.
	ListNotes(context context.Context, recordID int64) ([]*RecordNote, error)

	// ApprovedAndVerified returns, for playerID, every Approved record
	// plus every demon where playerID is the verifier (counted as an
	// implicit 100%): the two inputs to the score formula's demon
	// component (spec.md §4.6).
	ApprovedAndVerified(context context.Context, playerID int64) (records []*Record, verifiedDemons []*Demon, err error)
}

// # Submitter Data Access

// SubmitterRepository defines the data access contract for submitters.
type SubmitterRepository interface {

	// FindOrCreateByIPHash retrieves the submitter identified by ipHash,
	// creating one if this is its first submission.
	FindOrCreateByIPHash(context context.Context, ipHash string) (*Submitter, error)

	// FindByID retrieves a submitter by primary key.
	FindByID(context context.Context, id int64) (*Submitter, error)

	// SetBanned flips submitterID's banned flag.
	SetBanned(context context.Context, submitterID int64, banned bool) error
}

// # Nationality Data Access

// NationalityRepository defines the data access contract for the
// nationality and subdivision lookup tables.
type NationalityRepository interface {

	// FindByCode retrieves a nationality by ISO-3166-1 code.
	FindByCode(context context.Context, countryCode string) (*Nationality, error)

	// FindSubdivision retrieves a subdivision by its ISO-3166-2 code
	// within countryCode.
	FindSubdivision(context context.Context, countryCode, subdivisionCode string) (*Subdivision, error)

	// List returns every known nationality.
	List(context context.Context) ([]*Nationality, error)

	// UpdateScore persists a freshly recomputed score for countryCode.
	UpdateScore(context context.Context, countryCode string, score float64) error

	// UpdateSubdivisionScore persists a freshly recomputed score for the
	// given subdivision.
	UpdateSubdivisionScore(context context.Context, countryCode, subdivisionCode string, score float64) error

	// SumMemberScores returns the sum of every non-banned player's score
	// for countryCode, and, if subdivisionCode is non-empty, the same sum
	// restricted to that subdivision.
	SumMemberScores(context context.Context, countryCode, subdivisionCode string) (nationTotal, subdivisionTotal float64, err error)
}

// # Claim Data Access

// ClaimRepository defines the data access contract for player claims.
type ClaimRepository interface {

	// FindByUser retrieves userID's claim, or (nil, nil) if they have
	// none.
	FindByUser(context context.Context, userID int64) (*Claim, error)

	// FindVerifiedByPlayer retrieves playerID's verified claim, or (nil,
	// nil) if it has none.
	FindVerifiedByPlayer(context context.Context, playerID int64) (*Claim, error)

	// Create inserts a new, unverified claim.
	Create(context context.Context, claim *Claim) error

	// Update persists claim's verified and lock_submissions flags.
	Update(context context.Context, claim *Claim) error

	// Delete removes userID's claim.
	Delete(context context.Context, userID int64) error

	// ReassignPlayer repoints every claim currently held against
	// fromPlayerID onto toPlayerID, used when fromPlayerID is absorbed
	// by a player merge (spec.md §4.3).
	ReassignPlayer(context context.Context, fromPlayerID, toPlayerID int64) error
}

// # Audit Data Access

// AuditRepository defines the data access contract for the demon and
// record audit logs.
type AuditRepository interface {
	AppendDemonEntry(context context.Context, entry *AuditLogEntry) error
	AppendRecordEntry(context context.Context, entry *AuditLogEntry) error
}

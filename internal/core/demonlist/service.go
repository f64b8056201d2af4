// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"
	"log/slog"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
	"github.com/pointercrate-rs/corengine/internal/platform/ratelimit"
	"github.com/pointercrate-rs/corengine/pkg/pagination"
)

// # Service Layer

// Config carries the operator-tunable constants the service needs to
// enforce list-size-dependent invariants (spec.md §4.1).
type Config struct {
	// ListSize is the number of demons on the main list.
	ListSize int
	// ExtendedListSize is the number of demons that still accept
	// submissions (main list plus the extended tier).
	ExtendedListSize int
}

// Service orchestrates every business rule governing demons, players,
// records, claims, and their supporting lookup tables.
type Service struct {
	demons       DemonRepository
	players      PlayerRepository
	records      RecordRepository
	submitters   SubmitterRepository
	nationalities NationalityRepository
	claims       ClaimRepository
	audit        AuditRepository
	uow          UnitOfWork
	limiter      *ratelimit.Registry
	logger       *slog.Logger
	config       Config
}

// Dependencies bundles the repositories and collaborators [NewService]
// wires into a [Service].
type Dependencies struct {
	Demons        DemonRepository
	Players       PlayerRepository
	Records       RecordRepository
	Submitters    SubmitterRepository
	Nationalities NationalityRepository
	Claims        ClaimRepository
	Audit         AuditRepository
	UnitOfWork    UnitOfWork
	Limiter       *ratelimit.Registry
}

// NewService constructs a new demonlist [Service].
func NewService(deps Dependencies, config Config, logger *slog.Logger) *Service {
	return &Service{
		demons:        deps.Demons,
		players:       deps.Players,
		records:       deps.Records,
		submitters:    deps.Submitters,
		nationalities: deps.Nationalities,
		claims:        deps.Claims,
		audit:         deps.Audit,
		uow:           deps.UnitOfWork,
		limiter:       deps.Limiter,
		logger:        logger,
		config:        config,
	}
}

// # Demon Reads

// ListDemons retrieves a filtered, keyset-paginated page of demons.
func (service *Service) ListDemons(context context.Context, filter DemonFilter, query pagination.Query) (pagination.Result[*Demon], error) {
	return pagination.Page(context, query, func(context context.Context, q pagination.Query) ([]*Demon, error) {
		return service.demons.List(context, filter, q)
	})
}

// GetDemon retrieves a single demon by id.
func (service *Service) GetDemon(context context.Context, id int64) (*Demon, error) {
	return service.demons.FindByID(context, id)
}

// GetDemonByPosition retrieves the demon currently holding position.
func (service *Service) GetDemonByPosition(context context.Context, position int) (*Demon, error) {
	return service.demons.FindByPosition(context, position)
}

// TierOf classifies a position using the service's configured list-size
// thresholds.
func (service *Service) TierOf(position int) Tier {
	return TierOf(position, service.config.ListSize, service.config.ExtendedListSize)
}

// # Player Reads

// ListPlayers retrieves a filtered, keyset-paginated page of players.
func (service *Service) ListPlayers(context context.Context, filter PlayerFilter, query pagination.Query) (pagination.Result[*Player], error) {
	return pagination.Page(context, query, func(context context.Context, q pagination.Query) ([]*Player, error) {
		return service.players.List(context, filter, q)
	})
}

// GetPlayer retrieves a single player by id.
func (service *Service) GetPlayer(context context.Context, id int64) (*Player, error) {
	return service.players.FindByID(context, id)
}

// # Record Reads

// ListRecords retrieves a filtered, keyset-paginated page of records,
// after enforcing spec.md §4.10's access rule: callers below list-helper
// (including unauthenticated ones) are pinned to status=Approved and may
// never filter by submitter; the submitter filter itself is further
// restricted to list-moderator, since it lets any list-helper de-anonymise
// who reported a record.
func (service *Service) ListRecords(context context.Context, principal authz.Principal, filter RecordFilter, query pagination.Query) (pagination.Result[*Record], error) {
	if err := checkRecordFilterAccess(principal, &filter); err != nil {
		return pagination.Result[*Record]{}, err
	}
	return pagination.Page(context, query, func(context context.Context, q pagination.Query) ([]*Record, error) {
		return service.records.List(context, filter, q)
	})
}

// checkRecordFilterAccess enforces spec.md §4.10's record-listing access
// table against filter, mutating it to pin the status filter where the
// spec requires rather than rejecting the request outright.
func checkRecordFilterAccess(principal authz.Principal, filter *RecordFilter) error {
	if !isListTeam(principal) {
		if filter.Status != nil && *filter.Status != StatusApproved {
			return apperr.Unauthorized("only approved records are visible without list-helper permissions")
		}
		approved := StatusApproved
		filter.Status = &approved

		if filter.SubmitterID != nil {
			return apperr.Unauthorized("filtering by submitter requires list-helper permissions")
		}
		return nil
	}

	if filter.SubmitterID != nil && !principal.HasPermission(authz.ListModerator) {
		return apperr.MissingPermissions(authz.ListModerator.String())
	}
	return nil
}

// GetRecord retrieves a single record by id.
func (service *Service) GetRecord(context context.Context, id int64) (*Record, error) {
	return service.records.FindByID(context, id)
}

// # Nationality Reads

// ListNationalities retrieves every known nationality.
func (service *Service) ListNationalities(context context.Context) ([]*Nationality, error) {
	return service.nationalities.List(context)
}

// # Permission Checks

// requireListTeam returns [apperr.MissingPermissions] unless principal
// holds at least one of the list-moderation permissions.
func requireListTeam(principal authz.Principal) error {
	if !principal.HasPermission(authz.ListHelper) {
		return apperr.MissingPermissions(authz.ListHelper.String())
	}
	return nil
}

// isListTeam reports whether principal holds list-moderation rights,
// without producing an error — used where list-team status changes
// behaviour rather than gating it outright (e.g. rate limiting, raw
// footage requirements in submission intake).
func isListTeam(principal authz.Principal) bool {
	return principal.HasPermission(authz.ListHelper)
}

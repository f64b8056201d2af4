// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"
	"fmt"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
	"github.com/pointercrate-rs/corengine/internal/platform/videourl"
)

// # Demon Management (spec.md §4.5)

// AddDemon inserts a new demon at position, shifting every demon
// currently at or after that position up by one to keep the list
// contiguous.
func (service *Service) AddDemon(context context.Context, principal authz.Principal, name string, position, requirement int, video *string, levelID *int64, verifierName, publisherName string, creatorNames []string) (*Demon, error) {
	if !principal.HasPermission(authz.ListAdministrator) {
		return nil, apperr.MissingPermissions(authz.ListAdministrator.String())
	}

	if requirement < 0 || requirement > 100 {
		return nil, apperr.InvalidRequirement()
	}

	var canonical *string
	if video != nil {
		c, err := videourl.Canonicalise(*video)
		if err != nil {
			return nil, err
		}
		canonical = &c
	}

	var demon *Demon
	err := service.uow.WithinTx(context, func(context context.Context) error {
		maxPosition, err := service.demons.MaxPosition(context)
		if err != nil {
			return err
		}
		if position < 1 || position > maxPosition+1 {
			return apperr.InvalidPosition(maxPosition + 1)
		}

		if err := service.demons.ShiftPositions(context, position, maxPosition, 1); err != nil {
			return err
		}

		verifier, err := service.players.FindOrCreateByName(context, verifierName)
		if err != nil {
			return err
		}
		publisher, err := service.players.FindOrCreateByName(context, publisherName)
		if err != nil {
			return err
		}

		demon = &Demon{
			Name:        name,
			Position:    position,
			Requirement: requirement,
			Video:       canonical,
			LevelID:     levelID,
			Verifier:    verifier,
			Publisher:   publisher,
		}
		if err := service.demons.Create(context, demon); err != nil {
			return err
		}

		for _, creatorName := range creatorNames {
			creator, err := service.players.FindOrCreateByName(context, creatorName)
			if err != nil {
				return err
			}
			if err := service.demons.AddCreator(context, demon.ID, creator.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	service.recordAddition(context, AuditTargetDemon, demon.ID, principal.UserID)

	// Inserting a demon pushes every demon at or after it down the list,
	// which can shift demons in or out of the scoring tiers (spec.md
	// §4.6: score recomputes whenever the owning demon's position
	// changes). The shift touches every such demon at once, so a full
	// sweep is simplest and correctest; a failure here never blocks the
	// insert itself.
	if err := service.RecomputeAllScores(context); err != nil {
		service.logger.Warn("score_recompute_failed", "reason", "add_demon", "demon_id", demon.ID, "error", err)
	}
	return demon, nil
}

// MoveDemon relocates demon to a new position, shifting every demon
// between the old and new position by one in the appropriate direction.
// A temporary out-of-range "parking" position avoids a transient unique
// constraint violation on (position) while the shift is in progress.
func (service *Service) MoveDemon(context context.Context, principal authz.Principal, demonID int64, newPosition int) error {
	if !principal.HasPermission(authz.ListAdministrator) {
		return apperr.MissingPermissions(authz.ListAdministrator.String())
	}

	moved := false
	err := service.uow.WithinTx(context, func(context context.Context) error {
		demon, err := service.demons.FindByID(context, demonID)
		if err != nil {
			return err
		}

		maxPosition, err := service.demons.MaxPosition(context)
		if err != nil {
			return err
		}
		if newPosition < 1 || newPosition > maxPosition {
			return apperr.InvalidPosition(maxPosition)
		}
		if newPosition == demon.Position {
			return nil
		}

		if err := service.demons.SetPosition(context, demonID, -1); err != nil {
			return err
		}

		if newPosition < demon.Position {
			if err := service.demons.ShiftPositions(context, newPosition, demon.Position-1, 1); err != nil {
				return err
			}
		} else {
			if err := service.demons.ShiftPositions(context, demon.Position+1, newPosition, -1); err != nil {
				return err
			}
		}

		if err := service.demons.SetPosition(context, demonID, newPosition); err != nil {
			return err
		}

		service.recordAudit(context, AuditTargetDemon, demonID, principal.UserID, FieldDemonPosition, fmt.Sprint(demon.Position), fmt.Sprint(newPosition))
		moved = true
		return nil
	})
	if err != nil {
		return err
	}

	// Every demon between the old and new position shifted by one, which
	// can move demons across scoring tier boundaries (spec.md §4.6).
	if moved {
		if err := service.RecomputeAllScores(context); err != nil {
			service.logger.Warn("score_recompute_failed", "reason", "move_demon", "demon_id", demonID, "error", err)
		}
	}
	return nil
}

// PatchDemonRequirement updates demon's completion requirement.
func (service *Service) PatchDemonRequirement(context context.Context, principal authz.Principal, demonID int64, requirement int) error {
	if !principal.HasPermission(authz.ListHelper) {
		return apperr.MissingPermissions(authz.ListHelper.String())
	}
	if requirement < 0 || requirement > 100 {
		return apperr.InvalidRequirement()
	}

	return service.uow.WithinTx(context, func(context context.Context) error {
		demon, err := service.demons.FindByID(context, demonID)
		if err != nil {
			return err
		}
		before := demon.Requirement
		demon.Requirement = requirement
		if err := service.demons.Update(context, demon); err != nil {
			return err
		}
		service.recordAudit(context, AuditTargetDemon, demonID, principal.UserID, FieldDemonRequirement, fmt.Sprint(before), fmt.Sprint(requirement))
		return nil
	})
}

// PatchDemonVideo updates or clears demon's verification video.
func (service *Service) PatchDemonVideo(context context.Context, principal authz.Principal, demonID int64, video *string) error {
	if !principal.HasPermission(authz.ListHelper) {
		return apperr.MissingPermissions(authz.ListHelper.String())
	}

	var canonical *string
	if video != nil {
		c, err := videourl.Canonicalise(*video)
		if err != nil {
			return err
		}
		canonical = &c
	}

	return service.uow.WithinTx(context, func(context context.Context) error {
		demon, err := service.demons.FindByID(context, demonID)
		if err != nil {
			return err
		}
		before := derefString(demon.Video)
		demon.Video = canonical
		if err := service.demons.Update(context, demon); err != nil {
			return err
		}
		service.recordAudit(context, AuditTargetDemon, demonID, principal.UserID, FieldDemonVideo, before, derefString(canonical))
		return nil
	})
}

// RenameDemon changes demon's name. Names are not unique — spec.md §3.2
// explicitly permits two demons sharing a name — so no conflict check
// is performed.
func (service *Service) RenameDemon(context context.Context, principal authz.Principal, demonID int64, name string) error {
	if !principal.HasPermission(authz.ListAdministrator) {
		return apperr.MissingPermissions(authz.ListAdministrator.String())
	}

	return service.uow.WithinTx(context, func(context context.Context) error {
		demon, err := service.demons.FindByID(context, demonID)
		if err != nil {
			return err
		}
		before := demon.Name
		demon.Name = name
		if err := service.demons.Update(context, demon); err != nil {
			return err
		}
		service.recordAudit(context, AuditTargetDemon, demonID, principal.UserID, FieldDemonName, before, name)
		return nil
	})
}

// AddCreator credits playerName as a creator of demon.
func (service *Service) AddCreator(context context.Context, principal authz.Principal, demonID int64, playerName string) error {
	if err := requireListTeam(principal); err != nil {
		return err
	}

	return service.uow.WithinTx(context, func(context context.Context) error {
		if _, err := service.demons.FindByID(context, demonID); err != nil {
			return err
		}
		player, err := service.players.FindOrCreateByName(context, playerName)
		if err != nil {
			return err
		}
		if err := service.demons.AddCreator(context, demonID, player.ID); err != nil {
			return err
		}
		service.recordAudit(context, AuditTargetDemon, demonID, principal.UserID, "creators", "", fmt.Sprint(player.ID))
		return nil
	})
}

// RemoveCreator revokes playerID's creator credit on demon.
func (service *Service) RemoveCreator(context context.Context, principal authz.Principal, demonID, playerID int64) error {
	if err := requireListTeam(principal); err != nil {
		return err
	}
	if err := service.demons.RemoveCreator(context, demonID, playerID); err != nil {
		return err
	}
	service.recordAudit(context, AuditTargetDemon, demonID, principal.UserID, "creators", fmt.Sprint(playerID), "")
	return nil
}

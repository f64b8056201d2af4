// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
)

// # Player Ban / Unban (spec.md §4.3)

// BanPlayer marks playerID banned: every Submitted or UnderConsideration
// record it holds is deleted outright (it never represented a settled
// result), and every remaining record is flipped to Rejected so the
// player's history stays visible but excluded from ranking.
func (service *Service) BanPlayer(context context.Context, principal authz.Principal, playerID int64) error {
	if !principal.HasPermission(authz.ListModerator) {
		return apperr.MissingPermissions(authz.ListModerator.String())
	}

	err := service.uow.WithinTx(context, func(context context.Context) error {
		player, err := service.players.FindByID(context, playerID)
		if err != nil {
			return err
		}
		if player.Banned {
			return nil
		}

		records, err := service.records.AllByPlayer(context, playerID)
		if err != nil {
			return err
		}

		var toDelete []int64
		for _, record := range records {
			switch record.Status {
			case StatusSubmitted, StatusUnderConsideration:
				toDelete = append(toDelete, record.ID)
			case StatusApproved:
				record.Status = StatusRejected
				if err := service.records.Update(context, record); err != nil {
					return err
				}
				service.recordAudit(context, AuditTargetRecord, record.ID, principal.UserID, FieldRecordStatus, string(StatusApproved), string(StatusRejected))
			}
		}
		if len(toDelete) > 0 {
			if err := service.records.DeleteMany(context, toDelete); err != nil {
				return err
			}
		}

		player.Banned = true
		return service.players.Update(context, player)
	})
	if err != nil {
		return err
	}

	// No audit trail for player mutations — spec.md §3.1 scopes the
	// audit log to demon and record modifications only.
	if err := service.RecomputePlayerScore(context, playerID); err != nil {
		service.logger.Warn("score_recompute_failed", "player_id", playerID, "error", err)
	}
	return nil
}

// UnbanPlayer clears playerID's banned flag without otherwise touching
// its record history (spec.md §4.3: "unbanning only flips the flag").
func (service *Service) UnbanPlayer(context context.Context, principal authz.Principal, playerID int64) error {
	if !principal.HasPermission(authz.ListModerator) {
		return apperr.MissingPermissions(authz.ListModerator.String())
	}

	player, err := service.players.FindByID(context, playerID)
	if err != nil {
		return err
	}
	if !player.Banned {
		return nil
	}
	player.Banned = false
	return service.players.Update(context, player)
}

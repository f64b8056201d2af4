// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
)

// # Player Merge (spec.md §4.3)

// MergePlayers folds intoID (the player absorbing the merge) and
// fromID (the player being absorbed) into a single identity, performing
// the sequence spec.md §4.3 prescribes, in six steps:
//
//  1. Reject the merge outright if both players have a verified claim —
//     resolving which claim wins is a human decision.
//  2. Drop any creator credit fromID already shares with intoID on the
//     same demon, since the merge would otherwise create a duplicate.
//  3. Repoint every remaining creator credit, verifier credit, and
//     publisher credit from fromID onto intoID.
//  4. Retarget every one of fromID's records onto intoID one at a time
//     through the normal record-player setter, so every retargeting and
//     duplicate-progress rule in §4.4 applies uniformly.
//  5. Migrate fromID's claim(s) — verified or not — onto intoID, so the
//     claimant relationship survives the merge instead of being deleted
//     along with fromID.
//  6. Delete fromID.
func (service *Service) MergePlayers(context context.Context, principal authz.Principal, intoID, fromID int64) error {
	if !principal.HasPermission(authz.ListAdministrator) {
		return apperr.MissingPermissions(authz.ListAdministrator.String())
	}
	if intoID == fromID {
		return apperr.GenericBadRequest("cannot merge a player into itself")
	}

	return service.uow.WithinTx(context, func(context context.Context) error {
		into, err := service.players.FindByID(context, intoID)
		if err != nil {
			return err
		}
		from, err := service.players.FindByID(context, fromID)
		if err != nil {
			return err
		}

		// Step 1: conflicting verified claims block the merge.
		intoClaim, err := service.claims.FindVerifiedByPlayer(context, intoID)
		if err != nil {
			return err
		}
		fromClaim, err := service.claims.FindVerifiedByPlayer(context, fromID)
		if err != nil {
			return err
		}
		if intoClaim != nil && fromClaim != nil {
			return apperr.ConflictingClaims(into.Name, from.Name)
		}

		// Steps 2-3: dedupe and repoint creator/verifier/publisher credits.
		fromCreatorDemons, err := service.players.DemonsCreatedBy(context, fromID)
		if err != nil {
			return err
		}
		intoCreatorDemons, err := service.players.DemonsCreatedBy(context, intoID)
		if err != nil {
			return err
		}
		intoSet := make(map[int64]bool, len(intoCreatorDemons))
		for _, demonID := range intoCreatorDemons {
			intoSet[demonID] = true
		}
		for _, demonID := range fromCreatorDemons {
			if intoSet[demonID] {
				if err := service.demons.RemoveCreator(context, demonID, fromID); err != nil {
					return err
				}
			}
		}
		if err := service.players.ReassignCredits(context, fromID, intoID); err != nil {
			return err
		}

		// Step 4: retarget every record fromID holds onto intoID.
		records, err := service.records.AllByPlayer(context, fromID)
		if err != nil {
			return err
		}
		for _, record := range records {
			if err := service.setRecordPlayer(context, principal, record, intoID); err != nil {
				return err
			}
		}

		// Step 5: migrate fromID's claim(s) onto intoID before it's gone.
		if err := service.claims.ReassignPlayer(context, fromID, intoID); err != nil {
			return err
		}

		// Step 6: destroy the absorbed player.
		return service.players.Delete(context, fromID)
	})
}

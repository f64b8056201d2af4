// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
)

// # Patch Record (spec.md §4.4.2)

// RecordPatch carries any subset of a record's mutable fields. DemonID
// and DemonName are mutually exclusive; supplying both is rejected
// before anything is applied.
type RecordPatch struct {
	Progress   *int
	Video      *string
	HasVideo   bool // distinguishes "clear the video" from "leave it alone" when Video is nil
	Status     *Status
	PlayerName *string
	DemonName  *string
	DemonID    *int64
}

// PatchRecord applies every field set on patch to record, in a single
// transaction, via the dedicated setters in record_setters.go so every
// setter's invariants are enforced regardless of which fields a given
// caller chooses to touch together.
func (service *Service) PatchRecord(context context.Context, principal authz.Principal, recordID int64, patch RecordPatch) (*Record, error) {
	if !principal.HasPermission(authz.ListHelper) {
		return nil, apperr.MissingPermissions(authz.ListHelper.String())
	}
	if patch.DemonName != nil && patch.DemonID != nil {
		return nil, apperr.MutuallyExclusive("demon_name", "demon_id")
	}

	var record *Record
	err := service.uow.WithinTx(context, func(context context.Context) error {
		r, err := service.records.FindByID(context, recordID)
		if err != nil {
			return err
		}
		record = r

		// Order matters: spec.md §4.4.2 applies progress, video, status,
		// player, demon in that sequence, so a retarget triggered by a
		// player/demon change (record_retarget.go) always sees the
		// record's final progress rather than its pre-patch value.
		if patch.Progress != nil {
			if err := service.setProgress(context, principal, record, *patch.Progress); err != nil {
				return err
			}
		}

		if patch.HasVideo {
			if patch.Video == nil {
				if err := service.deleteVideo(context, principal, record); err != nil {
					return err
				}
			} else if err := service.setVideo(context, principal, record, *patch.Video); err != nil {
				return err
			}
		}

		if patch.Status != nil {
			if !patch.Status.Valid() {
				return apperr.GenericBadRequest("invalid record status")
			}
			if err := service.setStatus(context, principal, record, *patch.Status); err != nil {
				return err
			}
		}

		if patch.PlayerName != nil {
			player, err := service.players.FindOrCreateByName(context, *patch.PlayerName)
			if err != nil {
				return err
			}
			if err := service.setRecordPlayer(context, principal, record, player.ID); err != nil {
				return err
			}
		}

		if patch.DemonName != nil {
			resolved, err := service.resolveDemonByName(context, *patch.DemonName)
			if err != nil {
				return err
			}
			if err := service.setRecordDemon(context, principal, record, resolved.ID); err != nil {
				return err
			}
		} else if patch.DemonID != nil {
			if err := service.setRecordDemon(context, principal, record, *patch.DemonID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// resolveDemonByName finds the demon named name, used when a patch
// targets a demon by name instead of id.
func (service *Service) resolveDemonByName(context context.Context, name string) (*Demon, error) {
	return service.demons.FindByName(context, name)
}

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

// # Individual Record Setters (spec.md §4.4.5)

// setProgress validates and applies a new progress value, absorbing any
// Submitted record for the same (player, demon) pair with lower
// progress if record is Approved.
func (service *Service) setProgress(context context.Context, principal authz.Principal, record *Record, progress int) error {
	demon := record.Demon
	if demon == nil {
		d, err := service.demons.FindByID(context, record.DemonID)
		if err != nil {
			return err
		}
		demon = d
	}
	if progress < demon.Requirement || progress > 100 {
		return apperr.InvalidProgress(demon.Requirement)
	}

	before := record.Progress
	record.Progress = progress

	if record.Status == StatusApproved {
		siblings, err := service.records.FindByPlayerAndDemon(context, record.PlayerID, record.DemonID)
		if err != nil {
			return err
		}
		var absorb []int64
		for _, sibling := range siblings {
			if sibling.ID == record.ID {
				continue
			}
			if sibling.Status == StatusSubmitted && sibling.Progress < progress {
				absorb = append(absorb, sibling.ID)
				if err := service.records.TransferNotes(context, sibling.ID, record.ID); err != nil {
					return err
				}
			}
		}
		if len(absorb) > 0 {
			if err := service.records.DeleteMany(context, absorb); err != nil {
				return err
			}
		}
	}

	if err := service.records.Update(context, record); err != nil {
		return err
	}
	service.recordAudit(context, AuditTargetRecord, record.ID, principal.UserID, FieldRecordProgress, fmt.Sprint(before), fmt.Sprint(progress))

	if record.Status == StatusApproved {
		if err := service.RecomputePlayerScore(context, record.PlayerID); err != nil {
			service.logger.Warn("score_recompute_failed", "player_id", record.PlayerID, "error", err)
		}
	}
	return nil
}

// setVideo canonicalises and applies a new video, rejecting the change
// if another record already owns that canonical URL.
func (service *Service) setVideo(context context.Context, principal authz.Principal, record *Record, video string) error {
	canonical, err := videourl.Canonicalise(video)
	if err != nil {
		return err
	}

	existing, err := service.records.FindByVideo(context, canonical)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != record.ID {
		return apperr.DuplicateVideo(existing.ID)
	}

	before := derefString(record.Video)
	record.Video = &canonical
	if err := service.records.Update(context, record); err != nil {
		return err
	}
	service.recordAudit(context, AuditTargetRecord, record.ID, principal.UserID, FieldRecordVideo, before, canonical)
	return nil
}

// deleteVideo clears record's video.
func (service *Service) deleteVideo(context context.Context, principal authz.Principal, record *Record) error {
	before := derefString(record.Video)
	record.Video = nil
	if err := service.records.Update(context, record); err != nil {
		return err
	}
	service.recordAudit(context, AuditTargetRecord, record.ID, principal.UserID, FieldRecordVideo, before, "")
	return nil
}

// setRecordPlayer repoints record onto a different player, rejecting
// the move if that player is banned and record is not Rejected, then
// retargets it against any pre-existing record the destination player
// holds for the same demon.
func (service *Service) setRecordPlayer(context context.Context, principal authz.Principal, record *Record, newPlayerID int64) error {
	if record.PlayerID == newPlayerID {
		return nil
	}

	newPlayer, err := service.players.FindByID(context, newPlayerID)
	if err != nil {
		return err
	}
	if newPlayer.Banned && record.Status != StatusRejected {
		return apperr.PlayerBanned()
	}

	oldPlayerID := record.PlayerID
	record.PlayerID = newPlayerID
	record.Player = newPlayer

	if err := service.retarget(context, record, record.DemonID, newPlayerID); err != nil {
		return err
	}

	if err := service.records.Update(context, record); err != nil {
		return err
	}
	service.recordAudit(context, AuditTargetRecord, record.ID, principal.UserID, FieldRecordPlayer, fmt.Sprint(oldPlayerID), fmt.Sprint(newPlayerID))

	if err := service.RecomputePlayerScore(context, oldPlayerID); err != nil {
		service.logger.Warn("score_recompute_failed", "player_id", oldPlayerID, "error", err)
	}
	if err := service.RecomputePlayerScore(context, newPlayerID); err != nil {
		service.logger.Warn("score_recompute_failed", "player_id", newPlayerID, "error", err)
	}
	return nil
}

// setRecordDemon repoints record onto a different demon, rejecting the
// move if record's progress would fall below the destination demon's
// requirement, then retargets against any pre-existing record the
// player holds against the destination demon (spec.md §4.4.5: uses the
// new demon's records, resolving Open Question #1 in favour of the
// target state rather than the source).
func (service *Service) setRecordDemon(context context.Context, principal authz.Principal, record *Record, newDemonID int64) error {
	if record.DemonID == newDemonID {
		return nil
	}

	newDemon, err := service.demons.FindByID(context, newDemonID)
	if err != nil {
		return err
	}
	if record.Progress < newDemon.Requirement {
		return apperr.InvalidProgress(newDemon.Requirement)
	}

	oldDemonID := record.DemonID
	record.DemonID = newDemonID
	record.Demon = newDemon

	if err := service.retarget(context, record, newDemonID, record.PlayerID); err != nil {
		return err
	}

	if err := service.records.Update(context, record); err != nil {
		return err
	}
	service.recordAudit(context, AuditTargetRecord, record.ID, principal.UserID, FieldRecordDemon, fmt.Sprint(oldDemonID), fmt.Sprint(newDemonID))

	if record.Status == StatusApproved {
		if err := service.RecomputePlayerScore(context, record.PlayerID); err != nil {
			service.logger.Warn("score_recompute_failed", "player_id", record.PlayerID, "error", err)
		}
	}
	return nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import "context"

// # Retargeting (spec.md §4.4.3)

// retarget reconciles record against whatever other records already
// exist for (playerID, demonID) after record has been pointed at that
// pair by a player or demon setter. Behaviour depends on record's
// current status:
//
//   - Rejected: every other record for the pair is deleted outright
//     (spec.md §3.2.3: at most one Rejected record per pair, and a
//     Rejected record carries no progress information worth keeping
//     next to it), after transferring their notes onto record.
//   - Approved: if a higher-progress Approved record already exists for
//     the pair, record adopts its video and progress and the
//     higher-progress record is deleted; afterwards every Rejected
//     record and every record with progress <= record's own is deleted
//     (spec.md §3.2.4: at most one maximal Approved record per pair).
//   - Submitted or UnderConsideration: no action; multiple pending
//     records for the same pair are allowed to coexist until a
//     moderator resolves them.
func (service *Service) retarget(context context.Context, record *Record, demonID, playerID int64) error {
	switch record.Status {
	case StatusRejected:
		return service.retargetRejected(context, record, demonID, playerID)
	case StatusApproved:
		return service.retargetApproved(context, record, demonID, playerID)
	default:
		return nil
	}
}

func (service *Service) retargetRejected(context context.Context, record *Record, demonID, playerID int64) error {
	siblings, err := service.records.FindByPlayerAndDemon(context, playerID, demonID)
	if err != nil {
		return err
	}

	var toDelete []int64
	for _, sibling := range siblings {
		if sibling.ID == record.ID {
			continue
		}
		if err := service.records.TransferNotes(context, sibling.ID, record.ID); err != nil {
			return err
		}
		toDelete = append(toDelete, sibling.ID)
	}
	if len(toDelete) == 0 {
		return nil
	}
	return service.records.DeleteMany(context, toDelete)
}

func (service *Service) retargetApproved(context context.Context, record *Record, demonID, playerID int64) error {
	siblings, err := service.records.FindByPlayerAndDemon(context, playerID, demonID)
	if err != nil {
		return err
	}

	// Adopt the higher-progress Approved sibling's video/progress, if any.
	for _, sibling := range siblings {
		if sibling.ID == record.ID || sibling.Status != StatusApproved {
			continue
		}
		if sibling.Progress > record.Progress {
			record.Progress = sibling.Progress
			record.Video = sibling.Video
		}
	}

	var toDelete []int64
	for _, sibling := range siblings {
		if sibling.ID == record.ID {
			continue
		}
		absorb := sibling.Status == StatusRejected || sibling.Progress <= record.Progress
		if !absorb {
			continue
		}
		if err := service.records.TransferNotes(context, sibling.ID, record.ID); err != nil {
			return err
		}
		toDelete = append(toDelete, sibling.ID)
	}
	if len(toDelete) == 0 {
		return nil
	}
	return service.records.DeleteMany(context, toDelete)
}

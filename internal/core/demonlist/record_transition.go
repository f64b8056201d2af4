// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"

	"github.com/pointercrate-rs/corengine/internal/platform/authz"
)

// # Status Transitions (spec.md §4.4.4)

// setStatus applies a status transition to record, running whatever
// side effects the new status requires before persisting it:
//
//   - any status -> Rejected: every other record for the pair is
//     deleted (via [Service.retarget]'s Rejected branch).
//   - Submitted/UnderConsideration -> Approved: every other record for
//     the pair with progress <= record's own is deleted (via
//     [Service.retarget]'s Approved branch).
//   - Approved -> anything else, or Rejected -> anything else, or
//     Submitted <-> UnderConsideration: no extra side effects.
func (service *Service) setStatus(context context.Context, principal authz.Principal, record *Record, newStatus Status) error {
	if record.Status == newStatus {
		return nil
	}

	before := record.Status
	record.Status = newStatus

	switch newStatus {
	case StatusRejected:
		if err := service.retargetRejected(context, record, record.DemonID, record.PlayerID); err != nil {
			return err
		}
	case StatusApproved:
		if before == StatusSubmitted || before == StatusUnderConsideration {
			if err := service.retargetApproved(context, record, record.DemonID, record.PlayerID); err != nil {
				return err
			}
		}
	}

	if err := service.records.Update(context, record); err != nil {
		return err
	}
	service.recordAudit(context, AuditTargetRecord, record.ID, principal.UserID, FieldRecordStatus, string(before), string(newStatus))

	if before == StatusApproved || newStatus == StatusApproved {
		if err := service.RecomputePlayerScore(context, record.PlayerID); err != nil {
			service.logger.Warn("score_recompute_failed", "player_id", record.PlayerID, "error", err)
		}
	}
	return nil
}

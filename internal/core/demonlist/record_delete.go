// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
)

// # Delete Record (spec.md §4.4.6)

// DeleteRecord permanently removes recordID, cascading its notes.
// Deleting an Approved record changes its player's score, so the
// player's score is recomputed afterward.
func (service *Service) DeleteRecord(context context.Context, principal authz.Principal, recordID int64) error {
	if !principal.HasPermission(authz.ListHelper) {
		return apperr.MissingPermissions(authz.ListHelper.String())
	}

	record, err := service.records.FindByID(context, recordID)
	if err != nil {
		return err
	}

	if err := service.records.Delete(context, recordID); err != nil {
		return err
	}
	service.recordAudit(context, AuditTargetRecord, recordID, principal.UserID, FieldRecordStatus, string(record.Status), "")

	if record.Status == StatusApproved {
		if err := service.RecomputePlayerScore(context, record.PlayerID); err != nil {
			service.logger.Warn("score_recompute_failed", "player_id", record.PlayerID, "error", err)
		}
	}
	return nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Audit logging records every mutation made to a demon or record so a
moderation decision can always be traced back to the member who made it
(spec.md §3.1, §4.5). Entries are append-only: nothing in this package
ever updates or deletes one.
*/
package demonlist

import (
	"context"
	"time"
)

// AuditType classifies an [AuditLogEntry].
type AuditType string

const (
	AuditAddition     AuditType = "addition"
	AuditModification AuditType = "modification"
	AuditDeletion     AuditType = "deletion"
)

// AuditLogEntry is a single append-only record of a mutation to a demon
// or a record. Modification entries carry the changed field's before
// and after values; addition and deletion entries leave them empty.
type AuditLogEntry struct {
	ID       int64
	Time     time.Time
	TargetID int64
	UserID   int64
	Type     AuditType
	Field    string
	Before   string
	After    string
}

// AuditTarget distinguishes which table an [AuditLogEntry] belongs to,
// since demons and records keep separate audit tables.
type AuditTarget int

const (
	AuditTargetDemon AuditTarget = iota
	AuditTargetRecord
)

// recordAudit appends a modification entry to the appropriate table,
// logging but not failing the surrounding operation if it errors. Most
// callers run it inside the same transaction as the mutation it records.
func (service *Service) recordAudit(context context.Context, target AuditTarget, targetID, userID int64, field, before, after string) {
	entry := &AuditLogEntry{
		TargetID: targetID,
		UserID:   userID,
		Type:     AuditModification,
		Field:    field,
		Before:   before,
		After:    after,
	}

	var err error
	switch target {
	case AuditTargetDemon:
		err = service.audit.AppendDemonEntry(context, entry)
	case AuditTargetRecord:
		err = service.audit.AppendRecordEntry(context, entry)
	}
	if err != nil {
		service.logger.Warn("audit_append_failed", "target", target, "target_id", targetID, "field", field, "error", err)
	}
}

// recordAddition appends an addition entry, logging but not failing the
// surrounding operation if it errors.
func (service *Service) recordAddition(context context.Context, target AuditTarget, targetID, userID int64) {
	entry := &AuditLogEntry{TargetID: targetID, UserID: userID, Type: AuditAddition}

	var err error
	switch target {
	case AuditTargetDemon:
		err = service.audit.AppendDemonEntry(context, entry)
	case AuditTargetRecord:
		err = service.audit.AppendRecordEntry(context, entry)
	}
	if err != nil {
		service.logger.Warn("audit_append_failed", "target", target, "target_id", targetID, "error", err)
	}
}

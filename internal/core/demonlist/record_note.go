// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Record notes are a moderator-only annotation channel absent from the
distilled specification but present in the original implementation's
record_notes table; they are kept here since they're the mechanism
moderators actually use to leave a rationale on a record, and
retargeting (record_retarget.go) already has to carry them across
records it merges.
*/
package demonlist

import (
	"context"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
)

// AddRecordNote appends a moderator note to recordID.
func (service *Service) AddRecordNote(context context.Context, principal authz.Principal, recordID int64, content string) (*RecordNote, error) {
	if !principal.HasPermission(authz.ListHelper) {
		return nil, apperr.MissingPermissions(authz.ListHelper.String())
	}
	if content == "" {
		return nil, apperr.NoteEmpty()
	}

	if _, err := service.records.FindByID(context, recordID); err != nil {
		return nil, err
	}

	note := &RecordNote{RecordID: recordID, Content: content, Author: principal.UserID}
	if err := service.records.AddNote(context, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListRecordNotes returns every note attached to recordID.
func (service *Service) ListRecordNotes(context context.Context, principal authz.Principal, recordID int64) ([]*RecordNote, error) {
	if !principal.HasPermission(authz.ListHelper) {
		return nil, apperr.MissingPermissions(authz.ListHelper.String())
	}
	return service.records.ListNotes(context, recordID)
}

// DeleteRecordNote removes a single note by id.
func (service *Service) DeleteRecordNote(context context.Context, principal authz.Principal, noteID int64) error {
	if !principal.HasPermission(authz.ListHelper) {
		return apperr.MissingPermissions(authz.ListHelper.String())
	}
	return service.records.DeleteNote(context, noteID)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestRetargetRejected_AbsorbsAllSiblings asserts that retargeting a
Rejected record deletes every other record for the same (player, demon)
pair and carries their notes onto the surviving record.
*/
func TestRetargetRejected_AbsorbsAllSiblings(t *testing.T) {
	ctx := context.Background()
	service, _, _, records, _ := newTestService()

	rejected := &Record{PlayerID: 1, DemonID: 1, Status: StatusRejected}
	require.NoError(t, records.Create(ctx, rejected))
	sibling := &Record{PlayerID: 1, DemonID: 1, Status: StatusUnderConsideration}
	require.NoError(t, records.Create(ctx, sibling))
	require.NoError(t, records.AddNote(ctx, &RecordNote{RecordID: sibling.ID, Content: "suspicious clip"}))

	require.NoError(t, service.retarget(ctx, rejected, rejected.DemonID, rejected.PlayerID))

	_, err := records.FindByID(ctx, sibling.ID)
	assert.Error(t, err, "the absorbed sibling should be gone")

	notes, err := records.ListNotes(ctx, rejected.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "suspicious clip", notes[0].Content)
}

/*
TestRetargetApproved_AdoptsHigherProgressSibling asserts that an
Approved record absorbs a higher-progress Approved sibling's video and
progress, deleting the sibling afterwards.
*/
func TestRetargetApproved_AdoptsHigherProgressSibling(t *testing.T) {
	ctx := context.Background()
	service, _, _, records, _ := newTestService()

	betterVideo := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	better := &Record{PlayerID: 1, DemonID: 1, Status: StatusApproved, Progress: 100, Video: &betterVideo}
	require.NoError(t, records.Create(ctx, better))

	landing := &Record{PlayerID: 1, DemonID: 1, Status: StatusApproved, Progress: 80}
	require.NoError(t, records.Create(ctx, landing))

	require.NoError(t, service.retarget(ctx, landing, landing.DemonID, landing.PlayerID))

	assert.Equal(t, 100, landing.Progress)
	require.NotNil(t, landing.Video)
	assert.Equal(t, betterVideo, *landing.Video)

	_, err := records.FindByID(ctx, better.ID)
	assert.Error(t, err, "the absorbed higher-progress sibling should be gone")
}

/*
TestRetargetApproved_AbsorbsLowerProgressSibling asserts
that a lower-or-equal-progress Approved sibling is absorbed and deleted,
while record keeps its own progress.
*/
func TestRetargetApproved_AbsorbsLowerProgressSibling(t *testing.T) {
	ctx := context.Background()
	service, _, _, records, _ := newTestService()

	landing := &Record{PlayerID: 1, DemonID: 1, Status: StatusApproved, Progress: 100}
	require.NoError(t, records.Create(ctx, landing))
	weaker := &Record{PlayerID: 1, DemonID: 1, Status: StatusApproved, Progress: 70}
	require.NoError(t, records.Create(ctx, weaker))

	require.NoError(t, service.retarget(ctx, landing, landing.DemonID, landing.PlayerID))

	assert.Equal(t, 100, landing.Progress)
	_, err := records.FindByID(ctx, weaker.ID)
	assert.Error(t, err, "the weaker approved sibling should be absorbed and deleted")
}

/*
TestRetarget_SubmittedRecordsCoexist asserts that Submitted/
UnderConsideration records are left alone by retarget.
*/
func TestRetarget_SubmittedRecordsCoexist(t *testing.T) {
	ctx := context.Background()
	service, _, _, records, _ := newTestService()

	first := &Record{PlayerID: 1, DemonID: 1, Status: StatusSubmitted}
	require.NoError(t, records.Create(ctx, first))
	second := &Record{PlayerID: 1, DemonID: 1, Status: StatusSubmitted}
	require.NoError(t, records.Create(ctx, second))

	require.NoError(t, service.retarget(ctx, first, first.DemonID, first.PlayerID))

	_, err := records.FindByID(ctx, second.ID)
	assert.NoError(t, err, "pending siblings are left untouched")
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
)

func helperPrincipal() authz.Principal {
	return authz.Principal{UserID: 1, Permissions: authz.ListHelper}
}

func seedDemon(t *testing.T, demons *fakeDemonRepository, name string, position, requirement int) *Demon {
	t.Helper()
	demon := &Demon{Name: name, Position: position, Requirement: requirement}
	require.NoError(t, demons.Create(context.Background(), demon))
	return demon
}

/*
TestSubmitRecord_PlainSubmissionWithVideoNeedsNoPermission asserts that
an anonymous submitter can submit to the main list as long as a video is
attached.
*/
func TestSubmitRecord_PlainSubmissionWithVideoNeedsNoPermission(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	seedDemon(t, demons, "Bloodbath", 1, 60)

	video := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	raw := "https://example.com/raw.mp4"
	record, err := service.SubmitRecord(ctx, authz.Principal{}, Submission{
		IPHash:     "ip-1",
		PlayerName: "Zoink",
		DemonName:  "Bloodbath",
		Progress:   100,
		Video:      &video,
		RawFootage: &raw,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, record.Status)
}

/*
TestSubmitRecord_WithoutVideoRequiresListTeam asserts that an anonymous
submission with no video is rejected before touching any repository.
*/
func TestSubmitRecord_WithoutVideoRequiresListTeam(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	seedDemon(t, demons, "Bloodbath", 1, 60)

	_, err := service.SubmitRecord(ctx, authz.Principal{}, Submission{
		IPHash:     "ip-1",
		PlayerName: "Zoink",
		DemonName:  "Bloodbath",
		Progress:   100,
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeMissingPermissions, ae.Code)
}

/*
TestSubmitRecord_RejectsLegacyTier asserts that a plain submission
against a demon that has fallen off the extended list is rejected.
*/
func TestSubmitRecord_RejectsLegacyTier(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	seedDemon(t, demons, "Ancient Demon", 200, 0)

	video := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	_, err := service.SubmitRecord(ctx, authz.Principal{}, Submission{
		IPHash:     "ip-1",
		PlayerName: "Zoink",
		DemonName:  "Ancient Demon",
		Progress:   100,
		Video:      &video,
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeSubmitLegacy, ae.Code)
}

/*
TestSubmitRecord_ExtendedTierRequiresFullCompletion asserts that the
extended list only accepts 100% records.
*/
func TestSubmitRecord_ExtendedTierRequiresFullCompletion(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	seedDemon(t, demons, "Tidal Wave", 100, 0)

	video := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	_, err := service.SubmitRecord(ctx, authz.Principal{}, Submission{
		IPHash:     "ip-1",
		PlayerName: "Zoink",
		DemonName:  "Tidal Wave",
		Progress:   99,
		Video:      &video,
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeNon100Extended, ae.Code)
}

/*
TestSubmitRecord_ProgressBelowRequirementRejected asserts the submitted
progress must meet the demon's completion requirement.
*/
func TestSubmitRecord_ProgressBelowRequirementRejected(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	seedDemon(t, demons, "Bloodbath", 1, 60)

	video := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	_, err := service.SubmitRecord(ctx, authz.Principal{}, Submission{
		IPHash:     "ip-1",
		PlayerName: "Zoink",
		DemonName:  "Bloodbath",
		Progress:   40,
		Video:      &video,
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeInvalidProgress, ae.Code)
}

/*
TestSubmitRecord_DuplicateVideoRejected asserts the same canonical video
cannot back two distinct records.
*/
func TestSubmitRecord_DuplicateVideoRejected(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	seedDemon(t, demons, "Bloodbath", 1, 60)

	video := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	raw := "https://example.com/raw.mp4"
	_, err := service.SubmitRecord(ctx, authz.Principal{}, Submission{
		IPHash: "ip-1", PlayerName: "Zoink", DemonName: "Bloodbath",
		Progress: 100, Video: &video, RawFootage: &raw,
	})
	require.NoError(t, err)

	_, err = service.SubmitRecord(ctx, authz.Principal{}, Submission{
		IPHash: "ip-2", PlayerName: "Someone Else", DemonName: "Bloodbath",
		Progress: 100, Video: &video, RawFootage: &raw,
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeSubmissionExists, ae.Code)
}

/*
TestSubmitRecord_BannedSubmitterRejected asserts a submitter flagged as
banned never reaches resolution.
*/
func TestSubmitRecord_BannedSubmitterRejected(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	seedDemon(t, demons, "Bloodbath", 1, 60)

	video := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	raw := "https://example.com/raw.mp4"
	submission := Submission{
		IPHash: "banned-ip", PlayerName: "Zoink", DemonName: "Bloodbath",
		Progress: 100, Video: &video, RawFootage: &raw,
	}

	// Pre-seed the submitter as banned.
	sub, err := service.submitters.FindOrCreateByIPHash(ctx, "banned-ip")
	require.NoError(t, err)
	require.NoError(t, service.submitters.SetBanned(ctx, sub.ID, true))

	_, err = service.SubmitRecord(ctx, authz.Principal{}, submission)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeBannedFromSubmissions, ae.Code)
}

/*
TestSubmitRecord_ListHelperCanPreApprove asserts that a list-team
submitter may submit directly with a non-default status and that doing
so skips the plain-submission restrictions (video optional, raw footage
optional).
*/
func TestSubmitRecord_ListHelperCanPreApprove(t *testing.T) {
	ctx := context.Background()
	service, demons, _, records, _ := newTestService()
	seedDemon(t, demons, "Bloodbath", 1, 60)

	record, err := service.SubmitRecord(ctx, helperPrincipal(), Submission{
		IPHash:     "ip-1",
		PlayerName: "Zoink",
		DemonName:  "Bloodbath",
		Progress:   100,
		Status:     StatusApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusApproved, record.Status)

	stored, err := records.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)
}

/*
TestSubmitRecord_SiblingApprovedWithHigherProgressBlocks asserts a new
submission can't undercut an existing approved record for the same
player/demon pair.
*/
func TestSubmitRecord_SiblingApprovedWithHigherProgressBlocks(t *testing.T) {
	ctx := context.Background()
	service, demons, players, records, _ := newTestService()
	demon := seedDemon(t, demons, "Bloodbath", 1, 60)

	player := &Player{Name: "Zoink"}
	require.NoError(t, players.Create(ctx, player))
	require.NoError(t, records.Create(ctx, &Record{
		PlayerID: player.ID, DemonID: demon.ID, Progress: 90, Status: StatusApproved,
	}))

	video := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	raw := "https://example.com/raw.mp4"
	_, err := service.SubmitRecord(ctx, authz.Principal{}, Submission{
		IPHash: "ip-1", PlayerName: "Zoink", DemonName: "Bloodbath",
		Progress: 80, Video: &video, RawFootage: &raw,
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeSubmissionExists, ae.Code)
}

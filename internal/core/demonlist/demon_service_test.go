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

func listAdminPrincipal() authz.Principal {
	return authz.Principal{UserID: 1, Permissions: authz.ListAdministrator}
}

/*
TestAddDemon_ShiftsExistingPositions asserts that inserting a demon in
the middle of the list pushes everything at or after it up by one.
*/
func TestAddDemon_ShiftsExistingPositions(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	top := seedDemon(t, demons, "Tidal Wave", 1, 0)
	_ = seedDemon(t, demons, "Bloodbath", 2, 0)

	_, err := service.AddDemon(ctx, listAdminPrincipal(), "Acu", 1, 60, nil, nil, "Riot", "Riot", nil)
	require.NoError(t, err)

	refreshedTop, err := demons.FindByID(ctx, top.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshedTop.Position, "the old #1 should have been pushed to #2")
}

/*
TestAddDemon_RejectsInvalidRequirement asserts a requirement outside
0-100 is rejected before the transaction opens.
*/
func TestAddDemon_RejectsInvalidRequirement(t *testing.T) {
	service, _, _, _, _ := newTestService()

	_, err := service.AddDemon(context.Background(), listAdminPrincipal(), "Acu", 1, 150, nil, nil, "Riot", "Riot", nil)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeInvalidRequirement, ae.Code)
}

/*
TestAddDemon_RequiresListAdministrator asserts a list-helper without
administrator cannot insert a demon.
*/
func TestAddDemon_RequiresListAdministrator(t *testing.T) {
	service, _, _, _, _ := newTestService()

	_, err := service.AddDemon(context.Background(), helperPrincipal(), "Acu", 1, 60, nil, nil, "Riot", "Riot", nil)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeMissingPermissions, ae.Code)
}

/*
TestMoveDemon_ShiftsIntermediatePositions asserts that moving a demon
down the list (from position 1 to 3) moves every demon after its old
position, up to and including newPosition, one place up (its position
number drops by one), and the moved demon lands exactly on newPosition.
*/
func TestMoveDemon_ShiftsIntermediatePositions(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	first := seedDemon(t, demons, "Tidal Wave", 1, 0)
	second := seedDemon(t, demons, "Bloodbath", 2, 0)
	third := seedDemon(t, demons, "Yatagarasu", 3, 0)

	require.NoError(t, service.MoveDemon(ctx, listAdminPrincipal(), first.ID, 3))

	refreshedFirst, err := demons.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, refreshedFirst.Position)

	refreshedSecond, err := demons.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshedSecond.Position)

	refreshedThird, err := demons.FindByID(ctx, third.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshedThird.Position)
}

/*
TestMoveDemon_RejectsOutOfRangePosition asserts a target position beyond
the current list size is rejected.
*/
func TestMoveDemon_RejectsOutOfRangePosition(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	only := seedDemon(t, demons, "Tidal Wave", 1, 0)

	err := service.MoveDemon(ctx, listAdminPrincipal(), only.ID, 5)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeInvalidPosition, ae.Code)
}

/*
TestPatchDemonRequirement_UpdatesRequirement asserts a list helper can
patch the completion requirement.
*/
func TestPatchDemonRequirement_UpdatesRequirement(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	demon := seedDemon(t, demons, "Bloodbath", 1, 60)

	require.NoError(t, service.PatchDemonRequirement(ctx, helperPrincipal(), demon.ID, 70))

	refreshed, err := demons.FindByID(ctx, demon.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, refreshed.Requirement)
}

/*
TestAddCreator_RejectsDuplicateCredit asserts crediting the same player
twice on the same demon is rejected.
*/
func TestAddCreator_RejectsDuplicateCredit(t *testing.T) {
	ctx := context.Background()
	service, demons, _, _, _ := newTestService()
	demon := seedDemon(t, demons, "Bloodbath", 1, 60)

	require.NoError(t, service.AddCreator(ctx, helperPrincipal(), demon.ID, "Riot"))
	err := service.AddCreator(ctx, helperPrincipal(), demon.ID, "Riot")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeCreatorExists, ae.Code)
}

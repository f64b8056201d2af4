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

func adminPrincipal() authz.Principal {
	return authz.Principal{UserID: 1, Permissions: authz.ListAdministrator}
}

/*
TestMergePlayers_RequiresPermission asserts that a caller without
list-administrator is rejected before touching any repository.
*/
func TestMergePlayers_RequiresPermission(t *testing.T) {
	service, _, _, _, _ := newTestService()

	err := service.MergePlayers(context.Background(), authz.Principal{}, 1, 2)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeMissingPermissions, ae.Code)
}

/*
TestMergePlayers_RejectsSelfMerge asserts a player cannot be merged into
itself.
*/
func TestMergePlayers_RejectsSelfMerge(t *testing.T) {
	service, _, _, _, _ := newTestService()

	err := service.MergePlayers(context.Background(), adminPrincipal(), 1, 1)
	require.Error(t, err)
}

/*
TestMergePlayers_RetargetsRecordsAndDeletesLoser exercises the happy
path: fromID's record moves onto intoID and fromID is deleted.
*/
func TestMergePlayers_RetargetsRecordsAndDeletesLoser(t *testing.T) {
	ctx := context.Background()
	service, _, players, records, _ := newTestService()

	into := &Player{Name: "Zoink"}
	require.NoError(t, players.Create(ctx, into))
	from := &Player{Name: "ZoinkAlt"}
	require.NoError(t, players.Create(ctx, from))

	record := &Record{PlayerID: from.ID, DemonID: 42, Progress: 100, Status: StatusApproved}
	require.NoError(t, records.Create(ctx, record))

	err := service.MergePlayers(ctx, adminPrincipal(), into.ID, from.ID)
	require.NoError(t, err)

	_, err = players.FindByID(ctx, from.ID)
	assert.Error(t, err, "the absorbed player should be gone")

	moved, err := records.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, into.ID, moved.PlayerID)
}

/*
TestMergePlayers_ConflictingVerifiedClaims asserts the merge is rejected
outright when both players hold a verified claim.
*/
func TestMergePlayers_ConflictingVerifiedClaims(t *testing.T) {
	ctx := context.Background()
	service, _, players, _, claims := newTestService()

	into := &Player{Name: "Into"}
	require.NoError(t, players.Create(ctx, into))
	from := &Player{Name: "From"}
	require.NoError(t, players.Create(ctx, from))

	require.NoError(t, claims.Create(ctx, &Claim{UserID: 10, PlayerID: into.ID, Verified: true}))
	require.NoError(t, claims.Create(ctx, &Claim{UserID: 20, PlayerID: from.ID, Verified: true}))

	err := service.MergePlayers(ctx, adminPrincipal(), into.ID, from.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeConflictingClaims, ae.Code)

	// Neither player was touched.
	_, err = players.FindByID(ctx, from.ID)
	assert.NoError(t, err)
}

/*
TestMergePlayers_DedupesSharedCreatorCredit asserts that a creator
credit both players already share on the same demon doesn't survive the
merge twice.
*/
func TestMergePlayers_DedupesSharedCreatorCredit(t *testing.T) {
	ctx := context.Background()
	service, demons, players, _, _ := newTestService()

	into := &Player{Name: "Into"}
	require.NoError(t, players.Create(ctx, into))
	from := &Player{Name: "From"}
	require.NoError(t, players.Create(ctx, from))

	demon := &Demon{Name: "Tidal Wave", Position: 1}
	require.NoError(t, demons.Create(ctx, demon))
	require.NoError(t, demons.AddCreator(ctx, demon.ID, into.ID))
	require.NoError(t, demons.AddCreator(ctx, demon.ID, from.ID))
	players.credits[into.ID] = []int64{demon.ID}
	players.credits[from.ID] = []int64{demon.ID}

	require.NoError(t, service.MergePlayers(ctx, adminPrincipal(), into.ID, from.ID))

	assert.NotContains(t, demons.creators[demon.ID], from.ID)
}

/*
TestMergePlayers_MigratesClaim asserts that a claim held on the absorbed
player survives the merge, repointed onto the surviving player, instead
of being lost when the absorbed player is deleted.
*/
func TestMergePlayers_MigratesClaim(t *testing.T) {
	ctx := context.Background()
	service, _, players, _, claims := newTestService()

	into := &Player{Name: "Into"}
	require.NoError(t, players.Create(ctx, into))
	from := &Player{Name: "From"}
	require.NoError(t, players.Create(ctx, from))

	require.NoError(t, claims.Create(ctx, &Claim{UserID: 7, PlayerID: from.ID}))

	require.NoError(t, service.MergePlayers(ctx, adminPrincipal(), into.ID, from.ID))

	claim, err := claims.FindByUser(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, claim)
	assert.Equal(t, into.ID, claim.PlayerID)
}

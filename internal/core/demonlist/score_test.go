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
TestDemonScore_Regimes exercises every regime of the points curve, plus
its boundaries, against literal values computed from spec.md §4.6's
formulas independently of demonScore's own implementation.
*/
func TestDemonScore_Regimes(t *testing.T) {
	tests := []struct {
		name     string
		position int
		want     float64
	}{
		{"position_zero", 0, 0},
		{"negative_position", -1, 0},
		{"first_place", 1, 250},
		{"top_boundary", 20, 108.21612},
		{"mid_boundary_low", 21, 106.98040},
		{"mid_boundary_high", 50, 63.66580},
		{"low_boundary_low", 51, 61.884},
		{"low_boundary_high", 125, 8.84703},
		{"tail_boundary_low", 126, 8.64760},
		{"tail_boundary_high", 150, 5.0},
		{"past_tail", 151, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, demonScore(tt.position), 0.001)
		})
	}
}

/*
TestDemonScore_Monotonic checks that points never increase as position
worsens, which the piecewise curve must hold at every regime transition.
*/
func TestDemonScore_Monotonic(t *testing.T) {
	previous := demonScore(1)
	for position := 2; position <= 150; position++ {
		current := demonScore(position)
		assert.LessOrEqualf(t, current, previous, "position %d scored higher than %d", position, position-1)
		previous = current
	}
}

/*
TestRecordScore_BelowRequirement asserts that a record under the demon's
completion requirement is worth nothing.
*/
func TestRecordScore_BelowRequirement(t *testing.T) {
	assert.Equal(t, 0.0, recordScore(1, 60, 59, 150))
}

/*
TestRecordScore_FullCompletion asserts that a 100% record always earns
the demon's full score regardless of requirement, even past listSize.
*/
func TestRecordScore_FullCompletion(t *testing.T) {
	assert.Equal(t, demonScore(1), recordScore(1, 60, 100, 150))
	assert.Equal(t, demonScore(76), recordScore(76, 98, 100, 75))
}

/*
TestRecordScore_PartialCompletion checks the exponential decay between
the requirement and 100%: at the requirement itself, score is a tenth
of the full value; it rises monotonically from there.
*/
func TestRecordScore_PartialCompletion(t *testing.T) {
	base := demonScore(1)
	atRequirement := recordScore(1, 60, 60, 150)
	assert.InDelta(t, base/10, atRequirement, 0.001)

	higher := recordScore(1, 60, 80, 150)
	assert.Greater(t, higher, atRequirement)
	assert.Less(t, higher, base)
}

/*
TestRecordScore_LegacyRequirement asserts that a demon with requirement
100 gives no partial credit below full completion.
*/
func TestRecordScore_LegacyRequirement(t *testing.T) {
	assert.Equal(t, 0.0, recordScore(1, 100, 99, 150))
}

/*
TestRecordScore_PastListSize reproduces spec.md §8 scenario S4: a
non-100% record on a demon sitting past LIST_SIZE is worth nothing, even
though the same progress would score on the main list. A 100% record
past listSize is unaffected, since §4.4.1 step 6's Non100Extended rule
only restricts partial-progress submissions.
*/
func TestRecordScore_PastListSize(t *testing.T) {
	assert.Equal(t, 0.0, recordScore(76, 98, 99, 75))
	assert.Greater(t, recordScore(75, 98, 99, 75), 0.0)
	assert.Greater(t, recordScore(76, 98, 100, 75), 0.0)
}

/*
TestRecomputePlayerScore_DemonPushedPastListSize is spec.md §8 scenario
S4 end to end: an Approved, non-100% record on the demon at position 75
(LIST_SIZE=75) scores; pushing that demon to position 76 and
recomputing zeroes the player's score entirely.
*/
func TestRecomputePlayerScore_DemonPushedPastListSize(t *testing.T) {
	service, demons, players, records, _ := newTestService()
	ctx := context.Background()

	player := &Player{Name: "p1"}
	require.NoError(t, players.Create(ctx, player))

	demon := &Demon{Name: "d75", Position: 75, Requirement: 98}
	require.NoError(t, demons.Create(ctx, demon))

	record := &Record{PlayerID: player.ID, DemonID: demon.ID, Demon: demon, Status: StatusApproved, Progress: 99}
	require.NoError(t, records.Create(ctx, record))

	require.NoError(t, service.RecomputePlayerScore(ctx, player.ID))
	before, err := players.FindByID(ctx, player.ID)
	require.NoError(t, err)
	assert.Greater(t, before.Score, 0.0)

	demon.Position = 76
	require.NoError(t, demons.Update(ctx, demon))

	require.NoError(t, service.RecomputePlayerScore(ctx, player.ID))
	after, err := players.FindByID(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, after.Score)
}

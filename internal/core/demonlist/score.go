// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Score implements the piecewise points curve that ranks demons by
difficulty and records by how close to 100% a player got (spec.md §4.6).
The curve's constants are fixed by the spec itself, which requires
implementers to preserve them exactly; they are reproduced here verbatim
rather than re-derived.
*/
package demonlist

import (
	"context"
	"math"
)

// Curve constants fixed by spec.md §4.6. Do not retune — implementers
// are required to preserve them exactly.
const (
	scoreTopE = 1.168
	scoreTopF = 100.39

	scoreMidC = 1.01327
	scoreMidD = 26.489

	scoreLowA = 2.333
	scoreLowB = 1.884
)

// demonScore computes S(p), the maximum number of points a 100%
// completion of a demon holding position p on the list is worth. The
// curve has four regimes and is zero past p=150.
func demonScore(position int) float64 {
	p := float64(position)
	switch {
	case position <= 0:
		return 0
	case position <= 20:
		return demonScoreTop(p)
	case position <= 50:
		return demonScoreMid(p)
	case position <= 125:
		return demonScoreLow(p)
	case position <= 150:
		return demonScoreTail(p)
	default:
		return 0
	}
}

// demonScoreTop covers positions 1-20: (250-f)*e^(1-p)+f.
func demonScoreTop(p float64) float64 {
	return (250 - scoreTopF) * math.Pow(scoreTopE, 1-p) + scoreTopF
}

// demonScoreMid covers positions 21-50: -100*c^(p-d)+200.
func demonScoreMid(p float64) float64 {
	return -100*math.Pow(scoreMidC, p-scoreMidD) + 200
}

// demonScoreLow covers positions 51-125: 60*a^((51-p)*ln(30)/99)+b.
func demonScoreLow(p float64) float64 {
	return 60*math.Pow(scoreLowA, (51-p)*math.Log(30)/99) + scoreLowB
}

// demonScoreTail covers positions 126-150: 150*e^((1-p)*ln(1/30)/-149).
func demonScoreTail(p float64) float64 {
	return 150 * math.Exp((1-p)*math.Log(1.0/30.0)/-149)
}

// recordScore computes the points a single record contributes: full
// [demonScore] at 100% progress, decaying exponentially as progress
// approaches the demon's completion requirement (spec.md §4.6). A
// partial-progress record (progress < 100) is only worth points while
// its demon sits on the main list (position <= listSize) — spec.md §8
// scenario S4 requires a non-100% Approved record to drop to zero score
// the moment its demon is pushed past LIST_SIZE, mirroring
// §4.4.1 step 6's Non100Extended submission rule: the extended and
// legacy lists only ever reward full completions.
func recordScore(position, requirement, progress, listSize int) float64 {
	if progress < requirement {
		return 0
	}
	base := demonScore(position)
	if progress >= 100 {
		return base
	}
	if position > listSize {
		return 0
	}
	if requirement >= 100 {
		return 0
	}
	exponent := float64(progress-requirement) / float64(100-requirement)
	return base * math.Pow(5, exponent) / 10
}

// # Recompute Triggers

// RecomputePlayerScore recalculates playerID's total score: the sum of
// every Approved record's [recordScore], plus an implicit full
// [demonScore] for every demon playerID verified (a verifier is assumed
// to hold the first 100% by definition, with no separate record
// required). The player's nationality and subdivision scores, which are
// sums over their members, are then recomputed too.
func (service *Service) RecomputePlayerScore(context context.Context, playerID int64) error {
	records, verifiedDemons, err := service.records.ApprovedAndVerified(context, playerID)
	if err != nil {
		return err
	}

	var total float64
	counted := make(map[int64]bool, len(records))
	for _, record := range records {
		demon := record.Demon
		if demon == nil {
			if demon, err = service.demons.FindByID(context, record.DemonID); err != nil {
				return err
			}
		}
		total += recordScore(demon.Position, demon.Requirement, record.Progress, service.config.ListSize)
		counted[record.DemonID] = true
	}
	for _, demon := range verifiedDemons {
		if counted[demon.ID] {
			continue
		}
		total += demonScore(demon.Position)
	}

	if err := service.players.UpdateScore(context, playerID, total); err != nil {
		return err
	}

	player, err := service.players.FindByID(context, playerID)
	if err != nil {
		return err
	}
	return service.recomputeGeographyScores(context, player.Nationality, player.Subdivision)
}

// RecomputeAllScores recalculates every player's score, used after a
// demon's position or requirement changes in a way that shifts every
// score that depends on it.
func (service *Service) RecomputeAllScores(context context.Context) error {
	ids, err := service.players.AllIDs(context)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := service.RecomputePlayerScore(context, id); err != nil {
			return err
		}
	}
	return nil
}

// recomputeGeographyScores sums every member's score into nationality
// and, if set, subdivision.
func (service *Service) recomputeGeographyScores(context context.Context, nationality *Nationality, subdivision *Subdivision) error {
	if nationality == nil {
		return nil
	}

	subdivisionCode := ""
	if subdivision != nil {
		subdivisionCode = subdivision.SubdivisionCode
	}

	nationTotal, subdivisionTotal, err := service.nationalities.SumMemberScores(context, nationality.CountryCode, subdivisionCode)
	if err != nil {
		return err
	}

	if err := service.nationalities.UpdateScore(context, nationality.CountryCode, nationTotal); err != nil {
		return err
	}
	if subdivision != nil {
		if err := service.nationalities.UpdateSubdivisionScore(context, nationality.CountryCode, subdivisionCode, subdivisionTotal); err != nil {
			return err
		}
	}
	return nil
}

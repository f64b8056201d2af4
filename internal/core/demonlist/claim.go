// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
)

// Claim links a member to a player they assert ownership of. At most
// one claim per player may be verified at a time (spec.md §3.2.8); an
// unverified claim is purely informational until a moderator verifies
// it.
type Claim struct {
	UserID          int64 `json:"user_id"`
	PlayerID        int64 `json:"player_id"`
	Verified        bool  `json:"verified"`
	LockSubmissions bool  `json:"lock_submissions"`
}

// # Claim Engine (spec.md §4.7)

// InitiateClaim records that principal asserts ownership of playerID. A
// member may only ever hold one claim at a time.
func (service *Service) InitiateClaim(context context.Context, principal authz.Principal, playerID int64) (*Claim, error) {
	existing, err := service.claims.FindByUser(context, principal.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.AlreadyClaimed()
	}

	if _, err := service.players.FindByID(context, playerID); err != nil {
		return nil, err
	}

	claim := &Claim{UserID: principal.UserID, PlayerID: playerID}
	if err := service.claims.Create(context, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// SetClaimVerified flips a claim's verified flag. Moderator-only: it's
// the one field a claim owner can never set for themselves. Verifying a
// claim makes it exclusive on the player — spec.md §4.7 has the newly
// verified claim displace any other verified claim on the same player,
// rather than reject the request ([apperr.ConflictingClaims] is reserved
// for the player-merge case where both sides' verified claims survive
// independently and neither can be silently demoted).
func (service *Service) SetClaimVerified(context context.Context, principal authz.Principal, userID int64, verified bool) error {
	if !principal.HasPermission(authz.ListModerator) {
		return apperr.MissingPermissions(authz.ListModerator.String())
	}

	claim, err := service.claims.FindByUser(context, userID)
	if err != nil {
		return err
	}
	if claim == nil {
		return apperr.ClaimNotFound()
	}

	if verified {
		other, err := service.claims.FindVerifiedByPlayer(context, claim.PlayerID)
		if err != nil {
			return err
		}
		if other != nil && other.UserID != userID {
			other.Verified = false
			if err := service.claims.Update(context, other); err != nil {
				return err
			}
		}
	}

	claim.Verified = verified
	return service.claims.Update(context, claim)
}

// SetClaimLockSubmissions flips whether third parties may submit
// records for the claimed player. Only the claim's own verified owner
// may change it.
func (service *Service) SetClaimLockSubmissions(context context.Context, principal authz.Principal, lock bool) error {
	claim, err := service.claims.FindByUser(context, principal.UserID)
	if err != nil {
		return err
	}
	if claim == nil {
		return apperr.ClaimNotFound()
	}
	if !claim.Verified {
		return apperr.ClaimUnverified()
	}

	claim.LockSubmissions = lock
	return service.claims.Update(context, claim)
}

// DeleteClaim removes userID's claim. Moderator-only.
func (service *Service) DeleteClaim(context context.Context, principal authz.Principal, userID int64) error {
	if !principal.HasPermission(authz.ListModerator) {
		return apperr.MissingPermissions(authz.ListModerator.String())
	}
	return service.claims.Delete(context, userID)
}

// CheckThirdPartySubmission enforces spec.md §4.7's submission-lock
// rule: a player with a verified, lock_submissions claim only accepts
// submissions made by its own claimant.
func (service *Service) CheckThirdPartySubmission(context context.Context, principal authz.Principal, playerID int64) error {
	claim, err := service.claims.FindVerifiedByPlayer(context, playerID)
	if err != nil {
		return err
	}
	if claim == nil || !claim.LockSubmissions {
		return nil
	}
	if claim.UserID != principal.UserID {
		return apperr.NoThirdPartySubmissions()
	}
	return nil
}

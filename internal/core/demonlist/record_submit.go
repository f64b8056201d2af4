// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"
	"net/url"
	"strings"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
	"github.com/pointercrate-rs/corengine/internal/platform/ratelimit"
	"github.com/pointercrate-rs/corengine/internal/platform/videourl"
)

// # Submission Intake (spec.md §4.4.1)

// Submission carries the raw input to [Service.SubmitRecord], before
// any resolution or validation has run against it.
type Submission struct {
	IPHash     string
	PlayerName string
	DemonName  string
	Progress   int
	Video      *string
	RawFootage *string
	Status     Status // zero value defaults to StatusSubmitted
	Note       *string
}

// SubmitRecord runs the full fourteen-step intake sequence a new record
// submission must pass before it is persisted, in a single transaction.
// principal is the zero [authz.Principal] for an anonymous public
// submission.
func (service *Service) SubmitRecord(context context.Context, principal authz.Principal, submission Submission) (*Record, error) {
	targetStatus := submission.Status
	if targetStatus == "" {
		targetStatus = StatusSubmitted
	}
	listTeam := isListTeam(principal)

	// Step 1: a plain Submitted submission with a video needs no special
	// permission; anything else (pre-approving, skipping review, or
	// omitting the video) is list-team only.
	plainSubmission := targetStatus == StatusSubmitted && submission.Video != nil
	if !plainSubmission && !listTeam {
		return nil, apperr.MissingPermissions(authz.ListHelper.String())
	}

	var record *Record
	err := service.uow.WithinTx(context, func(context context.Context) error {
		// Step 2: submitter lookup/create + ban check.
		submitter, err := service.submitters.FindOrCreateByIPHash(context, submission.IPHash)
		if err != nil {
			return err
		}
		if submitter.Banned {
			return apperr.BannedFromSubmissions()
		}

		// Step 3: video canonicalisation + player/demon resolution.
		var canonicalVideo *string
		if submission.Video != nil {
			canonical, err := videourl.Canonicalise(*submission.Video)
			if err != nil {
				return err
			}
			canonicalVideo = &canonical
		}

		player, err := service.players.FindOrCreateByName(context, submission.PlayerName)
		if err != nil {
			return err
		}
		demon, err := service.demons.FindByName(context, submission.DemonName)
		if err != nil {
			return err
		}

		// Step 4: target player must not be banned.
		if player.Banned {
			return apperr.PlayerBanned()
		}
		if !listTeam {
			if err := service.CheckThirdPartySubmission(context, principal, player.ID); err != nil {
				return err
			}
		}

		// Steps 5-6: tier-dependent submission restrictions.
		tier := service.TierOf(demon.Position)
		if targetStatus == StatusSubmitted {
			if tier == TierLegacy {
				return apperr.SubmitLegacy()
			}
			if tier == TierExtended && submission.Progress < 100 {
				return apperr.Non100Extended()
			}
		}

		// Step 7: progress range.
		if submission.Progress < demon.Requirement || submission.Progress > 100 {
			return apperr.InvalidProgress(demon.Requirement)
		}

		// Step 8: video global uniqueness.
		if canonicalVideo != nil {
			existing, err := service.records.FindByVideo(context, *canonicalVideo)
			if err != nil {
				return err
			}
			if existing != nil {
				return apperr.SubmissionExists(existing.ID, string(existing.Status))
			}
		}

		// Step 9: duplicate submission for the same (player, demon) pair.
		siblings, err := service.records.FindByPlayerAndDemon(context, player.ID, demon.ID)
		if err != nil {
			return err
		}
		for _, sibling := range siblings {
			switch sibling.Status {
			case StatusRejected, StatusUnderConsideration:
				return apperr.SubmissionExists(sibling.ID, string(sibling.Status))
			case StatusApproved:
				if sibling.Progress >= submission.Progress {
					return apperr.SubmissionExists(sibling.ID, string(sibling.Status))
				}
			}
		}

		// Step 10: raw footage is required for a plain submission from
		// anyone outside the list team, and must be a syntactically valid
		// URL whenever it's supplied at all.
		if submission.RawFootage == nil && targetStatus == StatusSubmitted && !listTeam {
			return apperr.RawRequired()
		}
		if submission.RawFootage != nil {
			parsed, err := url.Parse(strings.TrimSpace(*submission.RawFootage))
			if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
				return apperr.MalformedRawUrl()
			}
		}

		// Step 11: rate limiting, waived for the list team.
		if !listTeam {
			if err := service.limiter.Allow(ratelimit.RecordSubmission, submission.IPHash); err != nil {
				return err
			}
			if err := service.limiter.Allow(ratelimit.RecordSubmissionGlobal, ""); err != nil {
				return err
			}
		}

		// Step 12: insert as Submitted, then transition if the caller
		// requested a different terminal status.
		record = &Record{
			Progress:    submission.Progress,
			Video:       canonicalVideo,
			RawFootage:  submission.RawFootage,
			Status:      StatusSubmitted,
			Player:      player,
			PlayerID:    player.ID,
			Demon:       demon,
			DemonID:     demon.ID,
			SubmitterID: &submitter.ID,
		}
		if err := service.records.Create(context, record); err != nil {
			return err
		}
		service.recordAddition(context, AuditTargetRecord, record.ID, principal.UserID)

		if targetStatus != StatusSubmitted {
			if err := service.setStatus(context, principal, record, targetStatus); err != nil {
				return err
			}
		}

		// Step 13: optional moderator note.
		if submission.Note != nil && *submission.Note != "" {
			if err := service.records.AddNote(context, &RecordNote{RecordID: record.ID, Content: *submission.Note, Author: principal.UserID}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Step 14: score recompute if the record didn't land as Submitted.
	if record.Status != StatusSubmitted {
		if err := service.RecomputePlayerScore(context, record.PlayerID); err != nil {
			service.logger.Warn("score_recompute_failed", "player_id", record.PlayerID, "error", err)
		}
	}
	return record, nil
}

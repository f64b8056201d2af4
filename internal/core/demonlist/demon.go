// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package demonlist implements the ranked list of Geometry Dash demons and
the records players submit against them.

# Core Responsibility

  - Ranking: Maintains the dense, contiguous [Demon] position ordering and
    the main/extended/legacy tiers derived from it.
  - Records: Governs the lifecycle of a [Record] from submission through
    review to approval, including retargeting and the duplicate-video and
    duplicate-progress invariants that keep the list honest.
  - Players: Tracks [Player] identity, bans, and the derived demonlist
    [score.go] that ranks them against each other.
  - Claims: Lets a verified member lock third-party submissions to a
    player they own.

This package is the authoritative ranking engine; the HTTP handlers in
this package are its only public surface.
*/
package demonlist

import "time"

// # Demon

// Demon represents a single ranked level on the demonlist.
type Demon struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Position    int       `json:"position"`
	Requirement int       `json:"requirement"`
	Video       *string   `json:"video,omitempty"`
	LevelID     *int64    `json:"level_id,omitempty"`
	Verifier    *Player   `json:"verifier,omitempty"`
	Publisher   *Player   `json:"publisher,omitempty"`
	Creators    []*Player `json:"creators,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// ETag derives the optimistic-concurrency token for this demon's current
// state, hashed over every field a concurrent PATCH could race on.
func (d *Demon) ETag() string {
	return computeETag(d.ID, d.Name, d.Position, d.Requirement, derefString(d.Video), derefInt64(d.LevelID))
}

// Tier classifies a demon by its position relative to the list's size
// thresholds (spec.md §4.1).
type Tier int

const (
	// TierMain demons sit within the main list (position <= LIST_SIZE).
	TierMain Tier = iota
	// TierExtended demons sit beyond the main list but still accept
	// 100% submissions (position <= EXTENDED_LIST_SIZE).
	TierExtended
	// TierLegacy demons have fallen off the extended list and no longer
	// accept new submissions.
	TierLegacy
)

// TierOf classifies position given the configured list-size thresholds.
func TierOf(position, listSize, extendedListSize int) Tier {
	switch {
	case position <= listSize:
		return TierMain
	case position <= extendedListSize:
		return TierExtended
	default:
		return TierLegacy
	}
}

// # Filtering

// DemonFilter holds parameters for searching and listing demons.
type DemonFilter struct {
	Query          string
	NameContains   string
	RequirementGte *int
	RequirementLte *int
	PositionGte    *int
	PositionLte    *int
}

// # Field Identifiers

const (
	FieldDemonName        = "name"
	FieldDemonPosition    = "position"
	FieldDemonRequirement = "requirement"
	FieldDemonVideo       = "video"
	FieldDemonLevelID     = "level_id"
	FieldDemonVerifier    = "verifier"
	FieldDemonPublisher   = "publisher"
)

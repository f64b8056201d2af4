// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

// RecordFilter holds parameters for searching and listing records
// (spec.md §4.10).
type RecordFilter struct {
	PlayerID     *int64
	DemonID      *int64
	DemonPosGte  *int
	DemonPosLte  *int
	Status       *Status
	Progress     *int
	ProgressGte  *int
	ProgressLte  *int
	SubmitterID  *int64
	ClaimedBy    *int64
}

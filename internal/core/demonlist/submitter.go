// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

// Submitter identifies the IP address a record was submitted from,
// created on first submission and never exposed to API clients directly
// beyond its id (spec.md §3.1).
type Submitter struct {
	ID     int64
	IPHash string
	Banned bool
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

// Creator is a single edge of the demon-to-player creator many-to-many
// relation (spec.md §3.1). It carries no attributes of its own beyond
// the pair it links.
type Creator struct {
	DemonID  int64
	PlayerID int64
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import "github.com/pointercrate-rs/corengine/internal/platform/etag"

func computeETag(fields ...any) string { return etag.Compute(fields...) }

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

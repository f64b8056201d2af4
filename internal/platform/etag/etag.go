// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package etag computes the version tokens the demon and record mutating
endpoints enforce via If-Match (spec.md §4.11). A token is a deterministic
hash over an entity's identity-bearing fields — two fetches of the same
entity in the same state always produce the same token, and any change to
those fields changes it.
*/
package etag

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Compute hashes the string representation of fields, in order, into a
// hex-encoded blake2b-256 digest.
func Compute(fields ...any) string {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors on an oversized key, and we never
		// pass one.
		panic(fmt.Sprintf("etag: blake2b.New256: %v", err))
	}

	for _, field := range fields {
		fmt.Fprintf(hasher, "%v\x00", field)
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

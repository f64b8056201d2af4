// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/ratelimit"
)

/*
TestRegistry_Allow_BurstThenLimited checks that a bucket permits up to
its burst size immediately, then starts rejecting.
*/
func TestRegistry_Allow_BurstThenLimited(t *testing.T) {
	registry := ratelimit.NewRegistry()

	for i := 0; i < 3; i++ {
		require.NoError(t, registry.Allow(ratelimit.RecordSubmission, "1.2.3.4"))
	}

	err := registry.Allow(ratelimit.RecordSubmission, "1.2.3.4")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeRatelimited))
}

/*
TestRegistry_Allow_KeysAreIndependent checks that two different keys
under the same scope don't share a bucket.
*/
func TestRegistry_Allow_KeysAreIndependent(t *testing.T) {
	registry := ratelimit.NewRegistry()

	for i := 0; i < 3; i++ {
		require.NoError(t, registry.Allow(ratelimit.RecordSubmission, "1.2.3.4"))
	}

	// A distinct submitter IP still has its own fresh bucket.
	assert.NoError(t, registry.Allow(ratelimit.RecordSubmission, "5.6.7.8"))
}

/*
TestRegistry_Allow_UnknownScope asserts that a scope with no bucket spec
is never rate limited — a deliberate no-op rather than a panic, since an
unregistered scope is a programmer error to catch at the call site.
*/
func TestRegistry_Allow_UnknownScope(t *testing.T) {
	registry := ratelimit.NewRegistry()
	for i := 0; i < 100; i++ {
		assert.NoError(t, registry.Allow(ratelimit.Scope("unregistered"), "anything"))
	}
}

/*
TestRegistry_Sweep_RemovesIdleBuckets checks that Sweep evicts buckets
past their idle ttl but leaves fresh ones alone.
*/
func TestRegistry_Sweep_RemovesIdleBuckets(t *testing.T) {
	registry := ratelimit.NewRegistry()

	require.NoError(t, registry.Allow(ratelimit.RecordSubmission, "1.2.3.4"))
	time.Sleep(5 * time.Millisecond)
	registry.Sweep(1 * time.Millisecond)

	// The swept bucket was recreated fresh, so the full burst is
	// available again immediately.
	for i := 0; i < 3; i++ {
		assert.NoError(t, registry.Allow(ratelimit.RecordSubmission, "1.2.3.4"))
	}
}

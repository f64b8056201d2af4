// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ratelimit implements the per-scope token-bucket limiters the
record submission path enforces, generalizing the single per-IP bucket
map in internal/platform/middleware into a registry keyed by scope name
plus an optional per-scope key (an IP, say).
*/
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
)

// Scope names the bucket a check consumes from.
type Scope string

const (
	// RecordSubmission limits submissions per submitting IP.
	RecordSubmission Scope = "record_submission"
	// RecordSubmissionGlobal limits submissions across all IPs combined.
	RecordSubmissionGlobal Scope = "record_submission_global"
	// NewSubmitters limits how many first-time submitter IPs may appear.
	NewSubmitters Scope = "new_submitters"

	// The following scopes exist for completeness with the original
	// rate limiter's domain but are not consumed anywhere on the record
	// submission path (spec.md §4.9).
	Login        Scope = "login"
	Registration Scope = "registration"
	Geolocation  Scope = "geolocation"
)

type bucketSpec struct {
	limit  rate.Limit
	burst  int
	window time.Duration
}

// specs mirrors the exact numbers of the original rate limiter: 3 per 20
// minutes per IP, 20 per hour globally, 5 per hour for first-time
// submitter IPs.
var specs = map[Scope]bucketSpec{
	RecordSubmission:       {limit: rate.Every(20 * time.Minute / 3), burst: 3, window: 20 * time.Minute},
	RecordSubmissionGlobal: {limit: rate.Every(time.Hour / 20), burst: 20, window: time.Hour},
	NewSubmitters:          {limit: rate.Every(time.Hour / 5), burst: 5, window: time.Hour},
	Login:                  {limit: rate.Every(time.Minute / 5), burst: 5, window: time.Minute},
	Registration:           {limit: rate.Every(time.Hour / 3), burst: 3, window: time.Hour},
	Geolocation:            {limit: rate.Every(time.Minute / 10), burst: 10, window: time.Minute},
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Registry holds one token bucket per (scope, key) pair.
type Registry struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewRegistry constructs an empty bucket registry.
func NewRegistry() *Registry {
	return &Registry{buckets: make(map[string]*bucket)}
}

// Allow consumes one token from the bucket for (scope, key), creating it
// on first use. key is typically an IP address; pass "" for scopes that
// are not keyed per-caller (e.g. [RecordSubmissionGlobal]).
//
// Returns [apperr.Ratelimited] with the remaining wait duration if the
// bucket is empty.
func (registry *Registry) Allow(scope Scope, key string) error {
	spec, ok := specs[scope]
	if !ok {
		// Unknown scopes are not rate limited — a programmer error to
		// fix at the call site, not a client-facing failure.
		return nil
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	bucketKey := string(scope) + "|" + key
	b, found := registry.buckets[bucketKey]
	if !found {
		b = &bucket{limiter: rate.NewLimiter(spec.limit, spec.burst)}
		registry.buckets[bucketKey] = b
	}
	b.lastSeen = time.Now()

	reservation := b.limiter.Reserve()
	if !reservation.OK() {
		return apperr.Ratelimited(spec.window)
	}

	delay := reservation.Delay()
	if delay > 0 {
		reservation.Cancel()
		return apperr.Ratelimited(delay)
	}

	return nil
}

// Sweep removes buckets idle longer than ttl, bounding memory growth for
// a process that sees unique keys over its lifetime.
func (registry *Registry) Sweep(ttl time.Duration) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for key, b := range registry.buckets {
		if time.Since(b.lastSeen) > ttl {
			delete(registry.buckets, key)
		}
	}
}

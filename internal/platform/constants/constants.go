// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values shared across
layers of the platform: default timeouts, rate limits, header names,
and JSON field identifiers.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "demonlist-core"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	GlobalRequestTimeout     = 30 * time.Second
	ShutdownTimeout          = 30 * time.Second
)

// # Rate Limiting (generic, ambient per-IP guard; see internal/platform/ratelimit
// for the per-scope submission limiters spec.md §4.9 describes)

const (
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderOrigin         = "Origin"
	HeaderIfMatch        = "If-Match"
	HeaderIfNoneMatch    = "If-None-Match"
	HeaderETag           = "ETag"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # List boundaries (defaults; overridden by config.Config at runtime)

const (
	DefaultListSize         = 75
	DefaultExtendedListSize = 150
)

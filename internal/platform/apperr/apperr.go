// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the
demonlist core.

It provides a rich error type that bridges the gap between low-level
domain/storage errors and high-level HTTP responses, using the
five-digit pointercrate error code scheme: the first three digits
mirror the HTTP status, the last two distinguish subkinds within it.

Every error that leaves the service layer should be wrapped as an
[AppError] to ensure consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// AppError is the canonical error type for the demonlist API.
//
// # Security
//
// Cause is for server-side logging only and is never sent to clients,
// to avoid leaking internal implementation details (e.g. SQL queries).
type AppError struct {
	// Code is the five-digit pointercrate error code.
	Code int `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code (Code's first three digits).
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Data carries kind-specific structured payload (e.g. RemainingDuration).
	Data any `json:"data,omitempty"`
}

func (e *AppError) Error() string { return e.Message }
func (e *AppError) Unwrap() error { return e.Cause }

func newErr(code, status int, msg string) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status}
}

// # 400xx — generic bad request

const (
	CodeGenericBadRequest = 40000
	CodeJsonDecodeError   = 40001
)

func GenericBadRequest(msg string) *AppError { return newErr(CodeGenericBadRequest, http.StatusBadRequest, msg) }
func JsonDecodeError(cause error) *AppError {
	err := newErr(CodeJsonDecodeError, http.StatusBadRequest, "malformed JSON body")
	err.Cause = cause
	return err
}

// FieldError names a single field that failed validation, carried in an
// [AppError]'s Data so clients can highlight the offending input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError wraps one or more field-level failures collected by
// [github.com/pointercrate-rs/corengine/internal/platform/validate.Validator].
func ValidationError(msg string, fields ...FieldError) *AppError {
	err := newErr(CodeGenericBadRequest, http.StatusBadRequest, msg)
	if len(fields) > 0 {
		err.Data = map[string][]FieldError{"fields": fields}
	}
	return err
}

// # 401xx/403xx — authorisation

const (
	CodeUnauthorized            = 40100
	CodeForbidden               = 40300
	CodeMissingPermissions      = 40301
	CodeBannedFromSubmissions   = 40302
	CodeClaimUnverified         = 40303
	CodeNoThirdPartySubmissions = 40304
	CodeVpsDetected             = 40305
)

func Unauthorized(msg string) *AppError { return newErr(CodeUnauthorized, http.StatusUnauthorized, msg) }
func Forbidden(msg string) *AppError    { return newErr(CodeForbidden, http.StatusForbidden, msg) }

// MissingPermissions reports the permission(s) required to perform the operation.
func MissingPermissions(required string) *AppError {
	err := newErr(CodeMissingPermissions, http.StatusForbidden, "missing required permissions: "+required)
	err.Data = map[string]string{"required": required}
	return err
}

func BannedFromSubmissions() *AppError {
	return newErr(CodeBannedFromSubmissions, http.StatusForbidden, "this player is banned from the demonlist")
}

// PlayerBanned reports that an operation was rejected because its
// target player is banned (distinct from [BannedFromSubmissions], which
// is the submitting IP's own ban).
func PlayerBanned() *AppError {
	return newErr(CodeBannedFromSubmissions, http.StatusForbidden, "this player is banned from the demonlist")
}

func ClaimUnverified() *AppError {
	return newErr(CodeClaimUnverified, http.StatusForbidden, "your claim on this player has not been verified")
}

func NoThirdPartySubmissions() *AppError {
	return newErr(CodeNoThirdPartySubmissions, http.StatusForbidden, "submissions for this player are locked to its verified claimant")
}

func VpsDetected() *AppError {
	return newErr(CodeVpsDetected, http.StatusForbidden, "requests from VPS/proxy ranges are not permitted")
}

// # 404xx — not found, one per entity

const (
	CodeDemonNotFound       = 40401
	CodePlayerNotFound      = 40402
	CodeRecordNotFound      = 40403
	CodeNationalityNotFound = 40404
	CodeSubdivisionNotFound = 40405
	CodeNoteNotFound        = 40406
	CodeCreatorNotFound     = 40407
	CodeSubmitterNotFound   = 40408
	CodeClaimNotFound       = 40409
)

func DemonNotFound(id int64) *AppError {
	return newErr(CodeDemonNotFound, http.StatusNotFound, fmt.Sprintf("no demon with id %d", id))
}
func PlayerNotFound(ident string) *AppError {
	return newErr(CodePlayerNotFound, http.StatusNotFound, "no player '"+ident+"'")
}
func RecordNotFound(id int64) *AppError {
	return newErr(CodeRecordNotFound, http.StatusNotFound, fmt.Sprintf("no record with id %d", id))
}
func NationalityNotFound(ident string) *AppError {
	return newErr(CodeNationalityNotFound, http.StatusNotFound, "no nation '"+ident+"'")
}
func SubdivisionNotFound(ident string) *AppError {
	return newErr(CodeSubdivisionNotFound, http.StatusNotFound, "no subdivision '"+ident+"'")
}
func NoteNotFound(id int64) *AppError {
	return newErr(CodeNoteNotFound, http.StatusNotFound, fmt.Sprintf("no note with id %d", id))
}
func CreatorNotFound() *AppError {
	return newErr(CodeCreatorNotFound, http.StatusNotFound, "no such creator entry")
}
func SubmitterNotFound(id int64) *AppError {
	return newErr(CodeSubmitterNotFound, http.StatusNotFound, fmt.Sprintf("no submitter with id %d", id))
}
func ClaimNotFound() *AppError {
	return newErr(CodeClaimNotFound, http.StatusNotFound, "no such claim")
}

// # 409xx — conflict

const (
	CodeConflict         = 40900
	CodeCreatorExists     = 40901
	CodeDuplicateVideo    = 40902
	CodeNoNationSet       = 40903
	CodeConflictingClaims = 40904
)

// Conflict wraps a unique-constraint race lost at commit time. Never
// logged as an internal error — this is the expected resolution of a
// TOCTOU on unique creation, not a bug.
func Conflict(msg string) *AppError { return newErr(CodeConflict, http.StatusConflict, msg) }

func CreatorExists() *AppError {
	return newErr(CodeCreatorExists, http.StatusConflict, "this player is already a creator of this demon")
}

// DuplicateVideo reports the id of the record that already owns the video.
func DuplicateVideo(existingRecordID int64) *AppError {
	err := newErr(CodeDuplicateVideo, http.StatusConflict, "this video is already associated with another record")
	err.Data = map[string]int64{"existing": existingRecordID}
	return err
}

func NoNationSet() *AppError {
	return newErr(CodeNoNationSet, http.StatusConflict, "a subdivision cannot be set without a nationality")
}

func ConflictingClaims(player1, player2 string) *AppError {
	err := newErr(CodeConflictingClaims, http.StatusConflict,
		fmt.Sprintf("both %q and %q have a verified claim; merge cannot proceed", player1, player2))
	err.Data = map[string]string{"player1": player1, "player2": player2}
	return err
}

// # 412/428 — precondition

const (
	CodePreconditionFailed   = 41200
	CodePreconditionRequired = 42800
)

func PreconditionFailed() *AppError {
	return newErr(CodePreconditionFailed, http.StatusPreconditionFailed, "the resource was modified since your last fetch")
}

func PreconditionRequired() *AppError {
	return newErr(CodePreconditionRequired, http.StatusPreconditionRequired, "this mutation requires an If-Match header")
}

// # 422xx — validation

const (
	CodeInvalidProgress     = 42200
	CodeInvalidPosition     = 42201
	CodeInvalidRequirement  = 42202
	CodeMalformedVideoUrl   = 42203
	CodeUnsupportedVideoHost = 42204
	CodeInvalidUrlFormat    = 42205
	CodeSubmissionExists    = 42206
	CodeNon100Extended      = 42207
	CodeSubmitLegacy        = 42208
	CodeDemonNameNotUnique  = 42209
	CodeNoteEmpty           = 42210
	CodeAlreadyClaimed      = 42211
	CodeRawRequired         = 42212
	CodeMalformedRawUrl     = 42213
	CodeInvalidLevelId      = 42214
	CodeMutuallyExclusive   = 42215
)

func InvalidProgress(requirement int) *AppError {
	err := newErr(CodeInvalidProgress, http.StatusUnprocessableEntity,
		fmt.Sprintf("progress must be between %d and 100", requirement))
	err.Data = map[string]int{"requirement": requirement}
	return err
}

func InvalidPosition(maxPosition int) *AppError {
	return newErr(CodeInvalidPosition, http.StatusUnprocessableEntity,
		fmt.Sprintf("position must be between 1 and %d", maxPosition))
}

func InvalidRequirement() *AppError {
	return newErr(CodeInvalidRequirement, http.StatusUnprocessableEntity, "requirement must be between 0 and 100")
}

func MalformedVideoUrl() *AppError {
	return newErr(CodeMalformedVideoUrl, http.StatusUnprocessableEntity, "not a valid URL")
}

func UnsupportedVideoHost(host string) *AppError {
	return newErr(CodeUnsupportedVideoHost, http.StatusUnprocessableEntity, "unsupported video host: "+host)
}

func InvalidUrlFormat(expected string) *AppError {
	err := newErr(CodeInvalidUrlFormat, http.StatusUnprocessableEntity, "malformed video URL, expected: "+expected)
	err.Data = map[string]string{"expected": expected}
	return err
}

// SubmissionExists reports the id/status of the conflicting record.
func SubmissionExists(existingID int64, status string) *AppError {
	err := newErr(CodeSubmissionExists, http.StatusUnprocessableEntity, "a record for this submission already exists")
	err.Data = map[string]any{"existing": existingID, "status": status}
	return err
}

func Non100Extended() *AppError {
	return newErr(CodeNon100Extended, http.StatusUnprocessableEntity, "submissions for the extended list require 100% progress")
}

func SubmitLegacy() *AppError {
	return newErr(CodeSubmitLegacy, http.StatusUnprocessableEntity, "this demon has fallen off the extended list; submissions are closed")
}

func DemonNameNotUnique() *AppError {
	return newErr(CodeDemonNameNotUnique, http.StatusUnprocessableEntity, "a demon with this name already exists")
}

func NoteEmpty() *AppError {
	return newErr(CodeNoteEmpty, http.StatusUnprocessableEntity, "note content must not be empty")
}

func AlreadyClaimed() *AppError {
	return newErr(CodeAlreadyClaimed, http.StatusUnprocessableEntity, "you already have a claim on a player")
}

func RawRequired() *AppError {
	return newErr(CodeRawRequired, http.StatusUnprocessableEntity, "raw footage is required for this submission")
}

func MalformedRawUrl() *AppError {
	return newErr(CodeMalformedRawUrl, http.StatusUnprocessableEntity, "raw footage must be a syntactically valid URL")
}

func InvalidLevelId() *AppError {
	return newErr(CodeInvalidLevelId, http.StatusUnprocessableEntity, "level id must be a positive integer")
}

func MutuallyExclusive(fieldA, fieldB string) *AppError {
	return newErr(CodeMutuallyExclusive, http.StatusUnprocessableEntity,
		fmt.Sprintf("%s and %s are mutually exclusive", fieldA, fieldB))
}

// # 429xx — rate limit

const CodeRatelimited = 42900

// Ratelimited reports the remaining duration until the bucket refills.
func Ratelimited(remaining time.Duration) *AppError {
	err := newErr(CodeRatelimited, http.StatusTooManyRequests,
		fmt.Sprintf("rate limit exceeded, try again in %s", remaining.Round(time.Second)))
	err.Data = map[string]float64{"remaining_seconds": remaining.Seconds()}
	return err
}

// # 500/503 — transport

const (
	CodeInternalServerError    = 50000
	CodeDatabaseError          = 50001
	CodeDatabaseConnectionError = 50300
	CodeQueryTimeout           = 50301
	CodeReadOnlyMaintenance    = 50302
)

// Internal wraps an unexpected server-side error. cause is stored only
// for logging and is never sent to the client.
func Internal(cause error) *AppError {
	err := newErr(CodeInternalServerError, http.StatusInternalServerError, "an unexpected error occurred")
	err.Cause = cause
	return err
}

func DatabaseError(cause error) *AppError {
	err := newErr(CodeDatabaseError, http.StatusInternalServerError, "a database error occurred")
	err.Cause = cause
	return err
}

func DatabaseConnectionError(cause error) *AppError {
	err := newErr(CodeDatabaseConnectionError, http.StatusServiceUnavailable, "could not reach the database")
	err.Cause = cause
	return err
}

func QueryTimeout() *AppError {
	return newErr(CodeQueryTimeout, http.StatusServiceUnavailable, "the query exceeded its deadline")
}

func ReadOnlyMaintenance() *AppError {
	return newErr(CodeReadOnlyMaintenance, http.StatusServiceUnavailable, "the API is in read-only maintenance mode")
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain, or nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err unwraps to an [*AppError] with the given code.
func HasCode(err error, code int) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
	"github.com/pointercrate-rs/corengine/internal/platform/ctxutil"
	"github.com/pointercrate-rs/corengine/internal/platform/sec"
	"github.com/pointercrate-rs/corengine/internal/platform/validate"
	"github.com/pointercrate-rs/corengine/pkg/pagination"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - int64: User ID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (int64, error) {

	// Get user claims
	claims, err := RequiredClaims(request)

	// If the user is not authenticated, return an error
	if err != nil {
		return 0, err
	}

	return claims.UserID, nil
}

/*
Principal converts the request's authenticated claims, if any, into the
[authz.Principal] the demonlist service layer expects. An anonymous
request yields the zero Principal, which holds no permissions — this is
the correct input for public endpoints like anonymous record
submission.
*/
func Principal(request *http.Request) authz.Principal {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return authz.Principal{}
	}
	return claims.Principal()
}

/*
RequireIfMatch enforces optimistic concurrency on a mutating request
(spec.md §4.11): the caller must supply an If-Match header naming
currentETag, the version token of the resource as it stood when they
last fetched it. Missing the header is [apperr.PreconditionRequired];
a stale or mismatched token is [apperr.PreconditionFailed].
*/
func RequireIfMatch(request *http.Request, currentETag string) error {
	header := request.Header.Get("If-Match")
	if header == "" {
		return apperr.PreconditionRequired()
	}
	if trimQuotes(header) != currentETag {
		return apperr.PreconditionFailed()
	}
	return nil
}

func trimQuotes(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

/*
Pagination reads the before/after/limit query parameters into a
[pagination.Query]. Malformed integers are treated as absent rather than
rejected outright, mirroring how the rest of the demonlist API favours a
sane default over a 400 on a cosmetic input mistake.
*/
func Pagination(request *http.Request) pagination.Query {
	params := request.URL.Query()

	query := pagination.Query{}
	if after, err := strconv.ParseInt(params.Get("after"), 10, 64); err == nil {
		query.After = &after
	}
	if before, err := strconv.ParseInt(params.Get("before"), 10, 64); err == nil {
		query.Before = &before
	}
	if limit, err := strconv.Atoi(params.Get("limit")); err == nil {
		query.Limit = limit
	}
	return query
}

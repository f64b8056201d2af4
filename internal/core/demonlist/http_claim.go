// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/authz"
	"github.com/pointercrate-rs/corengine/internal/platform/middleware"
	requestutil "github.com/pointercrate-rs/corengine/internal/platform/request"
	"github.com/pointercrate-rs/corengine/internal/platform/respond"
)

// ClaimHandler implements the HTTP layer for the player-claim engine
// (spec.md §4.7). Every route requires an authenticated caller; the
// service layer independently re-checks moderator-only operations.
type ClaimHandler struct {
	service *Service
}

// NewClaimHandler constructs a new [ClaimHandler].
func NewClaimHandler(service *Service) *ClaimHandler {
	return &ClaimHandler{service: service}
}

// Routes returns a [chi.Router] configured with claim-related endpoints.
// Every route requires authentication via [middleware.RequireAuth]; the
// verified/delete operations additionally require list-moderator.
func (handler *ClaimHandler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.initiateClaim)
	router.Patch("/lock", handler.setLockSubmissions)

	router.Route("/{userID}", func(subRouter chi.Router) {
		subRouter.With(middleware.RequirePermission(authz.ListModerator)).Patch("/verified", handler.setVerified)
		subRouter.With(middleware.RequirePermission(authz.ListModerator)).Delete("/", handler.deleteClaim)
	})

	return router
}

/*
POST /api/v1/claims.

Description: Asserts the caller's ownership of a player. A member may
hold only one claim at a time.

Request (Body): {"player_id": int64}

Response:
  - 201: Claim: created, unverified
  - 422: AlreadyClaimed
*/
func (handler *ClaimHandler) initiateClaim(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		PlayerID int64 `json:"player_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal := requestutil.Principal(request)
	principal.UserID = userID

	claim, err := handler.service.InitiateClaim(request.Context(), principal, input.PlayerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, claim)
}

/*
PATCH /api/v1/claims/{userID}/verified.

Description: Flips a claim's verified flag. Moderator-only.

Request (Body): {"verified": bool}

Verifying a claim displaces any other verified claim already held on
the same player rather than rejecting the request.

Response:
  - 204: No Content
  - 404: ClaimNotFound
*/
func (handler *ClaimHandler) setVerified(writer http.ResponseWriter, request *http.Request) {
	userID, err := strconv.ParseInt(requestutil.Param(request, "userID"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid user id"))
		return
	}

	var input struct {
		Verified bool `json:"verified"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetClaimVerified(request.Context(), requestutil.Principal(request), userID, input.Verified); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
PATCH /api/v1/claims/lock.

Description: Flips whether third parties may submit records for the
caller's claimed player. Only the claim's own verified owner may change
this.

Request (Body): {"lock": bool}

Response:
  - 204: No Content
  - 403: ClaimUnverified
*/
func (handler *ClaimHandler) setLockSubmissions(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Lock bool `json:"lock"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetClaimLockSubmissions(request.Context(), requestutil.Principal(request), input.Lock); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
DELETE /api/v1/claims/{userID}.

Description: Removes a member's claim. Moderator-only.

Response:
  - 204: No Content
*/
func (handler *ClaimHandler) deleteClaim(writer http.ResponseWriter, request *http.Request) {
	userID, err := strconv.ParseInt(requestutil.Param(request, "userID"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid user id"))
		return
	}

	if err := handler.service.DeleteClaim(request.Context(), requestutil.Principal(request), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

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
	"github.com/pointercrate-rs/corengine/internal/platform/validate"
)

// DemonHandler implements the HTTP layer for demon ranking and roster
// management.
type DemonHandler struct {
	service *Service
}

// NewDemonHandler constructs a new [DemonHandler].
func NewDemonHandler(service *Service) *DemonHandler {
	return &DemonHandler{service: service}
}

// Routes returns a [chi.Router] configured with demon-related endpoints.
// Mutating routes are gated with [middleware.RequirePermission] at the
// permission level spec.md assigns them; the service layer re-checks the
// same permission independently as defense in depth.
func (handler *DemonHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listDemons)
	router.Get("/position/{position}", handler.getDemonByPosition)
	router.With(middleware.RequirePermission(authz.ListAdministrator)).Post("/", handler.addDemon)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getDemon)
		subRouter.With(middleware.RequirePermission(authz.ListAdministrator)).Patch("/position", handler.moveDemon)
		subRouter.With(middleware.RequirePermission(authz.ListHelper)).Patch("/requirement", handler.patchRequirement)
		subRouter.With(middleware.RequirePermission(authz.ListHelper)).Patch("/video", handler.patchVideo)
		subRouter.With(middleware.RequirePermission(authz.ListAdministrator)).Patch("/name", handler.renameDemon)
		subRouter.With(middleware.RequirePermission(authz.ListHelper)).Post("/creators", handler.addCreator)
		subRouter.With(middleware.RequirePermission(authz.ListHelper)).Delete("/creators/{playerID}", handler.removeCreator)
	})

	return router
}

// addDemonRequest is the POST /demons body.
type addDemonRequest struct {
	Name        string   `json:"name"`
	Position    int      `json:"position"`
	Requirement int      `json:"requirement"`
	Video       *string  `json:"video,omitempty"`
	LevelID     *int64   `json:"level_id,omitempty"`
	Verifier    string   `json:"verifier"`
	Publisher   string   `json:"publisher"`
	Creators    []string `json:"creators,omitempty"`
}

/*
GET /api/v1/demons.

Description: Retrieves a keyset-paginated, filterable page of the
demonlist, ordered by position.

Request:
  - name_contains, requirement_gte, requirement_lte: filters
  - after, before, limit: pagination

Response:
  - 200: []Demon: paginated page
*/
func (handler *DemonHandler) listDemons(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := DemonFilter{NameContains: query.Get("name_contains")}
	if v, err := strconv.Atoi(query.Get("requirement_gte")); err == nil {
		filter.RequirementGte = &v
	}
	if v, err := strconv.Atoi(query.Get("requirement_lte")); err == nil {
		filter.RequirementLte = &v
	}

	page, err := handler.service.ListDemons(request.Context(), filter, requestutil.Pagination(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Items, page.Context)
}

/*
GET /api/v1/demons/{id}.

Description: Retrieves a single demon by id, including its verifier,
publisher, and creator roster.

Response:
  - 200: Demon: success, with an ETag header for later If-Match PATCHes
  - 404: DemonNotFound
*/
func (handler *DemonHandler) getDemon(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid demon id"))
		return
	}

	demon, err := handler.service.GetDemon(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.WithETag(writer, demon.ETag())
	respond.OK(writer, demon)
}

/*
GET /api/v1/demons/position/{position}.

Description: Retrieves the demon currently holding a given list position.

Response:
  - 200: Demon: success
  - 404: DemonNotFound
*/
func (handler *DemonHandler) getDemonByPosition(writer http.ResponseWriter, request *http.Request) {
	position, err := strconv.Atoi(requestutil.Param(request, "position"))
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid position"))
		return
	}

	demon, err := handler.service.GetDemonByPosition(request.Context(), position)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.WithETag(writer, demon.ETag())
	respond.OK(writer, demon)
}

/*
POST /api/v1/demons.

Description: Adds a new demon at the given position, shifting the rest
of the list to make room. List-administrator only.

Request (Body): addDemonRequest

Response:
  - 201: Demon: created
  - 403: MissingPermissions
  - 422: InvalidPosition / InvalidRequirement
*/
func (handler *DemonHandler) addDemon(writer http.ResponseWriter, request *http.Request) {
	var input addDemonRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, 200)
	v.Required("verifier", input.Verifier)
	v.Required("publisher", input.Publisher)
	v.Range("requirement", input.Requirement, 0, 100)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	demon, err := handler.service.AddDemon(request.Context(), requestutil.Principal(request),
		input.Name, input.Position, input.Requirement, input.Video, input.LevelID,
		input.Verifier, input.Publisher, input.Creators)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, demon)
}

/*
PATCH /api/v1/demons/{id}/position.

Description: Relocates a demon to a new position, shifting every demon
between the old and new slot. List-administrator only.

Request (Body): {"position": int}

Response:
  - 204: No Content
  - 422: InvalidPosition
*/
func (handler *DemonHandler) moveDemon(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid demon id"))
		return
	}

	var input struct {
		Position int `json:"position"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.MoveDemon(request.Context(), requestutil.Principal(request), id, input.Position); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
PATCH /api/v1/demons/{id}/requirement.

Description: Updates a demon's completion requirement. List-helper or
above. Requires If-Match against the demon's current ETag.

Request (Body): {"requirement": int}

Response:
  - 204: No Content
  - 412/428: precondition failed/required
  - 422: InvalidRequirement
*/
func (handler *DemonHandler) patchRequirement(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid demon id"))
		return
	}

	demon, err := handler.service.GetDemon(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := requestutil.RequireIfMatch(request, demon.ETag()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Requirement int `json:"requirement"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.PatchDemonRequirement(request.Context(), requestutil.Principal(request), id, input.Requirement); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
PATCH /api/v1/demons/{id}/video.

Description: Updates or clears a demon's verification video.
List-helper or above. Requires If-Match.

Request (Body): {"video": string|null}

Response:
  - 204: No Content
  - 412/428: precondition failed/required
  - 422: MalformedVideoUrl / UnsupportedVideoHost
*/
func (handler *DemonHandler) patchVideo(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid demon id"))
		return
	}

	demon, err := handler.service.GetDemon(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := requestutil.RequireIfMatch(request, demon.ETag()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Video *string `json:"video"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.PatchDemonVideo(request.Context(), requestutil.Principal(request), id, input.Video); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
PATCH /api/v1/demons/{id}/name.

Description: Renames a demon. Names aren't unique, so no conflict check
is performed. List-administrator only.

Request (Body): {"name": string}

Response:
  - 204: No Content
*/
func (handler *DemonHandler) renameDemon(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid demon id"))
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, 200)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RenameDemon(request.Context(), requestutil.Principal(request), id, input.Name); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/v1/demons/{id}/creators.

Description: Credits a player as a creator of a demon, creating the
player if the name hasn't been seen before. List-helper or above.

Request (Body): {"name": string}

Response:
  - 201: No body: created
  - 409: CreatorExists
*/
func (handler *DemonHandler) addCreator(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid demon id"))
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Name == "" {
		respond.Error(writer, request, apperr.GenericBadRequest("name is required"))
		return
	}

	if err := handler.service.AddCreator(request.Context(), requestutil.Principal(request), id, input.Name); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, nil)
}

/*
DELETE /api/v1/demons/{id}/creators/{playerID}.

Description: Revokes a player's creator credit on a demon.
List-helper or above.

Response:
  - 204: No Content
*/
func (handler *DemonHandler) removeCreator(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid demon id"))
		return
	}
	playerID, err := strconv.ParseInt(requestutil.Param(request, "playerID"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid player id"))
		return
	}

	if err := handler.service.RemoveCreator(request.Context(), requestutil.Principal(request), id, playerID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

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

// PlayerHandler implements the HTTP layer for player ranking, bans, and
// merges.
type PlayerHandler struct {
	service *Service
}

// NewPlayerHandler constructs a new [PlayerHandler].
func NewPlayerHandler(service *Service) *PlayerHandler {
	return &PlayerHandler{service: service}
}

// Routes returns a [chi.Router] configured with player-related endpoints.
// Mutating routes are gated with [middleware.RequirePermission]; the
// service layer re-checks the same permission independently.
func (handler *PlayerHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPlayers)
	router.With(middleware.RequirePermission(authz.ListAdministrator)).Post("/merge", handler.mergePlayers)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getPlayer)
		subRouter.With(middleware.RequirePermission(authz.ListModerator)).Post("/ban", handler.banPlayer)
		subRouter.With(middleware.RequirePermission(authz.ListModerator)).Post("/unban", handler.unbanPlayer)
	})

	return router
}

/*
GET /api/v1/players.

Description: Retrieves a keyset-paginated, filterable page of players,
ordered by player id.

Request:
  - q: substring search over player name
  - banned: "true"/"false"
  - nation: ISO-3166-1 country code
  - after, before, limit: pagination

Response:
  - 200: []Player: paginated page
*/
func (handler *PlayerHandler) listPlayers(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := PlayerFilter{
		Query:      query.Get("q"),
		NationCode: query.Get("nation"),
	}
	if banned := query.Get("banned"); banned != "" {
		value := banned == "true"
		filter.Banned = &value
	}

	page, err := handler.service.ListPlayers(request.Context(), filter, requestutil.Pagination(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Items, page.Context)
}

/*
GET /api/v1/players/{id}.

Description: Retrieves a single player by id.

Response:
  - 200: Player: success, with an ETag header
  - 404: PlayerNotFound
*/
func (handler *PlayerHandler) getPlayer(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid player id"))
		return
	}

	player, err := handler.service.GetPlayer(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.WithETag(writer, player.ETag())
	respond.OK(writer, player)
}

/*
POST /api/v1/players/{id}/ban.

Description: Bans a player: their settled records flip to Rejected and
their pending submissions are dropped outright. List-moderator only.

Response:
  - 204: No Content
*/
func (handler *PlayerHandler) banPlayer(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid player id"))
		return
	}

	if err := handler.service.BanPlayer(request.Context(), requestutil.Principal(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/v1/players/{id}/unban.

Description: Clears a player's banned flag without touching its record
history. List-moderator only.

Response:
  - 204: No Content
*/
func (handler *PlayerHandler) unbanPlayer(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid player id"))
		return
	}

	if err := handler.service.UnbanPlayer(request.Context(), requestutil.Principal(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/v1/players/merge.

Description: Folds one player identity into another, repointing every
credit and record before deleting the absorbed player.
List-administrator only.

Request (Body): {"into": int64, "from": int64}

Response:
  - 204: No Content
  - 409: ConflictingClaims
*/
func (handler *PlayerHandler) mergePlayers(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Into int64 `json:"into"`
		From int64 `json:"from"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Custom("into", input.Into == 0, "into is required")
	v.Custom("from", input.From == 0, "from is required")
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.MergePlayers(request.Context(), requestutil.Principal(request), input.Into, input.From); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

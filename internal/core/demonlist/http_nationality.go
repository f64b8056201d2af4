// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pointercrate-rs/corengine/internal/platform/respond"
)

// NationalityHandler implements the HTTP layer for the geography
// leaderboard (spec.md §4.6).
type NationalityHandler struct {
	service *Service
}

// NewNationalityHandler constructs a new [NationalityHandler].
func NewNationalityHandler(service *Service) *NationalityHandler {
	return &NationalityHandler{service: service}
}

// Routes returns a [chi.Router] configured with nationality endpoints.
func (handler *NationalityHandler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listNationalities)
	return router
}

/*
GET /api/v1/nationalities.

Description: Lists every known nationality and its aggregate score,
ordered by name.

Response:
  - 200: []Nationality: success
*/
func (handler *NationalityHandler) listNationalities(writer http.ResponseWriter, request *http.Request) {
	nationalities, err := handler.service.ListNationalities(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, nationalities)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
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

// RecordHandler implements the HTTP layer for record submission, review,
// and moderator notes.
type RecordHandler struct {
	service *Service
}

// NewRecordHandler constructs a new [RecordHandler].
func NewRecordHandler(service *Service) *RecordHandler {
	return &RecordHandler{service: service}
}

// Routes returns a [chi.Router] configured with record-related endpoints.
// POST / is reachable anonymously (the service layer itself gates
// pre-approval and skip-review submissions); every other mutating route
// is gated here with [middleware.RequirePermission], re-checked
// independently by the service layer.
func (handler *RecordHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listRecords)
	router.Post("/", handler.submitRecord)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getRecord)
		subRouter.With(middleware.RequirePermission(authz.ListHelper)).Patch("/", handler.patchRecord)
		subRouter.With(middleware.RequirePermission(authz.ListHelper)).Delete("/", handler.deleteRecord)

		subRouter.Route("/notes", func(notes chi.Router) {
			notes.With(middleware.RequirePermission(authz.ListHelper)).Get("/", handler.listNotes)
			notes.With(middleware.RequirePermission(authz.ListHelper)).Post("/", handler.addNote)
		})
	})
	router.With(middleware.RequirePermission(authz.ListHelper)).Delete("/notes/{noteID}", handler.deleteNote)

	return router
}

// hashIP folds a client IP down to the opaque identifier the submitter
// table persists instead of the raw address.
func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}

/*
GET /api/v1/records.

Description: Retrieves a keyset-paginated, filterable page of records.

Request:
  - player_id, demon_id, status, submitter_id, claimed_by: exact filters
  - progress_gte, progress_lte: range filters
  - after, before, limit: pagination

Response:
  - 200: []Record: paginated page
*/
func (handler *RecordHandler) listRecords(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := RecordFilter{}
	if v, err := strconv.ParseInt(query.Get("player_id"), 10, 64); err == nil {
		filter.PlayerID = &v
	}
	if v, err := strconv.ParseInt(query.Get("demon_id"), 10, 64); err == nil {
		filter.DemonID = &v
	}
	if v, err := strconv.ParseInt(query.Get("submitter_id"), 10, 64); err == nil {
		filter.SubmitterID = &v
	}
	if v, err := strconv.ParseInt(query.Get("claimed_by"), 10, 64); err == nil {
		filter.ClaimedBy = &v
	}
	if v, err := strconv.Atoi(query.Get("progress_gte")); err == nil {
		filter.ProgressGte = &v
	}
	if v, err := strconv.Atoi(query.Get("progress_lte")); err == nil {
		filter.ProgressLte = &v
	}
	if status := Status(query.Get("status")); status.Valid() {
		filter.Status = &status
	}

	page, err := handler.service.ListRecords(request.Context(), requestutil.Principal(request), filter, requestutil.Pagination(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, page.Items, page.Context)
}

/*
GET /api/v1/records/{id}.

Description: Retrieves a single record by id.

Response:
  - 200: Record: success, with an ETag header
  - 404: RecordNotFound
*/
func (handler *RecordHandler) getRecord(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid record id"))
		return
	}

	record, err := handler.service.GetRecord(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.WithETag(writer, record.ETag())
	respond.OK(writer, record)
}

// submitRecordRequest is the POST /records body.
type submitRecordRequest struct {
	PlayerName string  `json:"player"`
	DemonName  string  `json:"demon"`
	Progress   int     `json:"progress"`
	Video      *string `json:"video,omitempty"`
	RawFootage *string `json:"raw_footage,omitempty"`
	Status     string  `json:"status,omitempty"`
	Note       *string `json:"note,omitempty"`
}

/*
POST /api/v1/records.

Description: Submits a new record. Reachable anonymously for a plain
Submitted entry carrying a video; pre-approving, skipping review, or
omitting the video is list-team only (spec.md §4.4.1).

Request (Body): submitRecordRequest

Response:
  - 201: Record: created
  - 403: MissingPermissions / NoThirdPartySubmissions / PlayerBanned
  - 422: InvalidProgress / Non100Extended / SubmitLegacy / RawRequired / SubmissionExists
*/
func (handler *RecordHandler) submitRecord(writer http.ResponseWriter, request *http.Request) {
	var input submitRecordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("player", input.PlayerName)
	v.Required("demon", input.DemonName)
	v.Range("progress", input.Progress, 0, 100)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status := Status(input.Status)
	if input.Status != "" && !status.Valid() {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid record status"))
		return
	}

	submission := Submission{
		IPHash:     hashIP(middleware.RealIP(request)),
		PlayerName: input.PlayerName,
		DemonName:  input.DemonName,
		Progress:   input.Progress,
		Video:      input.Video,
		RawFootage: input.RawFootage,
		Status:     status,
		Note:       input.Note,
	}

	record, err := handler.service.SubmitRecord(request.Context(), requestutil.Principal(request), submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, record)
}

// recordPatchRequest is the PATCH /records/{id} body.
type recordPatchRequest struct {
	Progress   *int    `json:"progress,omitempty"`
	Video      *string `json:"video,omitempty"`
	HasVideo   bool    `json:"-"`
	Status     *string `json:"status,omitempty"`
	PlayerName *string `json:"player,omitempty"`
	DemonName  *string `json:"demon,omitempty"`
	DemonID    *int64  `json:"demon_id,omitempty"`
}

/*
PATCH /api/v1/records/{id}.

Description: Applies any subset of a record's mutable fields in one
transaction. List-helper or above. Requires If-Match.

Request (Body): recordPatchRequest

Response:
  - 200: Record: updated
  - 412/428: precondition failed/required
  - 422: MutuallyExclusive / InvalidProgress
*/
func (handler *RecordHandler) patchRecord(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid record id"))
		return
	}

	record, err := handler.service.GetRecord(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := requestutil.RequireIfMatch(request, record.ETag()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	body, err := io.ReadAll(request.Body)
	if err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Decode into a map first so a present-but-null "video" key can be
	// told apart from an absent one, mirroring HasVideo's role in
	// [RecordPatch].
	raw := map[string]any{}
	if err := json.Unmarshal(body, &raw); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}
	_, hasVideo := raw["video"]

	var input recordPatchRequest
	if err := json.Unmarshal(body, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}
	input.HasVideo = hasVideo

	patch := RecordPatch{
		Progress:   input.Progress,
		Video:      input.Video,
		HasVideo:   input.HasVideo,
		PlayerName: input.PlayerName,
		DemonName:  input.DemonName,
		DemonID:    input.DemonID,
	}
	if input.Status != nil {
		status := Status(*input.Status)
		patch.Status = &status
	}

	updated, err := handler.service.PatchRecord(request.Context(), requestutil.Principal(request), id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

/*
DELETE /api/v1/records/{id}.

Description: Permanently deletes a record, cascading its notes.
List-helper or above.

Response:
  - 204: No Content
*/
func (handler *RecordHandler) deleteRecord(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid record id"))
		return
	}

	if err := handler.service.DeleteRecord(request.Context(), requestutil.Principal(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
GET /api/v1/records/{id}/notes.

Description: Lists every moderator note attached to a record.
List-helper or above.

Response:
  - 200: []RecordNote: success
*/
func (handler *RecordHandler) listNotes(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid record id"))
		return
	}

	notes, err := handler.service.ListRecordNotes(request.Context(), requestutil.Principal(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, notes)
}

/*
POST /api/v1/records/{id}/notes.

Description: Appends a moderator note to a record. List-helper or above.

Request (Body): {"content": string}

Response:
  - 201: RecordNote: created
  - 422: NoteEmpty
*/
func (handler *RecordHandler) addNote(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid record id"))
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	note, err := handler.service.AddRecordNote(request.Context(), requestutil.Principal(request), id, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, note)
}

/*
DELETE /api/v1/records/notes/{noteID}.

Description: Removes a single moderator note by id. List-helper or
above.

Response:
  - 204: No Content
*/
func (handler *RecordHandler) deleteNote(writer http.ResponseWriter, request *http.Request) {
	noteID, err := strconv.ParseInt(requestutil.Param(request, "noteID"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.GenericBadRequest("invalid note id"))
		return
	}

	if err := handler.service.DeleteRecordNote(request.Context(), requestutil.Principal(request), noteID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

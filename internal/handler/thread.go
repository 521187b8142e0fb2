package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"warbler/internal/httputil"
	"warbler/internal/model"
	"warbler/internal/service"
	"warbler/internal/transport/http/middleware"
	"warbler/internal/validator"
)

type ThreadHandler struct {
	threadService *service.ThreadService
	userService   *service.UserService
	validator     *validator.Validator
}

func NewThreadHandler(
	threadService *service.ThreadService,
	userService *service.UserService,
	v *validator.Validator,
) *ThreadHandler {
	return &ThreadHandler{
		threadService: threadService,
		userService:   userService,
		validator:     v,
	}
}

// List returns the acting user's threads
// GET /threads
func (h *ThreadHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access unauthorized")
		return
	}

	threads, err := h.threadService.ListFor(r.Context(), userID)
	if err != nil {
		log.Printf("[ThreadHandler] List: %v", err)
		httputil.WriteInternalError(w, "Failed to list threads")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"threads": threads})
}

// Add resolves (or creates) the thread between the acting user and {user_id}
// POST /threads/add/{user_id}
func (h *ThreadHandler) Add(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access unauthorized")
		return
	}

	otherID, ok := parseIDParam(w, r, "user_id")
	if !ok {
		return
	}

	thread, err := h.threadService.GetOrCreate(r.Context(), actorID, otherID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCannotThreadSelf):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[ThreadHandler] Add: %v", err)
			httputil.WriteInternalError(w, "Failed to open thread")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, thread)
}

// Show returns a thread with the other participant and its messages
// GET /threads/{id}
func (h *ThreadHandler) Show(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access unauthorized")
		return
	}

	threadID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	thread, err := h.threadService.Get(r.Context(), threadID, actorID)
	if err != nil {
		h.writeThreadError(w, err, "Failed to get thread")
		return
	}

	other, err := h.userService.GetByID(r.Context(), thread.OtherUserID(actorID))
	if err != nil {
		log.Printf("[ThreadHandler] Show other user: %v", err)
		httputil.WriteInternalError(w, "Failed to get thread")
		return
	}

	dms, err := h.threadService.MessagesOf(r.Context(), threadID, actorID)
	if err != nil {
		h.writeThreadError(w, err, "Failed to get thread")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"thread": thread,
		"other": model.UserSummary{
			ID:       other.ID,
			Username: other.Username,
			ImageURL: other.ImageURL,
		},
		"dms": dms,
	})
}

// AddDM appends a DM and returns the whole thread as [text, author] pairs,
// matching the exchange the thread page polls.
// POST /threads/{id}/dm/add with body {"text": "..."}
func (h *ThreadHandler) AddDM(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access unauthorized")
		return
	}

	threadID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req model.PostDMRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	if _, err := h.threadService.PostDM(r.Context(), threadID, actorID, req.Text); err != nil {
		h.writeThreadError(w, err, "Failed to post dm")
		return
	}

	dms, err := h.threadService.MessagesOf(r.Context(), threadID, actorID)
	if err != nil {
		h.writeThreadError(w, err, "Failed to post dm")
		return
	}

	pairs := make([][]interface{}, len(dms))
	for i, dm := range dms {
		pairs[i] = []interface{}{dm.Text, dm.AuthorID}
	}

	httputil.WriteJSON(w, http.StatusOK, pairs)
}

func (h *ThreadHandler) writeThreadError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrThreadNotFound):
		httputil.WriteNotFound(w, "Thread not found")
	case errors.Is(err, model.ErrNotInThread):
		httputil.WriteForbidden(w, err.Error())
	case errors.Is(err, model.ErrDMTextRequired):
		httputil.WriteBadRequest(w, err.Error())
	default:
		log.Printf("[ThreadHandler] %s: %v", fallback, err)
		httputil.WriteInternalError(w, fallback)
	}
}

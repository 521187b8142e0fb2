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

type ReactionHandler struct {
	reactionService *service.ReactionService
	validator       *validator.Validator
}

func NewReactionHandler(reactionService *service.ReactionService, v *validator.Validator) *ReactionHandler {
	return &ReactionHandler{
		reactionService: reactionService,
		validator:       v,
	}
}

// Add attaches a reaction for the acting user
// POST /addreaction with body {"type": "...", "msgId": N}
func (h *ReactionHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	if err := h.reactionService.React(r.Context(), userID, req.MsgID, req.Type); err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidReactionType):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrMessageNotFound):
			httputil.WriteNotFound(w, "Message not found")
		case errors.Is(err, model.ErrAlreadyReacted):
			httputil.WriteConflict(w, err.Error())
		default:
			log.Printf("[ReactionHandler] Add: %v", err)
			httputil.WriteInternalError(w, "Failed to add reaction")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"msg": "Added Reaction!"})
}

// Remove deletes a reaction for the acting user
// DELETE /deletereaction with body {"type": "...", "msgId": N}
func (h *ReactionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	if err := h.reactionService.Unreact(r.Context(), userID, req.MsgID, req.Type); err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidReactionType):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrReactionNotFound):
			httputil.WriteNotFound(w, err.Error())
		default:
			log.Printf("[ReactionHandler] Remove: %v", err)
			httputil.WriteInternalError(w, "Failed to delete reaction")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"msg": "Deleted Reaction!"})
}

func (h *ReactionHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (int64, *model.ReactionRequest, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized to complete action")
		return 0, nil, false
	}

	var req model.ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return 0, nil, false
	}

	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return 0, nil, false
	}

	return userID, &req, true
}

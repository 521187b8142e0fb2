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

type MessageHandler struct {
	messageService  *service.MessageService
	reactionService *service.ReactionService
	validator       *validator.Validator
}

func NewMessageHandler(
	messageService *service.MessageService,
	reactionService *service.ReactionService,
	v *validator.Validator,
) *MessageHandler {
	return &MessageHandler{
		messageService:  messageService,
		reactionService: reactionService,
		validator:       v,
	}
}

// Create posts a new message for the acting user
// POST /messages/new
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access unauthorized")
		return
	}

	var req model.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	msg, err := h.messageService.Post(r.Context(), userID, req.Text)
	if err != nil {
		if errors.Is(err, model.ErrMessageTooLong) {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		log.Printf("[MessageHandler] Create: %v", err)
		httputil.WriteInternalError(w, "Failed to post message")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, msg)
}

// Show returns a single message
// GET /messages/{id}
func (h *MessageHandler) Show(w http.ResponseWriter, r *http.Request) {
	messageID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	msg, err := h.messageService.Get(r.Context(), messageID)
	if err != nil {
		if errors.Is(err, model.ErrMessageNotFound) {
			httputil.WriteNotFound(w, "Message not found")
			return
		}
		log.Printf("[MessageHandler] Show: %v", err)
		httputil.WriteInternalError(w, "Failed to get message")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, msg)
}

// Delete removes a message owned by the acting user
// POST /messages/{id}/delete
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access unauthorized")
		return
	}

	messageID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.messageService.Delete(r.Context(), messageID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrMessageNotFound):
			httputil.WriteNotFound(w, "Message not found")
		case errors.Is(err, model.ErrNotMessageOwner):
			httputil.WriteForbidden(w, err.Error())
		default:
			log.Printf("[MessageHandler] Delete: %v", err)
			httputil.WriteInternalError(w, "Failed to delete message")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Message deleted"})
}

// Home serves the feed: the 100 newest messages from the acting user and
// everyone they follow, with the viewer's per-type reaction sets. Anonymous
// visitors get an empty feed.
// GET /
func (h *MessageHandler) Home(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"messages": []model.Message{}})
		return
	}

	messages, err := h.messageService.FeedFor(r.Context(), userID, model.FeedLimit)
	if err != nil {
		log.Printf("[MessageHandler] Home: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to get feed")
		return
	}

	viewerReactions := make(map[string][]int64, len(model.ReactionTypes))
	for _, rt := range model.ReactionTypes {
		ids, err := h.reactionService.MessageIDsOfType(r.Context(), userID, rt)
		if err != nil {
			log.Printf("[MessageHandler] Home reactions: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, "Failed to get feed")
			return
		}
		viewerReactions[rt] = ids
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"messages":         messages,
		"viewer_reactions": viewerReactions,
	})
}

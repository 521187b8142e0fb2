package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"warbler/internal/httputil"
	"warbler/internal/model"
	"warbler/internal/service"
	"warbler/internal/transport/http/middleware"
	"warbler/internal/validator"
)

type UserHandler struct {
	userService     *service.UserService
	messageService  *service.MessageService
	reactionService *service.ReactionService
	followService   *service.FollowService
	validator       *validator.Validator
}

func NewUserHandler(
	userService *service.UserService,
	messageService *service.MessageService,
	reactionService *service.ReactionService,
	followService *service.FollowService,
	v *validator.Validator,
) *UserHandler {
	return &UserHandler{
		userService:     userService,
		messageService:  messageService,
		reactionService: reactionService,
		followService:   followService,
		validator:       v,
	}
}

// List handles the user index, with optional username search
// GET /users?q=
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("[UserHandler] List: %v", err)
		httputil.WriteInternalError(w, "Failed to list users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// Show returns a user's profile with their messages and follow status
// GET /users/{id}
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[UserHandler] Show: %v", err)
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	messages, err := h.messageService.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("[UserHandler] Show messages: %v", err)
		httputil.WriteInternalError(w, "Failed to get messages")
		return
	}

	reacted, err := h.reactionService.ReactedMessages(r.Context(), userID)
	if err != nil {
		log.Printf("[UserHandler] Show reactions: %v", err)
		httputil.WriteInternalError(w, "Failed to get reactions")
		return
	}

	response := map[string]interface{}{
		"user":             user,
		"messages":         messages,
		"reactions_number": len(reacted),
	}

	if viewerID, ok := middleware.GetUserIDFromContext(r.Context()); ok && viewerID != userID {
		isFollowing, err := h.followService.IsFollowing(r.Context(), viewerID, userID)
		if err == nil {
			response["is_following"] = isFollowing
		}
	}

	httputil.WriteJSON(w, http.StatusOK, response)
}

// Reactions returns the messages a user has reacted to, grouped by type for
// the viewer.
// GET /users/{id}/reactions
func (h *UserHandler) Reactions(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access unauthorized")
		return
	}

	userID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.userService.GetByID(r.Context(), userID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[UserHandler] Reactions: %v", err)
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	messages, err := h.reactionService.ReactedMessages(r.Context(), userID)
	if err != nil {
		log.Printf("[UserHandler] Reactions: %v", err)
		httputil.WriteInternalError(w, "Failed to get reactions")
		return
	}

	// The viewer's own per-type reaction sets drive the reaction toggles.
	viewerReactions := make(map[string][]int64, len(model.ReactionTypes))
	for _, rt := range model.ReactionTypes {
		ids, err := h.reactionService.MessageIDsOfType(r.Context(), viewerID, rt)
		if err != nil {
			log.Printf("[UserHandler] Reactions of type %s: %v", rt, err)
			httputil.WriteInternalError(w, "Failed to get reactions")
			return
		}
		viewerReactions[rt] = ids
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"messages":         messages,
		"viewer_reactions": viewerReactions,
	})
}

// UpdateProfile edits the acting user's profile after verifying their
// current password.
// POST /users/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access unauthorized")
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteUnauthorized(w, "Wrong password")
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Username already taken")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Email already taken")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[UserHandler] UpdateProfile: %v", err)
			httputil.WriteInternalError(w, "Failed to update profile")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Delete removes the acting user's account and clears the session.
// POST /users/delete
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Access unauthorized")
		return
	}

	if err := h.userService.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[UserHandler] Delete: %v", err)
		httputil.WriteInternalError(w, "Failed to delete user")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
}

// parseIDParam reads a numeric chi URL parameter, writing a 400 on failure.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid "+name)
		return 0, false
	}
	return id, true
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"warbler/internal/config"
	"warbler/internal/httputil"
	"warbler/internal/model"
	"warbler/internal/service"
	"warbler/internal/transport/http/middleware"
	"warbler/internal/validator"
)

// AuthHandler groups signup/login/logout endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
	validator   *validator.Validator
	config      *config.Config
}

func NewAuthHandler(
	userService *service.UserService,
	authService *service.AuthService,
	v *validator.Validator,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		validator:   v,
		config:      cfg,
	}
}

// sessionResponse is returned by signup and login alongside the cookie.
type sessionResponse struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

// Signup handles account creation
// POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	user, err := h.userService.Signup(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFieldBlank):
			httputil.WriteBadRequest(w, err.Error())
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Username already taken")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Email already taken")
		default:
			httputil.WriteInternalError(w, "Failed to sign up")
		}
		return
	}

	token, err := h.authService.GenerateSessionToken(user.ID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to create session")
		return
	}

	h.setSessionCookie(w, token)
	httputil.WriteJSON(w, http.StatusCreated, sessionResponse{User: user, AccessToken: token})
}

// Login handles user login
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	user, err := h.userService.Authenticate(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Invalid credentials")
			return
		}
		httputil.WriteInternalError(w, "Failed to login")
		return
	}

	token, err := h.authService.GenerateSessionToken(user.ID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to create session")
		return
	}

	h.setSessionCookie(w, token)
	httputil.WriteJSON(w, http.StatusOK, sessionResponse{User: user, AccessToken: token})
}

// Logout clears the session cookie
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"warbler/internal/config"
	"warbler/internal/model"
	"warbler/internal/service"
	"warbler/internal/validator"
)

type stubUserRepo struct {
	createErr error
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = 1
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return nil, model.ErrUserNotFound
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, model.ErrUserNotFound
}

func (s *stubUserRepo) Search(ctx context.Context, q string) ([]model.UserSummary, error) {
	return []model.UserSummary{}, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *model.User) error {
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func newAuthHandler(repo *stubUserRepo) *AuthHandler {
	cfg := &config.Config{SecretKey: "test-secret", SessionMaxAge: 3600}
	return NewAuthHandler(
		service.NewUserService(repo, nil),
		service.NewAuthService(cfg),
		validator.New(),
		cfg,
	)
}

func postSignup(h *AuthHandler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Signup(w, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body)))
	return w
}

func TestSignupHandler(t *testing.T) {
	h := newAuthHandler(&stubUserRepo{})

	w := postSignup(h, `{"username":"alice","email":"alice@example.com","password":"hunter22"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"access_token"`) {
		t.Error("response is missing the access token")
	}
}

func TestSignupHandlerWhitespaceFields(t *testing.T) {
	h := newAuthHandler(&stubUserRepo{})

	// Whitespace-only values pass the required tag but must still be a
	// client error, not a 500.
	w := postSignup(h, `{"username":"   ","email":"alice@example.com","password":"hunter22"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("whitespace username: status = %d, want %d; body: %s",
			w.Code, http.StatusBadRequest, w.Body.String())
	}

	w = postSignup(h, `{"username":"alice","email":"alice@example.com","password":"        "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("whitespace password: status = %d, want %d; body: %s",
			w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestSignupHandlerDuplicateUsername(t *testing.T) {
	h := newAuthHandler(&stubUserRepo{createErr: model.ErrUsernameExists})

	w := postSignup(h, `{"username":"alice","email":"alice@example.com","password":"hunter22"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

type mockAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

type mockUserService struct {
	user       *domain.User
	err        error
	lastUserID string
}

func (m *mockUserService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	m.lastUserID = userID
	return m.err
}

func TestAuthController_SignUp(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		userSvc := &mockUserService{
			user: &domain.User{ID: testUserID, Username: "alice", Email: "alice@example.com"},
		}
		ctrl := NewAuthController(testLogger(), &mockAuthService{}, userSvc)

		body := `{"username":"alice","password":"correct-horse","email":"alice@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		w := httptest.NewRecorder()

		ctrl.SignUp(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
		}
		if strings.Contains(w.Body.String(), "password") {
			t.Fatal("response must not expose password fields")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{}, &mockUserService{})

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"username":"alice"}`))
		w := httptest.NewRecorder()

		ctrl.SignUp(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{}, &mockUserService{err: domain.ErrAlreadyExists})

		body := `{"username":"alice","password":"correct-horse","email":"alice@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		w := httptest.NewRecorder()

		ctrl.SignUp(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
	})
}

func TestAuthController_Login(t *testing.T) {
	t.Run("success returns a token", func(t *testing.T) {
		authSvc := &mockAuthService{
			token: "signed-token",
			user:  &domain.User{ID: testUserID, Username: "alice"},
		}
		ctrl := NewAuthController(testLogger(), authSvc, &mockUserService{})

		body := `{"username":"alice","password":"correct-horse"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()

		ctrl.Login(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		var resp struct {
			Data LoginResponse `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Data.Token != "signed-token" {
			t.Fatalf("expected token %q, got %q", "signed-token", resp.Data.Token)
		}
		if resp.Data.User == nil || resp.Data.User.ID != testUserID {
			t.Fatalf("unexpected user in response: %+v", resp.Data.User)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{err: domain.ErrInvalidCredentials}, &mockUserService{})

		body := `{"username":"alice","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()

		ctrl.Login(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
		var resp helpers.APIResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Error == nil || resp.Error.Code != helpers.ErrCodeUnauthorized {
			t.Fatalf("expected unauthorized error, got %v", resp.Error)
		}
	})
}

func TestAuthController_ChangePassword(t *testing.T) {
	body := `{"old_password":"old-password","new_password":"new-password"}`

	t.Run("success", func(t *testing.T) {
		userSvc := &mockUserService{}
		ctrl := NewAuthController(testLogger(), &mockAuthService{}, userSvc)

		req := httptest.NewRequest(http.MethodPost, "/auth/change-password", strings.NewReader(body))
		req = req.WithContext(middleware.SetUser(req.Context(), testUserID, domain.RoleParticipant))
		w := httptest.NewRecorder()

		ctrl.ChangePassword(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
		}
		if userSvc.lastUserID != testUserID {
			t.Fatalf("expected user id %q, got %q", testUserID, userSvc.lastUserID)
		}
	})

	t.Run("no authenticated user", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{}, &mockUserService{})

		req := httptest.NewRequest(http.MethodPost, "/auth/change-password", strings.NewReader(body))
		w := httptest.NewRecorder()

		ctrl.ChangePassword(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	t.Run("wrong old password", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{}, &mockUserService{err: domain.ErrInvalidCredentials})

		req := httptest.NewRequest(http.MethodPost, "/auth/change-password", strings.NewReader(body))
		req = req.WithContext(middleware.SetUser(req.Context(), testUserID, domain.RoleParticipant))
		w := httptest.NewRecorder()

		ctrl.ChangePassword(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})
}

package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sum1ght/schand/internal/auth"
	"github.com/Sum1ght/schand/internal/users"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/types"
)

type stubAuthService struct {
	lastRegister auth.RegisterInput
	lastLogin    auth.LoginInput
	registerResp users.UserDTO
	loginResp    auth.LoginDTO
	registerErr  error
	loginErr     error
	updateErr    error
}

func (s *stubAuthService) Register(ctx context.Context, input auth.RegisterInput) (users.UserDTO, error) {
	s.lastRegister = input
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, input auth.LoginInput) (auth.LoginDTO, error) {
	s.lastLogin = input
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) UpdatePassword(ctx context.Context, caller types.Caller, input auth.UpdatePasswordInput) error {
	return s.updateErr
}

func TestAuthRegister(t *testing.T) {
	svc := &stubAuthService{registerResp: users.UserDTO{ID: 7, Username: "sam"}}
	handler := AuthRegister(svc, nil)

	body := `{"username":"sam","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastRegister.Username != "sam" {
		t.Fatalf("expected username forwarded, got %q", svc.lastRegister.Username)
	}
}

func TestAuthRegisterRejectsShortPassword(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthRegister(svc, nil)

	body := `{"username":"sam","password":"abc"}`
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if svc.lastRegister.Username != "" {
		t.Fatalf("service should not be called on invalid payload")
	}
}

func TestAuthLogin(t *testing.T) {
	svc := &stubAuthService{loginResp: auth.LoginDTO{Token: "tok", User: users.UserDTO{ID: 1}}}
	handler := AuthLogin(svc, nil)

	body := `{"username":"sam","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data auth.LoginDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Token != "tok" {
		t.Fatalf("expected token in response, got %q", envelope.Data.Token)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password")}
	handler := AuthLogin(svc, nil)

	body := `{"username":"sam","password":"wrong-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

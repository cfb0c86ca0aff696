// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mpetrenko/shroud/internal/service"
	"github.com/mpetrenko/shroud/internal/store"
	"github.com/mpetrenko/shroud/internal/utils"
	"github.com/mpetrenko/shroud/models"
)

// authedRequest builds a request that already passed the auth middleware.
func authedRequest(method, target, body string, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)
	return req.WithContext(ctx)
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) models.StatusResponse {
	t.Helper()
	var resp models.StatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return resp
}

func TestRegister_SetsAuthorizationHeader(t *testing.T) {
	h := newTestHandler(&mockServices{
		registerUserFn: func(_ context.Context, req models.RegisterRequest) (models.User, error) {
			return models.User{UserID: 1, Email: req.Email}, nil
		},
		createTokenFn: func(context.Context, models.User) (models.Token, error) {
			return models.Token{UserID: 1, SignedString: "signed.jwt"}, nil
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/register",
		strings.NewReader(`{"email":"john@example.com","password":"correct horse"}`))
	h.register(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Authorization"); got != "Bearer signed.jwt" {
		t.Errorf("expected bearer header, got %q", got)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newTestHandler(&mockServices{
		registerUserFn: func(context.Context, models.RegisterRequest) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/register",
		strings.NewReader(`{"email":"john@example.com","password":"correct horse"}`))
	h.register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newTestHandler(&mockServices{
		loginFn: func(context.Context, models.LoginRequest) (models.User, error) {
			return models.User{}, service.ErrWrongPassword
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/login",
		strings.NewReader(`{"email":"john@example.com","password":"wrong"}`))
	h.login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestVerifyPin_NoMatchIsStillOK(t *testing.T) {
	h := newTestHandler(&mockServices{
		verifyPinFn: func(context.Context, int64, string) (models.VerifyPinResponse, error) {
			return models.VerifyPinResponse{Success: false}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.verifyPin(rec, authedRequest(http.MethodPost, "/api/security/pins/verify", `{"pin":"0000"}`, 1))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp models.VerifyPinResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	if resp.Success || resp.Mode != nil {
		t.Errorf("expected negative verification result, got %+v", resp)
	}
}

func TestVerifyPin_PinsNotConfigured(t *testing.T) {
	h := newTestHandler(&mockServices{
		verifyPinFn: func(context.Context, int64, string) (models.VerifyPinResponse, error) {
			return models.VerifyPinResponse{}, service.ErrPinsNotConfigured
		},
	})

	rec := httptest.NewRecorder()
	h.verifyPin(rec, authedRequest(http.MethodPost, "/api/security/pins/verify", `{"pin":"0000"}`, 1))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTrigger_CreatesAlert(t *testing.T) {
	h := newTestHandler(&mockServices{
		activateFn: func(_ context.Context, userID int64, alertType models.AlertType, _ models.AlertDetails) (string, error) {
			if userID != 1 || alertType != models.AlertPanicButton {
				t.Errorf("unexpected activation args: %d %s", userID, alertType)
			}
			return "alert-1", nil
		},
	})

	rec := httptest.NewRecorder()
	h.trigger(rec, authedRequest(http.MethodPost, "/api/security/triggers", `{"alert_type":"panic_button"}`, 1))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp models.TriggerResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	if resp.AlertID != "alert-1" {
		t.Errorf("expected alert id alert-1, got %q", resp.AlertID)
	}
}

func TestTrigger_RejectsReservedAlertType(t *testing.T) {
	h := newTestHandler(&mockServices{
		activateFn: func(context.Context, int64, models.AlertType, models.AlertDetails) (string, error) {
			t.Fatal("a reserved alert type must not reach the mode service")
			return "", nil
		},
	})

	rec := httptest.NewRecorder()
	h.trigger(rec, authedRequest(http.MethodPost, "/api/security/triggers", `{"alert_type":"pin_security_used"}`, 1))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSendCommand_UndeliverableIsStillOK(t *testing.T) {
	h := newTestHandler(&mockServices{
		sendCommandFn: func(context.Context, int64, string, models.DeviceCommand, map[string]any) (models.CommandResult, error) {
			return models.CommandResult{Success: false, Message: "device has no registered push token"}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.lockDevice(rec, authedRequest(http.MethodPost, "/api/security/commands/lock", `{"alert_id":"alert-1"}`, 1))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeStatus(t, rec); resp.Success {
		t.Errorf("expected success=false, got %+v", resp)
	}
}

func TestSendCommand_GatewayFailure(t *testing.T) {
	h := newTestHandler(&mockServices{
		sendCommandFn: func(context.Context, int64, string, models.DeviceCommand, map[string]any) (models.CommandResult, error) {
			return models.CommandResult{}, service.ErrPushUnavailable
		},
	})

	rec := httptest.NewRecorder()
	h.wipeData(rec, authedRequest(http.MethodPost, "/api/security/commands/wipe", `{"alert_id":"alert-1"}`, 1))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestSendVerificationCode_RequiresPhoneNumber(t *testing.T) {
	h := newTestHandler(&mockServices{
		issueFn: func(context.Context, int64, string) (string, error) {
			t.Fatal("no code may be issued without a phone number")
			return "", nil
		},
	})

	rec := httptest.NewRecorder()
	h.sendVerificationCode(rec, authedRequest(http.MethodPost, "/api/phone/code", `{}`, 1))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestVerifyCode_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"expired challenge", service.ErrChallengeExpired, http.StatusGone},
		{"locked challenge", service.ErrChallengeLocked, http.StatusTooManyRequests},
		{"mismatched code", service.ErrCodeMismatch, http.StatusBadRequest},
		{"no challenge", store.ErrNoChallengeWasFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(&mockServices{
				verifyFn: func(context.Context, int64, string) error { return tc.err },
			})

			rec := httptest.NewRecorder()
			h.verifyCode(rec, authedRequest(http.MethodPost, "/api/phone/verify", `{"code":"123456"}`, 1))

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestRoutes_UnauthenticatedRequestIsRejected(t *testing.T) {
	h := newTestHandler(&mockServices{})
	router := h.Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/security/alerts", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRoutes_HealthNeedsNoToken(t *testing.T) {
	h := newTestHandler(&mockServices{})
	router := h.Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeStatus(t, rec); !resp.Success {
		t.Errorf("expected success=true, got %+v", resp)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

package service

import (
	"context"
	"errors"
	"time"

	"github.com/mpetrenko/shroud/internal/push"
	"github.com/mpetrenko/shroud/models"
)

var errStorage = errors.New("storage error")

type pushMessage = push.Message

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn       func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn  func(ctx context.Context, email string) (models.User, error)
	getUserFn          func(ctx context.Context, userID int64) (models.User, error)
	savePinHashesFn    func(ctx context.Context, userID int64, normalHash, securityHash string) error
	setModeFn          func(ctx context.Context, userID int64, mode models.Mode, alertActive bool, activatedAt *time.Time) error
	setPushTokenFn     func(ctx context.Context, userID int64, token *string) error
	bumpUnlockStatsFn  func(ctx context.Context, userID int64, kind models.EventKind, mode models.Mode, at time.Time) error
	setVerifiedPhoneFn func(ctx context.Context, userID int64, phone string) error
	deleteUserFn       func(ctx context.Context, userID int64) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) GetUser(ctx context.Context, userID int64) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockUserRepository) SavePinHashes(ctx context.Context, userID int64, normalHash, securityHash string) error {
	if m.savePinHashesFn != nil {
		return m.savePinHashesFn(ctx, userID, normalHash, securityHash)
	}
	return nil
}

func (m *mockUserRepository) SetMode(ctx context.Context, userID int64, mode models.Mode, alertActive bool, activatedAt *time.Time) error {
	if m.setModeFn != nil {
		return m.setModeFn(ctx, userID, mode, alertActive, activatedAt)
	}
	return nil
}

func (m *mockUserRepository) SetPushToken(ctx context.Context, userID int64, token *string) error {
	if m.setPushTokenFn != nil {
		return m.setPushTokenFn(ctx, userID, token)
	}
	return nil
}

func (m *mockUserRepository) BumpUnlockStats(ctx context.Context, userID int64, kind models.EventKind, mode models.Mode, at time.Time) error {
	if m.bumpUnlockStatsFn != nil {
		return m.bumpUnlockStatsFn(ctx, userID, kind, mode, at)
	}
	return nil
}

func (m *mockUserRepository) SetVerifiedPhone(ctx context.Context, userID int64, phone string) error {
	if m.setVerifiedPhoneFn != nil {
		return m.setVerifiedPhoneFn(ctx, userID, phone)
	}
	return nil
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.AlertRepository
// ─────────────────────────────────────────────

type mockAlertRepository struct {
	createFn         func(ctx context.Context, alert models.SecurityAlert) (models.SecurityAlert, error)
	getFn            func(ctx context.Context, userID int64, alertID string) (models.SecurityAlert, error)
	listUnresolvedFn func(ctx context.Context, userID int64, limit int) ([]models.SecurityAlert, error)
	updateFn         func(ctx context.Context, userID int64, alertID string, patch models.AlertPatch) error
}

func (m *mockAlertRepository) Create(ctx context.Context, alert models.SecurityAlert) (models.SecurityAlert, error) {
	if m.createFn != nil {
		return m.createFn(ctx, alert)
	}
	return alert, nil
}

func (m *mockAlertRepository) Get(ctx context.Context, userID int64, alertID string) (models.SecurityAlert, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, alertID)
	}
	return models.SecurityAlert{ID: alertID, UserID: userID}, nil
}

func (m *mockAlertRepository) ListUnresolved(ctx context.Context, userID int64, limit int) ([]models.SecurityAlert, error) {
	if m.listUnresolvedFn != nil {
		return m.listUnresolvedFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockAlertRepository) Update(ctx context.Context, userID int64, alertID string, patch models.AlertPatch) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, alertID, patch)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.OTPRepository
// ─────────────────────────────────────────────

type mockOTPRepository struct {
	upsertFn            func(ctx context.Context, challenge models.OTPChallenge) error
	getFn               func(ctx context.Context, userID int64) (models.OTPChallenge, error)
	incrementAttemptsFn func(ctx context.Context, userID int64) (int, error)
	deleteFn            func(ctx context.Context, userID int64) error
}

func (m *mockOTPRepository) Upsert(ctx context.Context, challenge models.OTPChallenge) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, challenge)
	}
	return nil
}

func (m *mockOTPRepository) Get(ctx context.Context, userID int64) (models.OTPChallenge, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return models.OTPChallenge{}, nil
}

func (m *mockOTPRepository) IncrementAttempts(ctx context.Context, userID int64) (int, error) {
	if m.incrementAttemptsFn != nil {
		return m.incrementAttemptsFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockOTPRepository) Delete(ctx context.Context, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.EventRepository / store.AppRepository
// ─────────────────────────────────────────────

type mockEventRepository struct {
	appendFn     func(ctx context.Context, event models.UnlockEvent) error
	listRecentFn func(ctx context.Context, userID int64, limit int) ([]models.UnlockEvent, error)
}

func (m *mockEventRepository) Append(ctx context.Context, event models.UnlockEvent) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]models.UnlockEvent, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, userID, limit)
	}
	return nil, nil
}

type mockAppRepository struct {
	replaceFn func(ctx context.Context, userID int64, apps []models.ProtectedApp) (int, error)
	listFn    func(ctx context.Context, userID int64) ([]models.ProtectedApp, error)
}

func (m *mockAppRepository) Replace(ctx context.Context, userID int64, apps []models.ProtectedApp) (int, error) {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, userID, apps)
	}
	return len(apps), nil
}

func (m *mockAppRepository) List(ctx context.Context, userID int64) ([]models.ProtectedApp, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.Transactor
// ─────────────────────────────────────────────

// mockTransactor runs fn inline so repository mocks observe every call made
// inside the "transaction".
type mockTransactor struct {
	withinFn func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withinFn != nil {
		return m.withinFn(ctx, fn)
	}
	return fn(ctx)
}

// ─────────────────────────────────────────────
// Mock: push.Sender / sms.Sender
// ─────────────────────────────────────────────

type mockPushSender struct {
	sendFn func(ctx context.Context, msg pushMessage) error
	sent   []pushMessage
}

func (m *mockPushSender) Send(ctx context.Context, msg pushMessage) error {
	m.sent = append(m.sent, msg)
	if m.sendFn != nil {
		return m.sendFn(ctx, msg)
	}
	return nil
}

type mockSMSSender struct {
	sendFn func(ctx context.Context, phoneNumber, text string) error
}

func (m *mockSMSSender) Send(ctx context.Context, phoneNumber, text string) error {
	if m.sendFn != nil {
		return m.sendFn(ctx, phoneNumber, text)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: DispatchService (for mode/credential tests)
// ─────────────────────────────────────────────

type mockDispatchService struct {
	sendCommandFn          func(ctx context.Context, userID int64, alertID string, command models.DeviceCommand, payload map[string]any) (models.CommandResult, error)
	sendPushNotificationFn func(ctx context.Context, userID int64, title, body string, data map[string]any) models.CommandResult
	updatePushTokenFn      func(ctx context.Context, userID int64, token string) error
}

func (m *mockDispatchService) SendCommand(ctx context.Context, userID int64, alertID string, command models.DeviceCommand, payload map[string]any) (models.CommandResult, error) {
	if m.sendCommandFn != nil {
		return m.sendCommandFn(ctx, userID, alertID, command, payload)
	}
	return models.CommandResult{Success: true}, nil
}

func (m *mockDispatchService) SendPushNotification(ctx context.Context, userID int64, title, body string, data map[string]any) models.CommandResult {
	if m.sendPushNotificationFn != nil {
		return m.sendPushNotificationFn(ctx, userID, title, body, data)
	}
	return models.CommandResult{Success: true}
}

func (m *mockDispatchService) UpdatePushToken(ctx context.Context, userID int64, token string) error {
	if m.updatePushTokenFn != nil {
		return m.updatePushTokenFn(ctx, userID, token)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: ModeService (for credential tests)
// ─────────────────────────────────────────────

type mockModeService struct {
	activateFn         func(ctx context.Context, userID int64, alertType models.AlertType, details models.AlertDetails) (string, error)
	deactivateFn       func(ctx context.Context, userID int64, alertID string, resolution models.ResolutionType) error
	unresolvedAlertsFn func(ctx context.Context, userID int64) ([]models.SecurityAlert, error)
}

func (m *mockModeService) Activate(ctx context.Context, userID int64, alertType models.AlertType, details models.AlertDetails) (string, error) {
	if m.activateFn != nil {
		return m.activateFn(ctx, userID, alertType, details)
	}
	return "alert-id", nil
}

func (m *mockModeService) Deactivate(ctx context.Context, userID int64, alertID string, resolution models.ResolutionType) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, userID, alertID, resolution)
	}
	return nil
}

func (m *mockModeService) UnresolvedAlerts(ctx context.Context, userID int64) ([]models.SecurityAlert, error) {
	if m.unresolvedAlertsFn != nil {
		return m.unresolvedAlertsFn(ctx, userID)
	}
	return nil, nil
}

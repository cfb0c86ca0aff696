package http

import (
	"context"

	"github.com/mpetrenko/shroud/internal/service"
	"github.com/mpetrenko/shroud/models"
)

// mockServices implements every service interface through optional func
// fields. A nil field falls back to a benign zero-value return so each test
// only wires the calls it cares about.
type mockServices struct {
	registerUserFn func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn        func(ctx context.Context, req models.LoginRequest) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
	deleteFn       func(ctx context.Context, userID int64) error

	savePinsFn          func(ctx context.Context, userID int64, req models.SavePinsRequest) error
	verifyPinFn         func(ctx context.Context, userID int64, pin string) (models.VerifyPinResponse, error)
	saveProtectedAppsFn func(ctx context.Context, userID int64, apps []models.ProtectedApp) (int, error)
	activityFeedFn      func(ctx context.Context, userID int64) ([]models.UnlockEvent, error)

	activateFn         func(ctx context.Context, userID int64, alertType models.AlertType, details models.AlertDetails) (string, error)
	deactivateFn       func(ctx context.Context, userID int64, alertID string, resolution models.ResolutionType) error
	unresolvedAlertsFn func(ctx context.Context, userID int64) ([]models.SecurityAlert, error)

	sendCommandFn          func(ctx context.Context, userID int64, alertID string, command models.DeviceCommand, payload map[string]any) (models.CommandResult, error)
	sendPushNotificationFn func(ctx context.Context, userID int64, title, body string, data map[string]any) models.CommandResult
	updatePushTokenFn      func(ctx context.Context, userID int64, token string) error

	issueFn  func(ctx context.Context, userID int64, phoneNumber string) (string, error)
	verifyFn func(ctx context.Context, userID int64, code string) error
}

func (m *mockServices) services() *service.Services {
	return &service.Services{
		AuthService:       m,
		CredentialService: m,
		ModeService:       m,
		DispatchService:   m,
		OTPService:        m,
	}
}

func (m *mockServices) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if m.registerUserFn != nil {
		return m.registerUserFn(ctx, req)
	}
	return models.User{}, nil
}

func (m *mockServices) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req)
	}
	return models.User{}, nil
}

func (m *mockServices) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{}, nil
}

func (m *mockServices) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{}, nil
}

func (m *mockServices) DeleteAccount(ctx context.Context, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return nil
}

func (m *mockServices) SavePins(ctx context.Context, userID int64, req models.SavePinsRequest) error {
	if m.savePinsFn != nil {
		return m.savePinsFn(ctx, userID, req)
	}
	return nil
}

func (m *mockServices) VerifyPin(ctx context.Context, userID int64, pin string) (models.VerifyPinResponse, error) {
	if m.verifyPinFn != nil {
		return m.verifyPinFn(ctx, userID, pin)
	}
	return models.VerifyPinResponse{}, nil
}

func (m *mockServices) SaveProtectedApps(ctx context.Context, userID int64, apps []models.ProtectedApp) (int, error) {
	if m.saveProtectedAppsFn != nil {
		return m.saveProtectedAppsFn(ctx, userID, apps)
	}
	return 0, nil
}

func (m *mockServices) ActivityFeed(ctx context.Context, userID int64) ([]models.UnlockEvent, error) {
	if m.activityFeedFn != nil {
		return m.activityFeedFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockServices) Activate(ctx context.Context, userID int64, alertType models.AlertType, details models.AlertDetails) (string, error) {
	if m.activateFn != nil {
		return m.activateFn(ctx, userID, alertType, details)
	}
	return "", nil
}

func (m *mockServices) Deactivate(ctx context.Context, userID int64, alertID string, resolution models.ResolutionType) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, userID, alertID, resolution)
	}
	return nil
}

func (m *mockServices) UnresolvedAlerts(ctx context.Context, userID int64) ([]models.SecurityAlert, error) {
	if m.unresolvedAlertsFn != nil {
		return m.unresolvedAlertsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockServices) SendCommand(ctx context.Context, userID int64, alertID string, command models.DeviceCommand, payload map[string]any) (models.CommandResult, error) {
	if m.sendCommandFn != nil {
		return m.sendCommandFn(ctx, userID, alertID, command, payload)
	}
	return models.CommandResult{Success: true}, nil
}

func (m *mockServices) SendPushNotification(ctx context.Context, userID int64, title, body string, data map[string]any) models.CommandResult {
	if m.sendPushNotificationFn != nil {
		return m.sendPushNotificationFn(ctx, userID, title, body, data)
	}
	return models.CommandResult{Success: true}
}

func (m *mockServices) UpdatePushToken(ctx context.Context, userID int64, token string) error {
	if m.updatePushTokenFn != nil {
		return m.updatePushTokenFn(ctx, userID, token)
	}
	return nil
}

func (m *mockServices) Issue(ctx context.Context, userID int64, phoneNumber string) (string, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, userID, phoneNumber)
	}
	return "123456", nil
}

func (m *mockServices) Verify(ctx context.Context, userID int64, code string) error {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, userID, code)
	}
	return nil
}

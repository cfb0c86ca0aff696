// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/models"
)

func newTestModeService(users *mockUserRepository, alerts *mockAlertRepository, dispatch *mockDispatchService) *modeService {
	return &modeService{
		userRepository:  users,
		alertRepository: alerts,
		transactor:      &mockTransactor{},
		dispatch:        dispatch,
		logger:          logger.Nop(),
	}
}

func TestModeService_Activate_CreatesAlertAndSwitchesMode(t *testing.T) {
	var createdAlert models.SecurityAlert
	alerts := &mockAlertRepository{
		createFn: func(_ context.Context, alert models.SecurityAlert) (models.SecurityAlert, error) {
			createdAlert = alert
			return alert, nil
		},
	}
	var modeSet bool
	users := &mockUserRepository{
		setModeFn: func(_ context.Context, userID int64, mode models.Mode, alertActive bool, activatedAt *time.Time) error {
			assert.Equal(t, int64(1), userID)
			assert.Equal(t, models.ModeSecurity, mode)
			assert.True(t, alertActive)
			assert.NotNil(t, activatedAt)
			modeSet = true
			return nil
		},
	}
	var notified bool
	dispatch := &mockDispatchService{
		sendPushNotificationFn: func(_ context.Context, _ int64, title, _ string, data map[string]any) models.CommandResult {
			assert.Equal(t, "Security mode activated", title)
			notified = true
			return models.CommandResult{Success: true}
		},
	}
	svc := newTestModeService(users, alerts, dispatch)

	alertID, err := svc.Activate(context.Background(), 1, models.AlertPanicButton, models.PanicDetails{Source: "app"})

	require.NoError(t, err)
	assert.Equal(t, createdAlert.ID, alertID)
	assert.Equal(t, models.AlertPanicButton, createdAlert.Type)
	assert.Equal(t, models.AlertStatusActive, createdAlert.Status)
	assert.False(t, createdAlert.Resolved)
	assert.Equal(t, map[string]any{"source": "app"}, createdAlert.Details)
	assert.True(t, modeSet)
	assert.True(t, notified)
}

func TestModeService_Activate_AlertWriteFailureRollsBack(t *testing.T) {
	alerts := &mockAlertRepository{
		createFn: func(context.Context, models.SecurityAlert) (models.SecurityAlert, error) {
			return models.SecurityAlert{}, errStorage
		},
	}
	users := &mockUserRepository{
		setModeFn: func(context.Context, int64, models.Mode, bool, *time.Time) error {
			t.Fatal("mode must not be switched when the alert write fails")
			return nil
		},
	}
	dispatch := &mockDispatchService{
		sendPushNotificationFn: func(context.Context, int64, string, string, map[string]any) models.CommandResult {
			t.Fatal("no notification may be sent when activation fails")
			return models.CommandResult{}
		},
	}
	svc := newTestModeService(users, alerts, dispatch)

	_, err := svc.Activate(context.Background(), 1, models.AlertAbruptMovement, nil)
	assert.ErrorIs(t, err, errStorage)
}

func TestModeService_Activate_NotificationFailureDoesNotFail(t *testing.T) {
	dispatch := &mockDispatchService{
		sendPushNotificationFn: func(context.Context, int64, string, string, map[string]any) models.CommandResult {
			return models.CommandResult{Success: false, Message: "push delivery failed"}
		},
	}
	svc := newTestModeService(&mockUserRepository{}, &mockAlertRepository{}, dispatch)

	alertID, err := svc.Activate(context.Background(), 1, models.AlertWebConsole, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, alertID)
}

func TestModeService_Deactivate_RequiresAlertID(t *testing.T) {
	svc := newTestModeService(&mockUserRepository{}, &mockAlertRepository{}, &mockDispatchService{})

	err := svc.Deactivate(context.Background(), 1, "", models.ResolutionFalseAlarm)
	assert.ErrorIs(t, err, ErrAlertIDRequired)
}

func TestModeService_Deactivate_ResolvesAndResetsMode(t *testing.T) {
	var patch models.AlertPatch
	alerts := &mockAlertRepository{
		getFn: func(_ context.Context, userID int64, alertID string) (models.SecurityAlert, error) {
			return models.SecurityAlert{ID: alertID, UserID: userID, Status: models.AlertStatusActive}, nil
		},
		updateFn: func(_ context.Context, _ int64, alertID string, p models.AlertPatch) error {
			assert.Equal(t, "alert-1", alertID)
			patch = p
			return nil
		},
	}
	var modeReset bool
	users := &mockUserRepository{
		setModeFn: func(_ context.Context, _ int64, mode models.Mode, alertActive bool, activatedAt *time.Time) error {
			assert.Equal(t, models.ModeNormal, mode)
			assert.False(t, alertActive)
			assert.Nil(t, activatedAt)
			modeReset = true
			return nil
		},
	}
	var commanded models.DeviceCommand
	dispatch := &mockDispatchService{
		sendCommandFn: func(_ context.Context, _ int64, _ string, command models.DeviceCommand, _ map[string]any) (models.CommandResult, error) {
			commanded = command
			return models.CommandResult{Success: true}, nil
		},
	}
	svc := newTestModeService(users, alerts, dispatch)

	err := svc.Deactivate(context.Background(), 1, "alert-1", "")

	require.NoError(t, err)
	require.NotNil(t, patch.Status)
	assert.Equal(t, models.AlertStatusResolved, *patch.Status)
	require.NotNil(t, patch.Resolved)
	assert.True(t, *patch.Resolved)
	require.NotNil(t, patch.ResolutionType)
	// Unspecified resolution defaults to false_alarm.
	assert.Equal(t, models.ResolutionFalseAlarm, *patch.ResolutionType)
	assert.NotNil(t, patch.ResolvedAt)
	assert.True(t, modeReset)
	assert.Equal(t, models.CommandExitSecurity, commanded)
}

func TestModeService_Deactivate_SecondCallSkipsResolutionPatch(t *testing.T) {
	resolvedAt := time.Now().Add(-time.Hour)
	resolution := models.ResolutionUnlockedSuccessfully
	alerts := &mockAlertRepository{
		getFn: func(_ context.Context, userID int64, alertID string) (models.SecurityAlert, error) {
			return models.SecurityAlert{
				ID:             alertID,
				UserID:         userID,
				Status:         models.AlertStatusResolved,
				Resolved:       true,
				ResolutionType: &resolution,
				ResolvedAt:     &resolvedAt,
			}, nil
		},
		updateFn: func(context.Context, int64, string, models.AlertPatch) error {
			t.Fatal("an already-resolved alert must not be re-stamped")
			return nil
		},
	}
	var modeReset bool
	users := &mockUserRepository{
		setModeFn: func(context.Context, int64, models.Mode, bool, *time.Time) error {
			modeReset = true
			return nil
		},
	}
	svc := newTestModeService(users, alerts, &mockDispatchService{})

	err := svc.Deactivate(context.Background(), 1, "alert-1", models.ResolutionFalseAlarm)

	require.NoError(t, err)
	assert.True(t, modeReset)
}

func TestModeService_Deactivate_UnknownAlert(t *testing.T) {
	alerts := &mockAlertRepository{
		getFn: func(context.Context, int64, string) (models.SecurityAlert, error) {
			return models.SecurityAlert{}, errStorage
		},
	}
	users := &mockUserRepository{
		setModeFn: func(context.Context, int64, models.Mode, bool, *time.Time) error {
			t.Fatal("mode must stay untouched when the alert lookup fails")
			return nil
		},
	}
	svc := newTestModeService(users, alerts, &mockDispatchService{})

	err := svc.Deactivate(context.Background(), 1, "missing", models.ResolutionFalseAlarm)
	assert.ErrorIs(t, err, errStorage)
}

func TestModeService_UnresolvedAlerts(t *testing.T) {
	alerts := &mockAlertRepository{
		listUnresolvedFn: func(_ context.Context, userID int64, limit int) ([]models.SecurityAlert, error) {
			assert.Equal(t, int64(1), userID)
			assert.Equal(t, unresolvedAlertsLimit, limit)
			return []models.SecurityAlert{{ID: "a1"}}, nil
		},
	}
	svc := newTestModeService(&mockUserRepository{}, alerts, &mockDispatchService{})

	list, err := svc.UnresolvedAlerts(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].ID)
}

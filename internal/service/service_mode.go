package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/store"
	"github.com/mpetrenko/shroud/models"
)

// unresolvedAlertsLimit bounds alert listings returned to clients.
const unresolvedAlertsLimit = 10

// modeService is the normal ⇄ security state machine. Every security-mode
// trigger in the system — security PIN, motion sensor, panic button, web
// console — funnels through Activate; Deactivate is the only way back to
// normal mode.
//
// Atomicity model: each call pairs its alert write with its user write
// inside one Transactor transaction, so the pair commits or rolls back
// together. There is NO isolation between two concurrent calls for the same
// user: simultaneous triggers each create their own alert and the user's
// mode fields go to the last writer. Deactivate resolves only the alert id
// it was given; other active alerts stay unresolved even though the user is
// back in normal mode. This reproduces the observed upstream behavior
// rather than enforcing a single-active-alert constraint.
type modeService struct {
	userRepository  store.UserRepository
	alertRepository store.AlertRepository
	transactor      store.Transactor
	dispatch        DispatchService
	logger          *logger.Logger
}

// NewModeService constructs a ModeService. The Transactor must be the one
// backing both repositories, otherwise the paired writes are not atomic.
func NewModeService(users store.UserRepository, alerts store.AlertRepository, transactor store.Transactor, dispatch DispatchService, logger *logger.Logger) ModeService {
	return &modeService{
		userRepository:  users,
		alertRepository: alerts,
		transactor:      transactor,
		dispatch:        dispatch,
		logger:          logger,
	}
}

// Activate atomically creates an active alert for the trigger and switches
// the user into security mode, then best-effort notifies the owner with a
// visible push. A notification failure never rolls back the transition.
//
// Returns the new alert's id.
func (m *modeService) Activate(ctx context.Context, userID int64, alertType models.AlertType, details models.AlertDetails) (string, error) {
	log := logger.FromContext(ctx)

	if alertType == "" {
		return "", ErrInvalidDataProvided
	}

	now := time.Now()
	alert := models.SecurityAlert{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      alertType,
		Timestamp: now,
		Status:    models.AlertStatusActive,
		Resolved:  false,
	}
	if details != nil {
		alert.Details = details.Bag()
	}

	err := m.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := m.alertRepository.Create(ctx, alert); err != nil {
			return err
		}
		return m.userRepository.SetMode(ctx, userID, models.ModeSecurity, true, &now)
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("type", string(alertType)).Msg("error activating security mode")
		return "", fmt.Errorf("error activating security mode: %w", err)
	}

	log.Info().
		Int64("user_id", userID).
		Str("alert_id", alert.ID).
		Str("type", string(alertType)).
		Msg("security mode activated")

	// Best-effort owner notification; failure is already logged inside the
	// dispatcher.
	m.dispatch.SendPushNotification(ctx, userID,
		"Security mode activated",
		fmt.Sprintf("Trigger: %s", alertType),
		map[string]any{"alert_id": alert.ID, "alert_type": string(alertType)},
	)

	return alert.ID, nil
}

// Deactivate atomically resolves the named alert and returns the user to
// normal mode, then best-effort commands the device to leave disguise mode.
//
// The alert id is required; calls without one fail with ErrAlertIDRequired
// before any mutation.
func (m *modeService) Deactivate(ctx context.Context, userID int64, alertID string, resolution models.ResolutionType) error {
	log := logger.FromContext(ctx)

	if alertID == "" {
		return ErrAlertIDRequired
	}
	if resolution == "" {
		resolution = models.ResolutionFalseAlarm
	}

	now := time.Now()
	resolved := true
	status := models.AlertStatusResolved

	err := m.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		alert, err := m.alertRepository.Get(ctx, userID, alertID)
		if err != nil {
			return err
		}

		// Repeating a deactivation still resets the user record but must
		// not re-stamp the resolution fields.
		if alert.Status != models.AlertStatusResolved {
			err := m.alertRepository.Update(ctx, userID, alertID, models.AlertPatch{
				Status:         &status,
				Resolved:       &resolved,
				ResolutionType: &resolution,
				ResolvedAt:     &now,
			})
			if err != nil {
				return err
			}
		}

		return m.userRepository.SetMode(ctx, userID, models.ModeNormal, false, nil)
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("alert_id", alertID).Msg("error deactivating security mode")
		return fmt.Errorf("error deactivating security mode: %w", err)
	}

	log.Info().
		Int64("user_id", userID).
		Str("alert_id", alertID).
		Str("resolution", string(resolution)).
		Msg("security mode deactivated")

	// Best-effort: tell the device to drop the disguise. The user record is
	// already back in normal mode whether or not this lands.
	result, err := m.dispatch.SendCommand(ctx, userID, alertID, models.CommandExitSecurity, nil)
	if err != nil || !result.Success {
		log.Warn().
			Int64("user_id", userID).
			Str("alert_id", alertID).
			Err(err).
			Msg("exit-security command not delivered")
	}

	return nil
}

// UnresolvedAlerts lists the user's active alerts, newest first.
func (m *modeService) UnresolvedAlerts(ctx context.Context, userID int64) ([]models.SecurityAlert, error) {
	log := logger.FromContext(ctx)

	alerts, err := m.alertRepository.ListUnresolved(ctx, userID, unresolvedAlertsLimit)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error listing unresolved alerts")
		return nil, fmt.Errorf("error listing unresolved alerts: %w", err)
	}

	return alerts, nil
}

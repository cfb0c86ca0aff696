package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/push"
	"github.com/mpetrenko/shroud/internal/store"
	"github.com/mpetrenko/shroud/models"
)

// dispatchService is the concrete implementation of DispatchService: the
// command dispatcher of the system.
//
// Delivery guarantees stop at the push provider. The audit entries it writes
// record intent, not effect: a command's status is "pending" before the
// network call and is never updated afterwards, because there is no
// device-acknowledgment channel.
type dispatchService struct {
	userRepository  store.UserRepository
	alertRepository store.AlertRepository
	sender          push.Sender
	logger          *logger.Logger
}

// NewDispatchService constructs a DispatchService over the given
// repositories and push sender.
func NewDispatchService(users store.UserRepository, alerts store.AlertRepository, sender push.Sender, logger *logger.Logger) DispatchService {
	return &dispatchService{
		userRepository:  users,
		alertRepository: alerts,
		sender:          sender,
		logger:          logger,
	}
}

// SendCommand dispatches a silent data-only command to the user's device.
//
// Order of operations is load-bearing:
//  1. Token lookup. A missing token is a device-not-registered condition,
//     reported as {Success: false} — not an error, the caller must handle it.
//  2. For lock_device and wipe_data, the pending audit entry is written onto
//     the alert BEFORE the network call, so a trace exists even if delivery
//     fails or is never confirmed.
//  3. The push provider is called. A token-unregistered reply clears the
//     stored token (self-healing) and reports failure; any other delivery
//     failure propagates as ErrPushUnavailable.
//
// The wipe_data payload always carries the irreversibility warning for the
// caller/UI layer; no additional confirmation gate is applied here.
func (d *dispatchService) SendCommand(ctx context.Context, userID int64, alertID string, command models.DeviceCommand, payload map[string]any) (models.CommandResult, error) {
	log := logger.FromContext(ctx)

	user, err := d.userRepository.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error looking up user for command dispatch")
		return models.CommandResult{}, fmt.Errorf("error looking up user for command dispatch: %w", err)
	}

	if user.PushToken == nil || *user.PushToken == "" {
		log.Warn().Int64("user_id", userID).Str("command", string(command)).Msg("no push token registered, command not dispatched")
		return models.CommandResult{Success: false, Message: "device is not registered for push delivery"}, nil
	}

	if command == models.CommandWipeData {
		if payload == nil {
			payload = make(map[string]any, 1)
		}
		payload["warning"] = models.WipeWarning
	}

	now := time.Now()

	if command.Audited() {
		if err := d.appendCommandAudit(ctx, userID, alertID, command, now); err != nil {
			return models.CommandResult{}, err
		}
	}

	envelope := models.CommandEnvelope{
		Command:   command,
		Payload:   payload,
		Timestamp: now,
	}

	err = d.sender.Send(ctx, push.Message{
		Token:  *user.PushToken,
		Data:   commandData(envelope),
		Silent: true,
	})
	if err != nil {
		if errors.Is(err, push.ErrTokenUnregistered) {
			d.clearStaleToken(ctx, userID)
			return models.CommandResult{Success: false, Message: "push token is no longer registered"}, nil
		}

		log.Err(err).Int64("user_id", userID).Str("command", string(command)).Msg("push delivery of command failed")
		return models.CommandResult{}, fmt.Errorf("%w: %w", ErrPushUnavailable, err)
	}

	log.Info().Int64("user_id", userID).Str("command", string(command)).Msg("command accepted by push provider")
	return models.CommandResult{Success: true}, nil
}

// SendPushNotification delivers a visible notification. It follows the same
// token-lookup and invalid-token cleanup rules as SendCommand but is always
// best-effort: the result reports failure, and the error detail is logged
// rather than returned.
func (d *dispatchService) SendPushNotification(ctx context.Context, userID int64, title, body string, data map[string]any) models.CommandResult {
	log := logger.FromContext(ctx)

	user, err := d.userRepository.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error looking up user for notification")
		return models.CommandResult{Success: false, Message: "user lookup failed"}
	}

	if user.PushToken == nil || *user.PushToken == "" {
		return models.CommandResult{Success: false, Message: "device is not registered for push delivery"}
	}

	err = d.sender.Send(ctx, push.Message{
		Token: *user.PushToken,
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		if errors.Is(err, push.ErrTokenUnregistered) {
			d.clearStaleToken(ctx, userID)
			return models.CommandResult{Success: false, Message: "push token is no longer registered"}
		}

		log.Err(err).Int64("user_id", userID).Msg("push delivery of notification failed")
		return models.CommandResult{Success: false, Message: "push delivery failed"}
	}

	return models.CommandResult{Success: true}
}

// UpdatePushToken registers the device's delivery token.
func (d *dispatchService) UpdatePushToken(ctx context.Context, userID int64, token string) error {
	log := logger.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return ErrTokenRequired
	}

	if err := d.userRepository.SetPushToken(ctx, userID, &token); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error storing push token")
		return fmt.Errorf("error storing push token: %w", err)
	}

	return nil
}

// appendCommandAudit merges a pending audit entry for the command into the
// alert's command map. The alert id is required for audited commands.
func (d *dispatchService) appendCommandAudit(ctx context.Context, userID int64, alertID string, command models.DeviceCommand, at time.Time) error {
	log := logger.FromContext(ctx)

	if alertID == "" {
		return ErrAlertIDRequired
	}

	alert, err := d.alertRepository.Get(ctx, userID, alertID)
	if err != nil {
		log.Err(err).Str("alert_id", alertID).Msg("error loading alert for command audit")
		return fmt.Errorf("error loading alert for command audit: %w", err)
	}

	commands := alert.Commands
	if commands == nil {
		commands = make(map[string]models.CommandAudit, 1)
	}
	commands[string(command)] = models.CommandAudit{
		RequestedAt: at,
		Status:      models.CommandStatusPending,
	}

	err = d.alertRepository.Update(ctx, userID, alertID, models.AlertPatch{Commands: commands})
	if err != nil {
		log.Err(err).Str("alert_id", alertID).Msg("error writing command audit entry")
		return fmt.Errorf("error writing command audit entry: %w", err)
	}

	return nil
}

// clearStaleToken removes a token the provider no longer recognizes. The
// cleanup itself is best-effort.
func (d *dispatchService) clearStaleToken(ctx context.Context, userID int64) {
	log := logger.FromContext(ctx)

	if err := d.userRepository.SetPushToken(ctx, userID, nil); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error clearing unregistered push token")
		return
	}

	log.Info().Int64("user_id", userID).Msg("cleared unregistered push token")
}

// commandData flattens a command envelope into the provider's data map.
func commandData(envelope models.CommandEnvelope) map[string]any {
	return map[string]any{
		"command":   string(envelope.Command),
		"payload":   envelope.Payload,
		"timestamp": envelope.Timestamp.UTC().Format(time.RFC3339),
	}
}

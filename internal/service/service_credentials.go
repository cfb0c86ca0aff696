package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/store"
	"github.com/mpetrenko/shroud/internal/utils"
	"github.com/mpetrenko/shroud/internal/validators"
	"github.com/mpetrenko/shroud/models"
)

// activityFeedLimit bounds the activity feed returned to clients.
const activityFeedLimit = 20

// credentialService is the PIN verifier. It classifies a submitted PIN
// against the two stored bcrypt digests and drives the per-outcome side
// effects: unlock history, counters, and — for the security PIN — the mode
// state machine.
//
// Comparison order is load-bearing: the normal hash is checked first, and
// the security hash only when the first fails. Distinctness of the two PINs
// is enforced at save time, not verification time; if a data migration ever
// made them equal the security hash would become unreachable.
type credentialService struct {
	userRepository  store.UserRepository
	eventRepository store.EventRepository
	appRepository   store.AppRepository
	mode            ModeService
	pinValidator    validators.Validator
	bcryptCost      int
	logger          *logger.Logger
}

// NewCredentialService constructs a CredentialService.
func NewCredentialService(
	users store.UserRepository,
	events store.EventRepository,
	apps store.AppRepository,
	mode ModeService,
	bcryptCost int,
	logger *logger.Logger,
) CredentialService {
	return &credentialService{
		userRepository:  users,
		eventRepository: events,
		appRepository:   apps,
		mode:            mode,
		pinValidator:    validators.NewPinPairValidator(),
		bcryptCost:      bcryptCost,
		logger:          logger,
	}
}

// SavePins validates the PIN pair against the provisioning policy and stores
// both digests together. Validation failures are returned before any
// mutation.
func (c *credentialService) SavePins(ctx context.Context, userID int64, req models.SavePinsRequest) error {
	log := logger.FromContext(ctx)

	if err := c.pinValidator.Validate(ctx, req); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("pin pair rejected by policy")
		return err
	}

	normalHash, err := utils.HashSecret(req.NormalPin, c.bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing normal pin: %w", err)
	}
	securityHash, err := utils.HashSecret(req.SecurityPin, c.bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing security pin: %w", err)
	}

	if err := c.userRepository.SavePinHashes(ctx, userID, normalHash, securityHash); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error saving pin hashes")
		return fmt.Errorf("error saving pin hashes: %w", err)
	}

	return nil
}

// VerifyPin classifies the submitted PIN.
//
// Outcomes:
//   - normal match: records an unlock event and bumps the normal/total
//     counters; while in security mode it additionally resolves the most
//     recent active alert (resolution "unlocked_successfully").
//   - security match: activates security mode via the state machine. Only
//     the PIN length travels in the alert details; the value is never
//     persisted.
//   - no match: records a failed attempt and bumps failed_attempts.
//
// All history/counter writes are best-effort side channels: their failure is
// logged and swallowed so the classification result always reaches the
// caller.
func (c *credentialService) VerifyPin(ctx context.Context, userID int64, pin string) (models.VerifyPinResponse, error) {
	log := logger.FromContext(ctx)

	if pin == "" {
		return models.VerifyPinResponse{}, ErrInvalidDataProvided
	}

	user, err := c.userRepository.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error loading user for pin verification")
		return models.VerifyPinResponse{}, fmt.Errorf("error loading user for pin verification: %w", err)
	}

	if !user.HasPins() {
		return models.VerifyPinResponse{}, ErrPinsNotConfigured
	}

	now := time.Now()

	// Normal hash first. Order matters; see type comment.
	if utils.CompareSecret(user.NormalPinHash, pin) {
		c.recordUnlock(ctx, userID, models.ModeNormal, now)

		if user.CurrentMode == models.ModeSecurity {
			c.resolveAfterUnlock(ctx, userID)
		}

		mode := models.ModeNormal
		return models.VerifyPinResponse{Success: true, Mode: &mode}, nil
	}

	if utils.CompareSecret(user.SecurityPinHash, pin) {
		c.recordUnlock(ctx, userID, models.ModeSecurity, now)

		_, err := c.mode.Activate(ctx, userID, models.AlertPinSecurityUsed, models.PinTriggerDetails{PinLength: len(pin)})
		if err != nil {
			log.Err(err).Int64("user_id", userID).Msg("error activating security mode from pin")
			return models.VerifyPinResponse{}, fmt.Errorf("error activating security mode from pin: %w", err)
		}

		mode := models.ModeSecurity
		return models.VerifyPinResponse{Success: true, Mode: &mode}, nil
	}

	c.recordFailedAttempt(ctx, userID, now)
	return models.VerifyPinResponse{Success: false, Mode: nil}, nil
}

// SaveProtectedApps replaces the user's disguise-mode app list.
func (c *credentialService) SaveProtectedApps(ctx context.Context, userID int64, apps []models.ProtectedApp) (int, error) {
	log := logger.FromContext(ctx)

	if len(apps) == 0 {
		return 0, ErrNoProtectedApps
	}
	for _, app := range apps {
		if app.PackageName == "" || app.AppName == "" {
			return 0, ErrInvalidDataProvided
		}
	}

	count, err := c.appRepository.Replace(ctx, userID, apps)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error saving protected apps")
		return 0, fmt.Errorf("error saving protected apps: %w", err)
	}

	return count, nil
}

// ActivityFeed returns recent unlocks and failed attempts, newest first.
func (c *credentialService) ActivityFeed(ctx context.Context, userID int64) ([]models.UnlockEvent, error) {
	log := logger.FromContext(ctx)

	events, err := c.eventRepository.ListRecent(ctx, userID, activityFeedLimit)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error listing activity feed")
		return nil, fmt.Errorf("error listing activity feed: %w", err)
	}

	return events, nil
}

// recordUnlock writes the unlock side channel: history entry + counters.
// Failures are logged and swallowed.
func (c *credentialService) recordUnlock(ctx context.Context, userID int64, mode models.Mode, at time.Time) {
	log := logger.FromContext(ctx)

	err := c.eventRepository.Append(ctx, models.UnlockEvent{
		UserID:    userID,
		Kind:      models.EventUnlock,
		Mode:      mode,
		Timestamp: at,
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error appending unlock event")
	}

	if err := c.userRepository.BumpUnlockStats(ctx, userID, models.EventUnlock, mode, at); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error bumping unlock counters")
	}
}

// recordFailedAttempt writes the failed-attempt side channel. Failures are
// logged and swallowed.
func (c *credentialService) recordFailedAttempt(ctx context.Context, userID int64, at time.Time) {
	log := logger.FromContext(ctx)

	err := c.eventRepository.Append(ctx, models.UnlockEvent{
		UserID:    userID,
		Kind:      models.EventFailedAttempt,
		Timestamp: at,
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error appending failed-attempt event")
	}

	if err := c.userRepository.BumpUnlockStats(ctx, userID, models.EventFailedAttempt, "", at); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error bumping failed-attempt counter")
	}
}

// resolveAfterUnlock closes the most recent active alert after a successful
// normal unlock in security mode. The user record carries no pointer to
// "the" active alert, so recency is the best available link; additional
// active alerts, if any, stay unresolved.
func (c *credentialService) resolveAfterUnlock(ctx context.Context, userID int64) {
	log := logger.FromContext(ctx)

	alerts, err := c.mode.UnresolvedAlerts(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error finding alert to resolve after unlock")
		return
	}
	if len(alerts) == 0 {
		// Mode says security but no active alert exists; reset the mode
		// fields directly so the user is not stuck.
		if err := c.userRepository.SetMode(ctx, userID, models.ModeNormal, false, nil); err != nil {
			log.Err(err).Int64("user_id", userID).Msg("error resetting orphaned security mode")
		}
		return
	}

	err = c.mode.Deactivate(ctx, userID, alerts[0].ID, models.ResolutionUnlockedSuccessfully)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("alert_id", alerts[0].ID).Msg("error resolving alert after unlock")
	}
}

package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/sms"
	"github.com/mpetrenko/shroud/internal/store"
	"github.com/mpetrenko/shroud/models"
)

// otpService issues and verifies phone-number verification codes. One
// challenge exists per user at a time; issuing replaces, verifying consumes.
type otpService struct {
	otpRepository  store.OTPRepository
	userRepository store.UserRepository
	smsSender      sms.Sender
	logger         *logger.Logger
}

// NewOTPService constructs an OTPService over the given repositories and
// SMS gateway.
func NewOTPService(otp store.OTPRepository, users store.UserRepository, smsSender sms.Sender, logger *logger.Logger) OTPService {
	return &otpService{
		otpRepository:  otp,
		userRepository: users,
		smsSender:      smsSender,
		logger:         logger,
	}
}

// Issue generates a uniformly random 6-digit code, stores it with a
// 10-minute expiry (replacing any prior challenge for the user), and hands
// it to the SMS gateway. Gateway failure is logged but does not fail the
// issue: the code is returned either way so an alternate delivery path can
// be used.
func (o *otpService) Issue(ctx context.Context, userID int64, phoneNumber string) (string, error) {
	log := logger.FromContext(ctx)

	if phoneNumber == "" {
		return "", ErrInvalidDataProvided
	}

	code, err := generateCode()
	if err != nil {
		log.Err(err).Msg("error generating verification code")
		return "", fmt.Errorf("error generating verification code: %w", err)
	}

	now := time.Now()
	challenge := models.OTPChallenge{
		UserID:      userID,
		Code:        code,
		PhoneNumber: phoneNumber,
		CreatedAt:   now,
		ExpiresAt:   now.Add(models.OTPChallengeTTL),
		Attempts:    0,
	}

	if err := o.otpRepository.Upsert(ctx, challenge); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error storing otp challenge")
		return "", fmt.Errorf("error storing otp challenge: %w", err)
	}

	err = o.smsSender.Send(ctx, phoneNumber, fmt.Sprintf("Your verification code is %s", code))
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("sms delivery of verification code failed")
	}

	return code, nil
}

// Verify checks the submitted code against the user's stored challenge.
//
// Checks run in a fixed order and the first failing one wins:
//  1. no challenge → store.ErrNoChallengeWasFound
//  2. past expiry → ErrChallengeExpired
//  3. attempts exhausted → ErrChallengeLocked (a lockout does not reset
//     attempts; the user must re-issue)
//  4. wrong code → attempts incremented, ErrCodeMismatch
//
// On success the phone is stored as verified and the challenge is deleted,
// so a second verification with the same code fails with
// store.ErrNoChallengeWasFound.
func (o *otpService) Verify(ctx context.Context, userID int64, code string) error {
	log := logger.FromContext(ctx)

	if code == "" {
		return ErrInvalidDataProvided
	}

	challenge, err := o.otpRepository.Get(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if challenge.Expired(now) {
		return ErrChallengeExpired
	}
	if challenge.Locked() {
		return ErrChallengeLocked
	}

	if challenge.Code != code {
		if _, err := o.otpRepository.IncrementAttempts(ctx, userID); err != nil {
			log.Err(err).Int64("user_id", userID).Msg("error incrementing otp attempts")
		}
		return ErrCodeMismatch
	}

	if err := o.userRepository.SetVerifiedPhone(ctx, userID, challenge.PhoneNumber); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error storing verified phone")
		return fmt.Errorf("error storing verified phone: %w", err)
	}

	if err := o.otpRepository.Delete(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error consuming otp challenge")
		return fmt.Errorf("error consuming otp challenge: %w", err)
	}

	return nil
}

// generateCode draws a uniformly random 6-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

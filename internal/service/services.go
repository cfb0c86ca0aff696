package service

import (
	"github.com/mpetrenko/shroud/internal/config"
	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/internal/push"
	"github.com/mpetrenko/shroud/internal/sms"
	"github.com/mpetrenko/shroud/internal/store"
)

// Services bundles every service the transport layer depends on.
type Services struct {
	AuthService       AuthService
	CredentialService CredentialService
	ModeService       ModeService
	DispatchService   DispatchService
	OTPService        OTPService
}

// NewServices wires the full service graph over the given storages and
// gateways. Construction order follows the dependency chain: the dispatcher
// has no service dependencies, the mode state machine notifies through the
// dispatcher, and the credential verifier triggers the mode state machine.
func NewServices(storages *store.Storages, pushSender push.Sender, smsSender sms.Sender, cfg config.App, logger *logger.Logger) *Services {
	dispatch := NewDispatchService(storages.Users, storages.Alerts, pushSender, logger)
	mode := NewModeService(storages.Users, storages.Alerts, storages.Transactor, dispatch, logger)
	credentials := NewCredentialService(storages.Users, storages.Events, storages.Apps, mode, cfg.BcryptCost, logger)

	return &Services{
		AuthService:       NewAuthService(storages.Users, cfg, logger),
		CredentialService: credentials,
		ModeService:       mode,
		DispatchService:   dispatch,
		OTPService:        NewOTPService(storages.OTP, storages.Users, smsSender, logger),
	}
}

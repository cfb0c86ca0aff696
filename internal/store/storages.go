package store

import (
	"context"

	"github.com/mpetrenko/shroud/internal/config"
	"github.com/mpetrenko/shroud/internal/logger"
)

// Storages bundles every repository plus the shared [Transactor] so the
// service layer receives all persistence dependencies as one constructed
// value.
type Storages struct {
	Users  UserRepository
	Alerts AlertRepository
	OTP    OTPRepository
	Events EventRepository
	Apps   AppRepository

	// Transactor runs multi-repository writes atomically. It is the same
	// underlying connection the repositories use.
	Transactor Transactor
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// all repositories over the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		Users:      NewUserRepository(db, log),
		Alerts:     NewAlertRepository(db, log),
		OTP:        NewOTPRepository(db, log),
		Events:     NewEventRepository(db, log),
		Apps:       NewAppRepository(db, log),
		Transactor: db,
	}, nil
}

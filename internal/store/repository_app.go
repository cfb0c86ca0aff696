package store

import (
	"context"
	"fmt"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/models"
)

// appRepository is the PostgreSQL-backed implementation of [AppRepository].
type appRepository struct {
	logger     *logger.Logger
	db         *DB
	transactor Transactor
}

// NewAppRepository constructs an [AppRepository] backed by the provided
// database connection and logger. Replace runs delete + insert inside one
// transaction via the repository's own DB handle.
func NewAppRepository(db *DB, logger *logger.Logger) AppRepository {
	logger.Debug().Msg("creating app repository")
	return &appRepository{
		db:         db,
		logger:     logger,
		transactor: db,
	}
}

// Replace swaps the user's whole protected-app list for the given one. The
// delete and the inserts run in a single transaction so a failure cannot
// leave the list half-replaced.
func (r *appRepository) Replace(ctx context.Context, userID int64, apps []models.ProtectedApp) (int, error) {
	log := logger.FromContext(ctx)

	err := r.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := r.db.q(ctx).ExecContext(ctx, deleteProtectedApps, userID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		for _, app := range apps {
			_, err := r.db.q(ctx).ExecContext(ctx, insertProtectedApp,
				userID, app.PackageName, app.AppName, app.Icon)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*appRepository.Replace").Msg("error replacing protected apps")
		return 0, err
	}

	return len(apps), nil
}

// List returns the user's protected apps ordered by display name.
func (r *appRepository) List(ctx context.Context, userID int64) ([]models.ProtectedApp, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.q(ctx).QueryContext(ctx, listProtectedApps, userID)
	if err != nil {
		log.Err(err).Str("func", "*appRepository.List").Msg("error listing protected apps")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var apps []models.ProtectedApp
	for rows.Next() {
		var a models.ProtectedApp
		if err := rows.Scan(&a.UserID, &a.PackageName, &a.AppName, &a.Icon); err != nil {
			log.Err(err).Str("func", "*appRepository.List").Msg("error scanning protected app")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return apps, nil
}

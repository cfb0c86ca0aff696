package store

import (
	"context"
	"fmt"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/models"
)

// eventRepository is the PostgreSQL-backed implementation of
// [EventRepository]: an append-only unlock-history log.
type eventRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewEventRepository constructs an [EventRepository] backed by the provided
// database connection and logger.
func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	logger.Debug().Msg("creating event repository")
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

// Append persists one unlock-history entry.
func (r *eventRepository) Append(ctx context.Context, event models.UnlockEvent) error {
	log := logger.FromContext(ctx)

	_, err := r.db.q(ctx).ExecContext(ctx, appendUnlockEvent,
		event.UserID, event.Kind, event.Mode, event.Timestamp,
	)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Append").Msg("error appending unlock event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ListRecent returns the newest events first, bounded by limit.
func (r *eventRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]models.UnlockEvent, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.q(ctx).QueryContext(ctx, listRecentUnlockEvents, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.ListRecent").Msg("error listing unlock events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	events := make([]models.UnlockEvent, 0, limit)
	for rows.Next() {
		var e models.UnlockEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Mode, &e.Timestamp); err != nil {
			log.Err(err).Str("func", "*eventRepository.ListRecent").Msg("error scanning unlock event")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}

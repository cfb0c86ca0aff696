package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/models"
)

// psql is the squirrel statement builder configured for PostgreSQL
// placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// alertRepository is the PostgreSQL-backed implementation of
// [AlertRepository]. The details and commands maps are stored as JSONB
// columns; patches are built dynamically with squirrel so only the fields
// present in the patch are touched.
type alertRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAlertRepository constructs an [AlertRepository] backed by the provided
// database connection and logger.
func NewAlertRepository(db *DB, logger *logger.Logger) AlertRepository {
	logger.Debug().Msg("creating alert repository")
	return &alertRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new alert. The caller supplies the id (UUID), trigger
// type, timestamp, and details; status and resolved default to active/false
// when unset upstream.
func (r *alertRepository) Create(ctx context.Context, alert models.SecurityAlert) (models.SecurityAlert, error) {
	log := logger.FromContext(ctx)

	detailsJSON, err := json.Marshal(alert.Details)
	if err != nil {
		log.Err(err).Str("func", "*alertRepository.Create").Msg("error marshaling alert details")
		return models.SecurityAlert{}, fmt.Errorf("error marshaling alert details: %w", err)
	}

	commandsJSON, err := json.Marshal(alert.Commands)
	if err != nil {
		log.Err(err).Str("func", "*alertRepository.Create").Msg("error marshaling alert commands")
		return models.SecurityAlert{}, fmt.Errorf("error marshaling alert commands: %w", err)
	}

	row := r.db.q(ctx).QueryRowContext(ctx, createAlert,
		alert.ID, alert.UserID, alert.Type, alert.Timestamp,
		alert.Status, alert.Resolved, detailsJSON, commandsJSON,
	)

	created, err := scanAlert(row)
	if err != nil {
		log.Err(err).Str("func", "*alertRepository.Create").Msg("error creating alert")
		return models.SecurityAlert{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// Get fetches one alert scoped to its owning user.
//
// Error handling:
//   - sql.ErrNoRows → [ErrAlertNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *alertRepository) Get(ctx context.Context, userID int64, alertID string) (models.SecurityAlert, error) {
	log := logger.FromContext(ctx)

	row := r.db.q(ctx).QueryRowContext(ctx, getAlert, userID, alertID)

	found, err := scanAlert(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SecurityAlert{}, ErrAlertNotFound
		}
		log.Err(err).Str("func", "*alertRepository.Get").Str("alert_id", alertID).Msg("error getting alert")
		return models.SecurityAlert{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// ListUnresolved returns the user's active alerts, newest first.
func (r *alertRepository) ListUnresolved(ctx context.Context, userID int64, limit int) ([]models.SecurityAlert, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select("id", "user_id", "type", "created_at", "status", "resolved",
			"resolution_type", "resolved_at", "details", "commands").
		From("security_alerts").
		Where(sq.Eq{"user_id": userID, "status": models.AlertStatusActive}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*alertRepository.ListUnresolved").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*alertRepository.ListUnresolved").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	alerts := make([]models.SecurityAlert, 0, limit)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			log.Err(err).Str("func", "*alertRepository.ListUnresolved").Msg("error scanning alert row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return alerts, nil
}

// Update applies a partial patch to one alert. Only non-nil patch fields are
// included in the SET clause.
//
// Error handling:
//   - zero rows affected → [ErrAlertNotFound].
func (r *alertRepository) Update(ctx context.Context, userID int64, alertID string, patch models.AlertPatch) error {
	log := logger.FromContext(ctx)

	builder := psql.Update("security_alerts").
		Where(sq.Eq{"user_id": userID, "id": alertID})

	touched := false
	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
		touched = true
	}
	if patch.Resolved != nil {
		builder = builder.Set("resolved", *patch.Resolved)
		touched = true
	}
	if patch.ResolutionType != nil {
		builder = builder.Set("resolution_type", *patch.ResolutionType)
		touched = true
	}
	if patch.ResolvedAt != nil {
		builder = builder.Set("resolved_at", *patch.ResolvedAt)
		touched = true
	}
	if patch.Commands != nil {
		commandsJSON, err := json.Marshal(patch.Commands)
		if err != nil {
			log.Err(err).Str("func", "*alertRepository.Update").Msg("error marshaling alert commands")
			return fmt.Errorf("error marshaling alert commands: %w", err)
		}
		builder = builder.Set("commands", commandsJSON)
		touched = true
	}

	if !touched {
		return nil
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*alertRepository.Update").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.q(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*alertRepository.Update").Str("alert_id", alertID).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAlertNotFound
	}

	return nil
}

// scanAlert copies one security_alerts row into a models.SecurityAlert,
// unmarshaling the JSONB details and commands columns.
func scanAlert(row interface{ Scan(...any) error }) (models.SecurityAlert, error) {
	var a models.SecurityAlert
	var detailsJSON, commandsJSON []byte

	err := row.Scan(
		&a.ID, &a.UserID, &a.Type, &a.Timestamp,
		&a.Status, &a.Resolved, &a.ResolutionType, &a.ResolvedAt,
		&detailsJSON, &commandsJSON,
	)
	if err != nil {
		return models.SecurityAlert{}, err
	}

	if len(detailsJSON) > 0 {
		if err := json.Unmarshal(detailsJSON, &a.Details); err != nil {
			return models.SecurityAlert{}, fmt.Errorf("error unmarshaling alert details: %w", err)
		}
	}
	if len(commandsJSON) > 0 {
		if err := json.Unmarshal(commandsJSON, &a.Commands); err != nil {
			return models.SecurityAlert{}, fmt.Errorf("error unmarshaling alert commands: %w", err)
		}
	}

	return a, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mpetrenko/shroud/internal/logger"
	"github.com/mpetrenko/shroud/models"
)

var alertTestColumns = []string{
	"id", "user_id", "type", "created_at", "status", "resolved",
	"resolution_type", "resolved_at", "details", "commands",
}

func alertTestRow(id string, now time.Time) *sqlmock.Rows {
	return sqlmock.
		NewRows(alertTestColumns).
		AddRow(id, 1, "panic_button", now, "active", false,
			nil, nil, []byte(`{"source":"app"}`), []byte(`{}`))
}

func newTestAlertRepo(t *testing.T) (*alertRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &alertRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestAlertCreate_Success(t *testing.T) {
	repo, mock, db := newTestAlertRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	alert := models.SecurityAlert{
		ID:        "11111111-2222-3333-4444-555555555555",
		UserID:    1,
		Type:      models.AlertPanicButton,
		Timestamp: now,
		Status:    models.AlertStatusActive,
		Details:   map[string]any{"source": "app"},
	}

	mock.ExpectQuery("INSERT INTO security_alerts").
		WithArgs(alert.ID, alert.UserID, alert.Type, alert.Timestamp,
			alert.Status, alert.Resolved, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(alertTestRow(alert.ID, now))

	created, err := repo.Create(ctx, alert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != alert.ID {
		t.Errorf("expected id %s, got %s", alert.ID, created.ID)
	}
	if created.Status != models.AlertStatusActive {
		t.Errorf("expected active status, got %s", created.Status)
	}
	if created.Details["source"] != "app" {
		t.Errorf("expected details to round-trip, got %v", created.Details)
	}
}

func TestAlertGet_NotFound(t *testing.T) {
	repo, mock, db := newTestAlertRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id").
		WithArgs(int64(1), "missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(ctx, 1, "missing")
	if !errors.Is(err, ErrAlertNotFound) {
		t.Fatalf("expected ErrAlertNotFound, got %v", err)
	}
}

func TestAlertListUnresolved_Success(t *testing.T) {
	repo, mock, db := newTestAlertRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(alertTestColumns).
		AddRow("a1", 1, "panic_button", now, "active", false, nil, nil, []byte(`{}`), []byte(`{}`)).
		AddRow("a2", 1, "abrupt_movement", now.Add(-time.Minute), "active", false, nil, nil, []byte(`{}`), []byte(`{}`))

	// squirrel sorts Eq map keys, so status binds before user_id.
	mock.ExpectQuery("SELECT id, user_id, type").
		WithArgs(models.AlertStatusActive, int64(1)).
		WillReturnRows(rows)

	alerts, err := repo.ListUnresolved(ctx, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].ID != "a1" {
		t.Errorf("expected newest alert first, got %s", alerts[0].ID)
	}
}

func TestAlertUpdate_Resolution(t *testing.T) {
	repo, mock, db := newTestAlertRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	status := models.AlertStatusResolved
	resolved := true
	resolution := models.ResolutionFalseAlarm

	// SET args in declaration order, then the sorted Eq keys (id, user_id).
	mock.ExpectExec("UPDATE security_alerts").
		WithArgs(status, resolved, resolution, now, "a1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(ctx, 1, "a1", models.AlertPatch{
		Status:         &status,
		Resolved:       &resolved,
		ResolutionType: &resolution,
		ResolvedAt:     &now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAlertUpdate_NotFound(t *testing.T) {
	repo, mock, db := newTestAlertRepo(t)
	defer db.Close()

	ctx := context.Background()
	status := models.AlertStatusResolved

	mock.ExpectExec("UPDATE security_alerts").
		WithArgs(status, "missing", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(ctx, 1, "missing", models.AlertPatch{Status: &status})
	if !errors.Is(err, ErrAlertNotFound) {
		t.Fatalf("expected ErrAlertNotFound, got %v", err)
	}
}

func TestAlertUpdate_EmptyPatch(t *testing.T) {
	repo, mock, db := newTestAlertRepo(t)
	defer db.Close()

	// An empty patch touches nothing and issues no statement.
	if err := repo.Update(context.Background(), 1, "a1", models.AlertPatch{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements issued: %v", err)
	}
}

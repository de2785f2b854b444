// ABOUTME: ExerciseLog CRUD operations for SQLite storage.
// ABOUTME: Upserts on (user, exercise, date) so same-day edits mutate in place.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/hoplit/internal/models"
)

const logColumns = `id, user_id, exercise_id, exercise_name, day_type, date, weight, completed, created_at, updated_at`

// timestampLayout is fixed-width UTC so created_at sorts as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// ListLogs retrieves all logs for a user, oldest date first.
func (d *DB) ListLogs(userID string) ([]*models.ExerciseLog, error) {
	query := `SELECT ` + logColumns + `
		FROM exercise_logs
		WHERE user_id = ?
		ORDER BY date ASC, created_at ASC, exercise_id ASC, id ASC
	`
	rows, err := d.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	return d.scanLogs(rows)
}

// FindLog retrieves the log of one exercise on one date.
func (d *DB) FindLog(userID, exerciseID, date string) (*models.ExerciseLog, error) {
	query := `SELECT ` + logColumns + `
		FROM exercise_logs
		WHERE user_id = ? AND exercise_id = ? AND date = ?
	`
	return d.scanLog(d.db.QueryRow(query, userID, exerciseID, date))
}

// UpsertLog stores a log, updating the existing record for the same day.
func (d *DB) UpsertLog(l *models.ExerciseLog) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now

	query := `
		INSERT INTO exercise_logs (` + logColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, exercise_id, date) DO UPDATE SET
			exercise_name = excluded.exercise_name,
			day_type = excluded.day_type,
			weight = excluded.weight,
			completed = excluded.completed,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`
	var idStr, createdAt string
	err := d.db.QueryRow(query,
		l.ID.String(),
		l.UserID,
		l.ExerciseID,
		l.ExerciseName,
		l.DayType,
		l.Date,
		l.Weight,
		l.Completed,
		formatTimestamp(l.CreatedAt),
		formatTimestamp(l.UpdatedAt),
	).Scan(&idStr, &createdAt)
	if err != nil {
		return fmt.Errorf("upsert log: %w", err)
	}

	l.ID, _ = uuid.Parse(idStr)
	l.CreatedAt = parseTimestamp(createdAt)
	return nil
}

// DeleteLog removes one of a user's logs by ID or ID prefix.
func (d *DB) DeleteLog(userID, idOrPrefix string) error {
	id, err := d.resolveLogID(userID, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM exercise_logs WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}

	return nil
}

// PurgeLogs removes every log of a user.
func (d *DB) PurgeLogs(userID string) (int, error) {
	result, err := d.db.Exec("DELETE FROM exercise_logs WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("purge logs: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge logs: %w", err)
	}
	return int(affected), nil
}

// listAllLogs returns every log regardless of user.
func (d *DB) listAllLogs() ([]*models.ExerciseLog, error) {
	query := `SELECT ` + logColumns + `
		FROM exercise_logs
		ORDER BY user_id ASC, date ASC, created_at ASC, exercise_id ASC, id ASC
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	return d.scanLogs(rows)
}

// resolveLogID finds the full ID of a user's log from a prefix.
func (d *DB) resolveLogID(userID, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	query := `SELECT id FROM exercise_logs WHERE user_id = ? AND id LIKE ? || '%'`
	rows, err := d.db.Query(query, userID, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve log ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan log ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve log ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	return matches[0], nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanLogFields reads one row in logColumns order.
func scanLogFields(row rowScanner) (*models.ExerciseLog, error) {
	var l models.ExerciseLog
	var idStr, createdAt, updatedAt string
	var weight sql.NullFloat64

	err := row.Scan(&idStr, &l.UserID, &l.ExerciseID, &l.ExerciseName, &l.DayType,
		&l.Date, &weight, &l.Completed, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	l.ID, _ = uuid.Parse(idStr)
	l.CreatedAt = parseTimestamp(createdAt)
	l.UpdatedAt = parseTimestamp(updatedAt)
	if weight.Valid {
		w := weight.Float64
		l.Weight = &w
	}
	return &l, nil
}

// scanLog scans a single row into an ExerciseLog.
func (d *DB) scanLog(row *sql.Row) (*models.ExerciseLog, error) {
	l, err := scanLogFields(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan log: %w", err)
	}
	return l, nil
}

// scanLogs scans multiple rows into a slice of ExerciseLogs.
func (d *DB) scanLogs(rows *sql.Rows) ([]*models.ExerciseLog, error) {
	var logs []*models.ExerciseLog

	for rows.Next() {
		l, err := scanLogFields(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

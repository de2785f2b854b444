// ABOUTME: Repository interface for exercise log storage.
// ABOUTME: Minimal read/write contract shared by the SQLite and Badger backends.
package storage

import (
	"errors"

	"github.com/harperreed/hoplit/internal/models"
)

// ErrNotFound is returned when no log matches a lookup.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for exercise logs.
// The progress core only ever sees the snapshot ListLogs returns.
type Repository interface {
	// ListLogs returns every log of a user, oldest date first.
	ListLogs(userID string) ([]*models.ExerciseLog, error)
	// FindLog returns the log of one exercise on one date, or ErrNotFound.
	FindLog(userID, exerciseID, date string) (*models.ExerciseLog, error)
	// UpsertLog inserts l, or updates the existing log for the same
	// user, exercise and date. l.ID is set to the stored record's ID.
	UpsertLog(l *models.ExerciseLog) error
	// DeleteLog removes one of the user's logs by full ID or unique ID prefix.
	DeleteLog(userID, idOrPrefix string) error
	// PurgeLogs removes all logs of a user and returns how many went.
	PurgeLogs(userID string) (int, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Path() string
	Close() error
}

var (
	_ Repository = (*DB)(nil)
	_ Repository = (*KVStore)(nil)
)

// ABOUTME: Data migration between hoplit storage backends.
// ABOUTME: Copies every exercise log from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Logs  int
	Users int
}

// MigrateData copies all logs from src to dst storage. Existing destination
// logs for the same user, exercise and date are overwritten.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	data, err := src.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read source logs: %w", err)
	}

	summary := &MigrateSummary{}
	users := make(map[string]struct{})
	for _, l := range data.Logs {
		if err := dst.UpsertLog(l); err != nil {
			return nil, fmt.Errorf("copy log %s: %w", l.ID, err)
		}
		users[l.UserID] = struct{}{}
		summary.Logs++
	}
	summary.Users = len(users)

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}

// ABOUTME: Tests for Repository interface implementations.
// ABOUTME: Runs the same CRUD checks against SQLite and Badger backends.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/hoplit/internal/models"
)

// setupTestDB creates a SQLite database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "hoplit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "hoplit.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// setupTestKV creates a Badger store in a temp directory.
func setupTestKV(t *testing.T) *KVStore {
	t.Helper()

	store, err := OpenKV(filepath.Join(t.TempDir(), "kv"))
	if err != nil {
		t.Fatalf("Failed to open KV store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// backends returns one fresh repository per implementation.
func backends(t *testing.T) map[string]Repository {
	t.Helper()
	return map[string]Repository{
		"sqlite": setupTestDB(t),
		"badger": setupTestKV(t),
	}
}

func newLog(userID, exerciseID, date string) *models.ExerciseLog {
	return &models.ExerciseLog{
		UserID:       userID,
		ExerciseID:   exerciseID,
		ExerciseName: "Name of " + exerciseID,
		DayType:      "Push",
		Date:         date,
	}
}

func TestUpsertAndFindLog(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			l := newLog("local", "mon-1", "2024-03-01").WithWeight(100).WithCompleted(true)
			if err := repo.UpsertLog(l); err != nil {
				t.Fatalf("UpsertLog failed: %v", err)
			}
			if l.ID.String() == "00000000-0000-0000-0000-000000000000" {
				t.Fatal("expected ID to be assigned")
			}

			got, err := repo.FindLog("local", "mon-1", "2024-03-01")
			if err != nil {
				t.Fatalf("FindLog failed: %v", err)
			}
			if got.ID != l.ID {
				t.Errorf("ID mismatch: got %v, want %v", got.ID, l.ID)
			}
			if got.ExerciseName != "Name of mon-1" {
				t.Errorf("ExerciseName = %q", got.ExerciseName)
			}
			if got.DayType != "Push" {
				t.Errorf("DayType = %q, want Push", got.DayType)
			}
			if got.Weight == nil || *got.Weight != 100 {
				t.Errorf("Weight = %v, want 100", got.Weight)
			}
			if !got.Completed {
				t.Error("expected completed")
			}
		})
	}
}

func TestFindLogNotFound(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.FindLog("local", "mon-1", "2024-03-01")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestUpsertSameDayUpdatesInPlace(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			first := newLog("local", "mon-1", "2024-03-01").WithCompleted(true)
			if err := repo.UpsertLog(first); err != nil {
				t.Fatalf("UpsertLog failed: %v", err)
			}

			second := newLog("local", "mon-1", "2024-03-01").WithWeight(102.5).WithCompleted(true)
			if err := repo.UpsertLog(second); err != nil {
				t.Fatalf("second UpsertLog failed: %v", err)
			}
			if second.ID != first.ID {
				t.Errorf("expected same-day upsert to keep ID %v, got %v", first.ID, second.ID)
			}

			logs, err := repo.ListLogs("local")
			if err != nil {
				t.Fatalf("ListLogs failed: %v", err)
			}
			if len(logs) != 1 {
				t.Fatalf("expected 1 log, got %d", len(logs))
			}
			if logs[0].Weight == nil || *logs[0].Weight != 102.5 {
				t.Errorf("Weight = %v, want 102.5", logs[0].Weight)
			}
		})
	}
}

func TestUpsertClearsWeight(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			l := newLog("local", "mon-1", "2024-03-01").WithWeight(100)
			if err := repo.UpsertLog(l); err != nil {
				t.Fatalf("UpsertLog failed: %v", err)
			}
			l.Weight = nil
			if err := repo.UpsertLog(l); err != nil {
				t.Fatalf("UpsertLog failed: %v", err)
			}

			got, err := repo.FindLog("local", "mon-1", "2024-03-01")
			if err != nil {
				t.Fatalf("FindLog failed: %v", err)
			}
			if got.Weight != nil {
				t.Errorf("expected nil weight, got %v", *got.Weight)
			}
		})
	}
}

func TestListLogsOrderedAndScopedToUser(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, l := range []*models.ExerciseLog{
				newLog("local", "mon-1", "2024-03-08"),
				newLog("local", "mon-1", "2024-03-01"),
				newLog("local", "mon-2", "2024-03-05"),
				newLog("other", "mon-1", "2024-03-02"),
			} {
				if err := repo.UpsertLog(l); err != nil {
					t.Fatalf("UpsertLog failed: %v", err)
				}
			}

			logs, err := repo.ListLogs("local")
			if err != nil {
				t.Fatalf("ListLogs failed: %v", err)
			}
			if len(logs) != 3 {
				t.Fatalf("expected 3 logs, got %d", len(logs))
			}
			wantDates := []string{"2024-03-01", "2024-03-05", "2024-03-08"}
			for i, want := range wantDates {
				if logs[i].Date != want {
					t.Errorf("logs[%d].Date = %s, want %s", i, logs[i].Date, want)
				}
			}

			empty, err := repo.ListLogs("nobody")
			if err != nil {
				t.Fatalf("ListLogs failed: %v", err)
			}
			if len(empty) != 0 {
				t.Errorf("expected no logs for unknown user, got %d", len(empty))
			}
		})
	}
}

func TestDeleteLogByPrefix(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			l := newLog("local", "mon-1", "2024-03-01").WithCompleted(true)
			if err := repo.UpsertLog(l); err != nil {
				t.Fatalf("UpsertLog failed: %v", err)
			}

			if err := repo.DeleteLog("local", l.ShortID()); err != nil {
				t.Fatalf("DeleteLog failed: %v", err)
			}

			if _, err := repo.FindLog("local", "mon-1", "2024-03-01"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected deleted log to be gone, got %v", err)
			}

			err := repo.DeleteLog("local", l.ID.String())
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound deleting twice, got %v", err)
			}
		})
	}
}

func TestDeleteLogAmbiguousPrefix(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, date := range []string{"2024-03-01", "2024-03-02"} {
				if err := repo.UpsertLog(newLog("local", "mon-1", date)); err != nil {
					t.Fatalf("UpsertLog failed: %v", err)
				}
			}

			// An empty prefix matches every record.
			err := repo.DeleteLog("local", "")
			if err == nil || !strings.Contains(err.Error(), "ambiguous") {
				t.Errorf("expected ambiguous prefix error, got %v", err)
			}

			logs, _ := repo.ListLogs("local")
			if len(logs) != 2 {
				t.Errorf("expected nothing deleted, got %d logs", len(logs))
			}
		})
	}
}

func TestDeleteLogScopedToUser(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			bob := newLog("bob", "mon-1", "2024-03-01").WithCompleted(true)
			if err := repo.UpsertLog(bob); err != nil {
				t.Fatalf("UpsertLog failed: %v", err)
			}
			mine := newLog("local", "mon-1", "2024-03-01").WithCompleted(true)
			if err := repo.UpsertLog(mine); err != nil {
				t.Fatalf("UpsertLog failed: %v", err)
			}

			for _, ref := range []string{bob.ShortID(), bob.ID.String()} {
				if err := repo.DeleteLog("local", ref); !errors.Is(err, ErrNotFound) {
					t.Errorf("DeleteLog(local, %s): expected ErrNotFound, got %v", ref, err)
				}
			}
			if logs, _ := repo.ListLogs("bob"); len(logs) != 1 {
				t.Errorf("expected bob's log to survive, got %d logs", len(logs))
			}

			// Other users' records do not make a prefix ambiguous.
			if err := repo.DeleteLog("local", ""); err != nil {
				t.Errorf("expected the only local log to match, got %v", err)
			}
			if logs, _ := repo.ListLogs("local"); len(logs) != 0 {
				t.Errorf("expected local log deleted, got %d", len(logs))
			}
		})
	}
}

func TestUserIDsSharingAPrefixStayApart(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, l := range []*models.ExerciseLog{
				newLog("a", "mon-1", "2024-03-01"),
				newLog("a:x", "mon-1", "2024-03-01"),
				newLog("a", "x:mon-1", "2024-03-01"),
			} {
				if err := repo.UpsertLog(l); err != nil {
					t.Fatalf("UpsertLog failed: %v", err)
				}
			}

			logs, err := repo.ListLogs("a")
			if err != nil {
				t.Fatalf("ListLogs failed: %v", err)
			}
			if len(logs) != 2 {
				t.Fatalf("expected 2 logs for user a, got %d", len(logs))
			}
			for _, l := range logs {
				if l.UserID != "a" {
					t.Errorf("ListLogs(a) returned a log of %q", l.UserID)
				}
			}

			n, err := repo.PurgeLogs("a")
			if err != nil {
				t.Fatalf("PurgeLogs failed: %v", err)
			}
			if n != 2 {
				t.Errorf("PurgeLogs(a) removed %d, want 2", n)
			}
			other, _ := repo.ListLogs("a:x")
			if len(other) != 1 {
				t.Errorf("expected user a:x to keep 1 log, got %d", len(other))
			}
		})
	}
}

func TestSameDateOrderMatchesAcrossBackends(t *testing.T) {
	created := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	seed := func(repo Repository) {
		t.Helper()
		for i, ex := range []string{"wed-1", "mon-2", "mon-1"} {
			l := newLog("local", ex, "2024-03-01")
			l.CreatedAt = created
			if i == 0 {
				l.CreatedAt = created.Add(time.Millisecond)
			}
			if err := repo.UpsertLog(l); err != nil {
				t.Fatalf("UpsertLog failed: %v", err)
			}
		}
	}

	var orders [][]string
	for _, repo := range []Repository{setupTestDB(t), setupTestKV(t)} {
		seed(repo)
		logs, err := repo.ListLogs("local")
		if err != nil {
			t.Fatalf("ListLogs failed: %v", err)
		}
		var ids []string
		for _, l := range logs {
			ids = append(ids, l.ExerciseID)
		}
		orders = append(orders, ids)
	}

	want := []string{"mon-1", "mon-2", "wed-1"}
	for i, got := range orders {
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("backend %d: order %v, want %v", i, got, want)
		}
	}
}

func TestCreatedAtKeepsSubSecondPrecision(t *testing.T) {
	db := setupTestDB(t)
	created := time.Date(2024, time.March, 1, 9, 0, 0, 123456789, time.UTC)

	l := newLog("local", "mon-1", "2024-03-01")
	l.CreatedAt = created
	if err := db.UpsertLog(l); err != nil {
		t.Fatalf("UpsertLog failed: %v", err)
	}

	got, err := db.FindLog("local", "mon-1", "2024-03-01")
	if err != nil {
		t.Fatalf("FindLog failed: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestPurgeLogs(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, l := range []*models.ExerciseLog{
				newLog("local", "mon-1", "2024-03-01"),
				newLog("local", "mon-2", "2024-03-01"),
				newLog("other", "mon-1", "2024-03-01"),
			} {
				if err := repo.UpsertLog(l); err != nil {
					t.Fatalf("UpsertLog failed: %v", err)
				}
			}

			n, err := repo.PurgeLogs("local")
			if err != nil {
				t.Fatalf("PurgeLogs failed: %v", err)
			}
			if n != 2 {
				t.Errorf("PurgeLogs removed %d, want 2", n)
			}

			left, _ := repo.ListLogs("local")
			if len(left) != 0 {
				t.Errorf("expected no logs left for local, got %d", len(left))
			}
			other, _ := repo.ListLogs("other")
			if len(other) != 1 {
				t.Errorf("expected other user's log to survive, got %d", len(other))
			}
		})
	}
}

func TestMalformedDateSurvivesStorage(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			l := newLog("local", "mon-1", "not-a-date").WithCompleted(true)
			if err := repo.UpsertLog(l); err != nil {
				t.Fatalf("UpsertLog failed: %v", err)
			}
			logs, err := repo.ListLogs("local")
			if err != nil {
				t.Fatalf("ListLogs failed: %v", err)
			}
			if len(logs) != 1 || logs[0].Date != "not-a-date" {
				t.Errorf("expected raw date to round-trip, got %+v", logs)
			}
		})
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	db, err := Open(filepath.Join(dir, "hoplit.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected data dir to exist: %v", err)
	}
	if db.Path() != filepath.Join(dir, "hoplit.db") {
		t.Errorf("Path() = %q", db.Path())
	}
	info, err := os.Stat(db.Path())
	if err != nil {
		t.Fatalf("expected database file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestDataDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	if got := DataDir(); got != "/tmp/xdg-data/hoplit" {
		t.Errorf("DataDir() = %q, want /tmp/xdg-data/hoplit", got)
	}
}

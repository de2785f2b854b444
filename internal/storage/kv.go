// ABOUTME: Badger-backed key-value implementation of Repository.
// ABOUTME: Logs are JSON values keyed by user, exercise and date.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/harperreed/hoplit/internal/models"
)

const logPrefix = "log:"

// KVStore stores exercise logs in a local Badger database.
type KVStore struct {
	db  *badger.DB
	dir string
}

// OpenKV opens or creates a Badger database in dir.
func OpenKV(dir string) (*KVStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &KVStore{db: db, dir: dir}, nil
}

// Path returns the Badger directory.
func (s *KVStore) Path() string {
	return s.dir
}

// Close closes the Badger database.
func (s *KVStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Key segments are query-escaped so a ':' inside an ID cannot
// run into the next segment.
func logKey(userID, exerciseID, date string) []byte {
	return []byte(logPrefix + url.QueryEscape(userID) + ":" + url.QueryEscape(exerciseID) + ":" + url.QueryEscape(date))
}

func userPrefix(userID string) []byte {
	return []byte(logPrefix + url.QueryEscape(userID) + ":")
}

// kvEntry pairs a decoded log with the key it is stored under.
type kvEntry struct {
	key []byte
	log *models.ExerciseLog
}

// ListLogs returns every log of a user, oldest date first.
func (s *KVStore) ListLogs(userID string) ([]*models.ExerciseLog, error) {
	var entries []kvEntry
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		entries, err = scanUser(txn, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	logs := make([]*models.ExerciseLog, len(entries))
	for i, e := range entries {
		logs[i] = e.log
	}
	sortLogs(logs)
	return logs, nil
}

// FindLog returns the log of one exercise on one date.
func (s *KVStore) FindLog(userID, exerciseID, date string) (*models.ExerciseLog, error) {
	var l *models.ExerciseLog
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(logKey(userID, exerciseID, date))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			l, err = unmarshalLog(val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find log: %w", err)
	}
	return l, nil
}

// UpsertLog stores l, keeping the ID and creation time of an existing record.
func (s *KVStore) UpsertLog(l *models.ExerciseLog) error {
	key := logKey(l.UserID, l.ExerciseID, l.Date)
	now := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case err == nil:
			if err := item.Value(func(val []byte) error {
				existing, err := unmarshalLog(val)
				if err != nil {
					return err
				}
				l.ID = existing.ID
				l.CreatedAt = existing.CreatedAt
				return nil
			}); err != nil {
				return err
			}
		case errors.Is(err, badger.ErrKeyNotFound):
			if l.ID == uuid.Nil {
				l.ID = uuid.New()
			}
			if l.CreatedAt.IsZero() {
				l.CreatedAt = now
			}
		default:
			return err
		}

		l.UpdatedAt = now
		data, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("marshal log: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("upsert log: %w", err)
	}
	return nil
}

// DeleteLog removes one of a user's logs by ID or ID prefix.
func (s *KVStore) DeleteLog(userID, idOrPrefix string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		entries, err := scanUser(txn, userID)
		if err != nil {
			return err
		}

		var matches [][]byte
		for _, e := range entries {
			if strings.HasPrefix(e.log.ID.String(), idOrPrefix) {
				matches = append(matches, e.key)
			}
		}

		if len(matches) == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
		}
		if len(matches) > 1 {
			return fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
		}
		return txn.Delete(matches[0])
	})
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	return nil
}

// PurgeLogs removes every log of a user.
func (s *KVStore) PurgeLogs(userID string) (int, error) {
	var entries []kvEntry
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		entries, err = scanUser(txn, userID)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("purge logs: %w", err)
	}

	wb := s.db.NewWriteBatch()
	for _, e := range entries {
		if err := wb.Delete(e.key); err != nil {
			wb.Cancel()
			return 0, fmt.Errorf("purge logs: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("purge logs: %w", err)
	}
	return len(entries), nil
}

// listAllLogs returns every log regardless of user.
func (s *KVStore) listAllLogs() ([]*models.ExerciseLog, error) {
	var logs []*models.ExerciseLog
	err := s.db.View(func(txn *badger.Txn) error {
		entries, err := scan(txn, []byte(logPrefix))
		for _, e := range entries {
			logs = append(logs, e.log)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	sortLogs(logs)
	return logs, nil
}

// scanUser returns the entries stored under userID's prefix whose
// record also belongs to userID.
func scanUser(txn *badger.Txn, userID string) ([]kvEntry, error) {
	entries, err := scan(txn, userPrefix(userID))
	if err != nil {
		return nil, err
	}
	own := entries[:0]
	for _, e := range entries {
		if e.log.UserID == userID {
			own = append(own, e)
		}
	}
	return own, nil
}

// scan decodes every value under prefix. Undecodable values are skipped.
func scan(txn *badger.Txn, prefix []byte) ([]kvEntry, error) {
	var entries []kvEntry
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		err := item.Value(func(val []byte) error {
			l, err := unmarshalLog(val)
			if err != nil {
				return nil
			}
			entries = append(entries, kvEntry{key: item.KeyCopy(nil), log: l})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func unmarshalLog(data []byte) (*models.ExerciseLog, error) {
	var l models.ExerciseLog
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("unmarshal log: %w", err)
	}
	return &l, nil
}

// sortLogs orders logs by user, date, creation time, exercise and ID,
// matching the SQLite backend's ORDER BY.
func sortLogs(logs []*models.ExerciseLog) {
	sort.Slice(logs, func(i, j int) bool {
		a, b := logs[i], logs[j]
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.ExerciseID != b.ExerciseID {
			return a.ExerciseID < b.ExerciseID
		}
		return a.ID.String() < b.ID.String()
	})
}

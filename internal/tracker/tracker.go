// ABOUTME: Daily exercise tracking on top of a storage Repository.
// ABOUTME: Toggles completion, records weights and builds per-exercise status cards.
package tracker

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/harperreed/hoplit/internal/models"
	"github.com/harperreed/hoplit/internal/program"
	"github.com/harperreed/hoplit/internal/progress"
	"github.com/harperreed/hoplit/internal/storage"
)

// ErrInvalidWeight is returned for a weight that is not a positive number.
var ErrInvalidWeight = errors.New("weight must be a positive number")

// HistoryLimit is how many history entries a status card shows.
const HistoryLimit = 3

// Status is the per-exercise card for one day.
type Status struct {
	ExerciseID string            `json:"exercise_id"`
	Name       string            `json:"name"`
	DayType    string            `json:"day_type,omitempty"`
	Completed  bool              `json:"completed"`
	LastWeight *float64          `json:"last_weight,omitempty"`
	History    []progress.Sample `json:"history"`
}

// ToggleCompleted flips today's completion flag for an exercise, creating
// the day's log when there is none.
func ToggleCompleted(repo storage.Repository, userID string, ex program.Entry, today time.Time) (*models.ExerciseLog, error) {
	l, err := todaysLog(repo, userID, ex, today)
	if err != nil {
		return nil, err
	}
	l.Completed = !l.Completed

	if err := repo.UpsertLog(l); err != nil {
		return nil, fmt.Errorf("toggle %s: %w", ex.ID, err)
	}
	return l, nil
}

// RecordWeight sets today's weight for an exercise. A new log starts out
// not completed.
func RecordWeight(repo storage.Repository, userID string, ex program.Entry, today time.Time, weight float64) (*models.ExerciseLog, error) {
	if !(weight > 0) || math.IsInf(weight, 1) {
		return nil, fmt.Errorf("%v: %w", weight, ErrInvalidWeight)
	}

	l, err := todaysLog(repo, userID, ex, today)
	if err != nil {
		return nil, err
	}
	l.WithWeight(weight)

	if err := repo.UpsertLog(l); err != nil {
		return nil, fmt.Errorf("record weight %s: %w", ex.ID, err)
	}
	return l, nil
}

func todaysLog(repo storage.Repository, userID string, ex program.Entry, today time.Time) (*models.ExerciseLog, error) {
	l, err := repo.FindLog(userID, ex.ID, today.Format(models.DateLayout))
	switch {
	case err == nil:
		return l.WithExercise(ex.Name, ex.DayType), nil
	case errors.Is(err, storage.ErrNotFound):
		return models.NewExerciseLog(userID, ex.ID, today).WithExercise(ex.Name, ex.DayType), nil
	default:
		return nil, fmt.Errorf("load today's log: %w", err)
	}
}

// ExerciseStatus builds the status card of one exercise from a log snapshot:
// today's completion, the most recent positive weight, and up to
// HistoryLimit weighted entries newest first.
func ExerciseStatus(logs []models.ExerciseLog, ex program.Entry, today time.Time) Status {
	st := Status{ExerciseID: ex.ID, Name: ex.Name, DayType: ex.DayType, History: []progress.Sample{}}
	todayKey := today.Format(models.DateLayout)

	var samples []progress.Sample
	for _, l := range logs {
		if l.ExerciseID != ex.ID {
			continue
		}
		date, err := progress.ParseDate(l.Date)
		if err != nil {
			continue
		}
		if date.Format(models.DateLayout) == todayKey {
			st.Completed = l.Completed
		}
		if w := l.WeightValue(); w > 0 {
			samples = append(samples, progress.Sample{Date: date, Weight: w})
		}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Date.Before(samples[j].Date)
	})
	newest := progress.Newest(samples, 0)
	if len(newest) > 0 {
		w := newest[0].Weight
		st.LastWeight = &w
	}
	if len(newest) > HistoryLimit {
		newest = newest[:HistoryLimit]
	}
	st.History = append(st.History, newest...)
	return st
}

// Snapshot reads every log of a user as values for the progress functions.
func Snapshot(repo storage.Repository, userID string) ([]models.ExerciseLog, error) {
	ptrs, err := repo.ListLogs(userID)
	if err != nil {
		return nil, err
	}
	logs := make([]models.ExerciseLog, 0, len(ptrs))
	for _, l := range ptrs {
		logs = append(logs, *l)
	}
	return logs, nil
}

// Summarize aggregates a user's full log history as of today.
func Summarize(repo storage.Repository, userID string, today time.Time) (*progress.Summary, error) {
	logs, err := Snapshot(repo, userID)
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}
	return progress.Aggregate(logs, today), nil
}

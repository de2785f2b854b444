// ABOUTME: ExerciseLog model for per-day exercise tracking.
// ABOUTME: One log per user, exercise and calendar day carries completion and weight.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date layout used for ExerciseLog.Date.
const DateLayout = "2006-01-02"

// ExerciseLog records what a user did for one exercise on one day.
type ExerciseLog struct {
	ID           uuid.UUID `json:"id" yaml:"id"`
	UserID       string    `json:"user_id" yaml:"user_id"`
	ExerciseID   string    `json:"exercise_id" yaml:"exercise_id"`
	ExerciseName string    `json:"exercise_name" yaml:"exercise_name"`
	DayType      string    `json:"day_type,omitempty" yaml:"day_type,omitempty"`
	Date         string    `json:"date" yaml:"date"`
	Weight       *float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Completed    bool      `json:"completed" yaml:"completed"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewExerciseLog creates a log for the given exercise on the calendar day of t.
func NewExerciseLog(userID, exerciseID string, t time.Time) *ExerciseLog {
	now := time.Now()
	return &ExerciseLog{
		ID:         uuid.New(),
		UserID:     userID,
		ExerciseID: exerciseID,
		Date:       t.Format(DateLayout),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// WithExercise sets the denormalized exercise name and routine day type.
func (l *ExerciseLog) WithExercise(name, dayType string) *ExerciseLog {
	l.ExerciseName = name
	l.DayType = dayType
	return l
}

// WithWeight sets the lifted weight in kg.
func (l *ExerciseLog) WithWeight(kg float64) *ExerciseLog {
	l.Weight = &kg
	return l
}

// WithCompleted sets the completion flag.
func (l *ExerciseLog) WithCompleted(done bool) *ExerciseLog {
	l.Completed = done
	return l
}

// WeightValue returns the weight, or 0 when none was recorded.
func (l *ExerciseLog) WeightValue() float64 {
	if l.Weight == nil {
		return 0
	}
	return *l.Weight
}

// ShortID returns the 8-character ID prefix shown in listings.
func (l *ExerciseLog) ShortID() string {
	return l.ID.String()[:8]
}

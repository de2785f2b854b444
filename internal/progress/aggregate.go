// ABOUTME: Derives gym days, the 30-day streak and per-exercise weight series.
// ABOUTME: Pure functions over a log snapshot; nothing here is persisted.
package progress

import (
	"errors"
	"sort"
	"time"

	"github.com/harperreed/hoplit/internal/models"
)

// StreakWindowDays is the trailing window counted by the streak.
const StreakWindowDays = 30

// GymDay is a date with at least one completed or weighted log.
type GymDay struct {
	Date    time.Time `json:"date"`
	DayType string    `json:"day_type,omitempty"`
}

// Sample is one point of an exercise's weight history.
type Sample struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

// Summary is everything derived from one log snapshot.
type Summary struct {
	GymDays  []GymDay            `json:"gym_days"`
	Streak   int                 `json:"streak"`
	Series   map[string][]Sample `json:"series"`
	Excluded []error             `json:"-"`

	index map[time.Time]int
}

// Aggregate scans logs once and builds the gym-day set, streak and series.
// Logs with a malformed date are skipped and reported in Summary.Excluded.
func Aggregate(logs []models.ExerciseLog, today time.Time) *Summary {
	s := &Summary{
		GymDays: []GymDay{},
		Series:  make(map[string][]Sample),
		index:   make(map[time.Time]int),
	}

	for _, l := range logs {
		date, err := ParseDate(l.Date)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.LogID = l.ID.String()
			}
			s.Excluded = append(s.Excluded, err)
			continue
		}

		weight := l.WeightValue()
		if l.Completed || weight > 0 {
			s.addGymDay(date, l.DayType)
		}
		if weight > 0 {
			s.Series[l.ExerciseName] = append(s.Series[l.ExerciseName], Sample{Date: date, Weight: weight})
		}
	}

	sort.SliceStable(s.GymDays, func(i, j int) bool {
		return s.GymDays[i].Date.Before(s.GymDays[j].Date)
	})
	for i, gd := range s.GymDays {
		s.index[gd.Date] = i
	}
	for name := range s.Series {
		samples := s.Series[name]
		sort.SliceStable(samples, func(i, j int) bool {
			return samples[i].Date.Before(samples[j].Date)
		})
	}

	s.Streak = Streak(s.GymDays, today)
	return s
}

// addGymDay records date, keeping the first non-empty day type seen for it.
func (s *Summary) addGymDay(date time.Time, dayType string) {
	if i, ok := s.index[date]; ok {
		if s.GymDays[i].DayType == "" {
			s.GymDays[i].DayType = dayType
		}
		return
	}
	s.index[date] = len(s.GymDays)
	s.GymDays = append(s.GymDays, GymDay{Date: date, DayType: dayType})
}

// Streak counts gym days on or after today minus the streak window.
func Streak(gymDays []GymDay, today time.Time) int {
	cutoff := DateOf(today).AddDate(0, 0, -StreakWindowDays)
	n := 0
	for _, gd := range gymDays {
		if !gd.Date.Before(cutoff) {
			n++
		}
	}
	return n
}

// IsGymDay reports whether date is a gym day.
func (s *Summary) IsGymDay(date time.Time) bool {
	_, ok := s.lookup(date)
	return ok
}

// DayTypeOn returns the day type of a gym day, or "" if none.
func (s *Summary) DayTypeOn(date time.Time) string {
	gd, ok := s.lookup(date)
	if !ok {
		return ""
	}
	return gd.DayType
}

func (s *Summary) lookup(date time.Time) (GymDay, bool) {
	d := DateOf(date)
	if s.index == nil {
		for _, gd := range s.GymDays {
			if gd.Date.Equal(d) {
				return gd, true
			}
		}
		return GymDay{}, false
	}
	i, ok := s.index[d]
	if !ok {
		return GymDay{}, false
	}
	return s.GymDays[i], true
}

// Exercises returns the series names in sorted order.
func (s *Summary) Exercises() []string {
	names := make([]string, 0, len(s.Series))
	for name := range s.Series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Newest returns samples newest first, at most n of them (n <= 0 means all).
func Newest(samples []Sample, n int) []Sample {
	out := make([]Sample, len(samples))
	for i, smp := range samples {
		out[len(samples)-1-i] = smp
	}
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// LastWeight returns the most recent weight of an oldest-first series.
func LastWeight(samples []Sample) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	return samples[len(samples)-1].Weight, true
}

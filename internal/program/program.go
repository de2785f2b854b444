// ABOUTME: Loads the fixed weekly training program, diet plan and glossary.
// ABOUTME: Content ships embedded as YAML and is never written by the app.
package program

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/harperreed/hoplit/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed program.yaml
var programYAML []byte

// ErrUnknownExercise is returned when an exercise reference matches nothing.
var ErrUnknownExercise = errors.New("unknown exercise")

// Program is the full static content of the app.
type Program struct {
	Name     string           `yaml:"name" json:"name"`
	Summary  string           `yaml:"summary" json:"summary"`
	Training []models.Routine `yaml:"training" json:"training"`
	Diet     []models.DietDay `yaml:"diet" json:"diet"`
	Glossary models.Glossary  `yaml:"glossary" json:"glossary"`
}

// Entry is an exercise together with the routine it belongs to.
type Entry struct {
	models.Exercise
	DayKey  string `json:"day_key"`
	DayType string `json:"day_type"`
}

var (
	defaultProgram *Program
	defaultOnce    sync.Once
	defaultErr     error
)

// Default returns the embedded program, parsed once.
func Default() (*Program, error) {
	defaultOnce.Do(func() {
		defaultProgram, defaultErr = Parse(programYAML)
	})
	return defaultProgram, defaultErr
}

// Parse decodes and validates program YAML.
func Parse(data []byte) (*Program, error) {
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse program: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Program) validate() error {
	if len(p.Training) == 0 {
		return fmt.Errorf("program has no training days")
	}
	seen := make(map[string]string)
	for _, r := range p.Training {
		if r.Key == "" {
			return fmt.Errorf("training day %q has no key", r.Label)
		}
		for _, ex := range r.Exercises {
			if ex.ID == "" {
				return fmt.Errorf("exercise %q on %s has no id", ex.Name, r.Key)
			}
			if other, dup := seen[ex.ID]; dup {
				return fmt.Errorf("duplicate exercise id %s on %s and %s", ex.ID, other, r.Key)
			}
			seen[ex.ID] = r.Key
		}
	}
	return nil
}

// DayOrder returns the training day keys in program order.
func (p *Program) DayOrder() []string {
	keys := make([]string, len(p.Training))
	for i, r := range p.Training {
		keys[i] = r.Key
	}
	return keys
}

// Routine returns the training day with the given key.
func (p *Program) Routine(key string) (*models.Routine, bool) {
	for i := range p.Training {
		if strings.EqualFold(p.Training[i].Key, key) {
			return &p.Training[i], true
		}
	}
	return nil, false
}

// DietDay returns the meal plan with the given key ("training" or "rest").
func (p *Program) DietDay(key string) (*models.DietDay, bool) {
	for i := range p.Diet {
		if strings.EqualFold(p.Diet[i].Key, key) {
			return &p.Diet[i], true
		}
	}
	return nil, false
}

// FindExercise resolves an exercise by exact ID, exact name, or a unique
// case-insensitive name substring.
func (p *Program) FindExercise(ref string) (*Entry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty exercise reference: %w", ErrUnknownExercise)
	}

	var partial []Entry
	needle := strings.ToLower(ref)
	for _, r := range p.Training {
		for _, ex := range r.Exercises {
			entry := Entry{Exercise: ex, DayKey: r.Key, DayType: r.Type}
			if ex.ID == ref || ex.Name == ref {
				return &entry, nil
			}
			if strings.Contains(strings.ToLower(ex.Name), needle) {
				partial = append(partial, entry)
			}
		}
	}

	switch len(partial) {
	case 0:
		return nil, fmt.Errorf("%s: %w", ref, ErrUnknownExercise)
	case 1:
		return &partial[0], nil
	default:
		names := make([]string, len(partial))
		for i, e := range partial {
			names[i] = e.ID
		}
		return nil, fmt.Errorf("ambiguous exercise %q: matches %s", ref, strings.Join(names, ", "))
	}
}

// Exercises returns every exercise in program order.
func (p *Program) Exercises() []Entry {
	var out []Entry
	for _, r := range p.Training {
		for _, ex := range r.Exercises {
			out = append(out, Entry{Exercise: ex, DayKey: r.Key, DayType: r.Type})
		}
	}
	return out
}

// ABOUTME: Export and import functionality for exercise logs.
// ABOUTME: Supports JSON (restorable) and YAML (grouped by date) formats.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/hoplit/internal/models"
	"gopkg.in/yaml.v3"
)

const exportVersion = "1.0"

// ExportData represents the full export format for hoplit data.
type ExportData struct {
	Version    string                `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool       string                `json:"tool" yaml:"tool"`
	Logs       []*models.ExerciseLog `json:"logs" yaml:"logs"`
}

func newExportData(logs []*models.ExerciseLog) *ExportData {
	return &ExportData{
		Version:    exportVersion,
		ExportedAt: time.Now(),
		Tool:       "hoplit",
		Logs:       logs,
	}
}

// GetAllData retrieves all logs for export.
func (d *DB) GetAllData() (*ExportData, error) {
	logs, err := d.listAllLogs()
	if err != nil {
		return nil, err
	}
	return newExportData(logs), nil
}

// ImportData upserts every log of an export.
func (d *DB) ImportData(data *ExportData) error {
	return importLogs(d, data)
}

// GetAllData retrieves all logs for export.
func (s *KVStore) GetAllData() (*ExportData, error) {
	logs, err := s.listAllLogs()
	if err != nil {
		return nil, err
	}
	return newExportData(logs), nil
}

// ImportData upserts every log of an export.
func (s *KVStore) ImportData(data *ExportData) error {
	return importLogs(s, data)
}

func importLogs(repo Repository, data *ExportData) error {
	for _, l := range data.Logs {
		if l == nil {
			continue
		}
		if err := repo.UpsertLog(l); err != nil {
			return fmt.Errorf("import log %s: %w", l.ID, err)
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML, grouped by user and date.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                                `yaml:"version"`
		ExportedAt string                                `yaml:"exported_at"`
		Tool       string                                `yaml:"tool"`
		Users      map[string]map[string][]yamlLogEntry `yaml:"users"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Users:      make(map[string]map[string][]yamlLogEntry),
	}

	for _, l := range data.Logs {
		byDate, ok := yamlData.Users[l.UserID]
		if !ok {
			byDate = make(map[string][]yamlLogEntry)
			yamlData.Users[l.UserID] = byDate
		}
		entry := yamlLogEntry{
			ID:        l.ShortID(),
			Exercise:  l.ExerciseName,
			DayType:   l.DayType,
			Completed: l.Completed,
		}
		if l.Weight != nil {
			entry.Weight = *l.Weight
		}
		byDate[l.Date] = append(byDate[l.Date], entry)
	}

	for _, byDate := range yamlData.Users {
		for date := range byDate {
			entries := byDate[date]
			sort.SliceStable(entries, func(i, j int) bool {
				return entries[i].Exercise < entries[j].Exercise
			})
		}
	}

	return yaml.Marshal(yamlData)
}

type yamlLogEntry struct {
	ID        string  `yaml:"id"`
	Exercise  string  `yaml:"exercise"`
	DayType   string  `yaml:"day_type,omitempty"`
	Weight    float64 `yaml:"weight,omitempty"`
	Completed bool    `yaml:"completed"`
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, data []byte) (int, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return 0, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if err := repo.ImportData(&exportData); err != nil {
		return 0, err
	}
	return len(exportData.Logs), nil
}

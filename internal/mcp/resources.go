// ABOUTME: MCP resource implementations for hoplit.
// ABOUTME: Provides hoplit://progress and hoplit://today resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/hoplit/internal/models"
	"github.com/harperreed/hoplit/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	progressURI = "hoplit://progress"
	todayURI    = "hoplit://today"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         progressURI,
		Name:        "Training Progress",
		Description: "Gym days, 30-day streak and weight series per exercise",
		MIMEType:    "application/json",
	}, s.handleProgressResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Training",
		Description: "Today's routine with completion and last weight per exercise",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

// Resource handlers

func (s *Server) handleProgressResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sum, err := s.summary()
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	return jsonResource(progressURI, s.progressOutput(sum))
}

type todayOutput struct {
	Date      string           `json:"date"`
	Weekday   string           `json:"weekday"`
	RestDay   bool             `json:"rest_day"`
	Routine   string           `json:"routine,omitempty"`
	DayType   string           `json:"day_type,omitempty"`
	Exercises []tracker.Status `json:"exercises"`
	Done      int              `json:"done"`
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := s.now()
	weekday := strings.ToLower(today.Weekday().String())

	out := todayOutput{
		Date:      today.Format(models.DateLayout),
		Weekday:   weekday,
		Exercises: []tracker.Status{},
	}

	routine, ok := s.program.Routine(weekday)
	if !ok {
		out.RestDay = true
		return jsonResource(todayURI, out)
	}
	out.Routine = routine.Label
	out.DayType = routine.Type

	logs, err := tracker.Snapshot(s.repo, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	for _, e := range s.program.Exercises() {
		if e.DayKey != routine.Key {
			continue
		}
		st := tracker.ExerciseStatus(logs, e, today)
		if st.Completed {
			out.Done++
		}
		out.Exercises = append(out.Exercises, st)
	}

	return jsonResource(todayURI, out)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

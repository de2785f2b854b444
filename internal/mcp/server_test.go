// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/hoplit/internal/logging"
	"github.com/harperreed/hoplit/internal/models"
	"github.com/harperreed/hoplit/internal/storage"
	"github.com/harperreed/hoplit/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "hoplit-mcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := storage.Open(filepath.Join(tmpDir, "hoplit.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// monday is 2024-03-04, a training day.
var monday = time.Date(2024, time.March, 4, 18, 30, 0, 0, time.Local)

// setupServer returns a server whose clock reads now.
func setupServer(t *testing.T, now time.Time) (*Server, *storage.DB) {
	t.Helper()
	db := setupTestDB(t)
	server, err := NewServer(db, "local", logging.Discard())
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	server.now = func() time.Time { return now }
	return server, db
}

func TestNewServer(t *testing.T) {
	server, _ := setupServer(t, monday)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
	if server.program == nil {
		t.Error("Expected program to be loaded")
	}
}

func TestHandleGetProgram(t *testing.T) {
	server, _ := setupServer(t, monday)
	ctx := context.Background()

	_, all, err := server.handleGetProgram(ctx, &mcp.CallToolRequest{}, getProgramInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if all == nil {
		t.Fatal("Expected program output")
	}

	_, day, err := server.handleGetProgram(ctx, &mcp.CallToolRequest{}, getProgramInput{Day: "Wednesday"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	r, ok := day.(*models.Routine)
	if !ok {
		t.Fatalf("Expected *models.Routine, got %T", day)
	}
	if r.Type != "Pull" {
		t.Errorf("Type = %s, want Pull", r.Type)
	}

	if _, _, err := server.handleGetProgram(ctx, &mcp.CallToolRequest{}, getProgramInput{Day: "sunday"}); err == nil {
		t.Error("Expected error for rest day")
	}
}

func TestHandleToggleExercise(t *testing.T) {
	server, db := setupServer(t, monday)
	ctx := context.Background()

	_, out, err := server.handleToggleExercise(ctx, &mcp.CallToolRequest{}, exerciseInput{Exercise: "mon-1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !out.Completed {
		t.Error("Expected exercise to be completed after first toggle")
	}
	if out.Date != "2024-03-04" {
		t.Errorf("Date = %s, want 2024-03-04", out.Date)
	}
	if len(out.ID) != 8 {
		t.Errorf("Expected 8-char ID, got %q", out.ID)
	}
	if !strings.Contains(out.Message, "done") {
		t.Errorf("Message = %q", out.Message)
	}

	_, out, err = server.handleToggleExercise(ctx, &mcp.CallToolRequest{}, exerciseInput{Exercise: "Back Squat"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Completed {
		t.Error("Expected second toggle to clear completion")
	}

	logs, _ := db.ListLogs("local")
	if len(logs) != 1 {
		t.Errorf("Expected 1 stored log, got %d", len(logs))
	}
}

func TestHandleToggleExerciseUnknown(t *testing.T) {
	server, _ := setupServer(t, monday)

	_, _, err := server.handleToggleExercise(context.Background(), &mcp.CallToolRequest{}, exerciseInput{Exercise: "zumba"})
	if err == nil {
		t.Error("Expected error for unknown exercise")
	}
}

func TestHandleLogWeight(t *testing.T) {
	server, _ := setupServer(t, monday)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   logWeightInput
		wantErr error
	}{
		{"valid weight", logWeightInput{Exercise: "mon-1", Weight: 100}, nil},
		{"zero weight", logWeightInput{Exercise: "mon-1", Weight: 0}, tracker.ErrInvalidWeight},
		{"negative weight", logWeightInput{Exercise: "mon-1", Weight: -10}, tracker.ErrInvalidWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleLogWeight(ctx, &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.Weight == nil || *out.Weight != tt.input.Weight {
				t.Errorf("Weight = %v, want %v", out.Weight, tt.input.Weight)
			}
			if out.Completed {
				t.Error("Expected weight-only log to stay uncompleted")
			}
		})
	}
}

func TestHandleListLogs(t *testing.T) {
	server, _ := setupServer(t, monday)
	ctx := context.Background()

	_, empty, err := server.handleListLogs(ctx, &mcp.CallToolRequest{}, listLogsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if empty.Count != 0 {
		t.Errorf("Expected 0 logs, got %d", empty.Count)
	}

	for _, ex := range []string{"mon-1", "mon-2", "mon-3"} {
		if _, _, err := server.handleToggleExercise(ctx, &mcp.CallToolRequest{}, exerciseInput{Exercise: ex}); err != nil {
			t.Fatalf("toggle %s failed: %v", ex, err)
		}
	}

	_, out, err := server.handleListLogs(ctx, &mcp.CallToolRequest{}, listLogsInput{Limit: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Count != 2 || len(out.Logs) != 2 {
		t.Errorf("Expected 2 logs, got %d", out.Count)
	}
}

func TestHandleDeleteLog(t *testing.T) {
	server, db := setupServer(t, monday)
	ctx := context.Background()

	_, logged, err := server.handleLogWeight(ctx, &mcp.CallToolRequest{}, logWeightInput{Exercise: "mon-1", Weight: 80})
	if err != nil {
		t.Fatalf("log_weight failed: %v", err)
	}

	_, out, err := server.handleDeleteLog(ctx, &mcp.CallToolRequest{}, deleteLogInput{ID: logged.ID})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.Message, logged.ID) {
		t.Errorf("Message = %q", out.Message)
	}

	if _, err := db.FindLog("local", "mon-1", "2024-03-04"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected log to be deleted, got %v", err)
	}

	if _, _, err := server.handleDeleteLog(ctx, &mcp.CallToolRequest{}, deleteLogInput{ID: logged.ID}); err == nil {
		t.Error("Expected error deleting missing log")
	}
	if _, _, err := server.handleDeleteLog(ctx, &mcp.CallToolRequest{}, deleteLogInput{}); err == nil {
		t.Error("Expected error for empty ID")
	}
}

func TestHandleDeleteLogOtherUser(t *testing.T) {
	server, db := setupServer(t, monday)
	ctx := context.Background()

	other := &models.ExerciseLog{UserID: "bob", ExerciseID: "mon-1", ExerciseName: "1. Back Squat", DayType: "Push", Date: "2024-03-04", Completed: true}
	if err := db.UpsertLog(other); err != nil {
		t.Fatalf("UpsertLog failed: %v", err)
	}

	_, _, err := server.handleDeleteLog(ctx, &mcp.CallToolRequest{}, deleteLogInput{ID: other.ShortID()})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another user's log, got %v", err)
	}
	if _, err := db.FindLog("bob", "mon-1", "2024-03-04"); err != nil {
		t.Errorf("Expected bob's log to survive, got %v", err)
	}
}

// seedHistory stores the worked example: Squat on 03-01 and 03-08, a bench
// check on 03-05.
func seedHistory(t *testing.T, db *storage.DB) {
	t.Helper()
	entries := []*models.ExerciseLog{
		{UserID: "local", ExerciseID: "mon-1", ExerciseName: "1. Back Squat", DayType: "Push", Date: "2024-03-01"},
		{UserID: "local", ExerciseID: "mon-2", ExerciseName: "2. Flat Bench Press", DayType: "Push", Date: "2024-03-05", Completed: true},
		{UserID: "local", ExerciseID: "mon-1", ExerciseName: "1. Back Squat", DayType: "Push", Date: "2024-03-08"},
	}
	entries[0].WithWeight(100)
	entries[2].WithWeight(105)
	for _, l := range entries {
		if err := db.UpsertLog(l); err != nil {
			t.Fatalf("UpsertLog failed: %v", err)
		}
	}
}

func TestHandleGetProgress(t *testing.T) {
	server, db := setupServer(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local))
	seedHistory(t, db)

	_, out, err := server.handleGetProgress(context.Background(), &mcp.CallToolRequest{}, progressInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Streak != 3 {
		t.Errorf("Streak = %d, want 3", out.Streak)
	}
	if len(out.GymDays) != 3 {
		t.Errorf("Expected 3 gym days, got %d", len(out.GymDays))
	}
	squat := out.Series["1. Back Squat"]
	if len(squat) != 2 || squat[0].Weight != 100 || squat[1].Weight != 105 {
		t.Errorf("Squat series = %+v", squat)
	}
	if out.Today != "2024-03-10" {
		t.Errorf("Today = %s", out.Today)
	}
}

func TestHandleGetCalendar(t *testing.T) {
	server, db := setupServer(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local))
	seedHistory(t, db)
	ctx := context.Background()

	_, out, err := server.handleGetCalendar(ctx, &mcp.CallToolRequest{}, calendarInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Year != 2024 || out.Month != 3 {
		t.Errorf("Got %d-%d, want 2024-3", out.Year, out.Month)
	}
	if out.LeadingBlanks != 4 {
		t.Errorf("LeadingBlanks = %d, want 4", out.LeadingBlanks)
	}
	if len(out.Days) != 31 {
		t.Fatalf("Expected 31 days, got %d", len(out.Days))
	}
	if !out.Days[0].GymDay || out.Days[0].DayType != "Push" {
		t.Errorf("Expected March 1 to be a Push gym day: %+v", out.Days[0])
	}
	if out.Days[1].GymDay {
		t.Error("March 2 should not be a gym day")
	}
	if !out.Days[9].Today {
		t.Error("March 10 should be today")
	}

	_, feb, err := server.handleGetCalendar(ctx, &mcp.CallToolRequest{}, calendarInput{Month: "2024-02"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(feb.Days) != 29 {
		t.Errorf("Expected 29 days in February 2024, got %d", len(feb.Days))
	}

	if _, _, err := server.handleGetCalendar(ctx, &mcp.CallToolRequest{}, calendarInput{Month: "2024-13"}); err == nil {
		t.Error("Expected error for invalid month")
	}
}

func TestHandleGetExerciseHistory(t *testing.T) {
	server, db := setupServer(t, monday)
	seedHistory(t, db)

	_, out, err := server.handleGetExerciseHistory(context.Background(), &mcp.CallToolRequest{}, historyInput{Exercise: "mon-1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.History) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(out.History))
	}
	if out.History[0].Date != "2024-03-08" {
		t.Errorf("Expected newest first, got %s", out.History[0].Date)
	}
	if out.Last == nil || *out.Last != 105 {
		t.Errorf("Last = %v, want 105", out.Last)
	}
}

func TestHandleGetExerciseHistoryEmpty(t *testing.T) {
	server, _ := setupServer(t, monday)

	_, out, err := server.handleGetExerciseHistory(context.Background(), &mcp.CallToolRequest{}, historyInput{Exercise: "wed-1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.History) != 0 || out.Last != nil {
		t.Errorf("Expected empty history, got %+v", out)
	}
}

func TestHandleGetChart(t *testing.T) {
	server, db := setupServer(t, monday)
	seedHistory(t, db)
	ctx := context.Background()

	_, out, err := server.handleGetChart(ctx, &mcp.CallToolRequest{}, chartInput{Exercise: "mon-1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.Points, "20,") || !strings.Contains(out.Points, " 280,") {
		t.Errorf("Points = %q", out.Points)
	}
	if out.Last != 105 {
		t.Errorf("Last = %v, want 105", out.Last)
	}
	if !strings.HasPrefix(out.SVG, "<svg") {
		t.Errorf("Expected SVG document, got %q", out.SVG)
	}

	if _, _, err := server.handleGetChart(ctx, &mcp.CallToolRequest{}, chartInput{Exercise: "wed-1"}); err == nil {
		t.Error("Expected no-data error for exercise without weights")
	}
	if _, _, err := server.handleGetChart(ctx, &mcp.CallToolRequest{}, chartInput{Exercise: "mon-1", Width: 30}); err == nil {
		t.Error("Expected error for canvas smaller than its padding")
	}
}

func TestHandleProgressResource(t *testing.T) {
	server, db := setupServer(t, monday)
	seedHistory(t, db)

	result, err := server.handleProgressResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != "hoplit://progress" {
		t.Errorf("URI = %s, want hoplit://progress", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}

	var out progressOutput
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &out); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(out.GymDays) != 3 {
		t.Errorf("Expected 3 gym days, got %d", len(out.GymDays))
	}
}

func TestHandleProgressResourceReportsMalformedDates(t *testing.T) {
	server, db := setupServer(t, monday)
	bad := &models.ExerciseLog{UserID: "local", ExerciseID: "mon-1", ExerciseName: "1. Back Squat", Date: "03/01/2024", Completed: true}
	if err := db.UpsertLog(bad); err != nil {
		t.Fatalf("UpsertLog failed: %v", err)
	}

	_, out, err := server.handleGetProgress(context.Background(), &mcp.CallToolRequest{}, progressInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1", out.Excluded)
	}
	if len(out.GymDays) != 0 {
		t.Errorf("Expected malformed log to be skipped, got %d gym days", len(out.GymDays))
	}
}

func TestHandleTodayResource(t *testing.T) {
	server, db := setupServer(t, monday)
	seedHistory(t, db)
	ctx := context.Background()

	if _, _, err := server.handleToggleExercise(ctx, &mcp.CallToolRequest{}, exerciseInput{Exercise: "mon-1"}); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].URI != "hoplit://today" {
		t.Errorf("URI = %s, want hoplit://today", result.Contents[0].URI)
	}

	var out todayOutput
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &out); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if out.RestDay {
		t.Error("Monday should be a training day")
	}
	if out.DayType != "Push" {
		t.Errorf("DayType = %s, want Push", out.DayType)
	}
	if len(out.Exercises) != 5 {
		t.Fatalf("Expected 5 exercises, got %d", len(out.Exercises))
	}
	if out.Done != 1 || !out.Exercises[0].Completed {
		t.Errorf("Expected squat done, got done=%d", out.Done)
	}
	if out.Exercises[0].LastWeight == nil || *out.Exercises[0].LastWeight != 105 {
		t.Errorf("LastWeight = %v, want 105", out.Exercises[0].LastWeight)
	}
}

func TestHandleTodayResourceRestDay(t *testing.T) {
	server, _ := setupServer(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local))

	result, err := server.handleTodayResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var out todayOutput
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &out); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !out.RestDay {
		t.Error("Sunday should be a rest day")
	}
	if out.Weekday != "sunday" {
		t.Errorf("Weekday = %s, want sunday", out.Weekday)
	}
}

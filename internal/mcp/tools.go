// ABOUTME: MCP tool implementations for hoplit.
// ABOUTME: Program lookup, daily tracking, log management and progress views.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/hoplit/internal/models"
	"github.com/harperreed/hoplit/internal/progress"
	"github.com/harperreed/hoplit/internal/render"
	"github.com/harperreed/hoplit/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_program",
		Description: "Get the weekly training program, or one training day",
	}, s.handleGetProgram)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_exercise",
		Description: "Toggle today's completion checkbox for an exercise",
	}, s.handleToggleExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_weight",
		Description: "Record today's working weight in kg for an exercise",
	}, s.handleLogWeight)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_logs",
		Description: "List exercise logs, newest first",
	}, s.handleListLogs)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_log",
		Description: "Delete an exercise log by ID or ID prefix",
	}, s.handleDeleteLog)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progress",
		Description: "Get gym days, the 30-day streak and weight series per exercise",
	}, s.handleGetProgress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_calendar",
		Description: "Get the Monday-first calendar grid of a month with gym days marked",
	}, s.handleGetCalendar)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_exercise_history",
		Description: "Get the weight history of an exercise, newest first",
	}, s.handleGetExerciseHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_chart",
		Description: "Render an exercise's weight progression as an SVG line chart",
	}, s.handleGetChart)
}

// Tool input/output types

type getProgramInput struct {
	Day string `json:"day,omitempty" jsonschema:"Training day key (monday, wednesday, friday); omit for the whole program"`
}

type exerciseInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise ID such as mon-1, or a unique part of its name"`
}

type logWeightInput struct {
	Exercise string  `json:"exercise" jsonschema:"Exercise ID such as mon-1, or a unique part of its name"`
	Weight   float64 `json:"weight" jsonschema:"Weight in kg, must be positive"`
}

type listLogsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type deleteLogInput struct {
	ID string `json:"id" jsonschema:"Log ID or prefix"`
}

type progressInput struct{}

type calendarInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month as YYYY-MM, defaults to the current month"`
}

type historyInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise ID such as mon-1, or a unique part of its name"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max entries, 0 for all"`
}

type chartInput struct {
	Exercise string  `json:"exercise" jsonschema:"Exercise ID such as mon-1, or a unique part of its name"`
	Width    float64 `json:"width,omitempty" jsonschema:"Canvas width (default 300)"`
	Height   float64 `json:"height,omitempty" jsonschema:"Canvas height (default 200)"`
	Padding  float64 `json:"padding,omitempty" jsonschema:"Canvas padding (default 20)"`
}

type logOutput struct {
	ID         string   `json:"id"`
	ExerciseID string   `json:"exercise_id"`
	Exercise   string   `json:"exercise"`
	DayType    string   `json:"day_type,omitempty"`
	Date       string   `json:"date"`
	Weight     *float64 `json:"weight,omitempty"`
	Completed  bool     `json:"completed"`
	Message    string   `json:"message,omitempty"`
}

type listLogsOutput struct {
	Count int         `json:"count"`
	Logs  []logOutput `json:"logs"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type sampleOutput struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

type gymDayOutput struct {
	Date    string `json:"date"`
	DayType string `json:"day_type,omitempty"`
}

type progressOutput struct {
	Today    string                    `json:"today"`
	Streak   int                       `json:"streak"`
	GymDays  []gymDayOutput            `json:"gym_days"`
	Series   map[string][]sampleOutput `json:"series"`
	Excluded int                       `json:"excluded"`
}

type calendarDay struct {
	Day     int    `json:"day"`
	Date    string `json:"date"`
	GymDay  bool   `json:"gym_day"`
	DayType string `json:"day_type,omitempty"`
	Today   bool   `json:"today,omitempty"`
}

type calendarOutput struct {
	Year          int           `json:"year"`
	Month         int           `json:"month"`
	MonthName     string        `json:"month_name"`
	LeadingBlanks int           `json:"leading_blanks"`
	Days          []calendarDay `json:"days"`
}

type historyOutput struct {
	ExerciseID string         `json:"exercise_id"`
	Exercise   string         `json:"exercise"`
	Last       *float64       `json:"last,omitempty"`
	History    []sampleOutput `json:"history"`
}

type chartOutput struct {
	Exercise string  `json:"exercise"`
	Points   string  `json:"points"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Last     float64 `json:"last"`
	SVG      string  `json:"svg"`
}

func toLogOutput(l *models.ExerciseLog) logOutput {
	return logOutput{
		ID:         l.ShortID(),
		ExerciseID: l.ExerciseID,
		Exercise:   l.ExerciseName,
		DayType:    l.DayType,
		Date:       l.Date,
		Weight:     l.Weight,
		Completed:  l.Completed,
	}
}

func toSamples(samples []progress.Sample) []sampleOutput {
	out := make([]sampleOutput, len(samples))
	for i, smp := range samples {
		out[i] = sampleOutput{Date: progress.FormatDate(smp.Date), Weight: smp.Weight}
	}
	return out
}

// Tool handlers

func (s *Server) handleGetProgram(ctx context.Context, req *mcp.CallToolRequest, input getProgramInput) (*mcp.CallToolResult, any, error) {
	if input.Day == "" {
		return nil, s.program, nil
	}
	r, ok := s.program.Routine(input.Day)
	if !ok {
		return nil, nil, fmt.Errorf("unknown training day %q (have %s)", input.Day, strings.Join(s.program.DayOrder(), ", "))
	}
	return nil, r, nil
}

func (s *Server) handleToggleExercise(ctx context.Context, req *mcp.CallToolRequest, input exerciseInput) (*mcp.CallToolResult, logOutput, error) {
	ex, err := s.program.FindExercise(input.Exercise)
	if err != nil {
		return nil, logOutput{}, err
	}

	l, err := tracker.ToggleCompleted(s.repo, s.userID, *ex, s.now())
	if err != nil {
		return nil, logOutput{}, fmt.Errorf("failed to toggle exercise: %w", err)
	}

	out := toLogOutput(l)
	state := "not done"
	if l.Completed {
		state = "done"
	}
	out.Message = fmt.Sprintf("Marked %s %s for %s (ID: %s)", ex.Name, state, l.Date, l.ShortID())
	return nil, out, nil
}

func (s *Server) handleLogWeight(ctx context.Context, req *mcp.CallToolRequest, input logWeightInput) (*mcp.CallToolResult, logOutput, error) {
	ex, err := s.program.FindExercise(input.Exercise)
	if err != nil {
		return nil, logOutput{}, err
	}

	l, err := tracker.RecordWeight(s.repo, s.userID, *ex, s.now(), input.Weight)
	if err != nil {
		return nil, logOutput{}, fmt.Errorf("failed to log weight: %w", err)
	}

	out := toLogOutput(l)
	out.Message = fmt.Sprintf("Logged %s: %s on %s (ID: %s)", ex.Name, render.FormatWeight(input.Weight), l.Date, l.ShortID())
	return nil, out, nil
}

func (s *Server) handleListLogs(ctx context.Context, req *mcp.CallToolRequest, input listLogsInput) (*mcp.CallToolResult, listLogsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	logs, err := s.repo.ListLogs(s.userID)
	if err != nil {
		return nil, listLogsOutput{}, fmt.Errorf("failed to list logs: %w", err)
	}

	out := listLogsOutput{Logs: []logOutput{}}
	for i := len(logs) - 1; i >= 0 && len(out.Logs) < input.Limit; i-- {
		out.Logs = append(out.Logs, toLogOutput(logs[i]))
	}
	out.Count = len(out.Logs)
	return nil, out, nil
}

func (s *Server) handleDeleteLog(ctx context.Context, req *mcp.CallToolRequest, input deleteLogInput) (*mcp.CallToolResult, simpleOutput, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, simpleOutput{}, fmt.Errorf("id is required")
	}
	if err := s.repo.DeleteLog(s.userID, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete log: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted log: %s", input.ID),
	}, nil
}

func (s *Server) handleGetProgress(ctx context.Context, req *mcp.CallToolRequest, input progressInput) (*mcp.CallToolResult, progressOutput, error) {
	sum, err := s.summary()
	if err != nil {
		return nil, progressOutput{}, fmt.Errorf("failed to load progress: %w", err)
	}
	return nil, s.progressOutput(sum), nil
}

func (s *Server) progressOutput(sum *progress.Summary) progressOutput {
	out := progressOutput{
		Today:    s.now().Format(models.DateLayout),
		Streak:   sum.Streak,
		GymDays:  make([]gymDayOutput, len(sum.GymDays)),
		Series:   make(map[string][]sampleOutput, len(sum.Series)),
		Excluded: len(sum.Excluded),
	}
	for i, gd := range sum.GymDays {
		out.GymDays[i] = gymDayOutput{Date: progress.FormatDate(gd.Date), DayType: gd.DayType}
	}
	for name, samples := range sum.Series {
		out.Series[name] = toSamples(samples)
	}
	return out
}

func (s *Server) handleGetCalendar(ctx context.Context, req *mcp.CallToolRequest, input calendarInput) (*mcp.CallToolResult, calendarOutput, error) {
	today := s.now()
	year, month := today.Year(), today.Month()
	if input.Month != "" {
		var err error
		year, month, err = progress.ParseMonth(input.Month)
		if err != nil {
			return nil, calendarOutput{}, err
		}
	}

	sum, err := s.summary()
	if err != nil {
		return nil, calendarOutput{}, fmt.Errorf("failed to load progress: %w", err)
	}
	cells, err := progress.BuildMonth(year, month, sum.GymDays, today)
	if err != nil {
		return nil, calendarOutput{}, err
	}

	out := calendarOutput{
		Year:          year,
		Month:         int(month),
		MonthName:     month.String(),
		LeadingBlanks: progress.LeadingBlanks(cells),
		Days:          []calendarDay{},
	}
	for _, c := range cells {
		if c.Blank {
			continue
		}
		out.Days = append(out.Days, calendarDay{
			Day:     c.Day(),
			Date:    progress.FormatDate(c.Date),
			GymDay:  c.GymDay,
			DayType: c.DayType,
			Today:   c.Today,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetExerciseHistory(ctx context.Context, req *mcp.CallToolRequest, input historyInput) (*mcp.CallToolResult, historyOutput, error) {
	ex, err := s.program.FindExercise(input.Exercise)
	if err != nil {
		return nil, historyOutput{}, err
	}
	sum, err := s.summary()
	if err != nil {
		return nil, historyOutput{}, fmt.Errorf("failed to load progress: %w", err)
	}

	series := sum.Series[ex.Name]
	out := historyOutput{
		ExerciseID: ex.ID,
		Exercise:   ex.Name,
		History:    toSamples(progress.Newest(series, input.Limit)),
	}
	if last, ok := progress.LastWeight(series); ok {
		out.Last = &last
	}
	return nil, out, nil
}

func (s *Server) handleGetChart(ctx context.Context, req *mcp.CallToolRequest, input chartInput) (*mcp.CallToolResult, chartOutput, error) {
	ex, err := s.program.FindExercise(input.Exercise)
	if err != nil {
		return nil, chartOutput{}, err
	}
	sum, err := s.summary()
	if err != nil {
		return nil, chartOutput{}, fmt.Errorf("failed to load progress: %w", err)
	}

	series := sum.Series[ex.Name]
	if len(series) == 0 {
		return nil, chartOutput{}, fmt.Errorf("no weight data for %s", ex.Name)
	}

	canvas := progress.DefaultCanvas
	if input.Width > 0 {
		canvas.Width = input.Width
	}
	if input.Height > 0 {
		canvas.Height = input.Height
	}
	if input.Padding > 0 {
		canvas.Padding = input.Padding
	}

	plot, err := progress.Scale(series, canvas)
	if err != nil {
		return nil, chartOutput{}, err
	}

	var svg strings.Builder
	if err := render.ChartSVG(&svg, ex.Name, plot, canvas); err != nil {
		return nil, chartOutput{}, err
	}

	return nil, chartOutput{
		Exercise: ex.Name,
		Points:   plot.Polyline(),
		Min:      plot.Min,
		Max:      plot.Max,
		Last:     plot.Last,
		SVG:      svg.String(),
	}, nil
}

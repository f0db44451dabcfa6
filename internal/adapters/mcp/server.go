// Package mcp provides the MCP (Model Context Protocol) server, exposing
// task and statistics tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/pomotui/internal/domain"
	"github.com/xvierd/pomotui/internal/ports"
	"github.com/xvierd/pomotui/internal/stats"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server     *server.MCPServer
	storage    ports.Storage
	aggregator *stats.Aggregator
}

// NewServer creates a new MCP server instance.
func NewServer(storage ports.Storage, aggregator *stats.Aggregator) *Server {
	s := &Server{
		server:     server.NewMCPServer("pomotui", "1.0.0", server.WithLogging()),
		storage:    storage,
		aggregator: aggregator,
	}

	s.registerTools()
	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	createTaskTool := mcp.NewTool(
		"create_task",
		mcp.WithDescription("Create a new task to track pomodoros against"),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("The name of the task"),
		),
		mcp.WithString(
			"description",
			mcp.Description("Optional description of the task"),
		),
	)
	s.server.AddTool(createTaskTool, s.handleCreateTask)

	listTasksTool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks with their pomodoro counts"),
		mcp.WithString(
			"include_completed",
			mcp.Description("Include completed tasks: true or false (default false)"),
		),
	)
	s.server.AddTool(listTasksTool, s.handleListTasks)

	completeTaskTool := mcp.NewTool(
		"complete_task",
		mcp.WithDescription("Mark a task as completed"),
		mcp.WithString(
			"task_id",
			mcp.Required(),
			mcp.Description("The ID of the task to complete"),
		),
	)
	s.server.AddTool(completeTaskTool, s.handleCompleteTask)

	s.server.AddTool(
		mcp.NewTool(
			"today_stats",
			mcp.WithDescription("Get today's completed work sessions, focused minutes and breaks"),
		),
		s.handleTodayStats,
	)

	topTasksTool := mcp.NewTool(
		"top_tasks",
		mcp.WithDescription("Get the tasks with the most completed work sessions"),
		mcp.WithString(
			"limit",
			mcp.Description("Maximum number of tasks to return (default 5)"),
		),
	)
	s.server.AddTool(topTasksTool, s.handleTopTasks)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	return server.ServeStdio(s.server)
}

// handleCreateTask handles the create_task tool.
func (s *Server) handleCreateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	description := request.GetString("description", "")

	task, err := domain.NewTask(name, description)
	if err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}
	if err := s.storage.Tasks().Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return jsonResult(map[string]any{
		"id":   task.ID,
		"name": task.Name,
	})
}

// handleListTasks handles the list_tasks tool.
func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	includeCompleted := request.GetString("include_completed", "false") == "true"

	tasks, err := s.storage.Tasks().FindAll(ctx, includeCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	list := make([]map[string]any, 0, len(tasks))
	for _, t := range tasks {
		entry := map[string]any{
			"id":             t.ID,
			"name":           t.Name,
			"description":    t.Description,
			"pomodoro_count": t.PomodoroCount,
			"completed":      t.IsCompleted(),
		}
		list = append(list, entry)
	}

	return jsonResult(map[string]any{"tasks": list, "count": len(list)})
}

// handleCompleteTask handles the complete_task tool.
func (s *Server) handleCompleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := strconv.ParseInt(request.GetString("task_id", ""), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid task_id: %w", err)
	}

	task, err := s.storage.Tasks().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Complete()
	if err := s.storage.Tasks().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return jsonResult(map[string]any{"id": task.ID, "completed": true})
}

// handleTodayStats handles the today_stats tool.
func (s *Server) handleTodayStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.storage.Sessions().Find(ctx, ports.SessionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	today := s.aggregator.Today(sessions)
	return jsonResult(map[string]any{
		"date":            today.Date.Format("2006-01-02"),
		"work_sessions":   today.WorkSessions,
		"break_sessions":  today.BreakSessions,
		"focused_minutes": today.FocusedMinutes,
		"tasks_worked_on": today.TasksWorkedOn,
	})
}

// handleTopTasks handles the top_tasks tool.
func (s *Server) handleTopTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 5
	if raw := request.GetString("limit", ""); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: %w", err)
		}
		limit = parsed
	}

	sessions, err := s.storage.Sessions().Find(ctx, ports.SessionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	tasks, err := s.storage.Tasks().FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	top := s.aggregator.TopTasks(sessions, tasks, limit)
	list := make([]map[string]any, 0, len(top))
	for _, t := range top {
		list = append(list, map[string]any{
			"task_id":       t.Task.ID,
			"name":          t.Task.Name,
			"work_sessions": t.WorkSessions,
		})
	}

	return jsonResult(map[string]any{"top_tasks": list, "generated_at": time.Now().Format(time.RFC3339)})
}

// jsonResult marshals a tool response as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/mindgrid/pkg/analytics"
	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/entity"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddTaskTool(srv, svc)
	registerToggleTaskTool(srv, svc)
	registerListTasksTool(srv, svc)
	registerCompleteHabitTool(srv, svc)
	registerAddGoalTool(srv, svc)
	registerGoalProgressTool(srv, svc)
	registerAddNoteTool(srv, svc)
	registerLinkNoteTool(srv, svc)
	registerSuggestLinksTool(srv, svc)
	registerAddEventTool(srv, svc)
	registerUpcomingTool(srv, svc)
	registerAddHighlightTool(srv, svc)
	registerAddExpenseTool(srv, svc)
	registerAddIncomeTool(srv, svc)
	registerTrackTimeTool(srv, svc)
	registerAnalyticsTool(srv, svc)
	registerSearchTool(srv, svc)
	registerCheckLinksTool(srv, svc)
}

// splitList turns "a, b,c" into [a b c].
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Create a task."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("What needs doing."),
		),
		mcp.WithString("description",
			mcp.Description("Optional longer description."),
		),
		mcp.WithString("priority",
			mcp.Description("Task priority, medium when omitted."),
			mcp.Enum("low", "medium", "high"),
		),
		mcp.WithString("due",
			mcp.Description("Optional due day as YYYY-MM-DD, today or tomorrow."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Priority    string `json:"priority"`
			Due         string `json:"due"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		due, err := svc.parseOptionalDay(args.Due)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid due value: %v", err)), nil
		}
		t, err := svc.App.AddTask(ctx, app.TaskInput{
			Title:       args.Title,
			Description: args.Description,
			Priority:    args.Priority,
			DueDate:     due,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	})
}

func registerToggleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Flip a task between open and completed."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t, err := svc.App.ToggleTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	})
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks, optionally by status or priority."),
		mcp.WithString("status",
			mcp.Description("Completion filter, all when omitted."),
			mcp.Enum("all", "active", "completed"),
		),
		mcp.WithString("priority",
			mcp.Description("Only tasks with this priority."),
			mcp.Enum("low", "medium", "high"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f := app.TaskFilter{Status: app.TaskStatus(request.GetString("status", string(app.TasksAll)))}
		p, err := entity.ParsePriority(request.GetString("priority", ""), "")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		f.Priority = p
		tasks, err := svc.App.Tasks(ctx, f)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerCompleteHabitTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"complete_habit",
		mcp.WithDescription("Record a habit completion for today and update its streak."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Habit identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		h, err := svc.App.CompleteHabit(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(h)
	})
}

func registerAddGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_goal",
		mcp.WithDescription("Create a goal."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Goal title."),
		),
		mcp.WithString("description",
			mcp.Description("Optional longer description."),
		),
		mcp.WithString("category",
			mcp.Description("Goal category, personal when omitted."),
			mcp.Enum("personal", "health", "career", "finance", "learning", "other"),
		),
		mcp.WithString("target_date",
			mcp.Description("Optional target day as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Category    string `json:"category"`
			TargetDate  string `json:"target_date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		target, err := svc.parseOptionalDay(args.TargetDate)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid target_date value: %v", err)), nil
		}
		g, err := svc.App.AddGoal(ctx, app.GoalInput{
			Title:       args.Title,
			Description: args.Description,
			Category:    args.Category,
			TargetDate:  target,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerGoalProgressTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_goal_progress",
		mcp.WithDescription("Set a goal's progress percentage."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Goal identifier."),
		),
		mcp.WithNumber("progress",
			mcp.Required(),
			mcp.Description("Progress from 0 to 100."),
			mcp.Min(0),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		g, err := svc.App.SetGoalProgress(ctx, id, request.GetInt("progress", -1))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerAddNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_note",
		mcp.WithDescription("Write a note, optionally tagged and linked to tasks or goals."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Note title."),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Note body."),
		),
		mcp.WithString("tags",
			mcp.Description("Comma separated tags."),
		),
		mcp.WithString("task_ids",
			mcp.Description("Comma separated task identifiers to link."),
		),
		mcp.WithString("goal_ids",
			mcp.Description("Comma separated goal identifiers to link."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title   string `json:"title"`
			Content string `json:"content"`
			Tags    string `json:"tags"`
			TaskIDs string `json:"task_ids"`
			GoalIDs string `json:"goal_ids"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		n, err := svc.App.AddNote(ctx, app.NoteInput{
			Title:       args.Title,
			Content:     args.Content,
			Tags:        splitList(args.Tags),
			LinkedTasks: splitList(args.TaskIDs),
			LinkedGoals: splitList(args.GoalIDs),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(n)
	})
}

func registerLinkNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"link_note",
		mcp.WithDescription("Link a note to a task, goal or another note. Note to note links are kept on both notes."),
		mcp.WithString("note_id",
			mcp.Required(),
			mcp.Description("Note identifier."),
		),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("What to link to."),
			mcp.Enum("task", "goal", "note"),
		),
		mcp.WithString("target_id",
			mcp.Required(),
			mcp.Description("Identifier of the task, goal or note."),
		),
		mcp.WithBoolean("unlink",
			mcp.Description("Remove the link instead of adding it."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		noteID, err := request.RequireString("note_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		target, err := request.RequireString("target")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		targetID, err := request.RequireString("target_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		op := svc.App.LinkNote
		if request.GetBool("unlink", false) {
			op = svc.App.UnlinkNote
		}
		if _, err := op(ctx, noteID, app.LinkTarget(target), targetID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		n, err := svc.App.ShowNote(ctx, noteID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(n)
	})
}

func registerSuggestLinksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"suggest_links",
		mcp.WithDescription("Find tasks, goals and notes whose titles a note mentions without linking them."),
		mcp.WithString("note_id",
			mcp.Required(),
			mcp.Description("Note identifier."),
		),
		mcp.WithBoolean("apply",
			mcp.Description("Link every suggestion."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		noteID, err := request.RequireString("note_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		op := svc.App.SuggestLinks
		if request.GetBool("apply", false) {
			op = svc.App.ApplySuggestions
		}
		ms, err := op(ctx, noteID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"suggestions": ms, "applied": request.GetBool("apply", false)})
	})
}

func registerAddEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_event",
		mcp.WithDescription("Schedule a calendar event."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title."),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start as RFC3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD."),
		),
		mcp.WithString("end",
			mcp.Description("End, one hour after start when omitted."),
		),
		mcp.WithBoolean("all_day",
			mcp.Description("Span the whole start day."),
		),
		mcp.WithString("type",
			mcp.Description("Event type, meeting when omitted."),
			mcp.Enum("meeting", "work", "personal", "appointment", "reminder", "other"),
		),
		mcp.WithString("location",
			mcp.Description("Where it happens."),
		),
		mcp.WithNumber("reminder_minutes",
			mcp.Description("Minutes before start to remind."),
			mcp.Min(0),
		),
		mcp.WithString("task_id",
			mcp.Description("Task to link. Takes precedence over goal_id."),
		),
		mcp.WithString("goal_id",
			mcp.Description("Goal to link."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rawStart, err := request.RequireString("start")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in := app.EventInput{
			Title:           title,
			AllDay:          request.GetBool("all_day", false),
			Type:            request.GetString("type", ""),
			Location:        request.GetString("location", ""),
			LinkedTaskID:    request.GetString("task_id", ""),
			LinkedProjectID: request.GetString("goal_id", ""),
		}
		if in.Start, err = svc.parseWhen(rawStart); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start value: %v", err)), nil
		}
		if raw := request.GetString("end", ""); raw != "" {
			if in.End, err = svc.parseWhen(raw); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid end value: %v", err)), nil
			}
		}
		if minutes := request.GetInt("reminder_minutes", -1); minutes >= 0 {
			in.Reminder = &minutes
		}
		e, err := svc.App.AddEvent(ctx, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(e)
	})
}

func registerUpcomingTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"upcoming_events",
		mcp.WithDescription("Events in the next few days grouped by day."),
		mcp.WithNumber("days",
			mcp.Description("How many days ahead to look (default 7)."),
			mcp.Min(1),
			mcp.Max(90),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		days, err := svc.Upcoming(ctx, request.GetInt("days", 7))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"days":  days,
			"count": len(days),
		})
	})
}

func registerAddHighlightTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_highlight",
		mcp.WithDescription("Keep a highlighted passage, optionally attached to a note."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The highlighted passage."),
		),
		mcp.WithString("annotation",
			mcp.Description("A comment on the passage."),
		),
		mcp.WithString("priority",
			mcp.Description("Highlight priority, medium when omitted."),
			mcp.Enum("low", "medium", "high"),
		),
		mcp.WithString("note_id",
			mcp.Description("Note to attach the highlight to."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Text       string `json:"text"`
			Annotation string `json:"annotation"`
			Priority   string `json:"priority"`
			NoteID     string `json:"note_id"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		h, err := svc.App.AddHighlight(ctx, app.HighlightInput{
			Text:         args.Text,
			Annotation:   args.Annotation,
			Priority:     args.Priority,
			LinkedNoteID: args.NoteID,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(h)
	})
}

// moneyArgs are shared by add_expense and add_income.
type moneyArgs struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Source      string  `json:"source"`
	Date        string  `json:"date"`
}

func (s *Service) moneyDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return s.now(), nil
	}
	return s.parseWhen(raw)
}

func registerAddExpenseTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_expense",
		mcp.WithDescription("Record money spent."),
		mcp.WithNumber("amount",
			mcp.Required(),
			mcp.Description("Amount spent, greater than zero."),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What it was for."),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Expense category such as Food or Rent."),
		),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD, today when omitted."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args moneyArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		date, err := svc.moneyDate(args.Date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date value: %v", err)), nil
		}
		e, err := svc.App.AddExpense(ctx, app.ExpenseInput{
			Description: args.Description,
			Amount:      args.Amount,
			Category:    args.Category,
			Date:        date,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(e)
	})
}

func registerAddIncomeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_income",
		mcp.WithDescription("Record money received."),
		mcp.WithNumber("amount",
			mcp.Required(),
			mcp.Description("Amount received, greater than zero."),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What it was for."),
		),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Where it came from."),
		),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD, today when omitted."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args moneyArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		date, err := svc.moneyDate(args.Date)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date value: %v", err)), nil
		}
		inc, err := svc.App.AddIncome(ctx, app.IncomeInput{
			Description: args.Description,
			Amount:      args.Amount,
			Source:      args.Source,
			Date:        date,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(inc)
	})
}

func registerTrackTimeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"track_time",
		mcp.WithDescription("Add minutes spent in a module to the analytics."),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module name such as tasks, notes or finance."),
		),
		mcp.WithNumber("minutes",
			mcp.Required(),
			mcp.Description("Minutes spent."),
			mcp.Min(1),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		module, err := request.RequireString("module")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		minutes := request.GetFloat("minutes", 0)
		d := time.Duration(minutes * float64(time.Minute))
		if err := svc.App.TrackModuleTime(ctx, module, d); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"module":  strings.ToLower(module),
			"minutes": minutes,
		})
	})
}

func registerAnalyticsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_analytics",
		mcp.WithDescription("Completion rates, productivity score, daily trend and module time."),
		mcp.WithString("range",
			mcp.Description("Reporting window, week when omitted."),
			mcp.Enum("week", "month", "quarter"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r, err := analytics.ParseRange(request.GetString("range", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		d, err := svc.App.Analytics(ctx, r)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(d)
	})
}

func registerSearchTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search",
		mcp.WithDescription("Search tasks, goals, notes, events and highlights by substring."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.Search(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerCheckLinksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"check_links",
		mcp.WithDescription("Report links that point at deleted records, and optionally drop them."),
		mcp.WithBoolean("repair",
			mcp.Description("Drop the dangling links."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		audit := svc.App.Audit
		repair := request.GetBool("repair", false)
		if repair {
			audit = svc.App.Repair
		}
		findings, err := audit(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"findings": findings,
			"count":    len(findings),
			"repaired": repair && len(findings) > 0,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}

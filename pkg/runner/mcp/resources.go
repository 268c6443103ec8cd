package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/mindgrid/pkg/analytics"
	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/timeutil"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerOverviewResource(srv, svc)
	registerTasksResource(srv, svc)
	registerHabitsResource(srv, svc)
	registerAgendaResource(srv, svc)
	registerNoteTemplate(srv, svc)
	registerAnalyticsTemplate(srv, svc)
	registerFinanceTemplate(srv, svc)
}

func registerOverviewResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"mindgrid://overview",
		"Overview",
		mcp.WithResourceDescription("How many tasks, habits, goals, notes, events, highlights and finance records are stored."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		overview, err := svc.Overview(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, overview)
	})
}

func registerTasksResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"mindgrid://tasks",
		"Tasks",
		mcp.WithResourceDescription("Every task in insertion order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tasks, err := svc.App.Tasks(ctx, app.TaskFilter{})
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerHabitsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"mindgrid://habits",
		"Habits",
		mcp.WithResourceDescription("Habits with their streaks as of now."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		habits, err := svc.App.Habits(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"habits": habits,
			"count":  len(habits),
		})
	})
}

func registerAgendaResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"mindgrid://agenda",
		"Agenda",
		mcp.WithResourceDescription("Overdue and due tasks, today's events, reminders in the next hour and habits at risk."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		agenda, err := svc.App.Agenda(ctx, time.Hour)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, agenda)
	})
}

func registerNoteTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"mindgrid://notes/{id}",
		"Note",
		mcp.WithTemplateDescription("A note with its links resolved to titles."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request, "id")
		if id == "" {
			return nil, fmt.Errorf("note id is required")
		}
		note, err := svc.App.ShowNote(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, note)
	})
}

func registerAnalyticsTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"mindgrid://analytics/{range}",
		"Analytics",
		mcp.WithTemplateDescription("Completion rates, productivity score, trend and module time for week, month or quarter."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		r, err := analytics.ParseRange(templateArg(request, "range"))
		if err != nil {
			return nil, err
		}
		dashboard, err := svc.App.Analytics(ctx, r)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dashboard)
	})
}

func registerFinanceTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"mindgrid://finance/{month}",
		"Finance",
		mcp.WithTemplateDescription("Income, expenses, budgets and savings goals for a YYYY-MM month."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		month, err := timeutil.ParseMonth(templateArg(request, "month"), svc.now())
		if err != nil {
			return nil, err
		}
		summary, err := svc.App.Finance(ctx, month)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, summary)
	})
}

// templateArg reads a URI template variable, which may arrive as a string
// or a single element slice.
func templateArg(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

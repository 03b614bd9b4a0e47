package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atelierhq/atelier/internal/domain/client"
	"github.com/atelierhq/atelier/internal/domain/document"
	"github.com/atelierhq/atelier/internal/domain/project"
	"github.com/atelierhq/atelier/internal/domain/task"
)

type listClientsInput struct{}

type listClientsOutput struct {
	Clients []client.Client `json:"clients"`
}

type getProjectInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project to fetch"`
}

type listProjectsInput struct{}

type listProjectsOutput struct {
	Projects []project.Summary `json:"projects"`
}

type listTasksInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project whose board to list"`
}

type listTasksOutput struct {
	Tasks []task.Task `json:"tasks"`
}

type createTaskInput struct {
	ProjectID   string `json:"project_id" jsonschema:"the project the task belongs to"`
	Title       string `json:"title" jsonschema:"short task title"`
	Description string `json:"description,omitempty" jsonschema:"optional longer description"`
	Status      string `json:"status,omitempty" jsonschema:"board column: todo, in_progress, in_review, done, blocked (default todo)"`
	Priority    string `json:"priority,omitempty" jsonschema:"low, medium, high, or urgent (default medium)"`
}

type moveTaskInput struct {
	TaskID   string `json:"task_id" jsonschema:"the task to move"`
	Status   string `json:"status" jsonschema:"target board column"`
	Position int    `json:"position" jsonschema:"target position within the column, starting at 1"`
}

type listDocumentsInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project whose documents to list"`
}

type listDocumentsOutput struct {
	Documents []document.Document `json:"documents"`
}

type askAssistantInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project to ask about"`
	Question  string `json:"question" jsonschema:"free-text question about the project"`
}

type askAssistantOutput struct {
	Answer      string `json:"answer"`
	ProjectName string `json:"project_name"`
}

func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_clients",
		Description: "List all clients, newest first.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listClientsInput) (*sdkmcp.CallToolResult, listClientsOutput, error) {
		clients, err := svc.Clients.List(ctx)
		if err != nil {
			return nil, listClientsOutput{}, err
		}
		return nil, listClientsOutput{Clients: clients}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with client names and task counts.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listProjectsInput) (*sdkmcp.CallToolResult, listProjectsOutput, error) {
		projects, err := svc.Projects.List(ctx)
		if err != nil {
			return nil, listProjectsOutput{}, err
		}
		return nil, listProjectsOutput{Projects: projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Fetch a single project with its full configuration.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in getProjectInput) (*sdkmcp.CallToolResult, *project.Project, error) {
		p, err := svc.Projects.Get(ctx, in.ProjectID)
		if err != nil {
			return nil, nil, err
		}
		return nil, p, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_tasks",
		Description: "List a project's tasks in board order.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listTasksInput) (*sdkmcp.CallToolResult, listTasksOutput, error) {
		tasks, err := svc.Tasks.ListByProject(ctx, in.ProjectID)
		if err != nil {
			return nil, listTasksOutput{}, err
		}
		return nil, listTasksOutput{Tasks: tasks}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_task",
		Description: "Create a task at the end of its board column.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in createTaskInput) (*sdkmcp.CallToolResult, *task.Task, error) {
		created, err := svc.Tasks.Create(ctx, task.CreateRequest{
			ProjectID:   in.ProjectID,
			Title:       in.Title,
			Description: in.Description,
			Status:      task.Status(in.Status),
			Priority:    project.Priority(in.Priority),
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, created, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_task",
		Description: "Move a task to a column at an explicit position. Other tasks keep their positions.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in moveTaskInput) (*sdkmcp.CallToolResult, *task.Task, error) {
		moved, err := svc.Tasks.Move(ctx, task.MoveRequest{
			ID:       in.TaskID,
			Status:   task.Status(in.Status),
			Position: in.Position,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, moved, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_documents",
		Description: "List a project's uploaded documents, including any extracted text.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listDocumentsInput) (*sdkmcp.CallToolResult, listDocumentsOutput, error) {
		docs, err := svc.Documents.ListByProject(ctx, in.ProjectID)
		if err != nil {
			return nil, listDocumentsOutput{}, err
		}
		return nil, listDocumentsOutput{Documents: docs}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask a free-text question about a project. The answer is grounded in the project's client, budget, and document text.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in askAssistantInput) (*sdkmcp.CallToolResult, askAssistantOutput, error) {
		answer, err := svc.Assistant.Ask(ctx, in.ProjectID, in.Question)
		if err != nil {
			return nil, askAssistantOutput{}, err
		}
		return nil, askAssistantOutput{Answer: answer.Answer, ProjectName: answer.ProjectName}, nil
	})
}

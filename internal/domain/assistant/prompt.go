package assistant

import (
	"fmt"
	"strings"

	"github.com/atelierhq/atelier/internal/domain/client"
	"github.com/atelierhq/atelier/internal/domain/document"
	"github.com/atelierhq/atelier/internal/domain/project"
)

// documentContentLimit bounds how much of each document's extracted text
// is included in the prompt. The total prompt size is otherwise unbounded.
const documentContentLimit = 1000

// buildContext renders the project facts and document excerpts the model
// answers from.
func buildContext(p *project.Project, c *client.Client, docs []document.Document) string {
	var b strings.Builder

	b.WriteString("Project Context:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Client: %s\n", c.Name)
	fmt.Fprintf(&b, "- Description: %s\n", orFallback(p.Description, "No description"))
	fmt.Fprintf(&b, "- Status: %s\n", p.Status)
	fmt.Fprintf(&b, "- Priority: %s\n", p.Priority)
	fmt.Fprintf(&b, "- Budget: %s\n", formatBudget(p.Config))

	b.WriteString("\n")
	if len(docs) == 0 {
		b.WriteString("No documents uploaded for this project yet.\n")
		return b.String()
	}

	b.WriteString("Project Documents:\n")
	for i, doc := range docs {
		fmt.Fprintf(&b, "\nDocument %d: %s\n", i+1, doc.Name)
		if doc.Content != nil && *doc.Content != "" {
			fmt.Fprintf(&b, "Content: %s\n", truncate(*doc.Content, documentContentLimit))
		} else {
			b.WriteString("Content not available\n")
		}
	}
	return b.String()
}

// buildPrompt wraps the context block in the fixed instructional preamble.
func buildPrompt(contextBlock, question string) string {
	var b strings.Builder
	b.WriteString("You are a helpful project management assistant. Based on the following project context, answer the user's question.\n\n")
	b.WriteString(contextBlock)
	b.WriteString("\nUser Question: ")
	b.WriteString(question)
	b.WriteString("\n\nPlease provide a clear, concise, and helpful answer based on the project context provided.")
	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func orFallback(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func formatBudget(cfg *project.Config) string {
	if cfg == nil || cfg.Budget == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%g %s (%s)", cfg.Budget.Amount, cfg.Budget.Currency, cfg.Budget.Type)
}

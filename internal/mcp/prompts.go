// ABOUTME: MCP prompts for common note-taking workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-notes",
		Description: "Summarize all notes and point out duplicates",
	}, s.getSummarizeNotesPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "draft-note",
		Description: "Draft a short note with a clear name and description",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "topic",
				Description: "What the note is about",
				Required:    true,
			},
		},
	}, s.getDraftNotePrompt)
}

func (s *Server) getSummarizeNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	_ = s.notes.Refresh(ctx)

	var sb strings.Builder
	sb.WriteString("Here are my notes:\n\n")
	list := s.notes.Notes()
	if len(list) == 0 {
		sb.WriteString("(no notes yet)\n")
	}
	for _, n := range list {
		sb.WriteString(fmt.Sprintf("- %s: %s", n.Name, n.Description))
		if n.HasImage() {
			sb.WriteString(" [has image]")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(`
Please:
1. Summarize them in a few sentences
2. Point out notes that look like duplicates
3. Suggest which ones could be removed with the delete_note tool`)

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: sb.String(),
				},
			},
		},
	}, nil
}

func (s *Server) getDraftNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic, ok := req.Params.Arguments["topic"]
	if !ok || topic == "" {
		topic = "something worth remembering"
	}

	template := fmt.Sprintf(`Draft a note about: %s

Keep it short:
- name: a few words, like a title
- description: one or two sentences

Use the create_note tool to save it. Both fields are required.`, topic)

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: template,
				},
			},
		},
	}, nil
}

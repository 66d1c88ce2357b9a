package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vitormoschetta/rameezbot/internal/model"
	"github.com/vitormoschetta/rameezbot/internal/service"
)

const (
	mcpToolName   = "ask_portfolio_bot"
	mcpServerName = "rameezbot"
	version       = "1.0.0"
)

type askArgs struct {
	Message string `json:"message"`
}

// newMCPServer expõe o mesmo fluxo do POST /chat como ferramenta MCP
func newMCPServer(chat *service.ChatService, botName string, logger *slog.Logger) *mcp.Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	server := mcp.NewServer(&mcp.Implementation{Name: mcpServerName, Version: version}, nil)
	server.AddTool(&mcp.Tool{
		Name:        mcpToolName,
		Description: fmt.Sprintf("Ask %s about the portfolio owner: background, projects, skills and contact details.", botName),
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message": map[string]any{
					"type":        "string",
					"description": "The visitor's question",
				},
			},
			"required": []string{"message"},
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args askArgs
		if req != nil && req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return toolError(model.DetailInvalidJSON), nil
			}
		}

		reply, err := chat.HandleChat(ctx, args.Message)
		if err != nil {
			detail := chatErrorDetail(err)
			if detail == model.DetailInternal {
				logger.ErrorContext(ctx, "mcp tool error", "tool", mcpToolName, "error", err)
			}
			return toolError(detail), nil
		}
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: reply.Text}}}, nil
	})
	return server
}

// chatErrorDetail converte o erro do gateway no mesmo texto devolvido por /chat
func chatErrorDetail(err error) string {
	switch {
	case errors.Is(err, service.ErrEmptyInput):
		return model.DetailEmptyMessage
	case errors.Is(err, service.ErrMessageTooLong):
		return model.DetailMessageTooLong
	default:
		return model.DetailInternal
	}
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vitormoschetta/rameezbot/internal/model"
	"github.com/vitormoschetta/rameezbot/internal/service"
)

type panicResponder struct{}

func (panicResponder) Classify(string) string { panic("classifier exploded: secret state") }

func callAskTool(t *testing.T, chat *service.ChatService, message string) *mcp.CallToolResult {
	t.Helper()
	server := newMCPServer(chat, "RameezBot", nil)
	ts := httptest.NewServer(mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil))
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: ts.URL}, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      mcpToolName,
		Arguments: map[string]any{"message": message},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("content = %+v", result.Content)
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content = %#v", result.Content[0])
	}
	return text.Text
}

func TestMCPToolHidesInternalErrors(t *testing.T) {
	chat := service.NewChatService(service.Options{Fallback: panicResponder{}})

	result := callAskTool(t, chat, "hello")
	if !result.IsError {
		t.Fatalf("expected tool error, got %+v", result)
	}
	text := resultText(t, result)
	if text != model.DetailInternal {
		t.Fatalf("text = %q, want %q", text, model.DetailInternal)
	}
	if strings.Contains(text, "secret state") {
		t.Fatalf("panic value leaked: %q", text)
	}
}

func TestMCPToolValidationMessages(t *testing.T) {
	chat := service.NewChatService(service.Options{Fallback: panicResponder{}, MaxMessageLength: 5})

	tests := []struct {
		message string
		want    string
	}{
		{message: "   ", want: model.DetailEmptyMessage},
		{message: "way too long", want: model.DetailMessageTooLong},
	}
	for _, tt := range tests {
		result := callAskTool(t, chat, tt.message)
		if !result.IsError {
			t.Fatalf("message %q: expected tool error", tt.message)
		}
		if got := resultText(t, result); got != tt.want {
			t.Fatalf("message %q: text = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestChatErrorDetail(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: service.ErrEmptyInput, want: model.DetailEmptyMessage},
		{err: fmt.Errorf("%w: 1200 characters, maximum is 1000", service.ErrMessageTooLong), want: model.DetailMessageTooLong},
		{err: fmt.Errorf("%w: boom", service.ErrInternal), want: model.DetailInternal},
		{err: errors.New("unexpected"), want: model.DetailInternal},
	}
	for _, tt := range tests {
		if got := chatErrorDetail(tt.err); got != tt.want {
			t.Fatalf("chatErrorDetail(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestOpenAIProviderMapsToolCalls verifies a chat completion with tool
// calls maps into a Turn with parsed arguments.
func TestOpenAIProviderMapsToolCalls(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		response := `{
  "choices": [
    {
      "message": {
        "role": "assistant",
        "content": "Recording that now.",
        "tool_calls": [
          {
            "id": "call-1",
            "type": "function",
            "function": {"name": "record_answer", "arguments": "{\"answer\":\"30\"}"}
          }
        ]
      }
    }
  ]
}`
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	provider, err := NewOpenAIProvider("gpt-4o-mini", "key", server.URL)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	history := []Message{
		{Role: RoleUser, Content: "I'm thirty"},
	}
	turn, err := provider.Complete(context.Background(), "system context", history, SurveyToolDefinitions())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if turn.Message != "Recording that now." {
		t.Fatalf("unexpected message: %q", turn.Message)
	}
	if len(turn.ToolCalls) != 1 || turn.ToolCalls[0].Name != ToolRecordAnswer {
		t.Fatalf("unexpected tool calls: %+v", turn.ToolCalls)
	}
	answer, err := turn.ToolCalls[0].Args.RequiredString("answer")
	if err != nil || answer != "30" {
		t.Fatalf("unexpected answer arg: %q err=%v", answer, err)
	}

	messages, ok := captured["messages"].([]interface{})
	if !ok || len(messages) != 2 {
		t.Fatalf("expected system + user messages, got %v", captured["messages"])
	}
	first, _ := messages[0].(map[string]interface{})
	if first["role"] != "system" || first["content"] != "system context" {
		t.Fatalf("unexpected system message: %v", first)
	}
	if _, ok := captured["tools"].([]interface{}); !ok {
		t.Fatalf("expected tools in request, got %v", captured["tools"])
	}
}

// TestBuildChatMessagesThreadsToolHistory verifies assistant tool calls and
// tool results round-trip into the wire format.
func TestBuildChatMessagesThreadsToolHistory(t *testing.T) {
	args, err := ParseToolCallArgs(`{"answer":"30"}`)
	if err != nil {
		t.Fatalf("parse args: %v", err)
	}
	history := []Message{
		{Role: RoleUser, Content: "thirty"},
		{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "call-1", Name: ToolRecordAnswer, Args: args}}},
		{Role: RoleTool, ToolCallID: "call-1", Content: "answer recorded"},
	}
	messages, err := buildChatMessages("system", history)
	if err != nil {
		t.Fatalf("build messages: %v", err)
	}
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	assistant := messages[2]
	if len(assistant.ToolCalls) != 1 || assistant.ToolCalls[0].Function.Name != ToolRecordAnswer {
		t.Fatalf("unexpected assistant tool calls: %+v", assistant.ToolCalls)
	}
	tool := messages[3]
	if tool.ToolCallID != "call-1" || tool.Content != "answer recorded" {
		t.Fatalf("unexpected tool message: %+v", tool)
	}
}

// TestBuildChatMessagesRejectsUnknownRole verifies invalid history fails.
func TestBuildChatMessagesRejectsUnknownRole(t *testing.T) {
	if _, err := buildChatMessages("system", []Message{{Role: "narrator"}}); err == nil {
		t.Fatalf("expected role error")
	}
}

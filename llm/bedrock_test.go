package llm

import (
	"encoding/json"
	"testing"

	"github.com/m4xw311/thinkmode/errors"
	"github.com/m4xw311/thinkmode/task"
)

func TestCreateAnthropicRequest(t *testing.T) {
	temp := 0.7
	body, err := createAnthropicRequest(Request{
		Prompt:      "Hello!",
		Mode:        task.FullThinking,
		MaxTokens:   2048,
		Temperature: &temp,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Request body is not JSON: %v", err)
	}
	if decoded["anthropic_version"] != "bedrock-2023-05-31" {
		t.Errorf("Expected anthropic_version 'bedrock-2023-05-31', got '%v'", decoded["anthropic_version"])
	}
	if decoded["max_tokens"] != float64(2048) {
		t.Errorf("Expected max_tokens 2048, got %v", decoded["max_tokens"])
	}
	if decoded["temperature"] != 0.7 {
		t.Errorf("Expected temperature 0.7, got %v", decoded["temperature"])
	}

	messages, ok := decoded["messages"].([]interface{})
	if !ok || len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %v", decoded["messages"])
	}
	msg := messages[0].(map[string]interface{})
	if msg["role"] != "user" {
		t.Errorf("Expected role 'user', got '%v'", msg["role"])
	}

	// Without a profile the request still carries max_tokens and no temperature.
	body, err = createAnthropicRequest(Request{Prompt: "Hello!"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	decoded = nil
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Request body is not JSON: %v", err)
	}
	if decoded["max_tokens"] != float64(1024) {
		t.Errorf("Expected default max_tokens 1024, got %v", decoded["max_tokens"])
	}
	if _, ok := decoded["temperature"]; ok {
		t.Error("Expected no temperature")
	}
}

func TestProcessBedrockResponse(t *testing.T) {
	body := []byte(`{"content":[{"type":"text","text":"Hello"},{"type":"tool_use","name":"x"},{"type":"text","text":", world"}]}`)
	got, err := processBedrockResponse(body)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "Hello, world" {
		t.Errorf("Expected 'Hello, world', got '%s'", got)
	}

	tests := []struct {
		name   string
		body   string
		reason errors.Reason
	}{
		{"not json", `{`, errors.ReasonMalformed},
		{"api error", `{"error":"throttled"}`, errors.ReasonTransport},
		{"no content", `{}`, errors.ReasonMalformed},
		{"empty text", `{"content":[{"type":"text","text":""}]}`, errors.ReasonMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := processBedrockResponse([]byte(tt.body))
			if !errors.IsExecution(err) {
				t.Fatalf("Expected execution error, got %v", err)
			}
			if errors.ReasonOf(err) != tt.reason {
				t.Errorf("Expected reason %s, got %s", tt.reason, errors.ReasonOf(err))
			}
		})
	}
}

package llmprovider

import (
	"testing"

	"shopping-assistant/pkg/deepseek"
)

func deepseekResponseFixture() deepseek.Response {
	return deepseek.Response{
		Model: "deepseek-chat",
		Choices: []deepseek.Choice{
			{
				Message: deepseek.Message{
					Role:    "assistant",
					Content: "Let me look that up",
					ToolCalls: []deepseek.ToolCall{
						{
							ID:   "call_product_search",
							Type: "function",
							Function: deepseek.FunctionCall{
								Name:      "product_search",
								Arguments: `{"query":"headphones"}`,
							},
						},
					},
				},
				FinishReason: "tool_calls",
			},
		},
		Usage: deepseek.Usage{PromptTokens: 20, CompletionTokens: 10, TotalTokens: 30},
	}
}

func TestConvertToDeepSeekMessages_ToolCallRoundTrip(t *testing.T) {
	msgs := []Message{
		{
			Role:  "user",
			Parts: []Part{{Text: "add item 3 to my cart"}},
		},
		{
			Role: "model",
			Parts: []Part{
				{FunctionCall: &FunctionCall{
					Name: "cart_management",
					Args: map[string]interface{}{"action": "add", "product_id": float64(3)},
				}},
			},
		},
		{
			Role: "tool",
			Parts: []Part{
				{FunctionResponse: &FunctionResponse{
					Name:     "cart_management",
					Response: map[string]interface{}{"status": "success"},
				}},
			},
		},
	}

	out := convertToDeepSeekMessages(msgs)
	if len(out) != 3 {
		t.Fatalf("Expected 3 messages, got: %d", len(out))
	}

	if out[0].Role != "user" || out[0].Content != "add item 3 to my cart" {
		t.Errorf("Unexpected user message: %+v", out[0])
	}

	// "model" role maps to OpenAI-style "assistant"
	if out[1].Role != "assistant" {
		t.Errorf("Expected role 'assistant', got: %s", out[1].Role)
	}
	if len(out[1].ToolCalls) != 1 {
		t.Fatalf("Expected 1 tool call, got: %d", len(out[1].ToolCalls))
	}
	if out[1].ToolCalls[0].Function.Name != "cart_management" {
		t.Errorf("Unexpected tool call name: %s", out[1].ToolCalls[0].Function.Name)
	}
	if out[1].ToolCalls[0].ID != "call_cart_management" {
		t.Errorf("Unexpected tool call id: %s", out[1].ToolCalls[0].ID)
	}

	if out[2].Role != "tool" {
		t.Errorf("Expected role 'tool', got: %s", out[2].Role)
	}
	if out[2].ToolCallID != "call_cart_management" {
		t.Errorf("Tool response must reference the originating call id, got: %s", out[2].ToolCallID)
	}
	if out[2].Content != `{"status":"success"}` {
		t.Errorf("Unexpected tool response content: %s", out[2].Content)
	}
}

func TestConvertToDeepSeekMessages_MultipleFunctionResponses(t *testing.T) {
	msgs := []Message{
		{
			Role: "tool",
			Parts: []Part{
				{FunctionResponse: &FunctionResponse{Name: "product_search", Response: map[string]interface{}{"count": 2}}},
				{FunctionResponse: &FunctionResponse{Name: "cart_summary", Response: map[string]interface{}{"total": 9.99}}},
			},
		},
	}

	out := convertToDeepSeekMessages(msgs)
	if len(out) != 2 {
		t.Fatalf("Expected each function response to become its own tool message, got: %d", len(out))
	}
	if out[0].Name != "product_search" || out[1].Name != "cart_summary" {
		t.Errorf("Tool messages out of order: %s, %s", out[0].Name, out[1].Name)
	}
}

func TestConvertFromDeepSeekResponse_TextAndToolCalls(t *testing.T) {
	fixture := deepseekResponseFixture()
	resp := convertFromDeepSeekResponse(&fixture)
	if resp.ProviderName != "deepseek" {
		t.Errorf("Expected provider 'deepseek', got: %s", resp.ProviderName)
	}

	parts := resp.Content.Parts
	if len(parts) != 2 {
		t.Fatalf("Expected 2 parts (text + tool call), got: %d", len(parts))
	}
	if parts[0].Text != "Let me look that up" {
		t.Errorf("Unexpected text part: %s", parts[0].Text)
	}
	fc := parts[1].FunctionCall
	if fc == nil || fc.Name != "product_search" {
		t.Fatalf("Expected product_search function call, got: %+v", parts[1])
	}
	if fc.Args["query"] != "headphones" {
		t.Errorf("Arguments not decoded, got: %+v", fc.Args)
	}

	if resp.Usage.TotalTokens != 30 {
		t.Errorf("Expected 30 total tokens, got: %d", resp.Usage.TotalTokens)
	}
}

func TestConvertFromDeepSeekResponse_EmptyChoices(t *testing.T) {
	fixture := deepseekResponseFixture()
	fixture.Choices = nil

	resp := convertFromDeepSeekResponse(&fixture)
	if len(resp.Content.Parts) != 0 {
		t.Errorf("Expected no parts for empty choices, got: %d", len(resp.Content.Parts))
	}
	if resp.Content.Role != "assistant" {
		t.Errorf("Expected role 'assistant', got: %s", resp.Content.Role)
	}
}

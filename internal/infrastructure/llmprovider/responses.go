package llmprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"ursa-server/spatial-api/internal/config"
	"ursa-server/spatial-api/internal/domain/chat"
	"ursa-server/spatial-api/internal/domain/tool"
	"ursa-server/spatial-api/internal/utils/httpclients"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// ResponsesStrategy uses the provider's stateful Responses API: the provider
// retains turn history server-side and each call threads the previous
// response id. Only the new turns travel on the wire.
type ResponsesStrategy struct {
	cfg  *config.Config
	http *resty.Client
}

func NewResponsesStrategy(cfg *config.Config) *ResponsesStrategy {
	client := httpclients.NewClient("OpenAIResponsesClient")
	client.SetBaseURL(cfg.OpenAIBaseURL)
	return &ResponsesStrategy{cfg: cfg, http: client}
}

func (s *ResponsesStrategy) Open(ctx context.Context, conversationID string) (chat.Exchange, error) {
	if err := requireAPIKey(ctx, s.cfg); err != nil {
		return nil, err
	}
	return &responsesExchange{
		strategy: s,
		// The system instruction is only sent on the very first turn of a
		// conversation; afterwards the provider already has it.
		sendSystem: conversationID == "",
		previousID: conversationID,
	}, nil
}

type responsesExchange struct {
	strategy   *ResponsesStrategy
	sendSystem bool
	previousID string
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseInputItem struct {
	Role       string            `json:"role,omitempty"`
	Content    []responseContent `json:"content,omitempty"`
	ToolCallID string            `json:"tool_call_id,omitempty"`
}

type responsesRequest struct {
	Model              string              `json:"model"`
	Temperature        float32             `json:"temperature"`
	Input              []responseInputItem `json:"input"`
	Tools              []openai.Tool       `json:"tools"`
	PreviousResponseID string              `json:"previous_response_id,omitempty"`
}

type responseOutputItem struct {
	Type      string            `json:"type"`
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Arguments json.RawMessage   `json:"arguments"`
	Content   []responseContent `json:"content"`
}

type responsesResponse struct {
	ID         string               `json:"id"`
	OutputText string               `json:"output_text"`
	Output     []responseOutputItem `json:"output"`
}

func (e *responsesExchange) SendUser(ctx context.Context, text string) (*chat.Reply, error) {
	input := make([]responseInputItem, 0, 2)
	if e.sendSystem {
		input = append(input, responseInputItem{
			Role:    "system",
			Content: []responseContent{{Type: "text", Text: chat.SystemPrompt}},
		})
	}
	input = append(input, responseInputItem{
		Role:    "user",
		Content: []responseContent{{Type: "text", Text: text}},
	})
	return e.send(ctx, input)
}

func (e *responsesExchange) SendToolResults(ctx context.Context, results []chat.ToolResult) (*chat.Reply, error) {
	input := make([]responseInputItem, 0, len(results))
	for _, result := range results {
		input = append(input, responseInputItem{
			Role:       "tool",
			ToolCallID: result.CallID,
			Content:    []responseContent{{Type: "output_text", Text: result.Payload}},
		})
	}
	return e.send(ctx, input)
}

func (e *responsesExchange) ConversationID() string {
	return e.previousID
}

func (e *responsesExchange) send(ctx context.Context, input []responseInputItem) (*chat.Reply, error) {
	cfg := e.strategy.cfg
	request := responsesRequest{
		Model:              cfg.OpenAIModel,
		Temperature:        cfg.OpenAITemperature,
		Input:              input,
		Tools:              tool.Definitions(),
		PreviousResponseID: e.previousID,
	}

	var response responsesResponse
	resp, err := e.strategy.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenAIAPIKey)).
		SetBody(request).
		SetResult(&response).
		Post("/responses")
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"responses request failed", err)
	}
	if resp.IsError() {
		detail := strings.TrimSpace(resp.String())
		if detail == "" {
			detail = resp.Status()
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("responses request failed: %s", detail), nil)
	}

	e.previousID = response.ID

	reply := &chat.Reply{Text: extractText(&response)}
	for _, item := range response.Output {
		if item.Type != "function_call" {
			continue
		}
		arguments, err := decodeArguments(item.Arguments)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
				fmt.Sprintf("malformed tool arguments for %s", item.Name), err)
		}
		reply.ToolCalls = append(reply.ToolCalls, chat.ToolCall{
			ID:        item.ID,
			Name:      item.Name,
			Arguments: arguments,
		})
	}
	return reply, nil
}

func extractText(response *responsesResponse) string {
	if response.OutputText != "" {
		return response.OutputText
	}
	for _, item := range response.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" || part.Type == "text" {
				return part.Text
			}
		}
	}
	return ""
}

// decodeArguments accepts both an inline JSON object and the
// string-encoded-object form some providers emit.
func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	arguments := map[string]any{}
	if err := json.Unmarshal(raw, &arguments); err == nil {
		return arguments, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("arguments are neither object nor string: %s", string(raw))
	}
	if encoded == "" {
		return map[string]any{}, nil
	}
	if err := json.Unmarshal([]byte(encoded), &arguments); err != nil {
		return nil, err
	}
	return arguments, nil
}

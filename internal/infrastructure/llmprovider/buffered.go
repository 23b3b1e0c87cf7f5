package llmprovider

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"ursa-server/spatial-api/internal/config"
	"ursa-server/spatial-api/internal/domain/chat"
	"ursa-server/spatial-api/internal/domain/conversation"
	"ursa-server/spatial-api/internal/domain/tool"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// BufferedStrategy keeps the full turn history locally, keyed by a generated
// conversation id, and replays it on every chat-completions call.
type BufferedStrategy struct {
	cfg   *config.Config
	store *conversation.Store
}

func NewBufferedStrategy(cfg *config.Config, store *conversation.Store) *BufferedStrategy {
	return &BufferedStrategy{cfg: cfg, store: store}
}

// Open resumes or starts a buffered conversation, prepending the system
// instruction only when the history is empty.
func (s *BufferedStrategy) Open(ctx context.Context, conversationID string) (chat.Exchange, error) {
	if err := requireAPIKey(ctx, s.cfg); err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(s.cfg.OpenAIAPIKey)
	clientConfig.BaseURL = s.cfg.OpenAIBaseURL

	id := s.store.Open(conversationID)
	if s.store.Len(id) == 0 {
		s.store.Append(id, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: chat.SystemPrompt,
		})
	}

	return &bufferedExchange{
		cfg:    s.cfg,
		store:  s.store,
		client: openai.NewClientWithConfig(clientConfig),
		id:     id,
	}, nil
}

type bufferedExchange struct {
	cfg    *config.Config
	store  *conversation.Store
	client *openai.Client
	id     string
}

func (e *bufferedExchange) SendUser(ctx context.Context, text string) (*chat.Reply, error) {
	e.store.Append(e.id, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})
	return e.complete(ctx)
}

func (e *bufferedExchange) SendToolResults(ctx context.Context, results []chat.ToolResult) (*chat.Reply, error) {
	for _, result := range results {
		e.store.Append(e.id, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    result.Payload,
			ToolCallID: result.CallID,
		})
	}
	return e.complete(ctx)
}

func (e *bufferedExchange) ConversationID() string {
	return e.id
}

func (e *bufferedExchange) complete(ctx context.Context) (*chat.Reply, error) {
	response, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.cfg.OpenAIModel,
		Temperature: e.cfg.OpenAITemperature,
		Messages:    e.store.History(e.id),
		Tools:       tool.Definitions(),
	})
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion request failed", err)
	}
	if len(response.Choices) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion returned no choices", nil)
	}

	message := response.Choices[0].Message
	e.store.Append(e.id, message)

	reply := &chat.Reply{Text: message.Content}
	for _, call := range message.ToolCalls {
		arguments := map[string]any{}
		if call.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &arguments); err != nil {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
					fmt.Sprintf("malformed tool arguments for %s", call.Function.Name), err)
			}
		}
		reply.ToolCalls = append(reply.ToolCalls, chat.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: arguments,
		})
	}
	return reply, nil
}

package llmprovider

import (
	"context"
	"strings"

	"ursa-server/spatial-api/internal/config"
	"ursa-server/spatial-api/internal/domain/chat"
	"ursa-server/spatial-api/internal/domain/conversation"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// NewStrategy selects the continuation strategy once per process from the
// configured API surface: the Responses API threads history provider-side via
// previous_response_id, chat completions buffer history locally.
func NewStrategy(cfg *config.Config, store *conversation.Store) chat.Strategy {
	if cfg.OpenAIAPIMode == config.APIModeChatCompletions {
		return NewBufferedStrategy(cfg, store)
	}
	return NewResponsesStrategy(cfg)
}

// requireAPIKey gates every exchange, not startup: the rest of the API stays
// usable without a credential configured.
func requireAPIKey(ctx context.Context, cfg *config.Config) error {
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeInternal,
			"OPENAI_API_KEY is not set", nil)
	}
	return nil
}

package chat

import (
	"context"
	"encoding/json"

	"ursa-server/spatial-api/internal/domain/tool"
	"ursa-server/spatial-api/internal/infrastructure/logger"
	"ursa-server/spatial-api/internal/infrastructure/metrics"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// Orchestrator drives the bounded tool-calling loop between the user, the
// LLM provider and the tool executor.
type Orchestrator struct {
	strategy  Strategy
	executor  *tool.Executor
	maxRounds int
}

func NewOrchestrator(strategy Strategy, executor *tool.Executor, maxRounds int) *Orchestrator {
	return &Orchestrator{strategy: strategy, executor: executor, maxRounds: maxRounds}
}

type userPayload struct {
	Message  string    `json:"message"`
	MapState *MapState `json:"map_state"`
}

// Chat runs one request through the loop: send the user turn plus tool
// catalog, execute any requested tools in order, feed results back, and
// repeat up to the configured bound. Any single tool failure aborts the whole
// request with the fixed apology; provider errors propagate to the caller.
func (o *Orchestrator) Chat(ctx context.Context, message string, mapState *MapState, conversationID string) (*Result, error) {
	payload, err := json.Marshal(userPayload{Message: message, MapState: mapState})
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to encode user payload", err)
	}

	exchange, err := o.strategy.Open(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	reply, err := exchange.SendUser(ctx, string(payload))
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("llm").Inc()
		return nil, err
	}

	actions := make([]Action, 0)
	for round := 0; round < o.maxRounds; round++ {
		if len(reply.ToolCalls) == 0 {
			break
		}

		results, newActions, execErr := o.executeToolCalls(ctx, reply.ToolCalls)
		if execErr != nil {
			// Fail closed: one fixed apology, no partial actions, never echo
			// the cause to the client.
			log := logger.GetLogger()
			log.Error().Err(execErr).Str("conversation_id", exchange.ConversationID()).
				Msg("tool execution failed")
			return &Result{
				AssistantText:  ApologyText,
				Actions:        []Action{},
				ConversationID: exchange.ConversationID(),
			}, nil
		}
		actions = append(actions, newActions...)

		reply, err = exchange.SendToolResults(ctx, results)
		if err != nil {
			metrics.ProviderErrorsTotal.WithLabelValues("llm").Inc()
			return nil, err
		}
	}

	// Running out of rounds while the model still wants tools is not an
	// error; whatever text the last response carried is the answer.
	return &Result{
		AssistantText:  StripStructuredPayload(reply.Text),
		Actions:        actions,
		ConversationID: exchange.ConversationID(),
	}, nil
}

func (o *Orchestrator) executeToolCalls(ctx context.Context, calls []ToolCall) ([]ToolResult, []Action, error) {
	results := make([]ToolResult, 0, len(calls))
	actions := make([]Action, 0, len(calls))
	for _, call := range calls {
		result, err := o.executor.Execute(ctx, call.Name, call.Arguments)
		if err != nil {
			metrics.ToolExecutionsTotal.WithLabelValues(call.Name, "error").Inc()
			return nil, nil, err
		}
		metrics.ToolExecutionsTotal.WithLabelValues(call.Name, "ok").Inc()

		if shouldSurfaceAction(call.Name, result) {
			actions = append(actions, Action{Type: call.Name, Result: result})
		}

		encoded, err := json.Marshal(result)
		if err != nil {
			return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
				"failed to encode tool result", err)
		}
		results = append(results, ToolResult{CallID: call.ID, Payload: string(encoded)})
	}
	return results, actions, nil
}

// shouldSurfaceAction withholds ambiguous geocodes from the action list: the
// model is expected to ask the user to disambiguate in text, and a
// half-resolved geocode would mislead the client UI.
func shouldSurfaceAction(name string, result any) bool {
	if name != tool.NameGeocode {
		return true
	}
	if payload, ok := result.(map[string]any); ok {
		return payload["status"] == tool.StatusResolved
	}
	return false
}

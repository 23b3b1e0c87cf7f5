package domain

import (
	"github.com/google/wire"

	"ursa-server/spatial-api/internal/config"
	"ursa-server/spatial-api/internal/domain/chat"
	"ursa-server/spatial-api/internal/domain/conversation"
	"ursa-server/spatial-api/internal/domain/pin"
	"ursa-server/spatial-api/internal/domain/tool"
)

// ProvideConversationStore builds the in-memory conversation table used by
// the buffered chat strategy.
func ProvideConversationStore(cfg *config.Config) (*conversation.Store, error) {
	return conversation.NewStore(cfg.ChatMaxConversations, cfg.ChatMaxHistoryItems)
}

// ProvideToolExecutor wires the executor with its candidate cap.
func ProvideToolExecutor(pins *pin.Service, geocoder tool.Geocoder, cfg *config.Config) *tool.Executor {
	return tool.NewExecutor(pins, geocoder, cfg.GeocodeMaxCandidates)
}

// ProvideOrchestrator wires the chat orchestrator with its round bound.
func ProvideOrchestrator(strategy chat.Strategy, executor *tool.Executor, cfg *config.Config) *chat.Orchestrator {
	return chat.NewOrchestrator(strategy, executor, cfg.ChatMaxToolRounds)
}

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	pin.NewService,
	ProvideConversationStore,
	ProvideToolExecutor,
	ProvideOrchestrator,
)

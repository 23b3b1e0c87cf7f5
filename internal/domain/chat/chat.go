package chat

import "context"

// SystemPrompt seeds every new conversation. The ambiguity instructions are
// the only mechanism backing the "ambiguous geocodes ask in text" policy; the
// client cannot rely on it beyond that.
const SystemPrompt = "You are a helpful assistant named Ursa for a map-based AI Chat application. " +
	"Use tools to search for places and manage map pins. " +
	"Return clear user-facing text plus structured actions for the client. " +
	"Do not include JSON, map_state payloads, or tool output in the user-facing text. " +
	"Ask a clarifying question when a request is ambiguous." +
	"If a geocode tool response includes status=ambiguous, ask the user to choose " +
	"one of the provided candidates before proceeding. Present the candidates as " +
	"a numbered list and ask the user to reply with the choice." +
	"If you cannot answer, respond with 'I don't know.'" +
	"Never fabricate information." +
	"URSA stands for 'Urban Reasoning & Spatial Analysis'. Your goal is to help users analyze and interact with spatial data effectively."

// ApologyText is the one fixed user-facing message for any tool-execution
// failure. The underlying cause is logged server-side only.
const ApologyText = "I ran into an error while trying to perform that action. " +
	"Please try again or adjust your request."

// MapState is the client's viewport snapshot, sent along with every message so
// the model can reason spatially.
type MapState struct {
	Center []float64 `json:"center" binding:"required"`
	Zoom   float64   `json:"zoom"`
	BBox   []float64 `json:"bbox,omitempty"`
}

// Action is a client-facing record of a successfully executed tool, used by
// the map UI to update its state.
type Action struct {
	Type   string `json:"type"`
	Result any    `json:"result"`
}

// Result is the orchestrator's final output for one chat request.
type Result struct {
	AssistantText  string
	Actions        []Action
	ConversationID string
}

// ToolCall is a provider-requested tool invocation in provider-agnostic form.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// ToolResult carries one executed tool's JSON-encoded payload back to the
// provider, tagged with the originating call id.
type ToolResult struct {
	CallID  string
	Payload string
}

// Reply is one provider response: assistant text plus zero or more requested
// tool calls.
type Reply struct {
	Text      string
	ToolCalls []ToolCall
}

// Exchange is one conversation's view of the provider for the duration of a
// single chat request.
type Exchange interface {
	SendUser(ctx context.Context, text string) (*Reply, error)
	SendToolResults(ctx context.Context, results []ToolResult) (*Reply, error)
	// ConversationID reports the continuation identifier as currently known:
	// the provider's response id in stateful mode, the buffer key in buffered
	// mode.
	ConversationID() string
}

// Strategy opens an Exchange for a new or resumed conversation. Exactly one
// strategy is selected per process; the orchestrator never branches on which
// one is active.
type Strategy interface {
	Open(ctx context.Context, conversationID string) (Exchange, error)
}

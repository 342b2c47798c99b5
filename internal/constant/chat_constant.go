package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// DefaultPersonaName is used when the request carries no persona override.
	DefaultPersonaName = "Building Assistant"

	// SessionCostTopic is the in-process pub/sub topic carrying per-request
	// cost summaries from the chat pipeline to the cost consumer.
	SessionCostTopic = "CHAT_SESSION_COSTS"

	// Module names used for structured log entries.
	ModuleChat     = "CHAT"
	ModuleCost     = "COST"
	ModuleConsumer = "CONSUMER"
)

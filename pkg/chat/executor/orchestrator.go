package executor

import (
	"context"
	"log"

	"building-chat-be/pkg/chat/costs"
	"building-chat-be/pkg/chat/intent"
	"building-chat-be/pkg/chat/prompt"
	"building-chat-be/pkg/chat/resolve"
	"building-chat-be/pkg/chat/retry"
	"building-chat-be/pkg/chat/types"
	"building-chat-be/pkg/llm"
)

// degradedResponse is what the caller sees when generation fails for good.
// It never exposes internal error text.
const degradedResponse = "I apologize, but I'm experiencing technical difficulties right now. Please try again in a moment."

// Pipeline states, in transition order. FAILED is terminal and reachable
// only from the generation stage; every earlier stage degrades in place.
const (
	stateReceived   = "RECEIVED"
	stateClassified = "CLASSIFIED"
	stateResolved   = "RESOLVED"
	statePrompted   = "PROMPTED"
	stateGenerated  = "GENERATED"
	stateResponded  = "RESPONDED"
	stateFailed     = "FAILED"
)

// Request bundles everything one orchestrated chat turn needs.
type Request struct {
	Message        string
	BuildingID     *int64
	OrganizationID *int64
	UserEmail      string
	Persona        types.Persona
	History        []types.Turn
	FileIDs        []string
	FileURL        string
}

// Orchestrator sequences classification, resolution, prompting and
// generation for one request and assembles the response envelope.
type Orchestrator struct {
	classifier    *intent.Classifier
	resolver      *resolve.Resolver
	promptBuilder *prompt.Builder
	llmProvider   llm.LLMProvider
	model         string
	retryPolicy   retry.Policy
	historyWindow int
	logger        *log.Logger
}

func NewOrchestrator(
	classifier *intent.Classifier,
	resolver *resolve.Resolver,
	promptBuilder *prompt.Builder,
	llmProvider llm.LLMProvider,
	model string,
	retryPolicy retry.Policy,
	historyWindow int,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		classifier:    classifier,
		resolver:      resolver,
		promptBuilder: promptBuilder,
		llmProvider:   llmProvider,
		model:         model,
		retryPolicy:   retryPolicy,
		historyWindow: historyWindow,
		logger:        logger,
	}
}

// Handle runs the full pipeline. It always returns a well-formed envelope:
// pipeline failure is reported through Metadata.Error, never as a Go error.
func (o *Orchestrator) Handle(ctx context.Context, req Request) *types.Envelope {
	tracker := costs.NewTracker()
	state := stateReceived

	// RECEIVED -> CLASSIFIED. The classifier cannot fail the pipeline.
	cls := o.classifier.Classify(ctx, req.Message, len(req.FileIDs) > 0, req.BuildingID, req.OrganizationID, tracker)
	state = stateClassified
	o.logger.Printf("[PIPELINE] %s: type=%s confidence=%.2f fallback=%t", state, cls.ContextType, cls.Confidence, cls.UsedFallback)

	// CLASSIFIED -> RESOLVED. Source failures become SourceErrors.
	resolved := o.resolver.Resolve(ctx, cls, resolve.Input{
		Message:        req.Message,
		BuildingID:     req.BuildingID,
		OrganizationID: req.OrganizationID,
		FileIDs:        req.FileIDs,
		FileURL:        req.FileURL,
		UserEmail:      req.UserEmail,
	}, tracker)
	state = stateResolved
	o.logger.Printf("[PIPELINE] %s: payload=%t source_errors=%d", state, resolved.HasPayload(), len(resolved.SourceErrors))

	// RESOLVED -> PROMPTED. Pure function, always succeeds.
	pkg := o.promptBuilder.Build(resolved, cls, req.History, req.Persona, req.Message)
	state = statePrompted

	// PROMPTED -> GENERATED. Bounded retry; exhaustion is the only path to
	// the FAILED terminal state.
	completion, err := o.generate(ctx, pkg, req.History, tracker)
	if err != nil {
		state = stateFailed
		o.logger.Printf("[PIPELINE] %s: generation failed after retries: %v", state, err)
		return o.degradedEnvelope(cls, tracker, "response generation failed")
	}
	state = stateGenerated

	// GENERATED -> RESPONDED.
	envelope := o.buildEnvelope(completion, cls, resolved, pkg, tracker)
	state = stateResponded
	o.logger.Printf("[PIPELINE] %s: model=%s tokens=%d cost=$%s", state, envelope.Metadata.ModelUsed, envelope.Metadata.TokensUsed, tracker.TotalCost().StringFixed(6))

	return envelope
}

func (o *Orchestrator) generate(ctx context.Context, pkg types.PromptPackage, history []types.Turn, tracker *costs.Tracker) (*llm.Completion, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: pkg.SystemPrompt})
	for _, turn := range prompt.TruncateHistory(history, o.historyWindow) {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: pkg.UserPrompt})

	completion, err := retry.Do(ctx, o.retryPolicy, func() (*llm.Completion, error) {
		return o.llmProvider.Chat(ctx, messages,
			llm.WithTemperature(0.7),
			llm.WithMaxTokens(1000),
			llm.WithModel(o.model),
		)
	})
	if err != nil {
		return nil, err
	}

	tracker.Log(costs.CallChat, completion.Model, completion.Usage.InputTokens, completion.Usage.OutputTokens)
	return completion, nil
}

func (o *Orchestrator) buildEnvelope(completion *llm.Completion, cls types.Classification, resolved *types.ResolvedContext, pkg types.PromptPackage, tracker *costs.Tracker) *types.Envelope {
	summary := tracker.Summary()

	var fileIDs []string
	chunksUsed := 0
	switch p := resolved.Payload.(type) {
	case types.FileChunks:
		fileIDs = p.FileIDs
		chunksUsed = len(p.Chunks)
	case types.DocumentMatches:
		chunksUsed = len(p.Chunks)
	}

	return &types.Envelope{
		ResponseText: completion.Text,
		Metadata: types.Metadata{
			ContextType:      cls.ContextType,
			Confidence:       cls.Confidence,
			Reason:           cls.Reasoning,
			ContextUsed:      resolved.HasPayload(),
			PromptConfidence: pkg.PromptConfidence,
			ModelUsed:        completion.Model,
			TokensUsed:       completion.Usage.TotalTokens(),
			FileIDs:          fileIDs,
			ChunksUsed:       chunksUsed,
			CostSummary:      &summary,
			SourceErrors:     resolved.SourceErrors,
		},
	}
}

func (o *Orchestrator) degradedEnvelope(cls types.Classification, tracker *costs.Tracker, diagnostic string) *types.Envelope {
	summary := tracker.Summary()

	return &types.Envelope{
		ResponseText: degradedResponse,
		Metadata: types.Metadata{
			ContextType: cls.ContextType,
			Confidence:  cls.Confidence,
			Reason:      cls.Reasoning,
			ContextUsed: false,
			CostSummary: &summary,
			Error:       &diagnostic,
		},
	}
}

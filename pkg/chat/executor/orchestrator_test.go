package executor

import (
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building-chat-be/pkg/chat/intent"
	"building-chat-be/pkg/chat/prompt"
	"building-chat-be/pkg/chat/resolve"
	"building-chat-be/pkg/chat/retry"
	"building-chat-be/pkg/chat/types"
	"building-chat-be/pkg/embedding"
	"building-chat-be/pkg/llm"
)

// scriptedLLM answers classification prompts via Generate and generation
// prompts via Chat so one fake can drive the whole pipeline.
type scriptedLLM struct {
	classification string
	classifyErr    error
	chatResponse   string
	chatErr        error
	chatCalls      int
}

func (s *scriptedLLM) Generate(ctx context.Context, p string, opts ...llm.Option) (*llm.Completion, error) {
	if s.classifyErr != nil {
		return nil, s.classifyErr
	}
	return &llm.Completion{
		Text:  s.classification,
		Model: "gpt-4o-mini",
		Usage: llm.Usage{InputTokens: 150, OutputTokens: 40},
	}, nil
}

func (s *scriptedLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Completion, error) {
	s.chatCalls++
	if s.chatErr != nil {
		return nil, s.chatErr
	}
	return &llm.Completion{
		Text:  s.chatResponse,
		Model: "gpt-4o-mini",
		Usage: llm.Usage{InputTokens: 900, OutputTokens: 250},
	}, nil
}

type stubBuildingSource struct {
	profile *types.BuildingProfile
}

func (s *stubBuildingSource) GetBuilding(ctx context.Context, buildingID int64, orgID *int64) (*types.BuildingProfile, error) {
	return s.profile, nil
}

func (s *stubBuildingSource) ListMeasures(ctx context.Context, buildingID int64, orgID *int64, limit int) ([]types.BuildingMeasure, error) {
	return nil, nil
}

func (s *stubBuildingSource) ListEnergy(ctx context.Context, buildingID int64, orgID *int64, limit int) ([]types.EnergyEntry, error) {
	return nil, nil
}

func (s *stubBuildingSource) ListBills(ctx context.Context, buildingID int64, orgID *int64, limit int) ([]types.BillEntry, error) {
	return nil, nil
}

type stubOrgSource struct{}

func (stubOrgSource) GetOrganization(ctx context.Context, orgID int64) (*resolve.Organization, error) {
	return nil, errors.New("not wired in this test")
}

func (stubOrgSource) ListBuildings(ctx context.Context, orgID int64) ([]types.BuildingProfile, error) {
	return nil, nil
}

func (stubOrgSource) PortfolioMetrics(ctx context.Context, orgID int64) (*types.PortfolioMetrics, error) {
	return nil, nil
}

type stubVectorSource struct{}

func (stubVectorSource) Search(ctx context.Context, queryVector []float32, orgID, buildingID *int64, fileIDs []string, topK int) ([]types.Chunk, error) {
	return nil, nil
}

type stubIngestor struct{}

func (stubIngestor) Ingest(ctx context.Context, fileURL string) (string, error) {
	return "", errors.New("not wired in this test")
}

type stubEmbedder struct{}

func (stubEmbedder) Generate(ctx context.Context, text string) (*embedding.Result, error) {
	return &embedding.Result{Vector: []float32{0.5}, Model: "text-embedding-3-small", InputTokens: 10}, nil
}

func (stubEmbedder) Dimensions() int { return 1 }

func newTestOrchestrator(provider llm.LLMProvider, profile *types.BuildingProfile) *Orchestrator {
	logger := log.New(log.Writer(), "", 0)
	classifier := intent.NewClassifier(provider, "gpt-4o-mini", 0.6, 0, logger)
	resolver := resolve.NewResolver(
		&stubBuildingSource{profile: profile},
		stubOrgSource{},
		stubVectorSource{},
		stubIngestor{},
		stubEmbedder{},
		5,
		time.Second,
		logger,
	)
	policy := retry.Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	return NewOrchestrator(classifier, resolver, prompt.NewBuilder(10), provider, "gpt-4o-mini", policy, 10, logger)
}

func buildingID(v int64) *int64 { return &v }

func TestHandleBuildingQuestion(t *testing.T) {
	provider := &scriptedLLM{
		classification: `{"context_type":"building_context","confidence":0.93,"reason":"asks about energy"}`,
		chatResponse:   "My energy use fell 4% last quarter.",
	}
	o := newTestOrchestrator(provider, &types.BuildingProfile{ID: 7, Name: "Riverside Tower"})

	envelope := o.Handle(context.Background(), Request{
		Message:    "how is my energy consumption",
		BuildingID: buildingID(7),
		Persona:    types.Persona{Name: "Riverside Tower"},
	})

	require.NotNil(t, envelope)
	assert.Equal(t, "My energy use fell 4% last quarter.", envelope.ResponseText)
	assert.Equal(t, types.ContextBuilding, envelope.Metadata.ContextType)
	assert.True(t, envelope.Metadata.ContextUsed)
	assert.Nil(t, envelope.Metadata.Error)
	assert.Equal(t, "gpt-4o-mini", envelope.Metadata.ModelUsed)
	assert.Equal(t, 1150, envelope.Metadata.TokensUsed)

	require.NotNil(t, envelope.Metadata.CostSummary)
	// One classification call plus one chat call.
	assert.Equal(t, 2, envelope.Metadata.CostSummary.TotalAPICalls)
	assert.Equal(t, 1, envelope.Metadata.CostSummary.CallsByType["classification"].Count)
	assert.Equal(t, 1, envelope.Metadata.CostSummary.CallsByType["chat"].Count)
}

func TestHandleGeneralGreeting(t *testing.T) {
	provider := &scriptedLLM{
		classification: `{"context_type":"general","confidence":0.97,"reason":"greeting"}`,
		chatResponse:   "Hello! I am Riverside Tower. How can I help?",
	}
	o := newTestOrchestrator(provider, nil)

	envelope := o.Handle(context.Background(), Request{
		Message: "hello",
		Persona: types.Persona{Name: "Riverside Tower"},
	})

	assert.Equal(t, types.ContextGeneral, envelope.Metadata.ContextType)
	assert.False(t, envelope.Metadata.ContextUsed)
	assert.Nil(t, envelope.Metadata.Error)
	assert.Empty(t, envelope.Metadata.SourceErrors)
}

func TestHandleGenerationFailureDegrades(t *testing.T) {
	provider := &scriptedLLM{
		classification: `{"context_type":"general","confidence":0.97,"reason":"greeting"}`,
		chatErr:        errors.New("upstream timeout"),
	}
	o := newTestOrchestrator(provider, nil)

	envelope := o.Handle(context.Background(), Request{Message: "hello", Persona: types.Persona{Name: "HQ"}})

	require.NotNil(t, envelope)
	assert.Equal(t, degradedResponse, envelope.ResponseText)
	require.NotNil(t, envelope.Metadata.Error)
	assert.False(t, envelope.Metadata.ContextUsed)
	assert.Equal(t, 2, provider.chatCalls, "generation retries once before giving up")
	// The internal error text never leaks into the response.
	assert.NotContains(t, envelope.ResponseText, "upstream timeout")

	require.NotNil(t, envelope.Metadata.CostSummary)
	assert.Equal(t, 1, envelope.Metadata.CostSummary.TotalAPICalls, "only the classification call is billed")
}

func TestHandleClassifierFailureStillResponds(t *testing.T) {
	provider := &scriptedLLM{
		classifyErr:  errors.New("classifier down"),
		chatResponse: "Happy to help with building management questions.",
	}
	o := newTestOrchestrator(provider, nil)

	envelope := o.Handle(context.Background(), Request{Message: "hello there", Persona: types.Persona{Name: "HQ"}})

	assert.Nil(t, envelope.Metadata.Error)
	assert.Equal(t, types.ContextGeneral, envelope.Metadata.ContextType)
	assert.True(t, strings.Contains(envelope.Metadata.Reason, "Fallback"))
}

package intent

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"building-chat-be/pkg/chat/costs"
	"building-chat-be/pkg/chat/types"
	"building-chat-be/pkg/llm"
)

type fakeLLM struct {
	response    string
	err         error
	calls       int
	sawDeadline bool
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Completion, error) {
	return f.Generate(ctx, "", opts...)
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Completion, error) {
	f.calls++
	_, f.sawDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Completion{
		Text:  f.response,
		Model: "gpt-4o-mini",
		Usage: llm.Usage{InputTokens: 120, OutputTokens: 30},
	}, nil
}

func newTestClassifier(provider llm.LLMProvider, threshold float64) *Classifier {
	return NewClassifier(provider, "gpt-4o-mini", threshold, 0, log.New(log.Writer(), "", 0))
}

func TestFallbackKeywordMatching(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		hasFileIDs bool
		wantType   types.ContextType
		wantConf   float64
	}{
		{
			name:     "file keywords",
			message:  "summarize this file for me",
			wantType: types.ContextFile,
			wantConf: 0.70,
		},
		{
			name:     "building keywords",
			message:  "how is my energy consumption trending",
			wantType: types.ContextBuilding,
			wantConf: 0.70,
		},
		{
			name:     "organization keywords",
			message:  "compare all buildings in my portfolio",
			wantType: types.ContextOrganization,
			wantConf: 0.70,
		},
		{
			name:     "vector keywords",
			message:  "search past reports for anomalies",
			wantType: types.ContextVector,
			wantConf: 0.70,
		},
		{
			name:     "no keywords",
			message:  "xyzzy",
			wantType: types.ContextGeneral,
			wantConf: 0.30,
		},
		{
			name:     "tie broken by declaration order",
			message:  "document energy",
			wantType: types.ContextFile,
			wantConf: 0.70,
		},
		{
			name:       "file ids add one file vote",
			message:    "energy",
			hasFileIDs: true,
			wantType:   types.ContextFile,
			wantConf:   0.70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// LLM failure forces the keyword path.
			c := newTestClassifier(&fakeLLM{err: errors.New("unreachable")}, 0.6)
			tracker := costs.NewTracker()

			cls := c.Classify(context.Background(), tt.message, tt.hasFileIDs, nil, nil, tracker)

			if cls.ContextType != tt.wantType {
				t.Errorf("context type = %s, want %s", cls.ContextType, tt.wantType)
			}
			if cls.Confidence != tt.wantConf {
				t.Errorf("confidence = %.2f, want %.2f", cls.Confidence, tt.wantConf)
			}
			if !cls.UsedFallback {
				t.Error("expected UsedFallback = true")
			}
		})
	}
}

func TestClassifyEmptyMessageSkipsLLM(t *testing.T) {
	provider := &fakeLLM{response: `{"context_type":"building_context","confidence":0.9,"reason":"x"}`}
	c := newTestClassifier(provider, 0.6)

	cls := c.Classify(context.Background(), "   ", false, nil, nil, costs.NewTracker())

	if provider.calls != 0 {
		t.Errorf("LLM called %d times for empty message, want 0", provider.calls)
	}
	if cls.ContextType != types.ContextGeneral {
		t.Errorf("context type = %s, want general", cls.ContextType)
	}
	if cls.Confidence != 0.30 {
		t.Errorf("confidence = %.2f, want 0.30", cls.Confidence)
	}
}

func TestClassifyLLMPath(t *testing.T) {
	provider := &fakeLLM{response: `Here you go: {"context_type":"building_context","confidence":0.92,"reason":"asks about energy"}`}
	c := newTestClassifier(provider, 0.6)
	tracker := costs.NewTracker()

	cls := c.Classify(context.Background(), "show my energy usage", false, nil, nil, tracker)

	if cls.ContextType != types.ContextBuilding {
		t.Errorf("context type = %s, want building_context", cls.ContextType)
	}
	if cls.UsedFallback {
		t.Error("expected UsedFallback = false on the LLM path")
	}
	if cls.Confidence != 0.92 {
		t.Errorf("confidence = %.2f, want 0.92", cls.Confidence)
	}

	records := tracker.Records()
	if len(records) != 1 {
		t.Fatalf("tracker records = %d, want 1", len(records))
	}
	if records[0].CallType != costs.CallClassification {
		t.Errorf("call type = %s, want classification", records[0].CallType)
	}
}

func TestClassifyAppliesCallTimeout(t *testing.T) {
	provider := &fakeLLM{response: `{"context_type":"general","confidence":0.9,"reason":"x"}`}
	c := NewClassifier(provider, "gpt-4o-mini", 0.6, 5*time.Second, log.New(log.Writer(), "", 0))

	c.Classify(context.Background(), "hello", false, nil, nil, costs.NewTracker())

	if !provider.sawDeadline {
		t.Error("expected the LLM call context to carry a deadline")
	}
}

func TestClassifyZeroTimeoutLeavesContextAlone(t *testing.T) {
	provider := &fakeLLM{response: `{"context_type":"general","confidence":0.9,"reason":"x"}`}
	c := newTestClassifier(provider, 0.6)

	c.Classify(context.Background(), "hello", false, nil, nil, costs.NewTracker())

	if provider.sawDeadline {
		t.Error("no timeout configured, call context should have no deadline")
	}
}

func TestClassifyConfidenceClamped(t *testing.T) {
	provider := &fakeLLM{response: `{"context_type":"general","confidence":3.5,"reason":"sure"}`}
	c := newTestClassifier(provider, 0.6)

	cls := c.Classify(context.Background(), "anything at all", false, nil, nil, costs.NewTracker())

	if cls.Confidence != 1.0 {
		t.Errorf("confidence = %.2f, want clamp to 1.0", cls.Confidence)
	}
}

func TestClassifyBelowThresholdUsesFallback(t *testing.T) {
	provider := &fakeLLM{response: `{"context_type":"vector_context","confidence":0.2,"reason":"maybe"}`}
	c := newTestClassifier(provider, 0.6)

	cls := c.Classify(context.Background(), "tell me about my building bills", false, nil, nil, costs.NewTracker())

	if !cls.UsedFallback {
		t.Error("expected fallback when confidence below threshold")
	}
	if cls.ContextType != types.ContextBuilding {
		t.Errorf("context type = %s, want building_context from keywords", cls.ContextType)
	}
}

func TestClassifyMalformedResponseUsesFallback(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no json", "building_context, definitely"},
		{"broken json", `{"context_type": "building_context",`},
		{"unknown type", `{"context_type":"weather_context","confidence":0.9,"reason":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(&fakeLLM{response: tt.response}, 0.6)

			cls := c.Classify(context.Background(), "what are my bills", false, nil, nil, costs.NewTracker())

			if !cls.UsedFallback {
				t.Error("expected fallback on malformed response")
			}
			if cls.ContextType != types.ContextBuilding {
				t.Errorf("context type = %s, want building_context", cls.ContextType)
			}
		})
	}
}

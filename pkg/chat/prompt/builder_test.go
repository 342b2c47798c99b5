package prompt

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"building-chat-be/pkg/chat/types"
)

func turns(n int) []types.Turn {
	out := make([]types.Turn, n)
	for i := range out {
		out[i] = types.Turn{Role: "user", Content: strings.Repeat("x", i+1)}
	}
	return out
}

func TestTruncateHistory(t *testing.T) {
	history := turns(15)

	truncated := TruncateHistory(history, 10)
	if len(truncated) != 10 {
		t.Fatalf("len = %d, want 10", len(truncated))
	}
	// Oldest dropped first: the survivor set is the last 10 turns.
	if truncated[0].Content != history[5].Content {
		t.Errorf("first kept turn = %q, want %q", truncated[0].Content, history[5].Content)
	}

	// Idempotent: truncating the result again changes nothing.
	again := TruncateHistory(truncated, 10)
	if len(again) != 10 || again[0].Content != truncated[0].Content {
		t.Error("second truncation changed the result")
	}
}

func TestTruncateHistoryDoesNotMutateCaller(t *testing.T) {
	history := turns(12)
	original := make([]types.Turn, len(history))
	copy(original, history)

	truncated := TruncateHistory(history, 5)
	truncated[0].Content = "tampered"

	for i := range history {
		if history[i] != original[i] {
			t.Fatalf("caller slice mutated at index %d", i)
		}
	}
}

func TestTruncateHistoryWithinWindow(t *testing.T) {
	history := turns(3)
	if got := TruncateHistory(history, 10); len(got) != 3 {
		t.Errorf("len = %d, want 3 (no truncation)", len(got))
	}
}

func TestBuildCarriesPersonaAndConfidence(t *testing.T) {
	b := NewBuilder(10)
	resolved := &types.ResolvedContext{ContextType: types.ContextGeneral}
	cls := types.Classification{ContextType: types.ContextGeneral, Confidence: 0.42}

	pkg := b.Build(resolved, cls, nil, types.Persona{Name: "Riverside Tower"}, "hello")

	if !strings.Contains(pkg.SystemPrompt, "I am Riverside Tower.") {
		t.Error("system prompt missing first-person persona line")
	}
	if !strings.Contains(pkg.SystemPrompt, "speak as if you are the building itself") {
		t.Error("system prompt missing base persona")
	}
	if pkg.UserPrompt != "hello" {
		t.Errorf("user prompt = %q, want %q", pkg.UserPrompt, "hello")
	}
	if pkg.PromptConfidence != 0.42 {
		t.Errorf("prompt confidence = %.2f, want 0.42 carried from classification", pkg.PromptConfidence)
	}
}

func TestBuildNoPayloadFallsBackToGeneralGuidance(t *testing.T) {
	b := NewBuilder(10)
	resolved := &types.ResolvedContext{ContextType: types.ContextBuilding}

	pkg := b.Build(resolved, types.Classification{}, nil, types.Persona{Name: "HQ"}, "how do I save energy")

	if strings.Contains(pkg.SystemPrompt, "--- CONTEXT START ---") {
		t.Error("no payload should not render a context block")
	}
	if !strings.Contains(pkg.SystemPrompt, "No specific context data is available") {
		t.Error("missing general guidance fallback")
	}
}

func TestBuildFramingPerPayloadVariant(t *testing.T) {
	building := &types.BuildingProfile{Name: "Riverside Tower", Address: "12 Riverside Drive"}

	tests := []struct {
		name        string
		payload     types.Payload
		wantFraming string
		wantContent string
	}{
		{
			name:        "file chunks",
			payload:     types.FileChunks{FileIDs: []string{"f1"}, Chunks: []types.Chunk{{Text: "lease terms", FileName: "lease.pdf"}}},
			wantFraming: "Here is the relevant content from the uploaded files:",
			wantContent: "File: lease.pdf",
		},
		{
			name: "building record",
			payload: types.BuildingRecord{
				Building: building,
				Bills:    []types.BillEntry{{BillDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), BillType: "electric", Amount: 5200}},
			},
			wantFraming: "Here is the requester's building data:",
			wantContent: "Building: Riverside Tower",
		},
		{
			name: "organization aggregate",
			payload: types.OrganizationAggregate{
				Name:       "Greenfield Properties",
				AdminEmail: "admin@greenfield.example",
				Metrics:    &types.PortfolioMetrics{TotalBuildings: 2},
			},
			wantFraming: "Here is the organization-level portfolio information:",
			wantContent: "Organization: Greenfield Properties",
		},
		{
			name:        "document matches",
			payload:     types.DocumentMatches{Query: "audit", Chunks: []types.Chunk{{Text: "audit result", FileID: "doc-9"}}},
			wantFraming: "Here are relevant document excerpts from my knowledge base:",
			wantContent: "Source: doc-9",
		},
	}

	b := NewBuilder(10)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := &types.ResolvedContext{Payload: tt.payload}
			pkg := b.Build(resolved, types.Classification{}, nil, types.Persona{Name: "HQ"}, "q")

			if !strings.Contains(pkg.SystemPrompt, tt.wantFraming) {
				t.Errorf("missing framing sentence %q", tt.wantFraming)
			}
			if !strings.Contains(pkg.SystemPrompt, "--- CONTEXT START ---") || !strings.Contains(pkg.SystemPrompt, "--- CONTEXT END ---") {
				t.Error("context block not delimited")
			}
			if !strings.Contains(pkg.SystemPrompt, tt.wantContent) {
				t.Errorf("missing serialized content %q", tt.wantContent)
			}
		})
	}
}

func TestBuildTruncatesLongHistoryLines(t *testing.T) {
	b := NewBuilder(10)
	resolved := &types.ResolvedContext{ContextType: types.ContextGeneral}
	long := strings.Repeat("a", 400)

	pkg := b.Build(resolved, types.Classification{}, []types.Turn{{Role: "user", Content: long}}, types.Persona{Name: "HQ"}, "q")

	if strings.Contains(pkg.SystemPrompt, long) {
		t.Error("history line should be capped at 200 chars")
	}
	if !strings.Contains(pkg.SystemPrompt, strings.Repeat("a", 200)) {
		t.Error("truncated history line missing")
	}
}

func TestBuildKeepsHistoryLinesValidUTF8(t *testing.T) {
	b := NewBuilder(10)
	resolved := &types.ResolvedContext{ContextType: types.ContextGeneral}
	// 300 three-byte runes, so a 200-byte cut would land mid-rune.
	long := strings.Repeat("エ", 300)

	pkg := b.Build(resolved, types.Classification{}, []types.Turn{{Role: "user", Content: long}}, types.Persona{Name: "HQ"}, "q")

	if !utf8.ValidString(pkg.SystemPrompt) {
		t.Error("system prompt contains an invalid UTF-8 sequence")
	}
	if !strings.Contains(pkg.SystemPrompt, strings.Repeat("エ", 200)) {
		t.Error("truncated history line missing the first 200 runes")
	}
	if strings.Contains(pkg.SystemPrompt, strings.Repeat("エ", 201)) {
		t.Error("history line not capped at 200 runes")
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short ascii untouched", "hello", 200, "hello"},
		{"long ascii capped", strings.Repeat("a", 10), 4, "aaaa"},
		{"multibyte under limit", "héllo", 5, "héllo"},
		{"multibyte capped on rune boundary", "héllo", 2, "hé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateRunes(tt.in, tt.limit); got != tt.want {
				t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

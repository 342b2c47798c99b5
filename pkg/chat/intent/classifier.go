package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"building-chat-be/pkg/chat/costs"
	"building-chat-be/pkg/chat/types"
	"building-chat-be/pkg/llm"
)

// fallbackGeneralConfidence is reported when the keyword fallback matches
// nothing, so downstream stages can see the classification is a guess.
const fallbackGeneralConfidence = 0.30

// fallbackMatchConfidence is reported when the keyword fallback found at
// least one keyword.
const fallbackMatchConfidence = 0.70

// keywordSet pairs a context type with the phrases that vote for it.
// Order matches types.OrderedContextTypes; ties go to the earlier set.
type keywordSet struct {
	contextType types.ContextType
	keywords    []string
}

var fallbackKeywords = []keywordSet{
	{types.ContextFile, []string{"file", "document", "upload", "this file", "summarize", "extract", "what's in"}},
	{types.ContextBuilding, []string{"building", "energy", "bills", "measures", "consumption", "performance"}},
	{types.ContextOrganization, []string{"organization", "company", "all buildings", "portfolio", "across buildings"}},
	{types.ContextVector, []string{"previous", "historical", "past", "reports", "find", "search", "analysis"}},
	{types.ContextGeneral, []string{"hello", "help", "how to", "what can you do"}},
}

// Classifier decides which kind of context a message needs. The LLM is the
// primary path; keyword matching is the deterministic fallback.
type Classifier struct {
	llmProvider llm.LLMProvider
	model       string
	threshold   float64
	timeout     time.Duration
	logger      *log.Logger
}

// NewClassifier builds a classifier. A timeout of zero leaves the caller's
// context deadline in charge.
func NewClassifier(llmProvider llm.LLMProvider, model string, confidenceThreshold float64, timeout time.Duration, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		model:       model,
		threshold:   confidenceThreshold,
		timeout:     timeout,
		logger:      logger,
	}
}

// Classify maps a message to a context type. It never returns an error: any
// failure on the LLM path degrades to the keyword fallback.
func (c *Classifier) Classify(ctx context.Context, message string, hasFileIDs bool, buildingID, orgID *int64, tracker *costs.Tracker) types.Classification {
	if strings.TrimSpace(message) == "" {
		return c.fallback(message, hasFileIDs)
	}

	prompt := c.buildPrompt(message, hasFileIDs, buildingID, orgID)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	response, err := c.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(300),
		llm.WithModel(c.model),
	)
	if err != nil {
		c.logger.Printf("[WARN] Classification LLM call failed: %v", err)
		return c.fallback(message, hasFileIDs)
	}

	tracker.Log(costs.CallClassification, response.Model, response.Usage.InputTokens, response.Usage.OutputTokens)

	cls, err := c.parseClassification(response.Text)
	if err != nil {
		c.logger.Printf("[WARN] Classification parsing failed, using fallback: %v", err)
		return c.fallback(message, hasFileIDs)
	}

	if cls.Confidence < c.threshold {
		c.logger.Printf("[INFO] Classification confidence %.2f below threshold %.2f, using fallback", cls.Confidence, c.threshold)
		return c.fallback(message, hasFileIDs)
	}

	c.logger.Printf("[INTENT] Classified: %s (confidence: %.2f)", cls.ContextType, cls.Confidence)
	return cls
}

func (c *Classifier) buildPrompt(message string, hasFileIDs bool, buildingID, orgID *int64) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You are a context classifier for a building management chatbot.\n")
	prompt.WriteString("Your ONLY job is to decide what type of context is needed to answer the user's question.\n")
	prompt.WriteString("You do NOT answer the question itself.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<request_state>\n")
	prompt.WriteString(fmt.Sprintf("FILE_ATTACHED: %t\n", hasFileIDs))
	if buildingID != nil {
		prompt.WriteString(fmt.Sprintf("BUILDING_ID: %d\n", *buildingID))
	}
	if orgID != nil {
		prompt.WriteString(fmt.Sprintf("ORGANIZATION_ID: %d\n", *orgID))
	}
	prompt.WriteString("</request_state>\n\n")

	prompt.WriteString("<user_message>\n")
	prompt.WriteString(message)
	prompt.WriteString("\n</user_message>\n\n")

	prompt.WriteString("<context_definitions>\n")
	prompt.WriteString("Choose ONE context type:\n\n")

	prompt.WriteString("file_context: User asks about specific files, documents, or uploaded content\n")
	prompt.WriteString("  - Signals: 'this file', 'document', 'report', 'upload', 'what's in', 'summarize', 'extract'\n\n")

	prompt.WriteString("building_context: User asks about building-specific data, performance, measures, bills\n")
	prompt.WriteString("  - Signals: 'my building', 'energy', 'bills', 'measures', 'performance', 'consumption', 'costs'\n\n")

	prompt.WriteString("organization_context: User asks about organization-level data or multiple buildings\n")
	prompt.WriteString("  - Signals: 'all buildings', 'organization', 'company', 'portfolio', 'across buildings'\n\n")

	prompt.WriteString("vector_context: User asks about historical data, past reports, or anything that could\n")
	prompt.WriteString("  live in previously uploaded documents\n")
	prompt.WriteString("  - Signals: 'previous', 'historical', 'past', 'reports', 'analysis', 'find', 'search'\n\n")

	prompt.WriteString("general: General questions that need no specific context\n")
	prompt.WriteString("  - Signals: 'hello', 'help', 'how to', 'what can you do', general advice\n")
	prompt.WriteString("</context_definitions>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"context_type\": \"file_context|building_context|organization_context|vector_context|general\",\n")
	prompt.WriteString("  \"confidence\": 0.95,\n")
	prompt.WriteString("  \"reason\": \"Brief explanation\"\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func (c *Classifier) parseClassification(response string) (types.Classification, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return types.Classification{}, fmt.Errorf("no JSON found in response")
	}

	var cls types.Classification
	if err := json.Unmarshal([]byte(jsonContent), &cls); err != nil {
		return types.Classification{}, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	if !cls.ContextType.IsValid() {
		return types.Classification{}, fmt.Errorf("invalid context type: %q", cls.ContextType)
	}

	cls.Confidence = clamp01(cls.Confidence)
	return cls, nil
}

// fallback counts keyword matches per set; the set with the most matches
// wins, ties broken by declaration order. hasFileIDs counts as one extra
// file-keyword match, never an override.
func (c *Classifier) fallback(message string, hasFileIDs bool) types.Classification {
	lower := strings.ToLower(message)

	bestType := types.ContextGeneral
	bestCount := 0
	var bestMatched []string

	for _, set := range fallbackKeywords {
		var matched []string
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, kw)
			}
		}
		count := len(matched)
		if set.contextType == types.ContextFile && hasFileIDs {
			count++
		}
		if count > bestCount {
			bestCount = count
			bestType = set.contextType
			bestMatched = matched
		}
	}

	if bestCount == 0 {
		return types.Classification{
			ContextType:  types.ContextGeneral,
			Confidence:   fallbackGeneralConfidence,
			Reasoning:    "Fallback: no specific context detected",
			UsedFallback: true,
		}
	}

	return types.Classification{
		ContextType:     bestType,
		Confidence:      fallbackMatchConfidence,
		Reasoning:       fmt.Sprintf("Fallback: detected %s keywords", bestType),
		MatchedKeywords: bestMatched,
		UsedFallback:    true,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}

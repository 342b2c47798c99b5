package types

import (
	"time"
)

// ContextType is the five-way label that decides which sources the resolver
// queries. Declaration order doubles as the tie-break order for the keyword
// fallback classifier.
type ContextType string

const (
	ContextFile         ContextType = "file_context"
	ContextBuilding     ContextType = "building_context"
	ContextOrganization ContextType = "organization_context"
	ContextVector       ContextType = "vector_context"
	ContextGeneral      ContextType = "general"
)

// OrderedContextTypes lists the context types in tie-break order.
var OrderedContextTypes = []ContextType{
	ContextFile,
	ContextBuilding,
	ContextOrganization,
	ContextVector,
	ContextGeneral,
}

func (c ContextType) IsValid() bool {
	switch c {
	case ContextFile, ContextBuilding, ContextOrganization, ContextVector, ContextGeneral:
		return true
	}
	return false
}

// Classification is the classifier's verdict for a single message.
type Classification struct {
	ContextType     ContextType `json:"context_type"`
	Confidence      float64     `json:"confidence"`
	Reasoning       string      `json:"reason"`
	MatchedKeywords []string    `json:"matched_keywords,omitempty"`
	UsedFallback    bool        `json:"used_fallback"`
}

// Turn is one conversation turn supplied by the caller.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// SourceError records a recoverable failure from one backing source.
type SourceError struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Payload is the sealed union of per-type context payloads. A nil Payload
// means no context was retrieved.
type Payload interface {
	isPayload()
}

// Chunk is one scored document fragment returned by similarity search.
type Chunk struct {
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	ChunkIndex int     `json:"chunk_index"`
	FileID     string  `json:"file_id"`
	FileName   string  `json:"file_name,omitempty"`
}

// FileChunks is the payload for file-scoped retrieval.
type FileChunks struct {
	FileIDs []string `json:"file_ids"`
	Chunks  []Chunk  `json:"chunks"`
}

func (FileChunks) isPayload() {}

// BuildingMeasure is one efficiency measure attached to a building.
type BuildingMeasure struct {
	Name   string `json:"measure_name"`
	Status string `json:"status"`
}

// EnergyEntry is one monthly energy reading.
type EnergyEntry struct {
	StartDate     time.Time `json:"start_date"`
	UsageQuantity float64   `json:"usage_quantity"`
	UsageUnits    string    `json:"usage_units"`
}

// BillEntry is one utility bill line.
type BillEntry struct {
	BillDate time.Time `json:"bill_date"`
	BillType string    `json:"bill_type"`
	Amount   float64   `json:"amount"`
}

// BuildingProfile is the relational snapshot of one building.
type BuildingProfile struct {
	ID             int64   `json:"id"`
	Name           string  `json:"building_name"`
	Address        string  `json:"address"`
	BuildingType   string  `json:"building_type"`
	GrossFloorArea float64 `json:"gross_floor_area"`
	YearBuilt      int     `json:"year_built"`
}

// BuildingRecord aggregates whatever building sub-queries succeeded.
type BuildingRecord struct {
	Building *BuildingProfile  `json:"building,omitempty"`
	Measures []BuildingMeasure `json:"measures,omitempty"`
	Energy   []EnergyEntry     `json:"energy_data,omitempty"`
	Bills    []BillEntry       `json:"bills,omitempty"`
}

func (BuildingRecord) isPayload() {}

// PortfolioMetrics are the organization-wide rollups.
type PortfolioMetrics struct {
	TotalBuildings int     `json:"total_buildings"`
	TotalArea      float64 `json:"total_area"`
	AvgYearBuilt   float64 `json:"avg_year_built"`
}

// OrganizationAggregate is the payload for portfolio-level questions.
type OrganizationAggregate struct {
	Name       string            `json:"org_name"`
	AdminEmail string            `json:"admin_email"`
	Address    string            `json:"address"`
	Buildings  []BuildingProfile `json:"buildings,omitempty"`
	Metrics    *PortfolioMetrics `json:"metrics,omitempty"`
}

func (OrganizationAggregate) isPayload() {}

// DocumentMatches is the payload for cross-document semantic search.
type DocumentMatches struct {
	Query  string  `json:"search_query"`
	Chunks []Chunk `json:"chunks"`
}

func (DocumentMatches) isPayload() {}

// ResolvedContext is what the resolver hands to the prompt builder.
// SourceErrors non-empty does not imply total failure.
type ResolvedContext struct {
	ContextType  ContextType
	Payload      Payload
	SourceErrors []SourceError
	UsedFallback bool
}

// HasPayload reports whether any context was actually retrieved.
func (r *ResolvedContext) HasPayload() bool {
	return r != nil && r.Payload != nil
}

// Persona is the building identity every prompt speaks as.
type Persona struct {
	Name        string
	Description string
}

// PromptPackage is the assembled prompt, built fresh per request.
type PromptPackage struct {
	SystemPrompt     string
	UserPrompt       string
	PromptConfidence float64
}

// CostSummary mirrors the tracker summary into response metadata.
type CostSummary struct {
	TotalCostUSD  string                   `json:"total_cost_usd"`
	TotalAPICalls int                      `json:"total_api_calls"`
	CallsByType   map[string]CallTypeStats `json:"calls_by_type"`
}

type CallTypeStats struct {
	Count       int    `json:"count"`
	TotalCost   string `json:"total_cost"`
	TotalTokens int    `json:"total_tokens"`
}

// Metadata travels alongside the response text.
type Metadata struct {
	ContextType      ContextType   `json:"context_type"`
	Confidence       float64       `json:"confidence"`
	Reason           string        `json:"reason"`
	ContextUsed      bool          `json:"context_used"`
	PromptConfidence float64       `json:"prompt_confidence"`
	ModelUsed        string        `json:"model_used"`
	TokensUsed       int           `json:"tokens_used"`
	FileIDs          []string      `json:"file_ids"`
	ChunksUsed       int           `json:"chunks_used"`
	CostSummary      *CostSummary  `json:"cost_summary,omitempty"`
	SourceErrors     []SourceError `json:"source_errors,omitempty"`
	Error            *string       `json:"error,omitempty"`
}

// Envelope is the terminal artifact of one orchestrated request.
// Metadata.Error is set if and only if the pipeline degraded to the canned
// general response.
type Envelope struct {
	ResponseText string   `json:"response"`
	Metadata     Metadata `json:"metadata"`
}

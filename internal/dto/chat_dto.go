package dto

import (
	"building-chat-be/pkg/chat/types"
)

type ChatMessageDTO struct {
	Role    string `json:"role" validate:"required,oneof=user model assistant system"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest is the inbound wire contract. Field names are camelCase to
// match what clients already send.
type ChatRequest struct {
	Message        string           `json:"message" validate:"required"`
	BuildingID     *int64           `json:"buildingId,omitempty"`
	BuildingName   string           `json:"buildingName,omitempty"`
	OrganizationID *int64           `json:"organizationId,omitempty"`
	UserEmail      string           `json:"userEmail,omitempty" validate:"omitempty,email"`
	MessageHistory []ChatMessageDTO `json:"messageHistory,omitempty" validate:"max=50,dive"`
	FileIDs        []string         `json:"fileIds,omitempty" validate:"max=10"`
	FileURL        string           `json:"fileUrl,omitempty" validate:"omitempty,url"`
}

type ChatResponse struct {
	Response  string         `json:"response"`
	Metadata  types.Metadata `json:"metadata"`
	RequestID string         `json:"request_id"`
}

// SessionCostMessage is published after every completed chat request so the
// cost consumer can fold the session totals into the daily/monthly rollups.
type SessionCostMessage struct {
	RequestID string            `json:"request_id"`
	Summary   types.CostSummary `json:"summary"`
}

type CostPeriodResponse struct {
	Period       string `json:"period"` // "daily" | "monthly"
	DateKey      string `json:"date_key"`
	TotalCost    string `json:"total_cost"`
	RequestCount int64  `json:"request_count"`
	APICalls     int64  `json:"api_calls"`
}

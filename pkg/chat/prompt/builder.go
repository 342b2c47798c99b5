package prompt

import (
	"fmt"
	"strings"

	"building-chat-be/pkg/chat/types"
)

const basePersona = `You are an intelligent building management assistant with a warm, welcoming, and helpful personality. You speak as if you are the building itself, with access to all building data and performance information.

Key persona traits:
- Warm and welcoming tone
- Speak in first person as the building ("I am [Building Name]", "My energy consumption", "In my building", etc.)
- Knowledgeable about building operations, energy efficiency, maintenance, and sustainability
- Helpful and solution-oriented
- Professional yet approachable
- Always maintain your building persona while providing helpful, actionable information`

// Builder assembles persona-consistent prompts. It is a pure function of
// its inputs: no external calls, no failure modes beyond truncation.
type Builder struct {
	historyWindow int
}

func NewBuilder(historyWindow int) *Builder {
	if historyWindow <= 0 {
		historyWindow = 10
	}
	return &Builder{historyWindow: historyWindow}
}

// Build renders the system and user prompts. PromptConfidence is carried
// through from the classification, not recomputed.
func (b *Builder) Build(resolved *types.ResolvedContext, cls types.Classification, history []types.Turn, persona types.Persona, message string) types.PromptPackage {
	var sys strings.Builder

	sys.WriteString(basePersona)
	sys.WriteString("\n\n")
	sys.WriteString(fmt.Sprintf("I am %s.", persona.Name))
	if persona.Description != "" {
		sys.WriteString(" ")
		sys.WriteString(persona.Description)
	}
	sys.WriteString("\n")

	if resolved.HasPayload() {
		sys.WriteString("\n")
		sys.WriteString(framingSentence(resolved.Payload))
		sys.WriteString("\n\n--- CONTEXT START ---\n")
		sys.WriteString(serializePayload(resolved.Payload))
		sys.WriteString("\n--- CONTEXT END ---\n")
		sys.WriteString("\nUse this information to provide accurate, relevant responses. Always maintain your building persona.\n")
	} else {
		sys.WriteString("\nNo specific context data is available for this question. Provide helpful general guidance on building management, energy efficiency, maintenance, and sustainability.\n")
	}

	if truncated := TruncateHistory(history, b.historyWindow); len(truncated) > 0 {
		sys.WriteString("\nRecent conversation context:\n")
		for _, turn := range truncated {
			sys.WriteString(fmt.Sprintf("- %s: %s\n", turn.Role, truncateRunes(turn.Content, 200)))
		}
	}

	return types.PromptPackage{
		SystemPrompt:     sys.String(),
		UserPrompt:       message,
		PromptConfidence: cls.Confidence,
	}
}

// TruncateHistory keeps the most recent window turns, oldest dropped first.
// It never mutates or reorders the caller's slice; a within-bound history
// is returned as-is, which makes truncation idempotent.
func TruncateHistory(history []types.Turn, window int) []types.Turn {
	if len(history) <= window {
		return history
	}
	out := make([]types.Turn, window)
	copy(out, history[len(history)-window:])
	return out
}

// truncateRunes caps s at limit runes so a multi-byte character is never
// split mid-sequence.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func framingSentence(payload types.Payload) string {
	switch payload.(type) {
	case types.FileChunks:
		return "Here is the relevant content from the uploaded files:"
	case types.BuildingRecord:
		return "Here is the requester's building data:"
	case types.OrganizationAggregate:
		return "Here is the organization-level portfolio information:"
	case types.DocumentMatches:
		return "Here are relevant document excerpts from my knowledge base:"
	default:
		return "Here is the available context:"
	}
}

func serializePayload(payload types.Payload) string {
	switch p := payload.(type) {
	case types.FileChunks:
		return serializeChunks(p.Chunks, "File")
	case types.BuildingRecord:
		return serializeBuilding(p)
	case types.OrganizationAggregate:
		return serializeOrganization(p)
	case types.DocumentMatches:
		return serializeChunks(p.Chunks, "Source")
	default:
		return ""
	}
}

func serializeChunks(chunks []types.Chunk, label string) string {
	var sb strings.Builder
	for _, chunk := range chunks {
		name := chunk.FileName
		if name == "" {
			name = chunk.FileID
		}
		if name == "" {
			name = "Unknown Document"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, name))
		sb.WriteString(fmt.Sprintf("Content: %s\n", chunk.Text))
		sb.WriteString("---\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func serializeBuilding(p types.BuildingRecord) string {
	var sb strings.Builder

	if b := p.Building; b != nil {
		sb.WriteString(fmt.Sprintf("Building: %s\n", b.Name))
		sb.WriteString(fmt.Sprintf("Address: %s\n", orUnknown(b.Address)))
		sb.WriteString(fmt.Sprintf("Type: %s\n", orUnknown(b.BuildingType)))
		if b.GrossFloorArea > 0 {
			sb.WriteString(fmt.Sprintf("Size: %.0f sq ft\n", b.GrossFloorArea))
		}
		if b.YearBuilt > 0 {
			sb.WriteString(fmt.Sprintf("Year Built: %d\n", b.YearBuilt))
		}
	}

	if len(p.Measures) > 0 {
		sb.WriteString(fmt.Sprintf("\nRecent Measures (%d):\n", len(p.Measures)))
		for i, m := range p.Measures {
			if i >= 5 {
				break
			}
			sb.WriteString(fmt.Sprintf("- %s: %s\n", m.Name, m.Status))
		}
	}

	if len(p.Energy) > 0 {
		sb.WriteString(fmt.Sprintf("\nRecent Energy Data (%d entries):\n", len(p.Energy)))
		for i, e := range p.Energy {
			if i >= 3 {
				break
			}
			sb.WriteString(fmt.Sprintf("- %s: %.1f %s\n", e.StartDate.Format("2006-01-02"), e.UsageQuantity, e.UsageUnits))
		}
	}

	if len(p.Bills) > 0 {
		sb.WriteString(fmt.Sprintf("\nRecent Bills (%d entries):\n", len(p.Bills)))
		for i, bill := range p.Bills {
			if i >= 3 {
				break
			}
			sb.WriteString(fmt.Sprintf("- %s: %s - $%.2f\n", bill.BillDate.Format("2006-01-02"), bill.BillType, bill.Amount))
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func serializeOrganization(p types.OrganizationAggregate) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Organization: %s\n", p.Name))
	sb.WriteString(fmt.Sprintf("Admin: %s\n", p.AdminEmail))
	sb.WriteString(fmt.Sprintf("Address: %s\n", orUnknown(p.Address)))

	if len(p.Buildings) > 0 {
		sb.WriteString(fmt.Sprintf("\nBuildings (%d):\n", len(p.Buildings)))
		for i, b := range p.Buildings {
			if i >= 10 {
				break
			}
			sb.WriteString(fmt.Sprintf("- %s: %s\n", b.Name, orUnknown(b.BuildingType)))
		}
	}

	if m := p.Metrics; m != nil {
		sb.WriteString("\nPortfolio Summary:\n")
		sb.WriteString(fmt.Sprintf("- Total Buildings: %d\n", m.TotalBuildings))
		if m.TotalArea > 0 {
			sb.WriteString(fmt.Sprintf("- Total Area: %.0f sq ft\n", m.TotalArea))
		}
		if m.AvgYearBuilt > 0 {
			sb.WriteString(fmt.Sprintf("- Average Year Built: %.0f\n", m.AvgYearBuilt))
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

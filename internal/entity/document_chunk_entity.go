package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one embedded fragment of an ingested document.
type DocumentChunk struct {
	Id             uuid.UUID
	Text           string
	EmbeddingValue []float32
	ChunkIndex     int
	FileId         string
	FileName       string
	BuildingId     *int64
	OrgId          *int64
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

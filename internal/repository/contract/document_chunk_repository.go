package contract

import (
	"context"

	"building-chat-be/internal/entity"
	"building-chat-be/internal/repository/specification"
)

// ScoredDocumentChunk wraps a chunk with its cosine similarity score.
type ScoredDocumentChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByFileId(ctx context.Context, fileID string) error
	// SearchSimilarWithScore runs a scoped cosine similarity search. Nil
	// orgID/buildingID skip that scope; empty fileIDs means no file filter.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, orgID, buildingID *int64, fileIDs []string) ([]*ScoredDocumentChunk, error)
}

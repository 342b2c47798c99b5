package contract

import (
	"context"

	"building-chat-be/internal/entity"
	"building-chat-be/internal/repository/specification"
)

type MeasureRepository interface {
	Create(ctx context.Context, measure *entity.Measure) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Measure, error)
}

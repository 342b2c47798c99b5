package contract

import (
	"context"

	"building-chat-be/internal/entity"
	"building-chat-be/internal/repository/specification"
)

type EnergyRecordRepository interface {
	Create(ctx context.Context, record *entity.EnergyRecord) error
	CreateBulk(ctx context.Context, records []*entity.EnergyRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EnergyRecord, error)
}

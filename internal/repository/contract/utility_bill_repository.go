package contract

import (
	"context"

	"building-chat-be/internal/entity"
	"building-chat-be/internal/repository/specification"
)

type UtilityBillRepository interface {
	Create(ctx context.Context, bill *entity.UtilityBill) error
	CreateBulk(ctx context.Context, bills []*entity.UtilityBill) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UtilityBill, error)
}

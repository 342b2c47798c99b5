package contract

import (
	"context"

	"building-chat-be/internal/entity"
	"building-chat-be/internal/repository/specification"
)

// PortfolioStats are the organization-wide building rollups.
type PortfolioStats struct {
	TotalBuildings int64
	TotalArea      float64
	AvgYearBuilt   float64
}

type BuildingRepository interface {
	Create(ctx context.Context, building *entity.Building) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Building, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Building, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// PortfolioStats aggregates count, floor area and build year across one
	// organization's buildings.
	PortfolioStats(ctx context.Context, orgID int64) (*PortfolioStats, error)
}

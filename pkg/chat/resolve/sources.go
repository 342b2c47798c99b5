package resolve

import (
	"context"

	"building-chat-be/pkg/chat/types"
)

// Organization is the relational snapshot of one organization row.
type Organization struct {
	ID         int64
	Name       string
	AdminEmail string
	Address    string
}

// BuildingSource serves the four independent building sub-queries.
type BuildingSource interface {
	GetBuilding(ctx context.Context, buildingID int64, orgID *int64) (*types.BuildingProfile, error)
	ListMeasures(ctx context.Context, buildingID int64, orgID *int64, limit int) ([]types.BuildingMeasure, error)
	ListEnergy(ctx context.Context, buildingID int64, orgID *int64, limit int) ([]types.EnergyEntry, error)
	ListBills(ctx context.Context, buildingID int64, orgID *int64, limit int) ([]types.BillEntry, error)
}

// OrganizationSource serves portfolio-level reads.
type OrganizationSource interface {
	GetOrganization(ctx context.Context, orgID int64) (*Organization, error)
	ListBuildings(ctx context.Context, orgID int64) ([]types.BuildingProfile, error)
	PortfolioMetrics(ctx context.Context, orgID int64) (*types.PortfolioMetrics, error)
}

// VectorSource performs scoped similarity search over document chunks.
// A nil fileIDs slice means no file restriction.
type VectorSource interface {
	Search(ctx context.Context, queryVector []float32, orgID, buildingID *int64, fileIDs []string, topK int) ([]types.Chunk, error)
}

// Ingestor hands a raw file URL to the external ingestion collaborator and
// returns the indexed document id.
type Ingestor interface {
	Ingest(ctx context.Context, fileURL string) (string, error)
}

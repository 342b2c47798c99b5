package service

import (
	"context"

	"building-chat-be/internal/repository/specification"
	"building-chat-be/internal/repository/unitofwork"
	"building-chat-be/pkg/chat/resolve"
	"building-chat-be/pkg/chat/types"
)

// contextSourceAdapter backs the resolver's source interfaces with the
// repository layer. Each call opens a fresh unit of work; all reads are
// standalone with their own timeout boundary.
type contextSourceAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewContextSources(uowFactory unitofwork.RepositoryFactory) *contextSourceAdapter {
	return &contextSourceAdapter{uowFactory: uowFactory}
}

var _ resolve.BuildingSource = &contextSourceAdapter{}
var _ resolve.OrganizationSource = &contextSourceAdapter{}
var _ resolve.VectorSource = &contextSourceAdapter{}

func (a *contextSourceAdapter) GetBuilding(ctx context.Context, buildingID int64, orgID *int64) (*types.BuildingProfile, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.ByID{ID: buildingID}}
	if orgID != nil {
		specs = append(specs, specification.ByOrgID{OrgID: *orgID})
	}

	building, err := uow.BuildingRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, nil
	}

	return &types.BuildingProfile{
		ID:             building.Id,
		Name:           building.Name,
		Address:        building.Address,
		BuildingType:   building.BuildingType,
		GrossFloorArea: building.GrossFloorArea,
		YearBuilt:      building.YearBuilt,
	}, nil
}

func (a *contextSourceAdapter) ListMeasures(ctx context.Context, buildingID int64, orgID *int64, limit int) ([]types.BuildingMeasure, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByBuildingID{BuildingID: buildingID},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: limit},
	}
	if orgID != nil {
		specs = append(specs, specification.ByOrgID{OrgID: *orgID})
	}

	measures, err := uow.MeasureRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]types.BuildingMeasure, len(measures))
	for i, m := range measures {
		out[i] = types.BuildingMeasure{Name: m.Name, Status: m.Status}
	}
	return out, nil
}

func (a *contextSourceAdapter) ListEnergy(ctx context.Context, buildingID int64, orgID *int64, limit int) ([]types.EnergyEntry, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByBuildingID{BuildingID: buildingID},
		specification.OrderBy{Field: "start_date", Desc: true},
		specification.Limit{N: limit},
	}
	if orgID != nil {
		specs = append(specs, specification.ByOrgID{OrgID: *orgID})
	}

	records, err := uow.EnergyRecordRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]types.EnergyEntry, len(records))
	for i, rec := range records {
		out[i] = types.EnergyEntry{
			StartDate:     rec.StartDate,
			UsageQuantity: rec.UsageQuantity,
			UsageUnits:    rec.UsageUnits,
		}
	}
	return out, nil
}

func (a *contextSourceAdapter) ListBills(ctx context.Context, buildingID int64, orgID *int64, limit int) ([]types.BillEntry, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByBuildingID{BuildingID: buildingID},
		specification.OrderBy{Field: "bill_date", Desc: true},
		specification.Limit{N: limit},
	}
	if orgID != nil {
		specs = append(specs, specification.ByOrgID{OrgID: *orgID})
	}

	bills, err := uow.UtilityBillRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]types.BillEntry, len(bills))
	for i, b := range bills {
		out[i] = types.BillEntry{
			BillDate: b.BillDate,
			BillType: b.BillType,
			Amount:   b.Amount,
		}
	}
	return out, nil
}

func (a *contextSourceAdapter) GetOrganization(ctx context.Context, orgID int64) (*resolve.Organization, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ByID{ID: orgID})
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, nil
	}

	return &resolve.Organization{
		ID:         org.Id,
		Name:       org.Name,
		AdminEmail: org.AdminEmail,
		Address:    org.Address,
	}, nil
}

func (a *contextSourceAdapter) ListBuildings(ctx context.Context, orgID int64) ([]types.BuildingProfile, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	buildings, err := uow.BuildingRepository().FindAll(ctx,
		specification.ByOrgID{OrgID: orgID},
		specification.OrderBy{Field: "building_name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	out := make([]types.BuildingProfile, len(buildings))
	for i, b := range buildings {
		out[i] = types.BuildingProfile{
			ID:             b.Id,
			Name:           b.Name,
			Address:        b.Address,
			BuildingType:   b.BuildingType,
			GrossFloorArea: b.GrossFloorArea,
			YearBuilt:      b.YearBuilt,
		}
	}
	return out, nil
}

func (a *contextSourceAdapter) PortfolioMetrics(ctx context.Context, orgID int64) (*types.PortfolioMetrics, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	stats, err := uow.BuildingRepository().PortfolioStats(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return &types.PortfolioMetrics{
		TotalBuildings: int(stats.TotalBuildings),
		TotalArea:      stats.TotalArea,
		AvgYearBuilt:   stats.AvgYearBuilt,
	}, nil
}

func (a *contextSourceAdapter) Search(ctx context.Context, queryVector []float32, orgID, buildingID *int64, fileIDs []string, topK int) ([]types.Chunk, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	scored, err := uow.DocumentChunkRepository().SearchSimilarWithScore(ctx, queryVector, topK, orgID, buildingID, fileIDs)
	if err != nil {
		return nil, err
	}

	out := make([]types.Chunk, len(scored))
	for i, s := range scored {
		out[i] = types.Chunk{
			Text:       s.Chunk.Text,
			Score:      s.Similarity,
			ChunkIndex: s.Chunk.ChunkIndex,
			FileID:     s.Chunk.FileId,
			FileName:   s.Chunk.FileName,
		}
	}
	return out, nil
}

package implementation

import (
	"context"
	"errors"

	"building-chat-be/internal/entity"
	"building-chat-be/internal/mapper"
	"building-chat-be/internal/model"
	"building-chat-be/internal/repository/contract"
	"building-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type BuildingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BuildingMapper
}

func NewBuildingRepository(db *gorm.DB) contract.BuildingRepository {
	return &BuildingRepositoryImpl{
		db:     db,
		mapper: mapper.NewBuildingMapper(),
	}
}

func (r *BuildingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BuildingRepositoryImpl) Create(ctx context.Context, building *entity.Building) error {
	m := r.mapper.ToModel(building)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*building = *r.mapper.ToEntity(m)
	return nil
}

func (r *BuildingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Building, error) {
	var m model.Building
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BuildingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Building, error) {
	var models []*model.Building
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BuildingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Building{}).Count(&count).Error
	return count, err
}

func (r *BuildingRepositoryImpl) PortfolioStats(ctx context.Context, orgID int64) (*contract.PortfolioStats, error) {
	type result struct {
		TotalBuildings int64
		TotalArea      float64
		AvgYearBuilt   float64
	}
	var res result

	err := r.db.WithContext(ctx).
		Model(&model.Building{}).
		Select("COUNT(*) as total_buildings, COALESCE(SUM(gross_floor_area), 0) as total_area, COALESCE(AVG(NULLIF(year_built, 0)), 0) as avg_year_built").
		Where("org_id = ?", orgID).
		Scan(&res).Error
	if err != nil {
		return nil, err
	}

	return &contract.PortfolioStats{
		TotalBuildings: res.TotalBuildings,
		TotalArea:      res.TotalArea,
		AvgYearBuilt:   res.AvgYearBuilt,
	}, nil
}

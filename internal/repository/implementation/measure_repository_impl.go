package implementation

import (
	"context"

	"building-chat-be/internal/entity"
	"building-chat-be/internal/mapper"
	"building-chat-be/internal/model"
	"building-chat-be/internal/repository/contract"
	"building-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MeasureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MeasureMapper
}

func NewMeasureRepository(db *gorm.DB) contract.MeasureRepository {
	return &MeasureRepositoryImpl{
		db:     db,
		mapper: mapper.NewMeasureMapper(),
	}
}

func (r *MeasureRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MeasureRepositoryImpl) Create(ctx context.Context, measure *entity.Measure) error {
	m := r.mapper.ToModel(measure)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*measure = *r.mapper.ToEntity(m)
	return nil
}

func (r *MeasureRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Measure, error) {
	var models []*model.Measure
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

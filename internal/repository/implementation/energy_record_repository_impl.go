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

type EnergyRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EnergyRecordMapper
}

func NewEnergyRecordRepository(db *gorm.DB) contract.EnergyRecordRepository {
	return &EnergyRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewEnergyRecordMapper(),
	}
}

func (r *EnergyRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EnergyRecordRepositoryImpl) Create(ctx context.Context, record *entity.EnergyRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *EnergyRecordRepositoryImpl) CreateBulk(ctx context.Context, records []*entity.EnergyRecord) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]*model.EnergyRecord, len(records))
	for i, rec := range records {
		models[i] = r.mapper.ToModel(rec)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*records[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *EnergyRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EnergyRecord, error) {
	var models []*model.EnergyRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

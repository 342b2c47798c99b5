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

type UtilityBillRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UtilityBillMapper
}

func NewUtilityBillRepository(db *gorm.DB) contract.UtilityBillRepository {
	return &UtilityBillRepositoryImpl{
		db:     db,
		mapper: mapper.NewUtilityBillMapper(),
	}
}

func (r *UtilityBillRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UtilityBillRepositoryImpl) Create(ctx context.Context, bill *entity.UtilityBill) error {
	m := r.mapper.ToModel(bill)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*bill = *r.mapper.ToEntity(m)
	return nil
}

func (r *UtilityBillRepositoryImpl) CreateBulk(ctx context.Context, bills []*entity.UtilityBill) error {
	if len(bills) == 0 {
		return nil
	}
	models := make([]*model.UtilityBill, len(bills))
	for i, b := range bills {
		models[i] = r.mapper.ToModel(b)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*bills[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *UtilityBillRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UtilityBill, error) {
	var models []*model.UtilityBill
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

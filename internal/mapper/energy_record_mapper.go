package mapper

import (
	"building-chat-be/internal/entity"
	"building-chat-be/internal/model"
)

type EnergyRecordMapper struct{}

func NewEnergyRecordMapper() *EnergyRecordMapper {
	return &EnergyRecordMapper{}
}

func (m *EnergyRecordMapper) ToEntity(e *model.EnergyRecord) *entity.EnergyRecord {
	if e == nil {
		return nil
	}
	return &entity.EnergyRecord{
		Id:            e.Id,
		BuildingId:    e.BuildingId,
		OrgId:         e.OrgId,
		StartDate:     e.StartDate,
		UsageQuantity: e.UsageQuantity,
		UsageUnits:    e.UsageUnits,
		CreatedAt:     e.CreatedAt,
	}
}

func (m *EnergyRecordMapper) ToModel(e *entity.EnergyRecord) *model.EnergyRecord {
	if e == nil {
		return nil
	}
	return &model.EnergyRecord{
		Id:            e.Id,
		BuildingId:    e.BuildingId,
		OrgId:         e.OrgId,
		StartDate:     e.StartDate,
		UsageQuantity: e.UsageQuantity,
		UsageUnits:    e.UsageUnits,
		CreatedAt:     e.CreatedAt,
	}
}

func (m *EnergyRecordMapper) ToEntities(records []*model.EnergyRecord) []*entity.EnergyRecord {
	entities := make([]*entity.EnergyRecord, len(records))
	for i, e := range records {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

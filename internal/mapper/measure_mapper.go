package mapper

import (
	"building-chat-be/internal/entity"
	"building-chat-be/internal/model"
)

type MeasureMapper struct{}

func NewMeasureMapper() *MeasureMapper {
	return &MeasureMapper{}
}

func (m *MeasureMapper) ToEntity(e *model.Measure) *entity.Measure {
	if e == nil {
		return nil
	}
	return &entity.Measure{
		Id:         e.Id,
		BuildingId: e.BuildingId,
		OrgId:      e.OrgId,
		Name:       e.MeasureName,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *MeasureMapper) ToModel(e *entity.Measure) *model.Measure {
	if e == nil {
		return nil
	}
	return &model.Measure{
		Id:          e.Id,
		BuildingId:  e.BuildingId,
		OrgId:       e.OrgId,
		MeasureName: e.Name,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *MeasureMapper) ToEntities(measures []*model.Measure) []*entity.Measure {
	entities := make([]*entity.Measure, len(measures))
	for i, e := range measures {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

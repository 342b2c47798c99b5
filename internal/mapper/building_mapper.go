package mapper

import (
	"encoding/json"
	"time"

	"building-chat-be/internal/entity"
	"building-chat-be/internal/model"

	"gorm.io/datatypes"
)

type BuildingMapper struct{}

func NewBuildingMapper() *BuildingMapper {
	return &BuildingMapper{}
}

func (m *BuildingMapper) ToEntity(b *model.Building) *entity.Building {
	if b == nil {
		return nil
	}

	var updatedAt *time.Time
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		updatedAt = &t
	}

	var managerEmails []string
	if len(b.ManagerEmails) > 0 {
		// Malformed JSONB leaves the list empty rather than failing the read.
		_ = json.Unmarshal(b.ManagerEmails, &managerEmails)
	}

	return &entity.Building{
		Id:             b.Id,
		Name:           b.BuildingName,
		Address:        b.Address,
		BuildingType:   b.BuildingType,
		GrossFloorArea: b.GrossFloorArea,
		YearBuilt:      b.YearBuilt,
		OrgId:          b.OrgId,
		AdminEmail:     b.AdminEmail,
		ManagerEmails:  managerEmails,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *BuildingMapper) ToModel(b *entity.Building) *model.Building {
	if b == nil {
		return nil
	}

	var updatedAt time.Time
	if b.UpdatedAt != nil {
		updatedAt = *b.UpdatedAt
	}

	var managerEmails datatypes.JSON
	if len(b.ManagerEmails) > 0 {
		if data, err := json.Marshal(b.ManagerEmails); err == nil {
			managerEmails = data
		}
	}

	return &model.Building{
		Id:             b.Id,
		BuildingName:   b.Name,
		Address:        b.Address,
		BuildingType:   b.BuildingType,
		GrossFloorArea: b.GrossFloorArea,
		YearBuilt:      b.YearBuilt,
		OrgId:          b.OrgId,
		AdminEmail:     b.AdminEmail,
		ManagerEmails:  managerEmails,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *BuildingMapper) ToEntities(buildings []*model.Building) []*entity.Building {
	entities := make([]*entity.Building, len(buildings))
	for i, b := range buildings {
		entities[i] = m.ToEntity(b)
	}
	return entities
}

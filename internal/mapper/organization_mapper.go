package mapper

import (
	"time"

	"building-chat-be/internal/entity"
	"building-chat-be/internal/model"
)

type OrganizationMapper struct{}

func NewOrganizationMapper() *OrganizationMapper {
	return &OrganizationMapper{}
}

func (m *OrganizationMapper) ToEntity(o *model.Organization) *entity.Organization {
	if o == nil {
		return nil
	}

	var updatedAt *time.Time
	if !o.UpdatedAt.IsZero() {
		t := o.UpdatedAt
		updatedAt = &t
	}

	return &entity.Organization{
		Id:         o.Id,
		Name:       o.OrgName,
		AdminEmail: o.AdminEmail,
		Address:    o.Address,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *OrganizationMapper) ToModel(o *entity.Organization) *model.Organization {
	if o == nil {
		return nil
	}

	var updatedAt time.Time
	if o.UpdatedAt != nil {
		updatedAt = *o.UpdatedAt
	}

	return &model.Organization{
		Id:         o.Id,
		OrgName:    o.Name,
		AdminEmail: o.AdminEmail,
		Address:    o.Address,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

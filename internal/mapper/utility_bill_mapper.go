package mapper

import (
	"building-chat-be/internal/entity"
	"building-chat-be/internal/model"
)

type UtilityBillMapper struct{}

func NewUtilityBillMapper() *UtilityBillMapper {
	return &UtilityBillMapper{}
}

func (m *UtilityBillMapper) ToEntity(e *model.UtilityBill) *entity.UtilityBill {
	if e == nil {
		return nil
	}
	return &entity.UtilityBill{
		Id:         e.Id,
		BuildingId: e.BuildingId,
		OrgId:      e.OrgId,
		BillDate:   e.BillDate,
		BillType:   e.BillType,
		Amount:     e.Amount,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *UtilityBillMapper) ToModel(e *entity.UtilityBill) *model.UtilityBill {
	if e == nil {
		return nil
	}
	return &model.UtilityBill{
		Id:         e.Id,
		BuildingId: e.BuildingId,
		OrgId:      e.OrgId,
		BillDate:   e.BillDate,
		BillType:   e.BillType,
		Amount:     e.Amount,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *UtilityBillMapper) ToEntities(bills []*model.UtilityBill) []*entity.UtilityBill {
	entities := make([]*entity.UtilityBill, len(bills))
	for i, e := range bills {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

package unitofwork

import (
	"context"

	"building-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BuildingRepository() contract.BuildingRepository
	OrganizationRepository() contract.OrganizationRepository
	MeasureRepository() contract.MeasureRepository
	EnergyRecordRepository() contract.EnergyRecordRepository
	UtilityBillRepository() contract.UtilityBillRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
}

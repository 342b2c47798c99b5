package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building-chat-be/internal/constant"
	"building-chat-be/internal/dto"
	"building-chat-be/internal/entity"
	"building-chat-be/internal/repository/contract"
	"building-chat-be/internal/repository/specification"
	"building-chat-be/internal/repository/unitofwork"
)

type fakeBuildingRepo struct {
	building *entity.Building
	err      error
}

func (f *fakeBuildingRepo) Create(ctx context.Context, b *entity.Building) error { return nil }

func (f *fakeBuildingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Building, error) {
	return f.building, f.err
}

func (f *fakeBuildingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Building, error) {
	return nil, nil
}

func (f *fakeBuildingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (f *fakeBuildingRepo) PortfolioStats(ctx context.Context, orgID int64) (*contract.PortfolioStats, error) {
	return &contract.PortfolioStats{}, nil
}

type fakeOrgRepo struct {
	org *entity.Organization
}

func (f *fakeOrgRepo) Create(ctx context.Context, o *entity.Organization) error { return nil }

func (f *fakeOrgRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Organization, error) {
	return f.org, nil
}

func (f *fakeOrgRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error) {
	return nil, nil
}

type fakeUow struct {
	buildings *fakeBuildingRepo
	orgs      *fakeOrgRepo
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }

func (f *fakeUow) BuildingRepository() contract.BuildingRepository         { return f.buildings }
func (f *fakeUow) OrganizationRepository() contract.OrganizationRepository { return f.orgs }
func (f *fakeUow) MeasureRepository() contract.MeasureRepository           { return nil }
func (f *fakeUow) EnergyRecordRepository() contract.EnergyRecordRepository { return nil }
func (f *fakeUow) UtilityBillRepository() contract.UtilityBillRepository   { return nil }
func (f *fakeUow) DocumentChunkRepository() contract.DocumentChunkRepository {
	return nil
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newAccessFixture(building *entity.Building, org *entity.Organization) *chatService {
	return &chatService{
		uowFactory: &fakeUowFactory{uow: &fakeUow{
			buildings: &fakeBuildingRepo{building: building},
			orgs:      &fakeOrgRepo{org: org},
		}},
		personaCache: cache.New(time.Minute, time.Minute),
		log:          noopLogger{},
	}
}

func buildingIDReq(id int64, email string) *dto.ChatRequest {
	return &dto.ChatRequest{Message: "how are my bills", BuildingID: &id, UserEmail: email}
}

func TestAccessDeniedForUnrelatedUser(t *testing.T) {
	building := &entity.Building{Id: 7, Name: "Riverside Tower", OrgId: 3, AdminEmail: "admin@greenfield.example"}
	org := &entity.Organization{Id: 3, AdminEmail: "owner@greenfield.example"}
	s := newAccessFixture(building, org)

	_, err := s.authorizeAndResolvePersona(context.Background(), "stranger@elsewhere.example", buildingIDReq(7, ""))

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusForbidden, fiberErr.Code)
}

func TestAccessGranted(t *testing.T) {
	building := &entity.Building{
		Id: 7, Name: "Riverside Tower", OrgId: 3,
		AdminEmail:    "admin@greenfield.example",
		ManagerEmails: []string{"manager@greenfield.example"},
	}
	org := &entity.Organization{Id: 3, AdminEmail: "owner@greenfield.example"}

	tests := []struct {
		name  string
		email string
	}{
		{"building admin", "admin@greenfield.example"},
		{"listed manager", "manager@greenfield.example"},
		{"organization admin", "owner@greenfield.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newAccessFixture(building, org)

			persona, err := s.authorizeAndResolvePersona(context.Background(), tt.email, buildingIDReq(7, ""))

			require.NoError(t, err)
			assert.Equal(t, "Riverside Tower", persona.Name, "persona defaults to the building name")
		})
	}
}

func TestUnknownBuildingIsNotFound(t *testing.T) {
	s := newAccessFixture(nil, nil)

	_, err := s.authorizeAndResolvePersona(context.Background(), "admin@greenfield.example", buildingIDReq(99, ""))

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}

func TestNoBuildingScopeUsesDefaultPersona(t *testing.T) {
	s := newAccessFixture(nil, nil)

	persona, err := s.authorizeAndResolvePersona(context.Background(), "anyone@example.com", &dto.ChatRequest{Message: "hello"})

	require.NoError(t, err)
	assert.Equal(t, constant.DefaultPersonaName, persona.Name)
}

func TestBuildingNameOverridesPersona(t *testing.T) {
	building := &entity.Building{Id: 7, Name: "Riverside Tower", OrgId: 3, AdminEmail: "admin@greenfield.example"}
	s := newAccessFixture(building, nil)

	persona, err := s.authorizeAndResolvePersona(context.Background(), "admin@greenfield.example",
		&dto.ChatRequest{Message: "hi", BuildingID: ptrInt64(7), BuildingName: "The Tower"})

	require.NoError(t, err)
	assert.Equal(t, "The Tower", persona.Name)
}

func TestBuildingLookupFailureIsInternal(t *testing.T) {
	s := &chatService{
		uowFactory: &fakeUowFactory{uow: &fakeUow{
			buildings: &fakeBuildingRepo{err: errors.New("db offline")},
			orgs:      &fakeOrgRepo{},
		}},
		personaCache: cache.New(time.Minute, time.Minute),
		log:          noopLogger{},
	}

	_, err := s.authorizeAndResolvePersona(context.Background(), "admin@greenfield.example", buildingIDReq(7, ""))

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusInternalServerError, fiberErr.Code)
}

func ptrInt64(v int64) *int64 { return &v }

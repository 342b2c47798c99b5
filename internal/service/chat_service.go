package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"building-chat-be/internal/constant"
	"building-chat-be/internal/dto"
	"building-chat-be/internal/entity"
	"building-chat-be/internal/pkg/logger"
	"building-chat-be/internal/repository/specification"
	"building-chat-be/internal/repository/unitofwork"
	"building-chat-be/pkg/chat/executor"
	"building-chat-be/pkg/chat/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type IChatService interface {
	Send(ctx context.Context, userEmail string, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	orchestrator     *executor.Orchestrator
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	personaCache     *cache.Cache
	log              logger.ILogger
}

func NewChatService(
	orchestrator *executor.Orchestrator,
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		orchestrator:     orchestrator,
		uowFactory:       uowFactory,
		publisherService: publisherService,
		personaCache:     cache.New(5*time.Minute, 10*time.Minute),
		log:              log,
	}
}

func (s *chatService) Send(ctx context.Context, userEmail string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	requestID := uuid.NewString()

	if req.UserEmail != "" {
		userEmail = req.UserEmail
	}

	persona, err := s.authorizeAndResolvePersona(ctx, userEmail, req)
	if err != nil {
		return nil, err
	}

	history := make([]types.Turn, len(req.MessageHistory))
	for i, m := range req.MessageHistory {
		history[i] = types.Turn{Role: m.Role, Content: m.Content}
	}

	envelope := s.orchestrator.Handle(ctx, executor.Request{
		Message:        req.Message,
		BuildingID:     req.BuildingID,
		OrganizationID: req.OrganizationID,
		UserEmail:      userEmail,
		Persona:        persona,
		History:        history,
		FileIDs:        req.FileIDs,
		FileURL:        req.FileURL,
	})

	s.publishSessionCosts(ctx, requestID, envelope)

	return &dto.ChatResponse{
		Response:  envelope.ResponseText,
		Metadata:  envelope.Metadata,
		RequestID: requestID,
	}, nil
}

// authorizeAndResolvePersona checks that the caller may read the requested
// building and picks the persona name the assistant answers as. Access is
// granted to the organization admin and to any listed building manager.
// Requests without a building scope pass through with the default persona.
func (s *chatService) authorizeAndResolvePersona(ctx context.Context, userEmail string, req *dto.ChatRequest) (types.Persona, error) {
	persona := types.Persona{Name: constant.DefaultPersonaName}
	if req.BuildingName != "" {
		persona.Name = req.BuildingName
	}

	if req.BuildingID == nil {
		return persona, nil
	}

	building, err := s.lookupBuilding(ctx, *req.BuildingID, req.OrganizationID)
	if err != nil {
		return persona, fiber.NewError(fiber.StatusInternalServerError, "failed to load building")
	}
	if building == nil {
		return persona, fiber.NewError(fiber.StatusNotFound, "building not found")
	}

	if userEmail != "" && !s.hasBuildingAccess(ctx, userEmail, building) {
		s.log.Warn(constant.ModuleChat, "building access denied", map[string]interface{}{
			"building_id": building.Id,
			"user_email":  userEmail,
		})
		return persona, fiber.NewError(fiber.StatusForbidden, "you do not have access to this building")
	}

	if req.BuildingName == "" {
		persona.Name = building.Name
	}
	return persona, nil
}

func (s *chatService) lookupBuilding(ctx context.Context, buildingID int64, orgID *int64) (*entity.Building, error) {
	cacheKey := fmt.Sprintf("building:%d", buildingID)
	if cached, found := s.personaCache.Get(cacheKey); found {
		return cached.(*entity.Building), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := []specification.Specification{specification.ByID{ID: buildingID}}
	if orgID != nil {
		specs = append(specs, specification.ByOrgID{OrgID: *orgID})
	}

	building, err := uow.BuildingRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if building != nil {
		s.personaCache.Set(cacheKey, building, cache.DefaultExpiration)
	}
	return building, nil
}

func (s *chatService) hasBuildingAccess(ctx context.Context, userEmail string, building *entity.Building) bool {
	if building.AdminEmail == userEmail {
		return true
	}
	for _, email := range building.ManagerEmails {
		if email == userEmail {
			return true
		}
	}

	// Organization admins can read every building they own.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ByID{ID: building.OrgId})
	if err != nil || org == nil {
		return false
	}
	return org.AdminEmail == userEmail
}

func (s *chatService) publishSessionCosts(ctx context.Context, requestID string, envelope *types.Envelope) {
	if envelope.Metadata.CostSummary == nil {
		return
	}

	payload, err := json.Marshal(dto.SessionCostMessage{
		RequestID: requestID,
		Summary:   *envelope.Metadata.CostSummary,
	})
	if err != nil {
		s.log.Error(constant.ModuleChat, "failed to marshal session cost message", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error(constant.ModuleChat, "failed to publish session costs", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}

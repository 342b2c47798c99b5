package resolve

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"building-chat-be/pkg/chat/costs"
	"building-chat-be/pkg/chat/types"
	"building-chat-be/pkg/embedding"
)

const (
	measuresLimit = 10
	energyLimit   = 12
	billsLimit    = 12

	// vector_context searches across every document in scope, so it gets a
	// wider net than file-scoped retrieval.
	allDocsTopK = 8
)

// Input bundles the request identifiers the resolver may need.
type Input struct {
	Message        string
	BuildingID     *int64
	OrganizationID *int64
	FileIDs        []string
	FileURL        string
	UserEmail      string
}

// Resolver fetches the concrete context payload for a classified type.
// Source failures become SourceErrors; resolution proceeds with whatever
// succeeded.
type Resolver struct {
	buildings      BuildingSource
	organizations  OrganizationSource
	vectors        VectorSource
	ingestor       Ingestor
	embedder       embedding.EmbeddingProvider
	topK           int
	subqueryBudget time.Duration
	logger         *log.Logger
}

func NewResolver(
	buildings BuildingSource,
	organizations OrganizationSource,
	vectors VectorSource,
	ingestor Ingestor,
	embedder embedding.EmbeddingProvider,
	topK int,
	subqueryBudget time.Duration,
	logger *log.Logger,
) *Resolver {
	return &Resolver{
		buildings:      buildings,
		organizations:  organizations,
		vectors:        vectors,
		ingestor:       ingestor,
		embedder:       embedder,
		topK:           topK,
		subqueryBudget: subqueryBudget,
		logger:         logger,
	}
}

// Resolve fetches context for the classified type. It never returns an
// error: every failure is captured in the result's SourceErrors.
func (r *Resolver) Resolve(ctx context.Context, cls types.Classification, input Input, tracker *costs.Tracker) *types.ResolvedContext {
	switch cls.ContextType {
	case types.ContextFile:
		return r.resolveFile(ctx, input, tracker)
	case types.ContextBuilding:
		return r.resolveBuilding(ctx, input)
	case types.ContextOrganization:
		return r.resolveOrganization(ctx, input)
	case types.ContextVector:
		return r.resolveVector(ctx, input, tracker)
	case types.ContextGeneral:
		return &types.ResolvedContext{ContextType: types.ContextGeneral}
	default:
		r.logger.Printf("[WARN] Unknown context type %q, treating as general", cls.ContextType)
		return &types.ResolvedContext{ContextType: types.ContextGeneral}
	}
}

func (r *Resolver) resolveFile(ctx context.Context, input Input, tracker *costs.Tracker) *types.ResolvedContext {
	resolved := &types.ResolvedContext{ContextType: types.ContextFile}

	fileIDs := append([]string(nil), input.FileIDs...)

	if input.FileURL != "" {
		fileID, err := r.ingestor.Ingest(ctx, input.FileURL)
		if err != nil {
			r.logger.Printf("[WARN] File ingestion failed for %s: %v", input.FileURL, err)
			resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
				Source:  "ingestion",
				Message: "file could not be indexed",
			})
		} else {
			fileIDs = append([]string{fileID}, fileIDs...)
		}
	}

	if len(fileIDs) == 0 {
		resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
			Source:  "file_context",
			Message: "no file reference provided",
		})
		return resolved
	}

	vector, ok := r.embedQuery(ctx, input.Message, tracker, resolved)
	if !ok {
		return resolved
	}

	chunks, err := r.vectors.Search(ctx, vector, input.OrganizationID, input.BuildingID, fileIDs, r.topK)
	if err != nil {
		r.logger.Printf("[WARN] Vector search failed: %v", err)
		resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
			Source:  "vector_store",
			Message: "document search failed",
		})
		return resolved
	}

	if len(chunks) == 0 {
		resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
			Source:  "vector_store",
			Message: "no relevant content found",
		})
		return resolved
	}

	resolved.Payload = types.FileChunks{FileIDs: fileIDs, Chunks: chunks}
	return resolved
}

func (r *Resolver) resolveBuilding(ctx context.Context, input Input) *types.ResolvedContext {
	resolved := &types.ResolvedContext{ContextType: types.ContextBuilding}

	if input.BuildingID == nil {
		resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
			Source:  "building_context",
			Message: "building id is required",
		})
		return resolved
	}
	buildingID := *input.BuildingID

	// The four sub-queries are independent reads. Each runs under its own
	// deadline so one slow source cannot exceed the stage budget.
	var (
		profile  *types.BuildingProfile
		measures []types.BuildingMeasure
		energy   []types.EnergyEntry
		bills    []types.BillEntry
		errSlots [4]error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		subCtx, cancel := context.WithTimeout(gctx, r.subqueryBudget)
		defer cancel()
		profile, errSlots[0] = r.buildings.GetBuilding(subCtx, buildingID, input.OrganizationID)
		return nil
	})
	g.Go(func() error {
		subCtx, cancel := context.WithTimeout(gctx, r.subqueryBudget)
		defer cancel()
		measures, errSlots[1] = r.buildings.ListMeasures(subCtx, buildingID, input.OrganizationID, measuresLimit)
		return nil
	})
	g.Go(func() error {
		subCtx, cancel := context.WithTimeout(gctx, r.subqueryBudget)
		defer cancel()
		energy, errSlots[2] = r.buildings.ListEnergy(subCtx, buildingID, input.OrganizationID, energyLimit)
		return nil
	})
	g.Go(func() error {
		subCtx, cancel := context.WithTimeout(gctx, r.subqueryBudget)
		defer cancel()
		bills, errSlots[3] = r.buildings.ListBills(subCtx, buildingID, input.OrganizationID, billsLimit)
		return nil
	})
	_ = g.Wait()

	sources := [4]string{"building_profile", "measures", "energy_data", "bills"}
	for i, err := range errSlots {
		if err != nil {
			r.logger.Printf("[WARN] Building sub-query %s failed: %v", sources[i], err)
			resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
				Source:  sources[i],
				Message: "query failed",
			})
		}
	}

	if profile == nil && errSlots[0] == nil {
		resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
			Source:  "building_profile",
			Message: "building not found",
		})
	}

	if profile == nil && len(measures) == 0 && len(energy) == 0 && len(bills) == 0 {
		return resolved
	}

	resolved.Payload = types.BuildingRecord{
		Building: profile,
		Measures: measures,
		Energy:   energy,
		Bills:    bills,
	}
	return resolved
}

func (r *Resolver) resolveOrganization(ctx context.Context, input Input) *types.ResolvedContext {
	resolved := &types.ResolvedContext{ContextType: types.ContextOrganization}

	if input.OrganizationID == nil {
		resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
			Source:  "organization_context",
			Message: "organization id is required",
		})
		return resolved
	}
	orgID := *input.OrganizationID

	orgCtx, cancel := context.WithTimeout(ctx, r.subqueryBudget)
	org, err := r.organizations.GetOrganization(orgCtx, orgID)
	cancel()
	if err != nil || org == nil {
		if err != nil {
			r.logger.Printf("[WARN] Organization fetch failed: %v", err)
		}
		resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
			Source:  "organization",
			Message: "organization could not be loaded",
		})
		// Explicit degradation rule: fall back to building-level context
		// when a building id is available. The result keeps the building
		// context type so the payload variant stays consistent with it.
		if input.BuildingID != nil {
			fallback := r.resolveBuilding(ctx, input)
			fallback.UsedFallback = true
			fallback.SourceErrors = append(resolved.SourceErrors, fallback.SourceErrors...)
			return fallback
		}
		return resolved
	}

	var (
		buildings []types.BuildingProfile
		metrics   *types.PortfolioMetrics
		errSlots  [2]error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		subCtx, cancel := context.WithTimeout(gctx, r.subqueryBudget)
		defer cancel()
		buildings, errSlots[0] = r.organizations.ListBuildings(subCtx, orgID)
		return nil
	})
	g.Go(func() error {
		subCtx, cancel := context.WithTimeout(gctx, r.subqueryBudget)
		defer cancel()
		metrics, errSlots[1] = r.organizations.PortfolioMetrics(subCtx, orgID)
		return nil
	})
	_ = g.Wait()

	sources := [2]string{"buildings", "portfolio_metrics"}
	for i, err := range errSlots {
		if err != nil {
			r.logger.Printf("[WARN] Organization sub-query %s failed: %v", sources[i], err)
			resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
				Source:  sources[i],
				Message: "query failed",
			})
		}
	}

	resolved.Payload = types.OrganizationAggregate{
		Name:       org.Name,
		AdminEmail: org.AdminEmail,
		Address:    org.Address,
		Buildings:  buildings,
		Metrics:    metrics,
	}
	return resolved
}

func (r *Resolver) resolveVector(ctx context.Context, input Input, tracker *costs.Tracker) *types.ResolvedContext {
	resolved := &types.ResolvedContext{ContextType: types.ContextVector}

	if input.BuildingID == nil && input.OrganizationID == nil {
		resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
			Source:  "vector_context",
			Message: "building or organization id is required to scope the search",
		})
		return resolved
	}

	vector, ok := r.embedQuery(ctx, input.Message, tracker, resolved)
	if !ok {
		return resolved
	}

	chunks, err := r.vectors.Search(ctx, vector, input.OrganizationID, input.BuildingID, nil, allDocsTopK)
	if err != nil {
		r.logger.Printf("[WARN] Vector search failed: %v", err)
		resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
			Source:  "vector_store",
			Message: "document search failed",
		})
		return resolved
	}

	if len(chunks) == 0 {
		resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
			Source:  "vector_store",
			Message: "no relevant content found in document store",
		})
		return resolved
	}

	resolved.Payload = types.DocumentMatches{Query: input.Message, Chunks: chunks}
	return resolved
}

// embedQuery embeds the message and records the embedding cost. A failure
// is captured as a source error and reported via the bool return.
func (r *Resolver) embedQuery(ctx context.Context, message string, tracker *costs.Tracker, resolved *types.ResolvedContext) ([]float32, bool) {
	res, err := r.embedder.Generate(ctx, message)
	if err != nil {
		r.logger.Printf("[WARN] Query embedding failed: %v", err)
		resolved.SourceErrors = append(resolved.SourceErrors, types.SourceError{
			Source:  "embedding",
			Message: "query embedding failed",
		})
		return nil, false
	}

	tracker.Log(costs.CallEmbedding, res.Model, res.InputTokens, 0)
	return res.Vector, true
}

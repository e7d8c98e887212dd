// Package api exposes the batch ingest/solve/anneal pipeline over
// HTTP, following the teacher's Fiber handler style: thin handlers
// that validate input, delegate to the core packages, and cache
// expensive results the way computeRoute did.
package api

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/passbi/transitsolve/internal/anneal"
	"github.com/passbi/transitsolve/internal/cache"
	"github.com/passbi/transitsolve/internal/ingest"
	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/solver"
	"github.com/passbi/transitsolve/internal/store"
	"github.com/passbi/transitsolve/internal/tetg"
)

// batch holds everything solving and annealing need for one ingested
// dataset. It lives in memory for the life of the process, the same
// way the teacher kept its routing graph in memory rather than
// re-querying Postgres on every request.
type batch struct {
	graph       *tetg.Graph
	indices     *tetg.Indices
	groups      []model.Group
	diagnostics []model.Diagnostic
	options     solver.Options

	mu          sync.Mutex
	assignments *model.Assignments
}

var (
	batchesMu sync.RWMutex
	batches   = map[string]*batch{}
)

// BatchRequest names the four CSV files a batch is built from.
type BatchRequest struct {
	StationsPath  string `json:"stations_path"`
	TripsPath     string `json:"trips_path"`
	FootpathsPath string `json:"footpaths_path"`
	GroupsPath    string `json:"groups_path"`
}

// BatchResponse reports a newly built batch's ID and ingest/build diagnostics.
type BatchResponse struct {
	BatchID     string              `json:"batch_id"`
	Stations    int                 `json:"stations"`
	Trips       int                 `json:"trips"`
	Groups      int                 `json:"groups"`
	Diagnostics []model.Diagnostic  `json:"diagnostics,omitempty"`
	Stats       tetg.BuildStats     `json:"build_stats"`
}

// CreateBatch handles POST /v1/batches: ingest the four CSV inputs,
// build the time-expanded graph, and register the result under a new
// batch ID.
func CreateBatch(c *fiber.Ctx) error {
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.StationsPath == "" || req.TripsPath == "" || req.FootpathsPath == "" || req.GroupsPath == "" {
		return c.Status(400).JSON(fiber.Map{"error": "stations_path, trips_path, footpaths_path, and groups_path are required"})
	}

	var diagnostics []model.Diagnostic

	stations, diags, err := ingest.Stations(req.StationsPath)
	diagnostics = append(diagnostics, diags...)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("reading stations: %v", err)})
	}

	trips, diags, err := ingest.Trips(req.TripsPath)
	diagnostics = append(diagnostics, diags...)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("reading trips: %v", err)})
	}

	footpaths, diags, err := ingest.Footpaths(req.FootpathsPath)
	diagnostics = append(diagnostics, diags...)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("reading footpaths: %v", err)})
	}

	groups, diags, err := ingest.Groups(req.GroupsPath)
	diagnostics = append(diagnostics, diags...)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("reading groups: %v", err)})
	}

	g, indices, stats, buildDiags := tetg.Build(stations, trips, footpaths)
	diagnostics = append(diagnostics, buildDiags...)

	batchID := uuid.New().String()
	b := &batch{
		graph:       g,
		indices:     indices,
		groups:      groups,
		diagnostics: diagnostics,
		options:     solver.DefaultOptions(),
	}

	batchesMu.Lock()
	batches[batchID] = b
	batchesMu.Unlock()

	return c.JSON(BatchResponse{
		BatchID:     batchID,
		Stations:    len(stations),
		Trips:       len(trips),
		Groups:      len(groups),
		Diagnostics: diagnostics,
		Stats:       stats,
	})
}

func lookupBatch(id string) (*batch, bool) {
	batchesMu.RLock()
	defer batchesMu.RUnlock()
	b, ok := batches[id]
	return b, ok
}

// SolveResponse wraps the greedy solver's result together with the
// failures for groups that could not be placed.
type SolveResponse struct {
	Assignments model.Assignments    `json:"assignments"`
	Failures    []model.GroupFailure `json:"failures,omitempty"`
}

// SolveBatch handles POST /v1/batches/:id/solve: runs the greedy
// capacity-aware augmentation, caching the result the way
// computeRoute cached a route.
func SolveBatch(c *fiber.Ctx) error {
	id := c.Params("id")
	b, ok := lookupBatch(id)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "batch not found"})
	}

	ctx := c.Context()
	resp := solveWithCache(ctx, id, b)

	return c.JSON(resp)
}

func solveWithCache(ctx context.Context, batchID string, b *batch) SolveResponse {
	fingerprint := fmt.Sprintf("%s:%d", batchID, len(b.groups))
	cacheKey := cache.BatchKey(fingerprint, b.options.BudgetSteps, 0)
	lockKey := cache.LockKey(cacheKey)

	if cached, err := cache.GetAssignments(ctx, cacheKey); err == nil && cached != nil {
		b.mu.Lock()
		b.assignments = cached
		b.mu.Unlock()
		return SolveResponse{Assignments: *cached}
	}

	acquired, err := cache.AcquireLock(ctx, lockKey, 5*time.Second)
	if err != nil {
		log.Printf("acquire lock failed: %v", err)
	} else if !acquired {
		if cached, err := cache.WaitForLock(ctx, cacheKey, 3*time.Second); err == nil && cached != nil {
			b.mu.Lock()
			b.assignments = cached
			b.mu.Unlock()
			return SolveResponse{Assignments: *cached}
		}
	}
	defer func() {
		if acquired {
			cache.ReleaseLock(ctx, lockKey)
		}
	}()

	b.mu.Lock()
	defer b.mu.Unlock()

	assignments, failures := solver.SolveGroups(b.graph, b.indices, b.groups, b.options)
	b.assignments = &assignments

	if err := cache.SetAssignments(ctx, cacheKey, &assignments, 10*time.Minute); err != nil {
		log.Printf("failed to cache assignments: %v", err)
	}

	return SolveResponse{Assignments: assignments, Failures: failures}
}

// AnnealRequest configures an optional local-search pass over a
// solved batch's candidate paths.
type AnnealRequest struct {
	Seed     int64  `json:"seed"`
	Selector string `json:"selector"`
}

// AnnealBatch handles POST /v1/batches/:id/anneal: runs simulated
// annealing over the candidates the solve step produced.
func AnnealBatch(c *fiber.Ctx) error {
	id := c.Params("id")
	b, ok := lookupBatch(id)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "batch not found"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.assignments == nil {
		return c.Status(409).JSON(fiber.Map{"error": "batch has not been solved yet"})
	}

	var req AnnealRequest
	_ = c.BodyParser(&req)

	opts := anneal.DefaultOptions()
	if req.Selector == "random" {
		opts.Selector = anneal.Random
	}

	refined := anneal.Run(b.graph, *b.assignments, req.Seed, opts)
	b.assignments = &refined

	return c.JSON(refined)
}

// Assignments handles GET /v1/batches/:id/assignments.
func Assignments(c *fiber.Ctx) error {
	id := c.Params("id")
	b, ok := lookupBatch(id)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "batch not found"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.assignments == nil {
		return c.Status(409).JSON(fiber.Map{"error": "batch has not been solved yet"})
	}
	return c.JSON(b.assignments)
}

// Health handles GET /health.
func Health(c *fiber.Ctx) error {
	ctx := c.Context()

	storeErr := store.HealthCheck(ctx)
	storeStatus := "ok"
	if storeErr != nil {
		storeStatus = storeErr.Error()
	}

	cacheErr := cache.HealthCheck(ctx)
	cacheStatus := "ok"
	if cacheErr != nil {
		cacheStatus = cacheErr.Error()
	}

	status := "healthy"
	httpStatus := 200
	if storeErr != nil || cacheErr != nil {
		status = "unhealthy"
		httpStatus = 503
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"store": storeStatus,
			"cache": cacheStatus,
		},
	})
}

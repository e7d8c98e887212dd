package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/passbi/transitsolve/internal/anneal"
	"github.com/passbi/transitsolve/internal/ingest"
	"github.com/passbi/transitsolve/internal/model"
	"github.com/passbi/transitsolve/internal/solver"
	"github.com/passbi/transitsolve/internal/store"
	"github.com/passbi/transitsolve/internal/tetg"
)

func main() {
	stationsPath := flag.String("stations", "", "Path to stations.csv (required)")
	tripsPath := flag.String("trips", "", "Path to trips.csv (required)")
	footpathsPath := flag.String("footpaths", "", "Path to footpaths.csv (required)")
	groupsPath := flag.String("groups", "", "Path to groups.csv (required)")
	runAnneal := flag.Bool("anneal", false, "Run a simulated-annealing pass after solving")
	annealSeed := flag.Int64("anneal-seed", 1, "Random seed for the annealing pass")
	persist := flag.Bool("persist", false, "Persist the result to the configured store")

	flag.Parse()

	if *stationsPath == "" || *tripsPath == "" || *footpathsPath == "" || *groupsPath == "" {
		fmt.Println("Usage: transitsolve-solve --stations=<path> --trips=<path> --footpaths=<path> --groups=<path> [--anneal] [--persist]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	for _, p := range []string{*stationsPath, *tripsPath, *footpathsPath, *groupsPath} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			log.Fatalf("input file not found: %s", p)
		}
	}

	ctx := context.Background()
	var allDiagnostics []model.Diagnostic

	log.Println("Step 1/4: Reading input tables...")
	stations, diags, err := ingest.Stations(*stationsPath)
	allDiagnostics = append(allDiagnostics, diags...)
	reportDiagnostics("stations", diags)
	if err != nil {
		log.Fatalf("failed to read stations: %v", err)
	}

	trips, diags, err := ingest.Trips(*tripsPath)
	allDiagnostics = append(allDiagnostics, diags...)
	reportDiagnostics("trips", diags)
	if err != nil {
		log.Fatalf("failed to read trips: %v", err)
	}

	footpaths, diags, err := ingest.Footpaths(*footpathsPath)
	allDiagnostics = append(allDiagnostics, diags...)
	reportDiagnostics("footpaths", diags)
	if err != nil {
		log.Fatalf("failed to read footpaths: %v", err)
	}

	groups, diags, err := ingest.Groups(*groupsPath)
	allDiagnostics = append(allDiagnostics, diags...)
	reportDiagnostics("groups", diags)
	if err != nil {
		log.Fatalf("failed to read groups: %v", err)
	}

	log.Println("Step 2/4: Building time-expanded graph...")
	g, idx, stats, buildDiags := tetg.Build(stations, trips, footpaths)
	allDiagnostics = append(allDiagnostics, buildDiags...)
	reportDiagnostics("graph", buildDiags)
	log.Printf("Graph built: %d nodes, %d edges", stats.NodeCount, stats.EdgeCount)

	log.Println("Step 3/4: Solving group assignments...")
	assignments, failures := solver.SolveGroups(g, idx, groups, solver.DefaultOptions())
	for _, f := range failures {
		log.Printf("group %s could not be placed: %s", f.GroupID, f.Reason)
	}
	log.Printf("Solved %d/%d groups", len(assignments.Groups)-len(failures), len(groups))

	if *runAnneal {
		log.Println("Step 4/4: Refining with simulated annealing...")
		assignments = anneal.Run(g, assignments, *annealSeed, anneal.DefaultOptions())
	} else {
		log.Println("Step 4/4: Skipping annealing (use --anneal to enable)")
	}

	if *persist {
		pool, err := store.GetPool()
		if err != nil {
			log.Fatalf("failed to connect to store: %v", err)
		}
		defer store.Close()

		batchID, err := store.Save(ctx, pool, assignments, allDiagnostics)
		if err != nil {
			log.Fatalf("failed to persist assignments: %v", err)
		}
		log.Printf("Persisted batch %s", batchID)
	}

	log.Println("Done.")
}

func reportDiagnostics(table string, diags []model.Diagnostic) {
	for _, d := range diags {
		log.Printf("%s: %s %s: %s", table, d.Kind, d.Subject, d.Message)
	}
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/orchid-commerce/medallion/internal/models"
)

// RunStats is what a stage reports about one execution.
type RunStats struct {
	RowsIn      int
	RowsOut     int
	Quarantined int
}

// Stage is one node of the orchestration graph. Inputs and Outputs are
// declared table names; the graph is sequenced from these declarations,
// never from file order or implicit state. Tables no stage produces are
// external inputs (landing files, reference data).
type Stage struct {
	Name    string
	Inputs  []string
	Outputs []string
	Run     func(ctx context.Context) (RunStats, error)
}

// Graph is a directed acyclic graph of stages with a single writer per
// output table.
type Graph struct {
	stages []Stage
}

func NewGraph(stages ...Stage) *Graph {
	return &Graph{stages: stages}
}

// Validate checks the structural invariants before anything runs: unique
// stage names, exactly one writer per table, and no cycles.
func (g *Graph) Validate() error {
	names := make(map[string]bool, len(g.stages))
	writers := make(map[string]string)

	for _, s := range g.stages {
		if s.Name == "" {
			return fmt.Errorf("stage with empty name")
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate stage name %q", s.Name)
		}
		names[s.Name] = true

		for _, out := range s.Outputs {
			if owner, ok := writers[out]; ok {
				return fmt.Errorf("table %q has two writers: %q and %q", out, owner, s.Name)
			}
			writers[out] = s.Name
		}
	}

	if _, err := g.Order(); err != nil {
		return err
	}
	return nil
}

// Order returns the stages in a deterministic topological order. Ties are
// broken by stage name, so the plan for a given graph never changes
// between runs.
func (g *Graph) Order() ([]Stage, error) {
	producer := make(map[string]string)
	byName := make(map[string]Stage, len(g.stages))
	for _, s := range g.stages {
		byName[s.Name] = s
		for _, out := range s.Outputs {
			producer[out] = s.Name
		}
	}

	indegree := make(map[string]int, len(g.stages))
	dependents := make(map[string][]string)
	for _, s := range g.stages {
		indegree[s.Name] += 0
		for _, in := range s.Inputs {
			from, ok := producer[in]
			if !ok {
				continue // external input
			}
			indegree[s.Name]++
			dependents[from] = append(dependents[from], s.Name)
		}
	}

	var ready []string
	for name, deg := range indegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	ordered := make([]Stage, 0, len(g.stages))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		ordered = append(ordered, byName[name])

		var next []string
		for _, dep := range dependents[name] {
			indegree[dep]--
			if indegree[dep] == 0 {
				next = append(next, dep)
			}
		}
		sort.Strings(next)
		ready = mergeSorted(ready, next)
	}

	if len(ordered) != len(g.stages) {
		return nil, fmt.Errorf("stage graph has a cycle")
	}
	return ordered, nil
}

// Subgraph returns the stages needed to produce the given tables: their
// producers plus every transitive upstream producer, in the original
// declaration order. Tables nothing produces are external and ignored.
func (g *Graph) Subgraph(tables ...string) *Graph {
	producer := make(map[string]Stage)
	for _, s := range g.stages {
		for _, out := range s.Outputs {
			producer[out] = s
		}
	}

	needed := make(map[string]bool)
	queue := append([]string{}, tables...)
	for len(queue) > 0 {
		table := queue[0]
		queue = queue[1:]

		s, ok := producer[table]
		if !ok || needed[s.Name] {
			continue
		}
		needed[s.Name] = true
		queue = append(queue, s.Inputs...)
	}

	var stages []Stage
	for _, s := range g.stages {
		if needed[s.Name] {
			stages = append(stages, s)
		}
	}
	return NewGraph(stages...)
}

func mergeSorted(a, b []string) []string {
	out := append(append([]string{}, a...), b...)
	sort.Strings(out)
	return out
}

// Execute runs every stage in dependency order. A stage failure stops the
// run and propagates: retries are whole-stage re-runs owned by the
// caller, which idempotent stage outputs make safe.
func (g *Graph) Execute(ctx context.Context, logger *slog.Logger, refVersion string) ([]models.StageRun, error) {
	ordered, err := g.Order()
	if err != nil {
		return nil, err
	}

	runs := make([]models.StageRun, 0, len(ordered))
	for _, stage := range ordered {
		if err := ctx.Err(); err != nil {
			return runs, err
		}

		started := time.Now().UTC()
		stats, err := stage.Run(ctx)
		if err != nil {
			logger.Error("stage failed", "stage", stage.Name, "error", err)
			return runs, fmt.Errorf("stage %s failed: %w", stage.Name, err)
		}

		run := models.StageRun{
			RunID:          uuid.NewString(),
			Stage:          stage.Name,
			RefDataVersion: refVersion,
			RowsIn:         stats.RowsIn,
			RowsOut:        stats.RowsOut,
			Quarantined:    stats.Quarantined,
			StartedAt:      started,
			Duration:       time.Since(started),
		}
		runs = append(runs, run)

		logger.Info("stage completed",
			"stage", stage.Name,
			"rows_in", stats.RowsIn,
			"rows_out", stats.RowsOut,
			"quarantined", stats.Quarantined,
			"duration", run.Duration,
		)
	}

	return runs, nil
}

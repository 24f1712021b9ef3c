package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func noopStage(name string, inputs, outputs []string, order *[]string) Stage {
	return Stage{
		Name:    name,
		Inputs:  inputs,
		Outputs: outputs,
		Run: func(ctx context.Context) (RunStats, error) {
			*order = append(*order, name)
			return RunStats{}, nil
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGraphOrderRespectsDependencies(t *testing.T) {
	var order []string
	g := NewGraph(
		noopStage("gold", []string{"silver"}, []string{"gold"}, &order),
		noopStage("bronze", nil, []string{"bronze"}, &order),
		noopStage("silver", []string{"bronze"}, []string{"silver"}, &order),
	)

	if err := g.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if _, err := g.Execute(context.Background(), discardLogger(), "v1"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := []string{"bronze", "silver", "gold"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestGraphOrderIsDeterministic(t *testing.T) {
	build := func(order *[]string) *Graph {
		return NewGraph(
			noopStage("b-stage", nil, []string{"b"}, order),
			noopStage("a-stage", nil, []string{"a"}, order),
			noopStage("c-stage", []string{"a", "b"}, []string{"c"}, order),
		)
	}

	var first, second []string
	if _, err := build(&first).Execute(context.Background(), discardLogger(), "v1"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if _, err := build(&second).Execute(context.Background(), discardLogger(), "v1"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected identical plans, got %v and %v", first, second)
		}
	}
	if first[0] != "a-stage" {
		t.Errorf("expected ties broken by name, got %v", first)
	}
}

func TestGraphValidateRejectsCycle(t *testing.T) {
	var order []string
	g := NewGraph(
		noopStage("x", []string{"b"}, []string{"a"}, &order),
		noopStage("y", []string{"a"}, []string{"b"}, &order),
	)

	if err := g.Validate(); err == nil {
		t.Fatal("expected cycle to be rejected")
	}
}

func TestGraphValidateRejectsTwoWriters(t *testing.T) {
	var order []string
	g := NewGraph(
		noopStage("x", nil, []string{"t"}, &order),
		noopStage("y", nil, []string{"t"}, &order),
	)

	if err := g.Validate(); err == nil {
		t.Fatal("expected duplicate writer to be rejected")
	}
}

func TestGraphExternalInputsAreSatisfied(t *testing.T) {
	// Inputs nothing produces are externals (landing files) and must not
	// block execution.
	var order []string
	g := NewGraph(
		noopStage("ingest", []string{"landing/file.csv"}, []string{"bronze"}, &order),
	)

	if err := g.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if _, err := g.Execute(context.Background(), discardLogger(), "v1"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(order) != 1 {
		t.Fatalf("expected single stage to run, got %v", order)
	}
}

func TestGraphRecordsRuns(t *testing.T) {
	g := NewGraph(Stage{
		Name:    "only",
		Outputs: []string{"t"},
		Run: func(ctx context.Context) (RunStats, error) {
			return RunStats{RowsIn: 10, RowsOut: 8, Quarantined: 2}, nil
		},
	})

	runs, err := g.Execute(context.Background(), discardLogger(), "2024-07")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run record, got %d", len(runs))
	}

	run := runs[0]
	if run.Stage != "only" || run.RowsIn != 10 || run.RowsOut != 8 || run.Quarantined != 2 {
		t.Errorf("unexpected run record: %+v", run)
	}
	if run.RunID == "" || run.RefDataVersion != "2024-07" {
		t.Errorf("expected run ID and refdata version recorded, got %+v", run)
	}
}

func TestGraphSubgraphClosure(t *testing.T) {
	var order []string
	g := NewGraph(
		noopStage("bronze-a", []string{"landing-a"}, []string{"bronze-a"}, &order),
		noopStage("bronze-b", []string{"landing-b"}, []string{"bronze-b"}, &order),
		noopStage("silver-a", []string{"bronze-a"}, []string{"silver-a"}, &order),
		noopStage("silver-b", []string{"bronze-b"}, []string{"silver-b"}, &order),
		noopStage("gold", []string{"silver-a", "silver-b"}, []string{"gold"}, &order),
	)

	sub := g.Subgraph("silver-a")
	if err := sub.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if _, err := sub.Execute(context.Background(), discardLogger(), "v1"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := []string{"bronze-a", "silver-a"}
	if len(order) != len(want) {
		t.Fatalf("expected stages %v, got %v", want, order)
	}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestGraphSubgraphIgnoresExternalTables(t *testing.T) {
	var order []string
	g := NewGraph(noopStage("only", []string{"landing"}, []string{"t"}, &order))

	sub := g.Subgraph("landing", "unknown")
	if len(sub.stages) != 0 {
		t.Fatalf("expected empty subgraph for external tables, got %d stages", len(sub.stages))
	}
}

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRecordBest(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)

	if err := st.CreateSweep(ctx, Sweep{ID: "s1", Design: "reference", Objective: "mass", Points: 4}); err != nil {
		t.Fatalf("create sweep failed: %v", err)
	}
	evals := []Evaluation{
		{Index: 0, Params: map[string]float64{"fin_area": 0.02}, DryMass: 14, StaticMargin: 1.2, Score: 14, Feasible: false},
		{Index: 1, Params: map[string]float64{"fin_area": 0.03}, DryMass: 14.2, StaticMargin: 1.8, Score: 14.2, Feasible: true},
		{Index: 2, Params: map[string]float64{"fin_area": 0.04}, DryMass: 14.1, StaticMargin: 2.1, Score: 14.1, Feasible: true},
		{Index: 3, Params: map[string]float64{"fin_area": 0}, Err: "fins: invalid fin geometry"},
	}
	if err := st.Record(ctx, "s1", evals); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	best, err := st.Best(ctx, "s1", 5)
	if err != nil {
		t.Fatalf("best failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("expected 2 feasible evaluations, got %d", len(best))
	}
	if best[0].Index != 2 || best[1].Index != 1 {
		t.Errorf("expected order 2, 1, got %d, %d", best[0].Index, best[1].Index)
	}
	if best[0].Params["fin_area"] != 0.04 {
		t.Errorf("params lost: %v", best[0].Params)
	}

	total, failed, err := st.Counts(ctx, "s1")
	if err != nil || total != 4 || failed != 1 {
		t.Errorf("expected 4 evaluations with 1 failure, got %d/%d (%v)", total, failed, err)
	}
}

func TestRecordDuplicateRollsBack(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)
	_ = st.CreateSweep(ctx, Sweep{ID: "s1", Design: "d", Objective: "mass"})

	err := st.Record(ctx, "s1", []Evaluation{{Index: 0, Feasible: true}, {Index: 0, Feasible: true}})
	if err == nil {
		t.Fatal("expected duplicate index error")
	}
	total, _, _ := st.Counts(ctx, "s1")
	if total != 0 {
		t.Errorf("expected rollback, found %d rows", total)
	}
}

func TestSweeps(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	_ = st.CreateSweep(ctx, Sweep{ID: "old", Design: "a", Objective: "mass", StartedAt: base})
	_ = st.CreateSweep(ctx, Sweep{ID: "new", Design: "b", Objective: "margin", Points: 9, StartedAt: base.Add(time.Hour)})

	sweeps, err := st.Sweeps(ctx)
	if err != nil {
		t.Fatalf("sweeps failed: %v", err)
	}
	if len(sweeps) != 2 || sweeps[0].ID != "new" || sweeps[1].ID != "old" {
		t.Fatalf("unexpected sweeps %+v", sweeps)
	}
	if !sweeps[0].StartedAt.Equal(base.Add(time.Hour)) || sweeps[0].Points != 9 {
		t.Errorf("unexpected sweep %+v", sweeps[0])
	}

	if err := st.CreateSweep(ctx, Sweep{}); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")
	st, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = st.CreateSweep(ctx, Sweep{ID: "s1", Design: "d", Objective: "mass"})
	_ = st.Close()

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer st.Close()
	sweeps, _ := st.Sweeps(ctx)
	if len(sweeps) != 1 {
		t.Errorf("expected 1 sweep after reopen, got %d", len(sweeps))
	}
}

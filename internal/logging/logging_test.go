package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf}).With(String("design", "reference"))

	log.Debug(context.Background(), "synthesized", Float("margin", 2.1), Int("parts", 8), Err(errors.New("boom")))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one json record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "synthesized" || rec["design"] != "reference" || rec["error"] != "boom" {
		t.Errorf("unexpected record %v", rec)
	}
	if rec["margin"] != 2.1 || rec["parts"] != float64(8) {
		t.Errorf("unexpected numeric fields %v", rec)
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWithRun(t *testing.T) {
	var buf bytes.Buffer
	ctx, log, id := WithRun(context.Background(), New(Config{Output: &buf}), "")
	if len(id) != 16 {
		t.Errorf("expected 16 hex chars, got %q", id)
	}
	if RunID(ctx) != id {
		t.Errorf("expected run id %s on context, got %s", id, RunID(ctx))
	}
	log.Info(ctx, "start")
	if !strings.Contains(buf.String(), "run_id="+id) {
		t.Errorf("expected run_id in %q", buf.String())
	}

	_, _, fixed := WithRun(context.Background(), nil, "abc")
	if fixed != "abc" {
		t.Errorf("expected supplied id, got %s", fixed)
	}
	if RunID(context.Background()) != "" {
		t.Error("expected empty run id on bare context")
	}
}

func TestNoop(t *testing.T) {
	log := Noop().With(String("k", "v"))
	log.Error(context.Background(), "dropped")
}

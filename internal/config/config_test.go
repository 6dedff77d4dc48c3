package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeParams(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadBench_Valid(t *testing.T) {
	path := writeParams(t, `
faults: 1
nodes: [4, 10]
rate: [10000, 20000]
shards: 4
duration: 300
`)
	cfg, err := LoadBench(path, "../../schemas/bench.cue")
	if err != nil {
		t.Fatalf("LoadBench() returned error: %v", err)
	}
	if cfg.Faults != 1 || len(cfg.Nodes) != 2 || cfg.Shards != 4 {
		t.Errorf("unexpected parameters: %+v", cfg)
	}
	if !cfg.Collocate {
		t.Errorf("expected collocate to default to true")
	}
	if cfg.Runs != 1 {
		t.Errorf("expected runs to default to 1, got %d", cfg.Runs)
	}
}

func TestLoadBench_MoreFaultsThanNodes(t *testing.T) {
	path := writeParams(t, `
faults: 4
nodes: [4]
rate: [10000]
shards: 4
duration: 300
`)
	_, err := LoadBench(path, "../../schemas/bench.cue")
	if err == nil || !strings.Contains(err.Error(), "more nodes than faults") {
		t.Fatalf("expected fault-count validation error, got %v", err)
	}
}

func TestLoadBench_SchemaRejectsWrongType(t *testing.T) {
	path := writeParams(t, `
faults: 0
nodes: "four"
rate: [10000]
shards: 4
duration: 300
`)
	if _, err := LoadBench(path, "../../schemas/bench.cue"); err == nil {
		t.Fatalf("expected CUE schema rejection")
	}
}

func TestLoadPlot_Valid(t *testing.T) {
	path := writeParams(t, `
faults: [0, 1]
nodes: [4, 10, 20]
shards: [4]
max_latency: [2000, 5000]
`)
	cfg, err := LoadPlot(path, "../../schemas/plot.cue")
	if err != nil {
		t.Fatalf("LoadPlot() returned error: %v", err)
	}
	if cfg.Scalability() {
		t.Errorf("expected committee sweep, not scalability")
	}
	if len(cfg.MaxLatency) != 2 {
		t.Errorf("unexpected parameters: %+v", cfg)
	}
}

func TestLoadPlot_BothAxesAreLists(t *testing.T) {
	path := writeParams(t, `
nodes: [4, 10]
shards: [4, 8]
max_latency: [2000]
`)
	if _, err := LoadPlot(path, "../../schemas/plot.cue"); err == nil {
		t.Fatalf("expected rejection when both nodes and shards are swept")
	}
}

func TestLoadPlot_DefaultsFaultsToZero(t *testing.T) {
	path := writeParams(t, `
nodes: [4]
shards: [4]
max_latency: [2000]
`)
	cfg, err := LoadPlot(path, "../../schemas/plot.cue")
	if err != nil {
		t.Fatalf("LoadPlot() returned error: %v", err)
	}
	if len(cfg.Faults) != 1 || cfg.Faults[0] != 0 {
		t.Errorf("expected faults to default to [0], got %v", cfg.Faults)
	}
}

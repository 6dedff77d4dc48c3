// YAML parameter loader with CUE validation integration
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BenchParameters describes one benchmark campaign: which committee sizes and
// input rates to sweep and how long each run lasts.
type BenchParameters struct {
	Faults    int   `yaml:"faults"`
	Nodes     []int `yaml:"nodes"`
	Rate      []int `yaml:"rate"`
	Shards    int   `yaml:"shards"`
	Collocate bool  `yaml:"collocate"`
	Duration  int   `yaml:"duration"`
	Runs      int   `yaml:"runs"`
}

// PlotParameters selects which aggregated result series to render.
type PlotParameters struct {
	Faults     []int `yaml:"faults"`
	Nodes      []int `yaml:"nodes"`
	Shards     []int `yaml:"shards"`
	Collocate  bool  `yaml:"collocate"`
	MaxLatency []int `yaml:"max_latency"`
}

// Scalability reports whether the sweep varies shards per node rather than
// committee size.
func (p *PlotParameters) Scalability() bool { return len(p.Shards) > 1 }

// LoadBench loads benchmark parameters from a YAML file and validates them
// against a CUE schema.
func LoadBench(configPath, cueSchemaPath string) (*BenchParameters, error) {
	cfg := BenchParameters{Collocate: true, Runs: 1}
	if err := load(configPath, cueSchemaPath, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadPlot loads plot parameters from a YAML file and validates them against
// a CUE schema.
func LoadPlot(configPath, cueSchemaPath string) (*PlotParameters, error) {
	cfg := PlotParameters{Collocate: true}
	if err := load(configPath, cueSchemaPath, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func load(configPath, cueSchemaPath string, out any) error {
	// Validate with CUE first
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

func (p *BenchParameters) validate() error {
	if p.Faults < 0 {
		return errors.New("invalid number of faults")
	}
	if len(p.Nodes) == 0 {
		return errors.New("missing number of nodes")
	}
	for _, n := range p.Nodes {
		if n <= 1 {
			return errors.New("invalid number of nodes")
		}
		if n <= p.Faults {
			return errors.New("there should be more nodes than faults")
		}
	}
	if len(p.Rate) == 0 {
		return errors.New("missing input rate")
	}
	if p.Shards <= 0 {
		return errors.New("invalid number of shards")
	}
	if p.Duration <= 0 {
		return errors.New("invalid benchmark duration")
	}
	if p.Runs <= 0 {
		return errors.New("invalid number of runs")
	}
	return nil
}

func (p *PlotParameters) validate() error {
	if len(p.Nodes) == 0 {
		return errors.New("missing number of nodes")
	}
	if len(p.Shards) == 0 {
		return errors.New("missing number of shards")
	}
	if len(p.Nodes) > 1 && len(p.Shards) > 1 {
		return errors.New(`either "nodes" or "shards" can be a list (not both)`)
	}
	if len(p.MaxLatency) == 0 {
		return errors.New("missing max latency")
	}
	if len(p.Faults) == 0 {
		p.Faults = []int{0}
	}
	return nil
}

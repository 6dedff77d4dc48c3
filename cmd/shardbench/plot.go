package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shardbench/internal/aggregate"
	"shardbench/internal/config"
	"shardbench/internal/console"
	"shardbench/internal/plotting"
)

var (
	plotConfigPath string
	plotSchemaPath string
	plotOutDir     string
)

var plotCmd = &cobra.Command{
	Use:   "plot <agg-dir>",
	Short: "Render aggregated records as error-barred charts",
	Long:  "plot reads the aggregated records selected by the plot parameters and renders a latency chart and a throughput chart, each as PNG and PDF.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := console.New()

		params, err := config.LoadPlot(plotConfigPath, plotSchemaPath)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(plotOutDir, 0o755); err != nil {
			return err
		}

		if err := plotLatency(args[0], params); err != nil {
			return err
		}
		if err := plotTPS(args[0], params); err != nil {
			return err
		}
		out.Infof("Plots written to %s", plotOutDir)
		return nil
	},
}

// plotLatency draws latency versus throughput, one series per committee size
// (or per shard count when sweeping shards).
func plotLatency(aggDir string, params *config.PlotParameters) error {
	label := plotting.NodesLabel
	if params.Scalability() {
		label = plotting.ShardsLabel
	}

	var series []plotting.Series
	for _, faults := range params.Faults {
		for _, nodes := range params.Nodes {
			for _, shards := range params.Shards {
				key := aggregate.GroupKey{Faults: faults, Nodes: nodes, Shards: shards, Collocate: params.Collocate}
				data, err := os.ReadFile(filepath.Join(aggDir, aggregate.LatencyFile(key)))
				if os.IsNotExist(err) {
					continue
				}
				if err != nil {
					return err
				}
				s, err := plotting.LatencySeries(string(data), label)
				if err != nil {
					return err
				}
				series = append(series, s)
			}
		}
	}
	prefix := filepath.Join(plotOutDir, "latency")
	return plotting.Render(series, "Throughput (tx/s)", "Latency (ms)", prefix)
}

// plotTPS draws the best sustainable throughput against committee size or
// shards per authority, one series per latency cap.
func plotTPS(aggDir string, params *config.PlotParameters) error {
	xLabel := "Committee size"
	if params.Scalability() {
		xLabel = "Shards per authority"
	}

	var series []plotting.Series
	for _, faults := range params.Faults {
		for _, maxLatency := range params.MaxLatency {
			data, err := os.ReadFile(filepath.Join(aggDir, aggregate.TPSFile(faults, maxLatency, params.Collocate)))
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return err
			}
			s, err := plotting.TPSSeries(string(data), plotting.MaxLatencyLabel)
			if err != nil {
				return err
			}
			series = append(series, s)
		}
	}
	prefix := filepath.Join(plotOutDir, "tps")
	return plotting.Render(series, xLabel, "Throughput (tx/s)", prefix)
}

func init() {
	plotCmd.Flags().StringVar(&plotConfigPath, "config", "config/plot.yaml", "Path to plot parameters YAML")
	plotCmd.Flags().StringVar(&plotSchemaPath, "schema", "schemas/plot.cue", "Path to CUE schema file")
	plotCmd.Flags().StringVar(&plotOutDir, "out", "results/plots", "Directory to write charts to")
}

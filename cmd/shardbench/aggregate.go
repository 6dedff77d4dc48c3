package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shardbench/internal/aggregate"
	"shardbench/internal/config"
	"shardbench/internal/console"
)

var (
	aggConfigPath string
	aggSchemaPath string
	aggOutDir     string
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <results-dir>",
	Short: "Fold repeated runs into mean +/- stddev records",
	Long:  "aggregate reads every result file of a campaign and writes one latency record per configuration plus one best-TPS record per latency cap.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := console.New()

		params, err := config.LoadPlot(aggConfigPath, aggSchemaPath)
		if err != nil {
			return err
		}
		measurements, err := aggregate.Collect(args[0])
		if err != nil {
			return err
		}
		if err := os.MkdirAll(aggOutDir, 0o755); err != nil {
			return err
		}

		agg := aggregate.NewAggregator(measurements)

		written := 0
		for _, key := range agg.Keys() {
			if key.Collocate != params.Collocate {
				continue
			}
			record, ok := agg.LatencyRecord(key)
			if !ok {
				continue
			}
			path := filepath.Join(aggOutDir, aggregate.LatencyFile(key))
			if err := os.WriteFile(path, []byte(record), 0o644); err != nil {
				return err
			}
			written++
		}

		for _, faults := range params.Faults {
			for _, maxLatency := range params.MaxLatency {
				record, ok := agg.TPSRecord(faults, maxLatency, params.Collocate, params.Scalability())
				if !ok {
					continue
				}
				path := filepath.Join(aggOutDir, aggregate.TPSFile(faults, maxLatency, params.Collocate))
				if err := os.WriteFile(path, []byte(record), 0o644); err != nil {
					return err
				}
				written++
			}
		}

		out.Infof("Aggregated %d run(s) into %d record(s)", len(measurements), written)
		return nil
	},
}

func init() {
	aggregateCmd.Flags().StringVar(&aggConfigPath, "config", "config/plot.yaml", "Path to plot parameters YAML")
	aggregateCmd.Flags().StringVar(&aggSchemaPath, "schema", "schemas/plot.cue", "Path to CUE schema file")
	aggregateCmd.Flags().StringVar(&aggOutDir, "out", "results/agg", "Directory to write aggregated records to")
}

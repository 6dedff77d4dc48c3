package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"shardbench/internal/aggregate"
	"shardbench/internal/console"
	"shardbench/internal/logging"
	"shardbench/internal/logparse"
)

var (
	analyzeNodes      int
	analyzeFaults     int
	analyzeResultsDir string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <logs-dir>",
	Short: "Parse one benchmark run's logs and report its metrics",
	Long:  "analyze reads every client-*.log and shard-*.log file of one run, reconciles them, and prints the summary. With --results the summary is also appended to the run's result file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := console.New()
		ctx := logging.NewContext(cmd.Context(), newLogger())

		out.Infof("Parsing logs...")
		obs, err := logparse.ParseDirectory(ctx, args[0], analyzeNodes, analyzeFaults)
		if err != nil {
			return err
		}
		if obs.RateMisses > 0 {
			p := message.NewPrinter(language.English)
			out.Warnf("%s", p.Sprintf("Clients missed their target rate %d time(s)", obs.RateMisses))
		}

		summary, err := obs.Summary()
		if err != nil {
			return err
		}
		fmt.Print(summary)

		if analyzeResultsDir == "" {
			return nil
		}
		return appendResult(obs, summary)
	},
}

// appendResult appends the summary to the result file of the run's
// configuration, so repeated runs accumulate in one place.
func appendResult(obs *logparse.RunObservation, summary string) error {
	if err := os.MkdirAll(analyzeResultsDir, 0o755); err != nil {
		return err
	}
	nodes := obs.CommitteeSize - obs.Faults
	name := aggregate.ResultFile(obs.Faults, nodes, obs.ShardsPerNode, obs.Rate, obs.Collocate)

	f, err := os.OpenFile(filepath.Join(analyzeResultsDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(summary)
	return err
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeNodes, "nodes", 0, "Number of authorities in the run (0 infers it from shard-*-0.log files)")
	analyzeCmd.Flags().IntVar(&analyzeFaults, "faults", 0, "Number of faulty authorities during the run")
	analyzeCmd.Flags().StringVar(&analyzeResultsDir, "results", "", "Directory to append the summary to (skipped when empty)")
}

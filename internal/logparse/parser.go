// Package logparse turns the raw logs of one benchmark run into
// throughput and latency figures.
//
// Each client log yields its configured rate, start time, and per-sample
// send/certificate times; each shard log yields its IP and per-sample
// certificate times. Shard observations are reconciled with a
// Byzantine-tolerant quorum rule before any end-to-end metric is derived.
package logparse

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"shardbench/internal/logging"
)

// Parse ingests the complete log text of every client and shard process of
// one run. nodes and faults come from the benchmark driver's bookkeeping;
// pass nodes as zero when unknown.
//
// Any single malformed or crashed log fails the whole batch: statistics over
// a run with a missing or untrustworthy process are meaningless.
func Parse(ctx context.Context, clients, shards []string, nodes, faults int) (*RunObservation, error) {
	if len(clients) == 0 {
		return nil, errors.New("failed to parse logs: no client logs")
	}
	if len(shards) == 0 {
		return nil, errors.New("failed to parse logs: no shard logs")
	}

	committeeSize, shardsPerNode, committeeKnown := 0, 0, false
	if nodes > 0 {
		committeeSize = nodes + faults
		shardsPerNode = len(shards) / nodes
		committeeKnown = true
	}

	clientRecs := make([]clientRecord, len(clients))
	shardRecs := make([]shardRecord, len(shards))

	// Every parse is a pure function of its own log text, so the fan-out
	// needs no coordination beyond fail-fast cancellation.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, log := range clients {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := parseClient(log)
			if err != nil {
				return fmt.Errorf("client log %d: %w", i, err)
			}
			clientRecs[i] = rec
			return nil
		})
	}
	for i, log := range shards {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := parseShard(log)
			if err != nil {
				return fmt.Errorf("shard log %d: %w", i, err)
			}
			shardRecs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to parse logs: %w", err)
	}

	rate, misses := 0, 0
	start := math.Inf(1)
	sentSamples := make(map[uint64]float64)
	clientCerts := make([]map[uint64]float64, 0, len(clientRecs))
	for _, rec := range clientRecs {
		rate += rec.rate
		misses += rec.misses
		if rec.start < start {
			start = rec.start
		}
		// Sample ids are globally unique across clients, so this union is
		// disjoint by construction.
		for id, ts := range rec.samples {
			sentSamples[id] = ts
		}
		clientCerts = append(clientCerts, rec.certs)
	}

	shardCerts := make([]map[uint64]float64, 0, len(shardRecs))
	ips := make(map[string]struct{})
	for _, rec := range shardRecs {
		shardCerts = append(shardCerts, rec.certs)
		ips[rec.ip] = struct{}{}
	}

	obs := &RunObservation{
		ID:                 uuid.New().String(),
		Faults:             faults,
		CommitteeSize:      committeeSize,
		CommitteeKnown:     committeeKnown,
		ShardsPerNode:      shardsPerNode,
		Collocate:          nodes == len(ips),
		Rate:               rate,
		Start:              start,
		RateMisses:         misses,
		SentSamples:        sentSamples,
		ClientCertificates: mergeEarliest(clientCerts...),
		NodeCertificates:   mergeQuorum(shardCerts, committeeSize),
		NodeIPs:            ips,
	}

	logging.FromContext(ctx).Debug("parsed benchmark run",
		"run", obs.ID,
		"clients", len(clients),
		"shards", len(shards),
		"samples", len(obs.SentSamples),
		"commits", len(obs.NodeCertificates),
	)
	return obs, nil
}

// ParseDirectory reads every client-*.log and shard-*.log file under dir, in
// lexicographic order, and parses them as one run. When nodes is zero it is
// inferred from the number of shard-*-0.log files.
func ParseDirectory(ctx context.Context, dir string, nodes, faults int) (*RunObservation, error) {
	clients, err := readLogs(filepath.Join(dir, "client-*.log"))
	if err != nil {
		return nil, err
	}
	shards, err := readLogs(filepath.Join(dir, "shard-*.log"))
	if err != nil {
		return nil, err
	}

	if nodes <= 0 {
		first, err := filepath.Glob(filepath.Join(dir, "shard-*-0.log"))
		if err != nil {
			return nil, err
		}
		nodes = len(first)
	}
	return Parse(ctx, clients, shards, nodes, faults)
}

func readLogs(pattern string) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	logs := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		logs = append(logs, string(data))
	}
	return logs, nil
}

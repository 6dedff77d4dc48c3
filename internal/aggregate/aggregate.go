// Package aggregate folds the summaries of repeated benchmark runs into
// mean ± standard deviation records, one per configuration, in the text
// format the plotting layer reads back.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// GroupKey identifies one benchmark configuration axis: all runs sharing it
// differ only in input rate and repetition.
type GroupKey struct {
	Faults    int
	Nodes     int
	Shards    int
	Collocate bool
}

// Aggregator groups measurements by configuration and renders aggregated
// records.
type Aggregator struct {
	// runs[key][rate] holds every repetition of that configuration.
	runs map[GroupKey]map[int][]Measurement
}

// NewAggregator groups the given measurements.
func NewAggregator(ms []Measurement) *Aggregator {
	runs := make(map[GroupKey]map[int][]Measurement)
	for _, m := range ms {
		key := GroupKey{
			Faults:    m.Faults,
			Nodes:     m.CommitteeSize - m.Faults,
			Shards:    m.Shards,
			Collocate: m.Collocate,
		}
		if runs[key] == nil {
			runs[key] = make(map[int][]Measurement)
		}
		runs[key][m.Rate] = append(runs[key][m.Rate], m)
	}
	return &Aggregator{runs: runs}
}

// Keys returns every configuration seen, in a stable order.
func (a *Aggregator) Keys() []GroupKey {
	keys := make([]GroupKey, 0, len(a.runs))
	for k := range a.runs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Faults != keys[j].Faults {
			return keys[i].Faults < keys[j].Faults
		}
		if keys[i].Nodes != keys[j].Nodes {
			return keys[i].Nodes < keys[j].Nodes
		}
		return keys[i].Shards < keys[j].Shards
	})
	return keys
}

type point struct {
	x         int
	tps, tpsE float64
	lat, latE float64
}

// LatencyRecord renders the latency-versus-throughput series of one
// configuration: one block per input rate, X = mean end-to-end TPS.
func (a *Aggregator) LatencyRecord(key GroupKey) (string, bool) {
	byRate, ok := a.runs[key]
	if !ok {
		return "", false
	}

	points := make([]point, 0, len(byRate))
	for _, runs := range byRate {
		p := summarize(runs)
		p.x = int(math.Round(p.tps))
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].x < points[j].x })

	return render(latencyHeader(key), points), true
}

// TPSRecord renders the best sustainable throughput per scale value under a
// latency cap: for each committee size (or shards per node when scalability
// is set), the highest-TPS rate whose mean end-to-end latency stays under
// maxLatency milliseconds.
func (a *Aggregator) TPSRecord(faults, maxLatency int, collocate, scalability bool) (string, bool) {
	best := make(map[int]point)
	for key, byRate := range a.runs {
		if key.Faults != faults || key.Collocate != collocate {
			continue
		}
		scale := key.Nodes + key.Faults
		if scalability {
			scale = key.Shards
		}
		for _, runs := range byRate {
			p := summarize(runs)
			if p.lat > float64(maxLatency) {
				continue
			}
			if prev, ok := best[scale]; !ok || p.tps > prev.tps {
				p.x = scale
				best[scale] = p
			}
		}
	}
	if len(best) == 0 {
		return "", false
	}

	points := make([]point, 0, len(best))
	for _, p := range best {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].x < points[j].x })

	return render(tpsHeader(faults, maxLatency, collocate), points), true
}

func summarize(runs []Measurement) point {
	tps := make([]float64, 0, len(runs))
	lat := make([]float64, 0, len(runs))
	for _, m := range runs {
		tps = append(tps, m.TPS)
		lat = append(lat, m.Latency)
	}
	p := point{}
	p.tps, p.tpsE = meanStd(tps)
	p.lat, p.latE = meanStd(lat)
	return p
}

func meanStd(xs []float64) (mean, std float64) {
	mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		std = stat.StdDev(xs, nil)
	}
	return mean, std
}

func latencyHeader(key GroupKey) string {
	var b strings.Builder
	fmt.Fprintf(&b, " Faults: %d node(s)\n", key.Faults)
	fmt.Fprintf(&b, " Committee size: %d node(s)\n", key.Nodes+key.Faults)
	fmt.Fprintf(&b, " Shards per node: %d shard(s)\n", key.Shards)
	fmt.Fprintf(&b, " Collocate shards: %v\n", key.Collocate)
	return b.String()
}

func tpsHeader(faults, maxLatency int, collocate bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, " Faults: %d node(s)\n", faults)
	fmt.Fprintf(&b, " Collocate shards: %v\n", collocate)
	fmt.Fprintf(&b, " Max latency: %d ms\n", maxLatency)
	return b.String()
}

func render(header string, points []point) string {
	var b strings.Builder
	b.WriteString("-----------------------------------------\n")
	b.WriteString(" AGGREGATED RESULTS:\n")
	b.WriteString("-----------------------------------------\n")
	b.WriteString(" + CONFIG:\n")
	b.WriteString(header)
	b.WriteString("\n + RESULTS:\n")
	for _, p := range points {
		fmt.Fprintf(&b, " Variable value: X=%d\n", p.x)
		fmt.Fprintf(&b, " TPS: %d +/- %d tx/s\n", int(math.Round(p.tps)), int(math.Round(p.tpsE)))
		fmt.Fprintf(&b, " Latency: %d +/- %d ms\n", int(math.Round(p.lat)), int(math.Round(p.latE)))
	}
	b.WriteString("-----------------------------------------\n")
	return b.String()
}

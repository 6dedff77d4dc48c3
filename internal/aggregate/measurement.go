package aggregate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	faultsRe    = regexp.MustCompile(`Faults: (\d+) node`)
	committeeRe = regexp.MustCompile(`Committee size: (\d+|\?) node`)
	shardsRe    = regexp.MustCompile(`Shard\(s\) per node: (\d+|\?) shard`)
	collocateRe = regexp.MustCompile(`Collocate shards: (true|false)`)
	rateRe      = regexp.MustCompile(`Input rate: (\d+) tx/s`)
	clientTPSRe = regexp.MustCompile(`Client TPS: (\d+) tx/s`)
	clientLatRe = regexp.MustCompile(`Client latency: (\d+) ms`)
	tpsRe       = regexp.MustCompile(`End-to-end TPS: (\d+) tx/s`)
	latencyRe   = regexp.MustCompile(`End-to-end latency: (\d+) ms`)
)

// Measurement holds one run's scalars, re-extracted from its summary block.
type Measurement struct {
	Faults        int
	CommitteeSize int // zero when the run's committee size was unknown
	Shards        int
	Collocate     bool
	Rate          int

	ClientTPS     float64
	ClientLatency float64 // ms
	TPS           float64 // end-to-end, tx/s
	Latency       float64 // end-to-end, ms
}

// ParseMeasurements extracts every summary block appended to a result file.
// All fields must appear once per block, in any order within it.
func ParseMeasurements(data string) ([]Measurement, error) {
	// Summaries carry thousands separators; strip them before matching.
	data = strings.ReplaceAll(data, ",", "")

	faults := findAll(data, faultsRe)
	committee := findAll(data, committeeRe)
	shards := findAll(data, shardsRe)
	collocate := findAll(data, collocateRe)
	rate := findAll(data, rateRe)
	clientTPS := findAll(data, clientTPSRe)
	clientLat := findAll(data, clientLatRe)
	tps := findAll(data, tpsRe)
	latency := findAll(data, latencyRe)

	n := len(faults)
	for _, xs := range [][]string{committee, shards, collocate, rate, clientTPS, clientLat, tps, latency} {
		if len(xs) != n {
			return nil, fmt.Errorf("malformed result file: uneven field counts")
		}
	}

	ms := make([]Measurement, 0, n)
	for i := 0; i < n; i++ {
		m := Measurement{
			Faults:        mustInt(faults[i]),
			CommitteeSize: optInt(committee[i]),
			Shards:        optInt(shards[i]),
			Collocate:     collocate[i] == "true",
			Rate:          mustInt(rate[i]),
			ClientTPS:     float64(mustInt(clientTPS[i])),
			ClientLatency: float64(mustInt(clientLat[i])),
			TPS:           float64(mustInt(tps[i])),
			Latency:       float64(mustInt(latency[i])),
		}
		ms = append(ms, m)
	}
	return ms, nil
}

// Collect parses every result file under dir.
func Collect(dir string) ([]Measurement, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "bench-*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var all []Measurement
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		ms, err := ParseMeasurements(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		all = append(all, ms...)
	}
	return all, nil
}

func findAll(data string, re *regexp.Regexp) []string {
	matches := re.FindAllStringSubmatch(data, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

func mustInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		panic(fmt.Sprintf("non-numeric field %q escaped the extraction regex", s))
	}
	return v
}

func optInt(s string) int {
	if s == "?" {
		return 0
	}
	return mustInt(s)
}

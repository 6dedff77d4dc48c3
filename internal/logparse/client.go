package logparse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rateRe        = regexp.MustCompile(`Transactions rate: (\d+)`)
	startRe       = regexp.MustCompile(`\[(.*Z) .* Start `)
	rateMissRe    = regexp.MustCompile(`rate too high`)
	sampleRe      = regexp.MustCompile(`\[(.*Z) .* sample transaction (\d+)`)
	certificateRe = regexp.MustCompile(`\[(.*Z) .* certificate (\d+)`)
)

// clientRecord holds the data extracted from a single client's log.
type clientRecord struct {
	rate    int
	start   float64
	misses  int
	samples map[uint64]float64
	certs   map[uint64]float64
}

// parseClient extracts one client process's send rate, start time, rate-miss
// count, sample send times, and locally observed certificate times.
func parseClient(log string) (clientRecord, error) {
	if strings.Contains(log, "Error") {
		return clientRecord{}, ErrClientPanicked
	}

	m := rateRe.FindStringSubmatch(log)
	if m == nil {
		return clientRecord{}, &ClientLogError{Missing: "rate"}
	}
	rate, err := strconv.Atoi(m[1])
	if err != nil {
		return clientRecord{}, err
	}

	m = startRe.FindStringSubmatch(log)
	if m == nil {
		return clientRecord{}, &ClientLogError{Missing: "start time"}
	}
	start, err := toPosix(m[1])
	if err != nil {
		return clientRecord{}, err
	}

	misses := len(rateMissRe.FindAllStringIndex(log, -1))

	samples, err := extractTimestamps(log, sampleRe)
	if err != nil {
		return clientRecord{}, err
	}
	certs, err := extractTimestamps(log, certificateRe)
	if err != nil {
		return clientRecord{}, err
	}

	return clientRecord{
		rate:    rate,
		start:   start,
		misses:  misses,
		samples: samples,
		certs:   certs,
	}, nil
}

// extractTimestamps collects every (timestamp, id) match of re. A client or
// shard should log a given id at most once; duplicates keep the earliest
// timestamp.
func extractTimestamps(log string, re *regexp.Regexp) (map[uint64]float64, error) {
	out := make(map[uint64]float64)
	for _, m := range re.FindAllStringSubmatch(log, -1) {
		ts, err := toPosix(m[1])
		if err != nil {
			return nil, err
		}
		id, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			return nil, err
		}
		if prev, ok := out[id]; !ok || ts < prev {
			out[id] = ts
		}
	}
	return out, nil
}

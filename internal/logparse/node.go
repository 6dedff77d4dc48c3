package logparse

import "regexp"

var (
	bootedRe    = regexp.MustCompile(`booted on (\d+\.\d+\.\d+\.\d+)`)
	nodePanicRe = regexp.MustCompile(`panic|Error`)
)

// shardRecord holds the data extracted from a single shard's log.
type shardRecord struct {
	ip    string
	certs map[uint64]float64
}

// parseShard extracts a shard process's bound IP and the time it first
// certified each sample transaction.
func parseShard(log string) (shardRecord, error) {
	if nodePanicRe.MatchString(log) {
		return shardRecord{}, ErrNodePanicked
	}

	m := bootedRe.FindStringSubmatch(log)
	if m == nil {
		return shardRecord{}, &NodeLogError{Missing: "ip"}
	}

	certs, err := extractTimestamps(log, certificateRe)
	if err != nil {
		return shardRecord{}, err
	}

	return shardRecord{ip: m[1], certs: certs}, nil
}

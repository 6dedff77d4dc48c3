package aggregate

import "fmt"

// ResultFile names the file summaries of one configuration are appended to.
func ResultFile(faults, nodes, shards, rate int, collocate bool) string {
	return fmt.Sprintf("bench-%d-%dx%d-%d-%v.txt", faults, nodes, shards, rate, collocate)
}

// LatencyFile names the aggregated latency-versus-throughput record of one
// configuration.
func LatencyFile(key GroupKey) string {
	return fmt.Sprintf("agg-latency-%d-%dx%d-%v.txt", key.Faults, key.Nodes, key.Shards, key.Collocate)
}

// TPSFile names the aggregated best-throughput record under one latency cap.
func TPSFile(faults, maxLatency int, collocate bool) string {
	return fmt.Sprintf("agg-tps-%d-%v-%dms.txt", faults, collocate, maxLatency)
}

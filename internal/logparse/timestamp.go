package logparse

import "time"

// toPosix converts an ISO-8601 timestamp ending in "Z" (the format emitted by
// the client and shard binaries) into fractional POSIX seconds.
func toPosix(s string) (float64, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, &MalformedTimestampError{Value: s, Err: err}
	}
	return float64(t.UnixNano()) / float64(time.Second), nil
}

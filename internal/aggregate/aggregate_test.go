package aggregate

import (
	"math"
	"strings"
	"testing"

	"shardbench/internal/logparse"
)

func summaryOf(t *testing.T, obs *logparse.RunObservation) string {
	t.Helper()
	summary, err := obs.Summary()
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	return summary
}

func testObservation(rate int) *logparse.RunObservation {
	return &logparse.RunObservation{
		Faults:             1,
		CommitteeSize:      5,
		CommitteeKnown:     true,
		ShardsPerNode:      4,
		Collocate:          true,
		Rate:               rate,
		Start:              0,
		SentSamples:        map[uint64]float64{1: 1.0, 2: 2.0},
		ClientCertificates: map[uint64]float64{1: 3.0, 2: 4.0},
		NodeCertificates:   map[uint64]float64{1: 4.0, 2: 5.0},
	}
}

func TestSummaryRoundTrip(t *testing.T) {
	obs := testObservation(20000)
	ms, err := ParseMeasurements(summaryOf(t, obs))
	if err != nil {
		t.Fatalf("ParseMeasurements returned error: %v", err)
	}
	if len(ms) != 1 {
		t.Fatalf("expected 1 measurement, got %d", len(ms))
	}

	m := ms[0]
	if m.Faults != 1 || m.CommitteeSize != 5 || m.Shards != 4 || !m.Collocate {
		t.Errorf("configuration did not round-trip: %+v", m)
	}
	if m.Rate != 20000 {
		t.Errorf("expected rate 20000, got %d", m.Rate)
	}

	clientLatency, _ := obs.ClientLatency()
	if math.Abs(m.ClientLatency-clientLatency*1000) > 1 {
		t.Errorf("client latency did not round-trip: %f vs %f ms", m.ClientLatency, clientLatency*1000)
	}
	endToEndLatency, _ := obs.EndToEndLatency()
	if math.Abs(m.Latency-endToEndLatency*1000) > 1 {
		t.Errorf("end-to-end latency did not round-trip: %f vs %f ms", m.Latency, endToEndLatency*1000)
	}
	tps, _ := obs.EndToEndThroughput()
	if math.Abs(m.TPS-tps) > 1 {
		t.Errorf("end-to-end TPS did not round-trip: %f vs %f", m.TPS, tps)
	}
}

func TestParseMeasurementsMultipleBlocks(t *testing.T) {
	data := summaryOf(t, testObservation(10000)) + summaryOf(t, testObservation(20000))
	ms, err := ParseMeasurements(data)
	if err != nil {
		t.Fatalf("ParseMeasurements returned error: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("expected 2 measurements, got %d", len(ms))
	}
	if ms[0].Rate != 10000 || ms[1].Rate != 20000 {
		t.Errorf("unexpected rates: %d, %d", ms[0].Rate, ms[1].Rate)
	}
}

func TestParseMeasurementsUnknownCommittee(t *testing.T) {
	obs := testObservation(10000)
	obs.CommitteeKnown = false
	ms, err := ParseMeasurements(summaryOf(t, obs))
	if err != nil {
		t.Fatalf("ParseMeasurements returned error: %v", err)
	}
	if ms[0].CommitteeSize != 0 || ms[0].Shards != 0 {
		t.Errorf("expected zero for unknown committee, got %+v", ms[0])
	}
}

func measurement(rate int, tps, latency float64) Measurement {
	return Measurement{
		Faults:        0,
		CommitteeSize: 4,
		Shards:        4,
		Collocate:     true,
		Rate:          rate,
		TPS:           tps,
		Latency:       latency,
	}
}

func TestLatencyRecordMeanAndStdDev(t *testing.T) {
	agg := NewAggregator([]Measurement{
		measurement(10000, 9000, 100),
		measurement(10000, 11000, 140),
	})
	keys := agg.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected 1 configuration, got %d", len(keys))
	}

	record, ok := agg.LatencyRecord(keys[0])
	if !ok {
		t.Fatalf("expected a latency record")
	}
	if !strings.Contains(record, " Variable value: X=10000\n") {
		t.Errorf("expected X to be the mean TPS:\n%s", record)
	}
	if !strings.Contains(record, " TPS: 10000 +/- 1414 tx/s\n") {
		t.Errorf("unexpected TPS aggregate:\n%s", record)
	}
	if !strings.Contains(record, " Latency: 120 +/- 28 ms\n") {
		t.Errorf("unexpected latency aggregate:\n%s", record)
	}
}

func TestLatencyRecordSingleRunHasZeroStdDev(t *testing.T) {
	agg := NewAggregator([]Measurement{measurement(10000, 9000, 100)})
	record, ok := agg.LatencyRecord(agg.Keys()[0])
	if !ok {
		t.Fatalf("expected a latency record")
	}
	if !strings.Contains(record, " TPS: 9000 +/- 0 tx/s\n") {
		t.Errorf("expected zero stddev for a single run:\n%s", record)
	}
}

func TestTPSRecordPicksBestRateUnderCap(t *testing.T) {
	ms := []Measurement{
		measurement(10000, 9500, 100),
		measurement(20000, 18000, 900),
		measurement(30000, 21000, 4000), // over the cap
	}
	agg := NewAggregator(ms)

	record, ok := agg.TPSRecord(0, 1000, true, false)
	if !ok {
		t.Fatalf("expected a TPS record")
	}
	if !strings.Contains(record, " Max latency: 1000 ms\n") {
		t.Errorf("expected latency cap header:\n%s", record)
	}
	if !strings.Contains(record, " Variable value: X=4\n") {
		t.Errorf("expected committee size as X:\n%s", record)
	}
	if !strings.Contains(record, " TPS: 18000 +/- 0 tx/s\n") {
		t.Errorf("expected best under-cap rate to win:\n%s", record)
	}
}

func TestTPSRecordEmptyWhenNothingUnderCap(t *testing.T) {
	agg := NewAggregator([]Measurement{measurement(10000, 9500, 5000)})
	if _, ok := agg.TPSRecord(0, 1000, true, false); ok {
		t.Errorf("expected no record when every rate exceeds the cap")
	}
}

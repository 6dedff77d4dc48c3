package logparse

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RunObservation is the reconciled view of one benchmark run, built by Parse
// from every client and shard log. It is immutable after construction; the
// metric methods only derive values from it.
type RunObservation struct {
	// ID tags log output when several runs are processed in sequence.
	ID string

	Faults         int
	CommitteeSize  int
	CommitteeKnown bool
	ShardsPerNode  int
	Collocate      bool

	// Rate is the sum of the clients' configured send rates (tx/s).
	Rate int
	// Start is the earliest client start time (POSIX seconds).
	Start float64
	// RateMisses counts how often clients fell behind their configured rate.
	RateMisses int

	// SentSamples maps sample id to send time, merged across all clients.
	SentSamples map[uint64]float64
	// ClientCertificates maps sample id to the earliest time any single
	// client observed a certificate for it.
	ClientCertificates map[uint64]float64
	// NodeCertificates maps sample id to its quorum commit time.
	NodeCertificates map[uint64]float64

	// NodeIPs is the set of IPs the shards reported binding to.
	NodeIPs map[string]struct{}
}

// ClientThroughput returns transactions per second and run duration as
// observed by the clients. Both are zero when no client saw a certificate.
func (o *RunObservation) ClientThroughput() (tps, duration float64) {
	return throughput(o.ClientCertificates, o.Start)
}

// ClientLatency returns the mean send-to-certificate delay in seconds as
// observed by the clients, or zero when no sampled transaction was certified.
func (o *RunObservation) ClientLatency() (float64, error) {
	return meanLatency(o.SentSamples, o.ClientCertificates)
}

// EndToEndThroughput returns transactions per second and run duration as
// certified by a quorum of nodes.
func (o *RunObservation) EndToEndThroughput() (tps, duration float64) {
	return throughput(o.NodeCertificates, o.Start)
}

// EndToEndLatency returns the mean send-to-quorum-commit delay in seconds.
func (o *RunObservation) EndToEndLatency() (float64, error) {
	return meanLatency(o.SentSamples, o.NodeCertificates)
}

func throughput(certs map[uint64]float64, start float64) (tps, duration float64) {
	if len(certs) == 0 {
		return 0, 0
	}
	end := math.Inf(-1)
	for _, ts := range certs {
		if ts > end {
			end = ts
		}
	}
	duration = end - start
	return float64(len(certs)) / duration, duration
}

func meanLatency(sent, certs map[uint64]float64) (float64, error) {
	var sum float64
	var n int
	for id, sentAt := range sent {
		certifiedAt, ok := certs[id]
		if !ok {
			continue
		}
		if certifiedAt < sentAt {
			return 0, &CausalityViolationError{ID: id, Sent: sentAt, Certified: certifiedAt}
		}
		sum += certifiedAt - sentAt
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// Summary renders the run's configuration and results as the fixed-format
// text block appended to result files. The aggregator extracts the fields
// back out of this exact layout, so labels and order must not change.
func (o *RunObservation) Summary() (string, error) {
	clientLatency, err := o.ClientLatency()
	if err != nil {
		return "", err
	}
	endToEndLatency, err := o.EndToEndLatency()
	if err != nil {
		return "", err
	}
	clientTPS, _ := o.ClientThroughput()
	endToEndTPS, duration := o.EndToEndThroughput()

	committee, shards := "?", "?"
	if o.CommitteeKnown {
		committee = strconv.Itoa(o.CommitteeSize)
		shards = strconv.Itoa(o.ShardsPerNode)
	}

	p := message.NewPrinter(language.English)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("-----------------------------------------\n")
	b.WriteString(" SUMMARY:\n")
	b.WriteString("-----------------------------------------\n")
	b.WriteString(" + CONFIG:\n")
	p.Fprintf(&b, " Faults: %d node(s)\n", o.Faults)
	p.Fprintf(&b, " Committee size: %s node(s)\n", committee)
	p.Fprintf(&b, " Shard(s) per node: %s shard(s)\n", shards)
	p.Fprintf(&b, " Collocate shards: %v\n", o.Collocate)
	p.Fprintf(&b, " Input rate: %d tx/s\n", o.Rate)
	p.Fprintf(&b, " Execution time: %d s\n", round(duration))
	b.WriteString("\n")
	b.WriteString(" + RESULTS:\n")
	p.Fprintf(&b, " Client TPS: %d tx/s\n", round(clientTPS))
	p.Fprintf(&b, " Client latency: %d ms\n", round(clientLatency*1_000))
	p.Fprintf(&b, " End-to-end TPS: %d tx/s\n", round(endToEndTPS))
	p.Fprintf(&b, " End-to-end latency: %d ms\n", round(endToEndLatency*1_000))
	b.WriteString("-----------------------------------------\n")
	return b.String(), nil
}

func round(x float64) int64 { return int64(math.Round(x)) }

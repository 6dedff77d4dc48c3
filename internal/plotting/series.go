package plotting

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	variableRe   = regexp.MustCompile(`Variable value: X=(\d+)`)
	tpsRe        = regexp.MustCompile(` TPS: (\d+) \+/- (\d+)`)
	latencyRe    = regexp.MustCompile(` Latency: (\d+) \+/- (\d+)`)
	faultsRe     = regexp.MustCompile(`Faults: (\d+)`)
	committeeRe  = regexp.MustCompile(`Committee size: (\d+)`)
	shardsRe     = regexp.MustCompile(`Shards per node: (\d+)`)
	maxLatencyRe = regexp.MustCompile(`Max latency: (\d+)`)
)

// Series is one error-barred line of a plot.
type Series struct {
	Label string
	X     []float64
	Y     []float64
	YErr  []float64
}

// LabelFunc derives a series legend label from an aggregated record.
type LabelFunc func(data string) string

// LatencySeries extracts a latency-versus-throughput series from one
// aggregated record.
func LatencySeries(data string, label LabelFunc) (Series, error) {
	return makeSeries(data, latencyRe, label(data))
}

// TPSSeries extracts a throughput-versus-scale series from one aggregated
// record.
func TPSSeries(data string, label LabelFunc) (Series, error) {
	return makeSeries(data, tpsRe, label(data))
}

func makeSeries(data string, valueRe *regexp.Regexp, label string) (Series, error) {
	xs := variableRe.FindAllStringSubmatch(data, -1)
	vals := valueRe.FindAllStringSubmatch(data, -1)
	if len(xs) == 0 || len(xs) != len(vals) {
		return Series{}, fmt.Errorf("unequal number of x, y, and y_err values")
	}

	s := Series{Label: label}
	for i := range xs {
		s.X = append(s.X, toFloat(xs[i][1]))
		s.Y = append(s.Y, toFloat(vals[i][1]))
		s.YErr = append(s.YErr, toFloat(vals[i][2]))
	}
	return s, nil
}

// NodesLabel labels a series by its committee size.
func NodesLabel(data string) string {
	x := first(committeeRe, data)
	return fmt.Sprintf("%s nodes%s", x, faultsSuffix(data))
}

// ShardsLabel labels a series by its shards per node.
func ShardsLabel(data string) string {
	x := first(shardsRe, data)
	return fmt.Sprintf("%s shards%s", x, faultsSuffix(data))
}

// MaxLatencyLabel labels a series by its latency cap.
func MaxLatencyLabel(data string) string {
	x, _ := strconv.Atoi(first(maxLatencyRe, data))
	p := message.NewPrinter(language.English)
	return p.Sprintf("Latency cap: %d ms", x) + faultsSuffix(data)
}

func faultsSuffix(data string) string {
	f := first(faultsRe, data)
	if f == "" || f == "0" {
		return ""
	}
	return fmt.Sprintf(" (%s faulty)", f)
}

func first(re *regexp.Regexp, data string) string {
	if m := re.FindStringSubmatch(data); m != nil {
		return m[1]
	}
	return ""
}

func toFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

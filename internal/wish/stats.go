package wish

import (
	"math"
	"sort"
	"time"
)

// Counter is the caller-owned aggregate: a histogram of trial lengths. The
// engine never touches one; the run helpers below feed it on the caller's
// behalf.
type Counter map[int]int

// Add records one completed trial of the given length.
func (c Counter) Add(draws int) { c[draws]++ }

// Total is the number of recorded trials.
func (c Counter) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Clear drops all recorded trials.
func (c Counter) Clear() {
	for k := range c {
		delete(c, k)
	}
}

// Stats summarizes the trial lengths of a run.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// raw samples, kept for callers that need per-trial metrics
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// population variance
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if p <= 0 || n == 1 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: cp,
	}
}

// RunTrials runs exactly n trials on the Sim, feeding the counter if one is
// given, and returns summary stats.
func RunTrials(sim *Sim, n int, c Counter) (Stats, error) {
	if n <= 0 {
		return Stats{}, nil
	}
	samples := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := sim.RollUntilGoal()
		if err != nil {
			return Stats{}, err
		}
		samples[i] = v
		if c != nil {
			c.Add(v)
		}
	}
	return calcStats(samples), nil
}

// RunForBudget runs trials until the wall-clock budget elapses, doubling the
// batch size between checks so the clock is read rarely. Per-trial cost
// varies wildly with the goal shape, so the batch starts small.
func RunForBudget(sim *Sim, budget time.Duration, c Counter) (Stats, error) {
	var samples []int
	limit := 100
	start := time.Now()
	for time.Since(start) < budget {
		for i := 0; i < limit; i++ {
			v, err := sim.RollUntilGoal()
			if err != nil {
				return Stats{}, err
			}
			samples = append(samples, v)
			if c != nil {
				c.Add(v)
			}
		}
		limit *= 2
	}
	return calcStats(samples), nil
}

package wish

// Outcome is one of the five pool results a single draw can land in.
type Outcome uint8

const (
	OutTopFocus Outcome = iota
	OutTop
	OutMidFocus
	OutMid
	OutFiller
)

// distWeightTotal is the weight denominator: rates are per-mille and splits
// are percentages, so per-mille * percent lands in parts-per-100000 and the
// whole table stays in integer math.
const distWeightTotal = 100_000

// distTable is a cumulative weighted-choice structure over the five
// outcomes. Built once at Sim construction for the regimes whose
// probabilities are constant; never mutated afterwards.
type distTable struct {
	cum [5]int
}

// newDistTable derives the five-way outcome weights from the per-mille tier
// rates and the focus split. Filler is the residual, which construction-time
// validation keeps non-negative.
func newDistTable(topRate, midRate int, split [2]int) (distTable, error) {
	if topRate < 0 || midRate < 0 || topRate+midRate > 1000 {
		return distTable{}, ErrRateRange
	}
	w := [5]int{
		topRate * split[0],
		topRate * split[1],
		midRate * split[0],
		midRate * split[1],
	}
	w[4] = distWeightTotal - (topRate+midRate)*100

	var t distTable
	run := 0
	for i, v := range w {
		run += v
		t.cum[i] = run
	}
	if run != distWeightTotal {
		return distTable{}, ErrSplitSum
	}
	return t, nil
}

// sample picks one outcome by cumulative weight.
func (t distTable) sample(rng RandomSource) Outcome {
	r := rng.IntN(distWeightTotal)
	for i, c := range t.cum {
		if r < c {
			return Outcome(i)
		}
	}
	return OutFiller
}

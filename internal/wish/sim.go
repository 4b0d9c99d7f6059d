package wish

// maxTrialDraws is the safety cutoff for a single trial. A goal that passed
// the availability check converges orders of magnitude earlier; hitting the
// ceiling means a broken configuration and fails loudly instead of hanging.
const maxTrialDraws = 1_000_000

// Sim runs trials against one banner and one normalized goal. Construction
// is more expensive than a draw (goal expansion, table building); build one
// Sim and run many trials on it. A Sim is not safe for concurrent use, but
// separate Sims are fully independent.
type Sim struct {
	banner Banner
	goal   CustomGoal
	rng    RandomSource

	// outcome tables for the soft/hard regime; unused under the escalating
	// regime, where probabilities change every draw.
	normal distTable
	soft   distTable

	scratch goalScratch
}

// goalScratch is the per-trial goal progress, reset in place at trial start
// so the hot loop never allocates.
type goalScratch struct {
	needed [4]bool
	copies [4][]int
}

func (s *goalScratch) met() bool {
	return !s.needed[0] && !s.needed[1] && !s.needed[2] && !s.needed[3]
}

// NewSim validates the inputs, normalizes the goal against the banner and
// builds the sampling tables. The goal must be available on the banner;
// constructing a Sim for an unreachable goal is a caller error and is
// rejected here rather than detected mid-trial.
func NewSim(banner Banner, goal Goal) (*Sim, error) {
	return newSim(banner, goal, DefaultRNG())
}

// NewSeededSim is NewSim with a deterministic random stream, for
// reproducible runs and statistical tests.
func NewSeededSim(banner Banner, goal Goal, seed uint64) (*Sim, error) {
	return newSim(banner, goal, NewSeededRNG(seed))
}

func newSim(banner Banner, goal Goal, rng RandomSource) (*Sim, error) {
	if err := banner.Validate(); err != nil {
		return nil, err
	}
	if !goal.IsAvailable(banner) {
		return nil, ErrGoalUnavailable
	}

	s := &Sim{
		banner: banner,
		goal:   goal.AsCustom(banner),
		rng:    rng,
	}
	if banner.Model == PitySoftHard {
		var err error
		if s.normal, err = newDistTable(banner.TopRate, banner.MidRate, banner.Split); err != nil {
			return nil, err
		}
		if s.soft, err = newDistTable(banner.SoftRate, banner.MidRate, banner.Split); err != nil {
			return nil, err
		}
	}
	for i := range s.scratch.copies {
		s.scratch.copies[i] = make([]int, 0, len(s.goal.Parts))
	}
	return s, nil
}

// Banner returns the configuration the Sim was built with.
func (s *Sim) Banner() Banner { return s.banner }

// Goal returns a copy of the normalized goal.
func (s *Sim) Goal() CustomGoal { return s.goal.clone() }

func (s *Sim) resetScratch() {
	for i := range s.scratch.copies {
		s.scratch.needed[i] = false
		s.scratch.copies[i] = s.scratch.copies[i][:0]
	}
	for _, p := range s.goal.Parts {
		if p.Copies <= 0 {
			continue
		}
		s.scratch.copies[p.Type] = append(s.scratch.copies[p.Type], p.Copies)
		s.scratch.needed[p.Type] = true
	}
}

// RollUntilGoal runs one trial: draws until the goal is met and returns the
// number of draws taken, always at least 1.
func (s *Sim) RollUntilGoal() (int, error) {
	// Pity counts start at 1: "this is the Nth draw since the last hit of
	// that tier".
	topCount, midCount := 1, 1
	topGuar, midGuar := false, false
	fatePoints := 0
	bonusPoints := 0

	draws := 0
	s.resetScratch()
	for {
		out := s.sampleOutcome(topCount, midCount, topGuar, midGuar)

		switch out {
		case OutTopFocus:
			if s.banner.GuaranteedFocus && !topGuar {
				bonusPoints = 0
			}
			topCount = 1
			midCount++
			topGuar = false
		case OutTop:
			topCount = 1
			midCount++
			switch {
			case !s.banner.GuaranteedFocus:
				topGuar = true
			case bonusPoints < 2:
				bonusPoints++
				topGuar = true
			case bonusPoints == 2:
				if s.rng.Float64() < 0.5 {
					bonusPoints = 0
					topGuar = false
					out = OutTopFocus
				} else {
					bonusPoints++
					topGuar = true
				}
			default:
				bonusPoints = 0
				topGuar = false
				out = OutTopFocus
			}
		case OutMidFocus:
			topCount++
			midCount = 1
			midGuar = false
		case OutMid:
			topCount++
			midCount = 1
			midGuar = true
		default:
			topCount++
			midCount++
		}

		if s.banner.EpitomizedPath {
			path := (out == OutTop || out == OutTopFocus) && fatePoints >= 1
			fatePoints += s.award(out, path)
		} else {
			s.award(out, false)
		}

		draws++
		if s.scratch.met() {
			return draws, nil
		}
		if draws >= maxTrialDraws {
			return draws, ErrTrialCeiling
		}
	}
}

// award resolves which concrete focus slot (if any) the sampled outcome hit
// and updates the goal scratch. path redirects a top hit to the epitomized
// slot (the first top-weapon slot). The return value is the fate-point
// adjustment: +1 for a top hit that missed the selected slot, -1 when the
// path forced the award.
func (s *Sim) award(out Outcome, path bool) int {
	if out == OutFiller || out == OutMid {
		return 0
	}
	if out == OutTop && !path {
		return 1
	}

	var slots int
	if out == OutTopFocus || path {
		slots = s.banner.topFocusSlots()
	} else {
		slots = s.banner.midFocusSlots()
	}
	if slots == 0 {
		// a focus hit in a tier with no focus slots tracks nothing
		return 0
	}
	which := 0
	if !path {
		which = s.rng.IntN(slots)
	}

	// map the combined slot index into (category, slot), category-major
	var idx, idy int
	switch {
	case out == OutTopFocus && which < s.banner.FocusSizes[0]:
		idx, idy = 0, which
	case out == OutTopFocus || path:
		idx, idy = 1, which-s.banner.FocusSizes[0]
	case which < s.banner.FocusSizes[2]:
		idx, idy = 2, which
	default:
		idx, idy = 3, which-s.banner.FocusSizes[2]
	}

	if idy >= 0 && idy < len(s.scratch.copies[idx]) {
		if s.scratch.copies[idx][idy] > 1 {
			s.scratch.copies[idx][idy]--
		} else {
			s.scratch.copies[idx] = append(s.scratch.copies[idx][:idy], s.scratch.copies[idx][idy+1:]...)
			if s.goal.Kind == GoalAny {
				// any satisfied part ends the trial
				s.scratch.needed = [4]bool{}
			} else if len(s.scratch.copies[idx]) == 0 {
				s.scratch.needed[idx] = false
			}
		}
	}

	switch {
	case path:
		return -1
	case idx == 1 && which != 0:
		return 1
	default:
		return 0
	}
}

func (s *Sim) sampleOutcome(topCount, midCount int, topGuar, midGuar bool) Outcome {
	if s.banner.Model == PitySoftHard {
		return s.sampleSoftHard(topCount, midCount, topGuar, midGuar)
	}
	return s.sampleEscalating(topCount, midCount, topGuar, midGuar)
}

// sampleEscalating composes the probabilities directly since they move every
// draw past the pity threshold. Rates past 1000 per-mille behave as
// certainty through the layered comparison.
func (s *Sim) sampleEscalating(topCount, midCount int, topGuar, midGuar bool) Outcome {
	topRate := s.banner.TopRate
	if topCount > s.banner.TopPity {
		topRate += (topCount - s.banner.TopPity) * 10 * s.banner.TopRate
	}
	midRate := s.banner.MidRate
	if midCount > s.banner.MidPity {
		midRate += (midCount - s.banner.MidPity) * 10 * s.banner.MidRate
	}

	topP := float64(topRate) / 1000
	midP := float64(midRate) / 1000
	choice := s.rng.Float64()
	switch {
	case choice < topP && topGuar:
		return OutTopFocus
	case choice < topP:
		if s.focusSplit() {
			return OutTopFocus
		}
		return OutTop
	case choice < topP+midP && midGuar:
		return OutMidFocus
	case choice < topP+midP:
		if s.focusSplit() {
			return OutMidFocus
		}
		return OutMid
	default:
		return OutFiller
	}
}

// sampleSoftHard uses the precomputed tables; the hard pities short-circuit
// the tier outright and a guarantee flag promotes a non-focus hit.
func (s *Sim) sampleSoftHard(topCount, midCount int, topGuar, midGuar bool) Outcome {
	if topCount >= s.banner.HardAt {
		if topGuar || s.focusSplit() {
			return OutTopFocus
		}
		return OutTop
	}
	if midCount >= s.banner.MidPity {
		if midGuar || s.focusSplit() {
			return OutMidFocus
		}
		return OutMid
	}

	table := s.normal
	if topCount >= s.banner.SoftAt {
		table = s.soft
	}
	out := table.sample(s.rng)
	if topGuar && out == OutTop {
		out = OutTopFocus
	}
	if midGuar && out == OutMid {
		out = OutMidFocus
	}
	return out
}

// focusSplit is the Bernoulli draw deciding focus vs non-focus within a tier.
func (s *Sim) focusSplit() bool {
	return s.rng.Float64()*100 < float64(s.banner.Split[0])
}

package wish

// PityModel selects which of the two pity regimes a banner uses.
type PityModel uint8

const (
	// PityEscalating grows the tier rate linearly once the pity threshold is
	// passed: eff = rate + (count - pity) * 10 * rate, uncapped.
	PityEscalating PityModel = iota
	// PitySoftHard keeps the base rate until SoftAt, uses the flat SoftRate
	// from SoftAt on, and forces the top tier outright at HardAt.
	PitySoftHard
)

// Banner holds the immutable parameters of one summoning pool. All rates are
// in parts-per-thousand: TopRate=6 means 0.6% per draw.
//
// FocusSizes is indexed by ItemType. A negative size is the "unset" sentinel
// coming from an unfinished edit and is rejected by Validate.
type Banner struct {
	FocusSizes [4]int
	TopRate    int
	MidRate    int
	Split      [2]int // focus / non-focus percentage, sums to 100
	Model      PityModel

	// escalating regime thresholds
	TopPity int
	// MidPity is the mid-tier threshold in both regimes; under PitySoftHard
	// it acts as a hard mid pity.
	MidPity int

	// soft/hard regime (top tier only)
	SoftAt   int
	SoftRate int // per-mille
	HardAt   int

	// GuaranteedFocus accumulates bonus points on non-focus top hits that can
	// convert a later top hit into a focus one.
	GuaranteedFocus bool
	// EpitomizedPath accumulates fate points toward the first top-weapon slot.
	EpitomizedPath bool
}

// CharacterBanner is the escalating-rate character pool: one top focus
// character, three mid focus characters.
func CharacterBanner() Banner {
	return Banner{
		FocusSizes: [4]int{1, 0, 3, 0},
		TopRate:    6,
		MidRate:    51,
		Split:      [2]int{55, 45},
		Model:      PityEscalating,
		TopPity:    73,
		MidPity:    8,
	}
}

// WeaponBanner is the escalating-rate weapon pool with the epitomized path
// mechanic enabled.
func WeaponBanner() Banner {
	return Banner{
		FocusSizes:     [4]int{0, 2, 0, 5},
		TopRate:        7,
		MidRate:        60,
		Split:          [2]int{75, 25},
		Model:          PityEscalating,
		TopPity:        62,
		MidPity:        7,
		EpitomizedPath: true,
	}
}

// StandardBanner has no focus mechanic; it is modeled by putting the whole
// pool in focus with a 100/0 split.
func StandardBanner() Banner {
	return Banner{
		FocusSizes: [4]int{5, 10, 16, 18},
		TopRate:    6,
		MidRate:    51,
		Split:      [2]int{100, 0},
		Model:      PityEscalating,
		TopPity:    73,
		MidPity:    8,
	}
}

// CharacterBannerSoftHard is the character pool expressed in the soft/hard
// pity format: base 0.6%, flat 32% from draw 74, certain at draw 90.
func CharacterBannerSoftHard() Banner {
	return Banner{
		FocusSizes: [4]int{1, 0, 3, 0},
		TopRate:    6,
		MidRate:    51,
		Split:      [2]int{55, 45},
		Model:      PitySoftHard,
		MidPity:    10,
		SoftAt:     74,
		SoftRate:   320,
		HardAt:     90,
	}
}

// Validate checks the structural constraints of the banner. A banner that
// fails here must not be used to construct a Sim.
func (b Banner) Validate() error {
	for _, n := range b.FocusSizes {
		if n < 0 {
			return ErrFocusUnset
		}
		if n > 127 {
			return ErrFocusRange
		}
	}
	if b.Split[0] < 0 || b.Split[1] < 0 || b.Split[0]+b.Split[1] != 100 {
		return ErrSplitSum
	}
	if b.TopRate < 1 || b.TopRate > 999 || b.MidRate < 1 || b.MidRate > 999 {
		return ErrRateRange
	}
	if b.TopRate+b.MidRate > 1000 {
		return ErrRateRange
	}
	if b.MidPity < 1 {
		return ErrPityConfig
	}
	switch b.Model {
	case PityEscalating:
		if b.TopPity < 1 {
			return ErrPityConfig
		}
	case PitySoftHard:
		if b.HardAt < 1 || b.SoftAt < 0 || b.SoftAt >= b.HardAt {
			return ErrPityConfig
		}
		if b.SoftRate < 1 || b.SoftRate > 1000 || b.SoftRate+b.MidRate > 1000 {
			return ErrPityConfig
		}
	default:
		return ErrPityConfig
	}
	return nil
}

// topFocusSlots and midFocusSlots are the combined slot counts used when
// resolving which concrete focus item a tier hit landed on.
func (b Banner) topFocusSlots() int { return b.FocusSizes[0] + b.FocusSizes[1] }
func (b Banner) midFocusSlots() int { return b.FocusSizes[2] + b.FocusSizes[3] }

package preset

import (
	"fmt"

	"github.com/xtding233/wishsim-backend/internal/wish"
)

// RawPreset is one banner preset file as loaded from YAML. Fields left out
// of a named preset fall through to the values in default.yaml.
type RawPreset struct {
	Version string     `yaml:"version"`
	Banner  *RawBanner `yaml:"banner,omitempty"`
	Notes   string     `yaml:"notes,omitempty"`
}

type RawBanner struct {
	FocusSizes      []int    `yaml:"focus_sizes,omitempty" validate:"omitempty,len=4,dive,min=0,max=127"`
	TopRate         *int     `yaml:"top_rate,omitempty" validate:"omitempty,min=1,max=999"`
	MidRate         *int     `yaml:"mid_rate,omitempty" validate:"omitempty,min=1,max=999"`
	Split           []int    `yaml:"split,omitempty" validate:"omitempty,len=2,dive,min=0,max=100"`
	Pity            *RawPity `yaml:"pity,omitempty"`
	GuaranteedFocus *bool    `yaml:"guaranteed_focus,omitempty"`
	EpitomizedPath  *bool    `yaml:"epitomized_path,omitempty"`
}

type RawPity struct {
	Model    string `yaml:"model,omitempty" validate:"omitempty,oneof=escalating soft_hard"`
	TopPity  *int   `yaml:"top_pity,omitempty" validate:"omitempty,min=1,max=65535"`
	MidPity  *int   `yaml:"mid_pity,omitempty" validate:"omitempty,min=1,max=65535"`
	SoftAt   *int   `yaml:"soft_at,omitempty" validate:"omitempty,min=0,max=65535"`
	SoftRate *int   `yaml:"soft_rate,omitempty" validate:"omitempty,min=1,max=1000"`
	HardAt   *int   `yaml:"hard_at,omitempty" validate:"omitempty,min=1,max=65535"`
}

// ToBanner converts the merged raw form into the engine's banner value.
// Structural validation happens again in wish.Banner.Validate; this only
// checks the shape is complete enough to convert.
func (r RawPreset) ToBanner() (wish.Banner, error) {
	if r.Banner == nil {
		return wish.Banner{}, fmt.Errorf("preset has no banner section")
	}
	raw := r.Banner
	if len(raw.FocusSizes) != 4 || raw.TopRate == nil || raw.MidRate == nil || len(raw.Split) != 2 {
		return wish.Banner{}, fmt.Errorf("preset is missing focus_sizes, rates or split")
	}
	if raw.Pity == nil {
		return wish.Banner{}, fmt.Errorf("preset has no pity section")
	}

	b := wish.Banner{
		TopRate: *raw.TopRate,
		MidRate: *raw.MidRate,
	}
	copy(b.FocusSizes[:], raw.FocusSizes)
	b.Split[0], b.Split[1] = raw.Split[0], raw.Split[1]

	switch raw.Pity.Model {
	case "", "escalating":
		b.Model = wish.PityEscalating
		if raw.Pity.TopPity == nil || raw.Pity.MidPity == nil {
			return wish.Banner{}, fmt.Errorf("escalating pity needs top_pity and mid_pity")
		}
		b.TopPity = *raw.Pity.TopPity
		b.MidPity = *raw.Pity.MidPity
	case "soft_hard":
		b.Model = wish.PitySoftHard
		if raw.Pity.SoftAt == nil || raw.Pity.SoftRate == nil || raw.Pity.HardAt == nil || raw.Pity.MidPity == nil {
			return wish.Banner{}, fmt.Errorf("soft_hard pity needs soft_at, soft_rate, hard_at and mid_pity")
		}
		b.SoftAt = *raw.Pity.SoftAt
		b.SoftRate = *raw.Pity.SoftRate
		b.HardAt = *raw.Pity.HardAt
		b.MidPity = *raw.Pity.MidPity
	default:
		return wish.Banner{}, fmt.Errorf("unknown pity model %q", raw.Pity.Model)
	}

	if raw.GuaranteedFocus != nil {
		b.GuaranteedFocus = *raw.GuaranteedFocus
	}
	if raw.EpitomizedPath != nil {
		b.EpitomizedPath = *raw.EpitomizedPath
	}
	return b, nil
}

// mergeRaw deep-merges a named preset over the defaults: 'b' wins where it
// provides a value, slices replace wholesale.
func mergeRaw(a, b RawPreset) RawPreset {
	out := a
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	switch {
	case out.Banner == nil && b.Banner != nil:
		c := *b.Banner
		out.Banner = &c
	case out.Banner != nil && b.Banner != nil:
		merged := *out.Banner
		if len(b.Banner.FocusSizes) > 0 {
			merged.FocusSizes = append([]int(nil), b.Banner.FocusSizes...)
		}
		if b.Banner.TopRate != nil {
			merged.TopRate = b.Banner.TopRate
		}
		if b.Banner.MidRate != nil {
			merged.MidRate = b.Banner.MidRate
		}
		if len(b.Banner.Split) > 0 {
			merged.Split = append([]int(nil), b.Banner.Split...)
		}
		if b.Banner.Pity != nil {
			merged.Pity = mergePity(merged.Pity, b.Banner.Pity)
		}
		if b.Banner.GuaranteedFocus != nil {
			merged.GuaranteedFocus = b.Banner.GuaranteedFocus
		}
		if b.Banner.EpitomizedPath != nil {
			merged.EpitomizedPath = b.Banner.EpitomizedPath
		}
		out.Banner = &merged
	}
	return out
}

func mergePity(a, b *RawPity) *RawPity {
	if a == nil {
		c := *b
		return &c
	}
	merged := *a
	if b.Model != "" && b.Model != merged.Model {
		// switching models drops the other model's thresholds instead of
		// mixing the two schemes
		merged = RawPity{Model: b.Model, MidPity: merged.MidPity}
	}
	if b.TopPity != nil {
		merged.TopPity = b.TopPity
	}
	if b.MidPity != nil {
		merged.MidPity = b.MidPity
	}
	if b.SoftAt != nil {
		merged.SoftAt = b.SoftAt
	}
	if b.SoftRate != nil {
		merged.SoftRate = b.SoftRate
	}
	if b.HardAt != nil {
		merged.HardAt = b.HardAt
	}
	return &merged
}

package server

import (
	"fmt"

	"github.com/xtding233/wishsim-backend/internal/wish"
)

// BannerDTO is the JSON shape of a banner on the wire. Rates are per-mille,
// split halves are percentages, matching the engine's units.
type BannerDTO struct {
	FocusSizes      []int  `json:"focus_sizes" validate:"len=4,dive,min=0,max=127"`
	TopRate         int    `json:"top_rate" validate:"min=1,max=999"`
	MidRate         int    `json:"mid_rate" validate:"min=1,max=999"`
	Split           []int  `json:"split" validate:"len=2,dive,min=0,max=100"`
	Model           string `json:"model" validate:"omitempty,oneof=escalating soft_hard"`
	TopPity         int    `json:"top_pity,omitempty"`
	MidPity         int    `json:"mid_pity,omitempty"`
	SoftAt          int    `json:"soft_at,omitempty"`
	SoftRate        int    `json:"soft_rate,omitempty"`
	HardAt          int    `json:"hard_at,omitempty"`
	GuaranteedFocus bool   `json:"guaranteed_focus,omitempty"`
	EpitomizedPath  bool   `json:"epitomized_path,omitempty"`
}

func modelName(m wish.PityModel) string {
	if m == wish.PitySoftHard {
		return "soft_hard"
	}
	return "escalating"
}

func (d BannerDTO) toBanner() (wish.Banner, error) {
	b := wish.Banner{
		TopRate:         d.TopRate,
		MidRate:         d.MidRate,
		TopPity:         d.TopPity,
		MidPity:         d.MidPity,
		SoftAt:          d.SoftAt,
		SoftRate:        d.SoftRate,
		HardAt:          d.HardAt,
		GuaranteedFocus: d.GuaranteedFocus,
		EpitomizedPath:  d.EpitomizedPath,
	}
	if len(d.FocusSizes) != 4 || len(d.Split) != 2 {
		return wish.Banner{}, fmt.Errorf("banner needs 4 focus_sizes and a 2-way split")
	}
	copy(b.FocusSizes[:], d.FocusSizes)
	b.Split[0], b.Split[1] = d.Split[0], d.Split[1]

	switch d.Model {
	case "", "escalating":
		b.Model = wish.PityEscalating
	case "soft_hard":
		b.Model = wish.PitySoftHard
	default:
		return wish.Banner{}, fmt.Errorf("unknown pity model %q", d.Model)
	}
	return b, b.Validate()
}

func bannerToDTO(b wish.Banner) BannerDTO {
	return BannerDTO{
		FocusSizes:      b.FocusSizes[:],
		TopRate:         b.TopRate,
		MidRate:         b.MidRate,
		Split:           b.Split[:],
		Model:           modelName(b.Model),
		TopPity:         b.TopPity,
		MidPity:         b.MidPity,
		SoftAt:          b.SoftAt,
		SoftRate:        b.SoftRate,
		HardAt:          b.HardAt,
		GuaranteedFocus: b.GuaranteedFocus,
		EpitomizedPath:  b.EpitomizedPath,
	}
}

// PartDTO is one custom-goal requirement.
type PartDTO struct {
	Type   string `json:"type"`
	Copies int    `json:"copies"`
}

// GoalDTO carries either a preset name or a custom part list. When both are
// present the custom parts win.
type GoalDTO struct {
	Preset string    `json:"preset,omitempty"`
	Copies int       `json:"copies,omitempty"`
	Kind   string    `json:"kind,omitempty"` // "any" or "all"
	Parts  []PartDTO `json:"parts,omitempty"`
}

func (d GoalDTO) toGoal() (wish.Goal, error) {
	if len(d.Parts) > 0 {
		var kind wish.GoalKind
		switch d.Kind {
		case "", "any":
			kind = wish.GoalAny
		case "all":
			kind = wish.GoalAll
		default:
			return wish.Goal{}, fmt.Errorf("unknown goal kind %q", d.Kind)
		}
		cg := wish.CustomGoal{Kind: kind}
		for _, p := range d.Parts {
			it, err := wish.ParseItemType(p.Type)
			if err != nil {
				return wish.Goal{}, err
			}
			if p.Copies < 0 {
				return wish.Goal{}, fmt.Errorf("part copies must be non-negative")
			}
			cg.AddPart(wish.Part{Type: it, Copies: p.Copies})
		}
		return wish.CustomGoalOf(cg), nil
	}

	if d.Preset == "" {
		return wish.DefaultGoal(), nil
	}
	p, err := wish.ParsePreset(d.Preset)
	if err != nil {
		return wish.Goal{}, err
	}
	copies := d.Copies
	if copies < 1 {
		copies = 1
	}
	return wish.PresetGoal(p, copies), nil
}

func goalToDTO(g wish.Goal) GoalDTO {
	if g.Custom != nil {
		kind := "any"
		if g.Custom.Kind == wish.GoalAll {
			kind = "all"
		}
		parts := make([]PartDTO, 0, len(g.Custom.Parts))
		for _, p := range g.Custom.Parts {
			parts = append(parts, PartDTO{Type: p.Type.String(), Copies: p.Copies})
		}
		return GoalDTO{Kind: kind, Parts: parts}
	}
	return GoalDTO{Preset: g.Preset.String(), Copies: g.Copies}
}

package wish

import "fmt"

// ItemType is one of the four goal-relevant item categories. The numeric
// order matters: it indexes Banner.FocusSizes and the goal scratch arrays.
type ItemType uint8

const (
	TopChar ItemType = iota
	TopWeapon
	MidChar
	MidWeapon
)

func (t ItemType) String() string {
	switch t {
	case TopChar:
		return "top_char"
	case TopWeapon:
		return "top_weapon"
	case MidChar:
		return "mid_char"
	case MidWeapon:
		return "mid_weapon"
	}
	return fmt.Sprintf("item_type(%d)", uint8(t))
}

// ParseItemType maps the wire/JSON names back to an ItemType.
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "top_char":
		return TopChar, nil
	case "top_weapon":
		return TopWeapon, nil
	case "mid_char":
		return MidChar, nil
	case "mid_weapon":
		return MidWeapon, nil
	}
	return 0, fmt.Errorf("unknown item type %q", s)
}

// GoalKind is the combinator over the parts of a custom goal.
type GoalKind uint8

const (
	// GoalAny is satisfied as soon as any one part is satisfied.
	GoalAny GoalKind = iota
	// GoalAll is satisfied only when every part is satisfied.
	GoalAll
)

// Part is one requirement: Copies of some focus item in the given category.
// Copies of zero means the part is already satisfied and gets dropped during
// normalization.
type Part struct {
	Type   ItemType
	Copies int
}

// CustomGoal is the flexible goal representation: an ordered part list under
// an Any/All combinator. The order is significant; part i tracks focus slot i
// within its category.
type CustomGoal struct {
	Kind  GoalKind
	Parts []Part
}

// AddPart appends a requirement part.
func (g *CustomGoal) AddPart(p Part) {
	g.Parts = append(g.Parts, p)
}

// SetPart replaces the part at index i.
func (g *CustomGoal) SetPart(i int, p Part) error {
	if i < 0 || i >= len(g.Parts) {
		return fmt.Errorf("goal part index %d out of range", i)
	}
	g.Parts[i] = p
	return nil
}

// RemovePart deletes the part at index i, preserving order.
func (g *CustomGoal) RemovePart(i int) error {
	if i < 0 || i >= len(g.Parts) {
		return fmt.Errorf("goal part index %d out of range", i)
	}
	g.Parts = append(g.Parts[:i], g.Parts[i+1:]...)
	return nil
}

// clone returns a deep copy so that a Sim never aliases caller-owned state.
func (g CustomGoal) clone() CustomGoal {
	out := CustomGoal{Kind: g.Kind}
	out.Parts = append([]Part(nil), g.Parts...)
	return out
}

// Preset names a common goal shape.
type Preset uint8

const (
	AnyTop Preset = iota
	AnyTopChar
	TopCharCopies
	AnyTopWeapon
	TopWeaponCopies
	AnyMid
	AnyMidChar
	MidCharCopies
	AnyMidWeapon
	MidWeaponCopies

	numPresets = iota
)

func (p Preset) String() string {
	switch p {
	case AnyTop:
		return "any_top"
	case AnyTopChar:
		return "any_top_char"
	case TopCharCopies:
		return "top_char_copies"
	case AnyTopWeapon:
		return "any_top_weapon"
	case TopWeaponCopies:
		return "top_weapon_copies"
	case AnyMid:
		return "any_mid"
	case AnyMidChar:
		return "any_mid_char"
	case MidCharCopies:
		return "mid_char_copies"
	case AnyMidWeapon:
		return "any_mid_weapon"
	case MidWeaponCopies:
		return "mid_weapon_copies"
	}
	return fmt.Sprintf("preset(%d)", uint8(p))
}

// ParsePreset maps the wire/JSON names back to a Preset.
func ParsePreset(s string) (Preset, error) {
	for p := Preset(0); p < numPresets; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown goal preset %q", s)
}

// singleTarget says whether the preset aims at one specific focus slot, in
// which case the copy count applies.
func (p Preset) singleTarget() bool {
	switch p {
	case TopCharCopies, TopWeaponCopies, MidCharCopies, MidWeaponCopies:
		return true
	}
	return false
}

// IsAvailable reports whether the preset can be achieved on the banner.
func (p Preset) IsAvailable(b Banner) bool {
	switch p {
	case AnyTop:
		return b.FocusSizes[0] > 0 || b.FocusSizes[1] > 0
	case AnyTopChar, TopCharCopies:
		return b.FocusSizes[0] > 0
	case AnyTopWeapon, TopWeaponCopies:
		return b.FocusSizes[1] > 0
	case AnyMid:
		return b.FocusSizes[2] > 0 || b.FocusSizes[3] > 0
	case AnyMidChar, MidCharCopies:
		return b.FocusSizes[2] > 0
	case AnyMidWeapon, MidWeaponCopies:
		return b.FocusSizes[3] > 0
	}
	return false
}

// Goal is either a preset with a copy count or a fully custom goal. A nil
// Custom field means the preset form is in effect.
type Goal struct {
	Custom *CustomGoal
	Preset Preset
	Copies int
}

// DefaultGoal is one copy of any top-tier focus item.
func DefaultGoal() Goal {
	return Goal{Preset: AnyTop, Copies: 1}
}

// PresetGoal builds the preset form.
func PresetGoal(p Preset, copies int) Goal {
	return Goal{Preset: p, Copies: copies}
}

// CustomGoalOf wraps a custom goal.
func CustomGoalOf(g CustomGoal) Goal {
	return Goal{Custom: &g}
}

// AsCustom expands the goal into the flat part-list form against the
// banner's focus sizes: one part per focus slot in the relevant categories.
// The expansion is deterministic and a custom goal comes back as a clone.
func (g Goal) AsCustom(b Banner) CustomGoal {
	if g.Custom != nil {
		return g.Custom.clone()
	}

	count := 1
	if g.Preset.singleTarget() {
		count = max(g.Copies, 1)
	}

	custom := CustomGoal{Kind: GoalAny}
	addSlots := func(t ItemType, n int) {
		for i := 0; i < n; i++ {
			custom.Parts = append(custom.Parts, Part{Type: t, Copies: count})
		}
	}

	switch g.Preset {
	case AnyTop:
		addSlots(TopChar, b.FocusSizes[0])
		addSlots(TopWeapon, b.FocusSizes[1])
	case AnyTopChar:
		addSlots(TopChar, b.FocusSizes[0])
	case TopCharCopies:
		addSlots(TopChar, 1)
	case AnyTopWeapon:
		addSlots(TopWeapon, b.FocusSizes[1])
	case TopWeaponCopies:
		addSlots(TopWeapon, 1)
	case AnyMid:
		addSlots(MidChar, b.FocusSizes[2])
		addSlots(MidWeapon, b.FocusSizes[3])
	case AnyMidChar:
		addSlots(MidChar, b.FocusSizes[2])
	case MidCharCopies:
		addSlots(MidChar, 1)
	case AnyMidWeapon:
		addSlots(MidWeapon, b.FocusSizes[3])
	case MidWeaponCopies:
		addSlots(MidWeapon, 1)
	}
	return custom
}

// IsAvailable reports whether the goal can be met on the banner. Pure; safe
// to call without constructing a Sim. An All-kind custom goal needs every
// named category populated, an Any-kind goal needs at least one.
func (g Goal) IsAvailable(b Banner) bool {
	if g.Custom == nil {
		return g.Preset.IsAvailable(b)
	}
	anyReachable := false
	anyPart := false
	for _, p := range g.Custom.Parts {
		if p.Copies <= 0 {
			continue
		}
		anyPart = true
		if b.FocusSizes[p.Type] > 0 {
			anyReachable = true
		} else if g.Custom.Kind == GoalAll {
			return false
		}
	}
	return anyPart && anyReachable
}

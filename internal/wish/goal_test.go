package wish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetExpansionAnyTop(t *testing.T) {
	b := CharacterBanner() // focus sizes [1 0 3 0]
	custom := PresetGoal(AnyTop, 1).AsCustom(b)

	require.Equal(t, GoalAny, custom.Kind)
	require.Len(t, custom.Parts, 1)
	assert.Equal(t, Part{Type: TopChar, Copies: 1}, custom.Parts[0])
}

func TestPresetExpansionOnePartPerSlot(t *testing.T) {
	b := WeaponBanner() // focus sizes [0 2 0 5]
	custom := PresetGoal(AnyTopWeapon, 1).AsCustom(b)
	require.Len(t, custom.Parts, 2)

	custom = PresetGoal(AnyMid, 1).AsCustom(b)
	require.Len(t, custom.Parts, 5)
	for _, p := range custom.Parts {
		assert.Equal(t, MidWeapon, p.Type)
		assert.Equal(t, 1, p.Copies)
	}
}

func TestPresetExpansionCopyCount(t *testing.T) {
	b := CharacterBanner()

	// copy count only applies to single-target presets
	custom := PresetGoal(TopCharCopies, 3).AsCustom(b)
	require.Len(t, custom.Parts, 1)
	assert.Equal(t, 3, custom.Parts[0].Copies)

	custom = PresetGoal(AnyMidChar, 3).AsCustom(b)
	require.Len(t, custom.Parts, 3)
	for _, p := range custom.Parts {
		assert.Equal(t, 1, p.Copies)
	}

	// zero clamps to one for single-target presets
	custom = PresetGoal(TopCharCopies, 0).AsCustom(b)
	require.Len(t, custom.Parts, 1)
	assert.Equal(t, 1, custom.Parts[0].Copies)
}

func TestExpansionDeterministic(t *testing.T) {
	b := StandardBanner()
	first := PresetGoal(AnyTop, 1).AsCustom(b)
	second := PresetGoal(AnyTop, 1).AsCustom(b)
	assert.Equal(t, first, second)
}

func TestExpansionIdempotentOnCustom(t *testing.T) {
	g := CustomGoal{Kind: GoalAll, Parts: []Part{
		{Type: TopChar, Copies: 2},
		{Type: MidChar, Copies: 1},
	}}
	got := CustomGoalOf(g).AsCustom(CharacterBanner())
	require.Equal(t, g, got)

	// the expansion is a clone, not an alias
	got.Parts[0].Copies = 99
	assert.Equal(t, 2, g.Parts[0].Copies)
}

func TestEmptyBannerMakesEveryPresetUnavailable(t *testing.T) {
	b := CharacterBanner()
	b.FocusSizes = [4]int{0, 0, 0, 0}
	for p := Preset(0); p < numPresets; p++ {
		assert.Falsef(t, p.IsAvailable(b), "preset %s should be unavailable", p)
	}
}

func TestCustomGoalAvailability(t *testing.T) {
	b := CharacterBanner() // focus sizes [1 0 3 0]

	reachable := Part{Type: TopChar, Copies: 1}
	unreachable := Part{Type: TopWeapon, Copies: 1}

	anyGoal := CustomGoalOf(CustomGoal{Kind: GoalAny, Parts: []Part{reachable, unreachable}})
	assert.True(t, anyGoal.IsAvailable(b))

	allGoal := CustomGoalOf(CustomGoal{Kind: GoalAll, Parts: []Part{reachable, unreachable}})
	assert.False(t, allGoal.IsAvailable(b))

	empty := CustomGoalOf(CustomGoal{Kind: GoalAny})
	assert.False(t, empty.IsAvailable(b))

	// zero-copy parts are already satisfied and do not count
	satisfied := CustomGoalOf(CustomGoal{Kind: GoalAll, Parts: []Part{reachable, {Type: TopWeapon, Copies: 0}}})
	assert.True(t, satisfied.IsAvailable(b))
}

func TestCustomGoalIndexMutation(t *testing.T) {
	var g CustomGoal
	g.AddPart(Part{Type: TopChar, Copies: 1})
	g.AddPart(Part{Type: MidChar, Copies: 2})

	require.NoError(t, g.SetPart(1, Part{Type: MidChar, Copies: 5}))
	assert.Equal(t, 5, g.Parts[1].Copies)

	require.NoError(t, g.RemovePart(0))
	require.Len(t, g.Parts, 1)
	assert.Equal(t, MidChar, g.Parts[0].Type)

	assert.Error(t, g.SetPart(7, Part{}))
	assert.Error(t, g.RemovePart(-1))
}

func TestParseRoundTrips(t *testing.T) {
	for p := Preset(0); p < numPresets; p++ {
		got, err := ParsePreset(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	for _, it := range []ItemType{TopChar, TopWeapon, MidChar, MidWeapon} {
		got, err := ParseItemType(it.String())
		require.NoError(t, err)
		assert.Equal(t, it, got)
	}
	_, err := ParsePreset("nope")
	assert.Error(t, err)
}

package wish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimRejectsUnavailableGoal(t *testing.T) {
	b := CharacterBanner()
	b.FocusSizes = [4]int{0, 0, 0, 0}
	_, err := NewSim(b, DefaultGoal())
	require.ErrorIs(t, err, ErrGoalUnavailable)
}

func TestRollUntilGoalReturnsAtLeastOne(t *testing.T) {
	sim, err := NewSeededSim(CharacterBanner(), PresetGoal(AnyMid, 1), 1)
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		draws, err := sim.RollUntilGoal()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, draws, 1)
	}
}

// With the same seed the random stream is consumed identically until the
// Any-kind goal terminates, so Any can never take longer than All.
func TestAnyNeverSlowerThanAllOnSameStream(t *testing.T) {
	b := CharacterBanner()
	b.FocusSizes = [4]int{1, 1, 0, 0}
	parts := []Part{
		{Type: TopChar, Copies: 1},
		{Type: TopWeapon, Copies: 1},
	}

	for seed := uint64(1); seed <= 20; seed++ {
		anySim, err := NewSeededSim(b, CustomGoalOf(CustomGoal{Kind: GoalAny, Parts: parts}), seed)
		require.NoError(t, err)
		allSim, err := NewSeededSim(b, CustomGoalOf(CustomGoal{Kind: GoalAll, Parts: parts}), seed)
		require.NoError(t, err)

		anyDraws, err := anySim.RollUntilGoal()
		require.NoError(t, err)
		allDraws, err := allSim.RollUntilGoal()
		require.NoError(t, err)
		assert.LessOrEqualf(t, anyDraws, allDraws, "seed %d", seed)
	}
}

// Hard pity makes the top tier certain by draw 90; with the whole split on
// focus, the first top hit always satisfies the goal, so no trial can run
// past 90 draws.
func TestHardPityBoundsTrialLength(t *testing.T) {
	b := CharacterBannerSoftHard() // top 0.6%, hard pity at 90, focus [1 0 3 0]
	b.Split = [2]int{100, 0}

	sim, err := NewSeededSim(b, PresetGoal(AnyTop, 1), 42)
	require.NoError(t, err)

	worst := 0
	for i := 0; i < 10000; i++ {
		draws, err := sim.RollUntilGoal()
		require.NoError(t, err)
		require.LessOrEqual(t, draws, 90)
		if draws > worst {
			worst = draws
		}
	}
	// the ceiling must actually be exercised now and then
	assert.Equal(t, 90, worst)
}

// Raising the pity threshold must not make the goal faster to reach.
func TestPityThresholdMonotonicity(t *testing.T) {
	mean := func(topPity int, seed uint64) float64 {
		b := CharacterBanner()
		b.Split = [2]int{100, 0}
		b.TopPity = topPity
		sim, err := NewSeededSim(b, PresetGoal(TopCharCopies, 1), seed)
		require.NoError(t, err)
		stats, err := RunTrials(sim, 10000, nil)
		require.NoError(t, err)
		return stats.Mean
	}

	early := mean(20, 7)
	late := mean(60, 7)
	assert.Less(t, early, late)
}

func TestSoftHardMonotonicity(t *testing.T) {
	mean := func(softAt, hardAt int) float64 {
		b := CharacterBannerSoftHard()
		b.Split = [2]int{100, 0}
		b.SoftAt = softAt
		b.HardAt = hardAt
		sim, err := NewSeededSim(b, PresetGoal(AnyTop, 1), 11)
		require.NoError(t, err)
		stats, err := RunTrials(sim, 10000, nil)
		require.NoError(t, err)
		return stats.Mean
	}

	early := mean(30, 45)
	late := mean(74, 90)
	assert.Less(t, early, late)
}

// A non-focus top hit flips the guarantee, so with the split entirely on
// non-focus the goal needs at most two top hits.
func TestFocusGuaranteeAfterOffBannerHit(t *testing.T) {
	b := CharacterBanner()
	b.Split = [2]int{0, 100}

	sim, err := NewSeededSim(b, PresetGoal(AnyTop, 1), 3)
	require.NoError(t, err)

	// escalating pity reaches certainty by draw 90 (6 + 17*60 >= 1000), so
	// two top hits take at most 180 draws
	for i := 0; i < 2000; i++ {
		draws, err := sim.RollUntilGoal()
		require.NoError(t, err)
		require.LessOrEqual(t, draws, 180)
	}
}

// With capturing-radiance style accumulation enabled, a long enough run must
// eventually convert an off-focus top hit, so the trial bound above still
// holds in expectation; here we just pin that trials terminate and stay
// plausible.
func TestGuaranteedFocusAccumulation(t *testing.T) {
	b := CharacterBanner()
	b.GuaranteedFocus = true

	sim, err := NewSeededSim(b, PresetGoal(AnyTop, 1), 5)
	require.NoError(t, err)
	stats, err := RunTrials(sim, 5000, nil)
	require.NoError(t, err)
	assert.Greater(t, stats.Mean, 1.0)
	assert.LessOrEqual(t, stats.P99, 400.0)
}

// Epitomized path: fate points force the selected weapon slot, so needing a
// specific weapon can never take more than three top hits once a fate point
// exists. Statistically the path must shorten specific-weapon chases.
func TestEpitomizedPathShortensSpecificWeaponChase(t *testing.T) {
	goal := PresetGoal(TopWeaponCopies, 1)

	withPath := WeaponBanner()
	withoutPath := WeaponBanner()
	withoutPath.EpitomizedPath = false

	pathSim, err := NewSeededSim(withPath, goal, 13)
	require.NoError(t, err)
	plainSim, err := NewSeededSim(withoutPath, goal, 13)
	require.NoError(t, err)

	pathStats, err := RunTrials(pathSim, 10000, nil)
	require.NoError(t, err)
	plainStats, err := RunTrials(plainSim, 10000, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, pathStats.Mean, plainStats.Mean)
}

func TestAllGoalNeedsEveryCopy(t *testing.T) {
	b := CharacterBanner()
	b.Split = [2]int{100, 0}
	goal := CustomGoalOf(CustomGoal{Kind: GoalAll, Parts: []Part{
		{Type: TopChar, Copies: 2},
	}})

	sim, err := NewSeededSim(b, goal, 17)
	require.NoError(t, err)
	single, err := NewSeededSim(b, PresetGoal(TopCharCopies, 1), 17)
	require.NoError(t, err)

	twoStats, err := RunTrials(sim, 5000, nil)
	require.NoError(t, err)
	oneStats, err := RunTrials(single, 5000, nil)
	require.NoError(t, err)

	// two copies should take roughly twice as long on average
	assert.Greater(t, twoStats.Mean, oneStats.Mean*1.5)
}

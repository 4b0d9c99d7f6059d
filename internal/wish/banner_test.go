package wish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinBannersValidate(t *testing.T) {
	for _, b := range []Banner{
		CharacterBanner(),
		WeaponBanner(),
		StandardBanner(),
		CharacterBannerSoftHard(),
	} {
		assert.NoError(t, b.Validate())
	}
}

func TestValidateSplitMustSumTo100(t *testing.T) {
	b := CharacterBanner()
	b.Split = [2]int{60, 30}
	assert.ErrorIs(t, b.Validate(), ErrSplitSum)

	b.Split = [2]int{110, -10}
	assert.ErrorIs(t, b.Validate(), ErrSplitSum)
}

func TestValidateRejectsUnsetFocus(t *testing.T) {
	b := CharacterBanner()
	b.FocusSizes[1] = -1
	assert.ErrorIs(t, b.Validate(), ErrFocusUnset)
}

func TestValidateRateBounds(t *testing.T) {
	b := CharacterBanner()
	b.TopRate = 0
	assert.ErrorIs(t, b.Validate(), ErrRateRange)

	b = CharacterBanner()
	b.TopRate = 600
	b.MidRate = 500
	assert.ErrorIs(t, b.Validate(), ErrRateRange)
}

func TestValidatePityModels(t *testing.T) {
	b := CharacterBanner()
	b.TopPity = 0
	assert.ErrorIs(t, b.Validate(), ErrPityConfig)

	b = CharacterBannerSoftHard()
	b.SoftAt = b.HardAt // no room for the soft window
	assert.ErrorIs(t, b.Validate(), ErrPityConfig)

	b = CharacterBannerSoftHard()
	b.SoftRate = 0
	assert.ErrorIs(t, b.Validate(), ErrPityConfig)
}

func TestNewSimRejectsInvalidBanner(t *testing.T) {
	b := CharacterBanner()
	b.Split = [2]int{99, 0}
	_, err := NewSim(b, DefaultGoal())
	require.ErrorIs(t, err, ErrSplitSum)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectHashDeterministic(t *testing.T) {
	t.Parallel()

	first := CollectHash(120, 7)
	second := CollectHash(120, 7)
	require.Equal(t, first, second)
	assert.Len(t, first, 32)
}

func TestCollectHashChangesWithInputs(t *testing.T) {
	t.Parallel()

	base := CollectHash(120, 7)
	assert.NotEqual(t, base, CollectHash(121, 7))
	assert.NotEqual(t, base, CollectHash(120, 8))
}

func TestTapGainZeroWhenValueMeetsEnergy(t *testing.T) {
	t.Parallel()

	alwaysBonus := func(int) int { return 0 }
	assert.Zero(t, TapGain(10, 10, 10000, 200, alwaysBonus))
	assert.Zero(t, TapGain(11, 10, 10000, 200, alwaysBonus))
}

func TestTapGainZeroWhenBoostExceedsEnergy(t *testing.T) {
	t.Parallel()

	// tapValue 5 fits, but 5*300/100 = 15 does not.
	assert.Zero(t, TapGain(5, 10, 10000, 300, func(int) int { return 0 }))
}

func TestTapGainBaseOrBoosted(t *testing.T) {
	t.Parallel()

	// Roll 100 never passes a 50% (5000/100) chance threshold of 50.
	missRoll := func(int) int { return 100 }
	assert.Equal(t, 5, TapGain(5, 100, 5000, 200, missRoll))

	hitRoll := func(int) int { return 0 }
	assert.Equal(t, 10, TapGain(5, 100, 5000, 200, hitRoll))
}

func TestTapGainNeverExceedsBoostedValue(t *testing.T) {
	t.Parallel()

	for roll := 0; roll <= 100; roll++ {
		roll := roll
		gain := TapGain(4, 50, 7000, 250, func(int) int { return roll })
		assert.LessOrEqual(t, gain, 4*250/100)
	}
}

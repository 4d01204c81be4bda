package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseFamilies(t *testing.T) {
	bullish := []Phase{PhaseBullish, PhaseRecovery, PhaseMarkup, PhaseAccumulation}
	for _, p := range bullish {
		assert.True(t, p.Bullish(), "%s should be bullish", p)
		assert.False(t, p.Bearish(), "%s should not be bearish", p)
	}

	bearish := []Phase{PhaseBearish, PhaseCorrection, PhaseMarkdown, PhaseDistribution}
	for _, p := range bearish {
		assert.True(t, p.Bearish(), "%s should be bearish", p)
		assert.False(t, p.Bullish(), "%s should not be bullish", p)
	}

	for _, p := range []Phase{PhaseSideways, PhaseNeutral} {
		assert.False(t, p.Bullish())
		assert.False(t, p.Bearish())
	}
}

func TestKeyLevelsValidate(t *testing.T) {
	t.Run("accepts ordered levels", func(t *testing.T) {
		levels := KeyLevels{
			StrongSupport:    89,
			Support:          94,
			Pivot:            100,
			Resistance:       106,
			StrongResistance: 111,
		}

		assert.NoError(t, levels.Validate())
	})

	t.Run("rejects inverted support and resistance", func(t *testing.T) {
		levels := KeyLevels{
			StrongSupport:    89,
			Support:          107,
			Pivot:            100,
			Resistance:       106,
			StrongResistance: 111,
		}

		assert.Error(t, levels.Validate())
	})
}

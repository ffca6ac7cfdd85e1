package forwardvol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/calendar-scanner/src/optionmodels"
)

func TestDecompose(t *testing.T) {
	t.Run("rich front month", func(t *testing.T) {
		d, err := Decompose(40, 35, 30, 90)
		assert.NoError(t, err)

		assert.InDelta(t, 32.21, d.ForwardVol, 0.01)
		assert.InDelta(t, 24.18, d.ForwardFactor, 0.01)
		assert.Equal(t, optionmodels.SignalSell, d.Signal)
		assert.True(t, d.HasSignal())
	})

	t.Run("cheap front month", func(t *testing.T) {
		d, err := Decompose(25, 35, 30, 90)
		assert.NoError(t, err)

		assert.Less(t, d.ForwardFactor, 0.0)
		assert.Equal(t, optionmodels.SignalBuy, d.Signal)
	})

	t.Run("flat term structure is neutral", func(t *testing.T) {
		// Equal IVs put the forward vol exactly at the front IV.
		d, err := Decompose(30, 30, 30, 60)
		assert.NoError(t, err)

		assert.InDelta(t, 30.0, d.ForwardVol, 1e-9)
		assert.InDelta(t, 0.0, d.ForwardFactor, 1e-9)
		assert.False(t, d.HasSignal())
	})

	t.Run("back month inside front month has no signal", func(t *testing.T) {
		d, err := Decompose(40, 35, 90, 30)
		assert.NoError(t, err)

		assert.Equal(t, 0.0, d.ForwardVol)
		assert.Equal(t, 0.0, d.ForwardFactor)
		assert.Equal(t, optionmodels.Signal(""), d.Signal)
		assert.False(t, d.HasSignal())
	})

	t.Run("equal expirations have no signal", func(t *testing.T) {
		d, err := Decompose(40, 35, 30, 30)
		assert.NoError(t, err)
		assert.False(t, d.HasSignal())
	})

	t.Run("collapsed forward variance has no signal", func(t *testing.T) {
		// Front variance 0.64*30/365 swamps back variance 0.04*60/365.
		d, err := Decompose(80, 20, 30, 60)
		assert.NoError(t, err)

		assert.Equal(t, 0.0, d.ForwardVol)
		assert.Equal(t, 0.0, d.ForwardFactor)
		assert.False(t, d.HasSignal())
	})

	t.Run("rejects non-positive IV", func(t *testing.T) {
		_, err := Decompose(0, 35, 30, 90)
		assert.Error(t, err)

		_, err = Decompose(40, -1, 30, 90)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive DTE", func(t *testing.T) {
		_, err := Decompose(40, 35, 0, 90)
		assert.Error(t, err)
	})
}

func TestDecomposeExEarnings(t *testing.T) {
	t.Run("strips the crush points", func(t *testing.T) {
		// 60 IV front: the full 15-point haircut applies (cap is 18).
		d, err := DecomposeExEarnings(60, 35, 30, 90, 15)
		assert.NoError(t, err)

		assert.InDelta(t, 45.0, d.FrontIV, 1e-9)
		assert.True(t, d.EarningsAdjusted)
	})

	t.Run("caps the haircut on low vol names", func(t *testing.T) {
		// 40 IV front: 30% cap binds at 12 points, not 15.
		d, err := DecomposeExEarnings(40, 35, 30, 90, 15)
		assert.NoError(t, err)

		assert.InDelta(t, 28.0, d.FrontIV, 1e-9)
	})

	t.Run("adjustment can flip the signal", func(t *testing.T) {
		raw, err := Decompose(40, 35, 30, 90)
		assert.NoError(t, err)
		assert.Equal(t, optionmodels.SignalSell, raw.Signal)

		adjusted, err := DecomposeExEarnings(40, 35, 30, 90, 15)
		assert.NoError(t, err)
		assert.Equal(t, optionmodels.SignalBuy, adjusted.Signal)
	})

	t.Run("zero crush points fall back to the default", func(t *testing.T) {
		d, err := DecomposeExEarnings(60, 35, 30, 90, 0)
		assert.NoError(t, err)
		assert.InDelta(t, 45.0, d.FrontIV, 1e-9)
	})
}

func TestDecomposePair(t *testing.T) {
	front := optionmodels.ExpirationGroup{ATMIV: 40, DTE: 30}
	back := optionmodels.ExpirationGroup{ATMIV: 35, DTE: 90}

	d, err := DecomposePair(front, back)
	assert.NoError(t, err)
	assert.InDelta(t, 24.18, d.ForwardFactor, 0.01)
}

func TestConfigApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	assert.Equal(t, DefaultEarningsCrushPoints, c.EarningsCrushPoints)

	c = Config{EarningsCrushPoints: 10}
	c.ApplyDefaults()
	assert.Equal(t, 10.0, c.EarningsCrushPoints)
}

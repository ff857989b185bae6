package anim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/rhodesepass/passim/internal/anim"
	"github.com/rhodesepass/passim/internal/config"
)

func newClock() (*Clock, *Snapshot) {
	c := NewClock(config.DefaultFirmware())
	c.SetTexts(Texts{NameLen: 8, CodeLen: 12, StaffLen: 5, AuxLen: 40})
	s := &Snapshot{}
	s.Reset()
	return c, s
}

func TestTypewriterRevealTiming(t *testing.T) {
	c, s := newClock()

	// frame 29: nothing revealed yet (name starts at 30)
	for i := 0; i < 29; i++ {
		c.Update(s)
	}
	assert.Equal(t, 0, s.NameChars)

	// frame 30: first character appears
	c.Update(s)
	assert.Equal(t, 1, s.NameChars)

	// frame 33: second character (3 frames per char)
	c.Update(s)
	c.Update(s)
	assert.Equal(t, 1, s.NameChars)
	c.Update(s)
	assert.Equal(t, 2, s.NameChars)
}

func TestTypewriterMonotoneAndClamped(t *testing.T) {
	c, s := newClock()
	prev := Snapshot{}
	for i := 0; i < 500; i++ {
		c.Update(s)
		assert.GreaterOrEqual(t, s.NameChars, prev.NameChars, "name reveal regressed at frame %d", s.FrameCounter)
		assert.GreaterOrEqual(t, s.CodeChars, prev.CodeChars)
		assert.GreaterOrEqual(t, s.StaffChars, prev.StaffChars)
		assert.GreaterOrEqual(t, s.AuxChars, prev.AuxChars)
		prev = *s
	}
	assert.Equal(t, 8, s.NameChars)
	assert.Equal(t, 12, s.CodeChars)
	assert.Equal(t, 5, s.StaffChars)
	assert.Equal(t, 40, s.AuxChars)
}

func TestColorAndLogoFadesSaturate(t *testing.T) {
	c, s := newClock()
	prevRadius := uint32(0)
	prevAlpha := uint8(0)
	for i := 0; i < 300; i++ {
		c.Update(s)
		assert.GreaterOrEqual(t, s.ColorFadeRadius, prevRadius)
		assert.GreaterOrEqual(t, s.LogoAlpha, prevAlpha)
		prevRadius = s.ColorFadeRadius
		prevAlpha = s.LogoAlpha
	}
	assert.Equal(t, uint32(192), s.ColorFadeRadius)
	assert.Equal(t, uint8(255), s.LogoAlpha)
}

func TestBarSweepReachesTarget(t *testing.T) {
	c, s := newClock()
	fw := c.Firmware()
	for i := 0; i < 100; i++ {
		c.Update(s)
	}
	// frame 100: upper line (80+40 not yet done) partially swept, ak bar at 0
	assert.Equal(t, uint32(0), s.AkBarWidth)
	assert.Greater(t, s.UpperLineWidth, uint32(0))
	assert.Less(t, s.UpperLineWidth, fw.Animation.BarsLines.LineWidth)

	for i := 0; i < 100; i++ {
		c.Update(s)
	}
	want := fw.Animation.BarsLines.LineWidth
	assert.Equal(t, want, s.AkBarWidth)
	assert.Equal(t, want, s.UpperLineWidth)
	assert.Equal(t, want, s.LowerLineWidth)
}

func TestArrowStaysInRange(t *testing.T) {
	c, s := newClock()
	for i := 0; i < 1000; i++ {
		c.Update(s)
		assert.Greater(t, s.ArrowY, int32(0), "arrow left range at frame %d", s.FrameCounter)
		assert.LessOrEqual(t, s.ArrowY, ArrowHeight)
	}
}

func TestUpdateToleratesDegenerateTimingTable(t *testing.T) {
	// Zero divisors and non-positive increments can arrive via a loaded
	// timing table; the clock floors them rather than panicking or letting
	// the arrow leave its range.
	fw := config.DefaultFirmware()
	fw.Animation.Eink.Barcode.FramePerState = 0
	fw.Animation.Eink.ClassIcon.FramePerState = 0
	fw.Animation.Arrow.YIncrPerFrame = 0

	c := NewClock(fw)
	s := &Snapshot{}
	s.Reset()
	for i := 0; i < 200; i++ {
		c.Update(s)
		assert.Greater(t, s.ArrowY, int32(0))
		assert.LessOrEqual(t, s.ArrowY, ArrowHeight)
	}
	assert.Equal(t, EinkContent, s.BarcodeState)

	fw.Animation.Arrow.YIncrPerFrame = -3
	c = NewClock(fw)
	s.Reset()
	for i := 0; i < 200; i++ {
		c.Update(s)
		assert.Greater(t, s.ArrowY, int32(0))
		assert.LessOrEqual(t, s.ArrowY, ArrowHeight)
	}
}

func TestEntrySlideIn(t *testing.T) {
	c, s := newClock()
	prev := float32(0)
	for i := 0; i < 49; i++ {
		c.Update(s)
		assert.GreaterOrEqual(t, s.EntryProgress, prev, "entry progress regressed")
		prev = s.EntryProgress
	}
	assert.False(t, s.EntryComplete())
	assert.Greater(t, s.EntryYOffset, int32(0))

	c.Update(s) // frame 50 = entry total
	assert.True(t, s.EntryComplete())
	assert.Equal(t, float32(1.0), s.EntryProgress)
	assert.Equal(t, int32(0), s.EntryYOffset)

	// stays complete
	for i := 0; i < 20; i++ {
		c.Update(s)
	}
	assert.Equal(t, float32(1.0), s.EntryProgress)
	assert.Equal(t, int32(0), s.EntryYOffset)
}

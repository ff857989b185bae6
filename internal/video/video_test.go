package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhodesepass/passim/internal/config"
)

func TestFiniteClipExhausts(t *testing.T) {
	c := NewClip(3, 30, false)
	assert.True(t, c.Advance())
	assert.True(t, c.Advance())
	assert.False(t, c.Advance(), "a finite clip reports exhaustion at its last frame")

	c.SeekToStart()
	assert.Equal(t, 0, c.Frame())
	assert.True(t, c.Advance())
}

func TestLoopingClipWraps(t *testing.T) {
	c := NewClip(2, 30, true)
	for i := 0; i < 10; i++ {
		assert.True(t, c.Advance())
	}
	assert.Less(t, c.Frame(), 2)
}

func TestClipFloorsBadFPS(t *testing.T) {
	c := NewClip(10, 0, true)
	assert.Equal(t, float64(30), c.FPS())
}

func TestPlayerLoadPass(t *testing.T) {
	p := NewPlayer()
	cfg := config.DefaultPass()
	cfg.Loop.File = "bg.mp4"
	cfg.Intro = &config.IntroVideo{Enabled: true, File: "intro.mp4", DurationUs: 1_000_000}

	p.LoadPass(&cfg, 30)
	require.True(t, p.HasIntro())
	require.True(t, p.HasLoop())

	// A 1 s intro at 30 fps is 30 frames: 29 advances then exhaustion.
	for i := 0; i < 29; i++ {
		assert.True(t, p.AdvanceIntroFrame(), "advance %d", i)
	}
	assert.False(t, p.AdvanceIntroFrame())
}

func TestPlayerIntroDurationFallback(t *testing.T) {
	p := NewPlayer()
	cfg := config.DefaultPass()
	cfg.Loop.File = "bg.mp4"
	cfg.Intro = &config.IntroVideo{Enabled: true, File: "intro.mp4"}

	p.LoadPass(&cfg, 50)
	want := int(int64(config.DefaultIntroDurationUs) * 50 / 1_000_000)
	frames := 0
	for p.AdvanceIntroFrame() {
		frames++
	}
	assert.Equal(t, want-1, frames)
}

func TestPlayerWithoutClips(t *testing.T) {
	p := NewPlayer()
	assert.False(t, p.HasIntro())
	assert.False(t, p.AdvanceIntroFrame())
	assert.Equal(t, -1, p.CurrentIntroFrame())
	assert.Equal(t, -1, p.CurrentLoopFrame())
	assert.Equal(t, float64(30), p.LoopFPS(), "missing clips fall back to a sane rate")
}

func TestPlayerReset(t *testing.T) {
	p := NewPlayer()
	cfg := config.DefaultPass()
	cfg.Loop.File = "bg.mp4"
	p.LoadPass(&cfg, 30)

	p.AdvanceLoopFrame()
	p.AdvanceLoopFrame()
	require.Equal(t, 2, p.CurrentLoopFrame())
	p.Reset()
	assert.Equal(t, 0, p.CurrentLoopFrame())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFirmwareTimingTable(t *testing.T) {
	fw := DefaultFirmware()
	assert.Equal(t, uint32(50), fw.Animation.FPS)
	assert.Equal(t, uint32(20000), fw.Animation.StepTimeUs)
	assert.Equal(t, uint32(30), fw.Animation.Typewriter.Name.StartFrame)
	assert.Equal(t, uint32(2), fw.Animation.Typewriter.Aux.FramePerChar)
	assert.Equal(t, uint32(192), fw.Animation.ColorFade.EndValue)
	assert.Equal(t, uint32(280), fw.Animation.BarsLines.LineWidth)
	assert.Equal(t, uint32(360), fw.Overlay.Width)
	assert.Equal(t, uint32(75), fw.Transition.DefaultFrames)
}

func TestLoadFirmwarePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "firmware.yaml")
	body := `
animation:
  fps: 60
  typewriter:
    name:
      start_frame: 10
      frame_per_char: 1
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	fw, err := LoadFirmware(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(60), fw.Animation.FPS)
	assert.Equal(t, uint32(10), fw.Animation.Typewriter.Name.StartFrame)
	// Untouched fields keep the shipped defaults.
	assert.Equal(t, uint32(20000), fw.Animation.StepTimeUs)
	assert.Equal(t, uint32(40), fw.Animation.Typewriter.Code.StartFrame)
}

func TestLoadFirmwareMissingFile(t *testing.T) {
	_, err := LoadFirmware(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pass.yaml")
	body := `
version: 1
loop:
  file: bg.mp4
intro:
  enabled: true
  file: intro.mp4
  duration_us: 3000000
transition_in:
  type: fade
  duration_us: 400000
overlay:
  name: AMIYA
  code: EPASS - R001
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	p, err := LoadPass(path)
	require.NoError(t, err)
	assert.True(t, p.HasIntro())
	assert.Equal(t, "AMIYA", p.Overlay.Name)
	assert.Equal(t, "fade", p.TransitionInType())
	assert.Equal(t, int64(400000), p.TransitionInDurationUs())
	assert.Equal(t, "", p.TransitionLoopType())
	assert.Equal(t, int64(DefaultTransitionDurationUs), p.TransitionLoopDurationUs(),
		"absent transition duration falls back to the default")
	assert.Equal(t, int64(DefaultAppearTimeUs), p.AppearTimeUs(),
		"absent appear time falls back to the default")
}

func TestPassIntroGating(t *testing.T) {
	p := DefaultPass()
	assert.False(t, p.HasIntro())

	p.Intro = &IntroVideo{Enabled: false, File: "intro.mp4"}
	assert.False(t, p.HasIntro(), "a disabled intro is ignored")

	p.Intro = &IntroVideo{Enabled: true}
	assert.False(t, p.HasIntro(), "an intro without a file is ignored")

	p.Intro = &IntroVideo{Enabled: true, File: "intro.mp4"}
	assert.True(t, p.HasIntro())
}

func TestTransitionDurationFallback(t *testing.T) {
	p := DefaultPass()
	assert.Equal(t, int64(DefaultTransitionDurationUs), p.TransitionInDurationUs())
	assert.Equal(t, int64(DefaultTransitionDurationUs), p.TransitionLoopDurationUs())

	p.TransitionIn = &TransitionChoice{Type: "fade"} // duration omitted
	assert.Equal(t, int64(DefaultTransitionDurationUs), p.TransitionInDurationUs())

	p.TransitionIn.DurationUs = 250000
	assert.Equal(t, int64(250000), p.TransitionInDurationUs())
}

func TestSaveLoadPassRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pass.yaml")
	p := DefaultPass()
	p.Loop.File = "bg.mp4"
	p.TransitionLoop = &TransitionChoice{Type: "swipe", DurationUs: 250000}

	require.NoError(t, SavePass(path, &p))
	got, err := LoadPass(path)
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

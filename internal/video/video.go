// Package video provides the frame-indexed video collaborator. Decoding is
// out of scope for the core; a Clip tracks only read position and frame
// rate, which is all the playback machine needs to stay frame-exact. A
// renderer substitutes a blank frame when no pixel source is attached.
package video

import (
	"github.com/rs/zerolog/log"

	"github.com/rhodesepass/passim/internal/config"
)

// Clip is one video stream position: a frame index against a total, at the
// stream's native frame rate.
type Clip struct {
	frames int
	fps    float64
	index  int
	loop   bool
}

// NewClip builds a clip with the given length in frames. A looping clip
// wraps instead of exhausting.
func NewClip(frames int, fps float64, loop bool) *Clip {
	if fps <= 0 {
		fps = 30
	}
	return &Clip{frames: frames, fps: fps, loop: loop}
}

// Advance moves one frame forward. A finite clip reports false once
// exhausted; a looping clip wraps and always reports true.
func (c *Clip) Advance() bool {
	if c.frames <= 0 {
		return false
	}
	c.index++
	if c.index >= c.frames {
		if !c.loop {
			return false
		}
		c.index = 0
	}
	return true
}

// SeekToStart rewinds the clip.
func (c *Clip) SeekToStart() { c.index = 0 }

// Frame returns the current frame index.
func (c *Clip) Frame() int { return c.index }

// FPS returns the clip's native frame rate.
func (c *Clip) FPS() float64 { return c.fps }

// Player manages the intro and loop clips for one pass. It implements the
// playback machine's Source and Seeker interfaces.
type Player struct {
	intro *Clip
	loop  *Clip
}

// NewPlayer builds an empty player; LoadPass attaches clips.
func NewPlayer() *Player { return &Player{} }

// LoadPass derives the clip lengths from the authored config. The loop
// video's length is nominal (it wraps); the intro's length comes from its
// configured duration.
func (p *Player) LoadPass(cfg *config.Pass, fps float64) {
	p.intro = nil
	p.loop = nil

	if cfg.Loop.File != "" {
		p.loop = NewClip(int(fps), fps, true)
		log.Info().Str("file", cfg.Loop.File).Msg("loop video attached")
	} else {
		log.Warn().Msg("no loop video configured")
	}

	if cfg.HasIntro() {
		durUs := cfg.Intro.DurationUs
		if durUs <= 0 {
			durUs = config.DefaultIntroDurationUs
		}
		frames := int(durUs * int64(fps) / 1_000_000)
		if frames < 1 {
			frames = 1
		}
		p.intro = NewClip(frames, fps, false)
		log.Info().Str("file", cfg.Intro.File).Int("frames", frames).Msg("intro video attached")
	}
}

// SetIntro attaches an intro clip directly. Used by tests and callers that
// know the stream geometry.
func (p *Player) SetIntro(c *Clip) { p.intro = c }

// SetLoop attaches a loop clip directly.
func (p *Player) SetLoop(c *Clip) { p.loop = c }

func (p *Player) HasIntro() bool { return p.intro != nil }
func (p *Player) HasLoop() bool  { return p.loop != nil }

func (p *Player) AdvanceIntroFrame() bool {
	if p.intro == nil {
		return false
	}
	return p.intro.Advance()
}

func (p *Player) AdvanceLoopFrame() bool {
	if p.loop == nil {
		return false
	}
	return p.loop.Advance()
}

func (p *Player) SeekIntroToStart() {
	if p.intro != nil {
		p.intro.SeekToStart()
	}
}

func (p *Player) SeekLoopToStart() {
	if p.loop != nil {
		p.loop.SeekToStart()
	}
}

func (p *Player) IntroFPS() float64 {
	if p.intro == nil {
		return 30
	}
	return p.intro.FPS()
}

func (p *Player) LoopFPS() float64 {
	if p.loop == nil {
		return 30
	}
	return p.loop.FPS()
}

// CurrentIntroFrame returns the intro read position, -1 when absent.
func (p *Player) CurrentIntroFrame() int {
	if p.intro == nil {
		return -1
	}
	return p.intro.Frame()
}

// CurrentLoopFrame returns the loop read position, -1 when absent.
func (p *Player) CurrentLoopFrame() int {
	if p.loop == nil {
		return -1
	}
	return p.loop.Frame()
}

// Reset rewinds both clips.
func (p *Player) Reset() {
	p.SeekIntroToStart()
	p.SeekLoopToStart()
}

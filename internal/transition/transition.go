// Package transition derives the per-frame blend parameters for the three
// video switch effects. All functions are pure; the only state is the
// Instance progress counter owned by the playback machine.
package transition

import "github.com/rhodesepass/passim/internal/bezier"

// Kind selects a transition effect.
type Kind uint8

const (
	KindNone Kind = iota
	KindFade
	KindMove
	KindSwipe
)

// ParseKind maps a config string to a Kind. Unrecognized strings mean no
// transition effect.
func ParseKind(s string) Kind {
	switch s {
	case "fade":
		return KindFade
	case "move":
		return KindMove
	case "swipe":
		return KindSwipe
	default:
		return KindNone
	}
}

func (k Kind) String() string {
	switch k {
	case KindFade:
		return "fade"
	case KindMove:
		return "move"
	case KindSwipe:
		return "swipe"
	default:
		return "none"
	}
}

// Phase is a sub-interval of a transition's progress. The three live phases
// are equal-width; the boundaries are firmware constants.
type Phase uint8

const (
	PhaseIn Phase = iota
	PhaseHold
	PhaseOut
	PhaseDone
)

// Firmware phase boundaries. The hold phase is where the video source swap
// happens.
const (
	holdStart float32 = 0.333
	outStart  float32 = 0.667
)

// PhaseFromProgress maps progress in [0,1] to the active phase. Exact
// boundary values belong to the higher phase.
func PhaseFromProgress(progress float32) Phase {
	switch {
	case progress >= 1.0:
		return PhaseDone
	case progress >= outStart:
		return PhaseOut
	case progress >= holdStart:
		return PhaseHold
	default:
		return PhaseIn
	}
}

func (p Phase) String() string {
	switch p {
	case PhaseIn:
		return "in"
	case PhaseHold:
		return "hold"
	case PhaseOut:
		return "out"
	default:
		return "done"
	}
}

// Instance is one active transition: a frame counter against a fixed total,
// plus the one-shot latch recording that the video source swap was
// requested during the hold phase.
type Instance struct {
	Frame         uint32
	TotalFrames   uint32
	Kind          Kind
	VideoSwitched bool
}

// Progress returns frame/total clamped to 1.0. A zero total means the
// transition is already complete.
func (i *Instance) Progress() float32 {
	if i.TotalFrames == 0 {
		return 1.0
	}
	p := float32(i.Frame) / float32(i.TotalFrames)
	if p > 1.0 {
		return 1.0
	}
	return p
}

// Phase returns the phase for the current progress.
func (i *Instance) Phase() Phase {
	return PhaseFromProgress(i.Progress())
}

// Complete reports whether the transition has run its full frame budget.
func (i *Instance) Complete() bool {
	return i.Frame >= i.TotalFrames
}

// Reset re-seeds the instance for a new transition and clears the
// video-switch latch.
func (i *Instance) Reset(kind Kind, totalFrames uint32) {
	i.Frame = 0
	i.TotalFrames = totalFrames
	i.Kind = kind
	i.VideoSwitched = false
}

// FadeAlpha derives the fade effect's overlay alpha: linear ramp to opaque
// over the in phase, opaque hold, linear ramp back out.
func FadeAlpha(progress float32) uint8 {
	switch PhaseFromProgress(progress) {
	case PhaseIn:
		v := progress / holdStart * 255
		if v > 255 {
			v = 255
		}
		return uint8(v)
	case PhaseHold:
		return 255
	case PhaseOut:
		v := (1 - (progress-outStart)/holdStart) * 255
		if v < 0 {
			v = 0
		}
		return uint8(v)
	default:
		return 0
	}
}

// MoveOffset derives the move effect's x offset: eased slide in from width
// to 0, hold at 0, eased slide out to -width.
func MoveOffset(progress float32, width int32) int32 {
	switch PhaseFromProgress(progress) {
	case PhaseIn:
		eased := bezier.EaseOut(progress / holdStart)
		return int32((1 - eased) * float32(width))
	case PhaseHold:
		return 0
	case PhaseOut:
		eased := bezier.EaseIn((progress - outStart) / holdStart)
		return -int32(eased * float32(width))
	default:
		return -width
	}
}

// SwipeProgress derives the swipe effect's reveal ratio: eased sweep to
// fully revealed, hold, eased sweep back to hidden.
func SwipeProgress(progress float32) float32 {
	switch PhaseFromProgress(progress) {
	case PhaseIn:
		return bezier.EaseInOut(progress / holdStart)
	case PhaseHold:
		return 1.0
	case PhaseOut:
		return 1 - bezier.EaseInOut((progress-outStart)/holdStart)
	default:
		return 0.0
	}
}

package playback

import (
	"github.com/rhodesepass/passim/internal/anim"
	"github.com/rhodesepass/passim/internal/transition"
)

// Blend is the renderer-facing view of an active transition: the phase and
// the blend parameter for each effect kind at the current progress.
type Blend struct {
	Kind       transition.Kind
	Phase      transition.Phase
	Progress   float32
	FadeAlpha  uint8
	MoveOffset int32
	SwipeRatio float32
}

// Frame is the immutable per-tick output handed to renderers: the active
// state, the animation snapshot and, during transitions, the blend
// parameters. It carries everything needed to paint without any knowledge
// of the timing rules.
type Frame struct {
	State        State
	FrameCounter uint64
	IsPlaying    bool
	Snapshot     anim.Snapshot
	Transition   *Blend
}

// Frame captures the current tick's render parameters. The returned value
// shares nothing mutable with the simulator.
func (s *Simulator) Frame() Frame {
	f := Frame{
		State:        s.State,
		FrameCounter: s.FrameCounter,
		IsPlaying:    s.IsPlaying,
		Snapshot:     s.Snapshot,
	}
	if s.State == StateTransitionIn || s.State == StateTransitionLoop {
		p := s.Transition.Progress()
		f.Transition = &Blend{
			Kind:       s.Transition.Kind,
			Phase:      s.Transition.Phase(),
			Progress:   p,
			FadeAlpha:  transition.FadeAlpha(p),
			MoveOffset: transition.MoveOffset(p, int32(s.fw.Overlay.Width)),
			SwipeRatio: transition.SwipeProgress(p),
		}
	}
	return f
}

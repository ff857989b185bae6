package playback

import (
	"github.com/rhodesepass/passim/internal/anim"
	"github.com/rhodesepass/passim/internal/config"
	"github.com/rhodesepass/passim/internal/transition"
)

// MicrosecondsToFrames converts a duration to whole frames at the given
// tick rate, flooring at one frame so a configured duration never rounds
// away entirely.
func MicrosecondsToFrames(us int64, fps uint32) uint32 {
	f := us * int64(fps) / 1_000_000
	if f < 1 {
		return 1
	}
	return uint32(f)
}

// Simulator is the aggregate root of the playback core: the state machine,
// the active transition, the animation snapshot and the video sync
// accumulators. It is single-threaded; the runner owns it on the tick
// goroutine and hands out immutable Frame copies.
type Simulator struct {
	fw    config.Firmware
	clock *anim.Clock

	State        State
	FrameCounter uint64
	IsPlaying    bool

	// The firmware forces the first transition after power-on to swipe
	// regardless of the configured kind. One-shot for the process
	// lifetime; a Reset does not re-arm it.
	firstSwitch bool

	Transition transition.Instance
	Snapshot   anim.Snapshot

	preOpinfoCounter uint32
	AppearTimeFrames uint32

	// Per-video microsecond accumulators decoupling the 50 Hz tick from
	// each video's native frame rate.
	introAccUs int64
	loopAccUs  int64

	kindIn    transition.Kind
	kindLoop  transition.Kind
	durInUs   int64
	durLoopUs int64
}

// NewSimulator builds an idle simulator against the given timing table.
func NewSimulator(fw config.Firmware) *Simulator {
	s := &Simulator{
		fw:          fw,
		clock:       anim.NewClock(fw),
		firstSwitch: true,
	}
	s.Snapshot.Reset()
	return s
}

// ApplyPass installs an authored pass config: appear delay, transition
// choices and overlay text lengths. Playback state is reset.
func (s *Simulator) ApplyPass(p *config.Pass) {
	s.AppearTimeFrames = MicrosecondsToFrames(p.AppearTimeUs(), s.fw.Animation.FPS)
	s.kindIn = transition.ParseKind(p.TransitionInType())
	s.kindLoop = transition.ParseKind(p.TransitionLoopType())
	s.durInUs = p.TransitionInDurationUs()
	s.durLoopUs = p.TransitionLoopDurationUs()
	s.clock.SetTexts(anim.TextsFromOverlay(p.Overlay))
	s.Reset()
}

// SetTransitions overrides the transition choices from the control
// channel. Unrecognized names select no effect.
func (s *Simulator) SetTransitions(in, loop string) {
	s.kindIn = transition.ParseKind(in)
	s.kindLoop = transition.ParseKind(loop)
}

// Reset returns to idle, discarding all in-flight transition and animation
// progress. The configured appear delay survives a bare reset.
func (s *Simulator) Reset() {
	appear := s.AppearTimeFrames
	first := s.firstSwitch
	kindIn, kindLoop := s.kindIn, s.kindLoop
	durIn, durLoop := s.durInUs, s.durLoopUs
	clock := s.clock

	*s = Simulator{fw: s.fw, clock: clock, firstSwitch: first}
	s.AppearTimeFrames = appear
	s.kindIn, s.kindLoop = kindIn, kindLoop
	s.durInUs, s.durLoopUs = durIn, durLoop
	s.Snapshot.Reset()
}

// Pause stops ticks from taking effect; state is retained.
func (s *Simulator) Pause() { s.IsPlaying = false }

// Resume continues a paused run.
func (s *Simulator) Resume() { s.IsPlaying = true }

// SeekTo jumps directly to a playback state. Unknown ids are ignored.
// Seeking into a state without seeded transition data is accepted;
// subsequent ticks operate on the zero-valued instance.
func (s *Simulator) SeekTo(id uint8) {
	if st, ok := StateFromByte(id); ok {
		s.State = st
	}
}

// Play starts playback from idle, or resumes when paused mid-run.
func (s *Simulator) Play(src Source) []Effect {
	if s.State != StateIdle {
		s.Resume()
		return nil
	}
	return s.start(src)
}

func (s *Simulator) start(src Source) []Effect {
	hasIntro := src.HasIntro()

	kind := s.kindLoop
	if hasIntro {
		kind = s.kindIn
	}
	if s.firstSwitch {
		s.firstSwitch = false
		kind = transition.KindSwipe
	}

	s.IsPlaying = true
	s.FrameCounter = 0
	s.Snapshot.Reset()

	if hasIntro {
		s.State = StateTransitionIn
	} else {
		s.State = StateTransitionLoop
	}
	s.Transition.Reset(kind, s.transitionFrames(hasIntro))

	effects := []Effect{EffectSeekLoopToStart}
	if hasIntro {
		effects = append(effects, EffectSeekIntroToStart)
	}
	return effects
}

// transitionFrames returns the total frame budget for a transition: three
// equal phases of the configured stage duration, or the firmware default
// when the pass config supplies none.
func (s *Simulator) transitionFrames(isIntro bool) uint32 {
	dur := s.durLoopUs
	if isIntro {
		dur = s.durInUs
	}
	if dur > 0 {
		return 3 * MicrosecondsToFrames(dur, s.fw.Animation.FPS)
	}
	return s.fw.Transition.DefaultFrames
}

// Advance runs one tick. The returned effects are the collaborator calls
// the machine requests; the caller applies them to its Seeker in order.
func (s *Simulator) Advance(src Source) []Effect {
	if !s.IsPlaying {
		return nil
	}
	s.FrameCounter++

	switch s.State {
	case StateTransitionIn:
		return s.tickTransitionIn()
	case StateIntro:
		return s.tickIntro(src)
	case StateTransitionLoop:
		return s.tickTransitionLoop()
	case StatePreOpinfo:
		s.tickPreOpinfo(src)
	case StateLoop:
		s.tickLoop(src)
	case StateIdle:
	}
	return nil
}

func (s *Simulator) tickTransitionIn() []Effect {
	s.Transition.Frame++
	var effects []Effect

	if s.Transition.Phase() == transition.PhaseHold && !s.Transition.VideoSwitched {
		s.Transition.VideoSwitched = true
		effects = append(effects, EffectSeekIntroToStart)
	}
	if s.Transition.Complete() {
		s.State = StateIntro
		s.introAccUs = 0
		effects = append(effects, EffectSeekIntroToStart)
	}
	return effects
}

func (s *Simulator) tickIntro(src Source) []Effect {
	s.introAccUs += int64(s.fw.Animation.StepTimeUs)
	need := frameIntervalUs(src.IntroFPS())
	for s.introAccUs >= need {
		s.introAccUs -= need
		if !src.AdvanceIntroFrame() {
			// Intro exhausted; not an error, it drives the next state.
			s.State = StateTransitionLoop
			s.Transition.Reset(s.kindLoop, s.transitionFrames(false))
			break
		}
	}
	return nil
}

func (s *Simulator) tickTransitionLoop() []Effect {
	s.Transition.Frame++
	var effects []Effect

	if s.Transition.Phase() == transition.PhaseHold && !s.Transition.VideoSwitched {
		s.Transition.VideoSwitched = true
		effects = append(effects, EffectSeekLoopToStart)
	}
	if s.Transition.Complete() {
		s.State = StatePreOpinfo
		s.preOpinfoCounter = 0
		s.loopAccUs = 0
		effects = append(effects, EffectSeekLoopToStart)
	}
	return effects
}

func (s *Simulator) tickPreOpinfo(src Source) {
	s.preOpinfoCounter++
	s.advanceLoopVideo(src)

	if s.preOpinfoCounter >= s.AppearTimeFrames {
		s.State = StateLoop
		s.Snapshot.Reset()
	}
}

func (s *Simulator) tickLoop(src Source) {
	s.advanceLoopVideo(src)
	s.clock.Update(&s.Snapshot)
}

// advanceLoopVideo steps the loop video at its own frame rate. The
// accumulator carries the remainder over so the sync never drifts.
func (s *Simulator) advanceLoopVideo(src Source) {
	s.loopAccUs += int64(s.fw.Animation.StepTimeUs)
	need := frameIntervalUs(src.LoopFPS())
	for s.loopAccUs >= need {
		s.loopAccUs -= need
		src.AdvanceLoopFrame()
	}
}

func frameIntervalUs(fps float64) int64 {
	if fps <= 0 {
		fps = 30
	}
	return int64(1_000_000 / fps)
}

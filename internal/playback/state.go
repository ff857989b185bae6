// Package playback implements the top-level playback state machine: the
// six-state flow from idle through intro and loop playback, transition
// seeding and completion, video frame-rate sync and the per-tick animation
// update.
package playback

// State is the playback state. Values match the firmware's state ids and
// travel over the control channel as bytes.
type State uint8

const (
	StateIdle State = iota
	StateTransitionIn
	StateIntro
	StateTransitionLoop
	StatePreOpinfo
	StateLoop
)

// StateFromByte maps a control-channel state id to a State. The second
// return is false for unknown ids.
func StateFromByte(b uint8) (State, bool) {
	if b > uint8(StateLoop) {
		return StateIdle, false
	}
	return State(b), true
}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTransitionIn:
		return "transition_in"
	case StateIntro:
		return "intro"
	case StateTransitionLoop:
		return "transition_loop"
	case StatePreOpinfo:
		return "pre_opinfo"
	case StateLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// DisplayName returns the human-readable name shown in editor UIs.
func (s State) DisplayName() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateTransitionIn:
		return "Transition In"
	case StateIntro:
		return "Intro"
	case StateTransitionLoop:
		return "Transition Loop"
	case StatePreOpinfo:
		return "Pre-Opinfo"
	case StateLoop:
		return "Loop"
	default:
		return "Unknown"
	}
}

// Effect is a collaborator call the machine decided on during a tick.
// Effects are returned to the caller rather than performed inline so the
// core stays side-effect-free; the runner applies them to the video source.
type Effect uint8

const (
	// EffectSeekIntroToStart rewinds the intro video.
	EffectSeekIntroToStart Effect = iota
	// EffectSeekLoopToStart rewinds the loop video.
	EffectSeekLoopToStart
)

func (e Effect) String() string {
	switch e {
	case EffectSeekIntroToStart:
		return "seek_intro_to_start"
	case EffectSeekLoopToStart:
		return "seek_loop_to_start"
	default:
		return "unknown"
	}
}

// Source is the video collaborator the machine queries each tick. Frame
// advancement mutates the source's read position; rewinds are requested
// through effects and applied by the runner via Seeker.
type Source interface {
	HasIntro() bool
	HasLoop() bool
	// AdvanceIntroFrame moves the intro one frame forward and reports
	// false once the intro is exhausted.
	AdvanceIntroFrame() bool
	// AdvanceLoopFrame moves the loop one frame forward. A looping source
	// always reports true.
	AdvanceLoopFrame() bool
	IntroFPS() float64
	LoopFPS() float64
}

// Seeker is the mutating half of the video collaborator, driven by the
// effect list.
type Seeker interface {
	SeekIntroToStart()
	SeekLoopToStart()
}

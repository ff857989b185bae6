// Package anim derives the per-frame overlay animation values for the
// steady-state loop phase: text reveal counts, e-ink refresh cycling,
// fades, bar sweeps, the scrolling arrow and the entry slide-in.
package anim

// EinkState is one step of the simulated e-paper refresh: two black/white
// flash pairs, then idle, then the final content. Derived from the frame
// offset, never stored independently.
type EinkState uint8

const (
	EinkFirstBlack EinkState = iota
	EinkFirstWhite
	EinkSecondBlack
	EinkSecondWhite
	EinkIdle
	EinkContent
)

// EinkFromFrame maps a frame counter onto the refresh cycle. Before
// startFrame the element is idle; after the four flash states and one idle
// gap it settles on content permanently.
func EinkFromFrame(frame, startFrame, framePerState uint32) EinkState {
	if frame < startFrame {
		return EinkIdle
	}
	if framePerState == 0 {
		framePerState = 1
	}
	switch (frame - startFrame) / framePerState {
	case 0:
		return EinkFirstBlack
	case 1:
		return EinkFirstWhite
	case 2:
		return EinkSecondBlack
	case 3:
		return EinkSecondWhite
	case 4:
		return EinkIdle
	default:
		return EinkContent
	}
}

// IsBlack reports whether the element renders as a black flash.
func (e EinkState) IsBlack() bool {
	return e == EinkFirstBlack || e == EinkSecondBlack
}

// IsWhite reports whether the element renders as a white flash.
func (e EinkState) IsWhite() bool {
	return e == EinkFirstWhite || e == EinkSecondWhite
}

// IsContent reports whether the element has settled on its final content.
func (e EinkState) IsContent() bool {
	return e == EinkContent
}

func (e EinkState) String() string {
	switch e {
	case EinkFirstBlack:
		return "first_black"
	case EinkFirstWhite:
		return "first_white"
	case EinkSecondBlack:
		return "second_black"
	case EinkSecondWhite:
		return "second_white"
	case EinkIdle:
		return "idle"
	default:
		return "content"
	}
}

// ArrowHeight is the scroll wrap height of the arrow indicator in pixels.
const ArrowHeight int32 = 36

// Snapshot holds every animatable value for one rendered frame. It is owned
// by the playback machine and mutated only by Clock.Update.
type Snapshot struct {
	FrameCounter uint32

	// Typewriter reveal counts
	NameChars  int
	CodeChars  int
	StaffChars int
	AuxChars   int

	// E-ink refresh states
	BarcodeState   EinkState
	ClassIconState EinkState

	ColorFadeRadius uint32
	LogoAlpha       uint8

	// Bar / divider sweep widths
	AkBarWidth     uint32
	UpperLineWidth uint32
	LowerLineWidth uint32

	ArrowY int32

	// Entry slide-in
	EntryProgress float32
	EntryYOffset  int32
}

// Reset zeroes the snapshot for a new playback run. E-ink elements start
// idle, matching the pre-reveal screen.
func (s *Snapshot) Reset() {
	*s = Snapshot{
		BarcodeState:   EinkIdle,
		ClassIconState: EinkIdle,
	}
}

// EntryComplete reports whether the overlay slide-in has finished.
func (s *Snapshot) EntryComplete() bool {
	return s.EntryProgress >= 1.0
}

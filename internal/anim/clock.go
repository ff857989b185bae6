package anim

import (
	"unicode/utf8"

	"github.com/rhodesepass/passim/internal/bezier"
	"github.com/rhodesepass/passim/internal/config"
)

// Texts carries the overlay's revealable text lengths. Reveal counts are
// clamped so a snapshot never claims more characters than exist.
type Texts struct {
	NameLen  int
	CodeLen  int
	StaffLen int
	AuxLen   int
}

// TextsFromOverlay counts the revealable runes of the configured overlay
// text fields.
func TextsFromOverlay(o config.OverlayText) Texts {
	return Texts{
		NameLen:  utf8.RuneCountInString(o.Name),
		CodeLen:  utf8.RuneCountInString(o.Code),
		StaffLen: utf8.RuneCountInString(o.Staff),
		AuxLen:   utf8.RuneCountInString(o.Aux),
	}
}

// Clock advances a Snapshot one tick at a time against the firmware timing
// table. It has no state of its own beyond configuration.
type Clock struct {
	fw    config.Firmware
	texts Texts
}

// NewClock builds a clock for the given timing table.
func NewClock(fw config.Firmware) *Clock {
	return &Clock{fw: fw}
}

// SetTexts installs the reveal lengths for the active pass.
func (c *Clock) SetTexts(t Texts) { c.texts = t }

// Firmware returns the active timing table.
func (c *Clock) Firmware() config.Firmware { return c.fw }

// Update advances the snapshot by one frame. Called once per tick while
// the machine is in the loop state.
func (c *Clock) Update(s *Snapshot) {
	s.FrameCounter++
	frame := s.FrameCounter

	if !s.EntryComplete() {
		c.updateEntry(s, frame)
	}
	c.updateTypewriter(s, frame)
	c.updateEink(s, frame)
	c.updateColorFade(s, frame)
	c.updateLogoFade(s, frame)
	c.updateBarsLines(s, frame)
	c.updateArrow(s)
}

func (c *Clock) updateEntry(s *Snapshot, frame uint32) {
	total := c.fw.Animation.Entry.TotalFrames
	if frame >= total {
		s.EntryProgress = 1.0
		s.EntryYOffset = 0
		return
	}
	progress := float32(frame) / float32(total)
	s.EntryProgress = bezier.EaseInOut(progress)
	height := float32(c.fw.Overlay.Height)
	s.EntryYOffset = int32((1 - s.EntryProgress) * height)
}

func (c *Clock) updateTypewriter(s *Snapshot, frame uint32) {
	tw := c.fw.Animation.Typewriter
	s.NameChars = revealCount(frame, tw.Name, c.texts.NameLen)
	s.CodeChars = revealCount(frame, tw.Code, c.texts.CodeLen)
	s.StaffChars = revealCount(frame, tw.Staff, c.texts.StaffLen)
	s.AuxChars = revealCount(frame, tw.Aux, c.texts.AuxLen)
}

func revealCount(frame uint32, el config.TypewriterElement, textLen int) int {
	if frame < el.StartFrame {
		return 0
	}
	fpc := el.FramePerChar
	if fpc == 0 {
		fpc = 1
	}
	n := int((frame-el.StartFrame)/fpc) + 1
	if n > textLen {
		return textLen
	}
	return n
}

func (c *Clock) updateEink(s *Snapshot, frame uint32) {
	eink := c.fw.Animation.Eink
	s.BarcodeState = EinkFromFrame(frame, eink.Barcode.StartFrame, eink.Barcode.FramePerState)
	s.ClassIconState = EinkFromFrame(frame, eink.ClassIcon.StartFrame, eink.ClassIcon.FramePerState)
}

func (c *Clock) updateColorFade(s *Snapshot, frame uint32) {
	cf := c.fw.Animation.ColorFade
	if frame < cf.StartFrame {
		return
	}
	elapsed := frame - cf.StartFrame
	radius := elapsed * cf.ValuePerFrame
	if radius > cf.EndValue {
		radius = cf.EndValue
	}
	s.ColorFadeRadius = radius
}

func (c *Clock) updateLogoFade(s *Snapshot, frame uint32) {
	lf := c.fw.Animation.LogoFade
	if frame < lf.StartFrame {
		return
	}
	elapsed := frame - lf.StartFrame
	alpha := elapsed * lf.ValuePerFrame
	if alpha > 255 {
		alpha = 255
	}
	s.LogoAlpha = uint8(alpha)
}

func (c *Clock) updateBarsLines(s *Snapshot, frame uint32) {
	bl := c.fw.Animation.BarsLines
	s.AkBarWidth = sweepWidth(frame, bl.AkBar, bl.LineWidth)
	s.UpperLineWidth = sweepWidth(frame, bl.UpperLine, bl.LineWidth)
	s.LowerLineWidth = sweepWidth(frame, bl.LowerLine, bl.LineWidth)
}

func sweepWidth(frame uint32, el config.BarLine, target uint32) uint32 {
	if frame < el.StartFrame {
		return 0
	}
	elapsed := frame - el.StartFrame
	if elapsed >= el.FrameCount {
		return target
	}
	progress := float32(elapsed) / float32(el.FrameCount)
	return uint32(bezier.EaseInOut(progress) * float32(target))
}

func (c *Clock) updateArrow(s *Snapshot) {
	// The firmware decrements to scroll upward and wraps at the top.
	incr := c.fw.Animation.Arrow.YIncrPerFrame
	if incr <= 0 {
		incr = 1
	}
	s.ArrowY -= incr
	if s.ArrowY <= 0 {
		s.ArrowY = ArrowHeight
	}
}

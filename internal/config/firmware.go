// Package config holds the two configuration layers the simulator consumes:
// the firmware timing table (frame constants baked into the device) and the
// per-pass material configuration authored in the editor.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// TypewriterElement times one progressively revealed text field.
type TypewriterElement struct {
	StartFrame   uint32 `yaml:"start_frame"`
	FramePerChar uint32 `yaml:"frame_per_char"`
}

// Typewriter groups the four revealed text fields of the overlay.
type Typewriter struct {
	Name  TypewriterElement `yaml:"name"`
	Code  TypewriterElement `yaml:"code"`
	Staff TypewriterElement `yaml:"staff"`
	Aux   TypewriterElement `yaml:"aux"`
}

// EinkElement times one simulated e-paper refresh sequence.
type EinkElement struct {
	StartFrame    uint32 `yaml:"start_frame"`
	FramePerState uint32 `yaml:"frame_per_state"`
}

// Eink groups the two e-ink styled overlay elements.
type Eink struct {
	Barcode   EinkElement `yaml:"barcode"`
	ClassIcon EinkElement `yaml:"class_icon"`
}

// ColorFade times the radial color reveal.
type ColorFade struct {
	StartFrame    uint32 `yaml:"start_frame"`
	ValuePerFrame uint32 `yaml:"value_per_frame"`
	EndValue      uint32 `yaml:"end_value"`
}

// LogoFade times the logo alpha ramp. The ramp saturates at 255.
type LogoFade struct {
	StartFrame    uint32 `yaml:"start_frame"`
	ValuePerFrame uint32 `yaml:"value_per_frame"`
}

// BarLine times one sweeping bar or divider line.
type BarLine struct {
	StartFrame uint32 `yaml:"start_frame"`
	FrameCount uint32 `yaml:"frame_count"`
}

// BarsLines groups the progress bar and the two divider lines. All three
// sweep to the shared LineWidth.
type BarsLines struct {
	AkBar     BarLine `yaml:"ak_bar"`
	UpperLine BarLine `yaml:"upper_line"`
	LowerLine BarLine `yaml:"lower_line"`
	LineWidth uint32  `yaml:"line_width"`
}

// Arrow configures the scrolling arrow indicator.
type Arrow struct {
	YIncrPerFrame int32 `yaml:"y_incr_per_frame"`
}

// Entry configures the overlay slide-in.
type Entry struct {
	TotalFrames uint32 `yaml:"total_frames"`
}

// Animation is the complete per-element timing table.
type Animation struct {
	FPS        uint32     `yaml:"fps"`
	StepTimeUs uint32     `yaml:"step_time_us"`
	Typewriter Typewriter `yaml:"typewriter"`
	Eink       Eink       `yaml:"eink"`
	ColorFade  ColorFade  `yaml:"color_fade"`
	LogoFade   LogoFade   `yaml:"logo_fade"`
	BarsLines  BarsLines  `yaml:"bars_lines"`
	Arrow      Arrow      `yaml:"arrow"`
	Entry      Entry      `yaml:"entry"`
}

// Overlay is the rendered overlay surface in pixels.
type Overlay struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// TransitionAnim configures transition playback when the pass config does
// not supply an explicit duration.
type TransitionAnim struct {
	DefaultFrames uint32 `yaml:"default_frames"`
}

// Firmware mirrors the timing constants of the device firmware. All values
// are frame counts at the firmware tick rate.
type Firmware struct {
	Version    int            `yaml:"version"`
	Name       string         `yaml:"name"`
	Animation  Animation      `yaml:"animation"`
	Overlay    Overlay        `yaml:"overlay"`
	Transition TransitionAnim `yaml:"transition"`
}

// DefaultFirmware returns the timing table matching the shipped firmware.
func DefaultFirmware() Firmware {
	return Firmware{
		Version: 1,
		Name:    "default",
		Animation: Animation{
			FPS:        50,
			StepTimeUs: 20000,
			Typewriter: Typewriter{
				Name:  TypewriterElement{StartFrame: 30, FramePerChar: 3},
				Code:  TypewriterElement{StartFrame: 40, FramePerChar: 3},
				Staff: TypewriterElement{StartFrame: 40, FramePerChar: 3},
				Aux:   TypewriterElement{StartFrame: 50, FramePerChar: 2},
			},
			Eink: Eink{
				Barcode:   EinkElement{StartFrame: 30, FramePerState: 15},
				ClassIcon: EinkElement{StartFrame: 60, FramePerState: 15},
			},
			ColorFade: ColorFade{StartFrame: 15, ValuePerFrame: 10, EndValue: 192},
			LogoFade:  LogoFade{StartFrame: 30, ValuePerFrame: 5},
			BarsLines: BarsLines{
				AkBar:     BarLine{StartFrame: 100, FrameCount: 40},
				UpperLine: BarLine{StartFrame: 80, FrameCount: 40},
				LowerLine: BarLine{StartFrame: 90, FrameCount: 40},
				LineWidth: 280,
			},
			Arrow: Arrow{YIncrPerFrame: 1},
			Entry: Entry{TotalFrames: 50},
		},
		Overlay:    Overlay{Width: 360, Height: 640},
		Transition: TransitionAnim{DefaultFrames: 75},
	}
}

// LoadFirmware reads a timing table from path. Fields absent from the file
// keep their firmware defaults.
func LoadFirmware(path string) (*Firmware, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fw := DefaultFirmware()
	if err := yaml.Unmarshal(b, &fw); err != nil {
		return nil, err
	}
	return &fw, nil
}

// SaveFirmware writes the timing table to path.
func SaveFirmware(path string, fw *Firmware) error {
	b, err := yaml.Marshal(fw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

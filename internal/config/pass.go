package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Microsecond defaults used when the authored config omits a value.
const (
	DefaultTransitionDurationUs = 500000
	DefaultIntroDurationUs      = 5000000
	DefaultAppearTimeUs         = 100000
)

// TransitionChoice selects a transition effect and how long one of its
// three phases lasts.
type TransitionChoice struct {
	Type       string `yaml:"type" json:"type"`
	DurationUs int64  `yaml:"duration_us" json:"duration_us"`
}

// LoopVideo references the looping background video.
type LoopVideo struct {
	File string `yaml:"file" json:"file"`
}

// IntroVideo references the optional one-shot intro video.
type IntroVideo struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	File       string `yaml:"file" json:"file"`
	DurationUs int64  `yaml:"duration_us" json:"duration_us"`
}

// OverlayText carries the four revealed text fields plus overlay chrome
// options relevant to timing.
type OverlayText struct {
	AppearTimeUs int64  `yaml:"appear_time_us" json:"appear_time_us"`
	Name         string `yaml:"name" json:"name"`
	Code         string `yaml:"code" json:"code"`
	Staff        string `yaml:"staff" json:"staff"`
	Aux          string `yaml:"aux" json:"aux"`
	Color        string `yaml:"color" json:"color"`
	Logo         string `yaml:"logo" json:"logo"`
}

// Pass is one authored pass material: video references, transition choices
// and overlay content. Pixel-level asset fields the renderer needs are kept
// even though the core only reads the timing-relevant ones.
type Pass struct {
	Version        int               `yaml:"version" json:"version"`
	Loop           LoopVideo         `yaml:"loop" json:"loop"`
	Intro          *IntroVideo       `yaml:"intro,omitempty" json:"intro,omitempty"`
	TransitionIn   *TransitionChoice `yaml:"transition_in,omitempty" json:"transition_in,omitempty"`
	TransitionLoop *TransitionChoice `yaml:"transition_loop,omitempty" json:"transition_loop,omitempty"`
	Overlay        OverlayText       `yaml:"overlay" json:"overlay"`
}

// DefaultPass returns an empty pass with the authored-config defaults
// filled in.
func DefaultPass() Pass {
	return Pass{
		Version: 1,
		Overlay: OverlayText{
			AppearTimeUs: DefaultAppearTimeUs,
			Name:         "OPERATOR",
			Code:         "EPASS - UNK0",
			Staff:        "STAFF",
			Aux:          "Operator of Rhodes Island\nUndefined/Rhodes Island",
			Color:        "#000000",
		},
	}
}

// HasIntro reports whether an enabled intro video is configured.
func (p *Pass) HasIntro() bool {
	return p.Intro != nil && p.Intro.Enabled && p.Intro.File != ""
}

// AppearTimeUs returns the configured overlay appear delay.
func (p *Pass) AppearTimeUs() int64 {
	if p.Overlay.AppearTimeUs > 0 {
		return p.Overlay.AppearTimeUs
	}
	return DefaultAppearTimeUs
}

// TransitionInType returns the configured entry transition type string,
// empty when unset.
func (p *Pass) TransitionInType() string {
	if p.TransitionIn == nil {
		return ""
	}
	return p.TransitionIn.Type
}

// TransitionLoopType returns the configured loop transition type string,
// empty when unset.
func (p *Pass) TransitionLoopType() string {
	if p.TransitionLoop == nil {
		return ""
	}
	return p.TransitionLoop.Type
}

// TransitionInDurationUs returns the entry transition stage duration,
// falling back to the authored-config default when unset.
func (p *Pass) TransitionInDurationUs() int64 {
	if p.TransitionIn == nil || p.TransitionIn.DurationUs <= 0 {
		return DefaultTransitionDurationUs
	}
	return p.TransitionIn.DurationUs
}

// TransitionLoopDurationUs returns the loop transition stage duration,
// falling back to the authored-config default when unset.
func (p *Pass) TransitionLoopDurationUs() int64 {
	if p.TransitionLoop == nil || p.TransitionLoop.DurationUs <= 0 {
		return DefaultTransitionDurationUs
	}
	return p.TransitionLoop.DurationUs
}

// LoadPass reads an authored pass config from path.
func LoadPass(path string) (*Pass, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := DefaultPass()
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse pass config: %w", err)
	}
	return &p, nil
}

// SavePass writes an authored pass config to path.
func SavePass(path string, p *Pass) error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Package app wires the playback core to its collaborators and drives the
// fixed-rate tick loop.
package app

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rhodesepass/passim/internal/config"
	"github.com/rhodesepass/passim/internal/ipc"
	"github.com/rhodesepass/passim/internal/playback"
	"github.com/rhodesepass/passim/internal/video"
)

// stateUpdateEvery is the broadcast cadence in ticks.
const stateUpdateEvery = 10

// Sender delivers outbound protocol messages on one transport.
type Sender interface {
	Send(ipc.Message) error
}

// Runner owns the simulator and the video player on a single goroutine.
// Control messages arrive through the queue and are drained once per tick,
// so command handling and frame advancement never race.
type Runner struct {
	fw       config.Firmware
	sim      *playback.Simulator
	player   *video.Player
	queue    *ipc.Queue
	senders  []Sender
	videoFPS float64

	quit chan struct{}
}

// NewRunner builds a runner against the given timing table. videoFPS is
// the nominal frame rate assumed for attached video streams.
func NewRunner(fw config.Firmware, queue *ipc.Queue, videoFPS float64) *Runner {
	return &Runner{
		fw:       fw,
		sim:      playback.NewSimulator(fw),
		player:   video.NewPlayer(),
		queue:    queue,
		videoFPS: videoFPS,
		quit:     make(chan struct{}),
	}
}

// AddSender registers an outbound transport. Not safe to call after Run
// has started.
func (r *Runner) AddSender(s Sender) { r.senders = append(r.senders, s) }

// Simulator exposes the playback core for frame queries.
func (r *Runner) Simulator() *playback.Simulator { return r.sim }

// Player exposes the video collaborator.
func (r *Runner) Player() *video.Player { return r.player }

// Stop makes Run return after the current tick.
func (r *Runner) Stop() {
	select {
	case <-r.quit:
	default:
		close(r.quit)
	}
}

// Run drives the tick loop at the firmware step time until a shutdown
// message arrives or Stop is called.
func (r *Runner) Run() {
	step := time.Duration(r.fw.Animation.StepTimeUs) * time.Microsecond
	if step <= 0 {
		step = 20 * time.Millisecond
	}
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	log.Info().Dur("step", step).Uint32("fps", r.fw.Animation.FPS).Msg("tick loop started")
	for {
		select {
		case <-r.quit:
			return
		case <-ticker.C:
			if !r.Tick() {
				return
			}
		}
	}
}

// Tick runs one iteration of the loop: drain pending commands, advance the
// machine one frame, apply its seek effects and report progress. Returns
// false when a shutdown command was drained.
func (r *Runner) Tick() bool {
	for _, msg := range r.queue.Drain() {
		if !r.handle(msg) {
			return false
		}
	}

	r.applyEffects(r.sim.Advance(r.player))

	if r.sim.IsPlaying && r.sim.FrameCounter%stateUpdateEvery == 0 {
		r.broadcast(ipc.NewStateUpdate(uint8(r.sim.State), r.sim.FrameCounter, r.sim.IsPlaying))
	}
	return true
}

func (r *Runner) handle(msg ipc.Message) bool {
	switch msg.Type {
	case ipc.TypeLoadConfig:
		r.loadConfig(msg.LoadConfig)
	case ipc.TypeControl:
		r.control(msg.Control)
	case ipc.TypeSetTransition:
		log.Info().
			Str("in", msg.SetTransition.TransitionIn).
			Str("loop", msg.SetTransition.TransitionLoop).
			Msg("transition override")
		r.sim.SetTransitions(msg.SetTransition.TransitionIn, msg.SetTransition.TransitionLoop)
	case ipc.TypeShutdown:
		log.Info().Msg("shutting down")
		return false
	default:
		// Inbound-only transports never queue outbound types; ignore.
	}
	return true
}

func (r *Runner) loadConfig(lc *ipc.LoadConfig) {
	cfg := lc.Config
	if cfg.Loop.File == "" {
		log.Error().Msg("pass config has no loop video")
		r.broadcast(ipc.NewError(ipc.CodeInvalidConfig, "pass config has no loop video"))
		return
	}
	log.Info().Str("base_dir", lc.BaseDir).Str("loop", cfg.Loop.File).Msg("pass config loaded")
	r.player.LoadPass(&cfg, r.videoFPS)
	r.sim.ApplyPass(&cfg)
}

func (r *Runner) control(cmd *ipc.Command) {
	switch cmd.Op {
	case ipc.OpPlay:
		r.applyEffects(r.sim.Play(r.player))
	case ipc.OpPause:
		r.sim.Pause()
	case ipc.OpStop:
		r.sim.Pause()
		r.sim.Reset()
		r.player.Reset()
	case ipc.OpReset:
		r.sim.Reset()
		r.player.Reset()
	case ipc.OpSeekTo:
		r.sim.SeekTo(cmd.SeekTarget)
	}
}

func (r *Runner) applyEffects(effects []playback.Effect) {
	for _, e := range effects {
		switch e {
		case playback.EffectSeekIntroToStart:
			r.player.SeekIntroToStart()
		case playback.EffectSeekLoopToStart:
			r.player.SeekLoopToStart()
		}
	}
}

func (r *Runner) broadcast(msg ipc.Message) {
	for _, s := range r.senders {
		if err := s.Send(msg); err != nil {
			log.Debug().Err(err).Str("type", msg.Type).Msg("send failed")
		}
	}
}

// Package ipc implements the editor control channel: a tagged-union JSON
// message schema carried over line-oriented stdio and, optionally, a
// websocket endpoint. The transport delivers commands into a FIFO queue the
// runner drains once per tick.
package ipc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rhodesepass/passim/internal/config"
)

// Error codes reported over the channel.
const (
	CodeOK              int32 = 0
	CodeInvalidConfig   int32 = 1
	CodeVideoLoadFailed int32 = 2
	CodeInternal        int32 = 100
)

// Message types. Wire format is {"type": ..., "payload": ...}; unit
// messages omit the payload.
const (
	TypeLoadConfig    = "load_config"
	TypeControl       = "control"
	TypeSetTransition = "set_transition"
	TypeShutdown      = "shutdown"
	TypeStateUpdate   = "state_update"
	TypeReady         = "ready"
	TypeError         = "error"
)

// Command is one playback control operation. Seek carries a target state
// id; for the other operations the target is unused.
type Command struct {
	Op         string
	SeekTarget uint8
}

// Control operation names.
const (
	OpPlay   = "play"
	OpPause  = "pause"
	OpStop   = "stop"
	OpReset  = "reset"
	OpSeekTo = "seek_to"
)

// MarshalJSON writes unit commands as bare strings and seek_to as a
// single-key object, matching the firmware editor's encoding.
func (c Command) MarshalJSON() ([]byte, error) {
	if c.Op == OpSeekTo {
		return json.Marshal(map[string]uint8{OpSeekTo: c.SeekTarget})
	}
	return json.Marshal(c.Op)
}

// UnmarshalJSON accepts both encodings.
func (c *Command) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var op string
		if err := json.Unmarshal(b, &op); err != nil {
			return err
		}
		switch op {
		case OpPlay, OpPause, OpStop, OpReset:
			c.Op = op
			return nil
		}
		return fmt.Errorf("unknown control command %q", op)
	}
	var obj map[string]uint8
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	target, ok := obj[OpSeekTo]
	if !ok {
		return fmt.Errorf("unknown control command object")
	}
	c.Op = OpSeekTo
	c.SeekTarget = target
	return nil
}

// LoadConfig delivers an authored pass config plus the directory its
// relative asset paths resolve against.
type LoadConfig struct {
	Config  config.Pass `json:"config"`
	BaseDir string      `json:"base_dir"`
}

// SetTransition overrides the transition choices. Names outside
// fade/move/swipe select no effect.
type SetTransition struct {
	TransitionIn   string `json:"transition_in"`
	TransitionLoop string `json:"transition_loop"`
}

// StateUpdate is the periodic simulator-to-editor progress report.
type StateUpdate struct {
	State     uint8  `json:"state"`
	Frame     uint64 `json:"frame"`
	IsPlaying bool   `json:"is_playing"`
}

// ErrorPayload reports a recoverable fault to the editor.
type ErrorPayload struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// Message is the decoded tagged union. Exactly the field matching Type is
// set; unit messages set none.
type Message struct {
	Type          string
	LoadConfig    *LoadConfig
	Control       *Command
	SetTransition *SetTransition
	StateUpdate   *StateUpdate
	Error         *ErrorPayload
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Decode parses one line of the channel.
func Decode(line []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return Message{}, fmt.Errorf("parse message: %w", err)
	}

	msg := Message{Type: env.Type}
	var err error
	switch env.Type {
	case TypeLoadConfig:
		lc := &LoadConfig{Config: config.DefaultPass()}
		err = json.Unmarshal(env.Payload, lc)
		msg.LoadConfig = lc
	case TypeControl:
		cmd := &Command{}
		err = json.Unmarshal(env.Payload, cmd)
		msg.Control = cmd
	case TypeSetTransition:
		st := &SetTransition{}
		err = json.Unmarshal(env.Payload, st)
		msg.SetTransition = st
	case TypeStateUpdate:
		su := &StateUpdate{}
		err = json.Unmarshal(env.Payload, su)
		msg.StateUpdate = su
	case TypeError:
		ep := &ErrorPayload{}
		err = json.Unmarshal(env.Payload, ep)
		msg.Error = ep
	case TypeShutdown, TypeReady:
		// unit messages
	default:
		return Message{}, fmt.Errorf("unknown message type %q", env.Type)
	}
	if err != nil {
		return Message{}, fmt.Errorf("parse %s payload: %w", env.Type, err)
	}
	return msg, nil
}

// Encode renders the message as a single line without the trailing newline.
func Encode(msg Message) ([]byte, error) {
	env := envelope{Type: msg.Type}

	var payload any
	switch msg.Type {
	case TypeLoadConfig:
		payload = msg.LoadConfig
	case TypeControl:
		payload = msg.Control
	case TypeSetTransition:
		payload = msg.SetTransition
	case TypeStateUpdate:
		payload = msg.StateUpdate
	case TypeError:
		payload = msg.Error
	case TypeShutdown, TypeReady:
	default:
		return nil, fmt.Errorf("unknown message type %q", msg.Type)
	}

	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Payload = b
	}
	return json.Marshal(env)
}

// Ready builds the one-shot startup message.
func Ready() Message { return Message{Type: TypeReady} }

// NewStateUpdate builds a progress report.
func NewStateUpdate(state uint8, frame uint64, playing bool) Message {
	return Message{Type: TypeStateUpdate, StateUpdate: &StateUpdate{State: state, Frame: frame, IsPlaying: playing}}
}

// NewError builds an error report.
func NewError(code int32, format string, args ...any) Message {
	return Message{Type: TypeError, Error: &ErrorPayload{Code: code, Message: fmt.Sprintf(format, args...)}}
}

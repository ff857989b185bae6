package ipc

import (
	"bufio"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
)

// StdioServer speaks the line-oriented protocol over a reader/writer pair,
// normally the process's stdin/stdout when driven by the editor.
type StdioServer struct {
	queue *Queue

	mu  sync.Mutex
	out io.Writer
}

// NewStdioServer builds a server feeding the given queue.
func NewStdioServer(queue *Queue, out io.Writer) *StdioServer {
	return &StdioServer{queue: queue, out: out}
}

// Send writes one message line. Safe for concurrent use.
func (s *StdioServer) Send(msg Message) error {
	b, err := Encode(msg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(b); err != nil {
		return err
	}
	_, err = s.out.Write([]byte{'\n'})
	return err
}

// Run reads lines until EOF, queueing decoded messages. A malformed line
// produces an error reply and is skipped; it never stops the server.
// Sends the one-shot ready message first.
func (s *StdioServer) Run(in io.Reader) {
	if err := s.Send(Ready()); err != nil {
		log.Error().Err(err).Msg("send ready")
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		msg, err := Decode(line)
		if err != nil {
			log.Warn().Err(err).Msg("malformed control message")
			_ = s.Send(NewError(CodeInternal, "parse error: %v", err))
			continue
		}
		s.queue.Push(msg)
		if msg.Type == TypeShutdown {
			log.Info().Msg("shutdown received on control channel")
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("control channel read failed")
	}
}

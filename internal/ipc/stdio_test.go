package ipc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdioRunQueuesCommands(t *testing.T) {
	q := NewQueue()
	var out bytes.Buffer
	srv := NewStdioServer(q, &out)

	in := strings.NewReader(
		`{"type":"control","payload":"play"}` + "\n" +
			"\n" + // blank lines are skipped
			`{"type":"shutdown"}` + "\n")
	srv.Run(in)

	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, OpPlay, got[0].Control.Op)
	assert.Equal(t, TypeShutdown, got[1].Type)

	// The ready handshake is the first line written.
	first, _, _ := strings.Cut(out.String(), "\n")
	assert.JSONEq(t, `{"type":"ready"}`, first)
}

func TestStdioMalformedLineRepliesAndContinues(t *testing.T) {
	q := NewQueue()
	var out bytes.Buffer
	srv := NewStdioServer(q, &out)

	in := strings.NewReader("this is not json\n" + `{"type":"control","payload":"pause"}` + "\n")
	srv.Run(in)

	got := q.Drain()
	require.Len(t, got, 1, "the bad line is skipped, not fatal")
	assert.Equal(t, OpPause, got[0].Control.Op)
	assert.Contains(t, out.String(), `"error"`)
}

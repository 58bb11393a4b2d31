package histReader

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequest(t *testing.T) {
	req := "GET / HTTP/1.1\r\nHost: localhost\r\n\r\n"
	hr := NewHistReader(strings.NewReader(req), 1023)

	rr, err := hr.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, req, string(rr.Data))
	assert.False(t, rr.Truncated)
	assert.False(t, rr.Empty())
}

func TestReadRequest_StopsAtLineEnd(t *testing.T) {
	// one byte per read: nothing past the first newline is consumed
	src := iotest.OneByteReader(strings.NewReader("GET / HTTP/1.0\nHost: x\r\n\r\n"))
	hr := NewHistReader(src, 1023)

	rr, err := hr.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, "GET / HTTP/1.0\n", string(rr.Data))
}

func TestReadRequest_Truncates(t *testing.T) {
	long := "GET /" + strings.Repeat("a", 100) + " HTTP/1.1\r\n"
	hr := NewHistReader(strings.NewReader(long), 32)

	rr, err := hr.ReadRequest()
	require.NoError(t, err)
	assert.Len(t, rr.Data, 32)
	assert.Equal(t, long[:32], string(rr.Data))
	assert.True(t, rr.Truncated)
}

func TestReadRequest_ExactFitIsNotTruncated(t *testing.T) {
	req := "GET / HTTP/1.1\n"
	hr := NewHistReader(strings.NewReader(req), len(req))

	rr, err := hr.ReadRequest()
	require.NoError(t, err)
	assert.False(t, rr.Truncated)
}

func TestReadRequest_PartialLineAtEOF(t *testing.T) {
	hr := NewHistReader(strings.NewReader("GET / HTTP/1.1"), 1023)

	rr, err := hr.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, "GET / HTTP/1.1", string(rr.Data))
	assert.False(t, rr.Truncated)
}

func TestReadRequest_Empty(t *testing.T) {
	hr := NewHistReader(strings.NewReader(""), 1023)

	rr, err := hr.ReadRequest()
	require.NoError(t, err)
	assert.True(t, rr.Empty())
}

func TestReadRequest_Errors(t *testing.T) {
	boom := errors.New("connection reset")

	hr := NewHistReader(iotest.ErrReader(boom), 1023)
	_, err := hr.ReadRequest()
	assert.ErrorIs(t, err, boom)

	// data that arrived before the error is still handed over
	src := io.MultiReader(strings.NewReader("GET / HT"), iotest.ErrReader(boom))
	hr = NewHistReader(src, 1023)
	rr, err := hr.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, "GET / HT", string(rr.Data))
}

func TestDump(t *testing.T) {
	hr := NewHistReader(strings.NewReader("GET / HTTP/1.1\r\n"), 1023)
	_, err := hr.ReadRequest()
	require.NoError(t, err)

	assert.Contains(t, hr.Dump(), "|GET / HTTP/1.1..|")
}

package bodystream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// limitedWriter accepts n octets, then fails.
type limitedWriter struct {
	bytes.Buffer
	n int
}

func (lw *limitedWriter) Write(b []byte) (int, error) {
	if lw.Len()+len(b) > lw.n {
		m := lw.n - lw.Len()
		lw.Buffer.Write(b[:m])
		return m, errors.New("broken pipe")
	}
	return lw.Buffer.Write(b)
}

func TestCopy(t *testing.T) {
	data := bytes.Repeat([]byte{0x00, 0xff, 'a', '\n'}, 1000)

	for _, chunk := range []int{1, 3, 4096, 1 << 16} {
		var out bytes.Buffer
		n, err := Copy(&out, bytes.NewReader(data), chunk)
		require.NoError(t, err)
		assert.EqualValues(t, len(data), n)
		assert.Equal(t, data, out.Bytes())
	}
}

func TestCopy_ZeroChunkStillCopies(t *testing.T) {
	var out bytes.Buffer
	_, err := Copy(&out, strings.NewReader("FooBar"), 0)
	require.NoError(t, err)
	assert.Equal(t, "FooBar", out.String())
}

func TestCopy_WriteError(t *testing.T) {
	dst := &limitedWriter{n: 5}
	n, err := Copy(dst, strings.NewReader("FooBarBaz"), 4)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.EqualValues(t, 5, n)
	assert.EqualValues(t, 5, we.Written)
	assert.Equal(t, "FooBa", dst.String())
}

func TestCopy_ShortWrite(t *testing.T) {
	dst := writerFunc(func(b []byte) (int, error) { return len(b) - 1, nil })
	_, err := Copy(dst, strings.NewReader("FooBar"), 8)
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestCopy_ReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	src := io.MultiReader(strings.NewReader("Foo"), iotest.ErrReader(boom))

	var out bytes.Buffer
	n, err := Copy(&out, src, 16)
	assert.ErrorIs(t, err, boom)

	var we *WriteError
	assert.False(t, errors.As(err, &we))
	assert.EqualValues(t, 3, n)
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(b []byte) (int, error) { return f(b) }

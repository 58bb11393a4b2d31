package request

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformed           = errors.New("malformed request line")
	ErrUnsupportedMethod   = errors.New("unsupported method")
	ErrUnsupportedProtocol = errors.New("unsupported protocol")
)

const MethodGet = "GET"

var supportedProtos = []string{"HTTP/1.0", "HTTP/1.1"}

// A Line is the first line of an HTTP/1.x request.
type Line struct {
	Method string
	Path   string
	Proto  string
}

// Parse reads the request line out of a raw request. Only the first
// line is looked at; headers and body are left alone.
func Parse(raw []byte) (*Line, error) {
	first := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		first = raw[:i]
	}
	fields := strings.Fields(string(first))
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: %d of 3 fields", ErrMalformed, len(fields))
	}
	return &Line{
		Method: fields[0],
		Path:   fields[1],
		Proto:  fields[2],
	}, nil
}

// Validate checks the method first, then the protocol version.
func (ln *Line) Validate() error {
	if ln.Method != MethodGet {
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, ln.Method)
	}
	for _, p := range supportedProtos {
		if strings.EqualFold(ln.Proto, p) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedProtocol, ln.Proto)
}

// ParseValid parses and validates raw. When validation fails the parsed
// line is returned along with the error.
func ParseValid(raw []byte) (*Line, error) {
	ln, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return ln, ln.Validate()
}

func (ln *Line) String() string {
	return fmt.Sprintf("%s %s %s", ln.Method, ln.Path, ln.Proto)
}

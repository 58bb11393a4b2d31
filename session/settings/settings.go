package settings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kaiwenh/Computer-Networks/response"
)

// Settings are fixed at startup and only read afterwards.
type Settings struct {
	// Listening port, also rendered into the landing page links.
	Port int

	// Directory files are served from.
	Root string

	// Upper bound on the bytes read from a client before the request
	// is parsed. Anything past it is dropped.
	MaxRequestSize int

	// Buffer size used when copying a file to the client.
	ChunkSize int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// HTML-escape the path and method echoed back in error pages.
	EscapeReflected bool

	Verbose bool
}

func Default() Settings {
	return Settings{
		Root:           ".",
		MaxRequestSize: 1023,
		ChunkSize:      4096,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
	}
}

func (st Settings) Validate() error {
	var errs []error
	if st.Port < 1 || st.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range [1, 65535]", st.Port))
	}
	if st.Root == "" {
		errs = append(errs, errors.New("empty document root"))
	}
	if st.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Errorf("max request size must be positive, got %d", st.MaxRequestSize))
	}
	if st.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk size must be positive, got %d", st.ChunkSize))
	}
	if st.ReadTimeout < 0 || st.WriteTimeout < 0 {
		errs = append(errs, errors.New("timeouts cannot be negative"))
	}
	return errors.Join(errs...)
}

func (st Settings) Reflector() response.Reflector {
	if st.EscapeReflected {
		return response.Escaped
	}
	return response.Verbatim
}

// String lists every setting, one per line. Values that differ from
// Default are marked with an X.
func (st Settings) String() string {
	var sb strings.Builder
	def := Default()

	line := func(changed bool, name string, v any) {
		c := ' '
		if changed {
			c = 'X'
		}
		fmt.Fprintf(&sb, "(%c) %s = %v\n", c, name, v)
	}
	line(st.Port != def.Port, "Port", st.Port)
	line(st.Root != def.Root, "Root", st.Root)
	line(st.MaxRequestSize != def.MaxRequestSize, "MaxRequestSize", st.MaxRequestSize)
	line(st.ChunkSize != def.ChunkSize, "ChunkSize", st.ChunkSize)
	line(st.ReadTimeout != def.ReadTimeout, "ReadTimeout", st.ReadTimeout)
	line(st.WriteTimeout != def.WriteTimeout, "WriteTimeout", st.WriteTimeout)
	line(st.EscapeReflected != def.EscapeReflected, "EscapeReflected", st.EscapeReflected)
	line(st.Verbose != def.Verbose, "Verbose", st.Verbose)
	return sb.String()
}

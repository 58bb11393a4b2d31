package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kaiwenh/Computer-Networks/session"
	"github.com/kaiwenh/Computer-Networks/session/settings"
)

const usage = `usage: webserver [flags] <port>

Serves files from a directory over HTTP/1.x, one GET request per connection.
`

const (
	helpTextDir          = "Directory the server reads requested files from."
	helpTextVerbose      = "Prints debugging messages, including a dump of every request."
	helpTextMaxRequest   = "Octets read from a client before the request is parsed; the rest is dropped."
	helpTextChunk        = "Buffer size used when sending a file."
	helpTextReadTimeout  = "How long to wait for a client to send its request."
	helpTextWriteTimeout = "How long a response may take to send."
	helpTextEscape       = "HTML-escape the path and method echoed back in error pages."
)

var errNoPort = errors.New("no port provided")

func parseArgs(args []string, output io.Writer) (settings.Settings, error) {
	st := settings.Default()

	fl := flag.NewFlagSet("webserver", flag.ContinueOnError)
	fl.SetOutput(output)
	fl.Usage = func() {
		fmt.Fprint(fl.Output(), usage)
		fl.PrintDefaults()
	}
	fl.StringVar(&st.Root, "d", st.Root, helpTextDir)
	fl.BoolVar(&st.Verbose, "v", st.Verbose, helpTextVerbose)
	fl.IntVar(&st.MaxRequestSize, "max-request", st.MaxRequestSize, helpTextMaxRequest)
	fl.IntVar(&st.ChunkSize, "chunk", st.ChunkSize, helpTextChunk)
	fl.DurationVar(&st.ReadTimeout, "read-timeout", st.ReadTimeout, helpTextReadTimeout)
	fl.DurationVar(&st.WriteTimeout, "write-timeout", st.WriteTimeout, helpTextWriteTimeout)
	fl.BoolVar(&st.EscapeReflected, "escape", st.EscapeReflected, helpTextEscape)

	if err := fl.Parse(args); err != nil {
		return st, err
	}
	if fl.NArg() < 1 {
		return st, errNoPort
	}
	port, err := strconv.Atoi(fl.Arg(0))
	if err != nil {
		return st, fmt.Errorf("invalid port %q", fl.Arg(0))
	}
	st.Port = port
	return st, st.Validate()
}

func newLogger(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().
		Logger()
}

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// acceptBackoff doubles the wait after each failed Accept in a row,
// starting at minAcceptDelay and capped at maxAcceptDelay.
func acceptBackoff(prev time.Duration) time.Duration {
	if prev == 0 {
		return minAcceptDelay
	}
	return min(2*prev, maxAcceptDelay)
}

// serve accepts connections until ctx is done, handling them one at a
// time. Nothing a single client does stops the loop.
func serve(ctx context.Context, listener net.Listener, sess *session.Session, log zerolog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		listener.Close()
		return nil
	})

	g.Go(func() error {
		var delay time.Duration
		for {
			conn, err := listener.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				if errors.Is(err, net.ErrClosed) {
					return err
				}
				delay = acceptBackoff(delay)
				log.Error().Err(err).Dur("retry_in", delay).Msg("accept failed")
				select {
				case <-time.After(delay):
				case <-gctx.Done():
					return nil
				}
				continue
			}
			delay = 0
			connLog := log.With().Str("remote", conn.RemoteAddr().String()).Logger()
			connLog.Debug().Msg("accepted connection")
			logOutcome(connLog, HandleConnection(conn, sess, connLog))
		}
	})

	return g.Wait()
}

func serverMain(ctx context.Context, st settings.Settings, log zerolog.Logger) error {
	info, err := os.Stat(st.Root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", st.Root)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", st.Port))
	if err != nil {
		return err
	}

	sess := session.NewSession(st, os.DirFS(st.Root), log)
	log.Info().Str("root", st.Root).Msgf("server available at http://localhost:%d", st.Port)
	log.Debug().Msg("settings\n" + st.String())

	err = serve(ctx, listener, sess, log)
	log.Info().Msg("server stopped")
	return err
}

func main() {
	st, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR, %v\n", err)
		os.Exit(1)
	}

	log := newLogger(os.Stdout, st.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serverMain(ctx, st, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

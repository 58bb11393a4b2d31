package session

import (
	"errors"
	"io"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/kaiwenh/Computer-Networks/request"
	"github.com/kaiwenh/Computer-Networks/response"
	"github.com/kaiwenh/Computer-Networks/session/settings"
)

// A Session turns one raw request into exactly one response. It holds
// no per-request state, so a single Session serves every connection.
type Session struct {
	Settings settings.Settings
	Files    fs.FS
	Log      zerolog.Logger
}

func NewSession(st settings.Settings, files fs.FS, log zerolog.Logger) *Session {
	return &Session{
		Settings: st,
		Files:    files,
		Log:      log,
	}
}

// Serve parses and validates raw, then answers it on out. Requests that
// fail validation get their error page here and a *RequestError back.
func (sess *Session) Serve(raw []byte, out io.Writer) error {
	ln, err := request.ParseValid(raw)
	switch {
	case err == nil:
		sess.Log.Debug().Str("method", ln.Method).Str("path", ln.Path).Str("proto", ln.Proto).Msg("request line")
		return sess.ServeResource(ln.Path, out)

	case errors.Is(err, request.ErrMalformed):
		return sess.reject(out, response.BadRequestPage(),
			&RequestError{ErrorCode: ErrorCodeMalformedRequest, Detail: "request line", Err: err})

	case errors.Is(err, request.ErrUnsupportedMethod):
		return sess.reject(out, response.BadMethodPage(ln.Method, sess.Settings.Reflector()),
			&RequestError{ErrorCode: ErrorCodeUnsupportedMethod, Detail: ln.Method, Err: err})

	default:
		return sess.reject(out, response.BadRequestPage(),
			&RequestError{ErrorCode: ErrorCodeUnsupportedProtocol, Detail: ln.Proto, Err: err})
	}
}

// reject writes res and returns cause, unless the write itself fails.
func (sess *Session) reject(out io.Writer, res *response.Response, cause *RequestError) error {
	sess.Log.Info().Int("status", int(cause.ErrorCode.Status())).Stringer("reason", cause.ErrorCode).Msg("rejecting request")
	if err := sess.send(out, res); err != nil {
		return err
	}
	return cause
}

func (sess *Session) send(out io.Writer, res *response.Response) error {
	if _, err := res.WriteTo(out); err != nil {
		return &RequestError{ErrorCode: ErrorCodeClientWriteFailure, Detail: res.String(), Err: err}
	}
	return nil
}

package main

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/kaiwenh/Computer-Networks/histReader"
	"github.com/kaiwenh/Computer-Networks/session"
)

const (
	// How long a client gets to finish sending after the response.
	lingerTimeout = 500 * time.Millisecond

	// Octets discarded while lingering before giving up on the client.
	lingerLimit = 64 << 10
)

type closeWriter interface {
	CloseWrite() error
}

// lingerClose half-closes conn and reads off whatever the client still
// sends (headers past the request line) before closing. Closing a TCP
// socket with unread input resets it and the client loses the tail of
// the response.
func lingerClose(conn net.Conn) error {
	if cw, ok := conn.(closeWriter); ok {
		if err := cw.CloseWrite(); err == nil {
			conn.SetReadDeadline(time.Now().Add(lingerTimeout))
			io.Copy(io.Discard, io.LimitReader(conn, lingerLimit))
		}
	}
	return conn.Close()
}

// HandleConnection reads one bounded request off conn, answers it and
// closes conn. The returned error is scoped to this connection only.
func HandleConnection(conn net.Conn, sess *session.Session, log zerolog.Logger) error {
	defer lingerClose(conn)

	st := sess.Settings
	if st.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(st.ReadTimeout))
	}

	// Instrument with a histReader to log all the bytes read
	hr := histReader.NewHistReader(conn, st.MaxRequestSize)
	raw, err := hr.ReadRequest()
	if err != nil {
		return err
	}
	if ev := log.Debug(); ev.Enabled() {
		ev.Int("octets", len(raw.Data)).Msg("received\n" + hr.Dump())
	}
	if raw.Empty() {
		log.Debug().Msg("client sent nothing")
	}
	if raw.Truncated {
		log.Warn().Int("limit", st.MaxRequestSize).Msg("request truncated")
	}

	if st.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(st.WriteTimeout))
	}
	// per-connection copy so log lines carry the connection fields
	connSess := *sess
	connSess.Log = log
	return connSess.Serve(raw.Data, conn)
}

// logOutcome reports how a connection ended.
func logOutcome(log zerolog.Logger, err error) {
	var re *session.RequestError
	switch {
	case err == nil:
		log.Info().Msg("request served")
	case errors.As(err, &re) && re.ErrorCode != session.ErrorCodeClientWriteFailure:
		log.Info().Stringer("code", re.ErrorCode).Msg("request was not successful")
	default:
		log.Warn().Err(err).Msg("connection aborted")
	}
}

package session

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/kaiwenh/Computer-Networks/contenttype"
	"github.com/kaiwenh/Computer-Networks/pkg/bodystream"
	"github.com/kaiwenh/Computer-Networks/response"
)

const RootPath = "/"

var errIsDir = errors.New("is a directory")

// ServeResource answers a validated GET for path.
func (sess *Session) ServeResource(path string, out io.Writer) error {
	sess.Log.Info().Str("path", path).Msg("retrieving resource")

	if path == RootPath {
		return sess.send(out, response.LandingPage(sess.Settings.Port))
	}

	name := strings.TrimPrefix(path, "/")
	f, err := sess.open(name)
	if err != nil {
		sess.Log.Info().Err(err).Str("name", name).Msg("cannot open resource")
		if werr := sess.send(out, response.NotFoundPage(path, sess.Settings.Reflector())); werr != nil {
			return werr
		}
		return &RequestError{ErrorCode: ErrorCodeResourceNotFound, Detail: path, Err: err}
	}
	defer f.Close()

	ct := contenttype.ForName(name)
	if err := sess.send(out, response.SuccessHeader(ct)); err != nil {
		return err
	}

	n, err := bodystream.Copy(out, f, sess.Settings.ChunkSize)
	if err != nil {
		var we *bodystream.WriteError
		if errors.As(err, &we) {
			return &RequestError{ErrorCode: ErrorCodeClientWriteFailure, Detail: name, Err: we.Err}
		}
		// The status line is already out; all that is left is to stop.
		sess.Log.Error().Err(err).Str("name", name).Int64("sent", n).Msg("reading resource failed mid-transfer")
		return fmt.Errorf("reading %s: %w", name, err)
	}
	sess.Log.Debug().Str("name", name).Str("content_type", ct).Int64("octets", n).Msg("resource sent")
	return nil
}

// open returns a readable regular file. Directories count as not found.
func (sess *Session) open(name string) (fs.File, error) {
	f, err := sess.Files.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: errIsDir}
	}
	return f, nil
}

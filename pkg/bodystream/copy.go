package bodystream

import (
	"fmt"
	"io"
)

// A WriteError means the destination failed, as opposed to the source.
type WriteError struct {
	Written int64
	Err     error
}

func (we *WriteError) Error() string {
	return fmt.Sprintf("write failed after %d octets: %v", we.Written, we.Err)
}

func (we *WriteError) Unwrap() error {
	return we.Err
}

// Copy moves src into dst chunk octets at a time until src is drained.
// Read errors are returned unchanged; write errors come back as a
// *WriteError. Either way nothing more is written after the first
// failure.
func Copy(dst io.Writer, src io.Reader, chunk int) (written int64, err error) {
	if chunk <= 0 {
		chunk = 1
	}
	buf := make([]byte, chunk)
	for {
		nr, rerr := src.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			if nw > 0 {
				written += int64(nw)
			}
			if werr == nil && nw != nr {
				werr = io.ErrShortWrite
			}
			if werr != nil {
				return written, &WriteError{Written: written, Err: werr}
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}

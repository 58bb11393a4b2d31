package histReader

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
)

// A RawRequest is what was read from a client, at most the configured
// limit. Truncated is set when the limit was hit before the request
// line ended.
type RawRequest struct {
	Data      []byte
	Truncated bool
}

func (rr RawRequest) Empty() bool {
	return len(rr.Data) == 0
}

// A HistReader reads a bounded request off a connection and keeps a
// copy of everything it read for debugging.
type HistReader struct {
	rd    io.Reader
	limit int
	hist  bytes.Buffer
}

func NewHistReader(rd io.Reader, limit int) *HistReader {
	return &HistReader{rd: rd, limit: limit}
}

func (hr *HistReader) Read(b []byte) (int, error) {
	n, err := hr.rd.Read(b)
	hr.hist.Write(b[:n])
	return n, err
}

// ReadRequest reads until the request line is complete, the limit is
// reached or the peer stops sending. Whatever else arrived in the same
// reads (headers, body) is kept in Data but never waited for.
func (hr *HistReader) ReadRequest() (RawRequest, error) {
	buf := make([]byte, hr.limit)
	total := 0
	for total < len(buf) {
		n, err := hr.Read(buf[total:])
		total += n
		if bytes.IndexByte(buf[:total], '\n') >= 0 {
			break
		}
		if err != nil {
			if errors.Is(err, io.EOF) || total > 0 {
				break
			}
			return RawRequest{}, err
		}
	}

	rr := RawRequest{Data: buf[:total]}
	if total == len(buf) && bytes.IndexByte(rr.Data, '\n') < 0 {
		rr.Truncated = true
	}
	return rr, nil
}

// Dump returns a hex dump of every byte read so far.
func (hr *HistReader) Dump() string {
	return hex.Dump(hr.hist.Bytes())
}

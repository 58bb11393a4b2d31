package response

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
)

const (
	Proto = "HTTP/1.1"
	CRLF  = "\r\n"
)

type HttpCode int

const (
	CodeUnset HttpCode = 0

	Ok             HttpCode = 200
	BadRequest     HttpCode = 400
	NotFound       HttpCode = 404
	NotImplemented HttpCode = 501
)

func (c HttpCode) Phrase() string {
	switch c {
	case Ok:
		return "OK"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case NotImplemented:
		return "Method Not Implemented"
	}
	return "Unknown"
}

// A Reflector decides how client supplied text is embedded in a body.
type Reflector func(string) string

var (
	Verbatim Reflector = func(s string) string { return s }
	Escaped  Reflector = html.EscapeString
)

type stringpair struct {
	k, v string
}

// A Response is a status line, an ordered header list and a body.
// Headers keep the order they were set in.
type Response struct {
	Proto   string
	Code    HttpCode
	headers []stringpair
	body    []byte
}

func New(code HttpCode) *Response {
	return &Response{Proto: Proto, Code: code}
}

// SetHeader replaces the value of k (compared case-insensitively) or
// appends it.
func (res *Response) SetHeader(k, v string) *Response {
	for i := range res.headers {
		if strings.EqualFold(res.headers[i].k, k) {
			res.headers[i].v = v
			return res
		}
	}
	res.headers = append(res.headers, stringpair{k, v})
	return res
}

func (res *Response) Header(k string) string {
	for _, pair := range res.headers {
		if strings.EqualFold(pair.k, k) {
			return pair.v
		}
	}
	return ""
}

func (res *Response) SetBody(body []byte) *Response {
	res.body = body
	return res
}

func (res *Response) Bytes() []byte {
	var buf bytes.Buffer
	res.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo serializes the whole response into one write.
func (res *Response) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	code := res.Code
	if code == CodeUnset {
		code = Ok
	}
	fmt.Fprintf(&buf, "%s %d %s%s", res.Proto, int(code), code.Phrase(), CRLF)
	for _, pair := range res.headers {
		fmt.Fprintf(&buf, "%s: %s%s", pair.k, pair.v, CRLF)
	}
	buf.WriteString(CRLF)
	buf.Write(res.body)

	n, err := w.Write(buf.Bytes())
	if err == nil && n < buf.Len() {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

func (res *Response) String() string {
	return fmt.Sprintf("%s %d %s (%d headers, %d octets)", res.Proto, int(res.Code), res.Code.Phrase(), len(res.headers), len(res.body))
}

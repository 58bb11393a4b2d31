package session

import (
	"errors"
	"fmt"

	"github.com/kaiwenh/Computer-Networks/response"
)

type ErrorCode int32

const (
	ErrorCodeUnset ErrorCode = iota - 1
	ErrorCodeNoError
	ErrorCodeMalformedRequest
	ErrorCodeUnsupportedMethod
	ErrorCodeUnsupportedProtocol
	ErrorCodeResourceNotFound
	ErrorCodeClientWriteFailure
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeNoError:
		return "NoError"
	case ErrorCodeMalformedRequest:
		return "MalformedRequest"
	case ErrorCodeUnsupportedMethod:
		return "UnsupportedMethod"
	case ErrorCodeUnsupportedProtocol:
		return "UnsupportedProtocol"
	case ErrorCodeResourceNotFound:
		return "ResourceNotFound"
	case ErrorCodeClientWriteFailure:
		return "ClientWriteFailure"
	}
	return fmt.Sprintf("ErrorCode(%d)", int32(c))
}

// Status is the response code sent for a failure of this kind.
// ClientWriteFailure has none since nothing more can be sent.
func (c ErrorCode) Status() response.HttpCode {
	switch c {
	case ErrorCodeNoError:
		return response.Ok
	case ErrorCodeMalformedRequest, ErrorCodeUnsupportedProtocol:
		return response.BadRequest
	case ErrorCodeUnsupportedMethod:
		return response.NotImplemented
	case ErrorCodeResourceNotFound:
		return response.NotFound
	}
	return response.CodeUnset
}

// A RequestError ends the processing of one request. It never
// outlives the connection it happened on.
type RequestError struct {
	ErrorCode
	Detail string
	Err    error
}

func (re *RequestError) Error() string {
	if re.Err != nil {
		return fmt.Sprintf("%s (%s): %v", re.ErrorCode, re.Detail, re.Err)
	}
	return fmt.Sprintf("%s (%s)", re.ErrorCode, re.Detail)
}

func (re *RequestError) Unwrap() error {
	return re.Err
}

// CodeOf reports the ErrorCode carried by err, NoError for nil and
// Unset for anything that is not a RequestError.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrorCodeNoError
	}
	var re *RequestError
	if errors.As(err, &re) {
		return re.ErrorCode
	}
	return ErrorCodeUnset
}

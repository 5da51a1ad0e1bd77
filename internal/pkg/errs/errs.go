package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can react without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindTimeout
	KindAuth
	KindRateLimit
	KindHTTP
	KindNoAsset
	KindParse
	KindIO
	KindState
)

var (
	ErrCheckTimeout    = New(KindTimeout, 0, "update check timed out, check your connection", nil)
	ErrDownloadTimeout = New(KindTimeout, 0, "download timed out", nil)

	ErrNoAsset        = New(KindNoAsset, 0, "no suitable download found", nil)
	ErrNoUpdateInfo   = New(KindState, 0, "no update available to download", nil)
	ErrNotDownloaded  = New(KindState, 0, "no update has been downloaded yet", nil)
	ErrCheckInFlight  = New(KindState, 0, "an update check is already in progress", nil)
	ErrTransferActive = New(KindState, 0, "a download is already in progress", nil)
	ErrInstallActive  = New(KindState, 0, "an install is already in progress", nil)
)

type Error struct {
	kind     Kind
	status   int
	message  string
	internal error
}

func New(kind Kind, status int, message string, internal error) *Error {
	return &Error{
		kind:     kind,
		status:   status,
		message:  message,
		internal: internal,
	}
}

func Network(msg string, errs ...error) *Error {
	var err error
	if len(errs) != 0 {
		err = errs[0]
	}
	return New(KindNetwork, 0, msg, err)
}

func HTTP(status int, msg string) *Error {
	return New(KindHTTP, status, msg, nil)
}

func Auth(status int, msg string) *Error {
	return New(KindAuth, status, msg, nil)
}

func RateLimit(status int, msg string) *Error {
	return New(KindRateLimit, status, msg, nil)
}

func Parse(msg string, errs ...error) *Error {
	var err error
	if len(errs) != 0 {
		err = errs[0]
	}
	return New(KindParse, 0, msg, err)
}

func IO(msg string, errs ...error) *Error {
	var err error
	if len(errs) != 0 {
		err = errs[0]
	}
	return New(KindIO, 0, msg, err)
}

func (e *Error) Error() string {
	if e.internal != nil {
		return fmt.Sprintf("%s: %v", e.message, e.internal)
	}
	return e.message
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	return ok && e.kind == t.Kind() && e.message == t.Message()
}

func (e *Error) Unwrap() error {
	return e.internal
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Status() int {
	return e.status
}

func (e *Error) Message() string {
	return e.message
}

func (e *Error) Wrap(err error) *Error {
	return &Error{
		kind:     e.kind,
		status:   e.status,
		message:  e.message,
		internal: err,
	}
}

func (e *Error) WithStatus(status int) *Error {
	return &Error{
		kind:     e.kind,
		status:   status,
		message:  e.message,
		internal: e.internal,
	}
}

// KindOf reports the Kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var t *Error
	if errors.As(err, &t) {
		return t.Kind()
	}
	return KindUnknown
}

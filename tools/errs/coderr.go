package errs

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type CodeErrorI interface {
	ECode() int
	EMsg() string
	WithDetail(detail string) *CodeError
	error
}

// CodeError is the wire-level error shape: a stable code, a short message
// and an optional free-form detail appended at the call site.
type CodeError struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Detail string `json:"detail,omitempty"`
}

func NewCodeError(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

func (e *CodeError) ECode() int   { return e.Code }
func (e *CodeError) EMsg() string { return e.Msg }

func (e *CodeError) clone() *CodeError {
	return &CodeError{Code: e.Code, Msg: e.Msg, Detail: e.Detail}
}

func (e *CodeError) WithDetail(detail string) *CodeError {
	out := e.clone()
	if out.Detail == "" {
		out.Detail = detail
	} else {
		out.Detail += ", " + detail
	}
	return out
}

// WrapMsg clones the code error, appends detail and captures a stack.
func (e *CodeError) WrapMsg(msg string) error {
	return errors.WithStack(e.WithDetail(msg))
}

func (e *CodeError) Is(err error) bool {
	var ce *CodeError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Code == e.Code
}

func (e *CodeError) Error() string {
	v := make([]string, 0, 3)
	v = append(v, strconv.Itoa(e.Code), e.Msg)
	if e.Detail != "" {
		v = append(v, e.Detail)
	}
	return strings.Join(v, " ")
}

// Unwrap peels wrapping layers down to the innermost error.
func Unwrap(err error) error {
	for err != nil {
		unwrap, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		next := unwrap.Unwrap()
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// CodeOf extracts the CodeError from an error chain, or ErrInternal.
func CodeOf(err error) *CodeError {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce
	}
	return ErrInternal
}

func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(err)
}

func WrapMsg(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}

// Package goerror carries the typed errors that usecases return and the router
// renders. Repositories translate driver errors into ErrNotFound and
// ErrConflict; usecases wrap those (or their own sentinels) with a client
// message and a Code, and Code decides the HTTP status.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned by repositories when no row or key matches.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned by repositories on a unique key violation.
	ErrConflict = errors.New("resource conflict")
)

// Type groups errors by who is at fault.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

func (t Type) String() string {
	switch t {
	case TypeServer:
		return "server"
	case TypeBusiness:
		return "business"
	case TypeValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Code selects the HTTP status of an error response.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeUnauthorized
	CodeForbidden
)

var codeStatus = map[Code]int{
	CodeInternal:      http.StatusInternalServerError,
	CodeInvalidFormat: http.StatusBadRequest,
	CodeInvalidInput:  http.StatusUnprocessableEntity,
	CodeNotFound:      http.StatusNotFound,
	CodeConflict:      http.StatusConflict,
	CodeUnauthorized:  http.StatusUnauthorized,
	CodeForbidden:     http.StatusForbidden,
}

func (c Code) String() string {
	if s, ok := codeStatus[c]; ok {
		return http.StatusText(s)
	}
	return http.StatusText(http.StatusInternalServerError)
}

// Error is the application error. It may wrap a cause, which stays reachable
// through errors.Is and errors.As, while Msg is the only text clients see.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	default:
		return e.errType.String() + " error"
	}
}

// String is the verbose form used in logs and test failures.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

func (e *Error) Msg() string {
	return e.msg
}

func (e *Error) Type() Type {
	return e.errType
}

func (e *Error) Code() Code {
	return e.code
}

// Fields maps request fields to validation messages.
func (e *Error) Fields() map[string]string {
	return e.fields
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) StatusCode() int {
	if s, ok := codeStatus[e.code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer hides err behind a generic message; log err before returning it.
func NewServer(err error) error {
	return new(err, "Internal server error", TypeServer, CodeInternal)
}

func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeBusiness, code)
}

// NewBusinessErr is NewBusiness for callers that need errors.Is to keep
// matching a domain sentinel. err is wrapped; msg is what clients see.
func NewBusinessErr(err error, msg string, code Code) error {
	return new(err, msg, TypeBusiness, code)
}

// CodeOf returns the Code carried by err, or CodeInternal when err is not
// an *Error.
func CodeOf(err error) Code {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.code
	}
	return CodeInternal
}

// NewInvalidInput builds a 422. With a non-nil err (a validator failure) the
// fields are left to the router; otherwise kv is read as field/message pairs.
// An odd kv length means the caller could not parse the request at all.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return new(err, "Validation error", TypeValidation, CodeInvalidInput)
	}

	if len(kv)%2 != 0 {
		return new(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}

	fields := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}

	return &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput, fields: fields}
}

// NewInvalidFormat builds a 400 for a body that could not be decoded.
func NewInvalidFormat(msgs ...string) error {
	if len(msgs) == 0 {
		return new(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}
	return new(nil, msgs[0], TypeValidation, CodeInvalidFormat)
}

package code

import (
	"fmt"
	"net/http"
)

// Code is a stable error number plus the HTTP status it maps to at the web
// boundary. Instances are compared by number, so WithMsg/WithErr return
// copies and never mutate the package-level values.
type Code struct {
	code   int
	status int
	msg    string
}

func New(code int, status int, msg string) *Code {
	return &Code{code: code, status: status, msg: msg}
}

func (c *Code) Error() string { return c.msg }

func (c *Code) String() string { return c.msg }

func (c *Code) Code() int { return c.code }

func (c *Code) Status() int { return c.status }

// WithMsg returns a copy carrying a caller-supplied message.
func (c *Code) WithMsg(msg string) *Code {
	return &Code{code: c.code, status: c.status, msg: msg}
}

// WithMsgf returns a copy carrying a formatted message.
func (c *Code) WithMsgf(format string, args ...any) *Code {
	return c.WithMsg(fmt.Sprintf(format, args...))
}

// WithErr returns a copy wrapping the underlying error text.
func (c *Code) WithErr(err error) *Code {
	if err == nil {
		return c
	}
	return &Code{code: c.code, status: c.status, msg: fmt.Sprintf("%s: %v", c.msg, err)}
}

// Is lets errors.Is match any copy produced by WithMsg/WithErr against the
// package-level sentinel.
func (c *Code) Is(target error) bool {
	t, ok := target.(*Code)
	return ok && t.code == c.code
}

func (c *Code) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", c.code)), nil
}

var (
	OK       = New(0, http.StatusOK, "ok")
	ParamErr = New(10001, http.StatusBadRequest, "invalid request parameter")
	Internal = New(10002, http.StatusInternalServerError, "internal error")

	UnLogin          = New(20001, http.StatusUnauthorized, "not logged in")
	InvalidToken     = New(20002, http.StatusUnauthorized, "invalid or expired token")
	LoginErr         = New(20003, http.StatusUnauthorized, "invalid username or password")
	LoginFormatErr   = New(20004, http.StatusUnauthorized, "malformed authorization header")
	PermissionDenied = New(20005, http.StatusForbidden, "operation requires admin role")
	UsernameTaken    = New(20006, http.StatusConflict, "username already exists")

	ValidationErr     = New(30001, http.StatusBadRequest, "invalid field value")
	RecordNotFound    = New(30002, http.StatusNotFound, "record not found")
	InsufficientStock = New(30003, http.StatusConflict, "stock quantity is zero")
	SchemaMismatch    = New(30004, http.StatusBadRequest, "import file is missing required columns")

	CreateDataErr  = New(40001, http.StatusInternalServerError, "create record failed")
	QueryRecordErr = New(40002, http.StatusInternalServerError, "query records failed")
	UpdateDataErr  = New(40003, http.StatusInternalServerError, "update record failed")
	DeleteDataErr  = New(40004, http.StatusInternalServerError, "delete record failed")

	ImportErr      = New(50001, http.StatusBadRequest, "import file unreadable")
	ExportErr      = New(50002, http.StatusInternalServerError, "export failed")
	CASQueryErr    = New(50003, http.StatusBadGateway, "cas lookup failed")
	CASNotFoundErr = New(50004, http.StatusNotFound, "cas not found")
)

// From normalizes an arbitrary error to a *Code, defaulting to Internal.
func From(err error) *Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(*Code); ok {
		return c
	}
	return Internal.WithErr(err)
}

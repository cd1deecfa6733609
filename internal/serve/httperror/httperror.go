package httperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"
)

// sanitizedDetail replaces the internal error detail outside of development mode.
const sanitizedDetail = "Internal server error"

// HTTPError is rendered as `{"error": ..., "message": ..., "details": [...]}`.
type HTTPError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	// Detail carries the underlying error message, see WithDetail.
	Detail string `json:"message,omitempty"`
	// Details lists every violation found in the request, in a stable order.
	Details []string `json:"details,omitempty"`
	// Err is an optional field that can be used to wrap the original error to pass it forward.
	Err error `json:"-"`
}

// ReportErrorFunc is a function type used to report unexpected errors.
type ReportErrorFunc func(ctx context.Context, err error, msg string)

type ReportError struct {
	reportErrorFunc ReportErrorFunc
}

var defaultReportErrorFunc = ReportError{
	reportErrorFunc: func(ctx context.Context, err error, msg string) {
		if msg != "" {
			err = fmt.Errorf("%s: %w", msg, err)
		}
		log.Ctx(ctx).WithStack(err).Errorf("%+v", err)
	},
}

// SetDefaultReportErrorFunc sets a new defaultReportErrorFunc to report unexpected errors.
func SetDefaultReportErrorFunc(fn ReportErrorFunc) {
	defaultReportErrorFunc.reportErrorFunc = fn
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// WithDetail sets the `message` field from the wrapped error when exposeDetail is true, and to a generic message
// otherwise.
func (e *HTTPError) WithDetail(exposeDetail bool) *HTTPError {
	if exposeDetail && e.Err != nil {
		e.Detail = e.Err.Error()
	} else {
		e.Detail = sanitizedDetail
	}
	return e
}

func (e *HTTPError) Render(w http.ResponseWriter) {
	httpjson.RenderStatus(w, e.StatusCode, e, httpjson.JSON)
}

func NewHTTPError(statusCode int, msg string, originalErr error, details []string) *HTTPError {
	if msg == "" && originalErr != nil && len(details) == 0 {
		var hErr *HTTPError
		if errors.As(originalErr, &hErr) && (hErr.StatusCode == statusCode) {
			return hErr
		}
	}

	return &HTTPError{
		StatusCode: statusCode,
		Message:    msg,
		Details:    details,
		Err:        originalErr,
	}
}

func NotFound(msg string, originalErr error) *HTTPError {
	if msg == "" {
		msg = "Resource not found"
	}
	return NewHTTPError(http.StatusNotFound, msg, originalErr, nil)
}

func BadRequest(msg string, originalErr error, details []string) *HTTPError {
	if msg == "" {
		msg = "The request was invalid in some way"
	}
	return NewHTTPError(http.StatusBadRequest, msg, originalErr, details)
}

func Unauthorized(msg string, originalErr error) *HTTPError {
	if msg == "" {
		msg = "Not authorized"
	}
	return NewHTTPError(http.StatusUnauthorized, msg, originalErr, nil)
}

func Forbidden(msg string, originalErr error) *HTTPError {
	if msg == "" {
		msg = "Access denied"
	}
	return NewHTTPError(http.StatusForbidden, msg, originalErr, nil)
}

func MethodNotAllowed() *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed", nil, nil)
}

func TooManyRequests() *HTTPError {
	return NewHTTPError(http.StatusTooManyRequests, "Too many requests", nil, nil)
}

// InternalError reports originalErr through the configured ReportErrorFunc before building the error.
func InternalError(ctx context.Context, msg string, originalErr error) *HTTPError {
	if msg == "" {
		msg = "An internal error occurred while processing this request"
	}
	defaultReportErrorFunc.reportErrorFunc(ctx, originalErr, msg)
	return NewHTTPError(http.StatusInternalServerError, msg, originalErr, nil)
}

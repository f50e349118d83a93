// Package apperrors defines the application error type used across the feed
// server. Errors form chains: a package declares a base error and derives
// more specific ones with New. The HTTP status code travels with the error
// so the transport layer can render it without switching on error values.
package apperrors

type Error interface {
	Error() string
	ErrorAll() string
	New(msg string) Error
	Msg(msg string) Error
	MsgErr(msg string, err ...error) Error
	Err(err ...error) Error
	Unwrap() []error
	Is(target error) bool
	SetExpandError(expand bool) Error
	SetStatusCode(code int) Error
	StatusCode() int
}

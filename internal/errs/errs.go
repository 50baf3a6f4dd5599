package errs

import (
	"fmt"
	"net/http"
)

// Kind classifies a failure so the transport layer can pick a status code
// without string matching.
type Kind int

const (
	KindBadRequest Kind = iota
	KindUnauthenticated
	KindForbidden
	KindInvalidCredentials
	KindNotFound
	KindInvalidToken // reset token invalid or expired
	KindEmailDelivery
	KindUpstream
)

type E struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}

func (e *E) Unwrap() error { return e.Err }

func BadRequest(msg string) error      { return &E{Kind: KindBadRequest, Msg: msg} }
func Unauthenticated(msg string) error { return &E{Kind: KindUnauthenticated, Msg: msg} }
func Forbidden(msg string) error       { return &E{Kind: KindForbidden, Msg: msg} }
func NotFound(msg string) error        { return &E{Kind: KindNotFound, Msg: msg} }
func InvalidToken(msg string) error    { return &E{Kind: KindInvalidToken, Msg: msg} }

// InvalidCredentials is deliberately identical for unknown email and wrong
// password so login cannot be used to enumerate accounts.
func InvalidCredentials() error {
	return &E{Kind: KindInvalidCredentials, Msg: "invalid email or password"}
}

func EmailDelivery(msg string, err error) error {
	return &E{Kind: KindEmailDelivery, Msg: msg, Err: err}
}

func Upstream(msg string, err error) error {
	return &E{Kind: KindUpstream, Msg: msg, Err: err}
}

func Wrapf(kind Kind, err error, format string, args ...any) error {
	return &E{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of err when it is an *E.
func KindOf(err error) (Kind, bool) {
	if e, ok := err.(*E); ok {
		return e.Kind, true
	}
	return 0, false
}

// HTTPStatus maps an error to the status the response envelope should carry.
// Unknown errors are treated as internal failures.
func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case KindBadRequest, KindInvalidToken:
		return http.StatusBadRequest
	case KindUnauthenticated, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

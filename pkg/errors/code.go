package errors

import "net/http"

// Code is a stable, machine-readable error identifier. Codes are part of the
// HTTP API contract and appear verbatim in error response bodies.
type Code string

// Caller mistakes.
const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidKind     Code = "INVALID_KIND"
	ErrCodeInvalidID       Code = "INVALID_ID"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeSourceTooLarge  Code = "SOURCE_TOO_LARGE"
)

// Missing resources.
const (
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeDocumentNotFound Code = "DOCUMENT_NOT_FOUND"
)

// Upstream trouble: explainer APIs, Redis, MongoDB.
const (
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"
	ErrCodeUnavailable Code = "UNAVAILABLE"
)

const (
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// HTTPStatus returns the response status for c. Unknown and empty codes
// map to 500.
func (c Code) HTTPStatus() int {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidKind,
		ErrCodeInvalidID, ErrCodeInvalidDocument:
		return http.StatusBadRequest
	case ErrCodeSourceTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeNotFound, ErrCodeDocumentNotFound:
		return http.StatusNotFound
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeNetwork, ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// ClientFault reports whether c blames the request rather than the server.
func (c Code) ClientFault() bool {
	s := c.HTTPStatus()
	return s >= 400 && s < 500
}

package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind is the closed set of failure categories the pipeline can surface.
// Classification happens once (in the invoker or the orchestrator); everything
// downstream only switches on the Kind.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindMisconfigured
	KindPayloadTooLarge
	KindRateLimited
	KindTimeout
	KindServiceUnavailable
	KindEmptyResponse
	KindSearchUnavailable
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindMisconfigured:
		return "misconfigured"
	case KindPayloadTooLarge:
		return "payload_too_large"
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindEmptyResponse:
		return "empty_response"
	case KindSearchUnavailable:
		return "search_unavailable"
	default:
		return "internal"
	}
}

// Error carries a Kind plus the internal cause. The cause is for logs only;
// user-facing text comes from the message catalogue below.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Cause: fmt.Errorf(format, args...)}
}

// KindOf extracts the Kind from any error in the chain, defaulting to internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsRetryable reports whether the invoker may retry after this error.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindRateLimited, KindTimeout, KindServiceUnavailable, KindInternal:
		return true
	default:
		return false
	}
}

// userMessages is the fixed catalogue of short, non-technical texts returned
// to callers. Raw provider errors never leave the process.
var userMessages = map[Kind]string{
	KindInvalidInput:       "Invalid request. Please check your input and selected mode.",
	KindMisconfigured:      "The service is not configured correctly. Please contact the administrator.",
	KindPayloadTooLarge:    "Your text is too long for this mode. Please shorten it and try again.",
	KindRateLimited:        "The service is experiencing high demand. Please try again in a moment.",
	KindTimeout:            "The request timed out. Please try again.",
	KindServiceUnavailable: "The AI service is temporarily unavailable. Please try again later.",
	KindEmptyResponse:      "Something went wrong while generating a response. Please try again.",
	KindInternal:           "Something went wrong. Please try again.",
}

// HTTPStatus maps a Kind to the response status code. This is the single place
// where classification meets the transport.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return fiber.StatusBadRequest
	case KindMisconfigured:
		return fiber.StatusUnauthorized
	case KindPayloadTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case KindRateLimited:
		return fiber.StatusTooManyRequests
	case KindTimeout, KindServiceUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// UserMessage returns the catalogue text for a Kind.
func UserMessage(kind Kind) string {
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return userMessages[KindInternal]
}

package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a Failure independently of its HTTP code.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAvailabilityConflict
	KindInvalidTransition
	KindPersistence
	KindConversion
	KindNotFound
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAvailabilityConflict:
		return "availability_conflict"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindPersistence:
		return "persistence"
	case KindConversion:
		return "conversion"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    Kind   `json:"-"`
	cause   error
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter", Kind: KindValidation}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter", Kind: KindValidation}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions", Kind: KindForbidden}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource", Kind: KindForbidden}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap returns the collaborator error a persistence failure was built from, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Kind:    KindValidation,
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Kind:    KindValidation,
	}
}

// Validation is a local precondition failure. It never reaches a collaborator.
func Validation(msg string) error {
	return BadRequestFromString(msg)
}

// AvailabilityConflict reports that the requested time window cannot be booked.
func AvailabilityConflict(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: msg,
		Kind:    KindAvailabilityConflict,
	}
}

// InvalidTransition reports a status change that the booking state machine forbids.
func InvalidTransition(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: msg,
		Kind:    KindInvalidTransition,
	}
}

// Persistence wraps a collaborator failure verbatim. The collaborator's code is kept
// when it carries one.
func Persistence(err error) error {
	if err == nil {
		return nil
	}

	code := http.StatusInternalServerError

	var fail *Failure
	if errors.As(err, &fail) && fail.Code != 0 {
		code = fail.Code
	}

	return &Failure{
		Code:    code,
		Message: err.Error(),
		Kind:    KindPersistence,
		cause:   err,
	}
}

// Conversion reports a currency lookup or computation failure.
func Conversion(msg string) error {
	return &Failure{
		Code:    http.StatusBadGateway,
		Message: msg,
		Kind:    KindConversion,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
		Kind:    KindUnauthorized,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
		Kind:    KindNotFound,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
		Kind:    KindForbidden,
	}
}

// New builds a Failure from a raw status code and message, as returned by a remote collaborator.
func New(code int, msg string) error {
	return &Failure{
		Code:    code,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the kind of the outermost Failure in the chain.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// Package classifier maps booking store failures onto the local error taxonomy.
package classifier

import (
	"errors"
	"net/http"
	"strings"

	"vietour/shared/failure"
)

// ConflictMessage is reported for every availability conflict, whatever the store said.
const ConflictMessage = "Tour guide is not available for the selected dates. Please choose different dates."

var conflictKeywords = []string{
	"not available",
	"unavailable",
	"already booked",
	"time slot",
	"schedule conflict",
	"booking conflict",
	"date conflict",
}

// Classify decides whether a store failure means the requested window cannot be booked.
func Classify(status int, message string) failure.Kind {
	lowered := strings.ToLower(message)

	for _, keyword := range conflictKeywords {
		if strings.Contains(lowered, keyword) {
			return failure.KindAvailabilityConflict
		}
	}

	switch status {
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return failure.KindAvailabilityConflict
	case http.StatusBadRequest:
		if strings.TrimSpace(message) == "" {
			return failure.KindAvailabilityConflict
		}
	}

	return failure.KindPersistence
}

// FromError extracts the status and message of err. Errors that are not a
// *failure.Failure carry no status.
func FromError(err error) (status int, message string) {
	if err == nil {
		return 0, ""
	}

	var fail *failure.Failure
	if errors.As(err, &fail) {
		return fail.Code, fail.Message
	}

	return 0, err.Error()
}

// Wrap turns a store failure into an availability conflict or a persistence failure.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	if Classify(FromError(err)) == failure.KindAvailabilityConflict {
		return failure.AvailabilityConflict(ConflictMessage)
	}

	return failure.Persistence(err)
}

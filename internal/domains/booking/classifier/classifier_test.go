package classifier_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"vietour/internal/domains/booking/classifier"
	"vietour/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		expected failure.Kind
	}{
		{"not available keyword", http.StatusInternalServerError, "Guide is NOT AVAILABLE on these dates", failure.KindAvailabilityConflict},
		{"unavailable keyword", 0, "slot unavailable", failure.KindAvailabilityConflict},
		{"already booked keyword", http.StatusOK, "Already booked", failure.KindAvailabilityConflict},
		{"time slot keyword", 0, "time slot taken", failure.KindAvailabilityConflict},
		{"schedule conflict keyword", 0, "Schedule conflict detected", failure.KindAvailabilityConflict},
		{"booking conflict keyword", 0, "booking conflict", failure.KindAvailabilityConflict},
		{"date conflict keyword", 0, "date conflict", failure.KindAvailabilityConflict},
		{"409 without message", http.StatusConflict, "", failure.KindAvailabilityConflict},
		{"409 with unrelated message", http.StatusConflict, "duplicate", failure.KindAvailabilityConflict},
		{"422", http.StatusUnprocessableEntity, "bad entity", failure.KindAvailabilityConflict},
		{"unqualified 400", http.StatusBadRequest, "", failure.KindAvailabilityConflict},
		{"qualified 400", http.StatusBadRequest, "location too long", failure.KindPersistence},
		{"500", http.StatusInternalServerError, "database is down", failure.KindPersistence},
		{"no status no message", 0, "", failure.KindPersistence},
		{"network error", 0, "dial tcp: connection refused", failure.KindPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.status, tt.message))
		})
	}
}

func TestFromError(t *testing.T) {
	status, message := classifier.FromError(fmt.Errorf("insert: %w", failure.New(http.StatusConflict, "overlap")))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "overlap", message)

	status, message = classifier.FromError(errors.New("timeout"))
	assert.Zero(t, status)
	assert.Equal(t, "timeout", message)

	status, message = classifier.FromError(nil)
	assert.Zero(t, status)
	assert.Empty(t, message)
}

func TestWrap(t *testing.T) {
	assert.NoError(t, classifier.Wrap(nil))

	conflict := classifier.Wrap(failure.New(http.StatusConflict, ""))
	assert.True(t, failure.IsKind(conflict, failure.KindAvailabilityConflict))
	assert.Equal(t, classifier.ConflictMessage, conflict.Error())
	assert.Equal(t, http.StatusConflict, failure.GetCode(conflict))

	cause := errors.New("connection reset by peer")
	persistence := classifier.Wrap(cause)
	assert.True(t, failure.IsKind(persistence, failure.KindPersistence))
	assert.Equal(t, "connection reset by peer", persistence.Error())
	assert.ErrorIs(t, persistence, cause)
}

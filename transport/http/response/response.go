package response

import (
	"encoding/json"
	"net/http"

	"vietour/shared/constant"
	"vietour/shared/failure"
	"vietour/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error carries the failure message and, when known, its kind (validation,
// availability_conflict, invalid_transition, persistence, conversion, ...).
type Error struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: message})
}

func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	write(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError answers with the status code carried by err, or 500 for plain errors.
func WithError(writer http.ResponseWriter, err error) {
	payload := Error{Error: err.Error()}

	if kind := failure.GetKind(err); kind != failure.KindUnknown {
		payload.Kind = kind.String()
	}

	write(writer, failure.GetCode(err), payload)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

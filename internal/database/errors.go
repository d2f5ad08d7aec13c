package database

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// MappedError is a stable status/message/code triple for provider
// failures, suitable for direct serialization in a failure envelope.
type MappedError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// MapError translates a storage-layer error into a MappedError. Total:
// unknown errors fall back to a generic 500.
func MapError(err error) MappedError {
	switch {
	case err == nil:
		return MappedError{Status: http.StatusInternalServerError, Message: "Internal server error", Code: "unknown"}
	case errors.Is(err, mongo.ErrNoDocuments),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrUserNotFound):
		return MappedError{Status: http.StatusNotFound, Message: "Document not found", Code: "not-found"}
	case mongo.IsDuplicateKeyError(err), errors.Is(err, ErrEmailTaken):
		return MappedError{Status: http.StatusConflict, Message: "Document already exists", Code: "already-exists"}
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return MappedError{Status: http.StatusGatewayTimeout, Message: "Request timeout", Code: "deadline-exceeded"}
	case isUnavailable(err):
		return MappedError{Status: http.StatusServiceUnavailable, Message: "Service temporarily unavailable", Code: "unavailable"}
	default:
		return MappedError{Status: http.StatusInternalServerError, Message: "Internal server error", Code: "unknown"}
	}
}

func isUnavailable(err error) bool {
	var selErr topology.ServerSelectionError
	if errors.As(err, &selErr) {
		return true
	}
	return mongo.IsNetworkError(err)
}

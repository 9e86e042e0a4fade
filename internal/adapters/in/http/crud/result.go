package crud

import (
	"net/http"

	"dds/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// Status tells which of the response shapes a Result carries.
type Status int

const (
	// StatusOK carries a value.
	StatusOK Status = iota + 1

	// StatusNotFound carries notifications: the addressed record does not exist.
	StatusNotFound

	// StatusBadRequest carries notifications: the record exists (or is new)
	// but the request was rejected.
	StatusBadRequest
)

// HTTPStatus maps the result status to its HTTP status code.
func (s Status) HTTPStatus() int {
	switch s {
	case StatusOK:
		return http.StatusOK
	case StatusNotFound:
		return http.StatusNotFound
	case StatusBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not found"
	case StatusBadRequest:
		return "bad request"
	default:
		return "unknown"
	}
}

// Result is the outcome of a controller operation that did not fail
// unexpectedly: either a value or a list of notifications.
type Result[T any] struct {
	status        Status
	value         T
	notifications []kernel.Notification
}

// OK wraps a successful value.
func OK[T any](value T) Result[T] {
	return Result[T]{status: StatusOK, value: value}
}

// NotFound reports that the addressed record does not exist.
func NotFound[T any](notifications ...kernel.Notification) Result[T] {
	return Result[T]{status: StatusNotFound, notifications: notifications}
}

// BadRequest reports that the request was rejected.
func BadRequest[T any](notifications ...kernel.Notification) Result[T] {
	return Result[T]{status: StatusBadRequest, notifications: notifications}
}

// Status returns which shape the result has.
func (r Result[T]) Status() Status {
	return r.status
}

// IsOK reports whether the result carries a value.
func (r Result[T]) IsOK() bool {
	return r.status == StatusOK
}

// Value returns the carried value; the zero value unless IsOK.
func (r Result[T]) Value() T {
	return r.value
}

// Notifications returns the failures; empty when IsOK.
func (r Result[T]) Notifications() []kernel.Notification {
	return r.notifications
}

// Empty is the value of successful operations without a response body.
type Empty struct{}

// Created is the body returned after a successful create.
type Created struct {
	ID uuid.UUID `json:"id"`
}

// NotificationView is the wire shape of a notification. Every error body of
// the API is a JSON array of them.
type NotificationView struct {
	Property string `json:"property"`
	Message  string `json:"message"`
}

// NewNotificationViews converts notifications to their wire shape, keeping order.
func NewNotificationViews(notifications []kernel.Notification) []NotificationView {
	views := make([]NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, NotificationView{
			Property: n.Property(),
			Message:  n.Message(),
		})
	}
	return views
}

package kernel

import (
	"errors"
	"fmt"
	"slices"

	"dds/internal/pkg/errs"
)

// Notification is a single field-scoped validation or business rule failure.
// It is the element of every error body returned by the API.
type Notification struct {
	property string
	message  string
}

// NewNotification creates a Notification for property.
func NewNotification(property, message string) Notification {
	return Notification{
		property: property,
		message:  message,
	}
}

// Property returns the name of the field the notification refers to.
func (n Notification) Property() string {
	return n.property
}

// Message returns the human readable failure.
func (n Notification) Message() string {
	return n.message
}

func (n Notification) String() string {
	return fmt.Sprintf("%s: %s", n.property, n.message)
}

// NotificationFromError translates the typed errors of package errs into a
// notification keyed by their parameter name. Any other error keeps its
// message and gets an empty property.
func NotificationFromError(err error) Notification {
	var (
		required   *errs.ValueIsRequiredError
		invalid    *errs.ValueIsInvalidError
		outOfRange *errs.ValueIsOutOfRangeError
		notFound   *errs.ObjectNotFoundError
	)

	switch {
	case errors.As(err, &required):
		return NewNotification(required.ParamName, errs.ErrValueIsRequired.Error())
	case errors.As(err, &invalid):
		if invalid.Cause != nil {
			return NewNotification(invalid.ParamName, invalid.Cause.Error())
		}
		return NewNotification(invalid.ParamName, errs.ErrValueIsInvalid.Error())
	case errors.As(err, &outOfRange):
		return NewNotification(outOfRange.ParamName,
			fmt.Sprintf("must be between %v and %v", outOfRange.Min, outOfRange.Max))
	case errors.As(err, &notFound):
		return NewNotification(notFound.ParamName, "record not found")
	default:
		return NewNotification("", err.Error())
	}
}

// Notifiable is the validity state shared by entities and services. Embed it
// to get Invalid and Notifications; a Notifiable is invalid exactly when it
// holds at least one notification.
//
// The zero value is valid and ready to use. Notifiable is not safe for
// concurrent use; it lives for the duration of one request.
type Notifiable struct {
	notifications []Notification
}

// AddNotification records a failure for property.
func (n *Notifiable) AddNotification(property, message string) {
	n.notifications = append(n.notifications, NewNotification(property, message))
}

// AddNotifications records the given notifications in order.
func (n *Notifiable) AddNotifications(notifications ...Notification) {
	n.notifications = append(n.notifications, notifications...)
}

// AddError records one notification per error joined into err. A nil err is
// ignored, which lets setters be chained:
//
//	c.AddError(c.setName(name))
func (n *Notifiable) AddError(err error) {
	if err == nil {
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			n.AddError(e)
		}
		return
	}

	n.notifications = append(n.notifications, NotificationFromError(err))
}

// Invalid reports whether any notification was recorded.
func (n *Notifiable) Invalid() bool {
	return len(n.notifications) > 0
}

// Valid is the negation of Invalid.
func (n *Notifiable) Valid() bool {
	return !n.Invalid()
}

// Notifications returns a copy of the recorded notifications, in insertion order.
func (n *Notifiable) Notifications() []Notification {
	return slices.Clone(n.notifications)
}

// Clear drops every recorded notification.
func (n *Notifiable) Clear() {
	n.notifications = nil
}

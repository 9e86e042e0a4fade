// Package kernel provides the primitives shared by every entity of the system.
//
// The package includes:
//   - UUID: the identifier value object used as the sole addressing key
//   - Email: a normalized e-mail address value object
//   - Notification: a (property, message) pair describing one rule violation
//   - Notifiable: the validity state (invalid flag plus ordered notifications)
//     embedded by entities and by the CRUD service
//
// Expected validation problems are never returned as errors by entities:
// they are accumulated as notifications so that the HTTP layer can report all
// of them at once. Typed errors from package errs are converted with
// NotificationFromError, keeping their parameter name as the property.
package kernel

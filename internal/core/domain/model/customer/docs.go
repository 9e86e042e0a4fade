// Package customer provides the Customer entity.
//
// Customers are identified by a kernel.UUID and carry a name and a contact
// e-mail. Constructors accumulate rule violations as notifications instead of
// failing, so a client submitting several bad fields learns about all of them
// in one response. Uniqueness of the e-mail is a cross-entity rule and is
// enforced by the customer rules of the CRUD service, not here.
package customer

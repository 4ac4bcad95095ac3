// Package validator checks request and domain structs against their
// `validate` tags.
//
// Usecases depend on the Validator interface; V10Validator is the
// go-playground/validator implementation with English messages and the
// password and username rules used by registration and login.
package validator

// Validator validates a struct. A failed validation returns an error whose
// Values method exposes a snake_case field to message map.
type Validator interface {
	Validate(data any) error
}

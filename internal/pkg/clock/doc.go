// Package clock abstracts the wall clock.
//
// Token expiry, refresh-token validity and audit timestamps all read time
// through Clocker so tests can pin or advance it.
package clock

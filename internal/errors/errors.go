// Package errors declares the error kinds shared by the fetch, format and
// send stages. Callers match them with errors.Is.
package errors

import "errors"

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrTransport         = errors.New("transport failure")
	ErrUpstream          = errors.New("upstream error")
	ErrMalformedRecord   = errors.New("malformed match record")
)

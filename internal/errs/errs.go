// Package errs holds the sentinel errors shared by every internal parsing
// package and re-exported verbatim by the public hdc5 package. Keeping them
// here (rather than in hdc5 itself) lets internal/* wrap them without an
// import cycle back to the façade package.
package errs

import "errors"

var (
	IO            = errors.New("hdc5: i/o error")
	Format        = errors.New("hdc5: malformed container")
	Unsupported   = errors.New("hdc5: unsupported feature")
	TypeMismatch  = errors.New("hdc5: datatype mismatch")
	NotFound      = errors.New("hdc5: object not found")
	Decompression = errors.New("hdc5: decompression failed")
	Shape         = errors.New("hdc5: shape mismatch")
	Utf8          = errors.New("hdc5: invalid utf-8 name")
)

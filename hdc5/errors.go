// Package hdc5 is a read-only decoder for HDC5 container files: a tree of
// named groups and multi-dimensional typed datasets stored behind a
// superblock, B-trees, local heaps and versioned object headers in a single
// random-access file.
package hdc5

import (
	"errors"

	"github.com/mwhittaker/hdc5/internal/errs"
)

// Error kinds. The error model is flat, not nested: every failure
// propagated by this package wraps exactly one of these sentinels, and
// callers compare with errors.Is rather than type-switching on a richer
// error hierarchy.
var (
	// ErrIO signals a failure of the underlying stream (short read, seek
	// past EOF, closed file).
	ErrIO = errs.IO

	// ErrFormat signals a signature mismatch, unsupported structural
	// version, or malformed message.
	ErrFormat = errs.Format

	// ErrUnsupported signals a recognized but unimplemented construct:
	// soft/external link targets, a filter type outside {shuffle,
	// deflate}, or a filter pipeline on contiguous storage. A non-zero
	// per-chunk filter mask is reported as ErrFormat, and a stored
	// datatype that does not match the requested element type as
	// ErrTypeMismatch.
	ErrUnsupported = errs.Unsupported

	// ErrTypeMismatch signals that the requested element type disagrees
	// with the dataset's stored datatype.
	ErrTypeMismatch = errs.TypeMismatch

	// ErrNotFound signals that a name is absent from a group.
	ErrNotFound = errs.NotFound

	// ErrDecompression signals an inflate failure.
	ErrDecompression = errs.Decompression

	// ErrShape signals an array shape/size inconsistency.
	ErrShape = errs.Shape

	// ErrUtf8 signals that name bytes were not valid UTF-8.
	ErrUtf8 = errs.Utf8

	// ErrClosed is returned when a child's object header would be parsed
	// (Group.Object, Group.Group, Group.Dataset) after the FileReader was
	// closed. Other operations do not check whether the reader is closed.
	ErrClosed = errors.New("hdc5: file reader is closed")

	// ErrNotGroup / ErrNotDataset signal a classification mismatch on a
	// downcasting accessor (Group.Group / Group.Dataset).
	ErrNotGroup   = errors.New("hdc5: object is not a group")
	ErrNotDataset = errors.New("hdc5: object is not a dataset")
)

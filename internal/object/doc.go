// Package object reads an HDF5 object header (group, dataset, or committed
// datatype) and exposes its decoded messages.
//
// [Read] auto-detects v1 ("the first byte is 1") versus v2 ("OHDR") headers
// and follows any continuation chunks ([message.TypeObjectContinuation])
// transparently, returning a flat [Header] with every message collected
// across the chunk stream. V2 chunk checksums are verified against the
// trailing lookup3 hash; a mismatch, an unsupported header version, or a
// non-default attribute phase-change flag all fail with an error wrapping
// [errs.Format].
package object

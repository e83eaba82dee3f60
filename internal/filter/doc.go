// Package filter decodes chunk data through the two filters this
// container format supports: deflate (zlib inflate) and shuffle (byte
// transpose). [Pipeline.Decode] runs them in reverse registration order
// and rejects any chunk whose filter mask is non-zero, since this
// decoder has no way to know which filter a set bit was meant to skip.
package filter

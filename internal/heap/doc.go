// Package heap implements HDC5 local heaps: the variable-length name
// storage used by v1 group symbol tables.
//
// A local heap (signature "HEAP") is a flat data segment of
// NUL-terminated strings. A v1 group's B-tree leaves hold symbol table
// entries that reference member names by byte offset into the group's
// local heap.
//
//	h, err := heap.Read(reader, heapAddress)
//	name, err := h.GetString(nameOffset)
package heap

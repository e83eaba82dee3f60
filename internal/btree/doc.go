// Package btree implements the v1 B-trees ("TREE" signature) HDC5 uses to
// index v1 group symbol tables and chunked dataset storage.
//
// # Group indexing
//
// [ReadGroupEntries] walks a group's B-tree, following leaf pointers into
// symbol table nodes ("SNOD") and resolving each entry's name through the
// group's local heap.
//
// # Chunk indexing
//
// [ReadChunkIndex] walks a dataset's chunk B-tree and returns a
// [ChunkIndex], whose FindChunk method locates the chunk covering a given
// element coordinate.
package btree

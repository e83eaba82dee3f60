package btree

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
)

// ChunkEntry is one chunk of a chunked dataset's B-tree index.
type ChunkEntry struct {
	// Offset holds the chunk's starting coordinates in dataset element
	// space, one value per dataset dimension.
	Offset []uint64

	// FilterMask has bit i set when filter i (in pipeline order) was
	// skipped for this chunk.
	FilterMask uint32

	// Size is the on-disk size of the chunk, before inverting the filter
	// pipeline.
	Size uint32

	// Address is the file offset of the chunk's raw bytes.
	Address uint64
}

// ChunkIndex is the full set of chunk entries for one dataset.
type ChunkIndex struct {
	NDims   int
	Entries []ChunkEntry
}

// ReadChunkIndex walks the v1 B-tree chunk index rooted at btreeAddr.
// ndims is the dataset's dimensionality, not counting the trailing
// element-size dimension the B-tree keys carry.
func ReadChunkIndex(r *byteio.Reader, btreeAddr uint64, ndims int) (*ChunkIndex, error) {
	entries, err := readChunkBTreeNode(r, btreeAddr, ndims)
	if err != nil {
		return nil, err
	}
	return &ChunkIndex{NDims: ndims, Entries: entries}, nil
}

func readChunkBTreeNode(r *byteio.Reader, address uint64, ndims int) ([]ChunkEntry, error) {
	nr := r.At(int64(address))

	sig, err := nr.ReadBytes(4)
	if err != nil {
		return nil, fmt.Errorf("btree: reading signature at %d: %w", address, err)
	}
	if string(sig) != string(btreeSignature) {
		return nil, fmt.Errorf("btree: bad signature %q at %d: %w", sig, address, errs.Format)
	}

	nodeType, err := nr.ReadUint8()
	if err != nil {
		return nil, err
	}
	if nodeType != 1 {
		return nil, fmt.Errorf("btree: node at %d has type %d, expected 1 (chunk): %w", address, nodeType, errs.Format)
	}

	nodeLevel, err := nr.ReadUint8()
	if err != nil {
		return nil, err
	}
	entriesUsed, err := nr.ReadUint16()
	if err != nil {
		return nil, err
	}
	if _, err := nr.ReadOffset(); err != nil { // left sibling
		return nil, err
	}
	if _, err := nr.ReadOffset(); err != nil { // right sibling
		return nil, err
	}

	var entries []ChunkEntry

	if nodeLevel == 0 {
		// Each key is (chunk size, filter mask, ndims+1 offsets); the last
		// key in a node bounds the node but has no child pointer.
		for i := uint16(0); i <= entriesUsed; i++ {
			chunkSize, err := nr.ReadUint32()
			if err != nil {
				return nil, fmt.Errorf("btree: reading chunk size: %w", err)
			}
			filterMask, err := nr.ReadUint32()
			if err != nil {
				return nil, fmt.Errorf("btree: reading filter mask: %w", err)
			}
			offsets := make([]uint64, ndims+1)
			for j := 0; j <= ndims; j++ {
				offsets[j], err = nr.ReadUint64()
				if err != nil {
					return nil, fmt.Errorf("btree: reading chunk offset %d: %w", j, err)
				}
			}

			if i == entriesUsed {
				break
			}

			chunkAddr, err := nr.ReadOffset()
			if err != nil {
				return nil, fmt.Errorf("btree: reading chunk address: %w", err)
			}

			if !nr.IsUndefinedOffset(chunkAddr) && chunkSize > 0 {
				entries = append(entries, ChunkEntry{
					Offset:     offsets[:ndims],
					FilterMask: filterMask,
					Size:       chunkSize,
					Address:    chunkAddr,
				})
			}
		}
	} else {
		for i := uint16(0); i <= entriesUsed; i++ {
			if _, err := nr.ReadUint32(); err != nil { // chunk size
				return nil, err
			}
			if _, err := nr.ReadUint32(); err != nil { // filter mask
				return nil, err
			}
			for j := 0; j <= ndims; j++ {
				if _, err := nr.ReadUint64(); err != nil {
					return nil, err
				}
			}

			if i == entriesUsed {
				break
			}

			childAddr, err := nr.ReadOffset()
			if err != nil {
				return nil, err
			}
			childEntries, err := readChunkBTreeNode(r, childAddr, ndims)
			if err != nil {
				return nil, err
			}
			entries = append(entries, childEntries...)
		}
	}

	return entries, nil
}

// FindChunk returns the entry whose coordinate range contains offset, or
// nil if no chunk covers it.
func (idx *ChunkIndex) FindChunk(offset []uint64, chunkDims []uint32) *ChunkEntry {
	for i := range idx.Entries {
		entry := &idx.Entries[i]
		match := true
		for d := 0; d < len(offset) && d < len(entry.Offset); d++ {
			chunkStart := entry.Offset[d]
			chunkEnd := chunkStart + uint64(chunkDims[d])
			if offset[d] < chunkStart || offset[d] >= chunkEnd {
				match = false
				break
			}
		}
		if match {
			return entry
		}
	}
	return nil
}

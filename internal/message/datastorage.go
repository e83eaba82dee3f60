package message

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
)

// LayoutClass is a DataStorage message's storage class.
type LayoutClass uint8

const (
	LayoutContiguous LayoutClass = 1
	LayoutChunked    LayoutClass = 2
)

// DataStorage is a v3 data-storage message: either a single contiguous
// run of bytes, or a set of fixed-size chunks indexed by a B-tree.
// ChunkShape has one entry per dataset dimension plus a trailing element-
// size entry that is not part of the logical tiling.
type DataStorage struct {
	Version uint8
	Class   LayoutClass

	Address uint64
	Size    uint64 // contiguous only

	ChunkShape []uint32 // chunked only, len = dimensionality+1
}

func (m *DataStorage) Type() Type { return TypeDataStorage }

func (m *DataStorage) IsContiguous() bool { return m.Class == LayoutContiguous }
func (m *DataStorage) IsChunked() bool    { return m.Class == LayoutChunked }

func parseDataStorage(data []byte, r *byteio.Reader) (*DataStorage, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("message: data storage too short: %w", errs.Format)
	}

	version := data[0]
	if version != 3 {
		return nil, fmt.Errorf("message: unsupported data storage version %d: %w", version, errs.Format)
	}

	class := LayoutClass(data[1])
	ds := &DataStorage{Version: version, Class: class}
	offset := 2

	switch class {
	case LayoutContiguous:
		if offset+16 > len(data) {
			return nil, fmt.Errorf("message: contiguous data storage truncated: %w", errs.Format)
		}
		ds.Address = defaultOrder.Uint64(data[offset : offset+8])
		ds.Size = defaultOrder.Uint64(data[offset+8 : offset+16])

	case LayoutChunked:
		if offset+1 > len(data) {
			return nil, fmt.Errorf("message: chunked data storage truncated: %w", errs.Format)
		}
		dimensions := int(data[offset])
		offset++
		if offset+8 > len(data) {
			return nil, fmt.Errorf("message: chunked data storage address truncated: %w", errs.Format)
		}
		ds.Address = defaultOrder.Uint64(data[offset : offset+8])
		offset += 8
		ds.ChunkShape = make([]uint32, dimensions)
		for i := 0; i < dimensions; i++ {
			if offset+4 > len(data) {
				return nil, fmt.Errorf("message: chunk shape truncated: %w", errs.Format)
			}
			ds.ChunkShape[i] = defaultOrder.Uint32(data[offset : offset+4])
			offset += 4
		}

	default:
		return nil, fmt.Errorf("message: unsupported data storage layout class %d: %w", class, errs.Format)
	}

	return ds, nil
}

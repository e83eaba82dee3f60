package message

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
)

// Dataspace is the shape of a dataset: its dimensionality and per-axis
// extents.
type Dataspace struct {
	Version    uint8
	Dimensions []uint64
}

func (m *Dataspace) Type() Type { return TypeDataspace }

// NumElements is the product of the extents (1 for a rank-0 dataspace).
func (m *Dataspace) NumElements() uint64 {
	n := uint64(1)
	for _, d := range m.Dimensions {
		n *= d
	}
	return n
}

func parseDataspace(data []byte) (*Dataspace, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("message: dataspace too short: %w", errs.Format)
	}

	version := data[0]
	if version != 1 && version != 2 {
		return nil, fmt.Errorf("message: unsupported dataspace version %d: %w", version, errs.Format)
	}

	rank := int(data[1])
	flags := data[2]
	hasMaxDims := flags&0x01 != 0

	offset := 4
	if version == 1 {
		offset = 8 // 4 reserved bytes after the version-1 header
	}

	ds := &Dataspace{Version: version}
	if rank == 0 {
		return ds, nil
	}

	const lengthSize = 8 // dimension extents are always stored as u64
	ds.Dimensions = make([]uint64, rank)
	for i := 0; i < rank; i++ {
		if offset+lengthSize > len(data) {
			return nil, fmt.Errorf("message: dataspace dimensions truncated: %w", errs.Format)
		}
		ds.Dimensions[i] = byteio.DecodeUint(data[offset:offset+lengthSize], defaultOrder)
		offset += lengthSize
	}

	if hasMaxDims {
		// Max dimensions are present but unused by a read-only decoder
		// that never extends a dataset; skip without validating length.
		offset += rank * lengthSize
		_ = offset
	}

	return ds, nil
}

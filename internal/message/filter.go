package message

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/errs"
)

// Filter IDs recognized by the filter pipeline.
const (
	FilterDeflate uint16 = 1
	FilterShuffle uint16 = 2
)

// FilterInfo is one stage of a filter pipeline.
type FilterInfo struct {
	ID         uint16
	Flags      uint16
	Name       string
	ClientData []uint32
}

// FilterPipeline is the ordered, write-time sequence of filters applied to
// each chunk. Decoding runs the stages in reverse.
type FilterPipeline struct {
	Version uint8
	Filters []FilterInfo
}

func (m *FilterPipeline) Type() Type { return TypeFilterPipeline }

func parseFilterPipeline(data []byte) (*FilterPipeline, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("message: filter pipeline too short: %w", errs.Format)
	}

	version := data[0]
	if version != 1 {
		return nil, fmt.Errorf("message: unsupported filter pipeline version %d: %w", version, errs.Format)
	}
	filterCount := int(data[1])
	// data[2:4] reserved, data[4:8] reserved

	fp := &FilterPipeline{Version: version, Filters: make([]FilterInfo, filterCount)}
	offset := 8

	for i := 0; i < filterCount; i++ {
		f, consumed, err := parseFilterInfo(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("message: parsing filter %d: %w", i, err)
		}
		fp.Filters[i] = f
		offset += consumed
	}

	return fp, nil
}

func parseFilterInfo(data []byte) (FilterInfo, int, error) {
	var f FilterInfo

	if len(data) < 8 {
		return f, 0, fmt.Errorf("message: filter info too short: %w", errs.Format)
	}

	f.ID = defaultOrder.Uint16(data[0:2])
	nameLen := int(defaultOrder.Uint16(data[2:4]))
	f.Flags = defaultOrder.Uint16(data[4:6])
	numCD := int(defaultOrder.Uint16(data[6:8]))
	offset := 8

	if nameLen > 0 {
		if offset+nameLen > len(data) {
			return f, 0, fmt.Errorf("message: filter name truncated: %w", errs.Format)
		}
		end := offset
		for end < offset+nameLen && data[end] != 0 {
			end++
		}
		f.Name = string(data[offset:end])
		offset += nameLen
		if pad := nameLen % 8; pad != 0 {
			offset += 8 - pad
		}
	}

	f.ClientData = make([]uint32, numCD)
	for j := 0; j < numCD; j++ {
		if offset+4 > len(data) {
			return f, 0, fmt.Errorf("message: filter client data truncated: %w", errs.Format)
		}
		f.ClientData[j] = defaultOrder.Uint32(data[offset : offset+4])
		offset += 4
	}
	if numCD%2 != 0 {
		offset += 4 // pad to an even count
	}

	return f, offset, nil
}

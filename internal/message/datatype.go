package message

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/errs"
)

// DatatypeClass is a datatype's encoding tag.
type DatatypeClass uint8

const (
	ClassFixedPoint DatatypeClass = 0
	ClassFloatPoint DatatypeClass = 1
	ClassString     DatatypeClass = 3
)

// Datatype is a dataset element type: an encoding tag paired with an
// element size in bytes. Class-specific bit fields (sign, byte order,
// string padding) are carried but not decoded — verification only
// compares (Class, Size) against the requested element type.
type Datatype struct {
	Class     DatatypeClass
	ClassBits uint32
	Size      uint32
}

func (m *Datatype) Type() Type { return TypeDatatype }

func parseDatatype(data []byte) (*Datatype, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("message: datatype too short: %w", errs.Format)
	}

	class := DatatypeClass(data[0] & 0x0F)
	classBits := uint32(data[1]) | uint32(data[2])<<8 | uint32(data[3])<<16
	size := defaultOrder.Uint32(data[4:8])

	return &Datatype{
		Class:     class,
		ClassBits: classBits,
		Size:      size,
	}, nil
}

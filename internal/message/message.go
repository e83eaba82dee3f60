// Package message decodes HDC5 object header messages: dataspace,
// datatype, data storage, filter pipeline, link and symbol-table bodies,
// plus the continuation pointer that chains header chunks together.
package message

import (
	"encoding/binary"
	"fmt"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
)

// defaultOrder is the byte order for fields this package always stores as
// fixed-width little-endian regardless of the enclosing reader's
// configuration (e.g. dataspace extents, which §6.1 specifies as u64).
var defaultOrder binary.ByteOrder = binary.LittleEndian

// Type is a header message type tag (§6.1 MessageType table).
type Type uint16

const (
	TypeNil                  Type = 0
	TypeDataspace            Type = 1
	TypeLinkInfo             Type = 2
	TypeDatatype             Type = 3
	TypeFillValueOld         Type = 4
	TypeFillValue            Type = 5
	TypeLink                 Type = 6
	TypeExternalDataFiles    Type = 7
	TypeDataStorage          Type = 8
	TypeGroupInfo            Type = 10
	TypeFilterPipeline       Type = 11
	TypeAttribute            Type = 12
	TypeObjectContinuation   Type = 16
	TypeSymbolTable          Type = 17
	TypeObjectModTime        Type = 18
	TypeAttributeInfo        Type = 21
	TypeFileSpaceInfo        Type = 24
)

// Message is implemented by every decoded header message.
type Message interface {
	Type() Type
}

// Parse decodes a single message body. Types with no dedicated parser
// (fill value, modification time, nil, and anything else unrecognized)
// are returned as Unknown: the caller already consumed exactly `size`
// bytes for them, so no further decoding happens.
func Parse(typ Type, data []byte, r *byteio.Reader) (Message, error) {
	switch typ {
	case TypeDataspace:
		return parseDataspace(data)
	case TypeDatatype:
		return parseDatatype(data)
	case TypeDataStorage:
		return parseDataStorage(data, r)
	case TypeFilterPipeline:
		return parseFilterPipeline(data)
	case TypeLink:
		return parseLink(data, r)
	case TypeSymbolTable:
		return parseSymbolTable(data, r)
	case TypeObjectContinuation:
		return parseContinuation(data, r)
	default:
		return &Unknown{typ: typ, data: data}, nil
	}
}

// Unknown wraps a message body this package does not interpret.
type Unknown struct {
	typ  Type
	data []byte
}

func (m *Unknown) Type() Type   { return m.typ }
func (m *Unknown) Data() []byte { return m.data }

// Continuation points to another header chunk ("OCHK") to splice into the
// message stream.
type Continuation struct {
	Offset uint64
	Length uint64
}

func (m *Continuation) Type() Type { return TypeObjectContinuation }

func parseContinuation(data []byte, r *byteio.Reader) (*Continuation, error) {
	n := r.OffsetSize()
	if len(data) < 2*n {
		return nil, fmt.Errorf("message: continuation too short: %w", errs.Format)
	}
	return &Continuation{
		Offset: byteio.DecodeUint(data[0:n], r.ByteOrder()),
		Length: byteio.DecodeUint(data[n:2*n], r.ByteOrder()),
	}, nil
}

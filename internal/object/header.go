// Package object assembles a decoded object header from its v1 or v2
// on-disk chunk stream.
package object

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
	"github.com/mwhittaker/hdc5/internal/message"
)

var signatureV2 = []byte{'O', 'H', 'D', 'R'}

// Header is the aggregate of every message decoded from an object's
// (possibly multi-chunk) header stream.
type Header struct {
	Version  uint8
	Address  uint64
	Messages []message.Message
}

// Read parses the object header at address, detecting v1 vs v2 from the
// leading bytes.
func Read(r *byteio.Reader, address uint64) (*Header, error) {
	hr := r.At(int64(address))

	peek, err := hr.Peek(4)
	if err != nil {
		return nil, fmt.Errorf("object: reading header at %d: %w", address, err)
	}

	if string(peek) == string(signatureV2) {
		return readV2(hr, address)
	}
	if peek[0] == 1 {
		return readV1(hr, address)
	}
	return nil, fmt.Errorf("object: unrecognized header at %d: %w", address, errs.Format)
}

// GetMessage returns the first message of type typ, or nil.
func (h *Header) GetMessage(typ message.Type) message.Message {
	for _, m := range h.Messages {
		if m.Type() == typ {
			return m
		}
	}
	return nil
}

// GetMessages returns every message of type typ.
func (h *Header) GetMessages(typ message.Type) []message.Message {
	var out []message.Message
	for _, m := range h.Messages {
		if m.Type() == typ {
			out = append(out, m)
		}
	}
	return out
}

// Dataspace returns the header's dataspace message, or nil.
func (h *Header) Dataspace() *message.Dataspace {
	if m := h.GetMessage(message.TypeDataspace); m != nil {
		return m.(*message.Dataspace)
	}
	return nil
}

// Datatype returns the header's datatype message, or nil.
func (h *Header) Datatype() *message.Datatype {
	if m := h.GetMessage(message.TypeDatatype); m != nil {
		return m.(*message.Datatype)
	}
	return nil
}

// DataStorage returns the header's data storage message, or nil.
func (h *Header) DataStorage() *message.DataStorage {
	if m := h.GetMessage(message.TypeDataStorage); m != nil {
		return m.(*message.DataStorage)
	}
	return nil
}

// FilterPipeline returns the header's filter pipeline message, or nil.
func (h *Header) FilterPipeline() *message.FilterPipeline {
	if m := h.GetMessage(message.TypeFilterPipeline); m != nil {
		return m.(*message.FilterPipeline)
	}
	return nil
}

// SymbolTable returns the header's v1 symbol table message, or nil.
func (h *Header) SymbolTable() *message.SymbolTable {
	if m := h.GetMessage(message.TypeSymbolTable); m != nil {
		return m.(*message.SymbolTable)
	}
	return nil
}

// Links returns every v2 link message attached to the header.
func (h *Header) Links() []*message.Link {
	msgs := h.GetMessages(message.TypeLink)
	links := make([]*message.Link, len(msgs))
	for i, m := range msgs {
		links[i] = m.(*message.Link)
	}
	return links
}

package object

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
	"github.com/mwhittaker/hdc5/internal/message"
)

// readV1 decodes a version-1 object header:
//
//	0   1   version (1)
//	1   1   reserved
//	2   2   total header messages
//	4   4   object reference count
//	8   4   object header size
//	12  4   padding
//	16  var message chunk, 8-byte aligned
func readV1(r *byteio.Reader, address uint64) (*Header, error) {
	version, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if version != 1 {
		return nil, fmt.Errorf("object: v1 header expected version 1, got %d: %w", version, errs.Format)
	}
	r.Skip(1) // reserved

	numMessages, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadUint32(); err != nil { // object reference count
		return nil, err
	}
	headerSize, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	r.Skip(4) // padding

	hdr := &Header{
		Version:  1,
		Address:  address,
		Messages: make([]message.Message, 0, numMessages),
	}

	end := r.Pos() + int64(headerSize)
	msgs, err := readV1Messages(r, end)
	if err != nil {
		return nil, err
	}
	hdr.Messages = msgs
	return hdr, nil
}

func readV1Messages(r *byteio.Reader, end int64) ([]message.Message, error) {
	var out []message.Message

	for r.Pos() < end {
		msgType, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		dataSize, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadUint8(); err != nil { // flags
			return nil, err
		}
		r.Skip(3) // reserved

		data, err := r.ReadBytes(int(dataSize))
		if err != nil {
			return nil, err
		}
		if pad := int64(dataSize) % 8; pad != 0 {
			r.Skip(8 - pad) // message bodies are padded to a multiple of 8 bytes
		}

		if msgType == 0 { // nil
			continue
		}

		msg, err := message.Parse(message.Type(msgType), data, r)
		if err != nil {
			return nil, fmt.Errorf("object: v1 message type %d: %w", msgType, err)
		}

		if cont, ok := msg.(*message.Continuation); ok {
			contEnd := int64(cont.Offset) + int64(cont.Length)
			nested, err := readV1Messages(r.At(int64(cont.Offset)), contEnd)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}

		out = append(out, msg)
	}

	return out, nil
}

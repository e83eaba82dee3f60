package object

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
	"github.com/mwhittaker/hdc5/internal/message"
)

var signatureOCHK = []byte{'O', 'C', 'H', 'K'}

// readV2 decodes a version-2 object header ("OHDR"):
//
//	0   4   signature
//	4   1   version (2)
//	5   1   flags
//	var var access/mod/change/birth time, 4 bytes each, if flags&0x20
//	var 1-8 size of chunk 0, width from flags&0x03
//	var var header messages
//	var 4   checksum (lookup3, over everything from the signature)
func readV2(r *byteio.Reader, address uint64) (*Header, error) {
	chunkStart := r.Pos()
	r.Skip(4) // signature, already matched by the caller

	version, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if version != 2 {
		return nil, fmt.Errorf("object: v2 header expected version 2, got %d: %w", version, errs.Format)
	}

	flags, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if flags&0x10 != 0 {
		return nil, fmt.Errorf("object: non-default attribute phase change flags: %w", errs.Format)
	}

	if flags&0x20 != 0 { // times present
		r.Skip(16)
	}

	sizeFieldWidth := 1 << (flags & 0x03)
	chunk0Size, err := r.ReadUintN(sizeFieldWidth)
	if err != nil {
		return nil, err
	}
	trackCreationOrder := flags&0x04 != 0

	chunkEnd := r.Pos() + int64(chunk0Size) - 4
	if err := verifyChunkChecksum(r, chunkStart, chunkEnd); err != nil {
		return nil, err
	}

	hdr := &Header{Version: 2, Address: address}
	msgs, err := readV2Messages(r, chunkEnd, trackCreationOrder)
	if err != nil {
		return nil, err
	}
	hdr.Messages = msgs
	return hdr, nil
}

func readV2Messages(r *byteio.Reader, end int64, trackCreationOrder bool) ([]message.Message, error) {
	var out []message.Message

	for r.Pos() < end {
		msgType, err := r.ReadUint8()
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
		if trackCreationOrder {
			r.Skip(2)
		}

		data, err := r.ReadBytes(int(dataSize))
		if err != nil {
			return nil, err
		}

		if msgType == 0 { // nil
			continue
		}

		msg, err := message.Parse(message.Type(msgType), data, r)
		if err != nil {
			return nil, fmt.Errorf("object: v2 message type %d: %w", msgType, err)
		}

		if cont, ok := msg.(*message.Continuation); ok {
			nested, err := readV2Continuation(r, cont.Offset, cont.Length, trackCreationOrder)
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

// readV2Continuation follows an ObjectContinuation pointer into an "OCHK"
// chunk and decodes its messages.
func readV2Continuation(r *byteio.Reader, offset, length uint64, trackCreationOrder bool) ([]message.Message, error) {
	cr := r.At(int64(offset))

	sig, err := cr.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	if string(sig) != string(signatureOCHK) {
		return nil, fmt.Errorf("object: bad continuation chunk signature %q: %w", sig, errs.Format)
	}

	chunkEnd := int64(offset) + int64(length) - 4
	if err := verifyChunkChecksum(cr, int64(offset), chunkEnd); err != nil {
		return nil, err
	}

	return readV2Messages(cr, chunkEnd, trackCreationOrder)
}

// verifyChunkChecksum reads the lookup3 checksum trailing [start, end) and
// confirms it matches the computed hash of that range.
func verifyChunkChecksum(r *byteio.Reader, start, end int64) error {
	body, err := r.At(start).ReadBytes(int(end - start))
	if err != nil {
		return err
	}
	stored, err := r.At(end).ReadUint32()
	if err != nil {
		return err
	}
	if lookup3Checksum(body) != stored {
		return fmt.Errorf("object: chunk checksum mismatch at %d: %w", start, errs.Format)
	}
	return nil
}

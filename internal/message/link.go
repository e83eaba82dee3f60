package message

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
)

// LinkType is a v2 link message's target kind.
type LinkType uint8

const (
	LinkTypeHard LinkType = 0
	LinkTypeSoft LinkType = 1
)

// Link is a single named child, decoded from a v2 Link message.
type Link struct {
	Version  uint8
	LinkType LinkType
	Name     string

	ObjectAddress uint64 // hard link
	SoftLinkValue string // soft link
}

func (m *Link) Type() Type { return TypeLink }

func (m *Link) IsHard() bool { return m.LinkType == LinkTypeHard }
func (m *Link) IsSoft() bool { return m.LinkType == LinkTypeSoft }

func parseLink(data []byte, r *byteio.Reader) (*Link, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("message: link too short: %w", errs.Format)
	}

	link := &Link{Version: data[0]}
	flags := data[1]
	offset := 2

	nameLenSize := 1 << (flags & 0x03)

	if flags&0x08 != 0 { // link type present
		if offset >= len(data) {
			return nil, fmt.Errorf("message: link type truncated: %w", errs.Format)
		}
		link.LinkType = LinkType(data[offset])
		offset++
	}

	if flags&0x04 != 0 { // creation order present
		if offset+8 > len(data) {
			return nil, fmt.Errorf("message: link creation order truncated: %w", errs.Format)
		}
		offset += 8
	}

	if flags&0x10 != 0 { // charset present
		if offset >= len(data) {
			return nil, fmt.Errorf("message: link charset truncated: %w", errs.Format)
		}
		offset++
	}

	if offset+nameLenSize > len(data) {
		return nil, fmt.Errorf("message: link name length truncated: %w", errs.Format)
	}
	nameLen := int(byteio.DecodeUint(data[offset:offset+nameLenSize], defaultOrder))
	offset += nameLenSize

	if offset+nameLen > len(data) {
		return nil, fmt.Errorf("message: link name truncated: %w", errs.Format)
	}
	link.Name = string(data[offset : offset+nameLen])
	offset += nameLen

	switch link.LinkType {
	case LinkTypeHard:
		if offset+8 > len(data) {
			return nil, fmt.Errorf("message: hard link address truncated: %w", errs.Format)
		}
		link.ObjectAddress = defaultOrder.Uint64(data[offset : offset+8])

	case LinkTypeSoft:
		if offset+2 > len(data) {
			return nil, fmt.Errorf("message: soft link length truncated: %w", errs.Format)
		}
		softLen := int(defaultOrder.Uint16(data[offset : offset+2]))
		offset += 2
		if offset+softLen > len(data) {
			return nil, fmt.Errorf("message: soft link value truncated: %w", errs.Format)
		}
		link.SoftLinkValue = string(data[offset : offset+softLen])

	default:
		return nil, fmt.Errorf("message: unsupported link type %d: %w", link.LinkType, errs.Unsupported)
	}

	return link, nil
}

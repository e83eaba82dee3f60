package message

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLinkHard(t *testing.T) {
	name := "dataset1"
	data := make([]byte, 2+1+2+len(name)+8)
	data[0] = 1                            // version
	data[1] = 0x08                         // flags: link type present, 1-byte name length
	data[2] = byte(LinkTypeHard)            // link type
	data[3] = byte(len(name))               // name length (1-byte field)
	copy(data[4:], name)
	binary.LittleEndian.PutUint64(data[4+len(name):], 0xABCD)

	r := newTestReader()
	link, err := parseLink(data, r)
	require.NoError(t, err)
	require.Equal(t, name, link.Name)
	require.True(t, link.IsHard())
	require.Equal(t, uint64(0xABCD), link.ObjectAddress)
}

func TestParseLinkSoft(t *testing.T) {
	name := "sl"
	target := "/a/b"
	data := make([]byte, 2+1+1+len(name)+2+len(target))
	data[0] = 1
	data[1] = 0x08 // link type present, 1-byte name length
	data[2] = byte(LinkTypeSoft)
	data[3] = byte(len(name))
	copy(data[4:], name)
	offset := 4 + len(name)
	binary.LittleEndian.PutUint16(data[offset:], uint16(len(target)))
	copy(data[offset+2:], target)

	r := newTestReader()
	link, err := parseLink(data, r)
	require.NoError(t, err)
	require.True(t, link.IsSoft())
	require.Equal(t, target, link.SoftLinkValue)
}

func TestParseLinkTruncated(t *testing.T) {
	r := newTestReader()
	_, err := parseLink([]byte{1}, r)
	require.Error(t, err)
}

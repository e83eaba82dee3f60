package object

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/message"
)

// buildV2Header assembles a minimal version-2 header: signature, version,
// the given flags byte (no times and no creation order are written, and the
// chunk-0 size is always a 1-byte field), one message, and a trailing
// lookup3 checksum over everything before it.
func buildV2Header(msgType message.Type, data []byte, flags byte) []byte {
	var msgs bytes.Buffer
	msgs.WriteByte(byte(msgType))
	binary.Write(&msgs, binary.LittleEndian, uint16(len(data)))
	msgs.WriteByte(0) // message flags
	msgs.Write(data)

	var body bytes.Buffer
	body.WriteString("OHDR")
	body.WriteByte(2) // version
	body.WriteByte(flags)
	body.WriteByte(byte(msgs.Len() + 4)) // chunk0 size (1-byte field), includes 4-byte checksum
	body.Write(msgs.Bytes())

	checksum := lookup3Checksum(body.Bytes())
	binary.Write(&body, binary.LittleEndian, checksum)
	return body.Bytes()
}

func TestReadV2HeaderDataspace(t *testing.T) {
	raw := buildV2Header(message.TypeDataspace, []byte{2, 1, 0, 0, 5, 0, 0, 0, 0, 0, 0, 0}, 0)
	r := byteio.New(bytesReaderAt(raw), byteio.DefaultConfig())

	hdr, err := Read(r, 0)
	require.NoError(t, err)
	require.Equal(t, uint8(2), hdr.Version)

	ds := hdr.Dataspace()
	require.NotNil(t, ds)
	require.Equal(t, []uint64{5}, ds.Dimensions)
}

func TestReadV2HeaderChecksumMismatch(t *testing.T) {
	raw := buildV2Header(message.TypeDataspace, []byte{2, 1, 0, 0, 5, 0, 0, 0, 0, 0, 0, 0}, 0)
	raw[len(raw)-1] ^= 0xFF // corrupt the stored checksum

	r := byteio.New(bytesReaderAt(raw), byteio.DefaultConfig())
	_, err := Read(r, 0)
	require.Error(t, err)
}

func TestReadV2HeaderRejectsNonDefaultAttributePhaseChange(t *testing.T) {
	raw := buildV2Header(message.TypeDataspace, []byte{2, 1, 0, 0, 5, 0, 0, 0, 0, 0, 0, 0}, 0x10)
	r := byteio.New(bytesReaderAt(raw), byteio.DefaultConfig())
	_, err := Read(r, 0)
	require.Error(t, err)
}

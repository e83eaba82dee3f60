package message

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDataspaceScalar(t *testing.T) {
	data := []byte{2, 0, 0, 0} // version 2, rank 0, no flags, no type byte consumed

	ds, err := parseDataspace(data)
	require.NoError(t, err)
	require.Equal(t, uint8(2), ds.Version)
	require.Empty(t, ds.Dimensions)
	require.Equal(t, uint64(1), ds.NumElements())
}

func TestParseDataspaceSimple2D(t *testing.T) {
	data := make([]byte, 4+16)
	data[0] = 2 // version
	data[1] = 2 // rank
	data[2] = 0 // flags
	binary.LittleEndian.PutUint64(data[4:], 3)
	binary.LittleEndian.PutUint64(data[12:], 4)

	ds, err := parseDataspace(data)
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 4}, ds.Dimensions)
	require.Equal(t, uint64(12), ds.NumElements())
}

func TestParseDataspaceVersion1SkipsReserved(t *testing.T) {
	data := make([]byte, 8+8)
	data[0] = 1 // version
	data[1] = 1 // rank
	data[2] = 0 // flags
	binary.LittleEndian.PutUint64(data[8:], 7)

	ds, err := parseDataspace(data)
	require.NoError(t, err)
	require.Equal(t, []uint64{7}, ds.Dimensions)
}

func TestParseDataspaceRejectsBadVersion(t *testing.T) {
	data := []byte{9, 0, 0, 0}
	_, err := parseDataspace(data)
	require.Error(t, err)
}

func TestParseDataspaceTruncated(t *testing.T) {
	_, err := parseDataspace([]byte{2, 0})
	require.Error(t, err)
}

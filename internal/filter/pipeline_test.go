package filter

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"

	"github.com/mwhittaker/hdc5/internal/message"
)

func TestPipelineDecodeEmptyIsPassthrough(t *testing.T) {
	p, err := NewPipeline(nil)
	require.NoError(t, err)
	require.True(t, p.Empty())

	data := []byte{1, 2, 3}
	out, err := p.Decode(data, 0)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestPipelineDecodeRejectsNonZeroFilterMask(t *testing.T) {
	p, err := NewPipeline(&message.FilterPipeline{
		Filters: []message.FilterInfo{{ID: message.FilterShuffle, ClientData: []uint32{4}}},
	})
	require.NoError(t, err)

	_, err = p.Decode([]byte{1, 2, 3, 4}, 0x01)
	require.Error(t, err)
}

func TestPipelineDecodeShuffleThenDeflateInReverse(t *testing.T) {
	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	shuffled := make([]byte, len(want))
	elemSize, numElems := 4, 2
	for i := 0; i < numElems; i++ {
		for j := 0; j < elemSize; j++ {
			shuffled[j*numElems+i] = want[i*elemSize+j]
		}
	}

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	_, err := w.Write(shuffled)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	p, err := NewPipeline(&message.FilterPipeline{
		Filters: []message.FilterInfo{
			{ID: message.FilterShuffle, ClientData: []uint32{uint32(elemSize)}},
			{ID: message.FilterDeflate},
		},
	})
	require.NoError(t, err)

	got, err := p.Decode(compressed.Bytes(), 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestNewRejectsUnknownFilterID(t *testing.T) {
	_, err := New(message.FilterInfo{ID: 999})
	require.Error(t, err)
}

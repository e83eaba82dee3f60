package hdc5

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

const msgFilterPipeline = 11

func filterPipelineMessage() []byte {
	data := make([]byte, 8+8)
	data[0] = 1 // version
	data[1] = 1 // one filter
	binary.LittleEndian.PutUint16(data[8:], 1) // filter ID: deflate
	return data
}

func chunkedStorageMessage(btreeAddr uint64, chunkShape []uint32) []byte {
	data := make([]byte, 2+1+8+4*len(chunkShape))
	data[0] = 3 // version
	data[1] = 2 // chunked
	data[2] = byte(len(chunkShape))
	binary.LittleEndian.PutUint64(data[3:], btreeAddr)
	off := 11
	for _, v := range chunkShape {
		binary.LittleEndian.PutUint32(data[off:], v)
		off += 4
	}
	return data
}

// writeChunkBTree writes a single-leaf chunk B-tree with exactly one data
// chunk covering the whole array, at offset (0,0,...,0).
func (b *fileBuilder) writeChunkBTree(chunkAddr uint64, chunkSize uint32, ndims int) uint64 {
	start := b.addr()
	b.buf.WriteString("TREE")
	b.buf.WriteByte(1) // chunk node
	b.buf.WriteByte(0) // level 0
	binary.Write(&b.buf, binary.LittleEndian, uint16(1))
	binary.Write(&b.buf, binary.LittleEndian, uint64(0)) // left sibling
	binary.Write(&b.buf, binary.LittleEndian, uint64(0)) // right sibling

	writeKey := func(size, filterMask uint32) {
		binary.Write(&b.buf, binary.LittleEndian, size)
		binary.Write(&b.buf, binary.LittleEndian, filterMask)
		for j := 0; j <= ndims; j++ {
			binary.Write(&b.buf, binary.LittleEndian, uint64(0))
		}
	}

	writeKey(chunkSize, 0)
	binary.Write(&b.buf, binary.LittleEndian, chunkAddr)
	writeKey(0, 0) // bounding key, no child

	return start
}

func deflate(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// buildChunkedFixture lays out a root group with a single chunked float32
// dataset, shape [2,2], one chunk covering the whole array, deflated.
func buildChunkedFixture(t *testing.T) []byte {
	t.Helper()

	raw := make([]byte, 16)
	values := []float32{1.5, 2.5, 3.5, 4.25}
	for i, v := range values {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	compressed := deflate(t, raw)

	var b fileBuilder
	b.writeSuperblock(0)

	chunkAddr := b.addr()
	b.buf.Write(compressed)

	btreeAddr := b.writeChunkBTree(chunkAddr, uint32(len(compressed)), 2)

	datasetAddr := b.writeV1ObjectHeader(func(body *bytes.Buffer) {
		writeV1MessageInto(body, msgDataspace, dataspaceMessage(2, 2))
		writeV1MessageInto(body, msgDatatype, datatypeMessage(1, 4)) // float, 4 bytes
		writeV1MessageInto(body, msgDataStorage, chunkedStorageMessage(btreeAddr, []uint32{2, 2, 4}))
		writeV1MessageInto(body, msgFilterPipeline, filterPipelineMessage())
	})

	heapPayload := []byte("\x00grid\x00")
	heapAddr := b.writeLocalHeap(heapPayload)
	snodAddr := b.writeSNOD([]snodChild{{nameOffset: 1, objAddr: datasetAddr}})
	groupBtreeAddr := b.writeGroupBTree(snodAddr)

	rootAddr := b.writeV1ObjectHeader(func(body *bytes.Buffer) {
		writeV1MessageInto(body, msgSymbolTable, symbolTableMessage(groupBtreeAddr, heapAddr))
	})

	out := b.buf.Bytes()
	binary.LittleEndian.PutUint64(out[64:], rootAddr)
	return out
}

func TestReadChunkedDatasetWithDeflate(t *testing.T) {
	image := buildChunkedFixture(t)
	f, err := Open(bytesReaderAt(image))
	require.NoError(t, err)
	defer f.Close()

	ds, err := f.AsGroup().Dataset("grid")
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 2}, ds.Shape())

	arr, err := Read[float32](ds)
	require.NoError(t, err)
	require.Equal(t, []float32{1.5, 2.5, 3.5, 4.25}, arr.Data)
}

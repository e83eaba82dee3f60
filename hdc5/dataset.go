package hdc5

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/mwhittaker/hdc5/internal/array"
	"github.com/mwhittaker/hdc5/internal/btree"
	"github.com/mwhittaker/hdc5/internal/filter"
	"github.com/mwhittaker/hdc5/internal/message"
	"github.com/mwhittaker/hdc5/internal/object"
)

// Dataset is an object whose header describes a typed rectangular array
// and its storage layout (contiguous or chunked).
type Dataset struct {
	file      *FileReader
	name      string
	path      string
	header    *object.Header
	dataspace *message.Dataspace
	datatype  *message.Datatype
	storage   *message.DataStorage
}

func newDataset(f *FileReader, name, path string, hdr *object.Header) (*Dataset, error) {
	dataspace := hdr.Dataspace()
	if dataspace == nil {
		return nil, fmt.Errorf("hdc5: dataset %q missing dataspace message: %w", path, ErrFormat)
	}
	datatype := hdr.Datatype()
	if datatype == nil {
		return nil, fmt.Errorf("hdc5: dataset %q missing datatype message: %w", path, ErrFormat)
	}
	storage := hdr.DataStorage()
	if storage == nil {
		return nil, fmt.Errorf("hdc5: dataset %q missing data storage message: %w", path, ErrFormat)
	}

	return &Dataset{
		file:      f,
		name:      name,
		path:      path,
		header:    hdr,
		dataspace: dataspace,
		datatype:  datatype,
		storage:   storage,
	}, nil
}

// Name returns the dataset's own name.
func (d *Dataset) Name() string { return d.name }

// Path returns the full slash-separated path from the root.
func (d *Dataset) Path() string { return d.path }

// Shape returns the dataset's per-axis extents.
func (d *Dataset) Shape() []uint64 { return d.dataspace.Dimensions }

// Datatype returns the dataset's stored element encoding and size.
func (d *Dataset) Datatype() *message.Datatype { return d.datatype }

// Element is the closed set of Go types Read supports, per the
// {verify(datatype), zero-value} capability set.
type Element interface {
	uint8 | float32 | float64
}

func elementPair[T Element]() (message.DatatypeClass, uint32) {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return message.ClassFixedPoint, 1
	case float32:
		return message.ClassFloatPoint, 4
	case float64:
		return message.ClassFloatPoint, 8
	default:
		panic("hdc5: unreachable element type")
	}
}

func verifyDatatype[T Element](dt *message.Datatype) error {
	class, size := elementPair[T]()
	if dt.Class != class || dt.Size != size {
		return fmt.Errorf("hdc5: requested type does not match stored datatype (class %d, size %d): %w",
			dt.Class, dt.Size, ErrTypeMismatch)
	}
	return nil
}

func decodeElements[T Element](raw []byte) []T {
	var zero T
	size := 0
	switch any(zero).(type) {
	case uint8:
		size = 1
	case float32:
		size = 4
	case float64:
		size = 8
	}
	out := make([]T, len(raw)/size)

	switch typed := any(out).(type) {
	case []uint8:
		copy(typed, raw)
	case []float32:
		for i := range typed {
			typed[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
	case []float64:
		for i := range typed {
			typed[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		}
	}
	return out
}

// Read verifies the dataset's datatype against T, assembles the full
// dataspace-shaped array from contiguous or chunked storage, and returns
// it. Requesting a T whose (class, size) pair does not match the stored
// datatype fails with ErrTypeMismatch before any data is read.
func Read[T Element](d *Dataset) (*array.Array[T], error) {
	if err := verifyDatatype[T](d.datatype); err != nil {
		return nil, err
	}

	pipeline, err := filter.NewPipeline(d.header.FilterPipeline())
	if err != nil {
		return nil, err
	}

	if d.storage.IsContiguous() {
		return readContiguous[T](d, pipeline)
	}
	if d.storage.IsChunked() {
		return readChunked[T](d, pipeline)
	}
	return nil, fmt.Errorf("hdc5: dataset %q has unrecognized storage class: %w", d.path, ErrFormat)
}

func elemSize[T Element]() uint64 {
	_, size := elementPair[T]()
	return uint64(size)
}

// readContiguous implements §4.9: a single read at the stored address,
// reinterpreted as T and reshaped to the dataspace.
func readContiguous[T Element](d *Dataset, pipeline *filter.Pipeline) (*array.Array[T], error) {
	if !pipeline.Empty() {
		return nil, fmt.Errorf("hdc5: contiguous dataset %q has a non-empty filter pipeline: %w", d.path, ErrUnsupported)
	}

	size := elemSize[T]()
	if d.storage.Size%size != 0 {
		return nil, fmt.Errorf("hdc5: dataset %q size %d is not a multiple of %d: %w", d.path, d.storage.Size, size, ErrShape)
	}
	if array.NumElements(d.dataspace.Dimensions)*size != d.storage.Size {
		return nil, fmt.Errorf("hdc5: dataset %q shape does not match stored size %d: %w", d.path, d.storage.Size, ErrShape)
	}

	raw, err := d.file.reader.At(int64(d.storage.Address)).ReadBytes(int(d.storage.Size))
	if err != nil {
		return nil, err
	}

	return &array.Array[T]{
		Shape: append([]uint64(nil), d.dataspace.Dimensions...),
		Data:  decodeElements[T](raw),
	}, nil
}

// readChunked implements §4.10: walk the chunk B-tree, invert the filter
// pipeline per chunk, and tile each chunk into the zero-initialized
// destination array, clipping boundary chunks to the dataspace extent.
func readChunked[T Element](d *Dataset, pipeline *filter.Pipeline) (*array.Array[T], error) {
	ndims := len(d.storage.ChunkShape) - 1
	if ndims != len(d.dataspace.Dimensions) {
		return nil, fmt.Errorf("hdc5: dataset %q chunk shape dimensionality does not match dataspace: %w", d.path, ErrShape)
	}

	idx, err := btree.ReadChunkIndex(d.file.reader, d.storage.Address, ndims)
	if err != nil {
		return nil, err
	}

	size := elemSize[T]()
	chunkShape32 := d.storage.ChunkShape[:ndims]
	chunkShape := make([]uint64, ndims)
	chunkVolume := uint64(1)
	for i, v := range chunkShape32 {
		chunkShape[i] = uint64(v)
		chunkVolume *= uint64(v)
	}
	chunkBytes := chunkVolume * size

	dest := array.New[T](d.dataspace.Dimensions)

	for _, entry := range idx.Entries {
		readLen := entry.Size
		if pipeline.Empty() {
			readLen = uint32(chunkBytes)
		}

		raw, err := d.file.reader.At(int64(entry.Address)).ReadBytes(int(readLen))
		if err != nil {
			return nil, err
		}
		decoded, err := pipeline.Decode(raw, entry.FilterMask)
		if err != nil {
			return nil, err
		}

		dest.SetRegion(entry.Offset, chunkShape, decodeElements[T](decoded))
	}

	return dest, nil
}

package filter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/mwhittaker/hdc5/internal/errs"
	"github.com/mwhittaker/hdc5/internal/message"
)

// deflate inflates an RFC 1950 zlib stream.
type deflate struct {
	level int
}

// newDeflate builds a deflate filter. Client data: [0] = write-time
// compression level; irrelevant to decoding but kept for symmetry.
func newDeflate(clientData []uint32) *deflate {
	level := 6
	if len(clientData) > 0 {
		level = int(clientData[0])
	}
	return &deflate{level: level}
}

func (f *deflate) ID() uint16 { return message.FilterDeflate }

func (f *deflate) Decode(input []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("filter: opening zlib stream: %w", errs.Decompression)
	}
	defer r.Close()

	output, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("filter: inflating: %w", errs.Decompression)
	}
	return output, nil
}

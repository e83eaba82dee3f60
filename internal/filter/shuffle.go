package filter

import "github.com/mwhittaker/hdc5/internal/message"

// shuffle transposes the write-time shuffled E×N byte matrix (element size
// E, chunk length L = E·N) back to N elements of E bytes each.
type shuffle struct {
	elemSize int
}

// newShuffle builds a shuffle filter. Client data: [0] = element size.
func newShuffle(clientData []uint32) *shuffle {
	elemSize := 1
	if len(clientData) > 0 && clientData[0] > 0 {
		elemSize = int(clientData[0])
	}
	return &shuffle{elemSize: elemSize}
}

func (f *shuffle) ID() uint16 { return message.FilterShuffle }

func (f *shuffle) Decode(input []byte) ([]byte, error) {
	if f.elemSize <= 1 {
		return input, nil
	}

	numElems := len(input) / f.elemSize
	if numElems == 0 {
		return input, nil
	}

	output := make([]byte, len(input))
	for i := 0; i < numElems; i++ {
		for j := 0; j < f.elemSize; j++ {
			output[i*f.elemSize+j] = input[j*numElems+i]
		}
	}
	return output, nil
}

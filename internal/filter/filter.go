// Package filter applies the chunk filter pipeline in reverse during
// decoding: shuffle unshuffles, deflate inflates.
package filter

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/errs"
	"github.com/mwhittaker/hdc5/internal/message"
)

// Filter is the interface implemented by every recognized filter.
type Filter interface {
	ID() uint16
	Decode(input []byte) ([]byte, error)
}

// New builds the Filter a FilterInfo describes. Any filter ID other than
// deflate or shuffle is unsupported: this decoder implements exactly the
// two filters the container format names.
func New(info message.FilterInfo) (Filter, error) {
	switch info.ID {
	case message.FilterDeflate:
		return newDeflate(info.ClientData), nil
	case message.FilterShuffle:
		return newShuffle(info.ClientData), nil
	default:
		return nil, fmt.Errorf("filter: unsupported filter id %d: %w", info.ID, errs.Unsupported)
	}
}

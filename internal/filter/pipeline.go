package filter

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/errs"
	"github.com/mwhittaker/hdc5/internal/message"
)

// Pipeline is the ordered set of filters a chunk was written through.
type Pipeline struct {
	filters []Filter
}

// NewPipeline builds a Pipeline from a decoded FilterPipeline message.
func NewPipeline(fp *message.FilterPipeline) (*Pipeline, error) {
	if fp == nil || len(fp.Filters) == 0 {
		return &Pipeline{}, nil
	}

	p := &Pipeline{filters: make([]Filter, 0, len(fp.Filters))}
	for _, info := range fp.Filters {
		f, err := New(info)
		if err != nil {
			return nil, fmt.Errorf("filter: building filter %d: %w", info.ID, err)
		}
		p.filters = append(p.filters, f)
	}
	return p, nil
}

// Decode applies the pipeline's filters in reverse registration order. A
// non-zero filterMask is rejected outright: this decoder has no notion of
// a chunk that selectively skipped filters, so any such mask means the
// chunk cannot be decoded reliably.
func (p *Pipeline) Decode(input []byte, filterMask uint32) ([]byte, error) {
	if filterMask != 0 {
		return nil, fmt.Errorf("filter: non-zero filter mask %#x: %w", filterMask, errs.Format)
	}
	if len(p.filters) == 0 {
		return input, nil
	}

	data := input
	for i := len(p.filters) - 1; i >= 0; i-- {
		var err error
		data, err = p.filters[i].Decode(data)
		if err != nil {
			return nil, fmt.Errorf("filter: filter %d: %w", p.filters[i].ID(), err)
		}
	}
	return data, nil
}

// Empty reports whether the pipeline has no filters.
func (p *Pipeline) Empty() bool { return len(p.filters) == 0 }

// Len returns the number of filters in the pipeline.
func (p *Pipeline) Len() int { return len(p.filters) }

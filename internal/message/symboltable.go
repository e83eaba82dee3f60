package message

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
)

// SymbolTable points a v1 object header at the B-tree and local heap that
// define its group membership.
type SymbolTable struct {
	BTreeAddress     uint64
	LocalHeapAddress uint64
}

func (m *SymbolTable) Type() Type { return TypeSymbolTable }

func parseSymbolTable(data []byte, r *byteio.Reader) (*SymbolTable, error) {
	n := r.OffsetSize()
	if len(data) < 2*n {
		return nil, fmt.Errorf("message: symbol table too short: %w", errs.Format)
	}
	return &SymbolTable{
		BTreeAddress:     byteio.DecodeUint(data[0:n], r.ByteOrder()),
		LocalHeapAddress: byteio.DecodeUint(data[n:2*n], r.ByteOrder()),
	}, nil
}

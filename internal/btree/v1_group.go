package btree

import (
	"fmt"

	"github.com/mwhittaker/hdc5/internal/byteio"
	"github.com/mwhittaker/hdc5/internal/errs"
	"github.com/mwhittaker/hdc5/internal/heap"
)

// GroupEntry is one member of a v1 group's symbol table: a name resolved
// through the group's local heap, paired with either a hard-link object
// address or a soft-link target.
type GroupEntry struct {
	Name          string
	ObjectAddress uint64
	IsSoftLink    bool
	SoftLinkValue string
}

var btreeSignature = []byte{'T', 'R', 'E', 'E'}
var snodSignature = []byte{'S', 'N', 'O', 'D'}

// ReadGroupEntries walks the v1 group B-tree rooted at btreeAddr and
// returns every member, resolving names through localHeap.
func ReadGroupEntries(r *byteio.Reader, btreeAddr uint64, localHeap *heap.LocalHeap) ([]GroupEntry, error) {
	return readGroupBTreeNode(r, btreeAddr, localHeap)
}

func readGroupBTreeNode(r *byteio.Reader, address uint64, localHeap *heap.LocalHeap) ([]GroupEntry, error) {
	nr := r.At(int64(address))

	sig, err := nr.ReadBytes(4)
	if err != nil {
		return nil, fmt.Errorf("btree: reading signature at %d: %w", address, err)
	}
	if string(sig) != string(btreeSignature) {
		return nil, fmt.Errorf("btree: bad signature %q at %d: %w", sig, address, errs.Format)
	}

	nodeType, err := nr.ReadUint8()
	if err != nil {
		return nil, err
	}
	if nodeType != 0 {
		return nil, fmt.Errorf("btree: node at %d has type %d, expected 0 (group): %w", address, nodeType, errs.Format)
	}

	nodeLevel, err := nr.ReadUint8()
	if err != nil {
		return nil, err
	}
	entriesUsed, err := nr.ReadUint16()
	if err != nil {
		return nil, err
	}
	if _, err := nr.ReadOffset(); err != nil { // left sibling
		return nil, err
	}
	if _, err := nr.ReadOffset(); err != nil { // right sibling
		return nil, err
	}

	var entries []GroupEntry

	if nodeLevel == 0 {
		for i := uint16(0); i < entriesUsed; i++ {
			if _, err := nr.ReadLength(); err != nil { // key: reserved for group nodes
				return nil, err
			}
			snodAddr, err := nr.ReadOffset()
			if err != nil {
				return nil, err
			}
			snodEntries, err := readSymbolTableNode(r, snodAddr, localHeap)
			if err != nil {
				return nil, fmt.Errorf("btree: reading symbol table node at %d: %w", snodAddr, err)
			}
			entries = append(entries, snodEntries...)
		}
	} else {
		for i := uint16(0); i < entriesUsed; i++ {
			if _, err := nr.ReadLength(); err != nil {
				return nil, err
			}
			childAddr, err := nr.ReadOffset()
			if err != nil {
				return nil, err
			}
			childEntries, err := readGroupBTreeNode(r, childAddr, localHeap)
			if err != nil {
				return nil, err
			}
			entries = append(entries, childEntries...)
		}
	}

	return entries, nil
}

func readSymbolTableNode(r *byteio.Reader, address uint64, localHeap *heap.LocalHeap) ([]GroupEntry, error) {
	nr := r.At(int64(address))

	sig, err := nr.ReadBytes(4)
	if err != nil {
		return nil, fmt.Errorf("btree: reading SNOD signature at %d: %w", address, err)
	}
	if string(sig) != string(snodSignature) {
		return nil, fmt.Errorf("btree: bad SNOD signature %q at %d: %w", sig, address, errs.Format)
	}

	version, err := nr.ReadUint8()
	if err != nil {
		return nil, err
	}
	if version != 1 {
		return nil, fmt.Errorf("btree: unsupported SNOD version %d: %w", version, errs.Format)
	}
	nr.Skip(1)

	numSymbols, err := nr.ReadUint16()
	if err != nil {
		return nil, err
	}

	var entries []GroupEntry
	for i := uint16(0); i < numSymbols; i++ {
		entry, err := readSymbolTableEntry(nr, localHeap)
		if err != nil {
			return nil, fmt.Errorf("btree: reading symbol table entry %d at %d: %w", i, address, err)
		}
		if entry.Name != "" {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

const (
	cacheTypeNone     uint32 = 0
	cacheTypeHardLink uint32 = 1
	cacheTypeSoftLink uint32 = 2
)

func readSymbolTableEntry(r *byteio.Reader, localHeap *heap.LocalHeap) (GroupEntry, error) {
	var entry GroupEntry

	nameOffset, err := r.ReadOffset()
	if err != nil {
		return entry, err
	}
	objAddr, err := r.ReadOffset()
	if err != nil {
		return entry, err
	}
	cacheType, err := r.ReadUint32()
	if err != nil {
		return entry, err
	}
	r.Skip(4)
	scratchPad, err := r.ReadBytes(16)
	if err != nil {
		return entry, err
	}

	name, err := localHeap.GetString(nameOffset)
	if err != nil {
		return entry, err
	}
	entry.Name = name
	entry.ObjectAddress = objAddr

	switch cacheType {
	case cacheTypeNone, cacheTypeHardLink:
		// hard link, object address already set

	case cacheTypeSoftLink:
		linkOffset := uint64(scratchPad[0]) | uint64(scratchPad[1])<<8 |
			uint64(scratchPad[2])<<16 | uint64(scratchPad[3])<<24
		target, err := localHeap.GetString(linkOffset)
		if err != nil {
			return entry, err
		}
		entry.IsSoftLink = true
		entry.SoftLinkValue = target
		entry.ObjectAddress = 0

	default:
		return entry, fmt.Errorf("btree: symbol table entry %q has unrecognized cache type %d: %w", entry.Name, cacheType, errs.Format)
	}

	return entry, nil
}

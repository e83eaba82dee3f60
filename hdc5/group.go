package hdc5

import (
	"fmt"
	"path"

	"github.com/mwhittaker/hdc5/internal/btree"
	"github.com/mwhittaker/hdc5/internal/heap"
	"github.com/mwhittaker/hdc5/internal/message"
	"github.com/mwhittaker/hdc5/internal/object"
)

// Group is a named child table: an object whose header describes its
// members through a v1 symbol table, v2 link messages, or both.
type Group struct {
	file   *FileReader
	name   string
	path   string
	header *object.Header
}

// child is a resolved (not yet classified) lookup result.
type child struct {
	name    string
	address uint64
	soft    bool
}

// Name returns the group's own name ("/" for the root).
func (g *Group) Name() string {
	if g.name == "" {
		return "/"
	}
	return g.name
}

// Path returns the full slash-separated path from the root.
func (g *Group) Path() string {
	if g.path == "" {
		return "/"
	}
	return g.path
}

// Keys returns the names of this group's immediate children, each exactly
// once, in no particular order.
func (g *Group) Keys() ([]string, error) {
	seen := make(map[string]bool)
	var names []string

	for _, msg := range g.header.GetMessages(message.TypeLink) {
		link := msg.(*message.Link)
		if !seen[link.Name] {
			seen[link.Name] = true
			names = append(names, link.Name)
		}
	}

	if sym := g.header.SymbolTable(); sym != nil {
		entries, err := g.symbolTableEntries(sym)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !seen[e.Name] {
				seen[e.Name] = true
				names = append(names, e.Name)
			}
		}
	}

	return names, nil
}

// Object looks up name among this group's children, parses its object
// header, and classifies it as a Group or Dataset by message mix.
func (g *Group) Object(name string) (Object, error) {
	c, err := g.lookup(name)
	if err != nil {
		return nil, err
	}
	if c.soft {
		return nil, fmt.Errorf("hdc5: %q is a soft link: %w", name, ErrUnsupported)
	}

	hdr, err := g.file.readHeader(c.address)
	if err != nil {
		return nil, err
	}
	childPath := path.Join(g.Path(), name)

	if isDatasetHeader(hdr) {
		return newDataset(g.file, name, childPath, hdr)
	}
	return &Group{file: g.file, name: name, path: childPath, header: hdr}, nil
}

// Group opens name and asserts it classified as a group.
func (g *Group) Group(name string) (*Group, error) {
	obj, err := g.Object(name)
	if err != nil {
		return nil, err
	}
	child, ok := obj.(*Group)
	if !ok {
		return nil, fmt.Errorf("hdc5: %q: %w", name, ErrNotGroup)
	}
	return child, nil
}

// Dataset opens name and asserts it classified as a dataset.
func (g *Group) Dataset(name string) (*Dataset, error) {
	obj, err := g.Object(name)
	if err != nil {
		return nil, err
	}
	child, ok := obj.(*Dataset)
	if !ok {
		return nil, fmt.Errorf("hdc5: %q: %w", name, ErrNotDataset)
	}
	return child, nil
}

// lookup resolves name to an address, checking v2 link messages first and
// falling back to the v1 symbol table.
func (g *Group) lookup(name string) (child, error) {
	for _, msg := range g.header.GetMessages(message.TypeLink) {
		link := msg.(*message.Link)
		if link.Name != name {
			continue
		}
		if link.IsSoft() {
			return child{name: name, soft: true}, nil
		}
		return child{name: name, address: link.ObjectAddress}, nil
	}

	if sym := g.header.SymbolTable(); sym != nil {
		entries, err := g.symbolTableEntries(sym)
		if err != nil {
			return child{}, err
		}
		for _, e := range entries {
			if e.Name != name {
				continue
			}
			if e.IsSoftLink {
				return child{name: name, soft: true}, nil
			}
			return child{name: name, address: e.ObjectAddress}, nil
		}
	}

	return child{}, fmt.Errorf("hdc5: %q: %w", name, ErrNotFound)
}

func (g *Group) symbolTableEntries(sym *message.SymbolTable) ([]btree.GroupEntry, error) {
	localHeap, err := heap.Read(g.file.reader, sym.LocalHeapAddress)
	if err != nil {
		return nil, fmt.Errorf("hdc5: reading local heap: %w", err)
	}
	entries, err := btree.ReadGroupEntries(g.file.reader, sym.BTreeAddress, localHeap)
	if err != nil {
		return nil, fmt.Errorf("hdc5: reading group b-tree: %w", err)
	}
	return entries, nil
}

// isDatasetHeader applies the message-mix classification: presence of a
// dataspace, datatype, or data-storage message means the object is a
// dataset rather than a group.
func isDatasetHeader(hdr *object.Header) bool {
	return hdr.Dataspace() != nil || hdr.Datatype() != nil || hdr.DataStorage() != nil
}

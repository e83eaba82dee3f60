package hdc5

import "github.com/davecgh/go-spew/spew"

// Dump renders a debug string of the group's path and immediate children,
// for use in example tooling and structural test assertions.
func (g *Group) Dump() string {
	keys, err := g.Keys()
	return spew.Sdump(struct {
		Path string
		Keys []string
		Err  error
	}{g.Path(), keys, err})
}

// Dump renders a debug string of the dataset's path, shape, and datatype.
func (d *Dataset) Dump() string {
	return spew.Sdump(struct {
		Path  string
		Shape []uint64
		Class uint8
		Size  uint32
	}{d.Path(), d.Shape(), uint8(d.datatype.Class), d.datatype.Size})
}

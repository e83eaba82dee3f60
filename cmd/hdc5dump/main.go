// Command hdc5dump prints the object tree of an HDC5 file.
package main

import (
	"fmt"
	"os"

	"github.com/mwhittaker/hdc5/hdc5"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hdc5dump <file>")
		os.Exit(1)
	}

	f, err := hdc5.OpenFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdc5dump: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	err = hdc5.Walk(f.AsGroup(), func(path string, obj hdc5.Object, err error) error {
		if err != nil {
			fmt.Printf("%s: ERROR: %v\n", path, err)
			return nil
		}
		switch o := obj.(type) {
		case *hdc5.Group:
			fmt.Printf("%s/\n", path)
		case *hdc5.Dataset:
			fmt.Printf("%s  shape=%v datatype=%+v\n", path, o.Shape(), o.Datatype())
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdc5dump: %v\n", err)
		os.Exit(1)
	}
}

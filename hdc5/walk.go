package hdc5

// WalkFunc is called once per object (including g itself) during Walk.
// err carries any failure opening that object; returning a non-nil error
// from fn stops the walk and propagates it to Walk's caller.
type WalkFunc func(path string, obj Object, err error) error

// Walk depth-first traverses every group and dataset reachable from g.
func Walk(g *Group, fn WalkFunc) error {
	if err := fn(g.Path(), g, nil); err != nil {
		return err
	}

	names, err := g.Keys()
	if err != nil {
		return err
	}

	for _, name := range names {
		obj, err := g.Object(name)
		if err != nil {
			if err := fn(g.Path()+"/"+name, nil, err); err != nil {
				return err
			}
			continue
		}

		switch o := obj.(type) {
		case *Group:
			if err := Walk(o, fn); err != nil {
				return err
			}
		case *Dataset:
			if err := fn(o.Path(), o, nil); err != nil {
				return err
			}
		}
	}

	return nil
}

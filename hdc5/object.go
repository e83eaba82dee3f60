package hdc5

// Object is the tagged Group|Dataset variant returned by Group.Object. The
// concrete type is determined by the child's message mix, not by any
// structural relationship between Group and Dataset.
type Object interface {
	isObject()
}

func (*Group) isObject()   {}
func (*Dataset) isObject() {}

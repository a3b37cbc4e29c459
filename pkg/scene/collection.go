package scene

// Collection is an ordered stack of objects, index 0 at the bottom.
// A collection owns the lifecycle of its objects: attaching an object
// that already belongs to a collection panics, and destruction happens
// through Remove and RemoveAll.
type Collection struct {
	objects []*Object
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Len returns the number of attached objects.
func (c *Collection) Len() int {
	return len(c.objects)
}

// At returns the object at stack position i.
func (c *Collection) At(i int) *Object {
	if i < 0 || i >= len(c.objects) {
		panic("scene: index out of range")
	}
	return c.objects[i]
}

// Contains reports whether obj is attached to this collection.
func (c *Collection) Contains(obj *Object) bool {
	return obj != nil && obj.collection == c
}

// Objects returns a copy of the stack, bottom to top.
func (c *Collection) Objects() []*Object {
	out := make([]*Object, len(c.objects))
	copy(out, c.objects)
	return out
}

// Add attaches obj at the top of the stack.
// Panics if obj is nil, destroyed, or already attached to a collection.
func (c *Collection) Add(obj *Object) {
	c.adopt(obj)
	c.objects = append(c.objects, obj)
}

// Insert attaches obj at stack position i, pushing later objects up.
// Same attachment rules as Add.
func (c *Collection) Insert(i int, obj *Object) {
	if i < 0 || i > len(c.objects) {
		panic("scene: insert index out of range")
	}
	c.adopt(obj)
	c.objects = append(c.objects[:i], append([]*Object{obj}, c.objects[i:]...)...)
}

func (c *Collection) adopt(obj *Object) {
	if obj == nil {
		panic("scene: nil object")
	}
	if obj.destroyed {
		panic("scene: add of destroyed object")
	}
	if obj.collection != nil {
		panic("scene: object already in a collection")
	}
	obj.collection = c
}

// Remove detaches obj from the stack, destroying it when destroy is set.
// Returns false if obj is nil or attached elsewhere.
func (c *Collection) Remove(obj *Object, destroy bool) bool {
	if obj == nil || obj.collection != c {
		return false
	}
	// Clear the membership first so Destroy sees a detached object.
	obj.collection = nil
	for i, o := range c.objects {
		if o == obj {
			c.objects = append(c.objects[:i], c.objects[i+1:]...)
			break
		}
	}
	if destroy {
		obj.Destroy()
	}
	return true
}

// RemoveAll detaches every object, destroying them when destroy is set.
func (c *Collection) RemoveAll(destroy bool) {
	objects := c.objects
	c.objects = nil
	for _, obj := range objects {
		obj.collection = nil
		if destroy {
			obj.Destroy()
		}
	}
}

// RaiseToTop moves obj to the top of the stack.
// Panics if obj is not attached to this collection.
func (c *Collection) RaiseToTop(obj *Object) {
	i := c.indexOf(obj)
	c.objects = append(c.objects[:i], c.objects[i+1:]...)
	c.objects = append(c.objects, obj)
}

// LowerToBottom moves obj to the bottom of the stack.
// Panics if obj is not attached to this collection.
func (c *Collection) LowerToBottom(obj *Object) {
	i := c.indexOf(obj)
	c.objects = append(c.objects[:i], c.objects[i+1:]...)
	c.objects = append([]*Object{obj}, c.objects...)
}

func (c *Collection) indexOf(obj *Object) int {
	if obj == nil || obj.collection != c {
		panic("scene: object not in this collection")
	}
	for i, o := range c.objects {
		if o == obj {
			return i
		}
	}
	panic("scene: object not in this collection")
}

package document

import "github.com/google/uuid"

// Document is a named layer tree with a globally unique identity. The
// root group exists for structure only: it is never rendered itself and
// observers that mirror the tree treat it specially.
type Document struct {
	id    uuid.UUID
	title string
	root  *Group
}

// New creates an empty document with a fresh identity.
func New(title string) *Document {
	return NewWithID(uuid.New(), title)
}

// NewWithID creates an empty document with the given identity. Used when
// loading a document whose identity is already on disk.
func NewWithID(id uuid.UUID, title string) *Document {
	return &Document{
		id:    id,
		title: title,
		root:  NewGroup("root"),
	}
}

// ID returns the document's identity.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Title returns the document title.
func (d *Document) Title() string {
	return d.title
}

// SetTitle updates the document title.
func (d *Document) SetTitle(title string) {
	d.title = title
}

// Root returns the document's root group.
func (d *Document) Root() *Group {
	return d.root
}

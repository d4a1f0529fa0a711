package bplus

import "github.com/pkg/errors"

var (
	// ErrNodeFull is local to a node; the tree always recovers by splitting.
	ErrNodeFull = errors.New("node is full")
	// ErrNotFound: the tree is empty or no key qualifies.
	ErrNotFound = errors.New("no such record")
	// ErrEndOfTree: the cursor has run past the last entry.
	ErrEndOfTree = errors.New("end of tree")
	// ErrInvalidCursor: cursor page or entry outside the valid range.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInvalidFileFormat: the header page does not describe a tree.
	ErrInvalidFileFormat = errors.New("invalid index file format")

	ErrInvalidKey      = errors.New("key 0 is reserved as the empty-slot marker")
	ErrNodeNotEmpty    = errors.New("split sibling must be empty")
	ErrInvalidCapacity = errors.New("invalid node capacity")
	ErrClosed          = errors.New("index is closed")
	ErrCorrupt         = errors.New("index structure is corrupt")
)

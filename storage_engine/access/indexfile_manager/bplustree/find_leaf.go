package bplus

import (
	"BTreeDB/types"
	"math"

	"github.com/pkg/errors"
)

// findLeaf walks height-1 internal levels from the root and returns the leaf
// page that would hold key.
func (t *BTreeIndex) findLeaf(key int32) (types.PageID, error) {
	pid := t.rootPid
	for level := int32(1); level < t.height; level++ {
		node, err := t.loadInternal(pid)
		if err != nil {
			return types.InvalidPageID, err
		}
		next, err := node.ReadChild(node.LocateChild(key))
		if err != nil {
			return types.InvalidPageID, errors.Wrapf(err, "findLeaf: page %d", pid)
		}
		pid = next
	}
	return pid, nil
}

// Locate positions a cursor on the first entry with key >= searchKey inside
// the leaf that routes searchKey. If that leaf has no such entry the cursor's
// EntryIndex is InvalidEntry: there is nothing at or after searchKey to read
// from this cursor, and the sibling chain is deliberately not consulted.
func (t *BTreeIndex) Locate(searchKey int32) (IndexCursor, error) {
	if err := t.checkOpen(); err != nil {
		return IndexCursor{}, err
	}
	if t.height <= 0 {
		return IndexCursor{PageID: types.InvalidPageID, EntryIndex: InvalidEntry}, ErrNotFound
	}

	pid, err := t.findLeaf(searchKey)
	if err != nil {
		return IndexCursor{}, errors.Wrapf(err, "Locate: key %d", searchKey)
	}
	leaf, err := t.loadLeaf(pid)
	if err != nil {
		return IndexCursor{}, errors.Wrapf(err, "Locate: key %d", searchKey)
	}

	cursor := IndexCursor{PageID: pid, EntryIndex: InvalidEntry}
	if idx, err := leaf.FindFirstAtLeast(searchKey); err == nil {
		cursor.EntryIndex = idx
	}
	return cursor, nil
}

// Exhausted reports whether Locate found nothing at or after its key.
func (c IndexCursor) Exhausted() bool {
	return c.EntryIndex == InvalidEntry
}

// locateFirst positions a cursor at or before the first copy of key. A leaf
// split can leave equal keys on both sides of a separator equal to key, so
// the search routes by key-1 and, if that leaf has nothing left, continues
// at its sibling. Callers skip entries below key themselves.
func (t *BTreeIndex) locateFirst(key int32) (IndexCursor, error) {
	if key == math.MinInt32 {
		return t.Locate(key)
	}
	cursor, err := t.Locate(key - 1)
	if err != nil || !cursor.Exhausted() {
		return cursor, err
	}
	leaf, err := t.loadLeaf(cursor.PageID)
	if err != nil {
		return IndexCursor{}, errors.Wrapf(err, "locateFirst: key %d", key)
	}
	return IndexCursor{PageID: leaf.Sibling(), EntryIndex: 0}, nil
}

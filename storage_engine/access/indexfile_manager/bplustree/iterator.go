package bplus

import (
	"BTreeDB/types"

	"github.com/pkg/errors"
)

// ReadForward returns the entry under cursor and advances it. At the end of
// a leaf the cursor moves to the sibling's first entry, whether or not a
// sibling exists; the following call then fails with ErrInvalidCursor,
// which is how a range scan ends.
func (t *BTreeIndex) ReadForward(cursor *IndexCursor) (int32, types.RecordID, error) {
	if err := t.checkOpen(); err != nil {
		return 0, types.RecordID{}, err
	}
	if cursor == nil || cursor.PageID <= HeaderPageID || cursor.PageID >= t.store.EndPageID() {
		return 0, types.RecordID{}, ErrInvalidCursor
	}
	if cursor.EntryIndex == InvalidEntry {
		return 0, types.RecordID{}, ErrEndOfTree
	}

	leaf, err := t.loadLeaf(cursor.PageID)
	if err != nil {
		return 0, types.RecordID{}, errors.Wrap(err, "ReadForward")
	}
	key, rid, err := leaf.ReadEntry(cursor.EntryIndex)
	if err != nil {
		return 0, types.RecordID{}, err
	}

	// Move the cursor forward
	cursor.EntryIndex++
	if cursor.EntryIndex >= leaf.EntryCount() {
		cursor.PageID = leaf.Sibling()
		cursor.EntryIndex = 0
	}
	return key, rid, nil
}

// Iterator provides a forward-only range scan over the leaves.
type Iterator struct {
	tree   *BTreeIndex
	cursor IndexCursor
	key    int32
	rid    types.RecordID
	from   int32
	err    error
	done   bool
}

// Seek positions an iterator at the first key >= target, including copies of
// target that a split left in an earlier leaf. An empty tree gives an
// iterator that is already done.
func (t *BTreeIndex) Seek(target int32) *Iterator {
	it := &Iterator{tree: t, from: target}
	cursor, err := t.locateFirst(target)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			it.err = err
		}
		it.done = true
		return it
	}
	it.cursor = cursor
	it.done = cursor.Exhausted()
	return it
}

// Next advances the iterator. Returns false when exhausted or on error.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	for {
		key, rid, err := it.tree.ReadForward(&it.cursor)
		if err != nil {
			if !errors.Is(err, ErrInvalidCursor) && !errors.Is(err, ErrEndOfTree) {
				it.err = err
			}
			it.done = true
			return false
		}
		if key < it.from {
			continue
		}
		it.key, it.rid = key, rid
		return true
	}
}

// Key returns the current key.
func (it *Iterator) Key() int32 {
	return it.key
}

// RecordID returns the current record id.
func (it *Iterator) RecordID() types.RecordID {
	return it.rid
}

func (it *Iterator) Err() error {
	return it.err
}

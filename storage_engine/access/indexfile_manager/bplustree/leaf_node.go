package bplus

import (
	"BTreeDB/storage_engine/page"
	"BTreeDB/types"
	"slices"

	"github.com/pkg/errors"
)

// Load reads page pid from s and decodes it into n.
func (n *LeafNode) Load(s page.Store, pid types.PageID) error {
	pg, err := page.Read(s, pid)
	if err != nil {
		return errors.Wrapf(err, "LeafNode.Load: page %d", pid)
	}
	return decodeLeaf(pg.Data, n)
}

// Store encodes n and writes it to page pid.
func (n *LeafNode) Store(s page.Store, pid types.PageID) error {
	pg := page.New(pid)
	if err := encodeLeaf(n, pg.Data); err != nil {
		return err
	}
	if err := pg.Write(s); err != nil {
		return errors.Wrapf(err, "LeafNode.Store: page %d", pid)
	}
	return nil
}

func (n *LeafNode) EntryCount() int {
	return len(n.entries)
}

func (n *LeafNode) Capacity() int {
	return n.capacity
}

// Insert places (key, rid) in sorted position. Fails with ErrNodeFull at capacity.
func (n *LeafNode) Insert(key int32, rid types.RecordID) error {
	if key == 0 {
		return ErrInvalidKey
	}
	if len(n.entries) >= n.capacity {
		return ErrNodeFull
	}

	pos, err := n.FindFirstAtLeast(key)
	if errors.Is(err, ErrNotFound) {
		// every key is smaller, append
		pos = len(n.entries)
	}
	n.entries = slices.Insert(n.entries, pos, leafEntry{key: key, rid: rid})
	return nil
}

// InsertAndSplit inserts (key, rid) and moves the upper half of the entries
// into sibling, which must be empty. The first ceil((n+1)/2) entries stay.
// Returns the sibling's first key, to be promoted into the parent.
// Sibling pointers are left to the caller, which knows the page ids.
func (n *LeafNode) InsertAndSplit(key int32, rid types.RecordID, sibling *LeafNode) (int32, error) {
	if key == 0 {
		return 0, ErrInvalidKey
	}
	if sibling == nil || sibling.EntryCount() != 0 {
		return 0, ErrNodeNotEmpty
	}
	if len(n.entries) == 0 {
		return 0, errors.New("LeafNode.InsertAndSplit: cannot split an empty node")
	}

	pos, err := n.FindFirstAtLeast(key)
	if errors.Is(err, ErrNotFound) {
		pos = len(n.entries)
	}

	all := make([]leafEntry, 0, len(n.entries)+1)
	all = append(all, n.entries[:pos]...)
	all = append(all, leafEntry{key: key, rid: rid})
	all = append(all, n.entries[pos:]...)

	half := (len(all) + 1) / 2
	n.entries = append(n.entries[:0], all[:half]...)
	sibling.entries = append(sibling.entries[:0], all[half:]...)

	return sibling.entries[0].key, nil
}

// FindFirstAtLeast returns the index of the first entry with key >= searchKey,
// or ErrNotFound when searchKey is larger than every key in the node.
func (n *LeafNode) FindFirstAtLeast(searchKey int32) (int, error) {
	for i, e := range n.entries {
		if e.key >= searchKey {
			return i, nil
		}
	}
	return InvalidEntry, ErrNotFound
}

func (n *LeafNode) ReadEntry(idx int) (int32, types.RecordID, error) {
	if idx < 0 || idx >= len(n.entries) {
		return 0, types.RecordID{}, ErrInvalidCursor
	}
	e := n.entries[idx]
	return e.key, e.rid, nil
}

func (n *LeafNode) Sibling() types.PageID {
	return n.sibling
}

func (n *LeafNode) SetSibling(pid types.PageID) {
	n.sibling = pid
}

// Keys returns a copy of the keys, in order.
func (n *LeafNode) Keys() []int32 {
	keys := make([]int32, len(n.entries))
	for i, e := range n.entries {
		keys[i] = e.key
	}
	return keys
}

package bplus

import (
	"BTreeDB/storage_engine/page"
	"BTreeDB/types"
	"slices"

	"github.com/pkg/errors"
)

func (n *InternalNode) Load(s page.Store, pid types.PageID) error {
	pg, err := page.Read(s, pid)
	if err != nil {
		return errors.Wrapf(err, "InternalNode.Load: page %d", pid)
	}
	return decodeInternal(pg.Data, n)
}

func (n *InternalNode) Store(s page.Store, pid types.PageID) error {
	pg := page.New(pid)
	if err := encodeInternal(n, pg.Data); err != nil {
		return err
	}
	if err := pg.Write(s); err != nil {
		return errors.Wrapf(err, "InternalNode.Store: page %d", pid)
	}
	return nil
}

func (n *InternalNode) EntryCount() int {
	return len(n.entries)
}

func (n *InternalNode) Capacity() int {
	return n.capacity
}

// Insert adds (key, child) right after the entry that currently routes key.
func (n *InternalNode) Insert(key int32, child types.PageID) error {
	if key == 0 {
		return ErrInvalidKey
	}
	if len(n.entries) >= n.capacity {
		return ErrNodeFull
	}

	pos := n.LocateChild(key) + 1
	n.entries = slices.Insert(n.entries, pos, internalEntry{key: key, child: child})
	return nil
}

// InsertAndSplit inserts (key, child) and splits the n+1 entries around the
// middle one: the first floor((n+1)/2) stay, the middle entry's key is
// returned for the parent and its child becomes sibling's leftmost pointer,
// the rest move to sibling. The middle key is kept in neither node.
func (n *InternalNode) InsertAndSplit(key int32, child types.PageID, sibling *InternalNode) (int32, error) {
	if key == 0 {
		return 0, ErrInvalidKey
	}
	if sibling == nil || sibling.EntryCount() != 0 {
		return 0, ErrNodeNotEmpty
	}
	if len(n.entries) < MinCapacity {
		return 0, errors.Errorf("InternalNode.InsertAndSplit: need at least %d entries to split, have %d", MinCapacity, len(n.entries))
	}

	pos := n.LocateChild(key) + 1
	all := make([]internalEntry, 0, len(n.entries)+1)
	all = append(all, n.entries[:pos]...)
	all = append(all, internalEntry{key: key, child: child})
	all = append(all, n.entries[pos:]...)

	half := len(all) / 2
	mid := all[half]

	n.entries = append(n.entries[:0], all[:half]...)
	sibling.leftmost = mid.child
	sibling.entries = append(sibling.entries[:0], all[half+1:]...)

	return mid.key, nil
}

// LocateChild scans from the highest separator down and returns the index of
// the last entry whose key <= searchKey, or LeftmostChild if there is none.
func (n *InternalNode) LocateChild(searchKey int32) int {
	i := len(n.entries) - 1
	for i >= 0 && n.entries[i].key > searchKey {
		i--
	}
	return i
}

// ReadChild maps a LocateChild result to a page id.
func (n *InternalNode) ReadChild(idx int) (types.PageID, error) {
	if idx == LeftmostChild {
		return n.leftmost, nil
	}
	if idx < 0 || idx >= len(n.entries) {
		return types.InvalidPageID, ErrInvalidCursor
	}
	return n.entries[idx].child, nil
}

// InitializeAsRoot resets n to the two-child node (left | key | right).
func (n *InternalNode) InitializeAsRoot(left types.PageID, key int32, right types.PageID) error {
	if key == 0 {
		return ErrInvalidKey
	}
	n.entries = append(n.entries[:0], internalEntry{key: key, child: right})
	n.leftmost = left
	return nil
}

func (n *InternalNode) Leftmost() types.PageID {
	return n.leftmost
}

// Children returns all child page ids in routing order.
func (n *InternalNode) Children() []types.PageID {
	children := make([]types.PageID, 0, len(n.entries)+1)
	children = append(children, n.leftmost)
	for _, e := range n.entries {
		children = append(children, e.child)
	}
	return children
}

func (n *InternalNode) Keys() []int32 {
	keys := make([]int32, len(n.entries))
	for i, e := range n.entries {
		keys[i] = e.key
	}
	return keys
}

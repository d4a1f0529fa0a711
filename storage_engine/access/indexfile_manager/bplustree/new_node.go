package bplus

import "BTreeDB/types"

// NewLeafNode returns an empty leaf. capacity <= 0 or above the physical
// limit means "as many entries as fit in a page".
func NewLeafNode(capacity int) *LeafNode {
	if capacity <= 0 || capacity > MaxLeafEntries {
		capacity = MaxLeafEntries
	}
	return &LeafNode{
		entries:  make([]leafEntry, 0, capacity+1),
		sibling:  types.InvalidPageID,
		capacity: capacity,
	}
}

// NewInternalNode returns an empty internal node, same capacity rule as leaves.
func NewInternalNode(capacity int) *InternalNode {
	if capacity <= 0 || capacity > MaxInternalEntries {
		capacity = MaxInternalEntries
	}
	return &InternalNode{
		entries:  make([]internalEntry, 0, capacity+1),
		leftmost: types.InvalidPageID,
		capacity: capacity,
	}
}

func (t *BTreeIndex) newLeaf() *LeafNode {
	return NewLeafNode(t.leafCap)
}

func (t *BTreeIndex) newInternal() *InternalNode {
	return NewInternalNode(t.internalCap)
}

// loadLeaf reads and decodes the leaf stored at pid.
func (t *BTreeIndex) loadLeaf(pid types.PageID) (*LeafNode, error) {
	n := t.newLeaf()
	if err := n.Load(t.store, pid); err != nil {
		return nil, err
	}
	return n, nil
}

func (t *BTreeIndex) loadInternal(pid types.PageID) (*InternalNode, error) {
	n := t.newInternal()
	if err := n.Load(t.store, pid); err != nil {
		return nil, err
	}
	return n, nil
}

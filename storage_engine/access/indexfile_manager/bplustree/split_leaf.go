package bplus

import (
	"BTreeDB/types"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// insertIntoLeaf inserts into the leaf at pid, splitting it when full.
func (t *BTreeIndex) insertIntoLeaf(pid types.PageID, key int32, rid types.RecordID) (splitResult, error) {
	leaf, err := t.loadLeaf(pid)
	if err != nil {
		return noSplit, err
	}

	err = leaf.Insert(key, rid)
	if err == nil {
		return noSplit, leaf.Store(t.store, pid)
	}
	if !errors.Is(err, ErrNodeFull) {
		return noSplit, err
	}

	return t.splitLeaf(leaf, pid, key, rid)
}

// splitLeaf moves the upper half of leaf into a new right sibling appended
// at the end of the file and links it into the leaf chain.
func (t *BTreeIndex) splitLeaf(leaf *LeafNode, pid types.PageID, key int32, rid types.RecordID) (splitResult, error) {
	right := t.newLeaf()
	sepKey, err := leaf.InsertAndSplit(key, rid, right)
	if err != nil {
		return noSplit, errors.Wrapf(err, "splitLeaf: page %d", pid)
	}

	rightPid := t.store.EndPageID()
	right.SetSibling(leaf.Sibling()) // right inherits leaf's old next pointer
	leaf.SetSibling(rightPid)

	// right first: writing at EndPageID is what allocates the page
	if err := right.Store(t.store, rightPid); err != nil {
		return noSplit, err
	}
	if err := leaf.Store(t.store, pid); err != nil {
		return noSplit, err
	}

	t.logger.Debug("split leaf",
		zap.Int32("left", int32(pid)),
		zap.Int32("right", int32(rightPid)),
		zap.Int32("separator", sepKey))

	return splitResult{split: true, key: sepKey, child: rightPid}, nil
}

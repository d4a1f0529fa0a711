package bplus

import (
	diskmanager "BTreeDB/storage_engine/disk_manager"
	"BTreeDB/types"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Insert adds (key, rid) to the index. Node overflow is handled here by
// splitting and never reaches the caller.
func (t *BTreeIndex) Insert(key int32, rid types.RecordID) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	if t.mode != types.ModeWrite {
		return errors.Wrap(diskmanager.ErrReadOnly, "Insert")
	}
	if key == 0 {
		return errors.Wrapf(ErrInvalidKey, "Insert: rid %s", rid)
	}

	// If tree is empty
	if t.height == 0 {
		return t.insertAtRoot(key, rid)
	}

	res, err := t.insertAt(t.rootPid, 1, key, rid)
	if err != nil {
		return errors.Wrapf(err, "Insertion: key %d", key)
	}
	if res.split {
		return t.createNewRoot(t.rootPid, res.key, res.child)
	}
	return nil
}

// insertAtRoot starts a tree of height 1 with a single leaf.
func (t *BTreeIndex) insertAtRoot(key int32, rid types.RecordID) error {
	root := t.newLeaf()
	if err := root.Insert(key, rid); err != nil {
		return err
	}

	pid := t.store.EndPageID()
	if err := root.Store(t.store, pid); err != nil {
		return errors.Wrap(err, "insertAtRoot")
	}

	t.rootPid = pid
	t.height = 1
	t.logger.Debug("new tree", zap.Int32("root", int32(pid)))
	return nil
}

// insertAt descends from pid, which sits at the given level (root = 1), and
// returns the promotion the caller has to absorb, if any.
func (t *BTreeIndex) insertAt(pid types.PageID, level int32, key int32, rid types.RecordID) (splitResult, error) {
	if level == t.height {
		return t.insertIntoLeaf(pid, key, rid)
	}

	node, err := t.loadInternal(pid)
	if err != nil {
		return noSplit, err
	}
	childPid, err := node.ReadChild(node.LocateChild(key))
	if err != nil {
		return noSplit, errors.Wrapf(err, "insertAt: page %d", pid)
	}

	res, err := t.insertAt(childPid, level+1, key, rid)
	if err != nil || !res.split {
		return noSplit, err
	}
	return t.insertIntoParent(node, pid, res)
}

package bplus

import (
	"BTreeDB/types"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// splitInternal splits a full internal node and promotes the middle key.
func (t *BTreeIndex) splitInternal(node *InternalNode, pid types.PageID, res splitResult) (splitResult, error) {
	right := t.newInternal()
	midKey, err := node.InsertAndSplit(res.key, res.child, right)
	if err != nil {
		return noSplit, errors.Wrapf(err, "splitInternal: page %d", pid)
	}

	rightPid := t.store.EndPageID()
	if err := right.Store(t.store, rightPid); err != nil {
		return noSplit, err
	}
	if err := node.Store(t.store, pid); err != nil {
		return noSplit, err
	}

	t.logger.Debug("split internal",
		zap.Int32("left", int32(pid)),
		zap.Int32("right", int32(rightPid)),
		zap.Int32("promoted", midKey))

	return splitResult{split: true, key: midKey, child: rightPid}, nil
}

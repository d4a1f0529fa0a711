package bplus

import (
	"BTreeDB/types"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// createNewRoot creates a new root internal node with leftPageID and rightPageID
// as its two children, separated by promoteKey. The tree grows by one level.
func (t *BTreeIndex) createNewRoot(leftPageID types.PageID, promoteKey int32, rightPageID types.PageID) error {
	root := t.newInternal()
	if err := root.InitializeAsRoot(leftPageID, promoteKey, rightPageID); err != nil {
		return errors.Wrap(err, "createNewRoot")
	}

	pid := t.store.EndPageID()
	if err := root.Store(t.store, pid); err != nil {
		return errors.Wrap(err, "createNewRoot: failed to write new root")
	}

	t.rootPid = pid
	t.height++
	t.logger.Debug("new root",
		zap.Int32("root", int32(pid)),
		zap.Int32("height", t.height),
		zap.Int32("separator", promoteKey))
	return nil
}

package bplus

import (
	"BTreeDB/types"

	"github.com/pkg/errors"
)

// insertIntoParent absorbs a promotion from the level below into node (page
// pid). If node overflows it splits and the new promotion is returned.
func (t *BTreeIndex) insertIntoParent(node *InternalNode, pid types.PageID, res splitResult) (splitResult, error) {
	err := node.Insert(res.key, res.child)
	if err == nil {
		return noSplit, node.Store(t.store, pid)
	}
	if !errors.Is(err, ErrNodeFull) {
		return noSplit, err
	}

	return t.splitInternal(node, pid, res)
}

// Structure of B+ Tree
/*
Tree
 ├── page 0: header (root page id, height)
 ├── Internal Node (leftmost child + sorted (separator, right child) entries)
 │      └── Child Internal Nodes ...
 │             └── Leaf Nodes (sorted (key, record id) entries + sibling pointer)


- keys: int32, sorted ascending; 0 marks an empty slot and can never be stored
- internal nodes: i entries -> i+1 children
      key <  entries[0].key                          -> leftmost
      entries[j].key <= key < entries[j+1].key       -> entries[j].child
- leaf nodes linked left to right through `sibling` for range scans
- all leaf nodes at same depth == height
- height 0 = empty, 1 = root is a leaf

*/
package bplus

import (
	"BTreeDB/storage_engine/bufferpool"
	diskmanager "BTreeDB/storage_engine/disk_manager"
	"BTreeDB/storage_engine/page"
	"BTreeDB/types"

	"go.uber.org/zap"
)

const (
	// leaf entry: key int32 | record page int32 | record slot int32
	LeafEntrySize = types.KeySize + 4 + 4
	// internal entry: separator int32 | child page int32
	InternalEntrySize = types.KeySize + types.PointerSize

	// physical capacities, the trailing PointerSize bytes hold sibling / leftmost
	MaxLeafEntries     = (types.PageSize - types.PointerSize) / LeafEntrySize
	MaxInternalEntries = (types.PageSize - types.PointerSize) / InternalEntrySize

	MinCapacity = 2

	HeaderPageID types.PageID = 0
)

// LeftmostChild is what InternalNode.LocateChild returns when the search key
// is smaller than every separator.
const LeftmostChild = -1

// InvalidEntry marks a cursor positioned past the last key of its leaf.
const InvalidEntry = -1

type leafEntry struct {
	key int32
	rid types.RecordID
}

type internalEntry struct {
	key   int32
	child types.PageID
}

// LeafNode is the decoded form of one leaf page.
type LeafNode struct {
	entries  []leafEntry
	sibling  types.PageID // next leaf in key order, InvalidPageID at the end
	capacity int
}

// InternalNode is the decoded form of one internal page.
type InternalNode struct {
	entries  []internalEntry
	leftmost types.PageID // child for keys below entries[0].key
	capacity int
}

// IndexCursor is a position inside one leaf.
type IndexCursor struct {
	PageID     types.PageID
	EntryIndex int
}

type BTreeIndex struct {
	store    page.Store
	pageFile *diskmanager.PageFile
	pool     *bufferpool.BufferPool // nil when the page cache is disabled
	mode     types.OpenMode

	rootPid types.PageID // InvalidPageID when empty
	height  int32

	leafCap     int
	internalCap int
	logger      *zap.Logger
}

// splitResult travels back up the insert recursion. A zero value means the
// level below absorbed the insert.
type splitResult struct {
	split bool
	key   int32        // first key of the new right node
	child types.PageID // page id of the new right node
}

var noSplit = splitResult{}

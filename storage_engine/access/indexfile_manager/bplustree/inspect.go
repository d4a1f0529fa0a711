// Index file inspection and structural verification for debugging.
// Use InspectIndexFileTo(w, path) to print a human-readable dump of a .idx file.

package bplus

import (
	"BTreeDB/types"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/pkg/errors"
)

// Report summarises a successful Verify.
type Report struct {
	Height        int32
	InternalNodes int
	LeafNodes     int
	Entries       int
	MinKey        int32
	MaxKey        int32
	// LeafCapacity is the leaf capacity the tree was opened with.
	LeafCapacity int
	// LeafPages holds the page id of every leaf.
	LeafPages *roaring.Bitmap
}

// LeafFill is the percentage of leaf slots in use, measured against
// LeafCapacity.
func (r *Report) LeafFill() float64 {
	if r.LeafNodes == 0 || r.LeafCapacity == 0 {
		return 0
	}
	return float64(r.Entries) / float64(r.LeafNodes*r.LeafCapacity) * 100
}

type verifyFrame struct {
	pid          types.PageID
	depth        int32
	lo, hi       int32
	hasLo, hasHi bool
}

func (f verifyFrame) contains(key int32) bool {
	if f.hasLo && key < f.lo {
		return false
	}
	if f.hasHi && key > f.hi {
		return false
	}
	return true
}

func corrupt(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCorrupt, format, args...)
}

// Verify walks the whole tree and checks: keys sorted in every node, leaf
// keys inside the separator bounds of their ancestors, every leaf at depth
// == height, no page reachable twice, and a sibling chain that visits the
// leaves left to right exactly once.
func (t *BTreeIndex) Verify() (*Report, error) {
	if err := t.checkOpen(); err != nil {
		return nil, err
	}

	report := &Report{Height: t.height, LeafCapacity: t.leafCap, LeafPages: roaring.New()}
	if report.LeafCapacity == 0 {
		report.LeafCapacity = MaxLeafEntries
	}
	if t.height == 0 {
		return report, nil
	}

	end := t.store.EndPageID()
	visited := roaring.New()
	var leafOrder []types.PageID
	siblings := make(map[types.PageID]types.PageID)
	leafBounds := make(map[types.PageID][2]int32) // first and last key of each leaf

	queue := []verifyFrame{{pid: t.rootPid, depth: 1}}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		if f.pid <= HeaderPageID || f.pid >= end {
			return nil, corrupt("page %d outside [1, %d)", f.pid, end)
		}
		if !visited.CheckedAdd(uint32(f.pid)) {
			return nil, corrupt("page %d reachable twice", f.pid)
		}

		if f.depth == t.height {
			leaf, err := t.loadLeaf(f.pid)
			if err != nil {
				return nil, err
			}
			keys := leaf.Keys()
			if len(keys) == 0 {
				return nil, corrupt("leaf %d is empty", f.pid)
			}
			for i, k := range keys {
				if i > 0 && keys[i-1] > k {
					return nil, corrupt("leaf %d: keys out of order at %d", f.pid, i)
				}
				if !f.contains(k) {
					return nil, corrupt("leaf %d: key %d outside parent bounds", f.pid, k)
				}
			}
			if report.Entries == 0 || keys[0] < report.MinKey {
				report.MinKey = keys[0]
			}
			if report.Entries == 0 || keys[len(keys)-1] > report.MaxKey {
				report.MaxKey = keys[len(keys)-1]
			}
			report.Entries += len(keys)
			report.LeafNodes++
			report.LeafPages.Add(uint32(f.pid))
			leafOrder = append(leafOrder, f.pid)
			siblings[f.pid] = leaf.Sibling()
			leafBounds[f.pid] = [2]int32{keys[0], keys[len(keys)-1]}
			continue
		}

		node, err := t.loadInternal(f.pid)
		if err != nil {
			return nil, err
		}
		keys := node.Keys()
		if len(keys) == 0 {
			return nil, corrupt("internal node %d is empty", f.pid)
		}
		for i, k := range keys {
			if i > 0 && keys[i-1] > k {
				return nil, corrupt("internal node %d: separators out of order at %d", f.pid, i)
			}
			if !f.contains(k) {
				return nil, corrupt("internal node %d: separator %d outside parent bounds", f.pid, k)
			}
		}
		report.InternalNodes++

		children := node.Children()
		for i, child := range children {
			cf := verifyFrame{pid: child, depth: f.depth + 1, lo: f.lo, hi: f.hi, hasLo: f.hasLo, hasHi: f.hasHi}
			if i > 0 {
				cf.lo, cf.hasLo = keys[i-1], true
			}
			if i < len(keys) {
				cf.hi, cf.hasHi = keys[i], true
			}
			queue = append(queue, cf)
		}
	}

	// the sibling chain must visit exactly the leaves found above, in order
	pid := leafOrder[0]
	for i, want := range leafOrder {
		if pid != want {
			return nil, corrupt("sibling chain: expected leaf %d at position %d, found %d", want, i, pid)
		}
		next := siblings[pid]
		if i+1 < len(leafOrder) && leafBounds[pid][1] > leafBounds[leafOrder[i+1]][0] {
			return nil, corrupt("leaf %d ends above the start of its sibling", pid)
		}
		pid = next
	}
	if pid != types.InvalidPageID {
		return nil, corrupt("sibling chain continues past the last leaf into page %d", pid)
	}

	return report, nil
}

// Inspect writes a level-by-level dump of the tree to w.
func (t *BTreeIndex) Inspect(w io.Writer) error {
	if err := t.checkOpen(); err != nil {
		return err
	}

	p := func(format string, args ...interface{}) { fmt.Fprintf(w, format, args...) }

	p("  Page 0 (%s): root page id = %d, height = %d, pages = %d\n", types.PageTypeMetadata, t.rootPid, t.height, t.store.EndPageID())
	if t.height == 0 {
		p("  (empty tree)\n")
		return nil
	}

	p("\n  Nodes (BFS):\n")
	p("  ---\n")

	queue := []types.PageID{t.rootPid}
	for level := int32(1); level <= t.height && len(queue) > 0; level++ {
		p("  Level %d:\n", level)
		var next []types.PageID
		for _, pid := range queue {
			if level == t.height {
				leaf, err := t.loadLeaf(pid)
				if err != nil {
					p("    [page %d] read error: %v\n", pid, err)
					continue
				}
				p("    [page %d] %s numKeys=%d next=%d\n", pid, types.PageTypeLeaf, leaf.EntryCount(), leaf.Sibling())
				for i := 0; i < leaf.EntryCount(); i++ {
					key, rid, _ := leaf.ReadEntry(i)
					p("      %d -> %s\n", key, rid)
				}
				continue
			}

			node, err := t.loadInternal(pid)
			if err != nil {
				p("    [page %d] read error: %v\n", pid, err)
				continue
			}
			p("    [page %d] %s keys=%v children=%v\n", pid, types.PageTypeInternal, node.Keys(), node.Children())
			next = append(next, node.Children()...)
		}
		p("  ---\n")
		queue = next
	}
	return nil
}

// InspectIndexFileTo writes a human-readable dump of the index file to w.
func InspectIndexFileTo(w io.Writer, indexPath string) error {
	t, err := Open(indexPath, types.ModeRead)
	if err != nil {
		return err
	}
	defer t.Close()

	fmt.Fprintf(w, "Index file: %s\n", indexPath)
	return t.Inspect(w)
}

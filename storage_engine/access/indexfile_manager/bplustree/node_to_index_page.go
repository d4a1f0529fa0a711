package bplus

import (
	"BTreeDB/types"
	"encoding/binary"

	"github.com/pkg/errors"
)

/*
Encoding between decoded nodes and raw 1KB pages.
All offset arithmetic lives in this file.

Header page (page 0):

	0   rootPid  int32  -1 when the tree is empty
	4   height   int32  0 empty, 1 root is a leaf
	8   unused, zero filled

Leaf page:

	0                 entry 0   [ key int32 | rid.PageID int32 | rid.SlotID int32 ]
	12                entry 1
	...               up to MaxLeafEntries entries, unused slots zero filled
	PageSize-4        sibling  int32

Internal page:

	0                 entry 0   [ separator int32 | child int32 ]
	8                 entry 1
	...               up to MaxInternalEntries entries, unused slots zero filled
	PageSize-4        leftmost child int32

A key of 0 terminates the entry array on decode, so 0 is never a storable key.
The trailing slot sits at the same offset in both node kinds; a never-written
pointer (0) decodes as InvalidPageID since page 0 is never a node.

All integers little-endian.
*/

const trailerOffset = types.PageSize - types.PointerSize

func putInt32(buf []byte, v int32) {
	binary.LittleEndian.PutUint32(buf, uint32(v))
}

func getInt32(buf []byte) int32 {
	return int32(binary.LittleEndian.Uint32(buf))
}

func decodePointer(buf []byte) types.PageID {
	pid := types.PageID(getInt32(buf))
	if pid <= 0 {
		return types.InvalidPageID
	}
	return pid
}

// ── Header ────────────────────────────────────────────────────────────────

func encodeHeader(data []byte, rootPid types.PageID, height int32) {
	clear(data)
	putInt32(data[0:], int32(rootPid))
	putInt32(data[types.PointerSize:], height)
}

func decodeHeader(data []byte) (types.PageID, int32) {
	return types.PageID(getInt32(data[0:])), getInt32(data[types.PointerSize:])
}

// ── Leaf ──────────────────────────────────────────────────────────────────

func encodeLeaf(n *LeafNode, data []byte) error {
	if len(data) != types.PageSize {
		return errors.Errorf("encodeLeaf: data buffer must be %d bytes", types.PageSize)
	}
	if len(n.entries) > MaxLeafEntries {
		return errors.Errorf("encodeLeaf: %d entries exceed page capacity %d", len(n.entries), MaxLeafEntries)
	}

	clear(data)
	offset := 0
	for _, e := range n.entries {
		if e.key == 0 {
			return errors.Wrap(ErrInvalidKey, "encodeLeaf")
		}
		putInt32(data[offset:], e.key)
		putInt32(data[offset+4:], int32(e.rid.PageID))
		putInt32(data[offset+8:], e.rid.SlotID)
		offset += LeafEntrySize
	}
	putInt32(data[trailerOffset:], int32(n.sibling))
	return nil
}

func decodeLeaf(data []byte, n *LeafNode) error {
	if len(data) != types.PageSize {
		return errors.Errorf("decodeLeaf: data must be %d bytes", types.PageSize)
	}

	n.entries = n.entries[:0]
	for i, offset := 0, 0; i < MaxLeafEntries; i, offset = i+1, offset+LeafEntrySize {
		key := getInt32(data[offset:])
		if key == 0 {
			break
		}
		n.entries = append(n.entries, leafEntry{
			key: key,
			rid: types.RecordID{
				PageID: types.PageID(getInt32(data[offset+4:])),
				SlotID: getInt32(data[offset+8:]),
			},
		})
	}
	n.sibling = decodePointer(data[trailerOffset:])
	return nil
}

// ── Internal ──────────────────────────────────────────────────────────────

func encodeInternal(n *InternalNode, data []byte) error {
	if len(data) != types.PageSize {
		return errors.Errorf("encodeInternal: data buffer must be %d bytes", types.PageSize)
	}
	if len(n.entries) > MaxInternalEntries {
		return errors.Errorf("encodeInternal: %d entries exceed page capacity %d", len(n.entries), MaxInternalEntries)
	}

	clear(data)
	offset := 0
	for _, e := range n.entries {
		if e.key == 0 {
			return errors.Wrap(ErrInvalidKey, "encodeInternal")
		}
		putInt32(data[offset:], e.key)
		putInt32(data[offset+types.KeySize:], int32(e.child))
		offset += InternalEntrySize
	}
	putInt32(data[trailerOffset:], int32(n.leftmost))
	return nil
}

func decodeInternal(data []byte, n *InternalNode) error {
	if len(data) != types.PageSize {
		return errors.Errorf("decodeInternal: data must be %d bytes", types.PageSize)
	}

	n.entries = n.entries[:0]
	for i, offset := 0, 0; i < MaxInternalEntries; i, offset = i+1, offset+InternalEntrySize {
		key := getInt32(data[offset:])
		if key == 0 {
			break
		}
		n.entries = append(n.entries, internalEntry{
			key:   key,
			child: types.PageID(getInt32(data[offset+types.KeySize:])),
		})
	}
	n.leftmost = decodePointer(data[trailerOffset:])
	return nil
}

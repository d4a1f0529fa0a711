package bplus

import (
	"BTreeDB/types"

	"github.com/pkg/errors"
)

// Search returns the record id stored under key (the first one if the key
// was inserted more than once).
func (t *BTreeIndex) Search(key int32) (types.RecordID, error) {
	cursor, err := t.locateFirst(key)
	if err != nil {
		return types.RecordID{}, err
	}
	if cursor.Exhausted() {
		return types.RecordID{}, ErrNotFound
	}

	for {
		k, rid, err := t.ReadForward(&cursor)
		if err != nil {
			if errors.Is(err, ErrEndOfTree) || errors.Is(err, ErrInvalidCursor) {
				return types.RecordID{}, ErrNotFound
			}
			return types.RecordID{}, err
		}
		switch {
		case k < key:
			continue
		case k > key:
			return types.RecordID{}, ErrNotFound
		}
		return rid, nil
	}
}

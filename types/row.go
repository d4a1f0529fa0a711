package types

import "fmt"

// RecordsPerPage is the number of fixed-size tuples a heap page holds.
// It lives here so RecordID arithmetic does not depend on the heap package.
const RecordsPerPage = (PageSize - 4) / RecordSize

// RecordSize: key int32 (4B) | value length uint8 (1B) | value bytes (MaxValueLen).
const (
	MaxValueLen = 99
	RecordSize  = 4 + 1 + MaxValueLen
)

// RecordID points to a specific tuple in a heap file. The index stores it
// next to every key but never dereferences it.
type RecordID struct {
	PageID PageID `json:"page_id"`
	SlotID int32  `json:"slot_id"`
}

// Next returns the id of the slot following r in file order.
func (r RecordID) Next() RecordID {
	if r.SlotID+1 >= RecordsPerPage {
		return RecordID{PageID: r.PageID + 1, SlotID: 0}
	}
	return RecordID{PageID: r.PageID, SlotID: r.SlotID + 1}
}

func (r RecordID) Less(o RecordID) bool {
	if r.PageID != o.PageID {
		return r.PageID < o.PageID
	}
	return r.SlotID < o.SlotID
}

func (r RecordID) String() string {
	return fmt.Sprintf("(page=%d slot=%d)", r.PageID, r.SlotID)
}

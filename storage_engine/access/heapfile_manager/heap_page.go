package heapfile

import (
	"BTreeDB/storage_engine/page"
	"BTreeDB/types"
	"encoding/binary"

	"github.com/pkg/errors"
)

/*
This file contains standalone functions operating on *page.Page for heap file operations.

Heap page binary layout (all values little-endian):

	Offset  Size  Field
	──────────────────────────────────────────────────────
	0       4     RecordCount  int32   slots in use, filled front to back
	4       104   record 0
	108     104   record 1
	...           types.RecordsPerPage records in total
	──────────────────────────────────────────────────────

A record is fixed size:

	[ key int32 ][ len uint8 ][ value, types.MaxValueLen bytes, zero padded ]

Slot i lives at heapHeaderSize + i*types.RecordSize. Records are never
deleted, so every slot below RecordCount is live.
*/
const (
	heapOffRecordCount = 0
	heapHeaderSize     = 4

	recOffKey   = 0
	recOffLen   = 4
	recOffValue = 5
)

func recordOffset(slot int32) int {
	return heapHeaderSize + int(slot)*types.RecordSize
}

func GetRecordCount(pg *page.Page) int32 {
	return int32(binary.LittleEndian.Uint32(pg.Data[heapOffRecordCount:]))
}

func SetRecordCount(pg *page.Page, n int32) {
	binary.LittleEndian.PutUint32(pg.Data[heapOffRecordCount:], uint32(n))
}

// WriteRecord stores (key, value) in slot. value is cut at types.MaxValueLen bytes.
func WriteRecord(pg *page.Page, slot int32, key int32, value string) error {
	if slot < 0 || slot >= types.RecordsPerPage {
		return errors.Wrapf(ErrInvalidRecordID, "WriteRecord: slot %d", slot)
	}
	if len(value) > types.MaxValueLen {
		value = value[:types.MaxValueLen]
	}

	rec := pg.Data[recordOffset(slot) : recordOffset(slot)+types.RecordSize]
	clear(rec)
	binary.LittleEndian.PutUint32(rec[recOffKey:], uint32(key))
	rec[recOffLen] = uint8(len(value))
	copy(rec[recOffValue:], value)
	return nil
}

// ReadRecord decodes the record in slot.
func ReadRecord(pg *page.Page, slot int32) (int32, string, error) {
	if slot < 0 || slot >= GetRecordCount(pg) {
		return 0, "", errors.Wrapf(ErrInvalidRecordID, "ReadRecord: slot %d of page %d", slot, pg.ID)
	}

	rec := pg.Data[recordOffset(slot) : recordOffset(slot)+types.RecordSize]
	n := int(rec[recOffLen])
	if n > types.MaxValueLen {
		return 0, "", errors.Wrapf(ErrCorruptPage, "page %d slot %d: value length %d", pg.ID, slot, n)
	}
	key := int32(binary.LittleEndian.Uint32(rec[recOffKey:]))
	return key, string(rec[recOffValue : recOffValue+n]), nil
}

package heapfile

import (
	"BTreeDB/storage_engine/bufferpool"
	diskmanager "BTreeDB/storage_engine/disk_manager"
	"BTreeDB/storage_engine/page"
	"BTreeDB/types"

	"github.com/pkg/errors"
)

// Open opens the heap file at path. cacheBytes > 0 puts a page cache in front.
func Open(path string, mode types.OpenMode, cacheBytes int64) (*HeapFile, error) {
	pf, err := diskmanager.Open(path, mode)
	if err != nil {
		return nil, err
	}

	hf := &HeapFile{
		store:    pf,
		pageFile: pf,
		filePath: path,
		mode:     mode,
	}
	if cacheBytes > 0 {
		pool, err := bufferpool.NewBufferPool(pf, cacheBytes)
		if err != nil {
			pf.Close()
			return nil, err
		}
		hf.store = pool
	}

	if err := hf.loadEnd(); err != nil {
		hf.store.Close()
		return nil, err
	}
	return hf, nil
}

// loadEnd derives the first free slot from the last page's record count.
func (hf *HeapFile) loadEnd() error {
	end := hf.store.EndPageID()
	if end == 0 {
		hf.endRid = types.RecordID{}
		return nil
	}

	last, err := page.Read(hf.store, end-1)
	if err != nil {
		return errors.Wrap(err, "failed to read last heap page")
	}
	count := GetRecordCount(last)
	switch {
	case count < 0 || count > types.RecordsPerPage:
		return errors.Wrapf(ErrCorruptPage, "page %d: record count %d", end-1, count)
	case count == types.RecordsPerPage:
		hf.endRid = types.RecordID{PageID: end, SlotID: 0}
	default:
		hf.endRid = types.RecordID{PageID: end - 1, SlotID: count}
	}
	return nil
}

// Append writes (key, value) to the first free slot and returns its id.
func (hf *HeapFile) Append(key int32, value string) (types.RecordID, error) {
	hf.mu.Lock()
	defer hf.mu.Unlock()

	if hf.store == nil {
		return types.RecordID{}, diskmanager.ErrFileClosed
	}
	if hf.mode != types.ModeWrite {
		return types.RecordID{}, errors.Wrap(diskmanager.ErrReadOnly, "Append")
	}

	rid := hf.endRid
	var pg *page.Page
	if rid.SlotID == 0 {
		// first record of a fresh page
		pg = page.New(rid.PageID)
	} else {
		var err error
		if pg, err = page.Read(hf.store, rid.PageID); err != nil {
			return types.RecordID{}, errors.Wrapf(err, "Append: page %d", rid.PageID)
		}
	}

	if err := WriteRecord(pg, rid.SlotID, key, value); err != nil {
		return types.RecordID{}, err
	}
	SetRecordCount(pg, rid.SlotID+1)
	if err := pg.Write(hf.store); err != nil {
		return types.RecordID{}, errors.Wrapf(err, "Append: page %d", rid.PageID)
	}

	hf.endRid = rid.Next()
	return rid, nil
}

// Read returns the tuple stored at rid.
func (hf *HeapFile) Read(rid types.RecordID) (int32, string, error) {
	hf.mu.RLock()
	defer hf.mu.RUnlock()

	if hf.store == nil {
		return 0, "", diskmanager.ErrFileClosed
	}
	if rid.PageID < 0 || rid.SlotID < 0 || !rid.Less(hf.endRid) {
		return 0, "", errors.Wrapf(ErrInvalidRecordID, "Read %s (end %s)", rid, hf.endRid)
	}

	pg, err := page.Read(hf.store, rid.PageID)
	if err != nil {
		return 0, "", errors.Wrapf(err, "Read %s", rid)
	}
	return ReadRecord(pg, rid.SlotID)
}

// EndRecordID is the id the next Append will return; every id below it is readable.
func (hf *HeapFile) EndRecordID() types.RecordID {
	hf.mu.RLock()
	defer hf.mu.RUnlock()
	return hf.endRid
}

// PageReads is the number of pages read from disk so far.
func (hf *HeapFile) PageReads() uint64 {
	return hf.pageFile.Reads()
}

func (hf *HeapFile) Path() string {
	return hf.filePath
}

func (hf *HeapFile) Close() error {
	hf.mu.Lock()
	defer hf.mu.Unlock()

	if hf.store == nil {
		return nil
	}
	err := hf.store.Close()
	hf.store = nil
	return err
}

package heapfile

import (
	diskmanager "BTreeDB/storage_engine/disk_manager"
	"BTreeDB/storage_engine/page"
	"BTreeDB/types"
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrInvalidRecordID = errors.New("record id out of range")
	ErrCorruptPage     = errors.New("heap page is corrupt")
	ErrTableNotFound   = errors.New("table does not exist")
)

// HeapFile represents a single table file on disk
type HeapFile struct {
	store    page.Store // the page file, or a buffer pool wrapping it
	pageFile *diskmanager.PageFile
	filePath string
	mode     types.OpenMode
	endRid   types.RecordID // first unused slot
	mu       sync.RWMutex
}

// HeapFileManager names and opens table files inside one data directory
type HeapFileManager struct {
	baseDir    string
	cacheBytes int64
}
